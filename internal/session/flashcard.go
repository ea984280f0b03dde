package session

import (
	"cobible/internal/catalog"
	"cobible/internal/domain"
	"cobible/internal/sampler"
	"cobible/internal/util"
)

// FlashcardSession browses a sequence of cards in both directions. It has no
// terminal state; navigation past either end is clamped.
type FlashcardSession struct {
	id      string
	catalog *catalog.Catalog[domain.Flashcard]
	sampler *sampler.Sampler

	language     string
	categories   []string
	items        []domain.Flashcard
	currentIndex int
	flipped      bool
	closed       bool
}

// NewFlashcardSession creates an empty session.
func NewFlashcardSession(c *catalog.Catalog[domain.Flashcard], s *sampler.Sampler) *FlashcardSession {
	return &FlashcardSession{
		id:      util.NewULID(),
		catalog: c,
		sampler: s,
	}
}

func (f *FlashcardSession) ID() string        { return f.id }
func (f *FlashcardSession) CurrentIndex() int { return f.currentIndex }
func (f *FlashcardSession) Len() int          { return len(f.items) }
func (f *FlashcardSession) IsFlipped() bool   { return f.flipped }
func (f *FlashcardSession) Closed() bool      { return f.closed }

// LoadGroups replaces the cards with every card of the selected categories of
// language, concatenated in ascending category order, and returns to the first
// card. It returns the number of loaded cards.
func (f *FlashcardSession) LoadGroups(language string, categories []string) int {
	if f.closed {
		return 0
	}

	f.language = language
	f.categories = append([]string{}, categories...)
	f.items = f.catalog.Filter(language, categories)
	f.currentIndex = 0
	f.flipped = false
	return len(f.items)
}

// Flip toggles between the question and answer side.
func (f *FlashcardSession) Flip() bool {
	if f.closed {
		return false
	}
	f.flipped = !f.flipped
	return true
}

// Next moves to the following card; it is a no-op on the last card.
func (f *FlashcardSession) Next() bool {
	if f.closed || f.currentIndex >= len(f.items)-1 {
		return false
	}
	f.currentIndex++
	f.flipped = false
	return true
}

// Previous moves to the preceding card; it is a no-op on the first card.
func (f *FlashcardSession) Previous() bool {
	if f.closed || f.currentIndex <= 0 {
		return false
	}
	f.currentIndex--
	f.flipped = false
	return true
}

// Shuffle randomly reorders the loaded cards and returns to the first one.
func (f *FlashcardSession) Shuffle() bool {
	if f.closed || len(f.items) == 0 {
		return false
	}
	f.sampler.Shuffle(len(f.items), func(i, j int) {
		f.items[i], f.items[j] = f.items[j], f.items[i]
	})
	f.currentIndex = 0
	f.flipped = false
	return true
}

// Current returns the visible card.
func (f *FlashcardSession) Current() (domain.Flashcard, bool) {
	if len(f.items) == 0 {
		return domain.Flashcard{}, false
	}
	return f.items[f.currentIndex], true
}

// Close disposes of the session. Every later event is ignored.
func (f *FlashcardSession) Close() {
	f.closed = true
}
