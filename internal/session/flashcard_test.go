package session

import (
	"testing"

	"cobible/internal/catalog"
	"cobible/internal/domain"
	"cobible/internal/sampler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardCatalog() *catalog.Catalog[domain.Flashcard] {
	return catalog.Index([]domain.Flashcard{
		{ID: "o1", Language: "Java", Category: "OOP", Question: "q-o1", Answer: "a-o1"},
		{ID: "b1", Language: "Java", Category: "Basics", Question: "q-b1", Answer: "a-b1"},
		{ID: "o2", Language: "Java", Category: "OOP", Question: "q-o2", Answer: "a-o2"},
		{ID: "b2", Language: "Java", Category: "Basics", Question: "q-b2", Answer: "a-b2"},
		{ID: "p1", Language: "Python", Category: "Basics", Question: "q-p1", Answer: "a-p1"},
	})
}

func currentID(t *testing.T, f *FlashcardSession) string {
	t.Helper()
	card, ok := f.Current()
	require.True(t, ok)
	return card.ID
}

func TestFlashcardSession_LoadGroups(t *testing.T) {
	f := NewFlashcardSession(cardCatalog(), keepOrder())

	_, ok := f.Current()
	assert.False(t, ok)

	n := f.LoadGroups("Java", []string{"OOP", "Basics"})
	assert.Equal(t, 4, n)
	assert.Equal(t, "b1", currentID(t, f))

	var order []string
	for {
		order = append(order, currentID(t, f))
		if !f.Next() {
			break
		}
	}
	assert.Equal(t, []string{"b1", "b2", "o1", "o2"}, order)

	f.Flip()
	assert.Equal(t, 1, f.LoadGroups("Python", []string{"Basics"}))
	assert.Equal(t, 0, f.CurrentIndex())
	assert.False(t, f.IsFlipped())

	assert.Equal(t, 0, f.LoadGroups("Python", nil))
	_, ok = f.Current()
	assert.False(t, ok)
}

func TestFlashcardSession_Navigation(t *testing.T) {
	f := NewFlashcardSession(cardCatalog(), keepOrder())
	f.LoadGroups("Java", []string{"Basics", "OOP"})

	assert.False(t, f.Previous(), "previous at the first card is clamped")
	assert.Equal(t, 0, f.CurrentIndex())

	require.True(t, f.Flip())
	assert.True(t, f.IsFlipped())
	require.True(t, f.Next())
	assert.Equal(t, 1, f.CurrentIndex())
	assert.False(t, f.IsFlipped(), "index change unflips")

	f.Next()
	f.Next()
	assert.Equal(t, 3, f.CurrentIndex())
	f.Flip()
	assert.False(t, f.Next(), "next at the last card is clamped")
	assert.Equal(t, 3, f.CurrentIndex())
	assert.True(t, f.IsFlipped(), "clamped move keeps the flip state")

	require.True(t, f.Previous())
	assert.Equal(t, 2, f.CurrentIndex())
	assert.False(t, f.IsFlipped())
}

func TestFlashcardSession_EmptyNavigation(t *testing.T) {
	f := NewFlashcardSession(cardCatalog(), keepOrder())

	assert.False(t, f.Next())
	assert.False(t, f.Previous())
	assert.True(t, f.Flip())
	assert.Equal(t, 0, f.CurrentIndex())
	assert.False(t, f.Shuffle())
}

func TestFlashcardSession_Shuffle(t *testing.T) {
	reverse := sampler.NewWithShuffle(func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	})
	c := cardCatalog()
	f := NewFlashcardSession(c, reverse)
	f.LoadGroups("Java", []string{"Basics", "OOP"})
	f.Next()
	f.Flip()

	require.True(t, f.Shuffle())
	assert.Equal(t, 0, f.CurrentIndex())
	assert.False(t, f.IsFlipped())
	assert.Equal(t, "o2", currentID(t, f))

	assert.Equal(t, "b1", c.Records("Java", "Basics")[0].ID, "catalog order is untouched")
}

func TestFlashcardSession_Snapshot(t *testing.T) {
	f := NewFlashcardSession(cardCatalog(), keepOrder())
	f.LoadGroups("Java", []string{"Basics"})

	snap := f.Snapshot()
	require.NotNil(t, snap.Card)
	assert.Equal(t, "q-b1", snap.Card.Question)
	assert.Empty(t, snap.Card.Answer, "answer hidden until flipped")
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, []string{"Basics"}, snap.Categories)

	f.Flip()
	snap = f.Snapshot()
	assert.Equal(t, "a-b1", snap.Card.Answer)

	card, _ := f.Current()
	assert.Equal(t, "a-b1", card.Answer)
}

func TestFlashcardSession_Close(t *testing.T) {
	f := NewFlashcardSession(cardCatalog(), keepOrder())
	f.LoadGroups("Java", []string{"Basics"})
	f.Close()

	assert.True(t, f.Closed())
	assert.False(t, f.Flip())
	assert.False(t, f.Next())
	assert.False(t, f.Shuffle())
	assert.Equal(t, 0, f.LoadGroups("Java", []string{"OOP"}))
	assert.Equal(t, "b1", currentID(t, f))
}
