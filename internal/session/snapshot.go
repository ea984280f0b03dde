package session

import "cobible/internal/domain"

// QuestionView is the current question without its answer key.
type QuestionView struct {
	Category string                     `json:"category"`
	Text     string                     `json:"question"`
	Options  [domain.OptionCount]string `json:"options"`
}

// QuizSnapshot is the observable state of a quiz session after a transition.
type QuizSnapshot struct {
	ID               string        `json:"id"`
	State            string        `json:"state"`
	Language         string        `json:"language"`
	Categories       []string      `json:"categories"`
	CurrentIndex     int           `json:"current_index"`
	Total            int           `json:"total"`
	Score            int           `json:"score"`
	Answered         int           `json:"answered"`
	HasAnswered      bool          `json:"has_answered"`
	SelectedOption   *int          `json:"selected_option"`
	CorrectOption    *int          `json:"correct_option,omitempty"`
	RemainingSeconds int           `json:"remaining_seconds"`
	CountdownActive  bool          `json:"countdown_active"`
	Question         *QuestionView `json:"question,omitempty"`
	Accuracy         *int          `json:"accuracy,omitempty"`
}

// Snapshot captures the session state. The correct option is only revealed
// once the current question has been answered.
func (q *QuizSession) Snapshot() QuizSnapshot {
	snap := QuizSnapshot{
		ID:               q.id,
		State:            q.state.String(),
		Language:         q.language,
		Categories:       q.Categories(),
		CurrentIndex:     q.currentIndex,
		Total:            len(q.items),
		Score:            q.score,
		Answered:         q.Answered(),
		HasAnswered:      q.answered,
		RemainingSeconds: q.remaining,
		CountdownActive:  q.ticking,
	}

	if q.selected != nil {
		selected := *q.selected
		snap.SelectedOption = &selected
	}

	if current, ok := q.Current(); ok {
		snap.Question = &QuestionView{
			Category: current.Category,
			Text:     current.Text,
			Options:  current.Options,
		}
		if q.answered {
			correct := current.CorrectIndex
			snap.CorrectOption = &correct
		}
	}

	if accuracy, ok := q.Accuracy(); ok {
		snap.Accuracy = &accuracy
	}

	return snap
}

// FlashcardSnapshot is the observable state of a flashcard session.
type FlashcardSnapshot struct {
	ID           string            `json:"id"`
	Language     string            `json:"language"`
	Categories   []string          `json:"categories"`
	CurrentIndex int               `json:"current_index"`
	Total        int               `json:"total"`
	IsFlipped    bool              `json:"is_flipped"`
	Card         *domain.Flashcard `json:"card,omitempty"`
}

// Snapshot captures the session state. The card answer is only included while
// the card is flipped.
func (f *FlashcardSession) Snapshot() FlashcardSnapshot {
	snap := FlashcardSnapshot{
		ID:           f.id,
		Language:     f.language,
		Categories:   append([]string{}, f.categories...),
		CurrentIndex: f.currentIndex,
		Total:        len(f.items),
		IsFlipped:    f.flipped,
	}

	if card, ok := f.Current(); ok {
		if !f.flipped {
			card.Answer = ""
		}
		snap.Card = &card
	}

	return snap
}
