package dto

import (
	"cobible/internal/domain"
	"cobible/internal/session"
)

// StartQuizRequest starts a quiz session.
// @Description Request body for starting a quiz session
type StartQuizRequest struct {
	Language   string   `json:"language" validate:"required"`
	Categories []string `json:"categories" validate:"required,min=1,dive,required"`
	// Count defaults to quiz.question_count when zero.
	Count int `json:"count" validate:"gte=0,lte=100"`
	// Seconds per question; omitted uses quiz.seconds_per_question, 0 disables the countdown.
	Seconds *int `json:"seconds,omitempty" validate:"omitempty,gte=0,lte=600"`
}

// AnswerRequest submits an answer. A null option answers with no choice.
// @Description Request body for answering the current question
type AnswerRequest struct {
	Option *int `json:"option" validate:"omitempty,gte=0,lte=3"`
}

// StartFlashcardsRequest starts a flashcard session.
// @Description Request body for starting a flashcard session
type StartFlashcardsRequest struct {
	Language   string   `json:"language" validate:"required"`
	Categories []string `json:"categories" validate:"required,min=1,dive,required"`
}

// QuizSessionResponse is the snapshot of a quiz session.
type QuizSessionResponse = session.QuizSnapshot

// FlashcardSessionResponse is the snapshot of a flashcard session.
type FlashcardSessionResponse = session.FlashcardSnapshot

// LanguagesResponse lists languages per dataset.
type LanguagesResponse struct {
	All        []string `json:"all"`
	Shortcuts  []string `json:"shortcuts"`
	Quiz       []string `json:"quiz"`
	Flashcards []string `json:"flashcards"`
}

// CategoriesResponse lists the categories of one language and dataset.
type CategoriesResponse struct {
	Language   string   `json:"language"`
	Kind       string   `json:"kind"`
	Categories []string `json:"categories"`
}

// ShortcutsResponse lists shortcuts matching a search.
type ShortcutsResponse struct {
	Language  string            `json:"language"`
	Query     string            `json:"query,omitempty"`
	Shortcuts []domain.Shortcut `json:"shortcuts"`
}

// CreateFavoriteRequest adds a favorite.
// @Description Request body for adding a favorite
type CreateFavoriteRequest struct {
	Language string `json:"language" validate:"required"`
	Name     string `json:"name" validate:"required,max=200"`
}

// FavoritesResponse lists favorites of a language.
type FavoritesResponse struct {
	Language  string            `json:"language"`
	Favorites []domain.Favorite `json:"favorites"`
}

// ResultsResponse lists recent quiz results.
type ResultsResponse struct {
	Results []domain.QuizResult `json:"results"`
}
