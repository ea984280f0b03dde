package handler

import (
	"cobible/internal/dto"
	"cobible/internal/middleware"
	"cobible/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler exposes quiz and flashcard sessions. Every session route
// after creation is keyed by the ULID returned in the snapshot.
type SessionHandler struct {
	sessions service.SessionService
}

func NewSessionHandler(sessions service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func sessionID(c *fiber.Ctx) string {
	return c.Locals(middleware.LocalSessionID).(string)
}

// StartQuiz godoc
// @Summary Start a quiz session
// @Description Samples questions from the selected categories. An empty sample leaves the session in category selection.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.StartQuizRequest true "Quiz options"
// @Success 201 {object} dto.QuizSessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /quiz-sessions [post]
func (h *SessionHandler) StartQuiz(c *fiber.Ctx) error {
	req := c.Locals(middleware.LocalBody).(*dto.StartQuizRequest)

	snap, err := h.sessions.StartQuiz(c.UserContext(), service.QuizOptions{
		Language:   req.Language,
		Categories: req.Categories,
		Count:      req.Count,
		Seconds:    req.Seconds,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(snap)
}

// GetQuiz godoc
// @Summary Get a quiz session
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz-sessions/{id} [get]
func (h *SessionHandler) GetQuiz(c *fiber.Ctx) error {
	snap, err := h.sessions.Quiz(sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// AnswerQuiz godoc
// @Summary Answer the current question
// @Description A null option answers with no choice. Answering twice is ignored.
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AnswerRequest true "Chosen option"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz-sessions/{id}/answer [post]
func (h *SessionHandler) AnswerQuiz(c *fiber.Ctx) error {
	req := c.Locals(middleware.LocalBody).(*dto.AnswerRequest)

	snap, err := h.sessions.Answer(c.UserContext(), sessionID(c), req.Option)
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// AdvanceQuiz godoc
// @Summary Move to the next question
// @Description Ignored until the current question is answered. Completing the quiz records the result.
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz-sessions/{id}/advance [post]
func (h *SessionHandler) AdvanceQuiz(c *fiber.Ctx) error {
	snap, err := h.sessions.Advance(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// ResetQuiz godoc
// @Summary Reset a quiz session to category selection
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz-sessions/{id}/reset [post]
func (h *SessionHandler) ResetQuiz(c *fiber.Ctx) error {
	snap, err := h.sessions.ResetQuiz(sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// ReplayQuiz godoc
// @Summary Start a quiz session again
// @Description Samples new questions from the session's last language and categories, keeping its timing. Works after reset and after completion.
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz-sessions/{id}/replay [post]
func (h *SessionHandler) ReplayQuiz(c *fiber.Ctx) error {
	snap, err := h.sessions.ReplayQuiz(sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// CloseQuiz godoc
// @Summary Close a quiz session
// @Tags quiz
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz-sessions/{id} [delete]
func (h *SessionHandler) CloseQuiz(c *fiber.Ctx) error {
	if err := h.sessions.CloseQuiz(sessionID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StartFlashcards godoc
// @Summary Start a flashcard session
// @Description Loads the cards of the selected categories in category order
// @Tags flashcards
// @Accept json
// @Produce json
// @Param request body dto.StartFlashcardsRequest true "Flashcard options"
// @Success 201 {object} dto.FlashcardSessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /flashcard-sessions [post]
func (h *SessionHandler) StartFlashcards(c *fiber.Ctx) error {
	req := c.Locals(middleware.LocalBody).(*dto.StartFlashcardsRequest)

	snap, err := h.sessions.StartFlashcards(c.UserContext(), req.Language, req.Categories)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(snap)
}

// GetFlashcards godoc
// @Summary Get a flashcard session
// @Tags flashcards
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.FlashcardSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /flashcard-sessions/{id} [get]
func (h *SessionHandler) GetFlashcards(c *fiber.Ctx) error {
	snap, err := h.sessions.Flashcards(sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// FlipFlashcard godoc
// @Summary Flip the current card
// @Tags flashcards
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.FlashcardSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /flashcard-sessions/{id}/flip [post]
func (h *SessionHandler) FlipFlashcard(c *fiber.Ctx) error {
	snap, err := h.sessions.Flip(sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// NextFlashcard godoc
// @Summary Show the next card
// @Description Clamped at the last card
// @Tags flashcards
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.FlashcardSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /flashcard-sessions/{id}/next [post]
func (h *SessionHandler) NextFlashcard(c *fiber.Ctx) error {
	snap, err := h.sessions.Next(sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// PreviousFlashcard godoc
// @Summary Show the previous card
// @Description Clamped at the first card
// @Tags flashcards
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.FlashcardSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /flashcard-sessions/{id}/previous [post]
func (h *SessionHandler) PreviousFlashcard(c *fiber.Ctx) error {
	snap, err := h.sessions.Previous(sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// ShuffleFlashcards godoc
// @Summary Shuffle the loaded cards
// @Tags flashcards
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.FlashcardSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /flashcard-sessions/{id}/shuffle [post]
func (h *SessionHandler) ShuffleFlashcards(c *fiber.Ctx) error {
	snap, err := h.sessions.Shuffle(sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

// CloseFlashcards godoc
// @Summary Close a flashcard session
// @Tags flashcards
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /flashcard-sessions/{id} [delete]
func (h *SessionHandler) CloseFlashcards(c *fiber.Ctx) error {
	if err := h.sessions.CloseFlashcards(sessionID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
