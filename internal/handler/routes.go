package handler

import (
	"cobible/internal/dto"
	"cobible/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts every API route on router, normally the /api group.
func RegisterRoutes(
	router fiber.Router,
	vm *middleware.ValidationMiddleware,
	content *ContentHandler,
	sessions *SessionHandler,
	library *LibraryHandler,
) {
	router.Get("/languages", content.GetLanguages)
	router.Get("/languages/:language/categories", vm.ValidateLanguage(), vm.ValidateKind(), content.GetCategories)
	router.Get("/shortcuts", vm.ValidateLanguage(), content.SearchShortcuts)
	router.Get("/shortcuts/:title", content.GetShortcut)

	quiz := router.Group("/quiz-sessions")
	quiz.Post("/", middleware.ValidateBody[dto.StartQuizRequest](vm), sessions.StartQuiz)
	quiz.Get("/:id", vm.ValidateSessionID(), sessions.GetQuiz)
	quiz.Post("/:id/answer", vm.ValidateSessionID(), middleware.ValidateBody[dto.AnswerRequest](vm), sessions.AnswerQuiz)
	quiz.Post("/:id/advance", vm.ValidateSessionID(), sessions.AdvanceQuiz)
	quiz.Post("/:id/reset", vm.ValidateSessionID(), sessions.ResetQuiz)
	quiz.Post("/:id/replay", vm.ValidateSessionID(), sessions.ReplayQuiz)
	quiz.Delete("/:id", vm.ValidateSessionID(), sessions.CloseQuiz)

	cards := router.Group("/flashcard-sessions")
	cards.Post("/", middleware.ValidateBody[dto.StartFlashcardsRequest](vm), sessions.StartFlashcards)
	cards.Get("/:id", vm.ValidateSessionID(), sessions.GetFlashcards)
	cards.Post("/:id/flip", vm.ValidateSessionID(), sessions.FlipFlashcard)
	cards.Post("/:id/next", vm.ValidateSessionID(), sessions.NextFlashcard)
	cards.Post("/:id/previous", vm.ValidateSessionID(), sessions.PreviousFlashcard)
	cards.Post("/:id/shuffle", vm.ValidateSessionID(), sessions.ShuffleFlashcards)
	cards.Delete("/:id", vm.ValidateSessionID(), sessions.CloseFlashcards)

	router.Get("/favorites", vm.ValidateLanguage(), library.ListFavorites)
	router.Post("/favorites", middleware.ValidateBody[dto.CreateFavoriteRequest](vm), library.AddFavorite)
	router.Delete("/favorites/:id", library.DeleteFavorite)
	router.Get("/results", vm.ValidateResultsParams(), library.ListResults)
}
