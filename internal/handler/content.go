package handler

import (
	"net/url"

	"cobible/internal/domain"
	"cobible/internal/dto"
	"cobible/internal/middleware"
	"cobible/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler serves the read-only catalog queries.
type ContentHandler struct {
	content service.ContentService
}

func NewContentHandler(content service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// GetLanguages godoc
// @Summary List languages
// @Description Returns the languages present in each dataset
// @Tags content
// @Produce json
// @Success 200 {object} dto.LanguagesResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /languages [get]
func (h *ContentHandler) GetLanguages(c *fiber.Ctx) error {
	resp := dto.LanguagesResponse{All: h.content.Languages()}

	var err error
	if resp.Shortcuts, err = h.content.LanguagesOf(service.KindShortcut); err != nil {
		return err
	}
	if resp.Quiz, err = h.content.LanguagesOf(service.KindQuiz); err != nil {
		return err
	}
	if resp.Flashcards, err = h.content.LanguagesOf(service.KindFlashcard); err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetCategories godoc
// @Summary List categories
// @Description Returns the sorted categories of a language in one dataset
// @Tags content
// @Produce json
// @Param language path string true "Language"
// @Param kind query string false "Dataset kind" Enums(shortcut, quiz, flashcard) default(quiz)
// @Success 200 {object} dto.CategoriesResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /languages/{language}/categories [get]
func (h *ContentHandler) GetCategories(c *fiber.Ctx) error {
	language := c.Locals(middleware.LocalLanguage).(string)
	kind := c.Locals(middleware.LocalKind).(string)

	categories, err := h.content.Categories(language, kind)
	if err != nil {
		return err
	}
	return c.JSON(dto.CategoriesResponse{Language: language, Kind: kind, Categories: categories})
}

// SearchShortcuts godoc
// @Summary Search shortcuts
// @Description Lists the shortcuts of a language ordered by number, filtered by a title substring
// @Tags shortcuts
// @Produce json
// @Param language query string true "Language"
// @Param q query string false "Case-insensitive title substring"
// @Success 200 {object} dto.ShortcutsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /shortcuts [get]
func (h *ContentHandler) SearchShortcuts(c *fiber.Ctx) error {
	language := c.Locals(middleware.LocalLanguage).(string)
	query := c.Query("q")

	shortcuts, err := h.content.Shortcuts(c.UserContext(), language, query)
	if err != nil {
		return err
	}
	return c.JSON(dto.ShortcutsResponse{Language: language, Query: query, Shortcuts: shortcuts})
}

// GetShortcut godoc
// @Summary Get a shortcut by title
// @Description Looks a shortcut up by exact title, preferring the given language
// @Tags shortcuts
// @Produce json
// @Param title path string true "Exact title"
// @Param language query string false "Language"
// @Success 200 {object} domain.Shortcut
// @Failure 404 {object} middleware.ErrorResponse
// @Router /shortcuts/{title} [get]
func (h *ContentHandler) GetShortcut(c *fiber.Ctx) error {
	title, err := url.PathUnescape(c.Params("title"))
	if err != nil {
		return domain.NewInvalidInputError("title is not a valid path segment")
	}

	shortcut, err := h.content.ShortcutByTitle(c.UserContext(), c.Query("language"), title)
	if err != nil {
		return err
	}
	return c.JSON(shortcut)
}
