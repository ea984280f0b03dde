package handler

import (
	"cobible/internal/dto"
	"cobible/internal/middleware"
	"cobible/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LibraryHandler serves favorites and recorded quiz results.
type LibraryHandler struct {
	favorites service.FavoriteService
	results   service.ResultService
}

func NewLibraryHandler(favorites service.FavoriteService, results service.ResultService) *LibraryHandler {
	return &LibraryHandler{favorites: favorites, results: results}
}

// ListFavorites godoc
// @Summary List favorites
// @Description Lists the favorites of a language, newest first
// @Tags favorites
// @Produce json
// @Param language query string true "Language"
// @Success 200 {object} dto.FavoritesResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /favorites [get]
func (h *LibraryHandler) ListFavorites(c *fiber.Ctx) error {
	language := c.Locals(middleware.LocalLanguage).(string)

	favorites, err := h.favorites.List(c.UserContext(), language)
	if err != nil {
		return err
	}
	return c.JSON(dto.FavoritesResponse{Language: language, Favorites: favorites})
}

// AddFavorite godoc
// @Summary Add a favorite
// @Tags favorites
// @Accept json
// @Produce json
// @Param request body dto.CreateFavoriteRequest true "Favorite"
// @Success 201 {object} domain.Favorite
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /favorites [post]
func (h *LibraryHandler) AddFavorite(c *fiber.Ctx) error {
	req := c.Locals(middleware.LocalBody).(*dto.CreateFavoriteRequest)

	favorite, err := h.favorites.Add(c.UserContext(), req.Language, req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(favorite)
}

// DeleteFavorite godoc
// @Summary Delete a favorite
// @Tags favorites
// @Param id path string true "Favorite ID"
// @Success 204
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /favorites/{id} [delete]
func (h *LibraryHandler) DeleteFavorite(c *fiber.Ctx) error {
	if err := h.favorites.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListResults godoc
// @Summary List recent quiz results
// @Tags results
// @Produce json
// @Param language query string false "Language"
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {object} dto.ResultsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /results [get]
func (h *LibraryHandler) ListResults(c *fiber.Ctx) error {
	language := c.Locals(middleware.LocalLanguage).(string)
	limit := c.Locals(middleware.LocalLimit).(int)

	results, err := h.results.Recent(c.UserContext(), language, limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.ResultsResponse{Results: results})
}
