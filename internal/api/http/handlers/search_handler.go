package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albedo-hq/support-portal/internal/api/dto"
	"github.com/albedo-hq/support-portal/internal/service"
	apperrors "github.com/albedo-hq/support-portal/pkg/util"
)

// SearchHandler serves the public article search used by the help
// widget.
type SearchHandler struct {
	service *service.SearchService
}

// NewSearchHandler constructs handler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{service: searchService}
}

// SearchArticles POST /api/search/articles. Public.
func (h *SearchHandler) SearchArticles(c *fiber.Ctx) error {
	var req dto.SearchArticlesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError(details)
	}
	if req.Limit == 0 {
		req.Limit = 5
	}

	results, err := h.service.SearchArticles(c.Context(), req.Query, req.Limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": results, "query": req.Query})
}
