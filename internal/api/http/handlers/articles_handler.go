package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/albedo-hq/support-portal/internal/api/dto"
	"github.com/albedo-hq/support-portal/internal/domain"
	"github.com/albedo-hq/support-portal/internal/service"
	apperrors "github.com/albedo-hq/support-portal/pkg/util"
)

// ArticlesHandler serves knowledge-base article endpoints.
type ArticlesHandler struct {
	service *service.ArticleService
}

// NewArticlesHandler constructs handler.
func NewArticlesHandler(articleService *service.ArticleService) *ArticlesHandler {
	return &ArticlesHandler{service: articleService}
}

// ListArticles GET /api/articles. Public; published articles only.
func (h *ArticlesHandler) ListArticles(c *fiber.Ctx) error {
	var categoryID *string
	if v := c.Query("categoryId"); v != "" {
		categoryID = &v
	}
	articles, pagination, err := h.service.ListPublished(c.Context(), categoryID, parseInt(c.Query("page"), 1), parseInt(c.Query("limit"), 20))
	if err != nil {
		return err
	}
	items := make([]dto.ArticleResponse, 0, len(articles))
	for i := range articles {
		items = append(items, articleResponse(&articles[i]))
	}
	return c.JSON(fiber.Map{"data": items, "pagination": pagination})
}

// GetArticleBySlug GET /api/articles/:slug. Public; counts the view.
func (h *ArticlesHandler) GetArticleBySlug(c *fiber.Ctx) error {
	article, err := h.service.GetPublishedBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponse(article)})
}

// GetArticle GET /api/admin/articles/:id.
func (h *ArticlesHandler) GetArticle(c *fiber.Ctx) error {
	article, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponse(article)})
}

// CreateArticle POST /api/admin/articles.
func (h *ArticlesHandler) CreateArticle(c *fiber.Ctx) error {
	var req dto.CreateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError(details)
	}

	article, err := h.service.Create(c.Context(), service.ArticleInput{
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		Tags:       req.Tags,
		CategoryID: req.CategoryID,
		Published:  req.Published,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": articleResponse(article)})
}

// UpdateArticle PUT /api/admin/articles/:id.
func (h *ArticlesHandler) UpdateArticle(c *fiber.Ctx) error {
	var req dto.UpdateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request body")
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError(details)
	}

	article, err := h.service.Update(c.Context(), c.Params("id"), service.ArticleInput{
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		Tags:       req.Tags,
		CategoryID: req.CategoryID,
		Published:  req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": articleResponse(article)})
}

// DeleteArticle DELETE /api/admin/articles/:id.
func (h *ArticlesHandler) DeleteArticle(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Article deleted"})
}

func articleResponse(article *domain.Article) dto.ArticleResponse {
	tags := article.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Slug:      article.Slug,
		Excerpt:   article.Excerpt,
		Content:   article.Content,
		Tags:      tags,
		Category:  categorySummary(article.Category),
		Published: article.Published,
		ViewCount: int(article.ViewCount),
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
}
