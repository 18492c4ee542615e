package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/albedo-hq/support-portal/internal/domain"
	"github.com/albedo-hq/support-portal/internal/repository"
	apperrors "github.com/albedo-hq/support-portal/pkg/util"
)

const articleCacheTTL = 5 * time.Minute

// ArticleService manages knowledge-base articles. Public reads of a
// single article go through a short-lived redis cache; cache failures
// are logged and fall through to storage.
type ArticleService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	cache      *redis.Client
	logger     *zap.Logger
}

// NewArticleService constructs the service. cache may be nil.
func NewArticleService(articles repository.ArticleRepository, categories repository.CategoryRepository, cache *redis.Client, logger *zap.Logger) *ArticleService {
	return &ArticleService{
		articles:   articles,
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

// ArticleInput carries create/update fields.
type ArticleInput struct {
	Title      string
	Excerpt    *string
	Content    string
	Tags       []string
	CategoryID string
	Published  *bool
}

// ListPublished returns a page of published articles.
func (s *ArticleService) ListPublished(ctx context.Context, categoryID *string, page, limit int) ([]domain.Article, Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	filter := repository.ArticleFilter{
		CategoryID:    categoryID,
		PublishedOnly: true,
		Limit:         limit,
		Offset:        (page - 1) * limit,
	}
	articles, err := s.articles.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, Pagination{}, err
	}
	total, err := s.articles.CountWithFilter(ctx, filter)
	if err != nil {
		return nil, Pagination{}, err
	}
	return articles, NewPagination(page, limit, total), nil
}

// GetPublishedBySlug resolves a public article read and increments its
// view count.
func (s *ArticleService) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	if cached := s.cacheGet(ctx, slug); cached != nil {
		// View counting still hits storage so counts stay accurate.
		if err := s.articles.IncrementViewCount(ctx, cached.ID); err != nil {
			s.logger.Warn("failed to increment view count", zap.String("article_id", cached.ID), zap.Error(err))
		}
		return cached, nil
	}

	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Article")
		}
		return nil, err
	}
	if !article.Published {
		return nil, apperrors.NewNotFound("Article")
	}

	if err := s.articles.IncrementViewCount(ctx, article.ID); err != nil {
		s.logger.Warn("failed to increment view count", zap.String("article_id", article.ID), zap.Error(err))
	}
	s.cacheSet(ctx, slug, article)
	return article, nil
}

// Get returns one article for staff, published or not.
func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Article")
		}
		return nil, err
	}
	return article, nil
}

// Create persists an article with a slug derived from the title.
func (s *ArticleService) Create(ctx context.Context, input ArticleInput) (*domain.Article, error) {
	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError([]string{"categoryId: category does not exist"})
		}
		return nil, err
	}

	article := &domain.Article{
		Title:      input.Title,
		Slug:       Slugify(input.Title),
		Excerpt:    input.Excerpt,
		Content:    input.Content,
		Tags:       input.Tags,
		CategoryID: input.CategoryID,
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}
	if input.Published != nil {
		article.Published = *input.Published
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Update applies the provided fields and invalidates the cache entry.
func (s *ArticleService) Update(ctx context.Context, id string, input ArticleInput) (*domain.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := article.Slug

	if input.Title != "" {
		article.Title = input.Title
		article.Slug = Slugify(input.Title)
	}
	if input.Excerpt != nil {
		article.Excerpt = input.Excerpt
	}
	if input.Content != "" {
		article.Content = input.Content
	}
	if input.Tags != nil {
		article.Tags = input.Tags
	}
	if input.CategoryID != "" {
		if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError([]string{"categoryId: category does not exist"})
			}
			return nil, err
		}
		article.CategoryID = input.CategoryID
	}
	if input.Published != nil {
		article.Published = *input.Published
	}

	if err := s.articles.Update(ctx, article); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Article")
		}
		return nil, err
	}
	s.cacheInvalidate(ctx, oldSlug, article.Slug)
	return article, nil
}

// Delete removes an article and its cache entry.
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	article, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Article")
		}
		return err
	}
	s.cacheInvalidate(ctx, article.Slug)
	return nil
}

func articleCacheKey(slug string) string {
	return fmt.Sprintf("article:slug:%s", slug)
}

func (s *ArticleService) cacheGet(ctx context.Context, slug string) *domain.Article {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, articleCacheKey(slug)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("article cache read failed", zap.String("slug", slug), zap.Error(err))
		}
		return nil
	}
	var article domain.Article
	if err := json.Unmarshal(raw, &article); err != nil {
		return nil
	}
	return &article
}

func (s *ArticleService) cacheSet(ctx context.Context, slug string, article *domain.Article) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(article)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, articleCacheKey(slug), raw, articleCacheTTL).Err(); err != nil {
		s.logger.Warn("article cache write failed", zap.String("slug", slug), zap.Error(err))
	}
}

func (s *ArticleService) cacheInvalidate(ctx context.Context, slugs ...string) {
	if s.cache == nil {
		return
	}
	for _, slug := range slugs {
		if err := s.cache.Del(ctx, articleCacheKey(slug)).Err(); err != nil {
			s.logger.Warn("article cache invalidate failed", zap.String("slug", slug), zap.Error(err))
		}
	}
}
