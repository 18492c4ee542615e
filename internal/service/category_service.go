package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/albedo-hq/support-portal/internal/domain"
	"github.com/albedo-hq/support-portal/internal/repository"
	apperrors "github.com/albedo-hq/support-portal/pkg/util"
)

// CategoryService manages knowledge-base categories.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CategoryInput carries create/update fields.
type CategoryInput struct {
	Name        string
	Description *string
	Icon        *string
	Color       *string
	SortOrder   *int
	Active      *bool
}

// List returns active categories ordered by sort order.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListActive(ctx)
}

// Get returns one category with its counts.
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Category")
		}
		return nil, err
	}
	return category, nil
}

// Create persists a category with a slug derived from the name.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		Name:        input.Name,
		Slug:        Slugify(input.Name),
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
		Active:      true,
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.Active != nil {
		category.Active = *input.Active
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update applies the provided fields; the slug follows a name change.
func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		category.Name = input.Name
		category.Slug = Slugify(input.Name)
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.Icon != nil {
		category.Icon = input.Icon
	}
	if input.Color != nil {
		category.Color = input.Color
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.Active != nil {
		category.Active = *input.Active
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Category")
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category. Deletion is refused while articles still
// reference it; tickets keep a nulled reference.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	count, err := s.categories.ArticleCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewBadRequest("Cannot delete category with existing articles")
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Category")
		}
		return err
	}
	return nil
}
