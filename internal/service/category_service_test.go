package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryDerivesSlugAndDefaults(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo)

	category, err := svc.Create(context.Background(), CategoryInput{Name: "Billing & Payments"})
	require.NoError(t, err)
	assert.Equal(t, "billing-payments", category.Slug)
	assert.True(t, category.Active)
	assert.Zero(t, category.SortOrder)
}

func TestUpdateCategoryPartialFields(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	category, err := svc.Create(ctx, CategoryInput{Name: "Billing"})
	require.NoError(t, err)

	order := 3
	inactive := false
	updated, err := svc.Update(ctx, category.ID, CategoryInput{SortOrder: &order, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Billing", updated.Name)
	assert.Equal(t, 3, updated.SortOrder)
	assert.False(t, updated.Active)

	updated, err = svc.Update(ctx, category.ID, CategoryInput{Name: "Payments"})
	require.NoError(t, err)
	assert.Equal(t, "payments", updated.Slug)
}

func TestDeleteCategoryRefusedWithArticles(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	category, err := svc.Create(ctx, CategoryInput{Name: "Guides"})
	require.NoError(t, err)
	repo.articleCounts[category.ID] = 2

	err = svc.Delete(ctx, category.ID)
	de := domainErr(t, err)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "Cannot delete category with existing articles", de.Message)

	repo.articleCounts[category.ID] = 0
	require.NoError(t, svc.Delete(ctx, category.ID))

	_, err = svc.Get(ctx, category.ID)
	assert.Equal(t, http.StatusNotFound, domainErr(t, err).HTTPStatus)
}

func TestListCategoriesOrdersBySortOrder(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	second := 2
	first := 1
	_, err := svc.Create(ctx, CategoryInput{Name: "Later", SortOrder: &second})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CategoryInput{Name: "Sooner", SortOrder: &first})
	require.NoError(t, err)
	inactive := false
	_, err = svc.Create(ctx, CategoryInput{Name: "Hidden", Active: &inactive})
	require.NoError(t, err)

	categories, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Sooner", categories[0].Name)
	assert.Equal(t, "Later", categories[1].Name)
}
