package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/albedo-hq/support-portal/internal/domain"
)

func newArticleFixture(t *testing.T) (*ArticleService, *fakeArticleRepo, *fakeCategoryRepo) {
	t.Helper()
	articles := newFakeArticleRepo()
	categories := newFakeCategoryRepo()
	svc := NewArticleService(articles, categories, nil, zap.NewNop())
	return svc, articles, categories
}

func seedCategory(t *testing.T, categories *fakeCategoryRepo, name string) *domain.Category {
	t.Helper()
	category := &domain.Category{Name: name, Slug: Slugify(name), Active: true}
	require.NoError(t, categories.Create(context.Background(), category))
	return category
}

func TestCreateArticleDerivesSlug(t *testing.T) {
	svc, _, categories := newArticleFixture(t)
	category := seedCategory(t, categories, "Guides")

	article, err := svc.Create(context.Background(), ArticleInput{
		Title:      "Getting Started with Albedo",
		Content:    "Welcome aboard.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "getting-started-with-albedo", article.Slug)
	assert.False(t, article.Published)
	assert.NotNil(t, article.Tags)
}

func TestCreateArticleUnknownCategoryRejected(t *testing.T) {
	svc, _, _ := newArticleFixture(t)

	_, err := svc.Create(context.Background(), ArticleInput{
		Title:      "Orphan",
		Content:    "No category.",
		CategoryID: "missing",
	})
	de := domainErr(t, err)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Contains(t, de.Details, "categoryId: category does not exist")
}

func TestGetPublishedBySlugCountsViews(t *testing.T) {
	svc, articles, categories := newArticleFixture(t)
	category := seedCategory(t, categories, "Guides")
	published := true

	created, err := svc.Create(context.Background(), ArticleInput{
		Title:      "Reset Password",
		Content:    "Use the forgot password link.",
		CategoryID: category.ID,
		Published:  &published,
	})
	require.NoError(t, err)

	got, err := svc.GetPublishedBySlug(context.Background(), created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetPublishedBySlug(context.Background(), created.Slug)
	require.NoError(t, err)

	stored, err := articles.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.ViewCount)
}

func TestGetPublishedBySlugHidesDrafts(t *testing.T) {
	svc, _, categories := newArticleFixture(t)
	category := seedCategory(t, categories, "Guides")

	draft, err := svc.Create(context.Background(), ArticleInput{
		Title:      "Unreleased Feature",
		Content:    "Not ready yet.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	for _, slug := range []string{draft.Slug, "no-such-slug"} {
		_, err := svc.GetPublishedBySlug(context.Background(), slug)
		de := domainErr(t, err)
		assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
		assert.Equal(t, "Article not found", de.Message)
	}
}

func TestUpdateArticleRenamesSlug(t *testing.T) {
	svc, _, categories := newArticleFixture(t)
	category := seedCategory(t, categories, "Guides")

	article, err := svc.Create(context.Background(), ArticleInput{
		Title:      "Old Title",
		Content:    "Body.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), article.ID, ArticleInput{Title: "New Title"})
	require.NoError(t, err)
	assert.Equal(t, "new-title", updated.Slug)
	assert.Equal(t, "Body.", updated.Content)
}

func TestListPublishedPaginates(t *testing.T) {
	svc, _, categories := newArticleFixture(t)
	category := seedCategory(t, categories, "Guides")
	published := true

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := svc.Create(context.Background(), ArticleInput{
			Title:      title,
			Content:    "Body.",
			CategoryID: category.ID,
			Published:  &published,
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), ArticleInput{
		Title:      "Draft",
		Content:    "Body.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	articles, pagination, err := svc.ListPublished(context.Background(), nil, 1, 2)
	require.NoError(t, err)
	assert.Len(t, articles, 2)
	assert.Equal(t, 3, pagination.Total)
	assert.Equal(t, 2, pagination.Pages)
}

func TestDeleteArticle(t *testing.T) {
	svc, _, categories := newArticleFixture(t)
	category := seedCategory(t, categories, "Guides")

	article, err := svc.Create(context.Background(), ArticleInput{
		Title:      "Doomed",
		Content:    "Body.",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), article.ID))

	_, err = svc.Get(context.Background(), article.ID)
	assert.Equal(t, http.StatusNotFound, domainErr(t, err).HTTPStatus)
}
