package service

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/albedo-hq/support-portal/internal/domain"
	"github.com/albedo-hq/support-portal/internal/repository"
	apperrors "github.com/albedo-hq/support-portal/pkg/util"
)

// Field weights for search scoring. A match in a heavier field ranks
// the article higher; the matching itself is plain substring
// containment, not fuzzy matching.
const (
	weightTitle   = 0.4
	weightContent = 0.3
	weightExcerpt = 0.2
	weightTags    = 0.1
)

// SearchService answers the chat widget's article lookups.
type SearchService struct {
	articles repository.ArticleRepository
}

// NewSearchService constructs the service.
func NewSearchService(articles repository.ArticleRepository) *SearchService {
	return &SearchService{articles: articles}
}

// SearchResult is one scored hit.
type SearchResult struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Excerpt   string           `json:"excerpt"`
	Slug      string           `json:"slug"`
	URL       string           `json:"url"`
	Category  *domain.Category `json:"category,omitempty"`
	Score     float64          `json:"score"`
	Relevance string           `json:"relevance"`
}

// SearchArticles scans published articles for the query and returns up
// to limit results, best match first.
func (s *SearchService) SearchArticles(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	// A blank query would substring-match everything at full score.
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, apperrors.NewValidationError([]string{"query: is required"})
	}

	articles, err := s.articles.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]SearchResult, 0, limit)
	for i := range articles {
		score := scoreArticle(&articles[i], needle)
		if score <= 0 {
			continue
		}
		results = append(results, SearchResult{
			ID:        articles[i].ID,
			Title:     articles[i].Title,
			Excerpt:   buildExcerpt(&articles[i]),
			Slug:      articles[i].Slug,
			URL:       "/docs/" + articles[i].Slug,
			Category:  articles[i].Category,
			Score:     score,
			Relevance: relevanceBand(score),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func scoreArticle(article *domain.Article, needle string) float64 {
	var score float64
	if strings.Contains(strings.ToLower(article.Title), needle) {
		score += weightTitle
	}
	if strings.Contains(strings.ToLower(article.Content), needle) {
		score += weightContent
	}
	if article.Excerpt != nil && strings.Contains(strings.ToLower(*article.Excerpt), needle) {
		score += weightExcerpt
	}
	for _, tag := range article.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			score += weightTags
			break
		}
	}
	return score
}

func relevanceBand(score float64) string {
	switch {
	case score >= 0.6:
		return "high"
	case score >= 0.3:
		return "medium"
	default:
		return "low"
	}
}

func buildExcerpt(article *domain.Article) string {
	text := article.Content
	if text == "" && article.Excerpt != nil {
		text = *article.Excerpt
	}
	if len(text) <= 200 {
		return text
	}
	// Back off to a rune boundary so multi-byte content never truncates
	// into invalid UTF-8.
	cut := 200
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
