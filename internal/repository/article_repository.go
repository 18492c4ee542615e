package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albedo-hq/support-portal/internal/domain"
)

// ArticleFilter captures knowledge-base listing parameters.
type ArticleFilter struct {
	CategoryID    *string
	PublishedOnly bool
	Limit         int
	Offset        int
}

// ArticleRepository encapsulates article persistence.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	ListWithFilter(ctx context.Context, filter ArticleFilter) ([]domain.Article, error)
	CountWithFilter(ctx context.Context, filter ArticleFilter) (int, error)
	// ListPublished returns every published article with its category
	// summary; the search service scans these in memory.
	ListPublished(ctx context.Context) ([]domain.Article, error)
	IncrementViewCount(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type articleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository instantiates repository.
func NewArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &articleRepository{pool: pool}
}

const articleColumns = `a.id, a.title, a.slug, a.excerpt, a.content, a.tags, a.category_id,
               a.is_published, a.view_count, a.created_at, a.updated_at,
               c.id, c.name, c.slug, c.color`

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	const query = `
        INSERT INTO articles (title, slug, excerpt, content, tags, category_id, is_published)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		article.Title,
		article.Slug,
		article.Excerpt,
		article.Content,
		article.Tags,
		article.CategoryID,
		article.Published,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
}

func (r *articleRepository) Update(ctx context.Context, article *domain.Article) error {
	const query = `
        UPDATE articles SET title=$1, slug=$2, excerpt=$3, content=$4, tags=$5,
            category_id=$6, is_published=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		article.Title,
		article.Slug,
		article.Excerpt,
		article.Content,
		article.Tags,
		article.CategoryID,
		article.Published,
		article.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM articles a JOIN categories c ON c.id = a.category_id
        WHERE a.id=$1`, articleColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM articles a JOIN categories c ON c.id = a.category_id
        WHERE a.slug=$1`, articleColumns)
	return r.fetchSingle(ctx, query, slug)
}

func (r *articleRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Article, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &articles[0], nil
}

func articleFilterClause(filter ArticleFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.PublishedOnly {
		clauses = append(clauses, "a.is_published")
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("a.category_id=$%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func (r *articleRepository) ListWithFilter(ctx context.Context, filter ArticleFilter) ([]domain.Article, error) {
	where, args := articleFilterClause(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT %s FROM articles a JOIN categories c ON c.id = a.category_id
        WHERE %s ORDER BY a.created_at DESC LIMIT %d OFFSET %d`,
		articleColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (r *articleRepository) CountWithFilter(ctx context.Context, filter ArticleFilter) (int, error) {
	where, args := articleFilterClause(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM articles a WHERE %s`, where)

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *articleRepository) ListPublished(ctx context.Context) ([]domain.Article, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM articles a JOIN categories c ON c.id = a.category_id
        WHERE a.is_published ORDER BY a.created_at DESC`, articleColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (r *articleRepository) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE articles SET view_count = view_count + 1 WHERE id=$1`, id)
	return err
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanArticles(rows pgx.Rows) ([]domain.Article, error) {
	var result []domain.Article
	for rows.Next() {
		var article domain.Article
		var category domain.Category
		if err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Slug,
			&article.Excerpt,
			&article.Content,
			&article.Tags,
			&article.CategoryID,
			&article.Published,
			&article.ViewCount,
			&article.CreatedAt,
			&article.UpdatedAt,
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Color,
		); err != nil {
			return nil, err
		}
		article.Category = &category
		result = append(result, article)
	}
	return result, rows.Err()
}
