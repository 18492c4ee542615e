package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albedo-hq/support-portal/internal/domain"
)

// CategoryRepository encapsulates category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	// ListActive returns active categories ordered by sort order, with
	// published-article and ticket counts hydrated.
	ListActive(ctx context.Context) ([]domain.Category, error)
	Delete(ctx context.Context, id string) error
	ArticleCount(ctx context.Context, id string) (int, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository instantiates repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, slug, description, icon, color, sort_order, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		category.Name,
		category.Slug,
		category.Description,
		category.Icon,
		category.Color,
		category.SortOrder,
		category.Active,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET name=$1, slug=$2, description=$3, icon=$4, color=$5,
            sort_order=$6, is_active=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		category.Name,
		category.Slug,
		category.Description,
		category.Icon,
		category.Color,
		category.SortOrder,
		category.Active,
		category.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const query = `
        SELECT c.id, c.name, c.slug, c.description, c.icon, c.color, c.sort_order, c.is_active,
               c.created_at, c.updated_at,
               (SELECT COUNT(*) FROM articles a WHERE a.category_id=c.id AND a.is_published) AS article_count,
               (SELECT COUNT(*) FROM tickets t WHERE t.category_id=c.id) AS ticket_count
        FROM categories c WHERE c.id=$1`

	var category domain.Category
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.Icon,
		&category.Color,
		&category.SortOrder,
		&category.Active,
		&category.CreatedAt,
		&category.UpdatedAt,
		&category.ArticleCount,
		&category.TicketCount,
	); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListActive(ctx context.Context) ([]domain.Category, error) {
	const query = `
        SELECT c.id, c.name, c.slug, c.description, c.icon, c.color, c.sort_order, c.is_active,
               c.created_at, c.updated_at,
               (SELECT COUNT(*) FROM articles a WHERE a.category_id=c.id AND a.is_published) AS article_count,
               (SELECT COUNT(*) FROM tickets t WHERE t.category_id=c.id) AS ticket_count
        FROM categories c WHERE c.is_active ORDER BY c.sort_order ASC, c.name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.Icon,
			&category.Color,
			&category.SortOrder,
			&category.Active,
			&category.CreatedAt,
			&category.UpdatedAt,
			&category.ArticleCount,
			&category.TicketCount,
		); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) ArticleCount(ctx context.Context, id string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM articles WHERE category_id=$1`, id).Scan(&count)
	return count, err
}
