package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albedo-hq/support-portal/internal/domain"
)

// NoteRepository manages internal ticket annotations.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	// ListByTicket returns notes newest-first. Notes are operational
	// chatter, not a conversation transcript, so the order is the
	// opposite of replies.
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Note, error)
	CountByTicket(ctx context.Context, ticketID string) (int, error)
}

type noteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository builds repository.
func NewNoteRepository(pool *pgxpool.Pool) NoteRepository {
	return &noteRepository{pool: pool}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	const query = `
        INSERT INTO ticket_notes (ticket_id, user_id, content)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		note.TicketID,
		note.UserID,
		note.Content,
	).Scan(&note.ID, &note.CreatedAt)
}

func (r *noteRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Note, error) {
	const query = `
        SELECT n.id, n.ticket_id, n.user_id, n.content, n.created_at,
               u.id, u.name, u.email, u.role
        FROM ticket_notes n
        JOIN users u ON u.id = n.user_id
        WHERE n.ticket_id=$1
        ORDER BY n.created_at DESC`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Note
	for rows.Next() {
		var note domain.Note
		var author domain.User
		if err := rows.Scan(
			&note.ID,
			&note.TicketID,
			&note.UserID,
			&note.Content,
			&note.CreatedAt,
			&author.ID,
			&author.Name,
			&author.Email,
			&author.Role,
		); err != nil {
			return nil, err
		}
		note.Author = &author
		result = append(result, note)
	}
	return result, rows.Err()
}

func (r *noteRepository) CountByTicket(ctx context.Context, ticketID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ticket_notes WHERE ticket_id=$1`, ticketID).Scan(&count)
	return count, err
}
