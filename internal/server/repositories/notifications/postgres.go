package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/campushub/campushub/internal/dbx"
	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, actor_id, type, target_id, content)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		n.ID, n.UserID, n.ActorID, n.Type, n.TargetID, n.Content).Scan(&n.CreatedAt)
	return pgerr.Translate(err)
}

func (r *PostgresRepository) List(ctx context.Context, userID, typ string, limit, offset int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, actor_id, type, target_id, content, read, created_at
		FROM notifications
		WHERE user_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, query, userID, typ, limit, offset)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.ActorID, &n.Type, &n.TargetID,
			&n.Content, &n.Read, &n.CreatedAt); err != nil {
			return nil, pgerr.Translate(err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context, userID, typ string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND ($2 = '' OR type = $2)`
	if err := r.db.QueryRowContext(ctx, query, userID, typ).Scan(&n); err != nil {
		return 0, pgerr.Translate(err)
	}
	return n, nil
}

func (r *PostgresRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT read`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, pgerr.Translate(err)
	}
	return n, nil
}

func (r *PostgresRepository) MarkRead(ctx context.Context, userID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	// database/sql over the pgx stdlib driver has no slice binding, so the
	// id list expands into positional placeholders.
	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	query := fmt.Sprintf(
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND id IN (%s)`,
		strings.Join(placeholders, ", "))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, pgerr.Translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, pgerr.Translate(err)
	}
	return int(n), nil
}
