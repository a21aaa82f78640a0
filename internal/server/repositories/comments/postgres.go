package comments

import (
	"context"

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

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		comment.ID, comment.PostID, comment.AuthorID, comment.Content).Scan(&comment.CreatedAt)
	return pgerr.Translate(err)
}

func (r *PostgresRepository) ListByPost(ctx context.Context, postID string) ([]models.CommentView, error) {
	query := `
		SELECT c.id, c.post_id, c.content, c.created_at,
		       u.id, u.username, u.name, u.avatar
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := []models.CommentView{}
	for rows.Next() {
		var view models.CommentView
		if err := rows.Scan(
			&view.ID, &view.PostID, &view.Content, &view.CreatedAt,
			&view.Author.ID, &view.Author.Username, &view.Author.Name, &view.Author.Avatar); err != nil {
			return nil, pgerr.Translate(err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}
	return result, nil
}
