package posts

import (
	"context"

	"github.com/campushub/campushub/internal/common"
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

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, author_id, content, image)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.AuthorID, post.Content, post.Image).Scan(&post.CreatedAt)
	return pgerr.Translate(err)
}

func (r *PostgresRepository) GetRecord(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT id, author_id, content, image, created_at FROM posts WHERE id = $1`
	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.Content, &post.Image, &post.CreatedAt)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return post, nil
}

// postViewQuery joins the author and computes counters plus the
// viewer-relative liked flag in one round-trip.
const postViewQuery = `
	SELECT p.id, p.content, p.image, p.created_at,
	       u.id, u.username, u.name, u.avatar,
	       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
	       EXISTS (SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $1)
	FROM posts p
	JOIN users u ON u.id = p.author_id
`

func scanPostView(row interface{ Scan(...any) error }, view *models.PostView) error {
	return row.Scan(
		&view.ID, &view.Content, &view.Image, &view.CreatedAt,
		&view.Author.ID, &view.Author.Username, &view.Author.Name, &view.Author.Avatar,
		&view.LikeCount, &view.CommentCount, &view.IsLiked)
}

func (r *PostgresRepository) Get(ctx context.Context, id, viewerID string) (*models.PostView, error) {
	view := &models.PostView{}
	err := scanPostView(r.db.QueryRowContext(ctx, postViewQuery+` WHERE p.id = $2`, nullable(viewerID), id), view)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return view, nil
}

func (r *PostgresRepository) List(ctx context.Context, viewerID string, limit, offset int) ([]models.PostView, error) {
	query := postViewQuery + ` ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, nullable(viewerID), limit, offset)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := make([]models.PostView, 0, limit)
	for rows.Next() {
		var view models.PostView
		if err := scanPostView(rows, &view); err != nil {
			return nil, pgerr.Translate(err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		return 0, pgerr.Translate(err)
	}
	return n, nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	query := `UPDATE posts SET content = $2, image = $3 WHERE id = $1`
	return r.execExpectingRow(ctx, query, post.ID, post.Content, post.Image)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.execExpectingRow(ctx, `DELETE FROM posts WHERE id = $1`, id)
}

func (r *PostgresRepository) InsertLike(ctx context.Context, userID, postID string) error {
	query := `INSERT INTO likes (user_id, post_id) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, userID, postID); err != nil {
		return pgerr.Translate(err)
	}
	return nil
}

func (r *PostgresRepository) DeleteLike(ctx context.Context, userID, postID string) error {
	return r.execExpectingRow(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
}

// execExpectingRow runs a mutation that must touch exactly one row;
// zero rows means the target id no longer exists.
func (r *PostgresRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return pgerr.Translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pgerr.Translate(err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// nullable turns an anonymous viewer into a value that can never match a
// user id, keeping the EXISTS subquery false.
func nullable(viewerID string) string {
	if viewerID == "" {
		return "00000000-0000-0000-0000-000000000000"
	}
	return viewerID
}
