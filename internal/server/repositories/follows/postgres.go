package follows

import (
	"context"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/dbx"
	"github.com/campushub/campushub/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, followerID, followeeID string) error {
	query := `INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, followerID, followeeID); err != nil {
		return pgerr.Translate(err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, followerID, followeeID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`
	res, err := r.db.ExecContext(ctx, query, followerID, followeeID)
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

func (r *PostgresRepository) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, followerID, followeeID).Scan(&exists); err != nil {
		return false, pgerr.Translate(err)
	}
	return exists, nil
}

func (r *PostgresRepository) CountFollowers(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE followee_id = $1`, userID).Scan(&n); err != nil {
		return 0, pgerr.Translate(err)
	}
	return n, nil
}
