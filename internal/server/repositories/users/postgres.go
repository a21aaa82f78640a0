package users

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

const userColumns = `id, email, username, name, password_hash, avatar, bio, location, website, created_at`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, email, username, name, password_hash, avatar)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.Username, user.Name, user.PasswordHash, user.Avatar).
		Scan(&user.CreatedAt)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Username, &user.Name, &user.PasswordHash,
		&user.Avatar, &user.Bio, &user.Location, &user.Website, &user.CreatedAt)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return user, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		UPDATE users
		SET name = $2, avatar = $3, bio = $4, location = $5, website = $6
		WHERE id = $1
		RETURNING ` + userColumns
	updated := &models.User{}
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Avatar, user.Bio, user.Location, user.Website).Scan(
		&updated.ID, &updated.Email, &updated.Username, &updated.Name, &updated.PasswordHash,
		&updated.Avatar, &updated.Bio, &updated.Location, &updated.Website, &updated.CreatedAt)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return updated, nil
}

func (r *PostgresRepository) Counts(ctx context.Context, userID string) (*models.ProfileCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE followee_id = $1),
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1),
			(SELECT COUNT(*) FROM posts WHERE author_id = $1),
			(SELECT COUNT(*) FROM listings WHERE seller_id = $1)
	`
	counts := &models.ProfileCounts{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&counts.Followers, &counts.Following, &counts.Posts, &counts.Listings)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return counts, nil
}
