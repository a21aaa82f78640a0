// Package users provides the account repository: interface plus a
// PostgreSQL implementation bound to a dbx.DBTX.
package users

import (
	"context"

	"github.com/campushub/campushub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) (*models.User, error)
	Counts(ctx context.Context, userID string) (*models.ProfileCounts, error)
}
