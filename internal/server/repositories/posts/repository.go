// Package posts provides the post and like repository.
package posts

import (
	"context"

	"github.com/campushub/campushub/internal/server/models"
)

// Repository persists posts and the uniquely-keyed (user, post) like
// relation. View queries compute IsLiked relative to viewerID; an empty
// viewerID means an anonymous caller.
type Repository interface {
	Create(ctx context.Context, post *models.Post) error
	GetRecord(ctx context.Context, id string) (*models.Post, error)
	Get(ctx context.Context, id, viewerID string) (*models.PostView, error)
	List(ctx context.Context, viewerID string, limit, offset int) ([]models.PostView, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error

	InsertLike(ctx context.Context, userID, postID string) error
	DeleteLike(ctx context.Context, userID, postID string) error
}
