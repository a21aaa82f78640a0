// Package comments provides the comment repository.
package comments

import (
	"context"

	"github.com/campushub/campushub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID string) ([]models.CommentView, error)
}
