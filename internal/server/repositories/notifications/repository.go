// Package notifications provides the notification repository.
package notifications

import (
	"context"

	"github.com/campushub/campushub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, userID, typ string, limit, offset int) ([]models.Notification, error)
	Count(ctx context.Context, userID, typ string) (int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	// MarkRead flips read on the caller-owned notifications among ids and
	// returns how many rows changed. Foreign ids are silently ignored.
	MarkRead(ctx context.Context, userID string, ids []string) (int, error)
}
