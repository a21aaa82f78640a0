package services

import (
	"context"

	"github.com/campushub/campushub/internal/server/facade"
	"github.com/campushub/campushub/internal/server/models"
)

// NotificationService implements the caller-scoped notification inbox.
type NotificationService struct {
	*Store
}

func NewNotificationService(store *Store) *NotificationService {
	return &NotificationService{Store: store}
}

// List returns one page of the caller's notifications, newest first,
// optionally narrowed by type, plus the total unread count.
func (s *NotificationService) List(ctx context.Context, userID, typ string, page, limit int) (facade.Result[models.NotificationPage], error) {
	return facade.Read(ctx, s.Facade, "notifications.list",
		func(ctx context.Context) (models.NotificationPage, error) {
			repo := s.Primary.Notifications(s.DB)
			items, err := repo.List(ctx, userID, typ, limit, offsetFor(page, limit))
			if err != nil {
				return models.NotificationPage{}, err
			}
			total, err := repo.Count(ctx, userID, typ)
			if err != nil {
				return models.NotificationPage{}, err
			}
			unread, err := repo.CountUnread(ctx, userID)
			if err != nil {
				return models.NotificationPage{}, err
			}
			return models.NotificationPage{
				Notifications: items,
				Pagination:    paginate(total, page, limit),
				UnreadCount:   unread,
			}, nil
		},
	)
}

// MarkRead flips the caller's listed notifications to read and returns how
// many actually changed. Ids belonging to other users are ignored.
func (s *NotificationService) MarkRead(ctx context.Context, userID string, ids []string) (int, error) {
	return facade.Write(ctx, s.Facade, "notifications.mark_read", func(ctx context.Context) (int, error) {
		return s.Primary.Notifications(s.DB).MarkRead(ctx, userID, ids)
	})
}
