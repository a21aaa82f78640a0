package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/campushub/campushub/internal/server/models"
)

// notify records a notification for userID about an action by actorID.
// Self-actions are skipped, and a failure to record never fails the write
// that triggered it: the event is logged and dropped.
func (s *Store) notify(ctx context.Context, userID, actorID, typ, targetID, content string) {
	if userID == actorID {
		return
	}
	err := s.Primary.Notifications(s.DB).Create(ctx, &models.Notification{
		ID:       uuid.NewString(),
		UserID:   userID,
		ActorID:  actorID,
		Type:     typ,
		TargetID: targetID,
		Content:  content,
	})
	if err != nil {
		s.Logger.Warn(ctx, "dropping notification", "type", typ, "user_id", userID, "error", err.Error())
	}
}
