package services

import (
	"context"

	"github.com/campushub/campushub/internal/server/facade"
	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/repomanager"
	"github.com/campushub/campushub/internal/server/validate"
)

// FollowService implements the follow edge between users.
type FollowService struct {
	*Store
}

func NewFollowService(store *Store) *FollowService {
	return &FollowService{Store: store}
}

// Status reports whether the viewer follows the target and the target's
// follower count.
func (s *FollowService) Status(ctx context.Context, viewerID, targetID string) (facade.Result[models.FollowStatus], error) {
	return facade.Read(ctx, s.Facade, "follows.status",
		func(ctx context.Context) (models.FollowStatus, error) {
			return s.statusFrom(ctx, s.Primary, viewerID, targetID)
		},
		fallbackOp(s.Store, func(ctx context.Context, m repomanager.RepositoryManager) (models.FollowStatus, error) {
			return s.statusFrom(ctx, m, viewerID, targetID)
		}),
	)
}

// Follow creates the (caller, target) edge. The store's composite key makes
// a duplicate follow a conflict; following yourself is rejected outright.
func (s *FollowService) Follow(ctx context.Context, callerID, targetID string) error {
	if callerID == targetID {
		return &validate.Errors{Fields: []validate.FieldError{{Field: "userId", Message: "cannot follow yourself"}}}
	}
	_, err := facade.Write(ctx, s.Facade, "follows.create", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.Primary.Follows(s.DB).Create(ctx, callerID, targetID)
	})
	if err != nil {
		return err
	}
	s.notify(ctx, targetID, callerID, models.NotificationFollow, callerID, "started following you")
	return nil
}

// Unfollow removes the edge; removing an absent edge reads as not found.
func (s *FollowService) Unfollow(ctx context.Context, callerID, targetID string) error {
	_, err := facade.Write(ctx, s.Facade, "follows.delete", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.Primary.Follows(s.DB).Delete(ctx, callerID, targetID)
	})
	return err
}

func (s *FollowService) statusFrom(ctx context.Context, m repomanager.RepositoryManager, viewerID, targetID string) (models.FollowStatus, error) {
	h := s.handle(m)
	status := models.FollowStatus{}
	var err error
	if viewerID != "" {
		status.IsFollowing, err = m.Follows(h).Exists(ctx, viewerID, targetID)
		if err != nil {
			return models.FollowStatus{}, err
		}
	}
	status.FollowerCount, err = m.Follows(h).CountFollowers(ctx, targetID)
	if err != nil {
		return models.FollowStatus{}, err
	}
	return status, nil
}
