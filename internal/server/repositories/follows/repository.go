// Package follows provides the follow-edge repository. The (follower,
// followee) pair is uniquely keyed by the store; a duplicate insert
// surfaces as a conflict rather than being screened by application code.
package follows

import "context"

type Repository interface {
	Create(ctx context.Context, followerID, followeeID string) error
	Delete(ctx context.Context, followerID, followeeID string) error
	Exists(ctx context.Context, followerID, followeeID string) (bool, error)
	CountFollowers(ctx context.Context, userID string) (int, error)
}
