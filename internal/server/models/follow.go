package models

import "time"

// Follow is a uniquely-keyed (follower, followee) edge.
type Follow struct {
	FollowerID string    `json:"followerId"`
	FolloweeID string    `json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FollowStatus is the payload of GET /api/profile/{userId}/follow.
type FollowStatus struct {
	IsFollowing   bool `json:"isFollowing"`
	FollowerCount int  `json:"followerCount"`
}
