package models

import "time"

// Post is the stored post record.
type Post struct {
	ID        string
	AuthorID  string
	Content   string
	Image     string
	CreatedAt time.Time
}

// PostView is a post as returned by the feed and post endpoints.
// IsLiked is computed relative to the calling identity.
type PostView struct {
	ID           string    `json:"id"`
	Author       Author    `json:"author"`
	Content      string    `json:"content"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	IsLiked      bool      `json:"isLiked"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Total   int `json:"total"`
	Pages   int `json:"pages"`
	Current int `json:"current"`
	Size    int `json:"size"`
}

// FeedPage is the payload of GET /api/posts.
type FeedPage struct {
	Posts      []PostView `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// Like is a uniquely-keyed (user, post) relation.
type Like struct {
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
