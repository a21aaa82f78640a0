package models

import "time"

// Comment is the stored comment record.
type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}

// CommentView is a comment with its author embedded.
type CommentView struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
