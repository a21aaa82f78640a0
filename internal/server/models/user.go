// Package models defines the resource records persisted by the repositories
// and the view types returned through the HTTP API.
package models

import "time"

// User is the stored account record. PasswordHash never leaves the
// repository/service boundary.
type User struct {
	ID           string
	Email        string
	Username     string
	Name         string
	PasswordHash string
	Avatar       string
	Bio          string
	Location     string
	Website      string
	CreatedAt    time.Time
}

// Identity is the per-request representation of the authenticated caller,
// derived from a verified credential. It is never persisted.
type Identity struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
}

// Author is the public subset of a user embedded into posts, comments,
// messages and listings.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
}

// ProfileCounts aggregates the relationship counters shown on a profile.
type ProfileCounts struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
	Posts     int `json:"posts"`
	Listings  int `json:"listings"`
}

// ProfileView is a user profile as returned by GET /api/profile.
type ProfileView struct {
	ID          string        `json:"id"`
	Username    string        `json:"username"`
	Name        string        `json:"name"`
	Email       string        `json:"email,omitempty"`
	Avatar      string        `json:"avatar,omitempty"`
	Bio         string        `json:"bio,omitempty"`
	Location    string        `json:"location,omitempty"`
	Website     string        `json:"website,omitempty"`
	JoinedAt    time.Time     `json:"joinedAt"`
	Counts      ProfileCounts `json:"counts"`
	IsFollowing bool          `json:"isFollowing"`
}
