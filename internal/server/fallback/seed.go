// Package fallback builds the read-only demo dataset served when the
// primary store is unreachable. The dataset lives in a memory.Manager and
// is assembled once at startup; every read served from it is reported as
// degraded by the data access layer.
package fallback

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/memory"
)

type seedUser struct {
	name     string
	username string
	bio      string
	location string
	website  string
}

var demoUsers = []seedUser{
	{name: "John Doe", username: "johndoe", bio: "CS senior, builds web things", location: "North Campus"},
	{name: "Jane Smith", username: "janesmith", bio: "Photography and long walks on the quad", location: "West Hall"},
	{name: "Alex Morgan", username: "alexmorgan", bio: "Digital creator | Web Developer | Photography enthusiast", location: "San Francisco, CA", website: "https://alexmorgan.example.com"},
	{name: "Sarah Parker", username: "sarahp", bio: "Econ major, marketplace regular"},
	{name: "Emily Chen", username: "emilyc", bio: "Grad student, selling half my apartment"},
}

// NewManager assembles the seeded demo store. Errors are impossible short
// of a programming mistake in the seed itself, so it panics instead of
// returning one.
func NewManager() *memory.Manager {
	m := memory.NewManager()
	ctx := context.Background()
	base := time.Now().Add(-48 * time.Hour)

	users := make([]*models.User, 0, len(demoUsers))
	for i, su := range demoUsers {
		u, err := m.Users(nil).Create(ctx, &models.User{
			ID:        uuid.NewString(),
			Email:     su.username + "@campus.edu",
			Username:  su.username,
			Name:      su.name,
			Avatar:    fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", su.username),
			Bio:       su.bio,
			Location:  su.location,
			Website:   su.website,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			panic(fmt.Sprintf("fallback seed: %v", err))
		}
		users = append(users, u)
	}

	posts := []struct {
		author  int
		content string
		image   string
		age     time.Duration
	}{
		{0, "Just launched my new website! Check it out and let me know what you think. #webdev #design", "https://placehold.co/600x400", 2 * time.Hour},
		{1, "Beautiful sunset at the beach today! #nature #sunset #beach", "https://placehold.co/600x400", 5 * time.Hour},
		{2, "Just finished reading this amazing book. Highly recommend it to everyone who loves science fiction!", "", 24 * time.Hour},
		{2, "Just launched my new portfolio website! Check it out and let me know what you think.", "https://placehold.co/600x400", 48 * time.Hour},
	}
	postIDs := make([]string, len(posts))
	for i, sp := range posts {
		p := &models.Post{
			ID:        uuid.NewString(),
			AuthorID:  users[sp.author].ID,
			Content:   sp.content,
			Image:     sp.image,
			CreatedAt: time.Now().Add(-sp.age),
		}
		if err := m.Posts(nil).Create(ctx, p); err != nil {
			panic(fmt.Sprintf("fallback seed: %v", err))
		}
		postIDs[i] = p.ID
	}

	comments := []struct {
		post    int
		author  int
		content string
	}{
		{0, 3, "Looks amazing! Great work!"},
		{0, 4, "The design is so clean and modern. Love it!"},
		{1, 0, "Wow, that's gorgeous! Which beach is this?"},
	}
	for _, sc := range comments {
		err := m.Comments(nil).Create(ctx, &models.Comment{
			ID:       uuid.NewString(),
			PostID:   postIDs[sc.post],
			AuthorID: users[sc.author].ID,
			Content:  sc.content,
		})
		if err != nil {
			panic(fmt.Sprintf("fallback seed: %v", err))
		}
	}

	for i, p := range postIDs {
		for j, u := range users {
			if (i+j)%2 == 0 && users[posts[i].author].ID != u.ID {
				if err := m.Posts(nil).InsertLike(ctx, u.ID, p); err != nil {
					panic(fmt.Sprintf("fallback seed: %v", err))
				}
			}
		}
	}

	listings := []struct {
		seller   int
		title    string
		price    float64
		category string
		location string
	}{
		{4, "iPhone 13 Pro - Excellent Condition", 699.99, "electronics", "North Campus"},
		{3, "Vintage Leather Sofa", 450, "furniture", "West Hall"},
		{4, "Gaming PC - High Spec", 1200, "electronics", "East Dorms"},
		{1, "Intro to Algorithms textbook", 35, "books", "Library"},
		{0, "Two concert tickets for Friday", 60, "tickets", "Student Union"},
	}
	for i, sl := range listings {
		err := m.Listings(nil).Create(ctx, &models.Listing{
			ID:        uuid.NewString(),
			SellerID:  users[sl.seller].ID,
			Title:     sl.title,
			Price:     sl.price,
			Category:  sl.category,
			Image:     "https://placehold.co/300x300",
			Location:  sl.location,
			CreatedAt: time.Now().Add(-time.Duration(i+1) * 6 * time.Hour),
		})
		if err != nil {
			panic(fmt.Sprintf("fallback seed: %v", err))
		}
	}

	return m
}
