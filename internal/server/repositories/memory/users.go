package memory

import (
	"context"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/server/models"
)

type userRepo struct {
	m *Manager
}

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	if _, taken := r.m.emailIdx[user.Email]; taken {
		return nil, common.ErrConflict
	}
	if _, taken := r.m.userIdx[user.Username]; taken {
		return nil, common.ErrConflict
	}

	stored := *user
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now()
	}
	r.m.users[stored.ID] = &stored
	r.m.emailIdx[stored.Email] = stored.ID
	r.m.userIdx[stored.Username] = stored.ID

	out := stored
	return &out, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	id, ok := r.m.emailIdx[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *r.m.users[id]
	return &out, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, user *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	stored, ok := r.m.users[user.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	stored.Name = user.Name
	stored.Avatar = user.Avatar
	stored.Bio = user.Bio
	stored.Location = user.Location
	stored.Website = user.Website

	out := *stored
	return &out, nil
}

func (r *userRepo) Counts(ctx context.Context, userID string) (*models.ProfileCounts, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	counts := &models.ProfileCounts{}
	for key := range r.m.follows {
		if key[1] == userID {
			counts.Followers++
		}
		if key[0] == userID {
			counts.Following++
		}
	}
	for _, p := range r.m.posts {
		if p.AuthorID == userID {
			counts.Posts++
		}
	}
	for _, l := range r.m.listings {
		if l.SellerID == userID {
			counts.Listings++
		}
	}
	return counts, nil
}
