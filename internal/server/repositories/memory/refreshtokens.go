package memory

import (
	"context"
	"time"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/server/models"
)

type tokenRepo struct {
	m *Manager
}

func (r *tokenRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	r.m.tokens[token] = &models.RefreshToken{
		UserID:  userID,
		Token:   token,
		Expires: now().Add(validity),
	}
	return nil
}

func (r *tokenRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	t, ok := r.m.tokens[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (r *tokenRepo) Delete(ctx context.Context, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	if _, ok := r.m.tokens[token]; !ok {
		return common.ErrNotFound
	}
	delete(r.m.tokens, token)
	return nil
}
