package memory

import (
	"context"

	"github.com/campushub/campushub/internal/common"
)

type followRepo struct {
	m *Manager
}

func (r *followRepo) Create(ctx context.Context, followerID, followeeID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	if _, ok := r.m.users[followeeID]; !ok {
		return common.ErrNotFound
	}
	key := pair{followerID, followeeID}
	if _, dup := r.m.follows[key]; dup {
		return common.ErrConflict
	}
	r.m.follows[key] = now()
	return nil
}

func (r *followRepo) Delete(ctx context.Context, followerID, followeeID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	key := pair{followerID, followeeID}
	if _, ok := r.m.follows[key]; !ok {
		return common.ErrNotFound
	}
	delete(r.m.follows, key)
	return nil
}

func (r *followRepo) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return false, err
	}

	_, ok := r.m.follows[pair{followerID, followeeID}]
	return ok, nil
}

func (r *followRepo) CountFollowers(ctx context.Context, userID string) (int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return 0, err
	}

	n := 0
	for key := range r.m.follows {
		if key[1] == userID {
			n++
		}
	}
	return n, nil
}
