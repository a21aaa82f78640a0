package memory

import (
	"context"
	"sort"

	"github.com/campushub/campushub/internal/server/models"
)

type notifRepo struct {
	m *Manager
}

func (r *notifRepo) Create(ctx context.Context, n *models.Notification) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	if n.CreatedAt.IsZero() {
		n.CreatedAt = now()
	}
	stored := *n
	r.m.notifs[stored.ID] = &stored
	return nil
}

func (r *notifRepo) List(ctx context.Context, userID, typ string, limit, offset int) ([]models.Notification, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	all := []models.Notification{}
	for _, n := range r.m.notifs {
		if n.UserID != userID {
			continue
		}
		if typ != "" && n.Type != typ {
			continue
		}
		all = append(all, *n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	result := []models.Notification{}
	for i := offset; i < len(all) && len(result) < limit; i++ {
		result = append(result, all[i])
	}
	return result, nil
}

func (r *notifRepo) Count(ctx context.Context, userID, typ string) (int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return 0, err
	}

	n := 0
	for _, rec := range r.m.notifs {
		if rec.UserID != userID {
			continue
		}
		if typ != "" && rec.Type != typ {
			continue
		}
		n++
	}
	return n, nil
}

func (r *notifRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return 0, err
	}

	n := 0
	for _, rec := range r.m.notifs {
		if rec.UserID == userID && !rec.Read {
			n++
		}
	}
	return n, nil
}

func (r *notifRepo) MarkRead(ctx context.Context, userID string, ids []string) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return 0, err
	}

	changed := 0
	for _, id := range ids {
		rec, ok := r.m.notifs[id]
		if !ok || rec.UserID != userID || rec.Read {
			continue
		}
		rec.Read = true
		changed++
	}
	return changed, nil
}
