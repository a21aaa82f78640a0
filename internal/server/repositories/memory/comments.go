package memory

import (
	"context"
	"sort"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/server/models"
)

type commentRepo struct {
	m *Manager
}

func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	if _, ok := r.m.posts[comment.PostID]; !ok {
		return common.ErrNotFound
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now()
	}
	stored := *comment
	r.m.comments[stored.ID] = &stored
	return nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID string) ([]models.CommentView, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	result := []models.CommentView{}
	for _, c := range r.m.comments {
		if c.PostID != postID {
			continue
		}
		result = append(result, models.CommentView{
			ID:        c.ID,
			PostID:    c.PostID,
			Author:    r.m.author(c.AuthorID),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}
