package memory

import (
	"context"
	"sort"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/server/models"
)

type postRepo struct {
	m *Manager
}

func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	if _, ok := r.m.users[post.AuthorID]; !ok {
		return common.ErrNotFound
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now()
	}
	stored := *post
	r.m.posts[stored.ID] = &stored
	return nil
}

func (r *postRepo) GetRecord(ctx context.Context, id string) (*models.Post, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	p, ok := r.m.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *postRepo) Get(ctx context.Context, id, viewerID string) (*models.PostView, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	p, ok := r.m.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	view := r.view(p, viewerID)
	return &view, nil
}

func (r *postRepo) List(ctx context.Context, viewerID string, limit, offset int) ([]models.PostView, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	all := make([]*models.Post, 0, len(r.m.posts))
	for _, p := range r.m.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	result := []models.PostView{}
	for i := offset; i < len(all) && len(result) < limit; i++ {
		result = append(result, r.view(all[i], viewerID))
	}
	return result, nil
}

func (r *postRepo) Count(ctx context.Context) (int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return 0, err
	}
	return len(r.m.posts), nil
}

func (r *postRepo) Update(ctx context.Context, post *models.Post) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	stored, ok := r.m.posts[post.ID]
	if !ok {
		return common.ErrNotFound
	}
	stored.Content = post.Content
	stored.Image = post.Image
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	if _, ok := r.m.posts[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.m.posts, id)
	for key := range r.m.likes {
		if key[1] == id {
			delete(r.m.likes, key)
		}
	}
	for cid, c := range r.m.comments {
		if c.PostID == id {
			delete(r.m.comments, cid)
		}
	}
	return nil
}

func (r *postRepo) InsertLike(ctx context.Context, userID, postID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	if _, ok := r.m.posts[postID]; !ok {
		return common.ErrNotFound
	}
	key := pair{userID, postID}
	if _, dup := r.m.likes[key]; dup {
		return common.ErrConflict
	}
	r.m.likes[key] = now()
	return nil
}

func (r *postRepo) DeleteLike(ctx context.Context, userID, postID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	key := pair{userID, postID}
	if _, ok := r.m.likes[key]; !ok {
		return common.ErrNotFound
	}
	delete(r.m.likes, key)
	return nil
}

// view assembles a PostView; caller holds at least the read lock.
func (r *postRepo) view(p *models.Post, viewerID string) models.PostView {
	view := models.PostView{
		ID:        p.ID,
		Author:    r.m.author(p.AuthorID),
		Content:   p.Content,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
	}
	for key := range r.m.likes {
		if key[1] == p.ID {
			view.LikeCount++
			if key[0] == viewerID {
				view.IsLiked = true
			}
		}
	}
	for _, c := range r.m.comments {
		if c.PostID == p.ID {
			view.CommentCount++
		}
	}
	return view
}
