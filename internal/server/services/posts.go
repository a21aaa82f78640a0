package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/server/facade"
	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/repomanager"
)

// PostService implements the feed, single posts, and likes.
type PostService struct {
	*Store
}

func NewPostService(store *Store) *PostService {
	return &PostService{Store: store}
}

// Feed returns one page of the global feed, newest first. On a primary
// outage the page is served from the fallback dataset and marked degraded.
func (s *PostService) Feed(ctx context.Context, viewerID string, page, limit int) (facade.Result[models.FeedPage], error) {
	return facade.Read(ctx, s.Facade, "posts.feed",
		func(ctx context.Context) (models.FeedPage, error) {
			return s.feedFrom(ctx, s.Primary, viewerID, page, limit)
		},
		fallbackOp(s.Store, func(ctx context.Context, m repomanager.RepositoryManager) (models.FeedPage, error) {
			return s.feedFrom(ctx, m, viewerID, page, limit)
		}),
	)
}

// Get returns a single post. An empty viewerID is an anonymous caller and
// always reads IsLiked as false.
func (s *PostService) Get(ctx context.Context, id, viewerID string) (facade.Result[*models.PostView], error) {
	return facade.Read(ctx, s.Facade, "posts.get",
		func(ctx context.Context) (*models.PostView, error) {
			return s.Primary.Posts(s.DB).Get(ctx, id, viewerID)
		},
		fallbackOp(s.Store, func(ctx context.Context, m repomanager.RepositoryManager) (*models.PostView, error) {
			return m.Posts(nil).Get(ctx, id, viewerID)
		}),
	)
}

// Create stores a new post for the author and returns its view.
func (s *PostService) Create(ctx context.Context, authorID, content, image string) (*models.PostView, error) {
	post := &models.Post{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		Content:  content,
		Image:    image,
	}
	return facade.Write(ctx, s.Facade, "posts.create", func(ctx context.Context) (*models.PostView, error) {
		if err := s.Primary.Posts(s.DB).Create(ctx, post); err != nil {
			return nil, err
		}
		return s.Primary.Posts(s.DB).Get(ctx, post.ID, authorID)
	})
}

// Update edits a post's content. Only the author may edit.
func (s *PostService) Update(ctx context.Context, callerID, id, content, image string) (*models.PostView, error) {
	return facade.Write(ctx, s.Facade, "posts.update", func(ctx context.Context) (*models.PostView, error) {
		record, err := s.Primary.Posts(s.DB).GetRecord(ctx, id)
		if err != nil {
			return nil, err
		}
		if record.AuthorID != callerID {
			return nil, common.ErrForbidden
		}
		record.Content = content
		record.Image = image
		if err := s.Primary.Posts(s.DB).Update(ctx, record); err != nil {
			return nil, err
		}
		return s.Primary.Posts(s.DB).Get(ctx, id, callerID)
	})
}

// Delete removes a post. Only the author may delete; a second delete of
// the same id reads as not found.
func (s *PostService) Delete(ctx context.Context, callerID, id string) error {
	_, err := facade.Write(ctx, s.Facade, "posts.delete", func(ctx context.Context) (struct{}, error) {
		record, err := s.Primary.Posts(s.DB).GetRecord(ctx, id)
		if err != nil {
			return struct{}{}, err
		}
		if record.AuthorID != callerID {
			return struct{}{}, common.ErrForbidden
		}
		return struct{}{}, s.Primary.Posts(s.DB).Delete(ctx, id)
	})
	return err
}

// Like records a like. The (user, post) pair is uniquely keyed by the
// store, so a duplicate like surfaces as a conflict without a prior read.
func (s *PostService) Like(ctx context.Context, callerID, postID string) error {
	record, err := facade.Write(ctx, s.Facade, "posts.like", func(ctx context.Context) (*models.Post, error) {
		record, err := s.Primary.Posts(s.DB).GetRecord(ctx, postID)
		if err != nil {
			return nil, err
		}
		return record, s.Primary.Posts(s.DB).InsertLike(ctx, callerID, postID)
	})
	if err != nil {
		return err
	}
	s.notify(ctx, record.AuthorID, callerID, models.NotificationLike, postID, "liked your post")
	return nil
}

// Unlike removes a like; removing one that is not there reads as not found.
func (s *PostService) Unlike(ctx context.Context, callerID, postID string) error {
	_, err := facade.Write(ctx, s.Facade, "posts.unlike", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.Primary.Posts(s.DB).DeleteLike(ctx, callerID, postID)
	})
	return err
}

func (s *PostService) feedFrom(ctx context.Context, m repomanager.RepositoryManager, viewerID string, page, limit int) (models.FeedPage, error) {
	h := s.handle(m)
	views, err := m.Posts(h).List(ctx, viewerID, limit, offsetFor(page, limit))
	if err != nil {
		return models.FeedPage{}, err
	}
	total, err := m.Posts(h).Count(ctx)
	if err != nil {
		return models.FeedPage{}, err
	}
	return models.FeedPage{Posts: views, Pagination: paginate(total, page, limit)}, nil
}
