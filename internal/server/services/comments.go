package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/campushub/campushub/internal/server/facade"
	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/repomanager"
)

// CommentService implements comment listing and creation.
type CommentService struct {
	*Store
}

func NewCommentService(store *Store) *CommentService {
	return &CommentService{Store: store}
}

// ListByPost returns a post's comments, newest first.
func (s *CommentService) ListByPost(ctx context.Context, postID string) (facade.Result[[]models.CommentView], error) {
	return facade.Read(ctx, s.Facade, "comments.list",
		func(ctx context.Context) ([]models.CommentView, error) {
			return s.Primary.Comments(s.DB).ListByPost(ctx, postID)
		},
		fallbackOp(s.Store, func(ctx context.Context, m repomanager.RepositoryManager) ([]models.CommentView, error) {
			return m.Comments(nil).ListByPost(ctx, postID)
		}),
	)
}

// Create stores a comment on an existing post and notifies the post author.
func (s *CommentService) Create(ctx context.Context, authorID, postID, content string) (*models.CommentView, error) {
	comment := &models.Comment{
		ID:       uuid.NewString(),
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}

	type created struct {
		view       *models.CommentView
		postAuthor string
	}
	res, err := facade.Write(ctx, s.Facade, "comments.create", func(ctx context.Context) (created, error) {
		record, err := s.Primary.Posts(s.DB).GetRecord(ctx, postID)
		if err != nil {
			return created{}, err
		}
		if err := s.Primary.Comments(s.DB).Create(ctx, comment); err != nil {
			return created{}, err
		}
		author, err := s.Primary.Users(s.DB).GetByID(ctx, authorID)
		if err != nil {
			return created{}, err
		}
		view := &models.CommentView{
			ID:        comment.ID,
			PostID:    comment.PostID,
			Author:    models.Author{ID: author.ID, Username: author.Username, Name: author.Name, Avatar: author.Avatar},
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		}
		return created{view: view, postAuthor: record.AuthorID}, nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, res.postAuthor, authorID, models.NotificationComment, postID, "commented on your post")
	return res.view, nil
}
