package posts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+posts`).
		WithArgs("p-1", "u-1", "hello campus", "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	post := &models.Post{ID: "p-1", AuthorID: "u-1", Content: "hello campus"}
	if err := repo.Create(context.Background(), post); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !post.CreatedAt.Equal(now) {
		t.Fatalf("unexpected created_at: %v", post.CreatedAt)
	}
}

func TestInsertLike_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+likes`).
		WithArgs("u-1", "p-1").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "likes_pkey"})

	err := repo.InsertLike(context.Background(), "u-1", "p-1")
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("want common.ErrConflict for duplicate like, got %v", err)
	}
}

func TestInsertLike_UnknownPost(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+likes`).
		WithArgs("u-1", "ghost").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "likes_post_id_fkey"})

	err := repo.InsertLike(context.Background(), "u-1", "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound for unknown post, got %v", err)
	}
}

func TestDeleteLike_NotLiked(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*DELETE\s+FROM\s+likes`).
		WithArgs("u-1", "p-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteLike(context.Background(), "u-1", "p-1")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound when not liked, got %v", err)
	}
}

func TestDelete_SecondDeleteNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*DELETE\s+FROM\s+posts`).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`(?s)^\s*DELETE\s+FROM\s+posts`).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "p-1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	err := repo.Delete(context.Background(), "p-1")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("second delete must be not-found, got %v", err)
	}
}

func TestList_ScansViews(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "content", "image", "created_at",
		"author_id", "username", "name", "avatar", "like_count", "comment_count", "is_liked"}).
		AddRow("p-2", "second", "", now, "u-1", "alice", "Alice", "", 2, 1, true).
		AddRow("p-1", "first", "", now.Add(-time.Hour), "u-2", "bob", "Bob", "", 0, 0, false)
	mock.ExpectQuery(`(?s)^\s*SELECT\s+p\.id`).
		WithArgs("u-1", 20, 0).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), "u-1", 20, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 posts, got %d", len(got))
	}
	if !got[0].IsLiked || got[0].Author.Username != "alice" {
		t.Fatalf("unexpected first view: %+v", got[0])
	}
}

func TestGetRecord_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT\s+id,\s*author_id`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetRecord(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}
