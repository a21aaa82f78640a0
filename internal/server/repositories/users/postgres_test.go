package users

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
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(now)
	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+users`).
		WithArgs("u-1", "a@b.com", "a_x1y2", "Alice", "hash", "https://cdn/a.svg").
		WillReturnRows(rows)

	u := &models.User{ID: "u-1", Email: "a@b.com", Username: "a_x1y2", Name: "Alice",
		PasswordHash: "hash", Avatar: "https://cdn/a.svg"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected created_at: %v", got.CreatedAt)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{ID: "u-1", Email: "a@b.com"})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("want common.ErrConflict, got %v", err)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT\s+.*FROM\s+users\s+WHERE\s+email`).
		WithArgs("ghost@b.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@b.com")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "username", "name", "password_hash",
		"avatar", "bio", "location", "website", "created_at"}).
		AddRow("u-1", "a@b.com", "a_x1y2", "Alice", "hash", "", "", "", "", time.Now())
	mock.ExpectQuery(`(?s)^\s*SELECT\s+.*FROM\s+users\s+WHERE\s+id`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Email != "a@b.com" || got.Username != "a_x1y2" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCounts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"followers", "following", "posts", "listings"}).
		AddRow(3, 5, 7, 2)
	mock.ExpectQuery(`(?s)^\s*SELECT`).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.Counts(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Counts error: %v", err)
	}
	want := models.ProfileCounts{Followers: 3, Following: 5, Posts: 7, Listings: 2}
	if *got != want {
		t.Fatalf("unexpected counts: %+v", got)
	}
}
