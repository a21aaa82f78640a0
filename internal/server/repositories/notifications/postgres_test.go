package notifications

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/campushub/campushub/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestList_TypeFilterPassesThrough(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "actor_id", "type", "target_id", "content", "read", "created_at"}).
		AddRow("n-1", "u-1", "u-2", "like", "p-1", "liked your post", false, now)

	mock.ExpectQuery(`(?s)^\s*SELECT.+FROM\s+notifications`).
		WithArgs("u-1", "like", 20, 0).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), "u-1", "like", 20, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].Type != "like" || got[0].Read {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestMarkRead_ExpandsPlaceholders(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE notifications SET read = TRUE WHERE user_id = \$1 AND id IN \(\$2, \$3, \$4\)`).
		WithArgs("u-1", "n-1", "n-2", "n-3").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.MarkRead(context.Background(), "u-1", []string{"n-1", "n-2", "n-3"})
	if err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
	if n != 2 {
		t.Fatalf("want 2 rows changed, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkRead_EmptyList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	n, err := repo.MarkRead(context.Background(), "u-1", nil)
	if err != nil || n != 0 {
		t.Fatalf("want no-op for empty id list, got n=%d err=%v", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query should run: %v", err)
	}
}

func TestCountUnread_Transport(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications`).
		WithArgs("u-1").
		WillReturnError(sql.ErrConnDone)

	_, err := repo.CountUnread(context.Background(), "u-1")
	if errors.Is(err, common.ErrNotFound) || err == nil {
		t.Fatalf("want passthrough error, got %v", err)
	}
}
