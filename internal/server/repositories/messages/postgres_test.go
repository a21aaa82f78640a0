package messages

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

func TestPairKey(t *testing.T) {
	low, high := PairKey("b", "a")
	if low != "a" || high != "b" {
		t.Fatalf("want ordered pair (a, b), got (%s, %s)", low, high)
	}
	low, high = PairKey("a", "b")
	if low != "a" || high != "b" {
		t.Fatalf("order must not depend on argument order, got (%s, %s)", low, high)
	}
}

func TestFindConversation_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT.+FROM\s+conversations`).
		WithArgs("a", "b").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindConversation(context.Background(), "a", "b")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestCreateConversation_DuplicatePair(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+conversations`).
		WithArgs("c-1", "a", "b").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "conversations_user_low_id_user_high_id_key"})

	err := repo.CreateConversation(context.Background(), &models.Conversation{ID: "c-1", UserLowID: "a", UserHighID: "b"})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("want common.ErrConflict for duplicate pair, got %v", err)
	}
}

func TestListConversations_NullLastMessage(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "updated_at",
		"peer_id", "peer_username", "peer_name", "peer_avatar",
		"msg_id", "msg_sender", "msg_content", "msg_created_at",
	}).
		AddRow("c-1", now, "u-2", "bob", "Bob", "", "m-1", "u-2", "hey", now).
		AddRow("c-2", now, "u-3", "carol", "Carol", "", nil, nil, nil, nil)

	mock.ExpectQuery(`(?s)^\s*SELECT.+FROM\s+conversations\s+c`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListConversations(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListConversations error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 conversations, got %d", len(got))
	}
	if got[0].LastMessage == nil || got[0].LastMessage.Content != "hey" {
		t.Fatalf("first thread must carry its last message: %+v", got[0].LastMessage)
	}
	if got[1].LastMessage != nil {
		t.Fatalf("empty thread must have no last message: %+v", got[1].LastMessage)
	}
}
