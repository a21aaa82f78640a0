package pgerr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/common"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, common.ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "likes_pkey"}, common.ErrConflict},
		{"fk", &pgconn.PgError{Code: "23503", ConstraintName: "comments_post_id_fkey"}, common.ErrNotFound},
		{"check", &pgconn.PgError{Code: "23514"}, common.ErrConflict},
		{"conn", &pgconn.PgError{Code: "08006"}, common.ErrUnavailable},
		{"shutdown", &pgconn.PgError{Code: "57P01"}, common.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.in)
			if tt.want == nil {
				require.NoError(t, got)
				return
			}
			require.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslate_UnknownWrapped(t *testing.T) {
	in := fmt.Errorf("syntax error")
	got := Translate(in)
	require.Error(t, got)
	require.True(t, errors.Is(got, in))
	require.NotErrorIs(t, got, common.ErrNotFound)
	require.NotErrorIs(t, got, common.ErrConflict)
	require.NotErrorIs(t, got, common.ErrUnavailable)
}
