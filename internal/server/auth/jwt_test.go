package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/server/models"
)

var testSecret = []byte("test-secret")

func TestVerify_RoundTrip(t *testing.T) {
	id := &models.Identity{UserID: "u-1", Name: "Alice", Email: "alice@campus.edu"}
	token, err := GenerateToken(id, testSecret, time.Minute)
	require.NoError(t, err)

	got, err := NewJWTVerifier(testSecret).Verify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestVerify_Expired(t *testing.T) {
	id := &models.Identity{UserID: "u-1"}
	token, err := GenerateToken(id, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = NewJWTVerifier(testSecret).Verify(context.Background(), token)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	id := &models.Identity{UserID: "u-1"}
	token, err := GenerateToken(id, testSecret, time.Minute)
	require.NoError(t, err)

	_, err = NewJWTVerifier([]byte("other-secret")).Verify(context.Background(), token)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_EmptyCredential(t *testing.T) {
	_, err := NewJWTVerifier(testSecret).Verify(context.Background(), "")
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewJWTVerifier(testSecret).Verify(context.Background(), "not.a.token")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, CheckPassword(hash, "s3cret-pass"))
	require.False(t, CheckPassword(hash, "wrong"))
}
