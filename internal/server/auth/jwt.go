// Package auth implements credential verification for the request pipeline:
// HS256 access tokens carrying the caller identity, and bcrypt password
// hashing for the credentials store.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/server/models"
)

// Claims extends the registered claims with the caller identity so that
// verification needs no store lookup.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

// GenerateToken mints an HS256 access token for the given identity.
func GenerateToken(identity *models.Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: identity.UserID,
		Name:   identity.Name,
		Email:  identity.Email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verifier turns credential material into an identity context. The JWT
// implementation below does no I/O; test doubles can substitute it.
type Verifier interface {
	Verify(ctx context.Context, credential string) (*models.Identity, error)
}

// JWTVerifier validates HS256 access tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret []byte) *JWTVerifier {
	return &JWTVerifier{secret: secret}
}

// Verify parses and validates the token and returns the embedded identity.
// Any failure maps to the unauthenticated taxonomy; the caller never learns
// whether the token was absent, malformed, or expired beyond errors.Is.
func (v *JWTVerifier) Verify(ctx context.Context, credential string) (*models.Identity, error) {
	if credential == "" {
		return nil, common.ErrUnauthenticated
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return &models.Identity{UserID: claims.UserID, Name: claims.Name, Email: claims.Email}, nil
}
