package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/dbx"
	"github.com/campushub/campushub/internal/server/auth"
	"github.com/campushub/campushub/internal/server/config"
	"github.com/campushub/campushub/internal/server/facade"
	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserService handles account creation, login, token rotation and profiles.
type UserService struct {
	*Store
	secret          []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
}

func NewUserService(store *Store, cfg *config.Config) *UserService {
	return &UserService{
		Store:           store,
		secret:          []byte(cfg.SecretKey),
		accessValidity:  cfg.AccessTokenValidityDuration,
		refreshValidity: cfg.RefreshTokenValidityDuration,
	}
}

// Signup creates an account. The username is derived from the email local
// part with a random suffix to keep it unique without another round-trip;
// the avatar defaults to a generated one seeded by the email.
func (s *UserService) Signup(ctx context.Context, email, password, name string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	suffix, err := common.MakeRandHexString(2)
	if err != nil {
		return nil, err
	}
	local, _, _ := strings.Cut(email, "@")

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     local + suffix,
		Name:         name,
		PasswordHash: hash,
		Avatar:       fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", local),
	}
	return facade.Write(ctx, s.Facade, "users.create", func(ctx context.Context) (*models.User, error) {
		return s.Primary.Users(s.DB).Create(ctx, user)
	})
}

// Login verifies the credentials and mints a token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, *models.User, error) {
	user, err := facade.Write(ctx, s.Facade, "users.get_by_email", func(ctx context.Context) (*models.User, error) {
		return s.Primary.Users(s.DB).GetByEmail(ctx, email)
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrUnauthenticated
		}
		return nil, nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, common.ErrUnauthenticated
	}

	pair, err := facade.Write(ctx, s.Facade, "users.issue_tokens", func(ctx context.Context) (*TokenPair, error) {
		return s.generateTokenPair(ctx, user, s.DB)
	})
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh validates a refresh token, rotates it transactionally, and
// returns a fresh pair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	return facade.Write(ctx, s.Facade, "users.refresh", func(ctx context.Context) (*TokenPair, error) {
		token, err := s.Primary.RefreshTokens(s.DB).Find(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.ErrInvalidToken
			}
			return nil, err
		}
		if token.Expires.Before(time.Now()) {
			return nil, common.ErrRefreshTokenExpired
		}

		user, err := s.Primary.Users(s.DB).GetByID(ctx, token.UserID)
		if err != nil {
			return nil, err
		}

		var pair *TokenPair
		err = s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
			if err := s.Primary.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
				return err
			}
			var genErr error
			pair, genErr = s.generateTokenPair(ctx, user, tx)
			return genErr
		})
		if err != nil {
			return nil, err
		}
		return pair, nil
	})
}

// ProfileUpdate carries the optional profile fields of PUT /api/profile.
// Nil means "leave unchanged".
type ProfileUpdate struct {
	Name     *string
	Bio      *string
	Avatar   *string
	Location *string
	Website  *string
}

// Profile returns a user's public profile with relationship counts and,
// when viewerID is set, whether the viewer follows them.
func (s *UserService) Profile(ctx context.Context, userID, viewerID string) (facade.Result[*models.ProfileView], error) {
	return facade.Read(ctx, s.Facade, "users.profile",
		func(ctx context.Context) (*models.ProfileView, error) {
			return s.profileFrom(ctx, s.Primary, userID, viewerID)
		},
		fallbackOp(s.Store, func(ctx context.Context, m repomanager.RepositoryManager) (*models.ProfileView, error) {
			return s.profileFrom(ctx, m, userID, viewerID)
		}),
	)
}

// UpdateProfile overlays the provided fields onto the caller's account.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.ProfileView, error) {
	updated, err := facade.Write(ctx, s.Facade, "users.update_profile", func(ctx context.Context) (*models.User, error) {
		user, err := s.Primary.Users(s.DB).GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if upd.Name != nil {
			user.Name = *upd.Name
		}
		if upd.Bio != nil {
			user.Bio = *upd.Bio
		}
		if upd.Avatar != nil {
			user.Avatar = *upd.Avatar
		}
		if upd.Location != nil {
			user.Location = *upd.Location
		}
		if upd.Website != nil {
			user.Website = *upd.Website
		}
		return s.Primary.Users(s.DB).UpdateProfile(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	res, err := s.Profile(ctx, updated.ID, userID)
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

func (s *UserService) profileFrom(ctx context.Context, m repomanager.RepositoryManager, userID, viewerID string) (*models.ProfileView, error) {
	h := s.handle(m)
	user, err := m.Users(h).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts, err := m.Users(h).Counts(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &models.ProfileView{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Bio:      user.Bio,
		Location: user.Location,
		Website:  user.Website,
		JoinedAt: user.CreatedAt,
		Counts:   *counts,
	}
	if viewerID == user.ID {
		view.Email = user.Email
	}
	if viewerID != "" && viewerID != user.ID {
		view.IsFollowing, err = m.Follows(h).Exists(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (s *UserService) generateTokenPair(ctx context.Context, user *models.User, h dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(&models.Identity{UserID: user.ID, Name: user.Name, Email: user.Email}, s.secret, s.accessValidity)
	if err != nil {
		return nil, err
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	if err := s.Primary.RefreshTokens(h).Create(ctx, user.ID, refresh, s.refreshValidity); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
