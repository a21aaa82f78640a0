// Package memory implements every repository interface over in-process
// maps behind a single mutex, so check-then-insert uniqueness checks are
// atomic even with concurrent callers. It backs two things: the seeded
// read-only fallback dataset served when the primary store is unreachable,
// and a full test double for services and transport tests. Fail simulates
// a backend outage.
package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/campushub/campushub/internal/dbx"
	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/comments"
	"github.com/campushub/campushub/internal/server/repositories/follows"
	"github.com/campushub/campushub/internal/server/repositories/listings"
	"github.com/campushub/campushub/internal/server/repositories/messages"
	"github.com/campushub/campushub/internal/server/repositories/notifications"
	"github.com/campushub/campushub/internal/server/repositories/posts"
	"github.com/campushub/campushub/internal/server/repositories/refreshtokens"
	"github.com/campushub/campushub/internal/server/repositories/users"
)

type pair [2]string

// Manager is an in-memory RepositoryManager. All state is owned by one
// mutex; repository adapters are views over the same Manager.
type Manager struct {
	mu      sync.RWMutex
	failure error

	users     map[string]*models.User
	emailIdx  map[string]string
	userIdx   map[string]string
	posts     map[string]*models.Post
	comments  map[string]*models.Comment
	likes     map[pair]time.Time
	follows   map[pair]time.Time
	convs     map[string]*models.Conversation
	convPairs map[pair]string
	messages  map[string]*models.Message
	notifs    map[string]*models.Notification
	listings  map[string]*models.Listing
	tokens    map[string]*models.RefreshToken
}

func NewManager() *Manager {
	return &Manager{
		users:     map[string]*models.User{},
		emailIdx:  map[string]string{},
		userIdx:   map[string]string{},
		posts:     map[string]*models.Post{},
		comments:  map[string]*models.Comment{},
		likes:     map[pair]time.Time{},
		follows:   map[pair]time.Time{},
		convs:     map[string]*models.Conversation{},
		convPairs: map[pair]string{},
		messages:  map[string]*models.Message{},
		notifs:    map[string]*models.Notification{},
		listings:  map[string]*models.Listing{},
		tokens:    map[string]*models.RefreshToken{},
	}
}

// Fail makes every subsequent operation return err until cleared with
// Fail(nil). Used to simulate a backend outage.
func (m *Manager) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}

func (m *Manager) failed() error {
	return m.failure
}

// RunMigrations is a no-op: the memory backend has no schema.
func (m *Manager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

// The DBTX argument is accepted for interface parity and ignored: the
// memory backend has no transactional handle.

func (m *Manager) Users(dbx.DBTX) users.Repository                 { return &userRepo{m} }
func (m *Manager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return &tokenRepo{m} }
func (m *Manager) Posts(dbx.DBTX) posts.Repository                 { return &postRepo{m} }
func (m *Manager) Comments(dbx.DBTX) comments.Repository           { return &commentRepo{m} }
func (m *Manager) Follows(dbx.DBTX) follows.Repository             { return &followRepo{m} }
func (m *Manager) Messages(dbx.DBTX) messages.Repository           { return &messageRepo{m} }
func (m *Manager) Notifications(dbx.DBTX) notifications.Repository { return &notifRepo{m} }
func (m *Manager) Listings(dbx.DBTX) listings.Repository           { return &listingRepo{m} }

func (m *Manager) author(userID string) models.Author {
	if u, ok := m.users[userID]; ok {
		return models.Author{ID: u.ID, Username: u.Username, Name: u.Name, Avatar: u.Avatar}
	}
	return models.Author{ID: userID}
}
