// Package repomanager vends repository implementations for one backend and
// exposes the schema migration hook. The Postgres manager is the primary
// store; the memory package provides an interchangeable in-process backend
// used as the read fallback and as a test double.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/campushub/campushub/internal/dbx"
	"github.com/campushub/campushub/internal/server/repositories/comments"
	"github.com/campushub/campushub/internal/server/repositories/follows"
	"github.com/campushub/campushub/internal/server/repositories/listings"
	"github.com/campushub/campushub/internal/server/repositories/messages"
	"github.com/campushub/campushub/internal/server/repositories/notifications"
	"github.com/campushub/campushub/internal/server/repositories/posts"
	"github.com/campushub/campushub/internal/server/repositories/refreshtokens"
	"github.com/campushub/campushub/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Posts(db dbx.DBTX) posts.Repository
	Comments(db dbx.DBTX) comments.Repository
	Follows(db dbx.DBTX) follows.Repository
	Messages(db dbx.DBTX) messages.Repository
	Notifications(db dbx.DBTX) notifications.Repository
	Listings(db dbx.DBTX) listings.Repository
}
