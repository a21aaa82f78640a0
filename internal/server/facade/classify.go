package facade

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/server/validate"
)

// Kind partitions store and pipeline errors for the failure policy and the
// response formatter. Only KindTransport may trigger read fallback.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindDenied
	KindUnauthenticated
	KindValidation
	KindTransport
)

// Classify maps an error to its Kind using the common sentinel taxonomy
// plus connectivity signals from the driver and the network stack.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, common.ErrNotFound):
		return KindNotFound
	case errors.Is(err, common.ErrConflict):
		return KindConflict
	case errors.Is(err, common.ErrForbidden):
		return KindDenied
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return KindUnauthenticated
	case isValidation(err):
		return KindValidation
	case isTransport(err):
		return KindTransport
	default:
		return KindUnknown
	}
}

func isValidation(err error) bool {
	var vErr *validate.Errors
	return errors.As(err, &vErr)
}

func isTransport(err error) bool {
	if errors.Is(err, common.ErrUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
