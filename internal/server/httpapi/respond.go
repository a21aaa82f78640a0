// Package httpapi is the HTTP transport: a gin router, bearer-token
// middleware, and thin handlers that resolve the caller, validate input,
// call a service and format the outcome. All responses share one envelope
// {data?, error?, degraded?} and one exhaustive error-to-status mapping.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/server/facade"
	"github.com/campushub/campushub/internal/server/validate"
)

type envelope struct {
	Data     any    `json:"data,omitempty"`
	Error    string `json:"error,omitempty"`
	Degraded bool   `json:"degraded,omitempty"`
}

func (a *API) ok(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Data: data})
}

func (a *API) okDegraded(c *gin.Context, status int, data any, degraded bool) {
	c.JSON(status, envelope{Data: data, Degraded: degraded})
}

// fail maps an error to its HTTP status. Conflict/not-found messages come
// from the sentinel taxonomy and are safe to expose; unknown failures are
// logged and answered with a generic message so internals never leak.
func (a *API) fail(c *gin.Context, err error) {
	switch facade.Classify(err) {
	case facade.KindValidation:
		var vErr *validate.Errors
		errors.As(err, &vErr)
		c.JSON(http.StatusBadRequest, envelope{Error: "validation failed", Data: gin.H{"fields": vErr.Fields}})
	case facade.KindUnauthenticated:
		c.JSON(http.StatusUnauthorized, envelope{Error: "unauthorized"})
	case facade.KindDenied:
		c.JSON(http.StatusForbidden, envelope{Error: "forbidden"})
	case facade.KindNotFound:
		c.JSON(http.StatusNotFound, envelope{Error: "not found"})
	case facade.KindConflict:
		c.JSON(http.StatusConflict, envelope{Error: err.Error()})
	case facade.KindTransport:
		a.Logger.Error(c.Request.Context(), "store unreachable", "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, envelope{Error: "service temporarily unavailable"})
	default:
		a.Logger.Error(c.Request.Context(), "unhandled error", "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusInternalServerError, envelope{Error: "internal error"})
	}
}

// badBody is the uniform answer to an unparseable request body.
func badBody() error {
	return &validate.Errors{Fields: []validate.FieldError{{Field: "body", Message: "must be valid JSON"}}}
}
