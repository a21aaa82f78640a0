package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/server/models"
)

const identityKey = "identity"

// requireAuth resolves the bearer token into an identity and aborts with
// 401 when it cannot. It runs before any validation or service call.
func (a *API) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := a.Verifier.Verify(c.Request.Context(), bearerToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Error: "unauthorized"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// optionalAuth resolves the identity when a valid token is present and
// leaves the request anonymous otherwise. Public reads use it so views can
// still be caller-relative for signed-in users.
func (a *API) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, err := a.Verifier.Verify(c.Request.Context(), bearerToken(c)); err == nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return token
}

// identity returns the resolved caller, or nil for an anonymous request.
func identity(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	return v.(*models.Identity)
}

// callerID returns the resolved caller's id, or "" for anonymous.
func callerID(c *gin.Context) string {
	if id := identity(c); id != nil {
		return id.UserID
	}
	return ""
}
