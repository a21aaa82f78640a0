package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/server/services"
	"github.com/campushub/campushub/internal/server/validate"
)

func (a *API) getProfile(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = callerID(c)
	}
	v := validate.New()
	v.Require("userId", userID)
	if err := v.Err(); err != nil {
		a.fail(c, err)
		return
	}

	res, err := a.Users.Profile(c.Request.Context(), userID, callerID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	a.okDegraded(c, http.StatusOK, res.Value, res.Degraded)
}

type profileRequest struct {
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
	Location *string `json:"location"`
	Website  *string `json:"website"`
}

func (a *API) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, badBody())
		return
	}

	v := validate.New()
	if req.Name != nil {
		v.Require("name", *req.Name)
		v.Length("name", *req.Name, 1, 100)
	}
	if req.Bio != nil {
		v.Length("bio", *req.Bio, 0, 160)
	}
	if req.Avatar != nil {
		v.URL("avatar", *req.Avatar)
	}
	if req.Website != nil {
		v.URL("website", *req.Website)
	}
	if err := v.Err(); err != nil {
		a.fail(c, err)
		return
	}

	view, err := a.Users.UpdateProfile(c.Request.Context(), callerID(c), toUpdate(req))
	if err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusOK, view)
}

func toUpdate(req profileRequest) services.ProfileUpdate {
	return services.ProfileUpdate{
		Name:     req.Name,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		Location: req.Location,
		Website:  req.Website,
	}
}

func (a *API) followStatus(c *gin.Context) {
	res, err := a.Follows.Status(c.Request.Context(), callerID(c), c.Param("userId"))
	if err != nil {
		a.fail(c, err)
		return
	}
	a.okDegraded(c, http.StatusOK, res.Value, res.Degraded)
}

func (a *API) follow(c *gin.Context) {
	if err := a.Follows.Follow(c.Request.Context(), callerID(c), c.Param("userId")); err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusCreated, gin.H{"following": true})
}

func (a *API) unfollow(c *gin.Context) {
	if err := a.Follows.Unfollow(c.Request.Context(), callerID(c), c.Param("userId")); err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusOK, gin.H{"following": false})
}
