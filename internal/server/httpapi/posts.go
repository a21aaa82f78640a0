package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/server/validate"
)

func (a *API) feed(c *gin.Context) {
	page, limit := validate.Pagination(c.Query("page"), c.Query("limit"))

	res, err := a.Posts.Feed(c.Request.Context(), callerID(c), page, limit)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.okDegraded(c, http.StatusOK, res.Value, res.Degraded)
}

type postRequest struct {
	Content string `json:"content"`
	Image   string `json:"image"`
}

func (v *postRequest) validate() error {
	col := validate.New()
	col.Require("content", v.Content)
	col.Length("content", v.Content, 1, 500)
	col.URL("image", v.Image)
	return col.Err()
}

func (a *API) createPost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, badBody())
		return
	}
	if err := req.validate(); err != nil {
		a.fail(c, err)
		return
	}

	view, err := a.Posts.Create(c.Request.Context(), callerID(c), req.Content, req.Image)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusCreated, view)
}

func (a *API) getPost(c *gin.Context) {
	res, err := a.Posts.Get(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	a.okDegraded(c, http.StatusOK, res.Value, res.Degraded)
}

func (a *API) updatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, badBody())
		return
	}
	if err := req.validate(); err != nil {
		a.fail(c, err)
		return
	}

	view, err := a.Posts.Update(c.Request.Context(), callerID(c), c.Param("id"), req.Content, req.Image)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusOK, view)
}

func (a *API) deletePost(c *gin.Context) {
	if err := a.Posts.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusOK, gin.H{"deleted": true})
}

func (a *API) likePost(c *gin.Context) {
	if err := a.Posts.Like(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusCreated, gin.H{"liked": true})
}

func (a *API) unlikePost(c *gin.Context) {
	if err := a.Posts.Unlike(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusOK, gin.H{"liked": false})
}
