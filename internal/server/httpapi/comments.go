package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/server/validate"
)

func (a *API) listComments(c *gin.Context) {
	postID := c.Query("postId")
	v := validate.New()
	v.Require("postId", postID)
	if err := v.Err(); err != nil {
		a.fail(c, err)
		return
	}

	res, err := a.Comments.ListByPost(c.Request.Context(), postID)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.okDegraded(c, http.StatusOK, gin.H{"comments": res.Value}, res.Degraded)
}

type commentRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

func (a *API) createComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, badBody())
		return
	}

	v := validate.New()
	v.Require("postId", req.PostID)
	v.Require("content", req.Content)
	v.Length("content", req.Content, 1, 500)
	if err := v.Err(); err != nil {
		a.fail(c, err)
		return
	}

	view, err := a.Comments.Create(c.Request.Context(), callerID(c), req.PostID, req.Content)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusCreated, view)
}
