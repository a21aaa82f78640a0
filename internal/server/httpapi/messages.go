package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/server/validate"
)

// messages serves both shapes of GET /api/messages: without a
// conversationId it lists the caller's threads; with one it returns that
// thread's messages.
func (a *API) messages(c *gin.Context) {
	if conversationID := c.Query("conversationId"); conversationID != "" {
		res, err := a.Messages.Thread(c.Request.Context(), callerID(c), conversationID)
		if err != nil {
			a.fail(c, err)
			return
		}
		a.okDegraded(c, http.StatusOK, res.Value, res.Degraded)
		return
	}

	res, err := a.Messages.Conversations(c.Request.Context(), callerID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	a.okDegraded(c, http.StatusOK, gin.H{"conversations": res.Value}, res.Degraded)
}

type messageRequest struct {
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
}

func (a *API) sendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, badBody())
		return
	}

	v := validate.New()
	v.Require("recipientId", req.RecipientID)
	v.Require("content", req.Content)
	v.Length("content", req.Content, 1, 2000)
	if err := v.Err(); err != nil {
		a.fail(c, err)
		return
	}

	view, err := a.Messages.Send(c.Request.Context(), callerID(c), req.RecipientID, req.Content)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusCreated, view)
}
