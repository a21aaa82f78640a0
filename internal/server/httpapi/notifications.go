package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/validate"
)

var notificationTypes = []string{
	models.NotificationLike,
	models.NotificationComment,
	models.NotificationFollow,
	models.NotificationMessage,
}

func (a *API) listNotifications(c *gin.Context) {
	page, limit := validate.Pagination(c.Query("page"), c.Query("limit"))
	typ := c.Query("type")

	v := validate.New()
	v.OneOf("type", typ, notificationTypes)
	if err := v.Err(); err != nil {
		a.fail(c, err)
		return
	}

	res, err := a.Notifications.List(c.Request.Context(), callerID(c), typ, page, limit)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.okDegraded(c, http.StatusOK, res.Value, res.Degraded)
}

type markReadRequest struct {
	NotificationIDs []string `json:"notificationIds"`
}

func (a *API) markNotificationsRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, badBody())
		return
	}
	if len(req.NotificationIDs) == 0 {
		a.fail(c, &validate.Errors{Fields: []validate.FieldError{{Field: "notificationIds", Message: "is required"}}})
		return
	}

	updated, err := a.Notifications.MarkRead(c.Request.Context(), callerID(c), req.NotificationIDs)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusOK, gin.H{"updated": updated})
}
