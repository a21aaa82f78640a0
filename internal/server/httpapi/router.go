package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/logging"
	"github.com/campushub/campushub/internal/server/auth"
	"github.com/campushub/campushub/internal/server/services"
)

// API aggregates the resource services behind the HTTP handlers.
type API struct {
	Users         *services.UserService
	Posts         *services.PostService
	Comments      *services.CommentService
	Follows       *services.FollowService
	Messages      *services.MessageService
	Notifications *services.NotificationService
	Listings      *services.ListingService
	Verifier      auth.Verifier
	Logger        logging.Logger
}

// Router builds the gin engine with every route mounted under /api.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", a.signup)
	authGroup.POST("/login", a.login)
	authGroup.POST("/refresh", a.refresh)

	api.GET("/posts", a.requireAuth(), a.feed)
	api.POST("/posts", a.requireAuth(), a.createPost)
	api.GET("/posts/:id", a.optionalAuth(), a.getPost)
	api.PUT("/posts/:id", a.requireAuth(), a.updatePost)
	api.DELETE("/posts/:id", a.requireAuth(), a.deletePost)
	api.POST("/posts/:id/like", a.requireAuth(), a.likePost)
	api.DELETE("/posts/:id/like", a.requireAuth(), a.unlikePost)

	api.GET("/comments", a.optionalAuth(), a.listComments)
	api.POST("/comments", a.requireAuth(), a.createComment)

	api.GET("/profile", a.optionalAuth(), a.getProfile)
	api.PUT("/profile", a.requireAuth(), a.updateProfile)
	api.GET("/profile/:userId/follow", a.optionalAuth(), a.followStatus)
	api.POST("/profile/:userId/follow", a.requireAuth(), a.follow)
	api.DELETE("/profile/:userId/follow", a.requireAuth(), a.unfollow)

	api.GET("/messages", a.requireAuth(), a.messages)
	api.POST("/messages", a.requireAuth(), a.sendMessage)

	api.GET("/notifications", a.requireAuth(), a.listNotifications)
	api.PUT("/notifications", a.requireAuth(), a.markNotificationsRead)

	api.GET("/marketplace", a.optionalAuth(), a.browseListings)
	api.POST("/marketplace", a.requireAuth(), a.createListing)

	return r
}
