// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"blog/config"
	"blog/internal/delivery/api/middleware"
	"blog/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	PostHandler     *handler.PostHandler
	CommentHandler  *handler.CommentHandler
	CategoryHandler *handler.CategoryHandler
	TestHandler     *handler.TestHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Config          *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	postHandler     *handler.PostHandler
	commentHandler  *handler.CommentHandler
	categoryHandler *handler.CategoryHandler
	testHandler     *handler.TestHandler
	authMiddleware  *middleware.AuthMiddleware
	config          *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		postHandler:     params.PostHandler,
		commentHandler:  params.CommentHandler,
		categoryHandler: params.CategoryHandler,
		testHandler:     params.TestHandler,
		authMiddleware:  params.AuthMiddleware,
		config:          params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.authMiddleware.Authenticate

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/logout", r.userHandler.Logout)
		authGroup.GET("/me", r.userHandler.Me, auth)
	}

	usersGroup := e.Group("/users")
	{
		usersGroup.GET("", r.userHandler.ListUsers)
		usersGroup.GET("/:id", r.userHandler.GetUser)
	}

	// Reads are public; writes need a bearer token and, for existing posts, ownership.
	postsGroup := e.Group("/posts")
	{
		postsGroup.GET("", r.postHandler.ListPosts)
		postsGroup.GET("/:id", r.postHandler.GetPost)
		postsGroup.GET("/:id/qrcode", r.postHandler.GetPostQRCode)
		postsGroup.POST("", r.postHandler.CreatePost, auth)
		postsGroup.PUT("/:id", r.postHandler.UpdatePost, auth)
		postsGroup.DELETE("/:id", r.postHandler.DeletePost, auth)
	}

	commentsGroup := e.Group("/comments")
	{
		commentsGroup.GET("/posts/:postId", r.commentHandler.ListComments)
		commentsGroup.POST("/posts/:postId", r.commentHandler.CreateComment, auth)
		commentsGroup.PUT("/:id", r.commentHandler.UpdateComment, auth)
		commentsGroup.DELETE("/:id", r.commentHandler.DeleteComment, auth)
	}

	categoriesGroup := e.Group("/categories")
	{
		categoriesGroup.GET("", r.categoryHandler.ListCategories)
		categoriesGroup.GET("/:id", r.categoryHandler.GetCategory)
		categoriesGroup.POST("", r.categoryHandler.CreateCategory, auth)
	}
}

func (r *router) RegisterTestRoutes(e *echo.Echo) {
	// Test routes - only enabled when configured
	if r.config.TestRoutes != nil && r.config.TestRoutes.Enabled {
		testGroup := e.Group("/test")
		testGroup.GET("/public", r.testHandler.TestPublicEndpoint)
		testGroup.GET("/auth", r.testHandler.TestAuthMiddleware, r.authMiddleware.Authenticate)
	}
}
