package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/magala-news-api/internal/config"
	"github.com/magala-news-api/internal/service"
	"github.com/rs/zerolog"
)

// storeTimeout bounds every store call made on behalf of a request
const storeTimeout = 5 * time.Second

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	articleHandler := NewArticleHandler(services, log)
	categoryHandler := NewCategoryHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	newsletterHandler := NewNewsletterHandler(services, log)
	authHandler := NewAuthHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	adminOnly := []gin.HandlerFunc{
		RequireAuth(services.Auth),
		RequireVerifiedEmail(),
		RequireAdmin(),
	}

	api := router.Group("/api")
	{
		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", append(adminOnly, categoryHandler.Create)...)
			categories.PATCH("/:id", append(adminOnly, categoryHandler.Update)...)
			categories.DELETE("/:id", append(adminOnly, categoryHandler.Delete)...)
		}

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.GET("/featured", articleHandler.Featured)
			articles.GET("/breaking", articleHandler.Breaking)
			articles.GET("/latest", articleHandler.Latest)
			articles.GET("/trending", articleHandler.Trending)
			articles.GET("/search", articleHandler.Search)
			articles.GET("/:id", articleHandler.Get)
			articles.POST("", append(adminOnly, articleHandler.Create)...)
			articles.PATCH("/:id", append(adminOnly, articleHandler.Update)...)
			articles.DELETE("/:id", append(adminOnly, articleHandler.Delete)...)
			articles.POST("/:id/like", articleHandler.Like)
			articles.GET("/:id/comments", commentHandler.ListByArticle)
		}

		comments := api.Group("/comments")
		{
			comments.GET("/top", commentHandler.Top)
			comments.POST("", RequireAuth(services.Auth), commentHandler.Create)
			comments.POST("/:id/like", commentHandler.Like)
			comments.POST("/:id/dislike", commentHandler.Dislike)
		}

		api.POST("/newsletter/subscribe", newsletterHandler.Subscribe)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/verify-email", authHandler.VerifyEmail)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", RequireAuth(services.Auth), authHandler.Me)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "magala-news-api",
	})
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), storeTimeout)
}
