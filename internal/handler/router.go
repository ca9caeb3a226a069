package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"northpole/wishhub/internal/config"
	"northpole/wishhub/internal/handler/middleware"
	jwtpkg "northpole/wishhub/pkg/jwt"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	wishlistHandler *WishlistHandler,
	eventHandler *EventHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public read: anyone may look at a user's list.
	r.GET("/api/v1/users/:user/wishes", wishlistHandler.GetList)

	// Protected routes: the service decides per operation which principal
	// must have signed the request.
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtManager))
	{
		protected.POST("/users/:user/wishes", wishlistHandler.AddWish)

		admin := protected.Group("/admin")
		{
			admin.PUT("/deadline", wishlistHandler.SetDeadline)
			admin.POST("/users/:user/wishes/:id/fulfill", wishlistHandler.MarkFulfilled)
			if eventHandler != nil {
				admin.GET("/events", eventHandler.ListRecent)
			}
		}
	}

	return r
}
