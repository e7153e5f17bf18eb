package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meet0129/Travion.ai-sub000/internal/app/domain/discovery"
	"github.com/meet0129/Travion.ai-sub000/internal/app/domain/pool"
)

// Setup registers every route of the discovery API.
func Setup(r *gin.Engine, discoveryHandlers *discovery.Handlers, poolHandlers *pool.Handlers, logger *zap.Logger) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		discover := api.Group("/discover")
		{
			discover.POST("/destination", discoveryHandlers.ResolveDestination)
			discover.POST("/categories", discoveryHandlers.DiscoverCategories)
		}

		sessions := api.Group("/sessions")
		{
			sessions.POST("", poolHandlers.CreateSession)
			sessions.GET("/:id", poolHandlers.GetSession)
			sessions.POST("/:id/seed", poolHandlers.Seed)
			sessions.POST("/:id/suggestions", poolHandlers.LoadSuggestions)
			sessions.POST("/:id/accept", poolHandlers.Accept)
			sessions.POST("/:id/reject", poolHandlers.Reject)
			sessions.POST("/:id/selected/remove", poolHandlers.RemoveSelected)
		}
	}

	logger.Info("Routes registered")
}
