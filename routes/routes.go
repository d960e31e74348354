package routes

import (
	"net/http"
	"time"

	"tablemate/handlers"
	"tablemate/middleware"
	"tablemate/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("", hb.ChatHandler)
		api.DELETE("/:accountId", hb.ResetChatHandler)
	}
}

// RegisterCatalogRoutes registers read-only catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.GET("/restaurants", hb.ListRestaurantsHandler)
		api.GET("/options", hb.CatalogOptionsHandler)
	}
}

// RegisterAccountRoutes registers per-account profile and booking
// history endpoints.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/accounts")
	{
		api.GET("/:accountId/profile", hb.GetProfileHandler)
		api.GET("/:accountId/bookings", hb.ListBookingsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// periodic monitor's latest snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hi, I'm TableMate",
			"checks":  utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.RateLimitMiddleware())

	RegisterChatRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterAccountRoutes(r, hb)
	RegisterHealthRoute(r)
}
