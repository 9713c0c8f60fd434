package routes

import (
	"net/http"
	"time"

	"inkwell/handlers"
	"inkwell/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router needs.
type HandlerBundle struct {
	Quote   *handlers.QuoteHandler
	Book    *handlers.BookHandler
	Device  *handlers.DeviceHandler
	Ranking *handlers.RankingHandler
}

// RegisterQuoteRoutes registers quote endpoints.
func RegisterQuoteRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/quotes")
	{
		// Reading a quote counts a view; no authentication required.
		api.GET("/:id", hb.Quote.GetQuoteHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMemberMiddleware())
		protected.POST("", hb.Quote.CreateQuoteHandler)
		protected.POST("/:id/like", hb.Quote.LikeQuoteHandler)
	}
}

// RegisterBookRoutes registers book endpoints.
func RegisterBookRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/books")
	{
		api.GET("/:id", hb.Book.GetBookHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMemberMiddleware())
		protected.POST("", hb.Book.CreateBookHandler)
	}
}

// RegisterDeviceRoutes registers push registration endpoints.
func RegisterDeviceRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/devices")
	{
		api.Use(middleware.JWTAuthMemberMiddleware())
		api.POST("", hb.Device.RegisterDeviceHandler)
		api.DELETE("/:deviceId", hb.Device.UnregisterDeviceHandler)
	}
}

// RegisterRankingRoutes registers the popularity listings.
func RegisterRankingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/popular")
	{
		api.GET("/quotes", hb.Ranking.PopularQuotesHandler)
		api.GET("/books", hb.Ranking.PopularBooksHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Inkwell"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterQuoteRoutes(r, hb)
	RegisterBookRoutes(r, hb)
	RegisterDeviceRoutes(r, hb)
	RegisterRankingRoutes(r, hb)
}
