package http

import (
	"net/http"
	"time"

	"attomax-partners/internal/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Health  database.Service
	Webhook *WebhookHandler
	Partner *PartnerHandler
	Admin   *AdminHandler
	Sync    *SyncHandler

	CORSOrigins []string
}

// NewRouter assembles the gin engine with all routes and middleware.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		stats := deps.Health.Health()
		status := http.StatusOK
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, stats)
	})

	api := r.Group("/api")
	{
		api.POST("/webhooks/shopify/orders", deps.Webhook.HandleShopifyOrders)
		api.POST("/shopify/sync", deps.Sync.SyncProducts)

		admin := api.Group("/admin")
		{
			admin.POST("/partners", deps.Partner.Create)
			admin.GET("/partners", deps.Partner.List)
			admin.GET("/partners/:id", deps.Partner.Get)
			admin.GET("/partners/:id/stats", deps.Partner.Stats)
			admin.GET("/orders", deps.Admin.ListOrders)
			admin.GET("/commissions", deps.Admin.ListCommissions)
		}
	}

	return r
}
