package routes

import (
	"net/http"
	"time"

	"shelfspace/handlers"
	"shelfspace/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRentalRoutes sets up the requester-facing reservation endpoints.
func RegisterRentalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/rentals")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("", hb.SubmitRentalHandler)
		api.GET("", hb.ListMyRentalsHandler)
		api.GET("/:id", hb.GetRentalHandler)
		api.PATCH("/:id", hb.UpdateRentalHandler)
		api.DELETE("/:id", hb.CancelRentalHandler)
	}
}

// RegisterShelfRoutes sets up the public calendar probes.
func RegisterShelfRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/shelves")
	{
		api.GET("/:id/availability", hb.ShelfAvailabilityHandler)
		api.GET("/:id/next-available", hb.NextAvailableHandler)
	}
}

// RegisterOwnerRoutes sets up the store-owner decision endpoints.
func RegisterOwnerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/owner")
	{
		api.Use(middleware.AuthMiddleware())
		api.GET("/rentals", hb.ListOwnerRentalsHandler)
		api.POST("/rentals/:id/accept", hb.OwnerAcceptHandler)
		api.POST("/rentals/:id/reject", hb.OwnerRejectHandler)
		api.POST("/rentals/:id/end", hb.EndOccupancyHandler)
		api.POST("/rentals/:id/shipment", hb.AttachShipmentHandler)
	}
}

// RegisterAdminRoutes sets up gate review, manual payment confirmation,
// and the clearance and settlement endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AuthMiddleware(), middleware.AdminAuthMiddleware())
		api.POST("/rentals/:id/decision", hb.AdminDecisionHandler)
		api.POST("/rentals/:id/confirm-payment", hb.ConfirmPaymentHandler)
		api.POST("/rentals/:id/clearance/advance", hb.AdvanceClearanceHandler)
		api.POST("/rentals/:id/clearance/override", hb.OverrideClearanceHandler)
		api.POST("/rentals/:id/clearance/shipment", hb.AttachShipmentHandler)
		api.POST("/rentals/:id/settlement/approve", hb.ApproveSettlementHandler)
		api.POST("/rentals/:id/settlement/complete", hb.CompleteSettlementHandler)
		api.POST("/rentals/:id/settlement/recompute", hb.RecomputeSettlementHandler)
		api.POST("/receipts", hb.UploadReceiptHandler)
	}
}

// RegisterWebhookRoutes sets up the provider callback endpoints. Signature
// verification replaces bearer auth here.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/webhooks")
	{
		api.POST("/stripe", hb.StripeWebhookHandler)
	}
}

// RegisterDisplayRoutes sets up the occupancy record endpoints.
func RegisterDisplayRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/displays")
	{
		api.GET("/slug/:slug", hb.GetDisplayBySlugHandler)
		api.GET("/:id", hb.GetDisplayByIDHandler)
		api.POST("/:id/sales", middleware.AuthMiddleware(), hb.RecordSaleHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRentalRoutes(r, hb)
	RegisterShelfRoutes(r, hb)
	RegisterOwnerRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterDisplayRoutes(r, hb)
	RegisterHealthRoute(r)
}
