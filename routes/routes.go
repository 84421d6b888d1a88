package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mountify/config"
	"mountify/handlers"
	"mountify/middleware"
	"mountify/models"
	"mountify/utils"
)

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/me", hb.GetProfileHandler)
		api.PUT("/fcm-token", hb.UpdateFCMTokenHandler)
		api.PUT("/payment-method", hb.SavePaymentMethodHandler)
	}
}

// RegisterCatalogRoutes registers the public catalog and coverage endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/services", hb.ListServicesHandler)
		api.POST("/coupons/validate", hb.ValidateCouponHandler)
		api.GET("/coverage/:zip", hb.CheckCoverageHandler)
	}
}

// RegisterBookingRoutes sets up the checkout and booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		bookingGroup.POST("/session", hb.StartCheckoutHandler)
		bookingGroup.PUT("/session/:sessionID", hb.UpdateCheckoutHandler)
		bookingGroup.DELETE("/session/:sessionID", hb.CancelCheckoutHandler)
		bookingGroup.POST("/confirm", hb.ConfirmCheckoutHandler)

		bookingGroup.GET("/mine", hb.ListMyBookingsHandler)
		bookingGroup.GET("/:id", hb.GetBookingHandler)
		bookingGroup.DELETE("/:id", hb.CancelBookingHandler)
	}
}

// RegisterWorkerRoutes registers worker onboarding and job endpoints.
func RegisterWorkerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/workers")
	{
		api.POST("/apply", hb.ApplyWorkerHandler)

		jobs := api.Group("")
		jobs.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleWorker))
		jobs.PUT("/jobs/:id/start", hb.StartJobHandler)
		jobs.PUT("/jobs/:id/complete", hb.CompleteJobHandler)
		jobs.POST("/modifications", hb.ProposeModificationHandler)
	}
}

// RegisterInvoiceRoutes registers modification approval and invoice reads,
// all from the customer's side.
func RegisterInvoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/invoices")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/modifications/booking/:bookingID", hb.ListModificationsHandler)
		api.PUT("/modifications/:id/viewed", hb.MarkModificationViewedHandler)
		api.PUT("/modifications/:id/approve", hb.ApproveModificationHandler)
		api.PUT("/modifications/:id/reject", hb.RejectModificationHandler)
		api.GET("/booking/:bookingID", hb.GetInvoiceHandler)
	}
}

// RegisterAdminRoutes sets up the back-office endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleAdmin))
		adminGroup.PUT("/bookings/:id/assign", hb.AssignWorkerHandler)
		adminGroup.POST("/refunds", hb.ProcessRefundHandler)
		adminGroup.POST("/charges", hb.ManualChargeHandler)
		adminGroup.GET("/refunds/:txnID", hb.ListRefundsHandler)
		adminGroup.POST("/modifications", hb.ProposeModificationHandler)

		adminGroup.PUT("/applications/:id/approve", hb.ApproveApplicationHandler)
		adminGroup.PUT("/applications/:id/reject", hb.RejectApplicationHandler)

		adminGroup.DELETE("/transactions/:bookingID", hb.DeleteTransactionsHandler)
		adminGroup.DELETE("/test-users/:email", hb.DeleteTestUserHandler)
		adminGroup.PUT("/workers/:workerID/clear-completed", hb.ClearCompletedHandler)
	}
}

// RegisterHealthRoute registers the health and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"mongo":    status.Mongo,
			"redis":    status.Redis,
			"coverage": hb.Coverage.HealthCheck(c.Request.Context()),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
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
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	RegisterAuthRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterWorkerRoutes(r, hb)
	RegisterInvoiceRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
