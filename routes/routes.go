package routes

import (
	"net/http"
	"time"

	"clinvetia/handlers"
	"clinvetia/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Clinvetia"})
	})
}

// RegisterBookingRoutes sets up the booking lifecycle and availability endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.GET("/availability", hb.Booking.GetAvailability)
		bookingGroup.POST("", middleware.RateLimitMiddleware(), hb.Booking.CreateBooking)
		bookingGroup.GET("/session/:token", hb.Booking.GetBookingBySession)
		bookingGroup.GET("/:id", hb.Booking.GetBooking)
		bookingGroup.POST("/:id/expire", hb.Booking.ExpireBooking)
	}
}

// RegisterLeadRoutes sets up contact and ROI session endpoints.
func RegisterLeadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/contacts", middleware.RateLimitMiddleware(), hb.Contact.CreateContact)

	roiGroup := r.Group("/api/roi-sessions")
	{
		roiGroup.POST("", middleware.RateLimitMiddleware(), hb.ROI.CreateSession)
		roiGroup.GET("/:token", hb.ROI.GetSession)
	}
}

// RegisterWhatsAppRoutes sets up the channel webhook.
func RegisterWhatsAppRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/whatsapp/webhook", hb.WhatsApp.VerifyWebhook)
	r.POST("/api/whatsapp/webhook", hb.WhatsApp.ReceiveWebhook)
}

// RegisterAdminRoutes sets up maintenance endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/bookings/backfill-meet-links", hb.Booking.BackfillMeetLinks)
		adminGroup.DELETE("/contacts/:id", hb.Contact.DeleteContact)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Access-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterLeadRoutes(r, hb)
	RegisterWhatsAppRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
