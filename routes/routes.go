package routes

import (
	"rezerv/availability"
	"rezerv/booking"
	"rezerv/live"
	"rezerv/middleware"
	"rezerv/ratelim"
	"rezerv/resources"

	"github.com/julienschmidt/httprouter"
)

func AddResourceRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/resources", resources.GetResources)
	router.GET("/api/resources/:id", resources.GetResource)
	router.POST("/api/resources", rl.Limit(middleware.Authenticate(resources.CreateResource)))
	router.PUT("/api/resources/:id", rl.Limit(middleware.Authenticate(resources.UpdateResource)))
}

func AddAvailabilityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/resources/:id/templates", availability.GetTemplates)
	router.POST("/api/resources/:id/templates", rl.Limit(middleware.Authenticate(availability.CreateTemplate)))
	router.DELETE("/api/resources/:id/templates/:templateId", rl.Limit(middleware.Authenticate(availability.DeleteTemplate)))

	router.GET("/api/resources/:id/blackouts", availability.GetBlackouts)
	router.POST("/api/resources/:id/blackouts", rl.Limit(middleware.Authenticate(availability.CreateBlackout)))
	router.DELETE("/api/resources/:id/blackouts/:blackoutId", rl.Limit(middleware.Authenticate(availability.DeleteBlackout)))

	router.GET("/api/resources/:id/slots", availability.GetSlots)
	router.GET("/ws/resources/:id", live.HandleWS)
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/bookings", rl.Limit(middleware.Authenticate(booking.RequestBooking)))
	router.PATCH("/api/bookings/:id/status", rl.Limit(middleware.Authenticate(booking.UpdateBookingStatus)))
	router.GET("/api/bookings", middleware.Authenticate(booking.GetBookings))
	router.GET("/api/bookings/:id/receipt", middleware.Authenticate(booking.PrintReceipt))
}
