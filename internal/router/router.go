package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	ListEvents(c *ginext.Context)
	GetEvent(c *ginext.Context)
	CreateEvent(c *ginext.Context)
	UpdateEvent(c *ginext.Context)
	DeleteEvent(c *ginext.Context)
	ListBookings(c *ginext.Context)
	CreateBooking(c *ginext.Context)
	CancelBooking(c *ginext.Context)
	GetProfile(c *ginext.Context)
	UpdateProfile(c *ginext.Context)
}

// InitRouter mounts the API under /api. requireAuth guards every route that
// reads the caller identity.
func InitRouter(mode string, h Handler, requireAuth ginext.HandlerFunc, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Events
		api.GET("/events", h.ListEvents)
		api.GET("/events/:id", h.GetEvent)
		api.POST("/events", requireAuth, h.CreateEvent)
		api.PUT("/events/:id", requireAuth, h.UpdateEvent)
		api.DELETE("/events/:id", requireAuth, h.DeleteEvent)

		// Bookings
		bookings := api.Group("/bookings", requireAuth)
		bookings.GET("", h.ListBookings)
		bookings.POST("", h.CreateBooking)
		bookings.PUT("/:id/cancel", h.CancelBooking)

		// Profiles
		profiles := api.Group("/profiles", requireAuth)
		profiles.GET("/me", h.GetProfile)
		profiles.PUT("/me", h.UpdateProfile)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	return router
}
