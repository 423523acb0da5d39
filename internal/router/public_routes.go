package router

import (
	"github.com/labstack/echo/v4"

	"github.com/casamia/hotel-management/internal/config"
	"github.com/casamia/hotel-management/internal/handler"
	"github.com/casamia/hotel-management/internal/middleware"
)

// registerAuth mounts registration and login, plus the authenticated
// whoami endpoint.
func registerAuth(v1 *echo.Group, cfg config.Config, a *handler.AuthHandler) {
	g := v1.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	v1.GET("/me", a.Me, middleware.JWTAuth(cfg.JWTSecret))
}

// registerPublic mounts the unauthenticated browse endpoints: hotels,
// rooms, extra services and events are readable by guests so they can
// pick a stay before registering.
func registerPublic(v1 *echo.Group, h Handlers) {
	v1.GET("/hotels", h.Hotels.List)
	v1.GET("/hotels/:id", h.Hotels.Get)
	v1.GET("/hotels/:id/rooms", h.Rooms.ListByHotel)
	v1.GET("/extra-services", h.ExtraServices.List)
	v1.GET("/events/hotel/:hotelId", h.Events.ListByHotel)
	v1.GET("/events/:eventId", h.Events.Get)
}
