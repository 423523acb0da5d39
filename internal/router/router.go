// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/casamia/hotel-management/internal/config"
	"github.com/casamia/hotel-management/internal/handler"
	"github.com/casamia/hotel-management/internal/middleware"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth          *handler.AuthHandler
	Hotels        *handler.HotelHandler
	Rooms         *handler.RoomHandler
	ExtraServices *handler.ExtraServiceHandler
	Events        *handler.EventHandler
	Reservations  *handler.ReservationHandler
	Invoices      *handler.InvoiceHandler
}

// Register wires all routes onto the Echo instance. Public browse
// endpoints carry no auth; everything else sits behind the JWT
// middleware, with role guards on the admin groups. The rate limiter
// applies to the whole /v1 surface and is a no-op when Redis is
// unavailable.
func Register(e *echo.Echo, cfg config.Config, rl config.RateLimitConfig, rdb *redis.Client, h Handlers) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1", middleware.RateLimit(rl, rdb))

	registerAuth(v1, cfg, h.Auth)
	registerPublic(v1, h)
	registerProtected(v1, cfg, h)
	registerInvoices(v1, cfg, h.Invoices)
}
