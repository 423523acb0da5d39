package router

import (
	"github.com/labstack/echo/v4"

	"github.com/casamia/hotel-management/internal/config"
	"github.com/casamia/hotel-management/internal/handler"
	"github.com/casamia/hotel-management/internal/middleware"
	"github.com/casamia/hotel-management/internal/model"
)

// registerProtected mounts the authenticated management and booking
// surface. Write access to hotels and extra services is platform-admin
// only; rooms and events additionally admit the administering
// HOTEL_ADMIN, whose per-hotel entitlement the handlers verify.
func registerProtected(v1 *echo.Group, cfg config.Config, h Handlers) {
	auth := v1.Group("", middleware.JWTAuth(cfg.JWTSecret))

	platform := auth.Group("", middleware.RequireRole(model.RolePlatformAdmin))
	platform.POST("/hotels", h.Hotels.Create)
	platform.POST("/extra-services", h.ExtraServices.Create)

	admins := auth.Group("", middleware.RequireRole(model.RoleHotelAdmin, model.RolePlatformAdmin))
	admins.POST("/hotels/:id/rooms", h.Rooms.Create)
	admins.POST("/events", h.Events.Create)
	admins.PUT("/events/:hotelId/:eventId", h.Events.Update)
	admins.DELETE("/events/:hotelId/:eventId", h.Events.Delete)

	guests := auth.Group("", middleware.RequireRole(model.RoleCustomer))
	guests.POST("/reservations", h.Reservations.Create)
	guests.GET("/reservations", h.Reservations.ListMine)
}

// registerInvoices mounts the invoice surface. All routes require a
// valid bearer; ownership and administration checks live in the
// handlers because they depend on the addressed resource.
func registerInvoices(v1 *echo.Group, cfg config.Config, inv *handler.InvoiceHandler) {
	g := v1.Group("/invoices", middleware.JWTAuth(cfg.JWTSecret))

	g.GET("/generate/:reservationId", inv.GenerateForGuest)
	g.GET("/user/:userId", inv.ListByUser)

	admins := g.Group("/admin", middleware.RequireRole(model.RoleHotelAdmin, model.RolePlatformAdmin))
	admins.GET("/generate/:reservationId", inv.GenerateForAdmin)
	admins.GET("/user/:userId", inv.ListForGuestByAdmin)

	g.GET("/hotel/:hotelId", inv.ListByHotel, middleware.RequireRole(model.RoleHotelAdmin, model.RolePlatformAdmin))
}
