package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/casamia/hotel-management/internal/config"
	"github.com/casamia/hotel-management/internal/model"
	"github.com/casamia/hotel-management/internal/queue"
	"github.com/casamia/hotel-management/internal/repository"
	"github.com/casamia/hotel-management/internal/service"
)

// StayLoader resolves reservations to their full stay detail and a
// guest's reservations to their hotel refs. The reservation repository
// satisfies it; tests substitute fakes.
type StayLoader interface {
	GetStay(ctx context.Context, reservationID uint64) (*repository.StayDetail, error)
	ListGuestStayRefs(ctx context.Context, userID uint64) ([]repository.GuestStayRef, error)
}

// InvoiceIssuer issues (or returns the existing) invoice for a stay.
type InvoiceIssuer interface {
	GetOrCreate(ctx context.Context, stay *repository.StayDetail) (model.Invoice, bool, error)
}

// InvoiceLister provides the invoice listing views.
type InvoiceLister interface {
	ListByHotel(ctx context.Context, hotelID uint64) ([]repository.InvoiceDetail, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.InvoiceDetail, error)
	ListByReservationIDs(ctx context.Context, ids []uint64) ([]repository.InvoiceDetail, error)
}

// HotelGate resolves a hotel so its administrator can be checked.
type HotelGate interface {
	GetByID(ctx context.Context, id uint64) (model.Hotel, error)
}

// InvoiceHandler serves invoice generation and listing. Generation is
// lazy and idempotent: the first request creates the invoice, every
// later request re-renders the frozen record.
type InvoiceHandler struct {
	Stays      StayLoader
	Engine     InvoiceIssuer
	Invoices   InvoiceLister
	Hotels     HotelGate
	InvoiceDir string
}

func NewInvoiceHandler(stays StayLoader, engine InvoiceIssuer, invoices InvoiceLister, hotels HotelGate, invoiceDir string) *InvoiceHandler {
	if stays == nil || engine == nil || invoices == nil || hotels == nil {
		panic("nil dependency passed to NewInvoiceHandler")
	}
	return &InvoiceHandler{Stays: stays, Engine: engine, Invoices: invoices, Hotels: hotels, InvoiceDir: invoiceDir}
}

// GenerateForGuest serves the guest's own invoice as a styled PDF
// download. Only the reservation's guest may call it.
func (h *InvoiceHandler) GenerateForGuest(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	resID, err := pathID(c, "reservationId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stay, err := h.Stays.GetStay(ctx, resID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation lookup failed"})
	}
	if stay.GuestID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
	}
	return h.issueAndServe(ctx, c, stay, service.DetailCustomer)
}

// GenerateForAdmin serves the back-office PDF. The caller must
// administer the hotel the stay took place in, or be a platform admin.
func (h *InvoiceHandler) GenerateForAdmin(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	resID, err := pathID(c, "reservationId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stay, err := h.Stays.GetStay(ctx, resID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation lookup failed"})
	}
	if getRole(c) != model.RolePlatformAdmin && stay.HotelAdminID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your hotel"})
	}
	return h.issueAndServe(ctx, c, stay, service.DetailAdmin)
}

func (h *InvoiceHandler) issueAndServe(ctx context.Context, c echo.Context, stay *repository.StayDetail, level service.DetailLevel) error {
	inv, created, err := h.Engine.GetOrCreate(ctx, stay)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStay) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "reservation has no chargeable nights"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue invoice failed"})
	}
	if created {
		go announceInvoice(stay, inv)
	}

	path, err := service.WriteInvoiceFile(h.InvoiceDir, stay, inv, level)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render invoice failed"})
	}
	return c.Attachment(path, filepath.Base(path))
}

// announceInvoice publishes the issued event, best-effort. Only fires
// on creation; re-renders stay silent.
func announceInvoice(stay *repository.StayDetail, inv model.Invoice) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := service.PublishInvoiceIssued(ctx, queue.InvoiceIssuedEvent{
		InvoiceID:     inv.ID,
		InvoiceNumber: service.InvoiceNumber(inv.PublicRef),
		ReservationID: inv.ReservationID,
		HotelID:       stay.HotelID,
		HotelName:     stay.HotelName,
		GuestID:       stay.GuestID,
		TotalCents:    inv.TotalCents,
		IssuedAt:      inv.IssuedAt.Format(time.RFC3339),
	})
	if err != nil {
		config.GetLogger().WithError(err).Warn("invoice issue not published")
	}
}

// ListByHotel returns the invoices of one hotel. The hotel's
// administrator or a platform admin only.
func (h *InvoiceHandler) ListByHotel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	hotelID, err := pathID(c, "hotelId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := h.Hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hotel lookup failed"})
	}
	if getRole(c) != model.RolePlatformAdmin && hotel.AdminID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your hotel"})
	}

	list, err := h.Invoices.ListByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list invoices failed"})
	}
	return c.JSON(http.StatusOK, list)
}

// ListByUser returns a guest's invoices. The guest themself or a
// platform admin only.
func (h *InvoiceHandler) ListByUser(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if getRole(c) != model.RolePlatformAdmin && uid != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your invoices"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Invoices.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list invoices failed"})
	}
	return c.JSON(http.StatusOK, list)
}

// ListForGuestByAdmin returns a guest's invoices restricted to the
// hotels the caller administers. A guest with no reservations at all is
// 404; a guest whose reservations are all in other hotels is 403. A
// platform admin sees every reservation of the guest.
func (h *InvoiceHandler) ListForGuestByAdmin(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	refs, err := h.Stays.ListGuestStayRefs(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation lookup failed"})
	}
	if len(refs) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user has no reservations"})
	}

	platform := getRole(c) == model.RolePlatformAdmin
	ids := make([]uint64, 0, len(refs))
	for _, ref := range refs {
		if platform || ref.HotelAdminID == uid {
			ids = append(ids, ref.ReservationID)
		}
	}
	if len(ids) == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no reservations in your hotels"})
	}

	list, err := h.Invoices.ListByReservationIDs(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list invoices failed"})
	}
	return c.JSON(http.StatusOK, list)
}
