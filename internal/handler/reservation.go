package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/casamia/hotel-management/internal/config"
	"github.com/casamia/hotel-management/internal/model"
	"github.com/casamia/hotel-management/internal/queue"
	"github.com/casamia/hotel-management/internal/repository"
	"github.com/casamia/hotel-management/internal/service"
)

const stayDateLayout = "2006-01-02"

// ReservationHandler bundles dependencies for the booking flow.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Rooms        *repository.RoomRepo
	Hotels       *repository.HotelRepo
	Extras       *repository.ExtraServiceRepo
}

func NewReservationHandler(res *repository.ReservationRepo, rooms *repository.RoomRepo, hotels *repository.HotelRepo, extras *repository.ExtraServiceRepo) *ReservationHandler {
	if res == nil || rooms == nil || hotels == nil || extras == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: res, Rooms: rooms, Hotels: hotels, Extras: extras}
}

type createReservationReq struct {
	RoomID          uint64   `json:"room_id" validate:"required"`
	DateEntry       string   `json:"date_entry" validate:"required"`
	DepartureDate   string   `json:"departure_date" validate:"required"`
	ExtraServiceIDs []uint64 `json:"extra_service_ids"`
}

type reservationResp struct {
	ID            uint64   `json:"id"`
	RoomID        uint64   `json:"room_id"`
	DateEntry     string   `json:"date_entry"`
	DepartureDate string   `json:"departure_date"`
	ExtraServices []uint64 `json:"extra_service_ids"`
}

// Create books a room for the authenticated guest. Stay dates are
// calendar dates and the departure must be strictly after the entry;
// extra services are linked in the same transaction as the booking.
func (h *ReservationHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}

	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	entry, err := time.Parse(stayDateLayout, req.DateEntry)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_entry must be YYYY-MM-DD"})
	}
	departure, err := time.Parse(stayDateLayout, req.DepartureDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "departure_date must be YYYY-MM-DD"})
	}
	if !departure.After(entry) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "departure_date must be after date_entry"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "room lookup failed"})
	}

	if len(req.ExtraServiceIDs) > 0 {
		n, err := h.Extras.CountByIDs(ctx, req.ExtraServiceIDs)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "extra service lookup failed"})
		}
		if n != len(req.ExtraServiceIDs) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown extra service id"})
		}
	}

	res := model.Reservation{
		UserID:        uid,
		RoomID:        req.RoomID,
		DateEntry:     entry,
		DepartureDate: departure,
	}
	if err := h.Reservations.Create(ctx, &res, req.ExtraServiceIDs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}

	go h.announceBooking(res, room)

	ids := req.ExtraServiceIDs
	if ids == nil {
		ids = []uint64{}
	}
	return c.JSON(http.StatusCreated, reservationResp{
		ID:            res.ID,
		RoomID:        res.RoomID,
		DateEntry:     req.DateEntry,
		DepartureDate: req.DepartureDate,
		ExtraServices: ids,
	})
}

// announceBooking publishes the confirmation event. Best-effort; the
// booking already committed and a broker outage must not undo it.
func (h *ReservationHandler) announceBooking(res model.Reservation, room model.Room) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hotelName := ""
	if hotel, err := h.Hotels.GetByID(ctx, room.HotelID); err == nil {
		hotelName = hotel.Name
	}
	err := service.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		RoomID:        res.RoomID,
		HotelID:       room.HotelID,
		HotelName:     hotelName,
		RoomNumber:    room.RoomNumber,
		DateEntry:     res.DateEntry.Format(stayDateLayout),
		DepartureDate: res.DepartureDate.Format(stayDateLayout),
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		config.GetLogger().WithError(err).Warn("booking confirmation not published")
	}
}

// ListMine returns the authenticated guest's bookings, newest first.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Reservations.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, bookings)
}
