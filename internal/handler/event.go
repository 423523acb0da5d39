package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/casamia/hotel-management/internal/model"
	"github.com/casamia/hotel-management/internal/repository"
)

// EventHandler bundles dependencies for hotel event CRUD.
type EventHandler struct {
	Events *repository.EventRepo
	Hotels *repository.HotelRepo
}

func NewEventHandler(events *repository.EventRepo, hotels *repository.HotelRepo) *EventHandler {
	if events == nil || hotels == nil {
		panic("nil repository passed to NewEventHandler")
	}
	return &EventHandler{Events: events, Hotels: hotels}
}

type createEventReq struct {
	HotelID     uint64 `json:"hotel_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	EventDate   string `json:"event_date" validate:"required"`
}

type updateEventReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	EventDate   string `json:"event_date" validate:"required"`
}

type eventResp struct {
	ID          uint64 `json:"id"`
	HotelID     uint64 `json:"hotel_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
}

func toEventResp(ev model.Event) eventResp {
	return eventResp{
		ID: ev.ID, HotelID: ev.HotelID, Name: ev.Name,
		Description: ev.Description, EventDate: ev.EventDate.Format(stayDateLayout),
	}
}

// gateHotel verifies the caller may manage the given hotel: its
// administrator or a platform admin. Returns a non-nil response error
// already written to the client when the caller may not proceed.
func (h *EventHandler) gateHotel(ctx context.Context, c echo.Context, hotelID uint64) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	if getRole(c) == model.RolePlatformAdmin {
		if _, err := h.Hotels.GetByID(ctx, hotelID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hotel lookup failed"})
		}
		return nil
	}
	if _, err := h.Hotels.GetByIDForAdmin(ctx, hotelID, uid); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your hotel"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hotel lookup failed"})
		}
	}
	return nil
}

// Create adds an event to a hotel the caller administers.
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	date, err := time.Parse(stayDateLayout, req.EventDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.gateHotel(ctx, c, req.HotelID); err != nil {
		return err
	}

	ev := model.Event{
		HotelID:     req.HotelID,
		Name:        req.Name,
		Description: req.Description,
		EventDate:   date,
	}
	if err := h.Events.Create(ctx, &ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, toEventResp(ev))
}

// Update modifies an event, addressed by the (hotel, event) pair.
func (h *EventHandler) Update(c echo.Context) error {
	hotelID, err := pathID(c, "hotelId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	eventID, err := pathID(c, "eventId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	var req updateEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	date, err := time.Parse(stayDateLayout, req.EventDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.gateHotel(ctx, c, hotelID); err != nil {
		return err
	}

	if err := h.Events.Update(ctx, hotelID, eventID, req.Name, req.Description, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
	}
	return c.JSON(http.StatusOK, eventResp{
		ID: eventID, HotelID: hotelID, Name: req.Name,
		Description: req.Description, EventDate: req.EventDate,
	})
}

// Delete removes an event, addressed by the (hotel, event) pair.
func (h *EventHandler) Delete(c echo.Context) error {
	hotelID, err := pathID(c, "hotelId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	eventID, err := pathID(c, "eventId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.gateHotel(ctx, c, hotelID); err != nil {
		return err
	}

	if err := h.Events.Delete(ctx, hotelID, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListByHotel returns a hotel's events.
func (h *EventHandler) ListByHotel(c echo.Context) error {
	hotelID, err := pathID(c, "hotelId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.ListByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	out := make([]eventResp, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventResp(ev))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one event.
func (h *EventHandler) Get(c echo.Context) error {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "event lookup failed"})
	}
	return c.JSON(http.StatusOK, toEventResp(ev))
}
