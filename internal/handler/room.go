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

// RoomHandler bundles dependencies for room endpoints.
type RoomHandler struct {
	Rooms  *repository.RoomRepo
	Hotels *repository.HotelRepo
}

func NewRoomHandler(rooms *repository.RoomRepo, hotels *repository.HotelRepo) *RoomHandler {
	if rooms == nil || hotels == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms, Hotels: hotels}
}

type createRoomReq struct {
	RoomNumber       string `json:"room_number" validate:"required"`
	RoomType         string `json:"room_type" validate:"required"`
	NightlyRateCents int64  `json:"nightly_rate_cents" validate:"gte=0"`
}

type roomResp struct {
	ID               uint64 `json:"id"`
	HotelID          uint64 `json:"hotel_id"`
	RoomNumber       string `json:"room_number"`
	RoomType         string `json:"room_type"`
	NightlyRateCents int64  `json:"nightly_rate_cents"`
}

func toRoomResp(r model.Room) roomResp {
	return roomResp{
		ID: r.ID, HotelID: r.HotelID, RoomNumber: r.RoomNumber,
		RoomType: r.RoomType, NightlyRateCents: r.NightlyRateCents,
	}
}

// Create adds a room to a hotel. Only the hotel's administrator or a
// platform admin may create rooms; a duplicate room number within the
// hotel is a conflict.
func (h *RoomHandler) Create(c echo.Context) error {
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}

	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if getRole(c) == model.RolePlatformAdmin {
		if _, err := h.Hotels.GetByID(ctx, hotelID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hotel lookup failed"})
		}
	} else {
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
	}

	room := model.Room{
		HotelID:          hotelID,
		RoomNumber:       req.RoomNumber,
		RoomType:         req.RoomType,
		NightlyRateCents: req.NightlyRateCents,
	}
	if err := h.Rooms.Create(ctx, &room); err != nil {
		if repository.IsDuplicateKey(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists in this hotel"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, toRoomResp(room))
}

// ListByHotel returns all rooms of one hotel.
func (h *RoomHandler) ListByHotel(c echo.Context) error {
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Hotels.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hotel lookup failed"})
	}

	rooms, err := h.Rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	out := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResp(r))
	}
	return c.JSON(http.StatusOK, out)
}
