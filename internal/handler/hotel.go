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

// HotelHandler bundles dependencies for hotel endpoints. Creating a
// hotel also needs the user repository to verify the designated
// administrator.
type HotelHandler struct {
	Hotels *repository.HotelRepo
	Users  *repository.UserRepo
}

func NewHotelHandler(hotels *repository.HotelRepo, users *repository.UserRepo) *HotelHandler {
	if hotels == nil || users == nil {
		panic("nil repository passed to NewHotelHandler")
	}
	return &HotelHandler{Hotels: hotels, Users: users}
}

type createHotelReq struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	AdminID uint64 `json:"admin_id" validate:"required"`
}

type hotelResp struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	AdminID   uint64    `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toHotelResp(h model.Hotel) hotelResp {
	return hotelResp{
		ID: h.ID, Name: h.Name, Address: h.Address, Phone: h.Phone,
		Email: h.Email, AdminID: h.AdminID, CreatedAt: h.CreatedAt,
	}
}

// Create registers a hotel. Platform-admin only; the designated admin
// must be an existing HOTEL_ADMIN user.
func (h *HotelHandler) Create(c echo.Context) error {
	var req createHotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admin, err := h.Users.GetByID(ctx, req.AdminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "admin_id does not reference an existing user"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "admin lookup failed"})
	}
	if admin.Role != model.RoleHotelAdmin {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "admin_id must reference a HOTEL_ADMIN user"})
	}

	hotel := model.Hotel{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		AdminID: req.AdminID,
	}
	if err := h.Hotels.Create(ctx, &hotel); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hotel failed"})
	}
	hotel.CreatedAt = time.Now().UTC()
	return c.JSON(http.StatusCreated, toHotelResp(hotel))
}

// List returns all hotels.
func (h *HotelHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotels, err := h.Hotels.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list hotels failed"})
	}
	out := make([]hotelResp, 0, len(hotels))
	for _, hotel := range hotels {
		out = append(out, toHotelResp(hotel))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one hotel by id.
func (h *HotelHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hotel lookup failed"})
	}
	return c.JSON(http.StatusOK, toHotelResp(hotel))
}
