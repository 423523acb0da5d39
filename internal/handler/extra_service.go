package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/casamia/hotel-management/internal/model"
	"github.com/casamia/hotel-management/internal/repository"
)

// ExtraServiceHandler bundles dependencies for extra-service endpoints.
type ExtraServiceHandler struct {
	Services *repository.ExtraServiceRepo
}

func NewExtraServiceHandler(services *repository.ExtraServiceRepo) *ExtraServiceHandler {
	if services == nil {
		panic("nil repository passed to NewExtraServiceHandler")
	}
	return &ExtraServiceHandler{Services: services}
}

type createExtraServiceReq struct {
	Name      string `json:"name" validate:"required"`
	CostCents int64  `json:"cost_cents" validate:"gte=0"`
}

type extraServiceResp struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CostCents int64  `json:"cost_cents"`
}

// Create adds a billable add-on service. Platform-admin only.
func (h *ExtraServiceHandler) Create(c echo.Context) error {
	var req createExtraServiceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := model.ExtraService{Name: req.Name, CostCents: req.CostCents}
	if err := h.Services.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create extra service failed"})
	}
	return c.JSON(http.StatusCreated, extraServiceResp{ID: s.ID, Name: s.Name, CostCents: s.CostCents})
}

// List returns all extra services.
func (h *ExtraServiceHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	services, err := h.Services.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list extra services failed"})
	}
	out := make([]extraServiceResp, 0, len(services))
	for _, s := range services {
		out = append(out, extraServiceResp{ID: s.ID, Name: s.Name, CostCents: s.CostCents})
	}
	return c.JSON(http.StatusOK, out)
}
