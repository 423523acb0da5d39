package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/casamia/hotel-management/internal/model"
	"github.com/casamia/hotel-management/internal/repository"
)

// bookingCtx posts a booking body as the given guest. The repositories
// are zero-value: these tests cover validation paths that fail before
// any database access.
func bookingCtx(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(42))
	c.Set("role", model.RoleCustomer)
	return c, rec
}

func newBookingHandler() *ReservationHandler {
	return NewReservationHandler(
		&repository.ReservationRepo{},
		&repository.RoomRepo{},
		&repository.HotelRepo{},
		&repository.ExtraServiceRepo{},
	)
}

func TestCreateReservationRejectsInvertedDates(t *testing.T) {
	c, rec := bookingCtx(t, `{"room_id":1,"date_entry":"2024-01-05","departure_date":"2024-01-03"}`)
	if err := newBookingHandler().Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateReservationRejectsSameDayStay(t *testing.T) {
	c, rec := bookingCtx(t, `{"room_id":1,"date_entry":"2024-01-05","departure_date":"2024-01-05"}`)
	if err := newBookingHandler().Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateReservationRejectsBadDateFormat(t *testing.T) {
	c, rec := bookingCtx(t, `{"room_id":1,"date_entry":"05/01/2024","departure_date":"2024-01-07"}`)
	if err := newBookingHandler().Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
