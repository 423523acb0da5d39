package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/casamia/hotel-management/internal/model"
	"github.com/casamia/hotel-management/internal/repository"
	"github.com/casamia/hotel-management/internal/service"
)

// Function-field fakes for the invoice handler's dependencies.

type fakeStays struct {
	getStay  func(ctx context.Context, id uint64) (*repository.StayDetail, error)
	listRefs func(ctx context.Context, userID uint64) ([]repository.GuestStayRef, error)
}

func (f *fakeStays) GetStay(ctx context.Context, id uint64) (*repository.StayDetail, error) {
	return f.getStay(ctx, id)
}

func (f *fakeStays) ListGuestStayRefs(ctx context.Context, userID uint64) ([]repository.GuestStayRef, error) {
	return f.listRefs(ctx, userID)
}

type fakeIssuer struct {
	getOrCreate func(ctx context.Context, stay *repository.StayDetail) (model.Invoice, bool, error)
}

func (f *fakeIssuer) GetOrCreate(ctx context.Context, stay *repository.StayDetail) (model.Invoice, bool, error) {
	return f.getOrCreate(ctx, stay)
}

type fakeLister struct {
	byHotel func(ctx context.Context, hotelID uint64) ([]repository.InvoiceDetail, error)
	byUser  func(ctx context.Context, userID uint64) ([]repository.InvoiceDetail, error)
	byRes   func(ctx context.Context, ids []uint64) ([]repository.InvoiceDetail, error)
}

func (f *fakeLister) ListByHotel(ctx context.Context, hotelID uint64) ([]repository.InvoiceDetail, error) {
	return f.byHotel(ctx, hotelID)
}

func (f *fakeLister) ListByUser(ctx context.Context, userID uint64) ([]repository.InvoiceDetail, error) {
	return f.byUser(ctx, userID)
}

func (f *fakeLister) ListByReservationIDs(ctx context.Context, ids []uint64) ([]repository.InvoiceDetail, error) {
	return f.byRes(ctx, ids)
}

type fakeHotels struct {
	getByID func(ctx context.Context, id uint64) (model.Hotel, error)
}

func (f *fakeHotels) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
	return f.getByID(ctx, id)
}

func stay() *repository.StayDetail {
	entry, _ := time.Parse("2006-01-02", "2024-01-01")
	return &repository.StayDetail{
		ReservationID: 7,
		DateEntry:     entry,
		DepartureDate: entry.AddDate(0, 0, 3),
		GuestID:       42,
		GuestName:     "Ada",
		GuestSurname:  "Lovelace",
		GuestEmail:    "ada@example.com",
		RoomNumber:    "101",
		RoomType:      "suite",
		RateCents:     10000,
		HotelID:       3,
		HotelName:     "Casa Mia",
		HotelAddress:  "1 Via Roma",
		HotelPhone:    "+39 000 000",
		HotelEmail:    "info@casamia.example",
		HotelAdminID:  77,
	}
}

func issued() model.Invoice {
	return model.Invoice{
		ID:            1,
		PublicRef:     "a1b2c3d4-0000-0000-0000-feedfacecafe",
		ReservationID: 7,
		TotalCents:    33500,
		IssuedAt:      time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

// invoiceCtx builds an echo context for a GET with one path parameter
// and an authenticated principal, mirroring what JWTAuth injects.
func invoiceCtx(t *testing.T, param, value string, userID uint64, role string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(param)
	c.SetParamValues(value)
	// The JWT library decodes numeric claims as float64.
	c.Set("user_id", float64(userID))
	c.Set("role", role)
	return c, rec
}

func newTestHandler(t *testing.T, stays StayLoader, engine InvoiceIssuer, lister InvoiceLister, hotels HotelGate) *InvoiceHandler {
	t.Helper()
	if stays == nil {
		stays = &fakeStays{}
	}
	if engine == nil {
		engine = &fakeIssuer{}
	}
	if lister == nil {
		lister = &fakeLister{}
	}
	if hotels == nil {
		hotels = &fakeHotels{}
	}
	return NewInvoiceHandler(stays, engine, lister, hotels, t.TempDir())
}

func TestGenerateForGuestMissingReservation(t *testing.T) {
	h := newTestHandler(t, &fakeStays{
		getStay: func(ctx context.Context, id uint64) (*repository.StayDetail, error) {
			return nil, sql.ErrNoRows
		},
	}, nil, nil, nil)

	c, rec := invoiceCtx(t, "reservationId", "7", 42, model.RoleCustomer)
	if err := h.GenerateForGuest(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGenerateForGuestForeignReservation(t *testing.T) {
	h := newTestHandler(t, &fakeStays{
		getStay: func(ctx context.Context, id uint64) (*repository.StayDetail, error) {
			return stay(), nil
		},
	}, nil, nil, nil)

	c, rec := invoiceCtx(t, "reservationId", "7", 999, model.RoleCustomer)
	if err := h.GenerateForGuest(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestGenerateForGuestServesPDF(t *testing.T) {
	h := newTestHandler(t,
		&fakeStays{
			getStay: func(ctx context.Context, id uint64) (*repository.StayDetail, error) {
				return stay(), nil
			},
		},
		&fakeIssuer{
			getOrCreate: func(ctx context.Context, s *repository.StayDetail) (model.Invoice, bool, error) {
				return issued(), false, nil
			},
		}, nil, nil)

	c, rec := invoiceCtx(t, "reservationId", "7", 42, model.RoleCustomer)
	if err := h.GenerateForGuest(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "invoice_Casa_Mia_42.pdf") {
		t.Fatalf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Fatal("body is not a PDF")
	}
}

func TestGenerateForGuestInvalidStay(t *testing.T) {
	h := newTestHandler(t,
		&fakeStays{
			getStay: func(ctx context.Context, id uint64) (*repository.StayDetail, error) {
				return stay(), nil
			},
		},
		&fakeIssuer{
			getOrCreate: func(ctx context.Context, s *repository.StayDetail) (model.Invoice, bool, error) {
				return model.Invoice{}, false, service.ErrInvalidStay
			},
		}, nil, nil)

	c, rec := invoiceCtx(t, "reservationId", "7", 42, model.RoleCustomer)
	if err := h.GenerateForGuest(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestGenerateForAdminGate(t *testing.T) {
	cases := []struct {
		name   string
		userID uint64
		role   string
		want   int
	}{
		{"administering admin", 77, model.RoleHotelAdmin, http.StatusOK},
		{"foreign admin", 5, model.RoleHotelAdmin, http.StatusForbidden},
		{"platform admin", 5, model.RolePlatformAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(t,
				&fakeStays{
					getStay: func(ctx context.Context, id uint64) (*repository.StayDetail, error) {
						return stay(), nil
					},
				},
				&fakeIssuer{
					getOrCreate: func(ctx context.Context, s *repository.StayDetail) (model.Invoice, bool, error) {
						return issued(), false, nil
					},
				}, nil, nil)

			c, rec := invoiceCtx(t, "reservationId", "7", tc.userID, tc.role)
			if err := h.GenerateForAdmin(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestListByHotelGate(t *testing.T) {
	hotels := &fakeHotels{
		getByID: func(ctx context.Context, id uint64) (model.Hotel, error) {
			if id != 3 {
				return model.Hotel{}, sql.ErrNoRows
			}
			return model.Hotel{ID: 3, AdminID: 77}, nil
		},
	}
	lister := &fakeLister{
		byHotel: func(ctx context.Context, hotelID uint64) ([]repository.InvoiceDetail, error) {
			return []repository.InvoiceDetail{{ID: 1, HotelID: hotelID}}, nil
		},
	}

	cases := []struct {
		name    string
		hotelID string
		userID  uint64
		role    string
		want    int
	}{
		{"administering admin", "3", 77, model.RoleHotelAdmin, http.StatusOK},
		{"foreign admin", "3", 5, model.RoleHotelAdmin, http.StatusForbidden},
		{"platform admin", "3", 5, model.RolePlatformAdmin, http.StatusOK},
		{"missing hotel", "8", 77, model.RoleHotelAdmin, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(t, nil, nil, lister, hotels)
			c, rec := invoiceCtx(t, "hotelId", tc.hotelID, tc.userID, tc.role)
			if err := h.ListByHotel(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestListByUserSelfOrPlatformOnly(t *testing.T) {
	lister := &fakeLister{
		byUser: func(ctx context.Context, userID uint64) ([]repository.InvoiceDetail, error) {
			return []repository.InvoiceDetail{}, nil
		},
	}
	cases := []struct {
		name   string
		userID uint64
		role   string
		want   int
	}{
		{"self", 42, model.RoleCustomer, http.StatusOK},
		{"other user", 43, model.RoleCustomer, http.StatusForbidden},
		{"platform admin", 5, model.RolePlatformAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(t, nil, nil, lister, nil)
			c, rec := invoiceCtx(t, "userId", "42", tc.userID, tc.role)
			if err := h.ListByUser(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestListForGuestByAdminCrossCheck(t *testing.T) {
	refs := []repository.GuestStayRef{
		{ReservationID: 7, HotelID: 3, HotelAdminID: 77},
		{ReservationID: 8, HotelID: 4, HotelAdminID: 88},
	}
	stays := &fakeStays{
		listRefs: func(ctx context.Context, userID uint64) ([]repository.GuestStayRef, error) {
			if userID == 404 {
				return []repository.GuestStayRef{}, nil
			}
			return refs, nil
		},
	}

	t.Run("no reservations at all", func(t *testing.T) {
		h := newTestHandler(t, stays, nil, nil, nil)
		c, rec := invoiceCtx(t, "userId", "404", 77, model.RoleHotelAdmin)
		if err := h.ListForGuestByAdmin(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("none administered", func(t *testing.T) {
		h := newTestHandler(t, stays, nil, nil, nil)
		c, rec := invoiceCtx(t, "userId", "42", 5, model.RoleHotelAdmin)
		if err := h.ListForGuestByAdmin(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("filters to administered hotels", func(t *testing.T) {
		var asked []uint64
		lister := &fakeLister{
			byRes: func(ctx context.Context, ids []uint64) ([]repository.InvoiceDetail, error) {
				asked = ids
				return []repository.InvoiceDetail{{ID: 1, ReservationID: ids[0]}}, nil
			},
		}
		h := newTestHandler(t, stays, nil, lister, nil)
		c, rec := invoiceCtx(t, "userId", "42", 77, model.RoleHotelAdmin)
		if err := h.ListForGuestByAdmin(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if len(asked) != 1 || asked[0] != 7 {
			t.Fatalf("queried reservations %v, want [7]", asked)
		}
	})

	t.Run("platform admin sees every reservation", func(t *testing.T) {
		var asked []uint64
		lister := &fakeLister{
			byRes: func(ctx context.Context, ids []uint64) ([]repository.InvoiceDetail, error) {
				asked = ids
				return []repository.InvoiceDetail{}, nil
			},
		}
		h := newTestHandler(t, stays, nil, lister, nil)
		c, rec := invoiceCtx(t, "userId", "42", 5, model.RolePlatformAdmin)
		if err := h.ListForGuestByAdmin(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if len(asked) != len(refs) {
			t.Fatalf("queried %d reservations, want %d", len(asked), len(refs))
		}
	})
}

func TestPathIDRejectsGarbage(t *testing.T) {
	c, _ := invoiceCtx(t, "reservationId", "not-a-number", 42, model.RoleCustomer)
	if _, err := pathID(c, "reservationId"); err == nil {
		t.Fatal("expected parse error")
	}
}
