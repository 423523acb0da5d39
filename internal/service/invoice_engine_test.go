package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/casamia/hotel-management/internal/model"
	"github.com/casamia/hotel-management/internal/repository"
)

// fakeStore implements InvoiceStore with function fields so each test
// scripts exactly the persistence behavior it needs.
type fakeStore struct {
	find   func(ctx context.Context, reservationID uint64) (model.Invoice, error)
	create func(ctx context.Context, inv *model.Invoice) error
}

func (f *fakeStore) FindByReservation(ctx context.Context, id uint64) (model.Invoice, error) {
	return f.find(ctx, id)
}

func (f *fakeStore) Create(ctx context.Context, inv *model.Invoice) error {
	return f.create(ctx, inv)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testStay() *repository.StayDetail {
	return &repository.StayDetail{
		ReservationID: 7,
		DateEntry:     day("2024-01-01"),
		DepartureDate: day("2024-01-04"),
		GuestID:       42,
		RateCents:     10000,
		Extras: []repository.ExtraLine{
			{Name: "Breakfast", CostCents: 2000},
			{Name: "Parking", CostCents: 1500},
		},
	}
}

func TestStayNights(t *testing.T) {
	cases := []struct {
		name  string
		entry string
		dep   string
		want  int
	}{
		{"two nights", "2024-01-01", "2024-01-03", 2},
		{"one night", "2024-01-01", "2024-01-02", 1},
		{"same day", "2024-01-01", "2024-01-01", 0},
		{"inverted", "2024-01-03", "2024-01-01", -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StayNights(day(tc.entry), day(tc.dep)); got != tc.want {
				t.Fatalf("StayNights(%s, %s) = %d, want %d", tc.entry, tc.dep, got, tc.want)
			}
		})
	}
}

func TestStayNightsPartialDayRoundsUp(t *testing.T) {
	entry := day("2024-01-01")
	dep := entry.Add(36 * time.Hour)
	if got := StayNights(entry, dep); got != 2 {
		t.Fatalf("StayNights over 36h = %d, want 2", got)
	}
}

func TestComputeTotalCents(t *testing.T) {
	total, err := ComputeTotalCents(testStay())
	if err != nil {
		t.Fatalf("ComputeTotalCents: %v", err)
	}
	// 3 nights x 100.00 + 20.00 + 15.00
	if total != 33500 {
		t.Fatalf("total = %d, want 33500", total)
	}
}

func TestComputeTotalCentsRejectsInvalidStay(t *testing.T) {
	stay := testStay()
	stay.DepartureDate = stay.DateEntry
	if _, err := ComputeTotalCents(stay); !errors.Is(err, ErrInvalidStay) {
		t.Fatalf("err = %v, want ErrInvalidStay", err)
	}
}

func TestGetOrCreateCreatesThenFreezes(t *testing.T) {
	var stored *model.Invoice
	store := &fakeStore{
		find: func(ctx context.Context, id uint64) (model.Invoice, error) {
			if stored == nil {
				return model.Invoice{}, sql.ErrNoRows
			}
			return *stored, nil
		},
		create: func(ctx context.Context, inv *model.Invoice) error {
			inv.ID = 1
			cp := *inv
			stored = &cp
			return nil
		},
	}
	engine := NewInvoiceEngine(store, nil)
	stay := testStay()

	inv, created, err := engine.GetOrCreate(context.Background(), stay)
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}
	if !created {
		t.Fatal("first call should create")
	}
	if inv.TotalCents != 33500 {
		t.Fatalf("total = %d, want 33500", inv.TotalCents)
	}
	if inv.PublicRef == "" || inv.IssuedAt.IsZero() {
		t.Fatal("created invoice missing public ref or issue time")
	}

	// Rate hike after issuing must not change the stored total.
	stay.RateCents = 99999
	again, created, err := engine.GetOrCreate(context.Background(), stay)
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if created {
		t.Fatal("second call must not create")
	}
	if again.TotalCents != 33500 || again.PublicRef != inv.PublicRef {
		t.Fatalf("second call returned %+v, want frozen %+v", again, inv)
	}
}

func TestGetOrCreateRecoversLostRace(t *testing.T) {
	winner := model.Invoice{ID: 9, PublicRef: "a1b2c3d4-0000-0000-0000-feedfacecafe", ReservationID: 7, TotalCents: 33500, IssuedAt: time.Now().UTC()}
	calls := 0
	store := &fakeStore{
		find: func(ctx context.Context, id uint64) (model.Invoice, error) {
			calls++
			if calls == 1 {
				return model.Invoice{}, sql.ErrNoRows
			}
			return winner, nil
		},
		create: func(ctx context.Context, inv *model.Invoice) error {
			return repository.ErrDuplicateInvoice
		},
	}
	engine := NewInvoiceEngine(store, nil)

	inv, created, err := engine.GetOrCreate(context.Background(), testStay())
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if created {
		t.Fatal("losing request must not report created")
	}
	if inv.ID != winner.ID || inv.PublicRef != winner.PublicRef {
		t.Fatalf("got %+v, want winner %+v", inv, winner)
	}
}

func TestGetOrCreateRejectsInvalidStoredStay(t *testing.T) {
	store := &fakeStore{
		find: func(ctx context.Context, id uint64) (model.Invoice, error) {
			return model.Invoice{}, sql.ErrNoRows
		},
		create: func(ctx context.Context, inv *model.Invoice) error {
			t.Fatal("create must not be reached for an invalid stay")
			return nil
		},
	}
	engine := NewInvoiceEngine(store, nil)
	stay := testStay()
	stay.DepartureDate = stay.DateEntry

	if _, _, err := engine.GetOrCreate(context.Background(), stay); !errors.Is(err, ErrInvalidStay) {
		t.Fatalf("err = %v, want ErrInvalidStay", err)
	}
}

func TestInvoiceNumber(t *testing.T) {
	got := InvoiceNumber("a1b2c3d4-0000-0000-0000-feedfacecafe")
	if got != "FACECAFE" {
		t.Fatalf("InvoiceNumber = %q, want FACECAFE", got)
	}
}
