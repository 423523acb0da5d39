// Package service implements the invoice core: the engine that
// computes and stores stay totals, the PDF renderer, and the broker
// publishers for domain events.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/casamia/hotel-management/internal/config"
	"github.com/casamia/hotel-management/internal/model"
	"github.com/casamia/hotel-management/internal/repository"
)

// ErrInvalidStay is returned when a stored reservation has a
// non-positive night count (departure on or before entry). Bookings
// reject such dates upfront, so hitting this means bad stored data;
// the engine refuses to issue a zero or negative invoice for it.
var ErrInvalidStay = errors.New("reservation has a non-positive night count")

// InvoiceStore is the slice of persistence the engine needs. The
// invoice repository satisfies it; tests substitute fakes.
type InvoiceStore interface {
	FindByReservation(ctx context.Context, reservationID uint64) (model.Invoice, error)
	Create(ctx context.Context, inv *model.Invoice) error
}

// InvoiceEngine issues at most one invoice per reservation, lazily,
// on first request. Once issued the total is frozen: later changes to
// the room rate or extra-service costs never alter it.
type InvoiceEngine struct {
	store  InvoiceStore
	locker *redislock.Client // nil when Redis is unavailable
}

// NewInvoiceEngine constructs an engine. locker may be nil; the
// advisory lock is an optimization, correctness comes from the unique
// key on invoices.reservation_id.
func NewInvoiceEngine(store InvoiceStore, locker *redislock.Client) *InvoiceEngine {
	if store == nil {
		panic("nil store passed to NewInvoiceEngine")
	}
	return &InvoiceEngine{store: store, locker: locker}
}

// StayNights returns the chargeable night count for a stay window:
// ceil((departure-entry)/24h). A same-day or inverted window yields a
// count below 1, which ComputeTotalCents rejects.
func StayNights(entry, departure time.Time) int {
	return int(math.Ceil(departure.Sub(entry).Hours() / 24))
}

// ComputeTotalCents computes the frozen stay total:
// nights*rate + sum(extra service costs). Pure over the stay detail.
func ComputeTotalCents(stay *repository.StayDetail) (int64, error) {
	nights := StayNights(stay.DateEntry, stay.DepartureDate)
	if nights < 1 {
		return 0, ErrInvalidStay
	}
	total := stay.RateCents * int64(nights)
	for _, e := range stay.Extras {
		total += e.CostCents
	}
	return total, nil
}

// GetOrCreate returns the invoice for a reservation, creating it on
// first access. The returned bool is true only when this call created
// the invoice. Concurrent first requests are serialized best-effort by
// a Redis advisory lock; if the lock is unavailable the database
// unique key still guarantees a single invoice and the losing request
// re-reads the winner.
func (e *InvoiceEngine) GetOrCreate(ctx context.Context, stay *repository.StayDetail) (model.Invoice, bool, error) {
	if e.locker != nil {
		key := fmt.Sprintf("invoice:res:%d", stay.ReservationID)
		lock, err := e.locker.Obtain(ctx, key, 10*time.Second, nil)
		switch {
		case err == nil:
			defer func() { _ = lock.Release(ctx) }()
		case errors.Is(err, redislock.ErrNotObtained):
			// A concurrent request holds the lock; fall through, the
			// unique key decides who wins.
		default:
			config.GetLogger().WithFields(logrus.Fields{
				"reservation_id": stay.ReservationID,
			}).Warn("invoice lock unavailable; relying on unique key")
		}
	}

	inv, err := e.store.FindByReservation(ctx, stay.ReservationID)
	if err == nil {
		return inv, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Invoice{}, false, err
	}

	total, err := ComputeTotalCents(stay)
	if err != nil {
		return model.Invoice{}, false, err
	}
	inv = model.Invoice{
		PublicRef:     uuid.NewString(),
		ReservationID: stay.ReservationID,
		TotalCents:    total,
		IssuedAt:      time.Now().UTC(),
	}
	if err := e.store.Create(ctx, &inv); err != nil {
		if errors.Is(err, repository.ErrDuplicateInvoice) {
			existing, ferr := e.store.FindByReservation(ctx, stay.ReservationID)
			if ferr != nil {
				return model.Invoice{}, false, ferr
			}
			return existing, false, nil
		}
		return model.Invoice{}, false, err
	}
	return inv, true, nil
}

// InvoiceNumber derives the short printable number shown on the PDF
// from an invoice's public reference: the last 8 hex characters,
// uppercased. Deterministic per invoice.
func InvoiceNumber(publicRef string) string {
	hex := strings.ReplaceAll(publicRef, "-", "")
	if len(hex) > 8 {
		hex = hex[len(hex)-8:]
	}
	return strings.ToUpper(hex)
}
