package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/casamia/hotel-management/internal/model"
)

// InvoiceRepo provides persistence for invoices. Invoices are created
// once per reservation and never updated or deleted; the unique key on
// reservation_id backs that contract at the database level.
type InvoiceRepo struct{ db *sql.DB }

func NewInvoiceRepo(db *sql.DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

// FindByReservation returns the invoice issued for a reservation, or
// sql.ErrNoRows when none has been issued yet.
func (r *InvoiceRepo) FindByReservation(ctx context.Context, reservationID uint64) (model.Invoice, error) {
	var inv model.Invoice
	err := r.db.QueryRowContext(ctx,
		"SELECT id, public_ref, reservation_id, total_cents, issued_at FROM invoices WHERE reservation_id = ?",
		reservationID).Scan(&inv.ID, &inv.PublicRef, &inv.ReservationID, &inv.TotalCents, &inv.IssuedAt)
	return inv, err
}

// Create inserts an invoice and populates the generated ID. When a
// concurrent request has already issued an invoice for the same
// reservation the unique key rejects the insert and ErrDuplicateInvoice
// is returned; callers re-read the winning row.
func (r *InvoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO invoices (public_ref, reservation_id, total_cents, issued_at) VALUES (?,?,?,?)",
		inv.PublicRef, inv.ReservationID, inv.TotalCents, inv.IssuedAt)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicateInvoice
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	inv.ID = uint64(id)
	return nil
}

// InvoiceDetail is the listing view of an invoice with its reservation,
// guest and hotel references resolved.
type InvoiceDetail struct {
	ID            uint64    `json:"id"`
	PublicRef     string    `json:"public_ref"`
	ReservationID uint64    `json:"reservation_id"`
	TotalCents    int64     `json:"total_cents"`
	IssuedAt      time.Time `json:"issued_at"`
	HotelID       uint64    `json:"hotel_id"`
	HotelName     string    `json:"hotel_name"`
	RoomNumber    string    `json:"room_number"`
	GuestID       uint64    `json:"guest_id"`
	GuestName     string    `json:"guest_name"`
	GuestSurname  string    `json:"guest_surname"`
	GuestEmail    string    `json:"guest_email"`
}

const invoiceDetailSelect = `SELECT inv.id, inv.public_ref, inv.reservation_id, inv.total_cents, inv.issued_at,
									h.id, h.name, ro.room_number,
									u.id, u.name, u.surname, u.email
							 FROM invoices inv
							 JOIN reservations res ON res.id = inv.reservation_id
							 JOIN rooms ro ON ro.id = res.room_id
							 JOIN hotels h ON h.id = ro.hotel_id
							 JOIN users u ON u.id = res.user_id`

func (r *InvoiceRepo) queryDetails(ctx context.Context, q string, args ...interface{}) ([]InvoiceDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]InvoiceDetail, 0)
	for rows.Next() {
		var d InvoiceDetail
		if err := rows.Scan(&d.ID, &d.PublicRef, &d.ReservationID, &d.TotalCents, &d.IssuedAt,
			&d.HotelID, &d.HotelName, &d.RoomNumber,
			&d.GuestID, &d.GuestName, &d.GuestSurname, &d.GuestEmail); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListByHotel returns invoices whose reservation's room belongs to the
// given hotel. Invoices of other hotels are simply not selected; there
// is no error for excluded rows.
func (r *InvoiceRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]InvoiceDetail, error) {
	return r.queryDetails(ctx, invoiceDetailSelect+" WHERE h.id = ? ORDER BY inv.issued_at DESC", hotelID)
}

// ListByUser returns invoices whose reservation belongs to the given guest.
func (r *InvoiceRepo) ListByUser(ctx context.Context, userID uint64) ([]InvoiceDetail, error) {
	return r.queryDetails(ctx, invoiceDetailSelect+" WHERE u.id = ? ORDER BY inv.issued_at DESC", userID)
}

// ListByReservationIDs returns the invoices issued for any of the given
// reservations. Reservations without an invoice yield nothing; invoices
// are created lazily and their absence is not an error.
func (r *InvoiceRepo) ListByReservationIDs(ctx context.Context, ids []uint64) ([]InvoiceDetail, error) {
	if len(ids) == 0 {
		return []InvoiceDetail{}, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	q := invoiceDetailSelect + " WHERE inv.reservation_id IN (" + strings.Join(placeholders, ",") + ") ORDER BY inv.issued_at DESC"
	return r.queryDetails(ctx, q, args...)
}
