package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/casamia/hotel-management/internal/model"
)

// ReservationRepo provides persistence for reservations and their
// linked extra services. A reservation groups a guest, a room and a
// stay window; extra services are linked through the
// reservation_extra_services table. All timestamps are stored in UTC.
type ReservationRepo struct{ db *sql.DB }

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create inserts a reservation and its extra-service links inside one
// transaction so a booking is never persisted half-linked. The
// generated ID is populated on the passed record.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation, extraServiceIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (user_id, room_id, date_entry, departure_date) VALUES (?,?,?,?)",
		res.UserID, res.RoomID, res.DateEntry, res.DepartureDate)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	if len(extraServiceIDs) > 0 {
		q := "INSERT INTO reservation_extra_services (reservation_id, extra_service_id) VALUES "
		args := make([]interface{}, 0, len(extraServiceIDs)*2)
		for i, sid := range extraServiceIDs {
			if i > 0 {
				q += ","
			}
			q += "(?, ?)"
			args = append(args, res.ID, sid)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ExtraLine is one extra service linked to a stay, as needed by the
// invoice engine and renderer.
type ExtraLine struct {
	Name      string `json:"name"`
	CostCents int64  `json:"cost_cents"`
}

// StayDetail aggregates a reservation with its guest, room, hotel and
// extra services resolved. It is the unit of work the invoice engine
// computes over and the renderer lays out.
type StayDetail struct {
	ReservationID uint64      `json:"reservation_id"`
	DateEntry     time.Time   `json:"date_entry"`
	DepartureDate time.Time   `json:"departure_date"`
	GuestID       uint64      `json:"guest_id"`
	GuestName     string      `json:"guest_name"`
	GuestSurname  string      `json:"guest_surname"`
	GuestEmail    string      `json:"guest_email"`
	GuestDocument *string     `json:"guest_document,omitempty"`
	RoomID        uint64      `json:"room_id"`
	RoomNumber    string      `json:"room_number"`
	RoomType      string      `json:"room_type"`
	RateCents     int64       `json:"nightly_rate_cents"`
	HotelID       uint64      `json:"hotel_id"`
	HotelName     string      `json:"hotel_name"`
	HotelAddress  string      `json:"hotel_address"`
	HotelPhone    string      `json:"hotel_phone"`
	HotelEmail    string      `json:"hotel_email"`
	HotelAdminID  uint64      `json:"-"`
	Extras        []ExtraLine `json:"extras"`
}

// GetStay loads the full detail of one reservation, resolving room,
// hotel, guest and extra services. Returns sql.ErrNoRows when the
// reservation does not exist; a dangling room/hotel/guest reference
// also surfaces as sql.ErrNoRows since the joins cannot resolve.
func (r *ReservationRepo) GetStay(ctx context.Context, reservationID uint64) (*StayDetail, error) {
	const q = `SELECT res.id, res.date_entry, res.departure_date,
					  u.id, u.name, u.surname, u.email, u.document,
					  ro.id, ro.room_number, ro.room_type, ro.nightly_rate_cents,
					  h.id, h.name, h.address, h.phone, h.email, h.admin_id
			   FROM reservations res
			   JOIN users u ON u.id = res.user_id
			   JOIN rooms ro ON ro.id = res.room_id
			   JOIN hotels h ON h.id = ro.hotel_id
			   WHERE res.id = ?`
	var det StayDetail
	err := r.db.QueryRowContext(ctx, q, reservationID).Scan(
		&det.ReservationID, &det.DateEntry, &det.DepartureDate,
		&det.GuestID, &det.GuestName, &det.GuestSurname, &det.GuestEmail, &det.GuestDocument,
		&det.RoomID, &det.RoomNumber, &det.RoomType, &det.RateCents,
		&det.HotelID, &det.HotelName, &det.HotelAddress, &det.HotelPhone, &det.HotelEmail, &det.HotelAdminID,
	)
	if err != nil {
		return nil, err
	}
	det.Extras = make([]ExtraLine, 0)
	const extraQ = `SELECT es.name, es.cost_cents
					FROM reservation_extra_services link
					JOIN extra_services es ON es.id = link.extra_service_id
					WHERE link.reservation_id = ?
					ORDER BY es.name`
	rows, err := r.db.QueryContext(ctx, extraQ, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var line ExtraLine
		if err := rows.Scan(&line.Name, &line.CostCents); err != nil {
			return nil, err
		}
		det.Extras = append(det.Extras, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &det, nil
}

// BookingSummary is the guest-facing view of a reservation returned by
// the listing endpoint.
type BookingSummary struct {
	ID            uint64    `json:"id"`
	RoomNumber    string    `json:"room_number"`
	RoomType      string    `json:"room_type"`
	HotelName     string    `json:"hotel_name"`
	DateEntry     time.Time `json:"date_entry"`
	DepartureDate time.Time `json:"departure_date"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListByUser returns the reservations made by a guest, newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingSummary, error) {
	const q = `SELECT res.id, ro.room_number, ro.room_type, h.name,
					  res.date_entry, res.departure_date, res.created_at
			   FROM reservations res
			   JOIN rooms ro ON ro.id = res.room_id
			   JOIN hotels h ON h.id = ro.hotel_id
			   WHERE res.user_id = ?
			   ORDER BY res.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BookingSummary, 0)
	for rows.Next() {
		var b BookingSummary
		if err := rows.Scan(&b.ID, &b.RoomNumber, &b.RoomType, &b.HotelName,
			&b.DateEntry, &b.DepartureDate, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GuestStayRef links one of a guest's reservations to the hotel it took
// place in and that hotel's administrator. The admin per-user invoice
// view resolves each reservation this way to decide which invoices the
// caller may see.
type GuestStayRef struct {
	ReservationID uint64
	HotelID       uint64
	HotelAdminID  uint64
}

// ListGuestStayRefs returns one ref per reservation of the given guest.
// An empty slice means the guest has no reservations at all.
func (r *ReservationRepo) ListGuestStayRefs(ctx context.Context, userID uint64) ([]GuestStayRef, error) {
	const q = `SELECT res.id, h.id, h.admin_id
			   FROM reservations res
			   JOIN rooms ro ON ro.id = res.room_id
			   JOIN hotels h ON h.id = ro.hotel_id
			   WHERE res.user_id = ?`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	refs := make([]GuestStayRef, 0)
	for rows.Next() {
		var ref GuestStayRef
		if err := rows.Scan(&ref.ReservationID, &ref.HotelID, &ref.HotelAdminID); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
