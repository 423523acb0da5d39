package model

import "time"

// Reservation records a guest's stay in a specific room. Stay dates
// are calendar dates; DepartureDate must be after DateEntry, which the
// booking flow enforces. Reservations are read-only to the invoice
// subsystem.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – guest who booked the stay.
//  RoomID        – room being occupied.
//  DateEntry     – check-in date.
//  DepartureDate – check-out date.
//  CreatedAt     – creation timestamp.
type Reservation struct {
	ID            uint64    // reservations.id
	UserID        uint64    // reservations.user_id
	RoomID        uint64    // reservations.room_id
	DateEntry     time.Time // reservations.date_entry
	DepartureDate time.Time // reservations.departure_date
	CreatedAt     time.Time // reservations.created_at
}

// ExtraService is a billable add-on (spa, breakfast, parking...).
// Reservations link to extra services many-to-many through
// reservation_extra_services.
type ExtraService struct {
	ID        uint64    // extra_services.id
	Name      string    // extra_services.name
	CostCents int64     // extra_services.cost_cents
	CreatedAt time.Time // extra_services.created_at
}
