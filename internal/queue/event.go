// Package queue defines message payloads exchanged over the message
// broker and the background consumer draining them.
package queue

// Queue names used on the broker. Both queues are durable and messages
// are marked persistent so they survive broker restarts.
const (
	BookingConfirmedQueue = "booking.confirmed"
	InvoiceIssuedQueue    = "invoice.issued"
)

// BookingConfirmedEvent is published when a reservation is successfully
// created. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type BookingConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	RoomID        uint64 `json:"room_id"`
	HotelID       uint64 `json:"hotel_id"`
	HotelName     string `json:"hotel_name"`
	RoomNumber    string `json:"room_number"`
	DateEntry     string `json:"date_entry"`
	DepartureDate string `json:"departure_date"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// InvoiceIssuedEvent is published exactly once per invoice, when the
// invoice engine first creates it. Re-renders of an existing invoice
// do not publish.
type InvoiceIssuedEvent struct {
	InvoiceID     uint64 `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
	ReservationID uint64 `json:"reservation_id"`
	HotelID       uint64 `json:"hotel_id"`
	HotelName     string `json:"hotel_name"`
	GuestID       uint64 `json:"guest_id"`
	TotalCents    int64  `json:"total_cents"`
	IssuedAt      string `json:"issued_at"`
}
