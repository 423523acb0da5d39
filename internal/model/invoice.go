package model

import "time"

// Invoice is derived state computed once over a reservation and its
// linked room and extra services. It is created lazily on the first
// invoice request for a reservation and never mutated or deleted by
// this subsystem. The unique key on reservation_id guarantees at most
// one invoice per reservation.
//
// Fields:
//  ID            – primary key identifier.
//  PublicRef     – UUID shown to clients; the printable invoice number
//                  is derived from its last 8 hex characters.
//  ReservationID – the invoiced reservation, unique.
//  TotalCents    – frozen stay total in cents, never negative.
//  IssuedAt      – issue timestamp, set at creation.
type Invoice struct {
	ID            uint64    // invoices.id
	PublicRef     string    // invoices.public_ref
	ReservationID uint64    // invoices.reservation_id
	TotalCents    int64     // invoices.total_cents
	IssuedAt      time.Time // invoices.issued_at
}
