package model

import "time"

// Event is an activity hosted by a hotel (conference, dinner,
// live music). Events are plain CRUD records and play no part in
// reservations or invoicing.
type Event struct {
	ID          uint64    // events.id
	HotelID     uint64    // events.hotel_id
	Name        string    // events.name
	Description string    // events.description
	EventDate   time.Time // events.event_date
	CreatedAt   time.Time // events.created_at
	UpdatedAt   time.Time // events.updated_at
}
