package model

import "time"

// Room belongs to exactly one hotel. The nightly rate is stored in
// integer cents; the rate in effect when an invoice is first issued is
// frozen into that invoice and later rate changes do not affect it.
//
// Fields:
//  ID               – primary key identifier.
//  HotelID          – owning hotel.
//  RoomNumber       – human room number, unique per hotel.
//  RoomType         – category label (e.g. "double", "suite").
//  NightlyRateCents – price per night in cents, never negative.
//  CreatedAt        – timestamp of creation.
type Room struct {
	ID               uint64    // rooms.id
	HotelID          uint64    // rooms.hotel_id
	RoomNumber       string    // rooms.room_number
	RoomType         string    // rooms.room_type
	NightlyRateCents int64     // rooms.nightly_rate_cents
	CreatedAt        time.Time // rooms.created_at
}
