package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/casamia/hotel-management/internal/model"
)

// RoomRepo provides persistence for rooms.
type RoomRepo struct{ DB *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

// Create inserts a room. A duplicate room number within the same hotel
// is reported through the unique key as a driver error containing 1062;
// callers treat it as a conflict.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO rooms (hotel_id, room_number, room_type, nightly_rate_cents) VALUES (?,?,?,?)",
		room.HotelID, room.RoomNumber, room.RoomType, room.NightlyRateCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	return nil
}

// IsDuplicateKey reports whether err is a MySQL duplicate-key error.
func IsDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// GetByID fetches a room by id.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	var room model.Room
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, hotel_id, room_number, room_type, nightly_rate_cents, created_at FROM rooms WHERE id = ?",
		id).Scan(&room.ID, &room.HotelID, &room.RoomNumber, &room.RoomType, &room.NightlyRateCents, &room.CreatedAt)
	return room, err
}

// ListByHotel returns all rooms of a hotel ordered by room number.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, hotel_id, room_number, room_type, nightly_rate_cents, created_at FROM rooms WHERE hotel_id = ? ORDER BY room_number",
		hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.HotelID, &room.RoomNumber, &room.RoomType, &room.NightlyRateCents, &room.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
