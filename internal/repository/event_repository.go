package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/casamia/hotel-management/internal/model"
)

// EventRepo provides CRUD for hotel events. Updates and deletes are
// scoped by the (hotel, event) pair so an event can only be modified
// through the hotel it belongs to.
type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// Create inserts an event and populates the generated ID.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO events (hotel_id, name, description, event_date) VALUES (?,?,?,?)",
		ev.HotelID, ev.Name, ev.Description, ev.EventDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}

// Update modifies an event identified by (hotelID, eventID). Returns
// sql.ErrNoRows when no such event exists under that hotel.
func (r *EventRepo) Update(ctx context.Context, hotelID, eventID uint64, name, description string, eventDate time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE events SET name = ?, description = ?, event_date = ? WHERE id = ? AND hotel_id = ?",
		name, description, eventDate, eventID, hotelID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an event identified by (hotelID, eventID). Returns
// sql.ErrNoRows when no such event exists under that hotel.
func (r *EventRepo) Delete(ctx context.Context, hotelID, eventID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM events WHERE id = ? AND hotel_id = ?", eventID, hotelID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetByID fetches one event.
func (r *EventRepo) GetByID(ctx context.Context, eventID uint64) (model.Event, error) {
	var ev model.Event
	err := r.db.QueryRowContext(ctx,
		"SELECT id, hotel_id, name, description, event_date, created_at, updated_at FROM events WHERE id = ?",
		eventID).Scan(&ev.ID, &ev.HotelID, &ev.Name, &ev.Description, &ev.EventDate, &ev.CreatedAt, &ev.UpdatedAt)
	return ev, err
}

// ListByHotel returns a hotel's events ordered by date.
func (r *EventRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, hotel_id, name, description, event_date, created_at, updated_at FROM events WHERE hotel_id = ? ORDER BY event_date",
		hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		var ev model.Event
		if err := rows.Scan(&ev.ID, &ev.HotelID, &ev.Name, &ev.Description, &ev.EventDate, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
