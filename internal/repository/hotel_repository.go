package repository

import (
	"context"
	"database/sql"

	"github.com/casamia/hotel-management/internal/model"
)

// HotelRepo provides persistence for hotels. Every hotel references
// exactly one administering user; ownership-scoped lookups verify that
// reference before returning data.
type HotelRepo struct{ DB *sql.DB }

func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{DB: db} }

// Create inserts a hotel and populates the generated ID.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO hotels (name, address, phone, email, admin_id) VALUES (?,?,?,?,?)",
		h.Name, h.Address, h.Phone, h.Email, h.AdminID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// GetByID fetches a hotel by id. Returns sql.ErrNoRows when absent.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
	var h model.Hotel
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, address, phone, email, admin_id, created_at, updated_at FROM hotels WHERE id = ?",
		id).Scan(&h.ID, &h.Name, &h.Address, &h.Phone, &h.Email, &h.AdminID, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}

// GetByIDForAdmin fetches a hotel and verifies the caller administers
// it. Returns sql.ErrNoRows when the hotel does not exist and
// ErrForbidden when it is administered by someone else.
func (r *HotelRepo) GetByIDForAdmin(ctx context.Context, hotelID, adminID uint64) (model.Hotel, error) {
	h, err := r.GetByID(ctx, hotelID)
	if err != nil {
		return model.Hotel{}, err
	}
	if h.AdminID != adminID {
		return model.Hotel{}, ErrForbidden
	}
	return h, nil
}

// List returns all hotels ordered by name.
func (r *HotelRepo) List(ctx context.Context) ([]model.Hotel, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, address, phone, email, admin_id, created_at, updated_at FROM hotels ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	hotels := make([]model.Hotel, 0)
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Phone, &h.Email, &h.AdminID, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}
