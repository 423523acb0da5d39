package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/casamia/hotel-management/internal/model"
	"github.com/casamia/hotel-management/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password, inserts the user and returns its ID.
// A duplicate email or username surfaces as ErrDuplicateUser.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) (uint64, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = strings.TrimSpace(u.Username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, surname, username, email, password_hash, phone, document, role) VALUES (?,?,?,?,?,?,?,?)",
		u.Name, u.Surname, u.Username, u.Email, hash, u.Phone, u.Document, u.Role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrDuplicateUser
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByLogin fetches an active user by email or username, matching the
// login form which accepts either.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (model.User, error) {
	login = strings.TrimSpace(login)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, surname, username, email, password_hash, phone, document, role, is_active, created_at, updated_at
		 FROM users WHERE (email = ? OR username = ?) AND is_active = 1 LIMIT 1`,
		strings.ToLower(login), login).Scan(
		&u.ID, &u.Name, &u.Surname, &u.Username, &u.Email, &u.PasswordHash,
		&u.Phone, &u.Document, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, surname, username, email, password_hash, phone, document, role, is_active, created_at, updated_at
		 FROM users WHERE id = ? LIMIT 1`,
		id).Scan(
		&u.ID, &u.Name, &u.Surname, &u.Username, &u.Email, &u.PasswordHash,
		&u.Phone, &u.Document, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
