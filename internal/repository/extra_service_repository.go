package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/casamia/hotel-management/internal/model"
)

// ExtraServiceRepo provides persistence for billable add-on services.
type ExtraServiceRepo struct{ DB *sql.DB }

func NewExtraServiceRepo(db *sql.DB) *ExtraServiceRepo { return &ExtraServiceRepo{DB: db} }

// Create inserts an extra service and populates the generated ID.
func (r *ExtraServiceRepo) Create(ctx context.Context, s *model.ExtraService) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO extra_services (name, cost_cents) VALUES (?,?)",
		s.Name, s.CostCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// List returns all extra services ordered by name.
func (r *ExtraServiceRepo) List(ctx context.Context) ([]model.ExtraService, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, cost_cents, created_at FROM extra_services ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ExtraService, 0)
	for rows.Next() {
		var s model.ExtraService
		if err := rows.Scan(&s.ID, &s.Name, &s.CostCents, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountByIDs returns how many of the given service ids exist. The
// booking flow uses it to reject references to unknown services before
// linking them.
func (r *ExtraServiceRepo) CountByIDs(ctx context.Context, ids []uint64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	q := "SELECT COUNT(*) FROM extra_services WHERE id IN (" + strings.Join(placeholders, ",") + ")"
	var n int
	err := r.DB.QueryRowContext(ctx, q, args...).Scan(&n)
	return n, err
}
