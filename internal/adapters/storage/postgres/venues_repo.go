package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/domain/venues"
)

type VenuesRepo struct {
	db *sql.DB
}

func NewVenuesRepo(db *sql.DB) *VenuesRepo {
	return &VenuesRepo{db: db}
}

func (r *VenuesRepo) Create(ctx context.Context, v schedule.Venue) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO venues (id, name, city, capacity, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, v.ID, v.Name, v.City, v.Capacity, v.CreatedAt, v.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("venue %s already exists: %w", v.ID, err)
	}
	return err
}

func (r *VenuesRepo) Update(ctx context.Context, v schedule.Venue) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE venues
		SET name = $2, city = $3, capacity = $4, updated_at = $5
		WHERE id = $1
	`, v.ID, v.Name, v.City, v.Capacity, v.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return venues.ErrNotFound
	}
	return nil
}

func (r *VenuesRepo) GetByID(ctx context.Context, id string) (schedule.Venue, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return schedule.Venue{}, venues.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, city, capacity, created_at, updated_at
		FROM venues
		WHERE id = $1
	`, id)

	v, err := scanVenue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schedule.Venue{}, venues.ErrNotFound
		}
		return schedule.Venue{}, err
	}
	return v, nil
}

func (r *VenuesRepo) List(ctx context.Context, filter venues.ListFilter) ([]schedule.Venue, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT id, name, city, capacity, created_at, updated_at
		FROM venues
		WHERE 1=1
	`)

	args := []any{}
	argN := 1

	if city := strings.TrimSpace(filter.City); city != "" {
		sb.WriteString(fmt.Sprintf(" AND lower(city) = lower($%d)", argN))
		args = append(args, city)
		argN++
	}
	// q: búsqueda simple en name + city
	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR city ILIKE $%d)", argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}

	sb.WriteString(" ORDER BY created_at DESC, id ASC")
	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedule.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VenuesRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&n)
	return n, err
}

func scanVenue(row rowScanner) (schedule.Venue, error) {
	var v schedule.Venue
	if err := row.Scan(&v.ID, &v.Name, &v.City, &v.Capacity, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return schedule.Venue{}, err
	}
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	return v, nil
}
