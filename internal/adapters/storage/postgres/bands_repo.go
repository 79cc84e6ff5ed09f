package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tour-planning-assistant/internal/domain/bands"
)

type BandsRepo struct {
	db *sql.DB
}

func NewBandsRepo(db *sql.DB) *BandsRepo {
	return &BandsRepo{db: db}
}

func (r *BandsRepo) Create(ctx context.Context, b bands.Band) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bands (id, name, genre, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
	`, b.ID, b.Name, b.Genre, b.CreatedAt, b.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("band %s already exists: %w", b.ID, err)
	}
	return err
}

func (r *BandsRepo) GetByID(ctx context.Context, id string) (bands.Band, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return bands.Band{}, bands.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, genre, created_at, updated_at
		FROM bands
		WHERE id = $1
	`, id)

	b, err := scanBand(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return bands.Band{}, bands.ErrNotFound
		}
		return bands.Band{}, err
	}
	return b, nil
}

func (r *BandsRepo) List(ctx context.Context, filter bands.ListFilter) ([]bands.Band, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT id, name, genre, created_at, updated_at
		FROM bands
		WHERE 1=1
	`)

	args := []any{}
	argN := 1

	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR genre ILIKE $%d)", argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}

	sb.WriteString(" ORDER BY lower(name) ASC, id ASC")
	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]bands.Band, 0)
	for rows.Next() {
		b, err := scanBand(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BandsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bands`).Scan(&n)
	return n, err
}

func scanBand(row rowScanner) (bands.Band, error) {
	var b bands.Band
	if err := row.Scan(&b.ID, &b.Name, &b.Genre, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return bands.Band{}, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, nil
}
