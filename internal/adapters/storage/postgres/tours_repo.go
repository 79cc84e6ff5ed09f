package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/domain/tours"
)

type ToursRepo struct {
	db *sql.DB
}

func NewToursRepo(db *sql.DB) *ToursRepo {
	return &ToursRepo{db: db}
}

// Save hace upsert del tour y reemplaza sus eventos en la misma transacción.
func (r *ToursRepo) Save(ctx context.Context, t schedule.Tour) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tours (
				id, name, artist, band_id, notes,
				start_date, end_date, status,
				created_by, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				artist = EXCLUDED.artist,
				band_id = EXCLUDED.band_id,
				notes = EXCLUDED.notes,
				start_date = EXCLUDED.start_date,
				end_date = EXCLUDED.end_date,
				status = EXCLUDED.status,
				created_by = EXCLUDED.created_by,
				created_at = EXCLUDED.created_at,
				updated_at = EXCLUDED.updated_at
		`,
			t.ID,
			t.Name,
			t.Artist,
			sql.NullString{String: t.BandID, Valid: t.BandID != ""},
			t.Notes,
			nullDate(t.StartDate),
			nullDate(t.EndDate),
			string(t.Status),
			t.CreatedBy,
			t.CreatedAt,
			t.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert tour: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM tour_events WHERE tour_id = $1`, t.ID); err != nil {
			return fmt.Errorf("clear events: %w", err)
		}

		for i, e := range t.Events {
			_, offset := e.StartsAt.Zone()
			_, err := tx.ExecContext(ctx, `
				INSERT INTO tour_events (
					tour_id, id, position,
					venue_id, starts_at, utc_offset_seconds, duration_seconds,
					status, notes, created_at
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			`,
				t.ID,
				e.ID,
				i,
				e.VenueID,
				e.StartsAt,
				offset,
				int64(e.Duration/time.Second),
				string(e.Status),
				e.Notes,
				e.CreatedAt,
			)
			if err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("duplicate event id %s in tour %s: %w", e.ID, t.ID, err)
				}
				return fmt.Errorf("insert event %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

func (r *ToursRepo) GetByID(ctx context.Context, id string) (schedule.Tour, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return schedule.Tour{}, tours.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+tourColumns+`
		FROM tours
		WHERE id = $1
	`, id)

	t, err := scanTour(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schedule.Tour{}, tours.ErrNotFound
		}
		return schedule.Tour{}, err
	}

	byTour, err := r.loadEvents(ctx, []string{t.ID})
	if err != nil {
		return schedule.Tour{}, err
	}
	t.Events = byTour[t.ID]
	if t.Events == nil {
		t.Events = []schedule.Event{}
	}
	return t, nil
}

func (r *ToursRepo) List(ctx context.Context, filter tours.ListFilter) ([]schedule.Tour, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + tourColumns + ` FROM tours WHERE 1=1`)

	args := []any{}
	argN := 1

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(s))
			argN++
		}
		sb.WriteString(" AND status IN (" + strings.Join(placeholders, ",") + ")")
	}
	if filter.BandID != "" {
		sb.WriteString(fmt.Sprintf(" AND band_id = $%d", argN))
		args = append(args, filter.BandID)
		argN++
	}
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND (end_date IS NULL OR end_date >= $%d)", argN))
		args = append(args, schedule.DateOf(*filter.From))
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND (start_date IS NULL OR start_date <= $%d)", argN))
		args = append(args, schedule.DateOf(*filter.To))
		argN++
	}

	sb.WriteString(" ORDER BY start_date ASC NULLS LAST, created_at ASC, id ASC")
	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedule.Tour, 0)
	ids := make([]string, 0)
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	byTour, err := r.loadEvents(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Events = byTour[out[i].ID]
		if out[i].Events == nil {
			out[i].Events = []schedule.Event{}
		}
	}
	return out, nil
}

func (r *ToursRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tours WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return tours.ErrNotFound
	}
	return nil
}

// FindEvent: si el id se repite entre tours gana el evento creado primero.
func (r *ToursRepo) FindEvent(ctx context.Context, eventID string) (schedule.Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM tour_events
		WHERE id = $1
		ORDER BY created_at ASC, tour_id ASC
		LIMIT 1
	`, strings.TrimSpace(eventID))

	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schedule.Event{}, fmt.Errorf("%w: event %s", schedule.ErrNotFound, eventID)
		}
		return schedule.Event{}, err
	}
	return e, nil
}

const tourColumns = `
	id, name, artist, band_id, notes,
	start_date, end_date, status,
	created_by, created_at, updated_at`

const eventColumns = `
	tour_id, id,
	venue_id, starts_at, utc_offset_seconds, duration_seconds,
	status, notes, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTour(row rowScanner) (schedule.Tour, error) {
	var t schedule.Tour
	var start, end sql.NullTime
	var bandID sql.NullString
	var status string
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Artist,
		&bandID,
		&t.Notes,
		&start,
		&end,
		&status,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return schedule.Tour{}, err
	}

	if start.Valid {
		t.StartDate = schedule.DateOf(start.Time)
	}
	if end.Valid {
		t.EndDate = schedule.DateOf(end.Time)
	}
	t.BandID = bandID.String
	t.Status = schedule.TourStatus(status)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func (r *ToursRepo) loadEvents(ctx context.Context, tourIDs []string) (map[string][]schedule.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM tour_events
		WHERE tour_id = ANY($1)
		ORDER BY tour_id, position
	`, tourIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]schedule.Event, len(tourIDs))
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out[e.TourID] = append(out[e.TourID], e)
	}
	return out, rows.Err()
}

func scanEvent(row rowScanner) (schedule.Event, error) {
	var e schedule.Event
	var offset int
	var durationSec int64
	var status string
	if err := row.Scan(
		&e.TourID,
		&e.ID,
		&e.VenueID,
		&e.StartsAt,
		&offset,
		&durationSec,
		&status,
		&e.Notes,
		&e.CreatedAt,
	); err != nil {
		return schedule.Event{}, err
	}

	// Se restaura el offset original: la fecha de calendario depende de él.
	if offset == 0 {
		e.StartsAt = e.StartsAt.UTC()
	} else {
		e.StartsAt = e.StartsAt.In(time.FixedZone("", offset))
	}
	e.Duration = time.Duration(durationSec) * time.Second
	e.Status = schedule.EventStatus(status)
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}

func nullDate(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: schedule.DateOf(t), Valid: true}
}
