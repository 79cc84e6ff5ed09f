package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/domain/tours"
)

type tourRepo struct {
	mu   sync.RWMutex
	byID map[string]schedule.Tour
}

func NewTourRepo() tours.Repository {
	return &tourRepo{
		byID: make(map[string]schedule.Tour),
	}
}

// Save es upsert; guarda una copia para que el caller no comparta el slice de eventos.
func (r *tourRepo) Save(ctx context.Context, t schedule.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("tour id required")
	}
	r.byID[t.ID] = t.Clone()
	return nil
}

func (r *tourRepo) GetByID(ctx context.Context, id string) (schedule.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return schedule.Tour{}, tours.ErrNotFound
	}
	return t.Clone(), nil
}

func (r *tourRepo) List(ctx context.Context, filter tours.ListFilter) ([]schedule.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Tour, 0)
	for _, t := range r.byID {
		if !matchesTour(t, filter) {
			continue
		}
		out = append(out, t.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *tourRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return tours.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// FindEvent recorre todos los tours; si el id se repite entre tours gana el
// evento creado primero.
func (r *tourRepo) FindEvent(ctx context.Context, eventID string) (schedule.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found schedule.Event
		ok    bool
	)
	for _, t := range r.byID {
		idx := t.FindEvent(eventID)
		if idx < 0 {
			continue
		}
		e := t.Events[idx]
		if !ok || e.CreatedAt.Before(found.CreatedAt) ||
			(e.CreatedAt.Equal(found.CreatedAt) && e.TourID < found.TourID) {
			found, ok = e, true
		}
	}
	if !ok {
		return schedule.Event{}, fmt.Errorf("%w: event %s", schedule.ErrNotFound, eventID)
	}
	return found, nil
}

func matchesTour(t schedule.Tour, f tours.ListFilter) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if t.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.BandID != "" && t.BandID != f.BandID {
		return false
	}
	// Las fechas del tour son de calendario: se compara contra el día de From/To.
	if f.From != nil && !t.EndDate.IsZero() && t.EndDate.Before(schedule.DateOf(*f.From)) {
		return false
	}
	if f.To != nil && !t.StartDate.IsZero() && t.StartDate.After(schedule.DateOf(*f.To)) {
		return false
	}
	return true
}
