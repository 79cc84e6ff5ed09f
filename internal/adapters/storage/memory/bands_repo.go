package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"tour-planning-assistant/internal/domain/bands"
)

type bandRepo struct {
	mu   sync.RWMutex
	byID map[string]bands.Band
}

func NewBandRepo() bands.Repository {
	return &bandRepo{
		byID: make(map[string]bands.Band),
	}
}

func (r *bandRepo) Create(ctx context.Context, b bands.Band) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return errors.New("band id required")
	}
	if _, exists := r.byID[b.ID]; exists {
		return errors.New("band already exists")
	}
	r.byID[b.ID] = b
	return nil
}

func (r *bandRepo) GetByID(ctx context.Context, id string) (bands.Band, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return bands.Band{}, bands.ErrNotFound
	}
	return b, nil
}

func (r *bandRepo) List(ctx context.Context, filter bands.ListFilter) ([]bands.Band, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]bands.Band, 0)
	for _, b := range r.byID {
		if q != "" && !strings.Contains(strings.ToLower(b.Name), q) && !strings.Contains(strings.ToLower(b.Genre), q) {
			continue
		}
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].ID < out[j].ID
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *bandRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
