package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("venue not found")
)

type Service struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log.With(logger.Fields{"module": "venues"}),
		now:  time.Now,
	}
}

type CreateInput struct {
	Name     string
	City     string
	Capacity int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (schedule.Venue, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return schedule.Venue{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	v := schedule.Venue{
		ID:        uuid.NewString(),
		Name:      name,
		City:      strings.TrimSpace(in.City),
		Capacity:  in.Capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := schedule.ValidateVenue(v); err != nil {
		return schedule.Venue{}, err
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return schedule.Venue{}, err
	}
	s.log.Info("venue created", logger.Fields{"venue_id": v.ID, "capacity": v.Capacity})
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (schedule.Venue, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return schedule.Venue{}, ErrNotFound
	}
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return schedule.Venue{}, err
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]schedule.Venue, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	filter.City = strings.TrimSpace(filter.City)
	filter.Query = strings.TrimSpace(filter.Query)
	return s.repo.List(ctx, filter)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Lookup resuelve varios venues por id; los inexistentes no aparecen en el mapa.
func (s *Service) Lookup(ctx context.Context, ids []string) (map[string]schedule.Venue, error) {
	out := make(map[string]schedule.Venue, len(ids))
	for _, id := range ids {
		if _, seen := out[id]; seen {
			continue
		}
		v, err := s.repo.GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[id] = v
	}
	return out, nil
}

// UpdateInput usa punteros para PATCH: nil = no tocar.
type UpdateInput struct {
	Name     *string
	City     *string
	Capacity *int
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (schedule.Venue, error) {
	v, err := s.GetByID(ctx, id)
	if err != nil {
		return schedule.Venue{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return schedule.Venue{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		v.Name = name
	}
	if in.City != nil {
		v.City = strings.TrimSpace(*in.City)
	}
	if in.Capacity != nil {
		v.Capacity = *in.Capacity
	}
	if err := schedule.ValidateVenue(v); err != nil {
		return schedule.Venue{}, err
	}

	v.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, v); err != nil {
		return schedule.Venue{}, err
	}
	return v, nil
}
