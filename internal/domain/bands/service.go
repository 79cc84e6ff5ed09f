package bands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tour-planning-assistant/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("band not found")
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
		log:  log.With(logger.Fields{"module": "bands"}),
		now:  time.Now,
	}
}

type CreateInput struct {
	Name  string
	Genre string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Band, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Band{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	b := Band{
		ID:        uuid.NewString(),
		Name:      name,
		Genre:     strings.TrimSpace(in.Genre),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return Band{}, err
	}
	s.log.Info("band created", logger.Fields{"band_id": b.ID})
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Band, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Band{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Band, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	filter.Query = strings.TrimSpace(filter.Query)
	return s.repo.List(ctx, filter)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
