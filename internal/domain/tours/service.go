package tours

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tour-planning-assistant/internal/domain/bands"
	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/domain/venues"
	"tour-planning-assistant/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("tour not found")
	ErrVenueNotFound = errors.New("venue not found")
	ErrBandNotFound  = errors.New("band not found")
)

// Duración máxima de un evento.
const maxEventDuration = 24 * time.Hour

// VenueLookup es lo mínimo que el servicio necesita de venues.
type VenueLookup interface {
	GetByID(ctx context.Context, id string) (schedule.Venue, error)
	Lookup(ctx context.Context, ids []string) (map[string]schedule.Venue, error)
}

// BandLookup resuelve la banda asociada a un tour.
type BandLookup interface {
	GetByID(ctx context.Context, id string) (bands.Band, error)
}

type Service struct {
	repo   Repository
	venues VenueLookup
	bands  BandLookup
	log    logger.Logger
	now    func() time.Time
	locks  tourLocks
}

// NewService acepta bandLookup nil: en ese caso band_id no se verifica.
func NewService(repo Repository, venueLookup VenueLookup, bandLookup BandLookup, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		venues: venueLookup,
		bands:  bandLookup,
		log:    log.With(logger.Fields{"module": "tours"}),
		now:    time.Now,
	}
}

type CreateInput struct {
	Name      string
	Artist    string
	BandID    string
	Notes     string
	StartDate time.Time
	EndDate   time.Time
}

func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (schedule.Tour, error) {
	actorID = strings.TrimSpace(actorID)
	name := strings.TrimSpace(in.Name)
	if actorID == "" {
		return schedule.Tour{}, fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	if name == "" {
		return schedule.Tour{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := schedule.ValidateDateRange(in.StartDate, in.EndDate); err != nil {
		return schedule.Tour{}, err
	}
	bandID, err := s.checkBand(ctx, in.BandID)
	if err != nil {
		return schedule.Tour{}, err
	}

	now := s.now().UTC()
	t := schedule.Tour{
		ID:        uuid.NewString(),
		Name:      name,
		Artist:    strings.TrimSpace(in.Artist),
		BandID:    bandID,
		Notes:     strings.TrimSpace(in.Notes),
		StartDate: schedule.DateOf(in.StartDate),
		EndDate:   schedule.DateOf(in.EndDate),
		Status:    schedule.TourStatusPlanning,
		Events:    []schedule.Event{},
		CreatedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Save(ctx, t); err != nil {
		return schedule.Tour{}, err
	}
	s.log.Info("tour created", logger.Fields{"tour_id": t.ID, "actor_id": actorID})
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (schedule.Tour, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return schedule.Tour{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetEvent busca un evento por id en todos los tours.
func (s *Service) GetEvent(ctx context.Context, id string) (schedule.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return schedule.Event{}, fmt.Errorf("%w: event id is required", schedule.ErrNotFound)
	}
	return s.repo.FindEvent(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]schedule.Tour, error) {
	for _, st := range filter.Statuses {
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, st)
		}
	}
	filter.BandID = strings.TrimSpace(filter.BandID)
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	defer s.locks.lock(id)()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("tour deleted", logger.Fields{"tour_id": id})
	return nil
}

// UpdateInput usa punteros para PATCH: nil = no tocar.
type UpdateInput struct {
	Name      *string
	Artist    *string
	BandID    *string
	Notes     *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Update no permite fechas que dejen eventos fuera del rango.
// BandID vacío desasocia la banda.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (schedule.Tour, error) {
	var bandID string
	if in.BandID != nil {
		var err error
		if bandID, err = s.checkBand(ctx, *in.BandID); err != nil {
			return schedule.Tour{}, err
		}
	}

	return s.mutate(ctx, id, func(t schedule.Tour) (schedule.Tour, error) {
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return t, fmt.Errorf("%w: name is required", ErrInvalidInput)
			}
			t.Name = name
		}
		if in.Artist != nil {
			t.Artist = strings.TrimSpace(*in.Artist)
		}
		if in.BandID != nil {
			t.BandID = bandID
		}
		if in.Notes != nil {
			t.Notes = strings.TrimSpace(*in.Notes)
		}
		if in.StartDate != nil {
			t.StartDate = schedule.DateOf(*in.StartDate)
		}
		if in.EndDate != nil {
			t.EndDate = schedule.DateOf(*in.EndDate)
		}

		if err := schedule.ValidateDateRange(t.StartDate, t.EndDate); err != nil {
			return t, err
		}
		for _, e := range t.Events {
			if !schedule.DateInRange(t, e.StartsAt) {
				return t, fmt.Errorf("%w: event %s on %s would fall outside the new dates",
					schedule.ErrDateOutOfRange, e.ID, e.StartsAt.Format("2006-01-02"))
			}
		}
		return t, nil
	})
}

func (s *Service) TransitionStatus(ctx context.Context, id string, to schedule.TourStatus) (schedule.Tour, error) {
	if !to.IsValid() {
		return schedule.Tour{}, fmt.Errorf("%w: unknown tour status %q", ErrInvalidInput, to)
	}

	var from schedule.TourStatus
	t, err := s.mutate(ctx, id, func(t schedule.Tour) (schedule.Tour, error) {
		from = t.Status
		return schedule.TransitionTourStatus(t, to)
	})
	if err != nil {
		return schedule.Tour{}, err
	}

	s.log.Info("tour status changed", logger.Fields{"tour_id": id, "from": from, "to": to})
	return t, nil
}

type AddEventInput struct {
	VenueID  string
	StartsAt time.Time
	Duration time.Duration
	Notes    string
}

func (s *Service) AddEvent(ctx context.Context, tourID string, in AddEventInput) (schedule.Tour, schedule.Event, error) {
	venueID := strings.TrimSpace(in.VenueID)
	if venueID == "" {
		return schedule.Tour{}, schedule.Event{}, fmt.Errorf("%w: venue_id is required", ErrInvalidInput)
	}
	if in.StartsAt.IsZero() {
		return schedule.Tour{}, schedule.Event{}, fmt.Errorf("%w: starts_at is required", ErrInvalidInput)
	}
	if err := checkDuration(in.Duration); err != nil {
		return schedule.Tour{}, schedule.Event{}, err
	}

	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, venues.ErrNotFound) {
			return schedule.Tour{}, schedule.Event{}, fmt.Errorf("%w: %s", ErrVenueNotFound, venueID)
		}
		return schedule.Tour{}, schedule.Event{}, err
	}

	e := schedule.Event{
		ID:        uuid.NewString(),
		VenueID:   venueID,
		StartsAt:  in.StartsAt,
		Duration:  in.Duration,
		Status:    schedule.EventStatusUnconfirmed,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: s.now().UTC(),
	}

	t, err := s.mutate(ctx, tourID, func(t schedule.Tour) (schedule.Tour, error) {
		if t.Status.IsTerminal() {
			return t, fmt.Errorf("%w: tour %s is %s", schedule.ErrIllegalTransition, t.ID, t.Status)
		}
		return schedule.AddEvent(t, e)
	})
	if err != nil {
		return schedule.Tour{}, schedule.Event{}, err
	}

	added := t.Events[t.FindEvent(e.ID)]
	s.log.Info("event added", logger.Fields{"tour_id": t.ID, "event_id": e.ID, "venue_id": venueID})
	return t, added, nil
}

func (s *Service) RemoveEvent(ctx context.Context, tourID, eventID string) (schedule.Tour, error) {
	t, err := s.mutate(ctx, tourID, func(t schedule.Tour) (schedule.Tour, error) {
		return schedule.RemoveEvent(t, strings.TrimSpace(eventID))
	})
	if err != nil {
		return schedule.Tour{}, err
	}

	s.log.Info("event removed", logger.Fields{"tour_id": tourID, "event_id": eventID})
	return t, nil
}

func (s *Service) TransitionEventStatus(ctx context.Context, tourID, eventID string, to schedule.EventStatus) (schedule.Event, error) {
	if !to.IsValid() {
		return schedule.Event{}, fmt.Errorf("%w: unknown event status %q", ErrInvalidInput, to)
	}
	eventID = strings.TrimSpace(eventID)

	var updated schedule.Event
	_, err := s.mutate(ctx, tourID, func(t schedule.Tour) (schedule.Tour, error) {
		idx := t.FindEvent(eventID)
		if idx < 0 {
			return t, fmt.Errorf("%w: event %s in tour %s", schedule.ErrNotFound, eventID, t.ID)
		}
		e, err := schedule.TransitionEventStatus(t.Events[idx], to)
		if err != nil {
			return t, err
		}
		t = t.Clone()
		t.Events[idx] = e
		updated = e
		return t, nil
	})
	if err != nil {
		return schedule.Event{}, err
	}

	s.log.Info("event status changed", logger.Fields{"tour_id": tourID, "event_id": eventID, "to": to})
	return updated, nil
}

// Validate recalcula los invariantes del tour con los venues actuales.
func (s *Service) Validate(ctx context.Context, tourID string) ([]schedule.Violation, error) {
	t, err := s.GetByID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	return s.validate(ctx, t)
}

func (s *Service) validate(ctx context.Context, t schedule.Tour) ([]schedule.Violation, error) {
	ids := make([]string, 0, len(t.Events))
	for _, e := range t.Events {
		ids = append(ids, e.VenueID)
	}
	vs, err := s.venues.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	return schedule.ValidateTour(t, vs), nil
}

type ImportEvent struct {
	ID       string
	VenueID  string
	StartsAt time.Time
	Duration time.Duration
	Status   schedule.EventStatus
	Notes    string
}

// ImportInput viene de datos externos: si trae ID, reemplaza ese tour.
type ImportInput struct {
	ID        string
	Name      string
	Artist    string
	BandID    string
	Notes     string
	StartDate time.Time
	EndDate   time.Time
	Status    schedule.TourStatus
	Events    []ImportEvent
}

// Import guarda el tour tal como viene (eventos ordenados) y devuelve las
// violaciones en lugar de rechazarlo, para corregirlas después en bloque.
func (s *Service) Import(ctx context.Context, actorID string, in ImportInput) (schedule.Tour, []schedule.Violation, error) {
	actorID = strings.TrimSpace(actorID)
	name := strings.TrimSpace(in.Name)
	if actorID == "" || name == "" {
		return schedule.Tour{}, nil, fmt.Errorf("%w: actor and name are required", ErrInvalidInput)
	}

	status := in.Status
	if status == "" {
		status = schedule.TourStatusPlanning
	}
	if !status.IsValid() {
		return schedule.Tour{}, nil, fmt.Errorf("%w: unknown tour status %q", ErrInvalidInput, status)
	}
	bandID, err := s.checkBand(ctx, in.BandID)
	if err != nil {
		return schedule.Tour{}, nil, err
	}

	now := s.now().UTC()
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}
	defer s.locks.lock(id)()

	t := schedule.Tour{
		ID:        id,
		Name:      name,
		Artist:    strings.TrimSpace(in.Artist),
		BandID:    bandID,
		Notes:     strings.TrimSpace(in.Notes),
		Status:    status,
		CreatedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !in.StartDate.IsZero() {
		t.StartDate = schedule.DateOf(in.StartDate)
	}
	if !in.EndDate.IsZero() {
		t.EndDate = schedule.DateOf(in.EndDate)
	}
	if existing, err := s.repo.GetByID(ctx, id); err == nil {
		t.CreatedBy = existing.CreatedBy
		t.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, ErrNotFound) {
		return schedule.Tour{}, nil, err
	}

	events := make([]schedule.Event, 0, len(in.Events))
	seen := make(map[string]struct{}, len(in.Events))
	for _, ie := range in.Events {
		st := ie.Status
		if st == "" {
			st = schedule.EventStatusUnconfirmed
		}
		if !st.IsValid() {
			return schedule.Tour{}, nil, fmt.Errorf("%w: unknown event status %q", ErrInvalidInput, st)
		}
		if err := checkDuration(ie.Duration); err != nil {
			return schedule.Tour{}, nil, err
		}
		eid := strings.TrimSpace(ie.ID)
		if eid == "" {
			eid = uuid.NewString()
		}
		if _, dup := seen[eid]; dup {
			return schedule.Tour{}, nil, fmt.Errorf("%w: duplicate event id %s", ErrInvalidInput, eid)
		}
		seen[eid] = struct{}{}
		events = append(events, schedule.Event{
			ID:        eid,
			TourID:    id,
			VenueID:   strings.TrimSpace(ie.VenueID),
			StartsAt:  ie.StartsAt,
			Duration:  ie.Duration,
			Status:    st,
			Notes:     strings.TrimSpace(ie.Notes),
			CreatedAt: now,
		})
	}
	t.Events = schedule.SortEvents(events)

	violations, err := s.validate(ctx, t)
	if err != nil {
		return schedule.Tour{}, nil, err
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return schedule.Tour{}, nil, err
	}

	fields := logger.Fields{"tour_id": t.ID, "events": len(t.Events), "violations": len(violations)}
	if len(violations) > 0 {
		s.log.Warn("tour imported with violations", fields)
	} else {
		s.log.Info("tour imported", fields)
	}
	return t, violations, nil
}

// ListEvents aplana los eventos de todos los tours en orden cronológico.
func (s *Service) ListEvents(ctx context.Context, filter EventFilter) ([]schedule.Event, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown event status %q", ErrInvalidInput, filter.Status)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// El rango de tours es por fecha de calendario; se amplía un día a cada lado
	// y el filtro fino se hace sobre StartsAt.
	var tf ListFilter
	if filter.From != nil {
		from := schedule.DateOf(*filter.From).AddDate(0, 0, -1)
		tf.From = &from
	}
	if filter.To != nil {
		to := schedule.DateOf(*filter.To).AddDate(0, 0, 1)
		tf.To = &to
	}

	items, err := s.repo.List(ctx, tf)
	if err != nil {
		return nil, err
	}

	out := make([]schedule.Event, 0)
	for _, t := range items {
		for _, e := range t.Events {
			if filter.From != nil && e.StartsAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && e.StartsAt.After(*filter.To) {
				continue
			}
			if filter.Status != "" && e.Status != filter.Status {
				continue
			}
			if filter.VenueID != "" && e.VenueID != filter.VenueID {
				continue
			}
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func checkDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}
	if d > maxEventDuration {
		return fmt.Errorf("%w: duration must not exceed %s", ErrInvalidInput, maxEventDuration)
	}
	return nil
}

// checkBand normaliza el id y verifica que la banda exista.
func (s *Service) checkBand(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || s.bands == nil {
		return id, nil
	}
	if _, err := s.bands.GetByID(ctx, id); err != nil {
		if errors.Is(err, bands.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrBandNotFound, id)
		}
		return "", err
	}
	return id, nil
}

// mutate hace read-modify-write del tour bajo su lock.
func (s *Service) mutate(ctx context.Context, id string, fn func(schedule.Tour) (schedule.Tour, error)) (schedule.Tour, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return schedule.Tour{}, ErrNotFound
	}
	defer s.locks.lock(id)()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return schedule.Tour{}, err
	}

	next, err := fn(current)
	if err != nil {
		return schedule.Tour{}, err
	}
	next.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, next); err != nil {
		return schedule.Tour{}, err
	}
	return next, nil
}
