package schedule

import "time"

// DefaultEventDuration se usa cuando el evento no trae duración propia.
const DefaultEventDuration = 2 * time.Hour

// Tour es una secuencia ordenada de eventos acotada por un rango de fechas.
// StartDate y EndDate son fechas de calendario (medianoche UTC).
type Tour struct {
	ID     string
	Name   string
	Artist string
	BandID string // opcional

	StartDate time.Time
	EndDate   time.Time
	Status    TourStatus

	// Orden cronológico estable (empates por orden de inserción).
	Events []Event

	Notes     string
	CreatedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Event es una presentación en un venue en una fecha/hora.
type Event struct {
	ID      string
	TourID  string // back-reference, no owner
	VenueID string

	StartsAt time.Time
	Duration time.Duration // 0 => DefaultEventDuration
	Status   EventStatus

	Notes     string
	CreatedAt time.Time
}

// Venue es un lugar físico con capacidad. No es dueño de los eventos.
type Venue struct {
	ID       string
	Name     string
	City     string
	Capacity int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Violation describe un invariante roto encontrado por ValidateTour.
type Violation struct {
	Code         ViolationCode
	EventID      string
	OtherEventID string
	VenueID      string
	Message      string
}

// EndsAt devuelve el fin (exclusivo) del evento.
func (e Event) EndsAt() time.Time {
	d := e.Duration
	if d <= 0 {
		d = DefaultEventDuration
	}
	return e.StartsAt.Add(d)
}

// FindEvent devuelve el índice del evento o -1.
func (t Tour) FindEvent(eventID string) int {
	for i, e := range t.Events {
		if e.ID == eventID {
			return i
		}
	}
	return -1
}

// Clone copia el tour con su propio slice de eventos.
func (t Tour) Clone() Tour {
	out := t
	if t.Events != nil {
		out.Events = make([]Event, len(t.Events))
		copy(out.Events, t.Events)
	}
	return out
}
