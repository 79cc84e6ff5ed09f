package schedule

import (
	"fmt"
	"sort"
	"time"
)

// AddEvent inserta el evento en el tour respetando el orden cronológico.
// No modifica el tour recibido: devuelve una copia actualizada.
func AddEvent(t Tour, e Event) (Tour, error) {
	if e.ID != "" && t.FindEvent(e.ID) >= 0 {
		return t, fmt.Errorf("%w: %s already in tour %s", ErrDuplicateEvent, e.ID, t.ID)
	}
	if !DateInRange(t, e.StartsAt) {
		return t, fmt.Errorf("%w: event date %s outside tour range %s..%s",
			ErrDateOutOfRange,
			e.StartsAt.Format(dateLayout),
			t.StartDate.Format(dateLayout),
			t.EndDate.Format(dateLayout),
		)
	}

	for _, other := range t.Events {
		if other.VenueID != e.VenueID {
			continue
		}
		if Overlaps(other, e) {
			return t, fmt.Errorf("%w: venue %s already booked by event %s at %s",
				ErrVenueConflict, e.VenueID, other.ID, other.StartsAt.Format(time.RFC3339))
		}
	}

	if e.Status == "" {
		e.Status = EventStatusUnconfirmed
	}
	e.TourID = t.ID

	out := t.Clone()
	// Primer índice estrictamente posterior: en empates el nuevo queda al final.
	idx := sort.Search(len(out.Events), func(i int) bool {
		return out.Events[i].StartsAt.After(e.StartsAt)
	})
	out.Events = append(out.Events, Event{})
	copy(out.Events[idx+1:], out.Events[idx:])
	out.Events[idx] = e

	return out, nil
}

// RemoveEvent quita el evento; el resto conserva su orden.
func RemoveEvent(t Tour, eventID string) (Tour, error) {
	idx := t.FindEvent(eventID)
	if idx < 0 {
		return t, fmt.Errorf("%w: event %s in tour %s", ErrNotFound, eventID, t.ID)
	}

	out := t.Clone()
	out.Events = append(out.Events[:idx], out.Events[idx+1:]...)
	return out, nil
}

// SortEvents ordena de forma estable por StartsAt.
func SortEvents(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	return out
}

// Overlaps compara los intervalos semiabiertos [StartsAt, EndsAt).
func Overlaps(a, b Event) bool {
	return a.StartsAt.Before(b.EndsAt()) && b.StartsAt.Before(a.EndsAt())
}

// DateInRange indica si la fecha de calendario de ts cae en [StartDate, EndDate].
// Un tour sin alguna de sus fechas no acepta eventos.
func DateInRange(t Tour, ts time.Time) bool {
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return false
	}
	day := DateOf(ts)
	return !day.Before(DateOf(t.StartDate)) && !day.After(DateOf(t.EndDate))
}

// ValidateDateRange exige ambas fechas y start <= end.
func ValidateDateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidDateRange)
	}
	if DateOf(start).After(DateOf(end)) {
		return fmt.Errorf("%w: start %s after end %s",
			ErrInvalidDateRange, start.Format(dateLayout), end.Format(dateLayout))
	}
	return nil
}

// ValidateVenue exige capacidad positiva.
func ValidateVenue(v Venue) error {
	if v.Capacity <= 0 {
		return fmt.Errorf("%w: venue %s has capacity %d", ErrInvalidCapacity, v.ID, v.Capacity)
	}
	return nil
}

// DateOf trunca a la fecha de calendario (en la zona del propio valor) y la expresa en UTC.
func DateOf(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const dateLayout = "2006-01-02"
