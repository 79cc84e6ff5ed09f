package schedule

import "fmt"

var tourTransitions = map[TourStatus][]TourStatus{
	TourStatusPlanning:   {TourStatusConfirmed, TourStatusCancelled},
	TourStatusConfirmed:  {TourStatusInProgress, TourStatusCancelled},
	TourStatusInProgress: {TourStatusCompleted, TourStatusCancelled},
}

var eventTransitions = map[EventStatus][]EventStatus{
	EventStatusUnconfirmed: {EventStatusConfirmed, EventStatusCancelled},
	EventStatusConfirmed:   {EventStatusCancelled},
}

func CanTransitionTour(from, to TourStatus) bool {
	for _, s := range tourTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func CanTransitionEvent(from, to EventStatus) bool {
	for _, s := range eventTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionTourStatus solo avanza PLANNING→CONFIRMED→IN_PROGRESS→COMPLETED,
// o cancela desde cualquier estado no terminal.
func TransitionTourStatus(t Tour, to TourStatus) (Tour, error) {
	if !CanTransitionTour(t.Status, to) {
		return t, fmt.Errorf("%w: tour %s from %s to %s", ErrIllegalTransition, t.ID, t.Status, to)
	}
	out := t.Clone()
	out.Status = to
	return out, nil
}

// TransitionEventStatus: CANCELLED es terminal, CONFIRMED solo puede cancelarse.
func TransitionEventStatus(e Event, to EventStatus) (Event, error) {
	if !CanTransitionEvent(e.Status, to) {
		return e, fmt.Errorf("%w: event %s from %s to %s", ErrIllegalTransition, e.ID, e.Status, to)
	}
	e.Status = to
	return e, nil
}
