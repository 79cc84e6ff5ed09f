package schedule

import "fmt"

// ValidateTour recalcula todos los invariantes y devuelve las violaciones
// encontradas (vacío = válido). Nunca falla y el orden es determinístico,
// así que dos llamadas sobre el mismo tour devuelven lo mismo.
func ValidateTour(t Tour, venues map[string]Venue) []Violation {
	out := make([]Violation, 0)

	if err := ValidateDateRange(t.StartDate, t.EndDate); err != nil {
		out = append(out, Violation{
			Code:    ViolationInvalidDateRange,
			Message: err.Error(),
		})
	}

	for i, e := range t.Events {
		if i > 0 && e.StartsAt.Before(t.Events[i-1].StartsAt) {
			out = append(out, Violation{
				Code:         ViolationOutOfOrder,
				EventID:      e.ID,
				OtherEventID: t.Events[i-1].ID,
				Message:      fmt.Sprintf("event %s starts before preceding event %s", e.ID, t.Events[i-1].ID),
			})
		}

		if !DateInRange(t, e.StartsAt) {
			out = append(out, Violation{
				Code:    ViolationDateOutOfRange,
				EventID: e.ID,
				Message: fmt.Sprintf("event %s on %s is outside the tour dates", e.ID, e.StartsAt.Format(dateLayout)),
			})
		}

		v, ok := venues[e.VenueID]
		if !ok {
			out = append(out, Violation{
				Code:    ViolationUnknownVenue,
				EventID: e.ID,
				VenueID: e.VenueID,
				Message: fmt.Sprintf("event %s references unknown venue %s", e.ID, e.VenueID),
			})
			continue
		}
		if err := ValidateVenue(v); err != nil {
			out = append(out, Violation{
				Code:    ViolationInvalidCapacity,
				EventID: e.ID,
				VenueID: e.VenueID,
				Message: err.Error(),
			})
		}
	}

	for i := 0; i < len(t.Events); i++ {
		for j := i + 1; j < len(t.Events); j++ {
			a, b := t.Events[i], t.Events[j]
			if a.VenueID != b.VenueID || !Overlaps(a, b) {
				continue
			}
			out = append(out, Violation{
				Code:         ViolationVenueConflict,
				EventID:      a.ID,
				OtherEventID: b.ID,
				VenueID:      a.VenueID,
				Message:      fmt.Sprintf("events %s and %s overlap at venue %s", a.ID, b.ID, a.VenueID),
			})
		}
	}

	return out
}
