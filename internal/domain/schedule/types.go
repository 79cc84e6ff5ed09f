package schedule

type TourStatus string

const (
	TourStatusPlanning   TourStatus = "PLANNING"
	TourStatusConfirmed  TourStatus = "CONFIRMED"
	TourStatusInProgress TourStatus = "IN_PROGRESS"
	TourStatusCompleted  TourStatus = "COMPLETED"
	TourStatusCancelled  TourStatus = "CANCELLED"
)

// IsValid indica si el status es uno de los conocidos.
func (s TourStatus) IsValid() bool {
	switch s {
	case TourStatusPlanning, TourStatusConfirmed, TourStatusInProgress, TourStatusCompleted, TourStatusCancelled:
		return true
	}
	return false
}

// IsTerminal: COMPLETED y CANCELLED no admiten más transiciones.
func (s TourStatus) IsTerminal() bool {
	return s == TourStatusCompleted || s == TourStatusCancelled
}

type EventStatus string

const (
	EventStatusUnconfirmed EventStatus = "UNCONFIRMED"
	EventStatusConfirmed   EventStatus = "CONFIRMED"
	EventStatusCancelled   EventStatus = "CANCELLED"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusUnconfirmed, EventStatusConfirmed, EventStatusCancelled:
		return true
	}
	return false
}

type ViolationCode string

const (
	ViolationInvalidDateRange ViolationCode = "INVALID_DATE_RANGE"
	ViolationOutOfOrder       ViolationCode = "OUT_OF_ORDER"
	ViolationDateOutOfRange   ViolationCode = "DATE_OUT_OF_RANGE"
	ViolationUnknownVenue     ViolationCode = "UNKNOWN_VENUE"
	ViolationInvalidCapacity  ViolationCode = "INVALID_CAPACITY"
	ViolationVenueConflict    ViolationCode = "VENUE_CONFLICT"
)
