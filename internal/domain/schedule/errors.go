package schedule

import "errors"

var (
	ErrDateOutOfRange    = errors.New("date out of range")
	ErrVenueConflict     = errors.New("venue conflict")
	ErrIllegalTransition = errors.New("illegal transition")
	ErrNotFound          = errors.New("not found")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidCapacity   = errors.New("invalid capacity")
	ErrDuplicateEvent    = errors.New("duplicate event id")
)
