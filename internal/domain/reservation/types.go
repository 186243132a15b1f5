package reservation

import "errors"

// Status is the explicit lifecycle of a reservation. Deleted reservations
// keep their row; only active ones count toward capacity.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

var ErrInvalidStatus = errors.New("invalid reservation status")

func (s Status) String() string {
	return string(s)
}

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusDeleted:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// StatusFilter selects reservations by lifecycle in read queries. It has no
// zero-value meaning so every query must choose explicitly.
type StatusFilter string

const (
	FilterActive  StatusFilter = "active"
	FilterDeleted StatusFilter = "deleted"
	FilterAll     StatusFilter = "all"
)

func NewStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case FilterActive, FilterDeleted, FilterAll:
		return StatusFilter(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Statuses lists the lifecycle values f admits.
func (f StatusFilter) Statuses() []Status {
	switch f {
	case FilterActive:
		return []Status{StatusActive}
	case FilterDeleted:
		return []Status{StatusDeleted}
	case FilterAll:
		return []Status{StatusActive, StatusDeleted}
	default:
		return nil
	}
}
