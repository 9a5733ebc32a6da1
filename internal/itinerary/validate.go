package itinerary

import (
	"errors"
	"strings"

	"tripsee/internal/domain"
)

// RangeKind distinguishes the two ways a start/end pair can be out of order.
type RangeKind int

const (
	DateOrderViolation RangeKind = iota + 1
	SameDayTimeViolation
)

func (k RangeKind) String() string {
	switch k {
	case DateOrderViolation:
		return "DateOrderViolation"
	case SameDayTimeViolation:
		return "SameDayTimeViolation"
	default:
		return "RangeKind(?)"
	}
}

const (
	msgDateOrder   = "End date must be on or after the start date"
	msgSameDayTime = "End time must be after start time on the same day"
)

// RangeError reports a start/end pair that is out of order.
type RangeError struct {
	Kind RangeKind
	Msg  string
}

func (e *RangeError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Kind.String()
}

// AsRangeError unwraps err into a *RangeError.
func AsRangeError(err error) (*RangeError, bool) {
	var target *RangeError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

func IsRangeError(err error) bool {
	_, ok := AsRangeError(err)
	return ok
}

// ValidateRange checks a start/end date-time pair.
//
// A start date after the end date is a DateOrderViolation. On the same
// calendar day the end time must be strictly after the start time, otherwise
// it is a SameDayTimeViolation. Times are not compared across different days.
// A missing date on either side leaves nothing to check; a malformed value is
// a domain.ValidationError naming the field.
func ValidateRange(startDate, startTime, endDate, endTime string) error {
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)
	if startDate == "" || endDate == "" {
		return nil
	}

	sd, err := ParseDate(startDate)
	if err != nil {
		return domain.ValidationError{Field: "startDate", Msg: "invalid date (expected YYYY-MM-DD)", Err: err}
	}
	ed, err := ParseDate(endDate)
	if err != nil {
		return domain.ValidationError{Field: "endDate", Msg: "invalid date (expected YYYY-MM-DD)", Err: err}
	}

	if sd.After(ed) {
		return &RangeError{Kind: DateOrderViolation, Msg: msgDateOrder}
	}
	if !sd.Equal(ed) {
		return nil
	}

	startTime = strings.TrimSpace(startTime)
	endTime = strings.TrimSpace(endTime)
	if startTime == "" || endTime == "" {
		return nil
	}
	sh, sm, err := ParseClock(startTime)
	if err != nil {
		return domain.ValidationError{Field: "startTime", Msg: "invalid time (expected HH:MM, 24h)", Err: err}
	}
	eh, em, err := ParseClock(endTime)
	if err != nil {
		return domain.ValidationError{Field: "endTime", Msg: "invalid time (expected HH:MM, 24h)", Err: err}
	}
	if eh*60+em <= sh*60+sm {
		return &RangeError{Kind: SameDayTimeViolation, Msg: msgSameDayTime}
	}
	return nil
}
