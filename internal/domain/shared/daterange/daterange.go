package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: end must not be before start")
	ErrZeroDate     = errors.New("daterange: start and end are required")
)

// DateRange represents an inclusive day-granular interval [Start, End].
// Both bounds are normalised to midnight UTC.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: Day(start), End: Day(end)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

// Day truncates a timestamp to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (dr DateRange) Validate() error {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ErrZeroDate
	}
	if dr.End.Before(dr.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Days returns the number of calendar days covered, inclusive of both bounds.
func (dr DateRange) Days() int {
	return int(dr.End.Sub(dr.Start).Hours()/24) + 1
}

func (dr DateRange) ContainsDay(t time.Time) bool {
	day := Day(t)
	return !day.Before(dr.Start) && !day.After(dr.End)
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return !dr.Start.After(other.End) && !other.Start.After(dr.End)
}

// Clip returns the intersection of the two ranges and whether it is non-empty.
func (dr DateRange) Clip(other DateRange) (DateRange, bool) {
	if !dr.Overlaps(other) {
		return DateRange{}, false
	}
	start := dr.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := dr.End
	if other.End.Before(end) {
		end = other.End
	}
	return DateRange{Start: start, End: end}, true
}

// ClipOpen clips a possibly open-ended interval [start, end?] to a window.
// A zero end means the interval extends indefinitely.
func ClipOpen(start, end time.Time, window DateRange) (DateRange, bool) {
	if start.IsZero() {
		return DateRange{}, false
	}
	closedEnd := window.End
	if !end.IsZero() && Day(end).Before(closedEnd) {
		closedEnd = Day(end)
	}
	candidate := DateRange{Start: Day(start), End: closedEnd}
	if candidate.End.Before(candidate.Start) {
		return DateRange{}, false
	}
	return candidate.Clip(window)
}

// EachDay invokes fn for every day in the range, in ascending order.
func (dr DateRange) EachDay(fn func(day time.Time)) {
	for day := dr.Start; !day.After(dr.End); day = day.AddDate(0, 0, 1) {
		fn(day)
	}
}
