package occupancy

import (
	"errors"
	"fmt"
	"time"

	"bedspace/internal/domain/premises"
	"bedspace/internal/domain/shared/daterange"
)

var (
	ErrStartRequired = errors.New("occupancy: out-of-service start date is required")
	ErrEndOrder      = errors.New("occupancy: out-of-service end must not be before start")
)

type OutOfServicePeriodID string

// OutOfServicePeriod removes a bed from availability for [StartDate, EndDate].
// A zero EndDate means the period is open-ended; a cancelled period removes
// nothing.
type OutOfServicePeriod struct {
	ID        OutOfServicePeriodID
	Bed       premises.BedID
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Cancelled bool
}

func (p OutOfServicePeriod) Validate() error {
	if p.Bed == "" {
		return fmt.Errorf("%w (out-of-service %s)", ErrBedRequired, p.ID)
	}
	if p.StartDate.IsZero() {
		return fmt.Errorf("%w (out-of-service %s)", ErrStartRequired, p.ID)
	}
	if !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w (out-of-service %s)", ErrEndOrder, p.ID)
	}
	return nil
}

// CoversDay reports whether the bed is out of service on the given day.
func (p OutOfServicePeriod) CoversDay(day time.Time) bool {
	if p.Cancelled {
		return false
	}
	d := daterange.Day(day)
	if d.Before(daterange.Day(p.StartDate)) {
		return false
	}
	if p.EndDate.IsZero() {
		return true
	}
	return !d.After(daterange.Day(p.EndDate))
}
