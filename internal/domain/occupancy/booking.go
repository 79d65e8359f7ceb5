package occupancy

import (
	"errors"
	"fmt"
	"time"

	"bedspace/internal/domain/premises"
	"bedspace/internal/domain/shared/daterange"
)

var (
	ErrBedRequired     = errors.New("occupancy: bed id is required")
	ErrArrivalRequired = errors.New("occupancy: arrival and departure dates are required")
	ErrDepartureOrder  = errors.New("occupancy: departure must not be before arrival")
)

type BookingID string

// Booking occupies its bed on every day of the closed interval
// [ArrivalDate, DepartureDate], unless cancelled.
type Booking struct {
	ID            BookingID
	Bed           premises.BedID
	ArrivalDate   time.Time
	DepartureDate time.Time
	Cancelled     bool
}

func (b Booking) Validate() error {
	if b.Bed == "" {
		return fmt.Errorf("%w (booking %s)", ErrBedRequired, b.ID)
	}
	if b.ArrivalDate.IsZero() || b.DepartureDate.IsZero() {
		return fmt.Errorf("%w (booking %s)", ErrArrivalRequired, b.ID)
	}
	if b.DepartureDate.Before(b.ArrivalDate) {
		return fmt.Errorf("%w (booking %s)", ErrDepartureOrder, b.ID)
	}
	return nil
}

// Stay returns the booked interval at day granularity.
func (b Booking) Stay() daterange.DateRange {
	return daterange.DateRange{Start: daterange.Day(b.ArrivalDate), End: daterange.Day(b.DepartureDate)}
}

// OccupiesOn reports whether the booking occupies its bed on the given day.
// A cancelled booking occupies nothing.
func (b Booking) OccupiesOn(day time.Time) bool {
	if b.Cancelled {
		return false
	}
	return b.Stay().ContainsDay(day)
}
