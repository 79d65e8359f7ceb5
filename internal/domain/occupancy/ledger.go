package occupancy

import (
	"errors"
	"fmt"

	"bedspace/internal/domain/premises"
)

// ErrUnknownBed marks a booking or out-of-service record referencing a bed
// absent from the supplied inventory. This is a data-integrity error, never
// silently skipped.
var ErrUnknownBed = errors.New("occupancy: record references unknown bed")

// Ledger is an immutable per-bed index of bookings and out-of-service
// periods for one computation.
type Ledger struct {
	bookings     map[premises.BedID][]Booking
	outOfService map[premises.BedID][]OutOfServicePeriod
}

func NewLedger(bookings []Booking, periods []OutOfServicePeriod) Ledger {
	l := Ledger{
		bookings:     make(map[premises.BedID][]Booking, len(bookings)),
		outOfService: make(map[premises.BedID][]OutOfServicePeriod, len(periods)),
	}
	for _, b := range bookings {
		l.bookings[b.Bed] = append(l.bookings[b.Bed], b)
	}
	for _, p := range periods {
		l.outOfService[p.Bed] = append(l.outOfService[p.Bed], p)
	}
	return l
}

// ValidateAgainst checks every record for well-formedness and that its bed
// belongs to the given premises.
func (l Ledger) ValidateAgainst(p *premises.Premises) error {
	for bed, bookings := range l.bookings {
		if !p.HasBed(bed) {
			return fmt.Errorf("%w: booking %s references bed %s outside premises %s",
				ErrUnknownBed, bookings[0].ID, bed, p.ID)
		}
		for _, b := range bookings {
			if err := b.Validate(); err != nil {
				return err
			}
		}
	}
	for bed, periods := range l.outOfService {
		if !p.HasBed(bed) {
			return fmt.Errorf("%w: out-of-service %s references bed %s outside premises %s",
				ErrUnknownBed, periods[0].ID, bed, p.ID)
		}
		for _, period := range periods {
			if err := period.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l Ledger) BookingsFor(bed premises.BedID) []Booking {
	return l.bookings[bed]
}

func (l Ledger) OutOfServiceFor(bed premises.BedID) []OutOfServicePeriod {
	return l.outOfService[bed]
}
