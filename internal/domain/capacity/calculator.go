package capacity

import (
	"time"

	"bedspace/internal/domain/occupancy"
	"bedspace/internal/domain/premises"
	"bedspace/internal/domain/shared/daterange"
)

// CharacteristicCapacity carries one day's counts restricted to beds whose
// room carries the characteristic.
type CharacteristicCapacity struct {
	Characteristic    premises.Characteristic
	TotalBedCount     int
	AvailableBedCount int
	BookingCount      int
	VacantBedCount    int
}

// DayCapacity is one calendar day of a premises timeline. VacantBedCount may
// be negative: over-booking is surfaced, never clamped.
type DayCapacity struct {
	Date              time.Time
	TotalBedCount     int
	AvailableBedCount int
	BookingCount      int
	VacantBedCount    int
	Characteristics   []CharacteristicCapacity
}

// PremisesTimeline is the per-day capacity of one premises over a range.
type PremisesTimeline struct {
	Premises premises.PremisesID
	Range    daterange.DateRange
	Days     []DayCapacity
}

// sweep accumulates +1/-1 interval boundaries and resolves them with a
// prefix sum, so cost stays proportional to days + intervals instead of
// days * intervals.
type sweep struct {
	diff []int
}

func newSweep(days int) *sweep {
	return &sweep{diff: make([]int, days+1)}
}

func (s *sweep) add(window daterange.DateRange, interval daterange.DateRange) {
	clipped, ok := interval.Clip(window)
	if !ok {
		return
	}
	from := int(clipped.Start.Sub(window.Start).Hours() / 24)
	to := int(clipped.End.Sub(window.Start).Hours()/24) + 1
	s.diff[from]++
	s.diff[to]--
}

func (s *sweep) counts() []int {
	out := make([]int, len(s.diff)-1)
	running := 0
	for i := range out {
		running += s.diff[i]
		out[i] = running
	}
	return out
}

type scopeCounts struct {
	total        []int
	outOfService []int
	booked       []int
}

// Compute produces the per-day capacity timeline for one premises. The
// requested characteristics scope additional per-day counts; the overall
// counts are always present.
func Compute(p *premises.Premises, ledger occupancy.Ledger, window daterange.DateRange, requested []premises.Characteristic) (PremisesTimeline, error) {
	if err := window.Validate(); err != nil {
		return PremisesTimeline{}, err
	}
	for _, c := range requested {
		if !c.Valid() {
			return PremisesTimeline{}, premises.ErrUnknownCharacteristic
		}
	}
	if err := ledger.ValidateAgainst(p); err != nil {
		return PremisesTimeline{}, err
	}

	days := window.Days()
	scopes := make([]scopeCounts, 1+len(requested))

	// scope 0 is the unscoped premises-wide view
	computeScope := func(idx int, include func(premises.BedSpace) bool) {
		total := newSweep(days)
		oos := newSweep(days)
		booked := newSweep(days)
		for _, bs := range p.BedSpaces() {
			if !include(bs) {
				continue
			}
			lifecycle, active := daterange.ClipOpen(bs.Bed.ActiveFrom, bs.Bed.ActiveTo, window)
			if active {
				total.add(window, lifecycle)
				for _, period := range ledger.OutOfServiceFor(bs.Bed.ID) {
					if period.Cancelled {
						continue
					}
					// a retired bed deducts nothing: intersect with the lifecycle
					if clipped, ok := daterange.ClipOpen(period.StartDate, period.EndDate, lifecycle); ok {
						oos.add(window, clipped)
					}
				}
			}
			for _, b := range ledger.BookingsFor(bs.Bed.ID) {
				if b.Cancelled {
					continue
				}
				// bookings are clipped to the window only, so a booking on an
				// inactive bed shows up as over-booking instead of vanishing
				booked.add(window, b.Stay())
			}
		}
		scopes[idx] = scopeCounts{total: total.counts(), outOfService: oos.counts(), booked: booked.counts()}
	}

	computeScope(0, func(premises.BedSpace) bool { return true })
	for i, c := range requested {
		characteristic := c
		computeScope(1+i, func(bs premises.BedSpace) bool { return bs.HasCharacteristic(characteristic) })
	}

	timeline := PremisesTimeline{Premises: p.ID, Range: window, Days: make([]DayCapacity, 0, days)}
	day := window.Start
	for i := 0; i < days; i++ {
		overall := scopes[0]
		available := overall.total[i] - overall.outOfService[i]
		entry := DayCapacity{
			Date:              day,
			TotalBedCount:     overall.total[i],
			AvailableBedCount: available,
			BookingCount:      overall.booked[i],
			VacantBedCount:    available - overall.booked[i],
		}
		if len(requested) > 0 {
			entry.Characteristics = make([]CharacteristicCapacity, 0, len(requested))
			for j, c := range requested {
				scope := scopes[1+j]
				scopedAvailable := scope.total[i] - scope.outOfService[i]
				entry.Characteristics = append(entry.Characteristics, CharacteristicCapacity{
					Characteristic:    c,
					TotalBedCount:     scope.total[i],
					AvailableBedCount: scopedAvailable,
					BookingCount:      scope.booked[i],
					VacantBedCount:    scopedAvailable - scope.booked[i],
				})
			}
		}
		timeline.Days = append(timeline.Days, entry)
		day = day.AddDate(0, 0, 1)
	}
	return timeline, nil
}
