package capacity

import (
	"errors"
	"fmt"

	"bedspace/internal/domain/premises"
)

// ErrCharacteristicNotComputed means a scoped vacancy was requested for a
// characteristic the timeline was not computed with.
var ErrCharacteristicNotComputed = errors.New("capacity: characteristic missing from computed timeline")

// ScopedVacancy returns the day's worst-case single-constraint vacancy: the
// minimum vacant count across the individually-scoped characteristic
// computations, together with the constraining characteristic. This is
// deliberately not an intersection of beds satisfying every tag at once; a
// caller reads the number as "no single requested constraint has fewer than
// this many free beds".
//
// With an empty essential set the unscoped vacancy is returned and the
// constraining characteristic is empty.
func (d DayCapacity) ScopedVacancy(essential []premises.Characteristic) (int, premises.Characteristic, error) {
	if len(essential) == 0 {
		return d.VacantBedCount, "", nil
	}
	first := true
	minVacancy := 0
	var constraining premises.Characteristic
	for _, c := range essential {
		entry, ok := d.characteristic(c)
		if !ok {
			return 0, "", fmt.Errorf("%w: %s", ErrCharacteristicNotComputed, c)
		}
		if first || entry.VacantBedCount < minVacancy {
			minVacancy = entry.VacantBedCount
			constraining = c
			first = false
		}
	}
	return minVacancy, constraining, nil
}

func (d DayCapacity) characteristic(c premises.Characteristic) (CharacteristicCapacity, bool) {
	for _, entry := range d.Characteristics {
		if entry.Characteristic == c {
			return entry, true
		}
	}
	return CharacteristicCapacity{}, false
}

// FullyAvailable reports whether every day in the timeline has scoped
// vacancy greater than zero for the essential set.
func (t PremisesTimeline) FullyAvailable(essential []premises.Characteristic) (bool, error) {
	for _, day := range t.Days {
		vacancy, _, err := day.ScopedVacancy(essential)
		if err != nil {
			return false, err
		}
		if vacancy <= 0 {
			return false, nil
		}
	}
	return true, nil
}
