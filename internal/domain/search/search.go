package search

import (
	"sort"

	"bedspace/internal/domain/capacity"
	"bedspace/internal/domain/occupancy"
	"bedspace/internal/domain/premises"
	"bedspace/internal/domain/shared/daterange"
)

// PlacementQuery describes what a placement needs from a premises. Essential
// characteristics exclude; desirable ones only inform ranking downstream.
type PlacementQuery struct {
	Range     daterange.DateRange
	Essential []premises.Characteristic
	Desirable []premises.Characteristic
}

func (q PlacementQuery) Validate() error {
	if err := q.Range.Validate(); err != nil {
		return err
	}
	for _, c := range append(append([]premises.Characteristic(nil), q.Essential...), q.Desirable...) {
		if !c.Valid() {
			return premises.ErrUnknownCharacteristic
		}
	}
	return nil
}

// Candidate pairs a premises snapshot with its ledger and the pre-computed
// distance from the query origin. Distances are supplied by the caller; the
// engine never geocodes.
type Candidate struct {
	Premises   *premises.Premises
	Ledger     occupancy.Ledger
	DistanceKm float64
}

// Result is one surviving premises, with enough timeline detail for the
// caller to render occupancy without a second query.
type Result struct {
	Premises         premises.Summary
	DistanceKm       float64
	TotalBedSpaces   int
	DesirableMatches int
	Timeline         capacity.PremisesTimeline
}

// Search filters candidates to those with scoped vacancy on every day of the
// stay, then orders them by ascending distance. Ties keep the caller-supplied
// candidate order. Desirable matches are counted for downstream tie-breaking
// but never re-order results here.
func Search(query PlacementQuery, candidates []Candidate) ([]Result, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(candidates))
	for _, candidate := range candidates {
		timeline, err := capacity.Compute(candidate.Premises, candidate.Ledger, query.Range, query.Essential)
		if err != nil {
			return nil, err
		}
		available, err := timeline.FullyAvailable(query.Essential)
		if err != nil {
			return nil, err
		}
		if !available {
			continue
		}
		results = append(results, Result{
			Premises:         candidate.Premises.Summarize(premises.SummaryCandidate, query.Range.Start),
			DistanceKm:       candidate.DistanceKm,
			TotalBedSpaces:   candidate.Premises.BedCountOn(query.Range.Start),
			DesirableMatches: countDesirable(candidate.Premises, query.Desirable),
			Timeline:         timeline,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results, nil
}

func countDesirable(p *premises.Premises, desirable []premises.Characteristic) int {
	if len(desirable) == 0 {
		return 0
	}
	union := make(map[premises.Characteristic]struct{})
	for _, c := range p.CharacteristicUnion() {
		union[c] = struct{}{}
	}
	matches := 0
	for _, c := range desirable {
		if _, ok := union[c]; ok {
			matches++
		}
	}
	return matches
}
