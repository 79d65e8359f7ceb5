package dto

import (
	"bedspace/internal/domain/search"
)

type SpaceSearchResult struct {
	Premises         PremisesSummary  `json:"premises"`
	DistanceKm       float64          `json:"distance_km"`
	TotalBedSpaces   int              `json:"total_bed_spaces"`
	DesirableMatches int              `json:"desirable_matches"`
	Timeline         CapacityTimeline `json:"timeline"`
}

type SpaceSearchResults struct {
	Results []SpaceSearchResult `json:"results"`
	Total   int                 `json:"total"`
}

func MapSearchResults(results []search.Result) SpaceSearchResults {
	out := SpaceSearchResults{Results: make([]SpaceSearchResult, 0, len(results))}
	for _, result := range results {
		out.Results = append(out.Results, SpaceSearchResult{
			Premises:         MapSummary(result.Premises),
			DistanceKm:       result.DistanceKm,
			TotalBedSpaces:   result.TotalBedSpaces,
			DesirableMatches: result.DesirableMatches,
			Timeline:         MapTimeline(result.Timeline),
		})
	}
	out.Total = len(out.Results)
	return out
}
