package search

import (
	"context"
	"errors"
	"time"

	"bedspace/internal/app/dto"
	"bedspace/internal/app/policies"
	"bedspace/internal/domain/premises"
	domainsearch "bedspace/internal/domain/search"
	"bedspace/internal/domain/shared/daterange"
)

const searchSpacesKey = "spaces.search"

var ErrSnapshotsUnavailable = errors.New("search: snapshot source unavailable")

// SearchSpacesQuery is one placement request. When HasOrigin is false every
// candidate gets distance zero and the caller-supplied premises order holds.
type SearchSpacesQuery struct {
	Start     time.Time
	End       time.Time
	Essential []string
	Desirable []string
	OriginLat float64
	OriginLon float64
	HasOrigin bool
	ApType    string
}

func (q SearchSpacesQuery) Key() string { return searchSpacesKey }

type SearchSpacesHandler struct {
	Snapshots policies.SnapshotSource
	Distance  policies.DistanceEstimator
}

func (h *SearchSpacesHandler) Handle(ctx context.Context, q SearchSpacesQuery) (dto.SpaceSearchResults, error) {
	if h.Snapshots == nil {
		return dto.SpaceSearchResults{}, ErrSnapshotsUnavailable
	}
	window, err := daterange.New(q.Start, q.End)
	if err != nil {
		return dto.SpaceSearchResults{}, err
	}
	essential, err := premises.NormalizeCharacteristics(q.Essential)
	if err != nil {
		return dto.SpaceSearchResults{}, err
	}
	desirable, err := premises.NormalizeCharacteristics(q.Desirable)
	if err != nil {
		return dto.SpaceSearchResults{}, err
	}

	all, err := h.Snapshots.ListPremises(ctx)
	if err != nil {
		return dto.SpaceSearchResults{}, err
	}
	candidates := make([]domainsearch.Candidate, 0, len(all))
	for _, p := range all {
		if q.ApType != "" && p.ApType != premises.ApType(q.ApType) {
			continue
		}
		ledger, err := h.Snapshots.LedgerFor(ctx, p.ID)
		if err != nil {
			return dto.SpaceSearchResults{}, err
		}
		distance := 0.0
		if q.HasOrigin && h.Distance != nil {
			distance = h.Distance.DistanceKm(q.OriginLat, q.OriginLon, p.Address.Lat, p.Address.Lon)
		}
		candidates = append(candidates, domainsearch.Candidate{Premises: p, Ledger: ledger, DistanceKm: distance})
	}

	results, err := domainsearch.Search(domainsearch.PlacementQuery{
		Range:     window,
		Essential: essential,
		Desirable: desirable,
	}, candidates)
	if err != nil {
		return dto.SpaceSearchResults{}, err
	}
	return dto.MapSearchResults(results), nil
}
