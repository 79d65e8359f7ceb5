package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	searchapp "bedspace/internal/app/handlers/search"
	"bedspace/internal/domain/occupancy"
	"bedspace/internal/domain/premises"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type stubSnapshots struct {
	premises []*premises.Premises
	ledgers  map[premises.PremisesID]occupancy.Ledger
}

func (s *stubSnapshots) ListPremises(ctx context.Context) ([]*premises.Premises, error) {
	return s.premises, nil
}

func (s *stubSnapshots) PremisesByID(ctx context.Context, id premises.PremisesID) (*premises.Premises, error) {
	for _, p := range s.premises {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, premises.ErrPremisesNotFound
}

func (s *stubSnapshots) LedgerFor(ctx context.Context, id premises.PremisesID) (occupancy.Ledger, error) {
	return s.ledgers[id], nil
}

type fixedDistance struct {
	byLat map[float64]float64
}

func (d fixedDistance) DistanceKm(originLat, originLon, lat, lon float64) float64 {
	return d.byLat[lat]
}

func buildPremises(t *testing.T, id premises.PremisesID, apType premises.ApType, lat float64) *premises.Premises {
	t.Helper()
	p, err := premises.New(premises.CreateParams{
		ID:      id,
		Name:    string(id),
		ApType:  apType,
		Address: premises.Address{Lat: lat},
		Rooms: []premises.Room{
			{
				ID:   premises.RoomID(string(id) + "-r1"),
				Name: "Room 1",
				Beds: []premises.Bed{
					{ID: premises.BedID(string(id) + "-b1"), Name: "Bed 1", ActiveFrom: date(2023, time.January, 1)},
				},
			},
		},
	})
	require.NoError(t, err)
	return p
}

func TestSearchSpacesOrdersByDistanceFromOrigin(t *testing.T) {
	near := buildPremises(t, "ap-near", premises.ApTypeNormal, 1.0)
	far := buildPremises(t, "ap-far", premises.ApTypeNormal, 2.0)
	snapshots := &stubSnapshots{
		premises: []*premises.Premises{far, near},
		ledgers: map[premises.PremisesID]occupancy.Ledger{
			"ap-near": occupancy.NewLedger(nil, nil),
			"ap-far":  occupancy.NewLedger(nil, nil),
		},
	}
	handler := &searchapp.SearchSpacesHandler{
		Snapshots: snapshots,
		Distance:  fixedDistance{byLat: map[float64]float64{1.0: 5, 2.0: 50}},
	}

	results, err := handler.Handle(context.Background(), searchapp.SearchSpacesQuery{
		Start:     date(2024, time.March, 10),
		End:       date(2024, time.March, 12),
		HasOrigin: true,
		OriginLat: 0,
		OriginLon: 0,
	})
	require.NoError(t, err)
	require.Equal(t, 2, results.Total)
	assert.Equal(t, "ap-near", results.Results[0].Premises.ID)
	assert.Equal(t, float64(5), results.Results[0].DistanceKm)
	assert.Equal(t, "ap-far", results.Results[1].Premises.ID)
}

func TestSearchSpacesFiltersByApType(t *testing.T) {
	normal := buildPremises(t, "ap-normal", premises.ApTypeNormal, 1.0)
	pipe := buildPremises(t, "ap-pipe", premises.ApTypePIPE, 2.0)
	snapshots := &stubSnapshots{
		premises: []*premises.Premises{normal, pipe},
		ledgers: map[premises.PremisesID]occupancy.Ledger{
			"ap-normal": occupancy.NewLedger(nil, nil),
			"ap-pipe":   occupancy.NewLedger(nil, nil),
		},
	}
	handler := &searchapp.SearchSpacesHandler{Snapshots: snapshots}

	results, err := handler.Handle(context.Background(), searchapp.SearchSpacesQuery{
		Start:  date(2024, time.March, 10),
		End:    date(2024, time.March, 12),
		ApType: "PIPE",
	})
	require.NoError(t, err)
	require.Equal(t, 1, results.Total)
	assert.Equal(t, "ap-pipe", results.Results[0].Premises.ID)
}

func TestSearchSpacesWithoutOriginKeepsSnapshotOrder(t *testing.T) {
	first := buildPremises(t, "ap-first", premises.ApTypeNormal, 1.0)
	second := buildPremises(t, "ap-second", premises.ApTypeNormal, 2.0)
	snapshots := &stubSnapshots{
		premises: []*premises.Premises{first, second},
		ledgers: map[premises.PremisesID]occupancy.Ledger{
			"ap-first":  occupancy.NewLedger(nil, nil),
			"ap-second": occupancy.NewLedger(nil, nil),
		},
	}
	handler := &searchapp.SearchSpacesHandler{Snapshots: snapshots}

	results, err := handler.Handle(context.Background(), searchapp.SearchSpacesQuery{
		Start: date(2024, time.March, 10),
		End:   date(2024, time.March, 12),
	})
	require.NoError(t, err)
	require.Equal(t, 2, results.Total)
	assert.Equal(t, "ap-first", results.Results[0].Premises.ID)
	assert.Equal(t, "ap-second", results.Results[1].Premises.ID)
}

func TestSearchSpacesNormalizesCharacteristicInput(t *testing.T) {
	p, err := premises.New(premises.CreateParams{
		ID:   "ap-one",
		Name: "ap-one",
		Rooms: []premises.Room{
			{
				ID:              "r1",
				Name:            "Room 1",
				Characteristics: []premises.Characteristic{premises.CharWheelchairAccessible},
				Beds:            []premises.Bed{{ID: "b1", Name: "Bed 1", ActiveFrom: date(2023, time.January, 1)}},
			},
		},
	})
	require.NoError(t, err)
	snapshots := &stubSnapshots{
		premises: []*premises.Premises{p},
		ledgers:  map[premises.PremisesID]occupancy.Ledger{"ap-one": occupancy.NewLedger(nil, nil)},
	}
	handler := &searchapp.SearchSpacesHandler{Snapshots: snapshots}

	results, err := handler.Handle(context.Background(), searchapp.SearchSpacesQuery{
		Start:     date(2024, time.March, 10),
		End:       date(2024, time.March, 12),
		Essential: []string{"wheelchair-accessible"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, results.Total)

	_, err = handler.Handle(context.Background(), searchapp.SearchSpacesQuery{
		Start:     date(2024, time.March, 10),
		End:       date(2024, time.March, 12),
		Essential: []string{"HAS_POOL"},
	})
	require.ErrorIs(t, err, premises.ErrUnknownCharacteristic)
}

func TestSearchSpacesFailsWithoutSnapshotSource(t *testing.T) {
	handler := &searchapp.SearchSpacesHandler{}
	_, err := handler.Handle(context.Background(), searchapp.SearchSpacesQuery{
		Start: date(2024, time.March, 10),
		End:   date(2024, time.March, 12),
	})
	require.ErrorIs(t, err, searchapp.ErrSnapshotsUnavailable)
}
