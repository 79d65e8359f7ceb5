package occupancy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	occupancyapp "bedspace/internal/app/handlers/occupancy"
	domainoccupancy "bedspace/internal/domain/occupancy"
	"bedspace/internal/domain/premises"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type stubSnapshots struct {
	premises   []*premises.Premises
	ledgers    map[premises.PremisesID]domainoccupancy.Ledger
	ledgerErrs map[premises.PremisesID]error
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

func (s *stubSnapshots) LedgerFor(ctx context.Context, id premises.PremisesID) (domainoccupancy.Ledger, error) {
	if err := s.ledgerErrs[id]; err != nil {
		return domainoccupancy.Ledger{}, err
	}
	return s.ledgers[id], nil
}

func makePremises(t *testing.T, id premises.PremisesID, beds int) *premises.Premises {
	t.Helper()
	room := premises.Room{ID: premises.RoomID(string(id) + "-r1"), Name: "Room 1"}
	for i := 0; i < beds; i++ {
		room.Beds = append(room.Beds, premises.Bed{
			ID:         premises.BedID(string(id) + "-b" + string(rune('1'+i))),
			Name:       "Bed",
			ActiveFrom: date(2023, time.January, 1),
		})
	}
	p, err := premises.New(premises.CreateParams{ID: id, Name: string(id), Rooms: []premises.Room{room}})
	require.NoError(t, err)
	return p
}

func TestNationalReportAggregatesInCallerOrder(t *testing.T) {
	p1 := makePremises(t, "ap-one", 3)
	p2 := makePremises(t, "ap-two", 1)
	p3 := makePremises(t, "ap-three", 2)

	snapshots := &stubSnapshots{
		premises: []*premises.Premises{p1, p2, p3},
		ledgers: map[premises.PremisesID]domainoccupancy.Ledger{
			"ap-one": domainoccupancy.NewLedger(nil, nil),
			"ap-two": domainoccupancy.NewLedger([]domainoccupancy.Booking{
				{ID: "bk-1", Bed: "ap-two-b1", ArrivalDate: date(2024, time.March, 10), DepartureDate: date(2024, time.March, 12)},
			}, nil),
			"ap-three": domainoccupancy.NewLedger([]domainoccupancy.Booking{
				{ID: "bk-2", Bed: "ap-three-b1", ArrivalDate: date(2024, time.March, 11), DepartureDate: date(2024, time.March, 11)},
			}, nil),
		},
	}
	handler := &occupancyapp.NationalReportHandler{Snapshots: snapshots}

	report, err := handler.Handle(context.Background(), occupancyapp.NationalReportQuery{
		Start: date(2024, time.March, 11),
		End:   date(2024, time.March, 11),
	})
	require.NoError(t, err)
	require.Len(t, report.Premises, 3)

	assert.Equal(t, "ap-one", report.Premises[0].Premises.ID)
	assert.Equal(t, "ap-two", report.Premises[1].Premises.ID)
	assert.Equal(t, "ap-three", report.Premises[2].Premises.ID)

	require.Len(t, report.Premises[0].Days, 1)
	assert.Equal(t, 3, report.Premises[0].Days[0].VacantBedCount)
	assert.Equal(t, 0, report.Premises[1].Days[0].VacantBedCount)
	assert.Equal(t, 1, report.Premises[2].Days[0].VacantBedCount)
}

func TestNationalReportHonoursExplicitPremisesOrder(t *testing.T) {
	p1 := makePremises(t, "ap-one", 1)
	p2 := makePremises(t, "ap-two", 1)
	snapshots := &stubSnapshots{
		premises: []*premises.Premises{p1, p2},
		ledgers: map[premises.PremisesID]domainoccupancy.Ledger{
			"ap-one": domainoccupancy.NewLedger(nil, nil),
			"ap-two": domainoccupancy.NewLedger(nil, nil),
		},
	}
	handler := &occupancyapp.NationalReportHandler{Snapshots: snapshots}

	report, err := handler.Handle(context.Background(), occupancyapp.NationalReportQuery{
		Start:       date(2024, time.March, 11),
		End:         date(2024, time.March, 11),
		PremisesIDs: []string{"ap-two", "ap-one"},
	})
	require.NoError(t, err)
	require.Len(t, report.Premises, 2)
	assert.Equal(t, "ap-two", report.Premises[0].Premises.ID)
	assert.Equal(t, "ap-one", report.Premises[1].Premises.ID)
}

func TestNationalReportReportsPerPremisesFailure(t *testing.T) {
	p1 := makePremises(t, "ap-one", 1)
	p2 := makePremises(t, "ap-two", 1)
	snapshots := &stubSnapshots{
		premises: []*premises.Premises{p1, p2},
		ledgers: map[premises.PremisesID]domainoccupancy.Ledger{
			"ap-one": domainoccupancy.NewLedger(nil, nil),
		},
		ledgerErrs: map[premises.PremisesID]error{
			"ap-two": errors.New("ledger store down"),
		},
	}
	handler := &occupancyapp.NationalReportHandler{Snapshots: snapshots}

	report, err := handler.Handle(context.Background(), occupancyapp.NationalReportQuery{
		Start: date(2024, time.March, 11),
		End:   date(2024, time.March, 12),
	})
	require.NoError(t, err, "one failing premises must not abort the report")
	require.Len(t, report.Premises, 2)

	assert.False(t, report.Premises[0].Failed)
	require.Len(t, report.Premises[0].Days, 2)

	assert.True(t, report.Premises[1].Failed)
	assert.Contains(t, report.Premises[1].Error, "ledger store down")
	assert.Empty(t, report.Premises[1].Days)
}

func TestNationalReportRejectsUnknownPremisesID(t *testing.T) {
	p1 := makePremises(t, "ap-one", 1)
	snapshots := &stubSnapshots{
		premises: []*premises.Premises{p1},
		ledgers:  map[premises.PremisesID]domainoccupancy.Ledger{"ap-one": domainoccupancy.NewLedger(nil, nil)},
	}
	handler := &occupancyapp.NationalReportHandler{Snapshots: snapshots}

	_, err := handler.Handle(context.Background(), occupancyapp.NationalReportQuery{
		Start:       date(2024, time.March, 11),
		End:         date(2024, time.March, 11),
		PremisesIDs: []string{"ap-one", "ap-ghost"},
	})
	require.ErrorIs(t, err, premises.ErrPremisesNotFound, "an unknown id is an invalid query, not a Failed entry")
}

func TestNationalReportScopedVacancy(t *testing.T) {
	p, err := premises.New(premises.CreateParams{
		ID:   "ap-one",
		Name: "ap-one",
		Rooms: []premises.Room{
			{
				ID:              "r1",
				Name:            "Room 1",
				Characteristics: []premises.Characteristic{premises.CharEnSuite},
				Beds:            []premises.Bed{{ID: "b1", Name: "Bed 1", ActiveFrom: date(2023, time.January, 1)}},
			},
			{
				ID:   "r2",
				Name: "Room 2",
				Beds: []premises.Bed{{ID: "b2", Name: "Bed 2", ActiveFrom: date(2023, time.January, 1)}},
			},
		},
	})
	require.NoError(t, err)
	snapshots := &stubSnapshots{
		premises: []*premises.Premises{p},
		ledgers: map[premises.PremisesID]domainoccupancy.Ledger{
			"ap-one": domainoccupancy.NewLedger([]domainoccupancy.Booking{
				{ID: "bk-1", Bed: "b1", ArrivalDate: date(2024, time.March, 11), DepartureDate: date(2024, time.March, 11)},
			}, nil),
		},
	}
	handler := &occupancyapp.NationalReportHandler{Snapshots: snapshots}

	report, err := handler.Handle(context.Background(), occupancyapp.NationalReportQuery{
		Start:           date(2024, time.March, 11),
		End:             date(2024, time.March, 11),
		Characteristics: []string{"EN_SUITE"},
	})
	require.NoError(t, err)
	require.Len(t, report.Premises, 1)
	day := report.Premises[0].Days[0]
	assert.Equal(t, 1, day.VacantBedCount)
	assert.Equal(t, 0, day.ScopedVacancy)
	assert.Equal(t, "EN_SUITE", day.ConstrainingCharacteristic)
}

func TestNationalReportFailsWithoutSnapshotSource(t *testing.T) {
	handler := &occupancyapp.NationalReportHandler{}
	_, err := handler.Handle(context.Background(), occupancyapp.NationalReportQuery{
		Start: date(2024, time.March, 11),
		End:   date(2024, time.March, 11),
	})
	require.ErrorIs(t, err, occupancyapp.ErrSnapshotsUnavailable)
}
