package capacity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bedspace/internal/domain/capacity"
	"bedspace/internal/domain/occupancy"
	"bedspace/internal/domain/premises"
	"bedspace/internal/domain/shared/daterange"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func window(t *testing.T, start, end time.Time) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(start, end)
	require.NoError(t, err)
	return dr
}

// twoBedPremises has bed b1 in an en-suite room and bed b2 in a ground-floor
// room, both active since 2023.
func twoBedPremises(t *testing.T) *premises.Premises {
	t.Helper()
	p, err := premises.New(premises.CreateParams{
		ID:   "ap-test",
		Name: "Test House",
		Rooms: []premises.Room{
			{
				ID:              "r1",
				Name:            "Room 1",
				Characteristics: []premises.Characteristic{premises.CharEnSuite},
				Beds:            []premises.Bed{{ID: "b1", Name: "Bed 1", ActiveFrom: date(2023, time.January, 1)}},
			},
			{
				ID:              "r2",
				Name:            "Room 2",
				Characteristics: []premises.Characteristic{premises.CharGroundFloor},
				Beds:            []premises.Bed{{ID: "b2", Name: "Bed 2", ActiveFrom: date(2023, time.January, 1)}},
			},
		},
	})
	require.NoError(t, err)
	return p
}

func TestComputeCountsOverlappingBooking(t *testing.T) {
	p := twoBedPremises(t)
	ledger := occupancy.NewLedger([]occupancy.Booking{
		{ID: "bk-1", Bed: "b1", ArrivalDate: date(2024, time.March, 10), DepartureDate: date(2024, time.March, 12)},
	}, nil)

	timeline, err := capacity.Compute(p, ledger, window(t, date(2024, time.March, 11), date(2024, time.March, 11)), nil)
	require.NoError(t, err)
	require.Len(t, timeline.Days, 1)

	day := timeline.Days[0]
	assert.Equal(t, 2, day.TotalBedCount)
	assert.Equal(t, 2, day.AvailableBedCount)
	assert.Equal(t, 1, day.BookingCount)
	assert.Equal(t, 1, day.VacantBedCount)
}

func TestComputeOpenEndedOutOfService(t *testing.T) {
	p := twoBedPremises(t)
	ledger := occupancy.NewLedger(nil, []occupancy.OutOfServicePeriod{
		{ID: "oos-1", Bed: "b2", StartDate: date(2024, time.March, 10)},
	})

	timeline, err := capacity.Compute(p, ledger, window(t, date(2024, time.March, 15), date(2024, time.March, 15)), nil)
	require.NoError(t, err)
	require.Len(t, timeline.Days, 1)

	day := timeline.Days[0]
	assert.Equal(t, 2, day.TotalBedCount)
	assert.Equal(t, 1, day.AvailableBedCount)
	assert.Equal(t, 0, day.BookingCount)
	assert.Equal(t, 1, day.VacantBedCount)
}

func TestComputeClipsBookingToWindow(t *testing.T) {
	p := twoBedPremises(t)
	// booking extends five days past each edge of the window
	ledger := occupancy.NewLedger([]occupancy.Booking{
		{ID: "bk-1", Bed: "b1", ArrivalDate: date(2024, time.March, 5), DepartureDate: date(2024, time.March, 17)},
	}, nil)

	timeline, err := capacity.Compute(p, ledger, window(t, date(2024, time.March, 10), date(2024, time.March, 12)), nil)
	require.NoError(t, err)
	require.Len(t, timeline.Days, 3)
	for _, day := range timeline.Days {
		assert.Equal(t, 1, day.BookingCount, day.Date.Format("2006-01-02"))
		assert.Equal(t, 1, day.VacantBedCount, day.Date.Format("2006-01-02"))
	}
}

func TestComputeCancelledRecordsCountNothing(t *testing.T) {
	p := twoBedPremises(t)
	ledger := occupancy.NewLedger(
		[]occupancy.Booking{
			{ID: "bk-1", Bed: "b1", ArrivalDate: date(2024, time.March, 10), DepartureDate: date(2024, time.March, 12), Cancelled: true},
		},
		[]occupancy.OutOfServicePeriod{
			{ID: "oos-1", Bed: "b2", StartDate: date(2024, time.March, 10), EndDate: date(2024, time.March, 12), Cancelled: true},
		},
	)

	timeline, err := capacity.Compute(p, ledger, window(t, date(2024, time.March, 11), date(2024, time.March, 11)), nil)
	require.NoError(t, err)
	day := timeline.Days[0]
	assert.Equal(t, 2, day.AvailableBedCount)
	assert.Equal(t, 0, day.BookingCount)
	assert.Equal(t, 2, day.VacantBedCount)
}

func TestComputeConservation(t *testing.T) {
	p := twoBedPremises(t)
	ledger := occupancy.NewLedger(
		[]occupancy.Booking{
			{ID: "bk-1", Bed: "b1", ArrivalDate: date(2024, time.March, 8), DepartureDate: date(2024, time.March, 20)},
			{ID: "bk-2", Bed: "b2", ArrivalDate: date(2024, time.March, 12), DepartureDate: date(2024, time.March, 14)},
		},
		[]occupancy.OutOfServicePeriod{
			{ID: "oos-1", Bed: "b2", StartDate: date(2024, time.March, 13), EndDate: date(2024, time.March, 16)},
		},
	)

	timeline, err := capacity.Compute(p, ledger, window(t, date(2024, time.March, 10), date(2024, time.March, 18)), nil)
	require.NoError(t, err)
	for _, day := range timeline.Days {
		label := day.Date.Format("2006-01-02")
		assert.Equal(t, day.AvailableBedCount-day.BookingCount, day.VacantBedCount, label)
		assert.LessOrEqual(t, day.AvailableBedCount, day.TotalBedCount, label)
	}
}

func TestComputeSurfacesOverBookingAsNegativeVacancy(t *testing.T) {
	p := twoBedPremises(t)
	ledger := occupancy.NewLedger([]occupancy.Booking{
		{ID: "bk-1", Bed: "b1", ArrivalDate: date(2024, time.March, 10), DepartureDate: date(2024, time.March, 12)},
		{ID: "bk-2", Bed: "b1", ArrivalDate: date(2024, time.March, 11), DepartureDate: date(2024, time.March, 13)},
		{ID: "bk-3", Bed: "b2", ArrivalDate: date(2024, time.March, 11), DepartureDate: date(2024, time.March, 11)},
	}, nil)

	timeline, err := capacity.Compute(p, ledger, window(t, date(2024, time.March, 11), date(2024, time.March, 11)), nil)
	require.NoError(t, err)
	day := timeline.Days[0]
	assert.Equal(t, 3, day.BookingCount)
	assert.Equal(t, -1, day.VacantBedCount)
}

func TestComputeRespectsBedLifecycle(t *testing.T) {
	p, err := premises.New(premises.CreateParams{
		ID:   "ap-test",
		Name: "Test House",
		Rooms: []premises.Room{
			{
				ID:   "r1",
				Name: "Room 1",
				Beds: []premises.Bed{
					{ID: "b1", Name: "Bed 1", ActiveFrom: date(2023, time.January, 1)},
					{ID: "b2", Name: "Bed 2", ActiveFrom: date(2023, time.January, 1), ActiveTo: date(2024, time.March, 11)},
				},
			},
		},
	})
	require.NoError(t, err)

	timeline, err := capacity.Compute(p, occupancy.NewLedger(nil, nil), window(t, date(2024, time.March, 10), date(2024, time.March, 13)), nil)
	require.NoError(t, err)
	require.Len(t, timeline.Days, 4)
	assert.Equal(t, 2, timeline.Days[0].TotalBedCount)
	assert.Equal(t, 2, timeline.Days[1].TotalBedCount)
	assert.Equal(t, 1, timeline.Days[2].TotalBedCount)
	assert.Equal(t, 1, timeline.Days[3].TotalBedCount)
}

func TestComputeOutOfServiceOnRetiredBedDeductsNothing(t *testing.T) {
	p, err := premises.New(premises.CreateParams{
		ID:   "ap-test",
		Name: "Test House",
		Rooms: []premises.Room{
			{
				ID:   "r1",
				Name: "Room 1",
				Beds: []premises.Bed{
					{ID: "b1", Name: "Bed 1", ActiveFrom: date(2023, time.January, 1)},
					{ID: "b2", Name: "Bed 2", ActiveFrom: date(2023, time.January, 1), ActiveTo: date(2024, time.March, 1)},
				},
			},
		},
	})
	require.NoError(t, err)
	ledger := occupancy.NewLedger(nil, []occupancy.OutOfServicePeriod{
		{ID: "oos-1", Bed: "b2", StartDate: date(2024, time.February, 1)},
	})

	timeline, err := capacity.Compute(p, ledger, window(t, date(2024, time.March, 10), date(2024, time.March, 10)), nil)
	require.NoError(t, err)
	day := timeline.Days[0]
	assert.Equal(t, 1, day.TotalBedCount)
	assert.Equal(t, 1, day.AvailableBedCount)
}

func TestComputeScopesRequestedCharacteristics(t *testing.T) {
	p := twoBedPremises(t)
	ledger := occupancy.NewLedger([]occupancy.Booking{
		{ID: "bk-1", Bed: "b1", ArrivalDate: date(2024, time.March, 10), DepartureDate: date(2024, time.March, 12)},
	}, nil)

	timeline, err := capacity.Compute(p, ledger, window(t, date(2024, time.March, 11), date(2024, time.March, 11)),
		[]premises.Characteristic{premises.CharEnSuite, premises.CharGroundFloor})
	require.NoError(t, err)

	day := timeline.Days[0]
	require.Len(t, day.Characteristics, 2)

	enSuite := day.Characteristics[0]
	assert.Equal(t, premises.CharEnSuite, enSuite.Characteristic)
	assert.Equal(t, 1, enSuite.TotalBedCount)
	assert.Equal(t, 1, enSuite.BookingCount)
	assert.Equal(t, 0, enSuite.VacantBedCount)

	groundFloor := day.Characteristics[1]
	assert.Equal(t, premises.CharGroundFloor, groundFloor.Characteristic)
	assert.Equal(t, 1, groundFloor.TotalBedCount)
	assert.Equal(t, 0, groundFloor.BookingCount)
	assert.Equal(t, 1, groundFloor.VacantBedCount)
}

func TestComputeRejectsUnknownBedInLedger(t *testing.T) {
	p := twoBedPremises(t)
	ledger := occupancy.NewLedger([]occupancy.Booking{
		{ID: "bk-1", Bed: "ghost", ArrivalDate: date(2024, time.March, 10), DepartureDate: date(2024, time.March, 12)},
	}, nil)

	_, err := capacity.Compute(p, ledger, window(t, date(2024, time.March, 11), date(2024, time.March, 11)), nil)
	require.ErrorIs(t, err, occupancy.ErrUnknownBed)
}

func TestComputeRejectsUnknownCharacteristic(t *testing.T) {
	p := twoBedPremises(t)
	_, err := capacity.Compute(p, occupancy.NewLedger(nil, nil), window(t, date(2024, time.March, 11), date(2024, time.March, 11)),
		[]premises.Characteristic{"NOT_A_TAG"})
	require.ErrorIs(t, err, premises.ErrUnknownCharacteristic)
}
