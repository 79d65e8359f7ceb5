package capacity

import (
	"context"
	"errors"
	"time"

	"bedspace/internal/app/dto"
	"bedspace/internal/app/policies"
	domaincapacity "bedspace/internal/domain/capacity"
	"bedspace/internal/domain/premises"
	"bedspace/internal/domain/shared/daterange"
)

const getTimelineKey = "capacity.timeline"

var ErrSnapshotsUnavailable = errors.New("capacity: snapshot source unavailable")

// GetTimelineQuery asks for one premises' day-by-day capacity over a range,
// optionally scoped by characteristics.
type GetTimelineQuery struct {
	PremisesID      string
	Start           time.Time
	End             time.Time
	Characteristics []string
}

func (q GetTimelineQuery) Key() string { return getTimelineKey }

type GetTimelineHandler struct {
	Snapshots policies.SnapshotSource
}

func (h *GetTimelineHandler) Handle(ctx context.Context, q GetTimelineQuery) (dto.CapacityTimeline, error) {
	if h.Snapshots == nil {
		return dto.CapacityTimeline{}, ErrSnapshotsUnavailable
	}
	window, err := daterange.New(q.Start, q.End)
	if err != nil {
		return dto.CapacityTimeline{}, err
	}
	requested, err := premises.NormalizeCharacteristics(q.Characteristics)
	if err != nil {
		return dto.CapacityTimeline{}, err
	}
	p, err := h.Snapshots.PremisesByID(ctx, premises.PremisesID(q.PremisesID))
	if err != nil {
		return dto.CapacityTimeline{}, err
	}
	ledger, err := h.Snapshots.LedgerFor(ctx, p.ID)
	if err != nil {
		return dto.CapacityTimeline{}, err
	}
	timeline, err := domaincapacity.Compute(p, ledger, window, requested)
	if err != nil {
		return dto.CapacityTimeline{}, err
	}
	return dto.MapTimeline(timeline), nil
}
