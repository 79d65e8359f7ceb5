package premises

import (
	"context"
	"errors"
	"time"

	"bedspace/internal/app/dto"
	"bedspace/internal/app/policies"
	domainpremises "bedspace/internal/domain/premises"
	"bedspace/internal/domain/shared/daterange"
)

const (
	listPremisesKey = "premises.list"
	getPremisesKey  = "premises.get"
)

var ErrSnapshotsUnavailable = errors.New("premises: snapshot source unavailable")

type ListPremisesQuery struct {
	Day time.Time
}

func (q ListPremisesQuery) Key() string { return listPremisesKey }

type GetPremisesQuery struct {
	PremisesID string
	Day        time.Time
}

func (q GetPremisesQuery) Key() string { return getPremisesKey }

type ListPremisesHandler struct {
	Snapshots policies.SnapshotSource
}

func (h *ListPremisesHandler) Handle(ctx context.Context, q ListPremisesQuery) (dto.PremisesList, error) {
	if h.Snapshots == nil {
		return dto.PremisesList{}, ErrSnapshotsUnavailable
	}
	day := resolveDay(q.Day)
	all, err := h.Snapshots.ListPremises(ctx)
	if err != nil {
		return dto.PremisesList{}, err
	}
	out := dto.PremisesList{Premises: make([]dto.PremisesSummary, 0, len(all))}
	for _, p := range all {
		out.Premises = append(out.Premises, dto.MapSummary(p.Summarize(domainpremises.SummaryFull, day)))
	}
	out.Total = len(out.Premises)
	return out, nil
}

type GetPremisesHandler struct {
	Snapshots policies.SnapshotSource
}

func (h *GetPremisesHandler) Handle(ctx context.Context, q GetPremisesQuery) (dto.PremisesDetail, error) {
	if h.Snapshots == nil {
		return dto.PremisesDetail{}, ErrSnapshotsUnavailable
	}
	day := resolveDay(q.Day)
	p, err := h.Snapshots.PremisesByID(ctx, domainpremises.PremisesID(q.PremisesID))
	if err != nil {
		return dto.PremisesDetail{}, err
	}
	return dto.MapPremisesDetail(p, p.Summarize(domainpremises.SummaryFull, day)), nil
}

func resolveDay(day time.Time) time.Time {
	if day.IsZero() {
		return daterange.Day(time.Now())
	}
	return daterange.Day(day)
}
