package occupancy

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"bedspace/internal/app/dto"
	"bedspace/internal/app/policies"
	domaincapacity "bedspace/internal/domain/capacity"
	"bedspace/internal/domain/premises"
	"bedspace/internal/domain/shared/daterange"
)

const nationalReportKey = "occupancy.national"

const defaultConcurrency = 8

var ErrSnapshotsUnavailable = errors.New("occupancy: snapshot source unavailable")

// NationalReportQuery asks for the cross-site occupancy report. An empty
// PremisesIDs means every known premises; a non-empty list also fixes the
// ordering of the report. An unknown id in the list rejects the whole report
// as an invalid query; Failed entries are reserved for premises whose
// computation broke, not for ids that never existed.
type NationalReportQuery struct {
	Start           time.Time
	End             time.Time
	Characteristics []string
	PremisesIDs     []string
}

func (q NationalReportQuery) Key() string { return nationalReportKey }

// NationalReportHandler fans the capacity calculator out over premises.
// Each premises only reads its own immutable snapshot, so computations run
// concurrently; the merge re-establishes the caller-supplied order.
type NationalReportHandler struct {
	Snapshots     policies.SnapshotSource
	MaxConcurrent int
}

func (h *NationalReportHandler) Handle(ctx context.Context, q NationalReportQuery) (dto.NationalOccupancyReport, error) {
	if h.Snapshots == nil {
		return dto.NationalOccupancyReport{}, ErrSnapshotsUnavailable
	}
	window, err := daterange.New(q.Start, q.End)
	if err != nil {
		return dto.NationalOccupancyReport{}, err
	}
	requested, err := premises.NormalizeCharacteristics(q.Characteristics)
	if err != nil {
		return dto.NationalOccupancyReport{}, err
	}
	targets, err := h.resolveTargets(ctx, q.PremisesIDs)
	if err != nil {
		return dto.NationalOccupancyReport{}, err
	}

	entries := make([]dto.NationalPremisesEntry, len(targets))
	limit := h.MaxConcurrent
	if limit <= 0 {
		limit = defaultConcurrency
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	for i, target := range targets {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			entries[i] = h.computeEntry(groupCtx, target, window, requested)
			return nil
		})
	}
	// a per-premises failure is reported in its entry; only cancellation
	// aborts the whole report
	if err := group.Wait(); err != nil {
		return dto.NationalOccupancyReport{}, err
	}

	return dto.NationalOccupancyReport{
		StartDate: window.Start.Format("2006-01-02"),
		EndDate:   window.End.Format("2006-01-02"),
		Premises:  entries,
	}, nil
}

func (h *NationalReportHandler) resolveTargets(ctx context.Context, ids []string) ([]*premises.Premises, error) {
	if len(ids) == 0 {
		return h.Snapshots.ListPremises(ctx)
	}
	targets := make([]*premises.Premises, 0, len(ids))
	for _, id := range ids {
		p, err := h.Snapshots.PremisesByID(ctx, premises.PremisesID(id))
		if err != nil {
			return nil, err
		}
		targets = append(targets, p)
	}
	return targets, nil
}

func (h *NationalReportHandler) computeEntry(ctx context.Context, p *premises.Premises, window daterange.DateRange, requested []premises.Characteristic) dto.NationalPremisesEntry {
	entry := dto.NationalPremisesEntry{
		Premises: dto.MapSummary(p.Summarize(premises.SummaryCandidate, window.Start)),
	}
	ledger, err := h.Snapshots.LedgerFor(ctx, p.ID)
	if err != nil {
		entry.Failed = true
		entry.Error = err.Error()
		return entry
	}
	timeline, err := domaincapacity.Compute(p, ledger, window, requested)
	if err != nil {
		entry.Failed = true
		entry.Error = err.Error()
		return entry
	}
	entry.Days = make([]dto.NationalDay, 0, len(timeline.Days))
	for _, day := range timeline.Days {
		scoped, constraining, err := day.ScopedVacancy(requested)
		if err != nil {
			entry.Failed = true
			entry.Error = err.Error()
			entry.Days = nil
			return entry
		}
		entry.Days = append(entry.Days, dto.NationalDay{
			Date:                       day.Date.Format("2006-01-02"),
			TotalBedCount:              day.TotalBedCount,
			AvailableBedCount:          day.AvailableBedCount,
			BookingCount:               day.BookingCount,
			VacantBedCount:             day.VacantBedCount,
			ScopedVacancy:              scoped,
			ConstrainingCharacteristic: string(constraining),
		})
	}
	return entry
}
