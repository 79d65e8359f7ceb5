package policies

import (
	"context"

	"bedspace/internal/domain/occupancy"
	"bedspace/internal/domain/premises"
)

// SnapshotSource supplies the immutable inventory and ledger snapshots the
// engine computes over. Implementations own all I/O; the engine performs none.
type SnapshotSource interface {
	ListPremises(ctx context.Context) ([]*premises.Premises, error)
	PremisesByID(ctx context.Context, id premises.PremisesID) (*premises.Premises, error)
	LedgerFor(ctx context.Context, id premises.PremisesID) (occupancy.Ledger, error)
}

// DistanceEstimator supplies pre-computed distances for ranking. The engine
// consumes distances, it never computes routing itself.
type DistanceEstimator interface {
	DistanceKm(originLat, originLon, lat, lon float64) float64
}
