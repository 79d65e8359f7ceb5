package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bedspace/internal/domain/occupancy"
	"bedspace/internal/domain/premises"
)

var (
	// ErrUnknownBed is returned when a booking or out-of-service record
	// targets a bed absent from the stored inventory.
	ErrUnknownBed = errors.New("memory: record references unknown bed")
)

// SnapshotStore is an in-memory snapshot source. It doubles as the live read
// model behind the booking-feed consumer: upserts replace whole records, so
// the engine always computes over a consistent copy.
type SnapshotStore struct {
	mu           sync.RWMutex
	premises     map[premises.PremisesID]*premises.Premises
	order        []premises.PremisesID
	bookings     map[occupancy.BookingID]occupancy.Booking
	outOfService map[occupancy.OutOfServicePeriodID]occupancy.OutOfServicePeriod
	bedIndex     map[premises.BedID]premises.PremisesID
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		premises:     make(map[premises.PremisesID]*premises.Premises),
		bookings:     make(map[occupancy.BookingID]occupancy.Booking),
		outOfService: make(map[occupancy.OutOfServicePeriodID]occupancy.OutOfServicePeriod),
		bedIndex:     make(map[premises.BedID]premises.PremisesID),
	}
}

// UpsertPremises stores or replaces a premises and reindexes its beds.
func (s *SnapshotStore) UpsertPremises(ctx context.Context, p *premises.Premises) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.premises[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	} else {
		for bed, owner := range s.bedIndex {
			if owner == p.ID {
				delete(s.bedIndex, bed)
			}
		}
	}
	s.premises[p.ID] = p
	for _, bs := range p.BedSpaces() {
		s.bedIndex[bs.Bed.ID] = p.ID
	}
	return nil
}

// ListPremises returns premises in insertion order.
func (s *SnapshotStore) ListPremises(ctx context.Context) ([]*premises.Premises, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*premises.Premises, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.premises[id])
	}
	return out, nil
}

func (s *SnapshotStore) PremisesByID(ctx context.Context, id premises.PremisesID) (*premises.Premises, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.premises[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", premises.ErrPremisesNotFound, id)
	}
	return p, nil
}

// LedgerFor collects the bookings and out-of-service periods of one premises
// into an immutable ledger snapshot.
func (s *SnapshotStore) LedgerFor(ctx context.Context, id premises.PremisesID) (occupancy.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.premises[id]; !ok {
		return occupancy.Ledger{}, fmt.Errorf("%w: %s", premises.ErrPremisesNotFound, id)
	}
	var bookings []occupancy.Booking
	for _, b := range s.bookings {
		if s.bedIndex[b.Bed] == id {
			bookings = append(bookings, b)
		}
	}
	var periods []occupancy.OutOfServicePeriod
	for _, p := range s.outOfService {
		if s.bedIndex[p.Bed] == id {
			periods = append(periods, p)
		}
	}
	return occupancy.NewLedger(bookings, periods), nil
}

// ApplyBooking validates and stores a booking-feed record. Unknown beds are
// rejected so the integrity error is caught at the feed boundary instead of
// inside a later computation.
func (s *SnapshotStore) ApplyBooking(ctx context.Context, b occupancy.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bedIndex[b.Bed]; !ok {
		return fmt.Errorf("%w: booking %s bed %s", ErrUnknownBed, b.ID, b.Bed)
	}
	s.bookings[b.ID] = b
	return nil
}

// ApplyOutOfService validates and stores an out-of-service feed record.
func (s *SnapshotStore) ApplyOutOfService(ctx context.Context, p occupancy.OutOfServicePeriod) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bedIndex[p.Bed]; !ok {
		return fmt.Errorf("%w: out-of-service %s bed %s", ErrUnknownBed, p.ID, p.Bed)
	}
	s.outOfService[p.ID] = p
	return nil
}
