package premises

import "time"

// SummaryKind selects the projection variant: search results carry the
// trimmed candidate form, management endpoints the full one.
type SummaryKind string

const (
	SummaryFull      SummaryKind = "FULL"
	SummaryCandidate SummaryKind = "CANDIDATE"
)

// Summary is the single tagged-variant projection of a premises. Both
// variants share the fields the engine reports on; the full variant
// additionally carries the address.
type Summary struct {
	Kind     SummaryKind
	ID       PremisesID
	Name     string
	ApType   ApType
	Town     string
	Postcode string
	BedCount int
	Address  *Address
}

// Summarize projects the premises for the given day's bed count.
func (p *Premises) Summarize(kind SummaryKind, day time.Time) Summary {
	s := Summary{
		Kind:     kind,
		ID:       p.ID,
		Name:     p.Name,
		ApType:   p.ApType,
		Town:     p.Address.Town,
		Postcode: p.Address.Postcode,
		BedCount: p.BedCountOn(day),
	}
	if kind == SummaryFull {
		addr := p.Address
		s.Address = &addr
	}
	return s
}
