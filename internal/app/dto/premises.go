package dto

import (
	"bedspace/internal/domain/premises"
)

type PremisesAddress struct {
	Line1    string  `json:"line1"`
	Line2    string  `json:"line2,omitempty"`
	Town     string  `json:"town"`
	Postcode string  `json:"postcode"`
	Region   string  `json:"region,omitempty"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

type PremisesSummary struct {
	Kind     string           `json:"kind"`
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	ApType   string           `json:"ap_type"`
	Town     string           `json:"town"`
	Postcode string           `json:"postcode"`
	BedCount int              `json:"bed_count"`
	Address  *PremisesAddress `json:"address,omitempty"`
}

type PremisesBed struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ActiveFrom string `json:"active_from"`
	ActiveTo   string `json:"active_to,omitempty"`
}

type PremisesRoom struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Characteristics []string      `json:"characteristics"`
	Beds            []PremisesBed `json:"beds"`
}

type PremisesDetail struct {
	Summary PremisesSummary `json:"summary"`
	Rooms   []PremisesRoom  `json:"rooms"`
}

type PremisesList struct {
	Premises []PremisesSummary `json:"premises"`
	Total    int               `json:"total"`
}

func MapSummary(s premises.Summary) PremisesSummary {
	out := PremisesSummary{
		Kind:     string(s.Kind),
		ID:       string(s.ID),
		Name:     s.Name,
		ApType:   string(s.ApType),
		Town:     s.Town,
		Postcode: s.Postcode,
		BedCount: s.BedCount,
	}
	if s.Address != nil {
		out.Address = &PremisesAddress{
			Line1:    s.Address.Line1,
			Line2:    s.Address.Line2,
			Town:     s.Address.Town,
			Postcode: s.Address.Postcode,
			Region:   s.Address.Region,
			Lat:      s.Address.Lat,
			Lon:      s.Address.Lon,
		}
	}
	return out
}

func MapPremisesDetail(p *premises.Premises, summary premises.Summary) PremisesDetail {
	detail := PremisesDetail{Summary: MapSummary(summary)}
	for _, room := range p.Rooms {
		mapped := PremisesRoom{
			ID:              string(room.ID),
			Name:            room.Name,
			Characteristics: make([]string, 0, len(room.Characteristics)),
			Beds:            make([]PremisesBed, 0, len(room.Beds)),
		}
		for _, c := range room.Characteristics {
			mapped.Characteristics = append(mapped.Characteristics, string(c))
		}
		for _, bed := range room.Beds {
			mapped.Beds = append(mapped.Beds, PremisesBed{
				ID:         string(bed.ID),
				Name:       bed.Name,
				ActiveFrom: formatDate(bed.ActiveFrom),
				ActiveTo:   formatDate(bed.ActiveTo),
			})
		}
		detail.Rooms = append(detail.Rooms, mapped)
	}
	return detail
}
