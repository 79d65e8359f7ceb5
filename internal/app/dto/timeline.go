package dto

import (
	"time"

	"bedspace/internal/domain/capacity"
)

const dateLayout = "2006-01-02"

type CharacteristicDay struct {
	Characteristic    string `json:"characteristic"`
	TotalBedCount     int    `json:"total_bed_count"`
	AvailableBedCount int    `json:"available_bed_count"`
	BookingCount      int    `json:"booking_count"`
	VacantBedCount    int    `json:"vacant_bed_count"`
}

type CapacityDay struct {
	Date              string              `json:"date"`
	TotalBedCount     int                 `json:"total_bed_count"`
	AvailableBedCount int                 `json:"available_bed_count"`
	BookingCount      int                 `json:"booking_count"`
	VacantBedCount    int                 `json:"vacant_bed_count"`
	Characteristics   []CharacteristicDay `json:"characteristics,omitempty"`
}

type CapacityTimeline struct {
	PremisesID string        `json:"premises_id"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	Days       []CapacityDay `json:"days"`
}

func MapTimeline(t capacity.PremisesTimeline) CapacityTimeline {
	out := CapacityTimeline{
		PremisesID: string(t.Premises),
		StartDate:  formatDate(t.Range.Start),
		EndDate:    formatDate(t.Range.End),
		Days:       make([]CapacityDay, 0, len(t.Days)),
	}
	for _, day := range t.Days {
		out.Days = append(out.Days, mapDay(day))
	}
	return out
}

func mapDay(day capacity.DayCapacity) CapacityDay {
	entry := CapacityDay{
		Date:              formatDate(day.Date),
		TotalBedCount:     day.TotalBedCount,
		AvailableBedCount: day.AvailableBedCount,
		BookingCount:      day.BookingCount,
		VacantBedCount:    day.VacantBedCount,
	}
	for _, c := range day.Characteristics {
		entry.Characteristics = append(entry.Characteristics, CharacteristicDay{
			Characteristic:    string(c.Characteristic),
			TotalBedCount:     c.TotalBedCount,
			AvailableBedCount: c.AvailableBedCount,
			BookingCount:      c.BookingCount,
			VacantBedCount:    c.VacantBedCount,
		})
	}
	return entry
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
