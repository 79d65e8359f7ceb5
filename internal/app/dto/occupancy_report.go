package dto

// NationalDay is one premises-day in the cross-site report. When the report
// was requested with characteristics, ConstrainingCharacteristic names the
// single characteristic producing the lowest vacancy that day and
// ScopedVacancy carries that minimum; otherwise ScopedVacancy mirrors the
// unscoped vacant count.
type NationalDay struct {
	Date                       string `json:"date"`
	TotalBedCount              int    `json:"total_bed_count"`
	AvailableBedCount          int    `json:"available_bed_count"`
	BookingCount               int    `json:"booking_count"`
	VacantBedCount             int    `json:"vacant_bed_count"`
	ScopedVacancy              int    `json:"scoped_vacancy"`
	ConstrainingCharacteristic string `json:"constraining_characteristic,omitempty"`
}

type NationalPremisesEntry struct {
	Premises PremisesSummary `json:"premises"`
	Failed   bool            `json:"failed"`
	Error    string          `json:"error,omitempty"`
	Days     []NationalDay   `json:"days,omitempty"`
}

type NationalOccupancyReport struct {
	StartDate string                  `json:"start_date"`
	EndDate   string                  `json:"end_date"`
	Premises  []NationalPremisesEntry `json:"premises"`
}
