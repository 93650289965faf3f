package pipeline

import "time"

// Shipment is one delivery record after normalization. Optional fields use
// pointers: nil means the value is absent, either because the source cell was
// missing/malformed or because a later cleaning step forced it out of range.
type Shipment struct {
	Country      string
	ShipmentMode string
	Product      string

	PQFirstSent *time.Time
	POSent      *time.Time
	Scheduled   *time.Time
	Delivered   *time.Time
	Recorded    *time.Time

	FreightCost *float64
	Insurance   *float64
	Weight      *float64
	Quantity    *float64
	LineValue   *float64
	PackPrice   *float64
	UnitPrice   *float64

	// Derived fields, populated by Clean and Enrich.
	LeadTimeDays *int
	DelayDays    *int
	IsLate       bool
	Period       string
}

// ColumnSet records which optional source columns were present in the header.
// Cleaning steps that depend on a column are skipped entirely when it never
// existed, rather than treating every value as absent-and-imputable.
type ColumnSet struct {
	PQFirstSent bool
	POSent      bool
	Recorded    bool

	FreightCost bool
	Insurance   bool
	Weight      bool
	Quantity    bool
	LineValue   bool
	PackPrice   bool
	UnitPrice   bool
}

func ptrFloat(v float64) *float64 { return &v }

func ptrInt(v int) *int { return &v }

func ptrTime(v time.Time) *time.Time { return &v }
