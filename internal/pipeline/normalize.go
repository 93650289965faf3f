package pipeline

import (
	"strconv"
	"strings"
	"time"

	"supplypulse/internal/dataset"
)

// dateLayouts covers the formats seen in delivery history exports. Parsing
// tries each in order; a value no layout accepts is treated as absent.
var dateLayouts = []string{
	"2-Jan-06",
	"2-Jan-2006",
	"1/2/2006",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate coerces a raw cell into a timestamp. Empty or unparseable
// values yield nil rather than an error.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ParseNumber coerces a raw cell into a float. Thousands separators and a
// leading currency sign are tolerated; anything else non-numeric (e.g.
// "Weight Captured Separately") yields nil.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Normalize converts a raw table into typed Shipments. Each designated date
// and numeric column present in the header is coerced; malformed values
// degrade to absent and never abort the pipeline. Columns missing from the
// header are skipped silently, and their presence is reported in ColumnSet.
func Normalize(t *dataset.Table) ([]Shipment, ColumnSet) {
	cols := ColumnSet{
		PQFirstSent: t.HasColumn(dataset.ColPQFirstSent),
		POSent:      t.HasColumn(dataset.ColPOSent),
		Recorded:    t.HasColumn(dataset.ColRecorded),
		FreightCost: t.HasColumn(dataset.ColFreightCost),
		Insurance:   t.HasColumn(dataset.ColInsurance),
		Weight:      t.HasColumn(dataset.ColWeight),
		Quantity:    t.HasColumn(dataset.ColQuantity),
		LineValue:   t.HasColumn(dataset.ColLineValue),
		PackPrice:   t.HasColumn(dataset.ColPackPrice),
		UnitPrice:   t.HasColumn(dataset.ColUnitPrice),
	}

	records := make([]Shipment, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		rec := Shipment{
			Country:      t.Value(i, dataset.ColCountry),
			ShipmentMode: t.Value(i, dataset.ColMode),
			Product:      t.Value(i, dataset.ColProduct),

			PQFirstSent: ParseDate(t.Value(i, dataset.ColPQFirstSent)),
			POSent:      ParseDate(t.Value(i, dataset.ColPOSent)),
			Scheduled:   ParseDate(t.Value(i, dataset.ColScheduled)),
			Delivered:   ParseDate(t.Value(i, dataset.ColDelivered)),
			Recorded:    ParseDate(t.Value(i, dataset.ColRecorded)),

			FreightCost: ParseNumber(t.Value(i, dataset.ColFreightCost)),
			Insurance:   ParseNumber(t.Value(i, dataset.ColInsurance)),
			Weight:      ParseNumber(t.Value(i, dataset.ColWeight)),
			Quantity:    ParseNumber(t.Value(i, dataset.ColQuantity)),
			LineValue:   ParseNumber(t.Value(i, dataset.ColLineValue)),
			PackPrice:   ParseNumber(t.Value(i, dataset.ColPackPrice)),
			UnitPrice:   ParseNumber(t.Value(i, dataset.ColUnitPrice)),
		}
		records = append(records, rec)
	}

	return records, cols
}
