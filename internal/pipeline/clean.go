package pipeline

import (
	"math"
	"time"
)

// Bounds applied to the derived day counts. Values outside are forced
// absent, not dropped.
const (
	LeadTimeMinDays = 0
	LeadTimeMaxDays = 365
	DelayMinDays    = -90
	DelayMaxDays    = 365
)

// WeightCapQuantile is the ceiling for the weight clamp: values above the
// 95th percentile of the retained set are clamped down to it.
const WeightCapQuantile = 0.95

// Clean applies the record filter and outlier clamp. The step order matters:
// later steps operate on the record set as it stands after earlier
// exclusions.
//
//  1. Drop records missing either delivery date.
//  2. Derive lead time (delivered − PO sent) when the PO column exists.
//  3. Derive delay (delivered − scheduled).
//  4. Force lead time outside [0, 365] to absent.
//  5. Force delay outside [−90, 365] to absent.
//  6. Impute absent numeric values with each present column's median.
//  7. Drop records with non-positive weight.
//  8. Clamp weights above the 95th percentile down to it.
//
// The returned ceiling is the computed weight cap, nil when the weight
// column is absent or no weights survived. It is computed once here, over
// the full cleaned set, never per filtered view.
func Clean(records []Shipment, cols ColumnSet) ([]Shipment, *float64) {
	// Step 1: both delivery dates are required per record. Work on a fresh
	// slice so the caller's input survives untouched.
	kept := make([]Shipment, 0, len(records))
	for _, r := range records {
		if r.Scheduled == nil || r.Delivered == nil {
			continue
		}
		kept = append(kept, r)
	}
	records = kept

	// Steps 2–5: derive day counts and enforce plausibility bounds.
	for i := range records {
		r := &records[i]

		if cols.POSent && r.POSent != nil {
			d := daysBetween(*r.POSent, *r.Delivered)
			if d >= LeadTimeMinDays && d <= LeadTimeMaxDays {
				r.LeadTimeDays = ptrInt(d)
			}
		}

		d := daysBetween(*r.Scheduled, *r.Delivered)
		if d >= DelayMinDays && d <= DelayMaxDays {
			r.DelayDays = ptrInt(d)
		}
	}

	// Step 6: median imputation per present numeric column. A column whose
	// values are all absent stays absent; there is no median to impute.
	for _, c := range numericColumns(cols) {
		if !c.present {
			continue
		}
		var present []float64
		for i := range records {
			if v := *c.field(&records[i]); v != nil {
				present = append(present, *v)
			}
		}
		if len(present) == 0 {
			continue
		}
		med := Median(present)
		for i := range records {
			f := c.field(&records[i])
			if *f == nil {
				*f = ptrFloat(med)
			}
		}
	}

	if !cols.Weight {
		return records, nil
	}

	// Step 7: non-positive weight invalidates the whole record.
	kept = make([]Shipment, 0, len(records))
	for _, r := range records {
		if r.Weight == nil || *r.Weight <= 0 {
			continue
		}
		kept = append(kept, r)
	}
	records = kept

	if len(records) == 0 {
		return records, nil
	}

	// Step 8: clamp outlier weights to the percentile ceiling.
	weights := make([]float64, len(records))
	for i := range records {
		weights[i] = *records[i].Weight
	}
	ceiling := Quantile(weights, WeightCapQuantile)
	for i := range records {
		if *records[i].Weight > ceiling {
			records[i].Weight = ptrFloat(ceiling)
		}
	}

	return records, ptrFloat(ceiling)
}

type numericColumn struct {
	present bool
	field   func(*Shipment) **float64
}

func numericColumns(cols ColumnSet) []numericColumn {
	return []numericColumn{
		{cols.FreightCost, func(s *Shipment) **float64 { return &s.FreightCost }},
		{cols.Insurance, func(s *Shipment) **float64 { return &s.Insurance }},
		{cols.Weight, func(s *Shipment) **float64 { return &s.Weight }},
		{cols.Quantity, func(s *Shipment) **float64 { return &s.Quantity }},
		{cols.LineValue, func(s *Shipment) **float64 { return &s.LineValue }},
		{cols.PackPrice, func(s *Shipment) **float64 { return &s.PackPrice }},
		{cols.UnitPrice, func(s *Shipment) **float64 { return &s.UnitPrice }},
	}
}

// daysBetween returns whole calendar days from one timestamp to another,
// flooring like a date difference (negative spans round away from zero).
func daysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}
