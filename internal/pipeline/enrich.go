package pipeline

// PeriodLayout formats a delivered date into its year-month grouping key,
// e.g. "2015-03". The key is only ever compared and grouped, never parsed
// back into a date.
const PeriodLayout = "2006-01"

// Enrich populates the derived presentation fields on every cleaned record:
// the lateness flag and the year-month period key. A record whose delay was
// forced absent by the plausibility bounds counts as not late.
func Enrich(records []Shipment) []Shipment {
	for i := range records {
		r := &records[i]
		r.IsLate = r.DelayDays != nil && *r.DelayDays > 0
		if r.Delivered != nil {
			r.Period = r.Delivered.Format(PeriodLayout)
		}
	}
	return records
}
