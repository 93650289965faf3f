package analytics

import "supplypulse/internal/pipeline"

// Headline holds the five top-of-dashboard scalar metrics, always computed
// over the unfiltered working set.
type Headline struct {
	TotalShipments int      `json:"total_shipments"`
	LateShipments  int      `json:"late_shipments"`
	LateRatio      float64  `json:"late_ratio"`
	AvgLeadTime    *float64 `json:"avg_lead_time"`
	AvgDelay       *float64 `json:"avg_delay"`
}

// Overview computes the headline metrics. An empty record set yields zero
// counts and absent averages; callers render that as "no data".
func Overview(records []pipeline.Shipment) Headline {
	h := Headline{TotalShipments: len(records)}
	if len(records) == 0 {
		return h
	}

	var leadSum, delaySum float64
	var leadN, delayN int

	for i := range records {
		r := &records[i]
		if r.IsLate {
			h.LateShipments++
		}
		if r.LeadTimeDays != nil {
			leadSum += float64(*r.LeadTimeDays)
			leadN++
		}
		if r.DelayDays != nil {
			delaySum += float64(*r.DelayDays)
			delayN++
		}
	}

	h.LateRatio = pipeline.Round2(float64(h.LateShipments) / float64(h.TotalShipments) * 100)
	if leadN > 0 {
		m := pipeline.Round2(leadSum / float64(leadN))
		h.AvgLeadTime = &m
	}
	if delayN > 0 {
		m := pipeline.Round2(delaySum / float64(delayN))
		h.AvgDelay = &m
	}
	return h
}
