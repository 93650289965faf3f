package analytics

import (
	"sort"
	"strconv"

	"supplypulse/internal/pipeline"
)

// TrendRow is one time bucket in a yearly or monthly rollup.
type TrendRow struct {
	Period         string   `json:"period"`
	TotalShipments int      `json:"total_shipments"`
	TotalQuantity  float64  `json:"total_quantity"`
	AvgLead        *float64 `json:"avg_lead"`
}

var monthLabels = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthLabel returns the short label for a 1-based month number.
func MonthLabel(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthLabels[month-1]
}

// YearlyTrend rolls records up by delivery year, in chronological order.
func YearlyTrend(records []pipeline.Shipment) []TrendRow {
	buckets := make(map[int][]*pipeline.Shipment)
	for i := range records {
		r := &records[i]
		if r.Delivered == nil {
			continue
		}
		y := r.Delivered.Year()
		buckets[y] = append(buckets[y], r)
	}

	years := make([]int, 0, len(buckets))
	for y := range buckets {
		years = append(years, y)
	}
	sort.Ints(years)

	rows := make([]TrendRow, 0, len(years))
	for _, y := range years {
		rows = append(rows, trendRow(strconv.Itoa(y), buckets[y]))
	}
	return rows
}

// MonthlyTrend rolls records up by delivery month within one year. A
// non-empty month subset (1–12) restricts the buckets; an empty subset
// includes all months with data. Rows come back in calendar order.
func MonthlyTrend(records []pipeline.Shipment, year int, months []int) []TrendRow {
	allowed := make(map[int]bool, len(months))
	for _, m := range months {
		allowed[m] = true
	}

	buckets := make(map[int][]*pipeline.Shipment)
	for i := range records {
		r := &records[i]
		if r.Delivered == nil || r.Delivered.Year() != year {
			continue
		}
		m := int(r.Delivered.Month())
		if len(allowed) > 0 && !allowed[m] {
			continue
		}
		buckets[m] = append(buckets[m], r)
	}

	rows := make([]TrendRow, 0, len(buckets))
	for m := 1; m <= 12; m++ {
		group, ok := buckets[m]
		if !ok {
			continue
		}
		row := trendRow(MonthLabel(m), group)
		rows = append(rows, row)
	}
	return rows
}

// Years lists the distinct delivery years present, ascending, for the
// presentation layer's year selector.
func Years(records []pipeline.Shipment) []int {
	seen := make(map[int]bool)
	var years []int
	for i := range records {
		if records[i].Delivered == nil {
			continue
		}
		y := records[i].Delivered.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}

func trendRow(period string, group []*pipeline.Shipment) TrendRow {
	row := TrendRow{Period: period, TotalShipments: len(group)}

	var leadSum float64
	var leadN int
	for _, r := range group {
		if r.Quantity != nil {
			row.TotalQuantity += *r.Quantity
		}
		if r.LeadTimeDays != nil {
			leadSum += float64(*r.LeadTimeDays)
			leadN++
		}
	}
	if leadN > 0 {
		m := pipeline.Round2(leadSum / float64(leadN))
		row.AvgLead = &m
	}
	return row
}
