package analytics

import (
	"sort"

	"supplypulse/internal/pipeline"
)

// Row is one aggregated group. Mean fields are nil when every contributing
// value in the group was absent; sums are present only when requested.
type Row struct {
	Key            string   `json:"key"`
	TotalShipments int      `json:"total_shipments"`
	LateShipments  int      `json:"late_shipments"`
	LateRatio      float64  `json:"late_ratio"`
	AvgLead        *float64 `json:"avg_lead"`
	AvgDelay       *float64 `json:"avg_delay"`
	TotalQuantity  *float64 `json:"total_quantity,omitempty"`
	TotalValue     *float64 `json:"total_value,omitempty"`
}

// SortKey selects the row ordering the caller wants. The aggregator imposes
// no ordering of its own beyond the requested key; ties keep the original
// group order (first appearance in the input).
type SortKey string

const (
	SortNone               SortKey = ""
	SortTotalShipmentsDesc SortKey = "total_shipments_desc"
	SortTotalQuantityDesc  SortKey = "total_quantity_desc"
	SortKeyAsc             SortKey = "key_asc"
)

// Request describes one aggregation over a record set.
type Request struct {
	Dimension  Dimension
	SortBy     SortKey
	Limit      int  // 0 = all groups
	WithTotals bool // include quantity and value sums
}

// Aggregate groups records by the requested dimension and computes per-group
// summary statistics. One row is produced per distinct non-absent dimension
// value present in the input; an empty input produces an empty row set,
// never an error.
func Aggregate(records []pipeline.Shipment, req Request) []Row {
	grouped := make(map[string][]*pipeline.Shipment)
	var order []string

	for i := range records {
		key := req.Dimension.Value(&records[i])
		if key == "" {
			continue
		}
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], &records[i])
	}

	rows := make([]Row, 0, len(order))
	for _, key := range order {
		rows = append(rows, aggregateGroup(key, grouped[key], req.WithTotals))
	}

	sortRows(rows, req.SortBy)

	if req.Limit > 0 && len(rows) > req.Limit {
		rows = rows[:req.Limit]
	}
	return rows
}

func aggregateGroup(key string, group []*pipeline.Shipment, withTotals bool) Row {
	row := Row{Key: key, TotalShipments: len(group)}

	var leadSum, delaySum float64
	var leadN, delayN int
	var quantity, value float64

	for _, r := range group {
		if r.IsLate {
			row.LateShipments++
		}
		if r.LeadTimeDays != nil {
			leadSum += float64(*r.LeadTimeDays)
			leadN++
		}
		if r.DelayDays != nil {
			delaySum += float64(*r.DelayDays)
			delayN++
		}
		if withTotals {
			if r.Quantity != nil {
				quantity += *r.Quantity
			}
			if r.LineValue != nil {
				value += *r.LineValue
			}
		}
	}

	// Groups only exist for present values, so the count is never zero here.
	row.LateRatio = pipeline.Round2(float64(row.LateShipments) / float64(row.TotalShipments) * 100)

	if leadN > 0 {
		m := pipeline.Round2(leadSum / float64(leadN))
		row.AvgLead = &m
	}
	if delayN > 0 {
		m := pipeline.Round2(delaySum / float64(delayN))
		row.AvgDelay = &m
	}
	if withTotals {
		row.TotalQuantity = &quantity
		row.TotalValue = &value
	}
	return row
}

// sortRows orders rows by the requested key. Sorting is stable so that
// top-N selection breaks ties by original group order.
func sortRows(rows []Row, key SortKey) {
	switch key {
	case SortTotalShipmentsDesc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalShipments > rows[j].TotalShipments })
	case SortTotalQuantityDesc:
		sort.SliceStable(rows, func(i, j int) bool { return totalQuantity(rows[i]) > totalQuantity(rows[j]) })
	case SortKeyAsc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	default:
		// preserve grouping order
	}
}

func totalQuantity(r Row) float64 {
	if r.TotalQuantity == nil {
		return 0
	}
	return *r.TotalQuantity
}
