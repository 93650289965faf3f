package analytics

import (
	"sort"

	"supplypulse/internal/pipeline"
)

// Dimension is a categorical grouping axis over shipments. Value returns the
// record's value on the axis; empty string means absent, and absent values
// never form a group.
type Dimension struct {
	Name  string
	Value func(s *pipeline.Shipment) string
}

var (
	ByCountry = Dimension{Name: "Country", Value: func(s *pipeline.Shipment) string { return s.Country }}
	ByMode    = Dimension{Name: "Shipment Mode", Value: func(s *pipeline.Shipment) string { return s.ShipmentMode }}
	ByProduct = Dimension{Name: "Item Description", Value: func(s *pipeline.Shipment) string { return s.Product }}
	ByPeriod  = Dimension{Name: "Period", Value: func(s *pipeline.Shipment) string { return s.Period }}
	ByYear    = Dimension{Name: "Year", Value: func(s *pipeline.Shipment) string {
		if s.Delivered == nil {
			return ""
		}
		return s.Delivered.Format("2006")
	}}
)

// DimensionByName resolves a filterable dimension from its name.
func DimensionByName(name string) (Dimension, bool) {
	switch name {
	case ByCountry.Name:
		return ByCountry, true
	case ByMode.Name:
		return ByMode, true
	case ByProduct.Name:
		return ByProduct, true
	case ByPeriod.Name:
		return ByPeriod, true
	case ByYear.Name:
		return ByYear, true
	}
	return Dimension{}, false
}

// DistinctValues returns the sorted distinct non-absent values of a
// dimension, for populating filter choices.
func DistinctValues(records []pipeline.Shipment, dim Dimension) []string {
	seen := make(map[string]bool)
	var values []string
	for i := range records {
		v := dim.Value(&records[i])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
