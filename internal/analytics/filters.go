package analytics

import "supplypulse/internal/pipeline"

// Filters names, per dimension, the set of values a record must match.
// Dimensions compose by logical AND; values within a dimension by OR. An
// empty allowed-set means no restriction on that dimension, not "exclude
// everything". Unknown dimension names are ignored.
type Filters map[string][]string

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	for _, vals := range f {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Apply returns the subset of records whose value on every filtered
// dimension is a member of the corresponding allowed set. The input slice is
// never mutated; the result is always a fresh slice.
func Apply(records []pipeline.Shipment, f Filters) []pipeline.Shipment {
	type check struct {
		dim     Dimension
		allowed map[string]bool
	}

	var checks []check
	for name, vals := range f {
		if len(vals) == 0 {
			continue
		}
		dim, ok := DimensionByName(name)
		if !ok {
			continue
		}
		allowed := make(map[string]bool, len(vals))
		for _, v := range vals {
			allowed[v] = true
		}
		checks = append(checks, check{dim: dim, allowed: allowed})
	}

	if len(checks) == 0 {
		out := make([]pipeline.Shipment, len(records))
		copy(out, records)
		return out
	}

	out := make([]pipeline.Shipment, 0, len(records))
	for i := range records {
		pass := true
		for _, c := range checks {
			if !c.allowed[c.dim.Value(&records[i])] {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, records[i])
		}
	}
	return out
}
