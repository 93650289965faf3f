package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"supplypulse/internal/analytics"
	"supplypulse/internal/dataset"
	"supplypulse/internal/pipeline"

	"github.com/rs/zerolog/hlog"
)

// viewResponse is the envelope around every aggregate table. Rows may be
// empty — that is a legitimate "no data matched" outcome, distinct from the
// 5xx a broken dataset produces.
type viewResponse struct {
	FilteredShipments int             `json:"filtered_shipments"`
	Rows              []analytics.Row `json:"rows"`
}

type trendResponse struct {
	FilteredShipments int                  `json:"filtered_shipments"`
	Years             []int                `json:"years"`
	Rows              []analytics.TrendRow `json:"rows"`
}

type overviewResponse struct {
	analytics.Headline
	WeightCeiling *float64 `json:"weight_ceiling"`
	LoadedAt      string   `json:"loaded_at"`
}

type dimensionsResponse struct {
	Countries     []string `json:"countries"`
	ShipmentModes []string `json:"shipment_modes"`
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	resp := overviewResponse{
		Headline:      analytics.Overview(ds.Shipments),
		WeightCeiling: ds.WeightCeiling,
		LoadedAt:      ds.LoadedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDimensions(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	resp := dimensionsResponse{
		Countries:     orEmpty(analytics.DistinctValues(ds.Shipments, analytics.ByCountry)),
		ShipmentModes: orEmpty(analytics.DistinctValues(ds.Shipments, analytics.ByMode)),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitFromQuery(w, r, 0)
	if !ok {
		return
	}
	s.handleView(w, r, analytics.Request{
		Dimension:  analytics.ByCountry,
		SortBy:     analytics.SortTotalShipmentsDesc,
		Limit:      limit,
		WithTotals: true,
	})
}

func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	s.handleView(w, r, analytics.Request{
		Dimension: analytics.ByMode,
		SortBy:    analytics.SortTotalShipmentsDesc,
	})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitFromQuery(w, r, s.productLimit)
	if !ok {
		return
	}
	s.handleView(w, r, analytics.Request{
		Dimension:  analytics.ByProduct,
		SortBy:     analytics.SortTotalQuantityDesc,
		Limit:      limit,
		WithTotals: true,
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request, req analytics.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	filtered := analytics.Apply(ds.Shipments, filtersFromQuery(r))
	writeJSON(w, http.StatusOK, viewResponse{
		FilteredShipments: len(filtered),
		Rows:              analytics.Aggregate(filtered, req),
	})
}

func (s *Server) handleYearlyTrend(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	filtered := analytics.Apply(ds.Shipments, filtersFromQuery(r))
	writeJSON(w, http.StatusOK, trendResponse{
		FilteredShipments: len(filtered),
		Years:             orEmptyInts(analytics.Years(filtered)),
		Rows:              analytics.YearlyTrend(filtered),
	})
}

func (s *Server) handleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	yearParam := r.URL.Query().Get("year")
	if yearParam == "" {
		writeError(w, http.StatusBadRequest, "year is required")
		return
	}
	year, err := strconv.Atoi(yearParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be an integer")
		return
	}

	months, err := monthsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	filtered := analytics.Apply(ds.Shipments, filtersFromQuery(r))
	writeJSON(w, http.StatusOK, trendResponse{
		FilteredShipments: len(filtered),
		Years:             orEmptyInts(analytics.Years(filtered)),
		Rows:              analytics.MonthlyTrend(filtered, year, months),
	})
}

// dataset fetches the memoized working set, writing the error response
// itself on failure. A missing required column is a configuration fault of
// the deployment, surfaced distinctly from transient read errors.
func (s *Server) dataset(w http.ResponseWriter, r *http.Request) (*pipeline.Dataset, bool) {
	ds, err := s.store.Dataset()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Dataset unavailable")
		if dataset.IsMissingColumn(err) {
			writeError(w, http.StatusInternalServerError, "dataset schema invalid: "+err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "dataset unavailable")
		}
		return nil, false
	}
	return ds, true
}

// filtersFromQuery maps ?country=...&mode=... (repeatable) onto inclusion
// filters. Absent params mean no restriction.
func filtersFromQuery(r *http.Request) analytics.Filters {
	q := r.URL.Query()
	f := analytics.Filters{}
	if vals := q["country"]; len(vals) > 0 {
		f[analytics.ByCountry.Name] = vals
	}
	if vals := q["mode"]; len(vals) > 0 {
		f[analytics.ByMode.Name] = vals
	}
	return f
}

// limitFromQuery reads an optional positive ?limit=, writing the error
// response itself when the value is malformed. fallback applies when the
// param is absent; 0 means no limit.
func limitFromQuery(w http.ResponseWriter, r *http.Request, fallback int) (int, bool) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	return n, true
}

// monthsFromQuery accepts ?month=3&month=4 as well as ?month=3,4.
func monthsFromQuery(r *http.Request) ([]int, error) {
	var months []int
	for _, raw := range r.URL.Query()["month"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			m, err := strconv.Atoi(part)
			if err != nil || m < 1 || m > 12 {
				return nil, &badMonthError{value: part}
			}
			months = append(months, m)
		}
	}
	return months, nil
}

type badMonthError struct{ value string }

func (e *badMonthError) Error() string {
	return "month must be an integer between 1 and 12, got " + strconv.Quote(e.value)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func orEmpty(vals []string) []string {
	if vals == nil {
		return []string{}
	}
	return vals
}

func orEmptyInts(vals []int) []int {
	if vals == nil {
		return []int{}
	}
	return vals
}
