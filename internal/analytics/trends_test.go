package analytics

import (
	"testing"
	"time"

	"supplypulse/internal/pipeline"
)

func trendFixture() []pipeline.Shipment {
	return []pipeline.Shipment{
		shipment("Togo", "Air", "Kit", 1, withDelivered(2014, 11, 3), withQuantity(100), withLead(10)),
		shipment("Togo", "Air", "Kit", 1, withDelivered(2015, 1, 15), withQuantity(200), withLead(20)),
		shipment("Togo", "Air", "Kit", 1, withDelivered(2015, 1, 28), withQuantity(50)),
		shipment("Togo", "Air", "Kit", 1, withDelivered(2015, 6, 2), withQuantity(25), withLead(30)),
	}
}

func TestYearlyTrend(t *testing.T) {
	rows := YearlyTrend(trendFixture())
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	if rows[0].Period != "2014" || rows[1].Period != "2015" {
		t.Errorf("periods = [%s, %s], want chronological years", rows[0].Period, rows[1].Period)
	}
	if rows[1].TotalShipments != 3 {
		t.Errorf("2015 count = %d, want 3", rows[1].TotalShipments)
	}
	if rows[1].TotalQuantity != 275 {
		t.Errorf("2015 quantity = %v, want 275", rows[1].TotalQuantity)
	}
	if rows[1].AvgLead == nil || *rows[1].AvgLead != 25 {
		t.Errorf("2015 avg lead = %v, want 25 (absent excluded)", rows[1].AvgLead)
	}
}

func TestMonthlyTrend(t *testing.T) {
	rows := MonthlyTrend(trendFixture(), 2015, nil)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 months with data", len(rows))
	}
	if rows[0].Period != "Jan" || rows[1].Period != "Jun" {
		t.Errorf("periods = [%s, %s], want calendar order", rows[0].Period, rows[1].Period)
	}
	if rows[0].TotalShipments != 2 || rows[0].TotalQuantity != 250 {
		t.Errorf("Jan row = %+v", rows[0])
	}
}

func TestMonthlyTrendWithMonthSubset(t *testing.T) {
	rows := MonthlyTrend(trendFixture(), 2015, []int{6})
	if len(rows) != 1 || rows[0].Period != "Jun" {
		t.Fatalf("rows = %+v, want only Jun", rows)
	}
}

func TestMonthlyTrendNoData(t *testing.T) {
	rows := MonthlyTrend(trendFixture(), 1999, nil)
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0 for a year without data", len(rows))
	}
	if rows == nil {
		t.Error("empty result must still be a non-nil slice")
	}
}

func TestYears(t *testing.T) {
	years := Years(trendFixture())
	if len(years) != 2 || years[0] != 2014 || years[1] != 2015 {
		t.Errorf("Years = %v, want [2014 2015]", years)
	}
}

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		month int
		want  string
	}{
		{1, "Jan"}, {6, "Jun"}, {12, "Dec"}, {0, ""}, {13, ""},
	}
	for _, tt := range tests {
		if got := MonthLabel(tt.month); got != tt.want {
			t.Errorf("MonthLabel(%d) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestDistinctValues(t *testing.T) {
	records := []pipeline.Shipment{
		shipment("Togo", "Air", "Kit", 1),
		shipment("Ghana", "Truck", "Kit", 1),
		shipment("Togo", "Air", "Kit", 1),
		shipment("", "Air", "Kit", 1),
	}

	countries := DistinctValues(records, ByCountry)
	if len(countries) != 2 || countries[0] != "Ghana" || countries[1] != "Togo" {
		t.Errorf("DistinctValues = %v, want sorted [Ghana Togo] with absent excluded", countries)
	}
}

func TestByYearDimension(t *testing.T) {
	delivered := time.Date(2015, 3, 6, 0, 0, 0, 0, time.UTC)
	s := pipeline.Shipment{Delivered: &delivered}
	if got := ByYear.Value(&s); got != "2015" {
		t.Errorf("ByYear = %q, want 2015", got)
	}
	if got := ByYear.Value(&pipeline.Shipment{}); got != "" {
		t.Errorf("ByYear without a delivery date = %q, want absent", got)
	}
}
