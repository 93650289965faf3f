package pipeline

import (
	"strings"
	"testing"
	"time"

	"supplypulse/internal/dataset"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *time.Time
	}{
		{"DayMonthYear", "2-Jun-06", ptrTime(time.Date(2006, 6, 2, 0, 0, 0, 0, time.UTC))},
		{"PaddedDay", "15-Mar-15", ptrTime(time.Date(2015, 3, 15, 0, 0, 0, 0, time.UTC))},
		{"ISO", "2015-03-15", ptrTime(time.Date(2015, 3, 15, 0, 0, 0, 0, time.UTC))},
		{"Slash", "3/15/2015", ptrTime(time.Date(2015, 3, 15, 0, 0, 0, 0, time.UTC))},
		{"Empty", "", nil},
		{"Garbage", "Date Not Captured", nil},
		{"Whitespace", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *float64
	}{
		{"Plain", "42.5", ptrFloat(42.5)},
		{"ThousandsSeparator", "1,234.56", ptrFloat(1234.56)},
		{"CurrencyPrefix", "$99.90", ptrFloat(99.90)},
		{"Negative", "-3", ptrFloat(-3)},
		{"Empty", "", nil},
		{"Sentinel", "Weight Captured Separately", nil},
		{"Mixed", "12kg", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumber(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, *got, *tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	csv := strings.Join([]string{
		`Country,Shipment Mode,Item Description,Scheduled Delivery Date,Delivered to Client Date,PO Sent to Vendor Date,Weight (Kilograms),Line Item Quantity`,
		`Togo,Air,Test Kit,1-Mar-15,6-Mar-15,1-Jan-15,120,100`,
		`Togo,Air,Test Kit,not-a-date,6-Mar-15,,"1,500",bad`,
	}, "\n")

	table, err := dataset.ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	records, cols := Normalize(table)
	if len(records) != 2 {
		t.Fatalf("Normalize returned %d records, want 2", len(records))
	}

	if !cols.POSent || !cols.Weight || !cols.Quantity {
		t.Errorf("ColumnSet missed present columns: %+v", cols)
	}
	if cols.FreightCost || cols.Recorded {
		t.Errorf("ColumnSet claims absent columns present: %+v", cols)
	}

	r0 := records[0]
	if r0.Country != "Togo" || r0.ShipmentMode != "Air" || r0.Product != "Test Kit" {
		t.Errorf("categoricals not carried: %+v", r0)
	}
	if r0.Scheduled == nil || r0.Delivered == nil || r0.POSent == nil {
		t.Fatalf("dates not parsed: %+v", r0)
	}
	if r0.Weight == nil || *r0.Weight != 120 {
		t.Errorf("Weight = %v, want 120", r0.Weight)
	}

	r1 := records[1]
	if r1.Scheduled != nil {
		t.Errorf("malformed date should be absent, got %v", r1.Scheduled)
	}
	if r1.POSent != nil {
		t.Errorf("empty date should be absent, got %v", r1.POSent)
	}
	if r1.Weight == nil || *r1.Weight != 1500 {
		t.Errorf("quoted thousands weight = %v, want 1500", r1.Weight)
	}
	if r1.Quantity != nil {
		t.Errorf("malformed quantity should be absent, got %v", r1.Quantity)
	}
}
