package pipeline

import (
	"testing"
)

func TestEnrichLatenessFlag(t *testing.T) {
	tests := []struct {
		name     string
		delay    *int
		wantLate bool
	}{
		{"PositiveDelayIsLate", ptrInt(5), true},
		{"ZeroDelayNotLate", ptrInt(0), false},
		{"NegativeDelayNotLate", ptrInt(-2), false},
		{"AbsentDelayNotLate", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := Enrich([]Shipment{{DelayDays: tt.delay, Delivered: date(2015, 3, 6)}})
			if records[0].IsLate != tt.wantLate {
				t.Errorf("IsLate = %v, want %v", records[0].IsLate, tt.wantLate)
			}
		})
	}
}

func TestEnrichPeriodKey(t *testing.T) {
	records := Enrich([]Shipment{
		{Delivered: date(2015, 3, 6)},
		{Delivered: date(2009, 12, 31)},
	})

	if records[0].Period != "2015-03" {
		t.Errorf("Period = %q, want %q", records[0].Period, "2015-03")
	}
	if records[1].Period != "2009-12" {
		t.Errorf("Period = %q, want %q", records[1].Period, "2009-12")
	}
}
