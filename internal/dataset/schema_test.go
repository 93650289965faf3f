package dataset

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func tableWithHeader(t *testing.T, header string) *Table {
	t.Helper()
	table, err := ReadCSV(strings.NewReader(header + "\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	return table
}

func TestValidateAcceptsMinimalSchema(t *testing.T) {
	table := tableWithHeader(t, ColScheduled+","+ColDelivered)
	if err := table.Validate(ShipmentSchema()); err != nil {
		t.Errorf("minimal required header rejected: %v", err)
	}
}

func TestValidateRejectsMissingRequiredColumn(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		missing string
	}{
		{"NoScheduled", ColDelivered + "," + ColCountry, ColScheduled},
		{"NoDelivered", ColScheduled + "," + ColCountry, ColDelivered},
		{"NeitherDate", ColCountry + "," + ColMode, ColScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := tableWithHeader(t, tt.header)
			err := table.Validate(ShipmentSchema())
			if err == nil {
				t.Fatal("expected validation failure")
			}

			var mc *MissingColumnError
			if !errors.As(err, &mc) {
				t.Fatalf("error %v is not a MissingColumnError", err)
			}
			if mc.Column != tt.missing {
				t.Errorf("missing column = %q, want %q", mc.Column, tt.missing)
			}
			if !IsMissingColumn(fmt.Errorf("load: %w", err)) {
				t.Error("IsMissingColumn must match through wrapping")
			}
		})
	}
}

func TestValidateIgnoresMissingOptionalColumns(t *testing.T) {
	// Only the two required date columns; every optional column absent.
	table := tableWithHeader(t, ColScheduled+","+ColDelivered)
	if err := table.Validate(ShipmentSchema()); err != nil {
		t.Errorf("optional columns must not be required: %v", err)
	}
	if table.HasColumn(ColPOSent) {
		t.Error("HasColumn false positive")
	}
}
