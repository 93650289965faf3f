package dataset

import (
	"errors"
	"fmt"
)

// Column names as they appear in the SCMS delivery history export.
// Matching is by exact header string.
const (
	ColPQFirstSent = "PQ First Sent to Client Date"
	ColPOSent      = "PO Sent to Vendor Date"
	ColScheduled   = "Scheduled Delivery Date"
	ColDelivered   = "Delivered to Client Date"
	ColRecorded    = "Delivery Recorded Date"

	ColCountry = "Country"
	ColMode    = "Shipment Mode"
	ColProduct = "Item Description"

	ColFreightCost = "Freight Cost (USD)"
	ColInsurance   = "Line Item Insurance (USD)"
	ColWeight      = "Weight (Kilograms)"
	ColQuantity    = "Line Item Quantity"
	ColLineValue   = "Line Item Value"
	ColPackPrice   = "Pack Price"
	ColUnitPrice   = "Unit Price"
)

// Kind is the expected value type of a column.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindNumber
)

// Field maps a logical shipment field to its source column.
type Field struct {
	Column   string
	Kind     Kind
	Required bool
}

// ShipmentSchema describes the expected columns of a delivery history export.
// Only the two delivery dates are required; every other column degrades to
// "absent" when missing from the source.
func ShipmentSchema() []Field {
	return []Field{
		{Column: ColPQFirstSent, Kind: KindDate},
		{Column: ColPOSent, Kind: KindDate},
		{Column: ColScheduled, Kind: KindDate, Required: true},
		{Column: ColDelivered, Kind: KindDate, Required: true},
		{Column: ColRecorded, Kind: KindDate},

		{Column: ColCountry, Kind: KindText},
		{Column: ColMode, Kind: KindText},
		{Column: ColProduct, Kind: KindText},

		{Column: ColFreightCost, Kind: KindNumber},
		{Column: ColInsurance, Kind: KindNumber},
		{Column: ColWeight, Kind: KindNumber},
		{Column: ColQuantity, Kind: KindNumber},
		{Column: ColLineValue, Kind: KindNumber},
		{Column: ColPackPrice, Kind: KindNumber},
		{Column: ColUnitPrice, Kind: KindNumber},
	}
}

// MissingColumnError reports a required column that is absent from the
// source header. It is the only condition that aborts pipeline construction;
// callers must treat it as a configuration error, not as "no data".
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("dataset is missing required column %q", e.Column)
}

// IsMissingColumn reports whether err is (or wraps) a MissingColumnError.
func IsMissingColumn(err error) bool {
	var mc *MissingColumnError
	return errors.As(err, &mc)
}

// Validate checks a table header against a schema. Missing optional columns
// are fine; a missing required column fails validation.
func (t *Table) Validate(schema []Field) error {
	for _, f := range schema {
		if f.Required && !t.HasColumn(f.Column) {
			return &MissingColumnError{Column: f.Column}
		}
	}
	return nil
}
