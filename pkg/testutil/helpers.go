// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/ostolop/rent-vs-buy/internal/projection"
)

// FindYear finds a year record by year in the records slice.
// Returns a pointer to the record if found, nil otherwise.
func FindYear(records []projection.YearRecord, year int) *projection.YearRecord {
	for i := range records {
		if records[i].Year == year {
			return &records[i]
		}
	}
	return nil
}

// Component returns the named cash flow component of a record, or zero when
// the record carries no such line.
func Component(record *projection.YearRecord, name string) float64 {
	if record == nil {
		return 0
	}
	return record.Components[name]
}
