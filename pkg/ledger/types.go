package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one logged customer order. It is created once at registration
// time and never updated; its identity (customer, order date, registration
// timestamp) lives in the filename, not in the record body.
type Record struct {
	Customer     string
	Order        string
	Price        decimal.Decimal
	Date         time.Time // calendar date, midnight UTC
	Observations string
}

// Validate reports the first missing or invalid required field.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Customer) == "" {
		return &ValidationError{Field: "customer", Reason: "must not be empty"}
	}
	if strings.TrimSpace(r.Order) == "" {
		return &ValidationError{Field: "order", Reason: "must not be empty"}
	}
	if r.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if r.Date.IsZero() {
		return &ValidationError{Field: "order date", Reason: "must be set"}
	}
	return nil
}

// Day strips the time component, normalizing to midnight UTC so that dates
// parsed from different sources compare equal.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
