// Package report holds the pure aggregation routines over loaded records
// and the weekly report artifact derived from them.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/counterline/till/pkg/ledger"
)

// TotalOf sums the prices of all records. An empty input totals zero.
func TotalOf(records []ledger.Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Price)
	}
	return total
}

// FilterByDateRange keeps records dated within [start, end], inclusive on
// both ends.
func FilterByDateRange(records []ledger.Record, start, end time.Time) []ledger.Record {
	start, end = ledger.Day(start), ledger.Day(end)
	var out []ledger.Record
	for _, r := range records {
		d := ledger.Day(r.Date)
		if !d.Before(start) && !d.After(end) {
			out = append(out, r)
		}
	}
	return out
}

// WeekOf returns the Monday-to-Sunday span containing anchor: start is the
// most recent Monday on or before it (anchor itself on Mondays), end is
// start plus six days. Weeks are Monday-first regardless of locale.
func WeekOf(anchor time.Time) (start, end time.Time) {
	d := ledger.Day(anchor)
	offset := (int(d.Weekday()) + 6) % 7
	start = d.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// BucketByDay sums record prices per day of the week starting at weekStart.
// The result always has exactly 7 entries, Monday through Sunday; days
// without records stay zero so chart rendering has a fixed length.
func BucketByDay(records []ledger.Record, weekStart time.Time) [7]decimal.Decimal {
	var buckets [7]decimal.Decimal
	weekStart = ledger.Day(weekStart)
	for _, r := range records {
		offset := int(ledger.Day(r.Date).Sub(weekStart).Hours() / 24)
		if offset >= 0 && offset < 7 {
			buckets[offset] = buckets[offset].Add(r.Price)
		}
	}
	return buckets
}
