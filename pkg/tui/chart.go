package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/counterline/till/pkg/ledger"
)

// RenderWeekChart renders the daily totals of one week as horizontal bars,
// Monday through Sunday. It always emits exactly 7 rows; days without
// records show an empty bar, never a missing line.
func RenderWeekChart(weekStart time.Time, buckets [7]decimal.Decimal, width int) string {
	weekStart = ledger.Day(weekStart)

	max := decimal.Zero
	for _, b := range buckets {
		if b.GreaterThan(max) {
			max = b
		}
	}

	// Leave room for the "Mon " label and the amount trailer.
	maxBar := width - 16
	if maxBar < 8 {
		maxBar = 8
	}

	var b strings.Builder
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)

		n := 0
		if max.IsPositive() {
			ratio, _ := buckets[i].Div(max).Float64()
			n = int(ratio*float64(maxBar) + 0.5)
			if n == 0 && buckets[i].IsPositive() {
				n = 1
			}
		}

		fmt.Fprintf(&b, "%s %s %s\n",
			ChartLabelStyle.Render(day.Format("Mon")),
			ChartBarStyle.Render(strings.Repeat("█", n)),
			ChartValueStyle.Render(ledger.FormatPrice(buckets[i])))
	}
	return strings.TrimRight(b.String(), "\n")
}
