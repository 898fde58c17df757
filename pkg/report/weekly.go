package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/counterline/till/pkg/ledger"
)

// ErrNoRecords signals a week with nothing to report. Callers surface it to
// the user instead of persisting an empty artifact.
var ErrNoRecords = errors.New("no records for this week")

// Entry is one record's contribution to a weekly report. The raw blob is
// persisted verbatim so regeneration never reformats stored records.
type Entry struct {
	Name   string
	Raw    string
	Record ledger.Record
}

// Weekly is the derived, non-authoritative weekly aggregate.
type Weekly struct {
	Start   time.Time
	End     time.Time
	Entries []Entry
	Total   decimal.Decimal
}

// Build scans the ledger and assembles the report for the week containing
// anchor. Malformed record files are skipped. Entries are sorted by filename:
// directory order is unspecified, and regenerating a report over unchanged
// records must produce byte-identical output.
func Build(led ledger.Ledger, anchor time.Time) (*Weekly, error) {
	start, end := WeekOf(anchor)

	names, err := led.ListAll()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	w := &Weekly{Start: start, End: end, Total: decimal.Zero}
	for _, name := range names {
		raw, err := led.ReadRaw(name)
		if err != nil {
			return nil, err
		}
		rec, err := ledger.Decode(raw)
		if err != nil {
			var malformed *ledger.MalformedRecordError
			if errors.As(err, &malformed) {
				continue
			}
			return nil, err
		}
		d := ledger.Day(rec.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		w.Entries = append(w.Entries, Entry{Name: name, Raw: raw, Record: rec})
		w.Total = w.Total.Add(rec.Price)
	}
	return w, nil
}

// Filename returns Weekly_Report_<startYYYYMMDD>_to_<endYYYYMMDD>.txt.
func (w *Weekly) Filename() string {
	return fmt.Sprintf("Weekly_Report_%s_to_%s.txt",
		w.Start.Format("20060102"), w.End.Format("20060102"))
}

// Render produces the report text: a title line, the raw record blobs
// separated by blank lines, and the weekly total trailer.
func (w *Weekly) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weekly Report - %s to %s\n\n",
		w.Start.Format("02/01/2006"), w.End.Format("02/01/2006"))
	for _, e := range w.Entries {
		b.WriteString(e.Raw)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Total Weekly Profit: %s\n", ledger.FormatPrice(w.Total))
	return b.String()
}

// Write renders and persists the weekly report into dir, returning the
// written path. A week with no records yields ErrNoRecords, not an empty
// report.
func Write(led ledger.Ledger, dir string, anchor time.Time) (string, error) {
	w, err := Build(led, anchor)
	if err != nil {
		return "", err
	}
	if len(w.Entries) == 0 {
		return "", ErrNoRecords
	}
	path := filepath.Join(dir, w.Filename())
	if err := os.WriteFile(path, []byte(w.Render()), 0644); err != nil {
		return "", fmt.Errorf("writing weekly report: %w", err)
	}
	return path, nil
}
