package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counterline/till/pkg/ledger"
)

func setupTestLedger(t *testing.T) *ledger.Store {
	t.Helper()
	s, err := ledger.NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func register(t *testing.T, s *ledger.Store, r ledger.Record, hhmmss string) {
	t.Helper()
	ts, err := time.Parse("150405", hhmmss)
	require.NoError(t, err)
	registered := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(),
		ts.Hour(), ts.Minute(), ts.Second(), 0, time.Local)
	_, err = s.Register(r, registered)
	require.NoError(t, err)
}

func TestBuild(t *testing.T) {
	s := setupTestLedger(t)

	register(t, s, rec("Ana", date(2024, time.June, 3), "10.00"), "090000")
	register(t, s, rec("Bruno", date(2024, time.June, 5), "5.50"), "120000")
	register(t, s, rec("Carla", date(2024, time.June, 10), "20.00"), "090000")

	w, err := Build(s, date(2024, time.June, 4))
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.June, 3), w.Start)
	assert.Equal(t, date(2024, time.June, 9), w.End)
	require.Len(t, w.Entries, 2)
	assert.Equal(t, "15.50", w.Total.StringFixed(2))

	// Entries come back in filename order.
	assert.Equal(t, "Order_Ana_20240603_090000.txt", w.Entries[0].Name)
	assert.Equal(t, "Order_Bruno_20240605_120000.txt", w.Entries[1].Name)
}

func TestBuildSkipsMalformed(t *testing.T) {
	s := setupTestLedger(t)

	register(t, s, rec("Ana", date(2024, time.June, 3), "10.00"), "090000")
	partial := "Customer: Bruno\nOrder: Lunch\nOrder Date: 20240605\n"
	require.NoError(t, os.WriteFile(filepath.Join(s.Root, "Order_Bruno_20240605_120000.txt"), []byte(partial), 0644))

	w, err := Build(s, date(2024, time.June, 4))
	require.NoError(t, err)
	require.Len(t, w.Entries, 1)
	assert.Equal(t, "10.00", w.Total.StringFixed(2))
}

func TestWeeklyFilename(t *testing.T) {
	w := &Weekly{Start: date(2024, time.June, 3), End: date(2024, time.June, 9)}
	assert.Equal(t, "Weekly_Report_20240603_to_20240609.txt", w.Filename())
}

func TestRender(t *testing.T) {
	s := setupTestLedger(t)

	register(t, s, rec("Ana", date(2024, time.June, 3), "10.00"), "090000")
	register(t, s, rec("Bruno", date(2024, time.June, 5), "5.50"), "120000")

	w, err := Build(s, date(2024, time.June, 4))
	require.NoError(t, err)

	out := w.Render()
	assert.True(t, strings.HasPrefix(out, "Weekly Report - 03/06/2024 to 09/06/2024\n\n"))
	assert.Contains(t, out, "Customer: Ana\n")
	assert.Contains(t, out, "Customer: Bruno\n")
	assert.True(t, strings.HasSuffix(out, "Total Weekly Profit: €15.50\n"))

	// The raw blobs appear verbatim, Ana before Bruno.
	assert.Less(t, strings.Index(out, "Customer: Ana"), strings.Index(out, "Customer: Bruno"))
}

func TestRenderIdempotent(t *testing.T) {
	s := setupTestLedger(t)

	register(t, s, rec("Ana", date(2024, time.June, 3), "10.00"), "090000")
	register(t, s, rec("Bruno", date(2024, time.June, 5), "5.50"), "120000")

	first, err := Build(s, date(2024, time.June, 4))
	require.NoError(t, err)
	second, err := Build(s, date(2024, time.June, 7))
	require.NoError(t, err)

	// Same week, unchanged records: byte-identical output.
	assert.Equal(t, first.Render(), second.Render())
}

func TestWrite(t *testing.T) {
	s := setupTestLedger(t)
	outDir := t.TempDir()

	register(t, s, rec("Ana", date(2024, time.June, 3), "10.00"), "090000")

	path, err := Write(s, outDir, date(2024, time.June, 4))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "Weekly_Report_20240603_to_20240609.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total Weekly Profit: €10.00")
}

func TestWriteEmptyWeek(t *testing.T) {
	s := setupTestLedger(t)

	_, err := Write(s, t.TempDir(), date(2024, time.June, 4))
	assert.ErrorIs(t, err, ErrNoRecords)
}
