package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func registerTestRecord(t *testing.T, s *Store, customer string, d time.Time, price string) string {
	t.Helper()
	r := Record{
		Customer: customer,
		Order:    "Espresso",
		Price:    decimal.RequireFromString(price),
		Date:     d,
	}
	// Distinct registration seconds keep filenames unique within a test.
	name, err := s.Register(r, nextRegistrationTime())
	require.NoError(t, err)
	return name
}

var registrationSeq = time.Date(2024, time.June, 3, 8, 0, 0, 0, time.Local)

func nextRegistrationTime() time.Time {
	registrationSeq = registrationSeq.Add(time.Second)
	return registrationSeq
}

func TestRegister(t *testing.T) {
	s := setupTestStore(t)

	r := Record{
		Customer:     "Ana",
		Order:        "Espresso",
		Price:        decimal.RequireFromString("3.50"),
		Date:         date(2024, time.June, 3),
		Observations: "no sugar",
	}
	name, err := s.Register(r, time.Date(2024, time.June, 3, 14, 5, 9, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, "Order_Ana_20240603_140509.txt", name)

	data, err := os.ReadFile(filepath.Join(s.Root, name))
	require.NoError(t, err)
	assert.Equal(t, Encode(r), string(data))
}

func TestRegisterInvalidRecord(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Register(Record{Order: "Espresso"}, time.Now())
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)

	// Nothing was written.
	names, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRegisterNeverOverwrites(t *testing.T) {
	s := setupTestStore(t)

	r := Record{
		Customer: "Ana",
		Order:    "Espresso",
		Price:    decimal.RequireFromString("3.50"),
		Date:     date(2024, time.June, 3),
	}
	registered := time.Date(2024, time.June, 3, 14, 5, 9, 0, time.Local)
	_, err := s.Register(r, registered)
	require.NoError(t, err)

	_, err = s.Register(r, registered)
	assert.Error(t, err)
}

func TestListAll(t *testing.T) {
	s := setupTestStore(t)

	registerTestRecord(t, s, "Ana", date(2024, time.June, 3), "3.50")
	registerTestRecord(t, s, "Bruno", date(2024, time.June, 4), "5.00")

	// Non-record files are excluded from the scan.
	require.NoError(t, os.WriteFile(filepath.Join(s.Root, "Weekly_Report_20240603_to_20240609.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Root, "notes.txt"), []byte("x"), 0644))

	names, err := s.ListAll()
	require.NoError(t, err)
	assert.Len(t, names, 2)
	for _, n := range names {
		assert.True(t, len(n) > len("Order_"))
	}
}

func TestLoadAll(t *testing.T) {
	s := setupTestStore(t)

	registerTestRecord(t, s, "Ana", date(2024, time.June, 3), "3.50")
	registerTestRecord(t, s, "Bruno", date(2024, time.June, 4), "5.00")

	records, err := s.LoadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadAllSkipsMalformed(t *testing.T) {
	s := setupTestStore(t)

	registerTestRecord(t, s, "Ana", date(2024, time.June, 3), "3.50")

	// Only 3 of the 5 expected labels — excluded, not fatal.
	partial := "Customer: Bruno\nOrder: Lunch\nOrder Date: 20240604\n"
	require.NoError(t, os.WriteFile(filepath.Join(s.Root, "Order_Bruno_20240604_120000.txt"), []byte(partial), 0644))

	records, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ana", records[0].Customer)
}

func TestLoadByCustomer(t *testing.T) {
	s := setupTestStore(t)

	registerTestRecord(t, s, "Ana", date(2024, time.June, 3), "3.50")
	registerTestRecord(t, s, "Ana", date(2024, time.June, 4), "4.00")
	registerTestRecord(t, s, "Bruno", date(2024, time.June, 4), "5.00")

	records, err := s.LoadByCustomer("Ana")
	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "Ana", r.Customer)
	}
}

func TestLoadByCustomerNoMatches(t *testing.T) {
	s := setupTestStore(t)

	registerTestRecord(t, s, "Ana", date(2024, time.June, 3), "3.50")

	// Empty result, not an error: "no records" is a signaled state.
	records, err := s.LoadByCustomer("Zelda")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadByCustomerPrefixAmbiguity(t *testing.T) {
	s := setupTestStore(t)

	registerTestRecord(t, s, "Ann", date(2024, time.June, 3), "3.50")
	registerTestRecord(t, s, "Ann_B", date(2024, time.June, 3), "4.00")

	// Known convention ambiguity: "Ann" prefix-matches "Ann_B" files too.
	names, err := s.SearchFiles("Ann")
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestListAllStoreUnavailable(t *testing.T) {
	s := &Store{Root: filepath.Join(t.TempDir(), "missing")}

	_, err := s.ListAll()
	var unavailable *StoreUnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestReadRawMissingFile(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.ReadRaw("Order_Ana_20240603_140509.txt")
	var unavailable *StoreUnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestRegisterThenLoadRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	want := Record{
		Customer:     "Carla",
		Order:        "Lunch special",
		Price:        decimal.RequireFromString("12.00"),
		Date:         date(2024, time.June, 5),
		Observations: "window seat",
	}
	_, err := s.Register(want, time.Date(2024, time.June, 5, 12, 30, 0, 0, time.Local))
	require.NoError(t, err)

	records, err := s.LoadByCustomer("Carla")
	require.NoError(t, err)
	require.Len(t, records, 1)
	got := records[0]
	assert.Equal(t, want.Customer, got.Customer)
	assert.Equal(t, want.Order, got.Order)
	assert.True(t, want.Price.Equal(got.Price))
	assert.Equal(t, want.Date, got.Date)
	assert.Equal(t, want.Observations, got.Observations)
}
