package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Ledger is the read/write surface over the record collection. Store is the
// directory-scan implementation; the interface exists so aggregation and
// reporting never depend on filesystem layout directly.
type Ledger interface {
	ListAll() ([]string, error)
	LoadAll() ([]Record, error)
	LoadByCustomer(name string) ([]Record, error)
	SearchFiles(name string) ([]string, error)
	ReadRaw(name string) (string, error)
	Register(r Record, now time.Time) (string, error)
}

// Store manages the directory of record files.
type Store struct {
	Root string
}

var _ Ledger = (*Store)(nil)

// NewStore creates a Store rooted at the given directory, creating it if
// needed.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{Root: root}, nil
}

// ListAll returns the filenames of all record files, in directory order.
// Callers must not rely on any particular ordering.
func (s *Store) ListAll() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, &StoreUnavailableError{Op: "listing records", Err: err}
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), filePrefix) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// LoadAll decodes every record file. Files that fail to decode are skipped,
// never fatal to the scan; I/O failures are.
func (s *Store) LoadAll() ([]Record, error) {
	names, err := s.ListAll()
	if err != nil {
		return nil, err
	}
	return s.loadNamed(names)
}

// LoadByCustomer returns the decoded records for one customer. An empty
// result is not an error: it signals "no records", distinct from a store
// failure. The prefix match is as loose as the filename convention itself —
// customer "Ann" also matches files registered for "Ann_B".
func (s *Store) LoadByCustomer(name string) ([]Record, error) {
	names, err := s.SearchFiles(name)
	if err != nil {
		return nil, err
	}
	return s.loadNamed(names)
}

// SearchFiles returns the filenames registered under a customer name.
func (s *Store) SearchFiles(name string) ([]string, error) {
	all, err := s.ListAll()
	if err != nil {
		return nil, err
	}
	prefix := filePrefix + name + "_"
	var names []string
	for _, n := range all {
		if strings.HasPrefix(n, prefix) {
			names = append(names, n)
		}
	}
	return names, nil
}

func (s *Store) loadNamed(names []string) ([]Record, error) {
	var records []Record
	for _, name := range names {
		blob, err := s.ReadRaw(name)
		if err != nil {
			return nil, err
		}
		r, err := Decode(blob)
		if err != nil {
			var malformed *MalformedRecordError
			if errors.As(err, &malformed) {
				continue
			}
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// ReadRaw returns the raw text blob of one record file.
func (s *Store) ReadRaw(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Root, name))
	if err != nil {
		return "", &StoreUnavailableError{Op: "reading record " + name, Err: err}
	}
	return string(data), nil
}

// Register validates a record, encodes it, and writes it under the filename
// derived from the registration time. Records are immutable: an existing
// file is never overwritten.
func (s *Store) Register(r Record, now time.Time) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	name := Filename(r, now)
	path := filepath.Join(s.Root, name)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("record %s already exists", name)
	}
	if err := os.WriteFile(path, []byte(Encode(r)), 0644); err != nil {
		return "", &StoreUnavailableError{Op: "writing record " + name, Err: err}
	}
	return name, nil
}
