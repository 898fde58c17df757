package ledger

import "fmt"

// ValidationError reports a missing or invalid field on registration input.
// It is recoverable: the caller re-prompts and no state has changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MalformedRecordError reports a record blob or filename that doesn't match
// the expected format. Scans skip such records rather than abort.
type MalformedRecordError struct {
	Name   string // filename, when known
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("malformed record %s: %s", e.Name, e.Reason)
	}
	return "malformed record: " + e.Reason
}

// StoreUnavailableError reports an I/O or permission failure while
// enumerating or reading record files. It is a hard failure for the
// operation, never silently treated as "zero records".
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }
