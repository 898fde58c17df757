package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record file format: five labeled lines in fixed order.
const (
	labelCustomer     = "Customer:"
	labelOrder        = "Order:"
	labelPrice        = "Price:"
	labelDate         = "Order Date:"
	labelObservations = "Observations:"

	currencySymbol = "€"

	dateLayout = "20060102"
	timeLayout = "150405"

	filePrefix = "Order_"
	fileExt    = ".txt"
)

// Encode renders a record as its on-disk text blob. The price is always
// emitted with the currency symbol, two decimals, and a '.' separator,
// regardless of how it was originally entered.
func Encode(r Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelCustomer, r.Customer)
	fmt.Fprintf(&b, "%s %s\n", labelOrder, r.Order)
	fmt.Fprintf(&b, "%s %s\n", labelPrice, FormatPrice(r.Price))
	fmt.Fprintf(&b, "%s %s\n", labelDate, r.Date.Format(dateLayout))
	fmt.Fprintf(&b, "%s %s\n", labelObservations, r.Observations)
	return b.String()
}

// Decode parses a record blob. Unknown labels are ignored; the Observations
// label, being last in the fixed order, consumes the remainder of the blob
// so free text may span lines. A blob missing any required label, or with an
// unparsable price or date, yields a MalformedRecordError.
func Decode(blob string) (Record, error) {
	var r Record
	var haveCustomer, haveOrder, havePrice, haveDate bool

	lines := strings.Split(blob, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		// Order Date before Order: both share the shorter prefix.
		case strings.HasPrefix(line, labelDate):
			v := strings.TrimSpace(strings.TrimPrefix(line, labelDate))
			d, err := time.Parse(dateLayout, v)
			if err != nil {
				return Record{}, &MalformedRecordError{Reason: "unparsable order date " + v}
			}
			r.Date = Day(d)
			haveDate = true

		case strings.HasPrefix(line, labelCustomer):
			r.Customer = strings.TrimSpace(strings.TrimPrefix(line, labelCustomer))
			haveCustomer = true

		case strings.HasPrefix(line, labelOrder):
			r.Order = strings.TrimSpace(strings.TrimPrefix(line, labelOrder))
			haveOrder = true

		case strings.HasPrefix(line, labelPrice):
			v := strings.TrimPrefix(line, labelPrice)
			p, err := ParsePrice(v)
			if err != nil {
				return Record{}, &MalformedRecordError{Reason: "unparsable price " + strings.TrimSpace(v)}
			}
			r.Price = p
			havePrice = true

		case strings.HasPrefix(line, labelObservations):
			rest := append([]string{strings.TrimPrefix(line, labelObservations)}, lines[i+1:]...)
			r.Observations = strings.TrimSpace(strings.Join(rest, "\n"))
			i = len(lines)
		}
	}

	for _, req := range []struct {
		ok    bool
		label string
	}{
		{haveCustomer, labelCustomer},
		{haveOrder, labelOrder},
		{havePrice, labelPrice},
		{haveDate, labelDate},
	} {
		if !req.ok {
			return Record{}, &MalformedRecordError{Reason: "missing " + strings.TrimSuffix(req.label, ":") + " label"}
		}
	}

	return r, nil
}

// ParsePrice parses a monetary amount. It accepts either '.' or ',' as the
// fractional separator and an optional leading currency symbol; negative
// amounts and non-numeric input are rejected.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, currencySymbol)
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Decimal{}, &ValidationError{Field: "price", Reason: "must not be empty"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, &ValidationError{Field: "price", Reason: "not a number: " + s}
	}
	if d.IsNegative() {
		return decimal.Decimal{}, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return d, nil
}

// FormatPrice renders an amount the way record files store it: currency
// symbol, two decimals, '.' separator.
func FormatPrice(d decimal.Decimal) string {
	return currencySymbol + d.StringFixed(2)
}

// Filename encodes a record's identity: Order_<customer>_<YYYYMMDD>_<HHMMSS>.txt.
// The registration timestamp is recorded nowhere else. The customer name is
// embedded unescaped, so a name containing '_' produces a filename that
// ParseFilename cannot split back correctly; that ambiguity is inherent to
// the convention and deliberately not papered over.
func Filename(r Record, registered time.Time) string {
	return fmt.Sprintf("%s%s_%s_%s%s",
		filePrefix, r.Customer, r.Date.Format(dateLayout), registered.Format(timeLayout), fileExt)
}

// ParseFilename recovers the customer and order date from a record filename.
// The split is positional: customer names containing '_' shift the date
// field and fail to parse (see Filename).
func ParseFilename(name string) (customer string, date time.Time, err error) {
	base := strings.TrimSuffix(name, fileExt)
	parts := strings.Split(base, "_")
	if len(parts) < 4 || parts[0]+"_" != filePrefix {
		return "", time.Time{}, &MalformedRecordError{Name: name, Reason: "filename does not match Order_<customer>_<date>_<time>"}
	}
	d, perr := time.Parse(dateLayout, parts[2])
	if perr != nil {
		return "", time.Time{}, &MalformedRecordError{Name: name, Reason: "unparsable date field " + parts[2]}
	}
	return parts[1], Day(d), nil
}
