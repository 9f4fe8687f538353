package dictionary

import (
	"errors"
	"fmt"
)

// FieldNameHeader is the column whose value keys a field.
const FieldNameHeader = "Field Name"

var (
	// ErrMissingKey indicates a data row with no Field Name cell
	ErrMissingKey = errors.New("dictionary: missing Field Name")
)

// Attribute is one (header, cell) pair of a data row.
type Attribute struct {
	Name  string
	Value string
}

// Entry is a parsed data row: the field key plus its remaining attributes
// in header order.
type Entry struct {
	Field      string
	Attributes []Attribute
}

// Parse pairs every data row with the header row and pulls out the Field
// Name cell as the entry key. Pairing stops at the shorter of the two rows,
// so trailing headers without a cell are dropped for that row.
func Parse(rows [][]string) ([]Entry, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	entries := make([]Entry, 0, len(rows)-1)

	for i, row := range rows[1:] {
		n := min(len(headers), len(row))

		var (
			field    string
			hasField bool
			attrs    = make([]Attribute, 0, n)
		)
		for j := 0; j < n; j++ {
			if headers[j] == FieldNameHeader {
				field, hasField = row[j], true
				continue
			}
			attrs = appendAttribute(attrs, headers[j], row[j])
		}

		if !hasField {
			return nil, fmt.Errorf("data row %d: %w", i+1, ErrMissingKey)
		}

		entries = append(entries, Entry{Field: field, Attributes: attrs})
	}

	return entries, nil
}

// appendAttribute keeps the first position of a repeated header and the
// last value written to it.
func appendAttribute(attrs []Attribute, name, value string) []Attribute {
	for i := range attrs {
		if attrs[i].Name == name {
			attrs[i].Value = value
			return attrs
		}
	}
	return append(attrs, Attribute{Name: name, Value: value})
}
