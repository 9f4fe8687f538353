package catalog

import (
	"fmt"
)

// FilterKind selects which predicate Filter applies.
type FilterKind string

const (
	ByFieldName    FilterKind = "field"
	ByStandardName FilterKind = "standard"
	ByProduct      FilterKind = "product"
)

// Selector names a filter and the value it matches exactly.
type Selector struct {
	Kind  FilterKind
	Value string
}

// String returns "kind=value".
func (s Selector) String() string {
	return fmt.Sprintf("%s=%s", s.Kind, s.Value)
}

// Skip records a field left out of a filter result and why.
type Skip struct {
	Product string
	Log     string
	Field   string
	Reason  string
}

// Diagnostics collects the per-record skips of a filter run.
type Diagnostics struct {
	Skips []Skip
}

// AddSkip records a skipped record.
func (d *Diagnostics) AddSkip(rec Record, reason string) {
	d.Skips = append(d.Skips, Skip{
		Product: rec.Product,
		Log:     rec.Log,
		Field:   rec.Field,
		Reason:  reason,
	})
}

// HasSkips reports whether any record was skipped.
func (d Diagnostics) HasSkips() bool {
	return len(d.Skips) > 0
}

// Filter dispatches to the filter named by sel.
func (c *Catalog) Filter(sel Selector) (*Catalog, Diagnostics, error) {
	switch sel.Kind {
	case ByFieldName:
		return c.FilterByFieldName(sel.Value), Diagnostics{}, nil
	case ByStandardName:
		out, diag := c.FilterByStandardName(sel.Value)
		return out, diag, nil
	case ByProduct:
		return c.FilterByProduct(sel.Value), Diagnostics{}, nil
	default:
		return nil, Diagnostics{}, fmt.Errorf("%w: %q", ErrUnknownFilter, sel.Kind)
	}
}

// FilterByFieldName keeps every field named exactly name, across all
// products and logs.
func (c *Catalog) FilterByFieldName(name string) *Catalog {
	return c.selectRecords(func(rec Record) bool {
		return rec.Field == name
	})
}

// FilterByStandardName keeps every field whose Standard Name equals name.
// Fields without a Standard Name are skipped and reported in the returned
// diagnostics instead of failing the query.
func (c *Catalog) FilterByStandardName(name string) (*Catalog, Diagnostics) {
	var diag Diagnostics
	out := c.selectRecords(func(rec Record) bool {
		standard, ok := rec.Attributes.StandardName()
		if !ok {
			diag.AddSkip(rec, "missing "+StandardNameAttribute)
			return false
		}
		return standard == name
	})
	return out, diag
}

// FilterByProduct keeps every field of the product named exactly name.
func (c *Catalog) FilterByProduct(name string) *Catalog {
	return c.selectRecords(func(rec Record) bool {
		return rec.Product == name
	})
}

// Select keeps the records keep accepts. It stops at the first error keep
// returns and yields no catalog in that case.
func (c *Catalog) Select(keep func(Record) (bool, error)) (*Catalog, error) {
	out := New()
	err := c.Walk(func(rec Record) error {
		ok, err := keep(rec)
		if err != nil {
			return err
		}
		if ok {
			out.Append(rec.Product, rec.Log, rec.Field, rec.Attributes)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// selectRecords copies matching records into a new catalog. Logs left with
// no matching field are not carried over.
func (c *Catalog) selectRecords(keep func(Record) bool) *Catalog {
	out, _ := c.Select(func(rec Record) (bool, error) {
		return keep(rec), nil
	})
	return out
}
