// Package catalog holds the product → log → field → attributes hierarchy
// scraped from OSSEM data dictionaries, along with the filters and row
// projections used to export it.
//
// Every level keeps first-seen insertion order; export and graph traversal
// depend on it.
package catalog

import (
	"sort"
)

const (
	// FieldNameAttribute is consumed as the field key and never stored.
	FieldNameAttribute = "Field Name"

	// StandardNameAttribute maps a field onto the OSSEM vocabulary.
	StandardNameAttribute = "Standard Name"
)

// AttributeSet maps attribute names (Standard Name, Type, Description, ...)
// to values for a single field.
type AttributeSet struct {
	attrs ordered[string]
}

// NewAttributeSet builds a set from alternating name, value pairs.
func NewAttributeSet(pairs ...string) AttributeSet {
	var a AttributeSet
	for i := 0; i+1 < len(pairs); i += 2 {
		a.Set(pairs[i], pairs[i+1])
	}
	return a
}

// Set stores value under name. The Field Name attribute is ignored.
func (a *AttributeSet) Set(name, value string) {
	if name == FieldNameAttribute {
		return
	}
	a.attrs.set(name, value)
}

// Get returns the value stored under name.
func (a AttributeSet) Get(name string) (string, bool) {
	return a.attrs.get(name)
}

// StandardName returns the OSSEM standard name of the field, if present.
func (a AttributeSet) StandardName() (string, bool) {
	return a.attrs.get(StandardNameAttribute)
}

// Names returns attribute names in insertion order.
func (a AttributeSet) Names() []string {
	return a.attrs.names()
}

// Len returns the number of attributes.
func (a AttributeSet) Len() int {
	return a.attrs.len()
}

// DescendingValues returns the values ordered by attribute name, highest
// name first. Column meaning shifts between sets with different names.
func (a AttributeSet) DescendingValues() []string {
	names := a.attrs.names()
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	values := make([]string, len(names))
	for i, name := range names {
		values[i] = a.attrs.items[name]
	}
	return values
}

// Clone returns an independent copy.
func (a AttributeSet) Clone() AttributeSet {
	var c AttributeSet
	for _, name := range a.attrs.keys {
		c.attrs.set(name, a.attrs.items[name])
	}
	return c
}

// Fields is the ordered field → AttributeSet mapping of one log.
type Fields struct {
	fields ordered[AttributeSet]
}

// NewFields returns an empty field mapping.
func NewFields() *Fields {
	return &Fields{}
}

// Set stores attrs under field, replacing any earlier value.
func (f *Fields) Set(field string, attrs AttributeSet) {
	f.fields.set(field, attrs)
}

// Get returns a copy of the attributes of field.
func (f *Fields) Get(field string) (AttributeSet, bool) {
	attrs, ok := f.fields.get(field)
	if !ok {
		return AttributeSet{}, false
	}
	return attrs.Clone(), true
}

// Names returns field names in insertion order.
func (f *Fields) Names() []string {
	return f.fields.names()
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	return f.fields.len()
}

func (f *Fields) clone() *Fields {
	c := NewFields()
	for _, name := range f.fields.keys {
		c.fields.set(name, f.fields.items[name].Clone())
	}
	return c
}

type product struct {
	logs ordered[*Fields]
}

// Record is a single (product, log, field) entry with a copy of its
// attributes.
type Record struct {
	Product    string
	Log        string
	Field      string
	Attributes AttributeSet
}

// Catalog is the scraped product → log → field → attributes hierarchy.
type Catalog struct {
	products ordered[*product]
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// Append stores attrs under (product, log, field), creating the product and
// log levels as needed. An existing field is overwritten.
func (c *Catalog) Append(productName, log, field string, attrs AttributeSet) {
	p := c.products.getOrCreate(productName, func() *product { return &product{} })
	fields := p.logs.getOrCreate(log, NewFields)
	fields.Set(field, attrs)
}

// Register replaces the whole field mapping of (product, log). A log
// registered again keeps its original position.
func (c *Catalog) Register(productName, log string, fields *Fields) {
	if fields == nil {
		fields = NewFields()
	}
	p := c.products.getOrCreate(productName, func() *product { return &product{} })
	p.logs.set(log, fields)
}

// Products returns product names in insertion order.
func (c *Catalog) Products() []string {
	return c.products.names()
}

// Logs returns the log names of a product in insertion order.
func (c *Catalog) Logs(productName string) []string {
	p, ok := c.products.get(productName)
	if !ok {
		return nil
	}
	return p.logs.names()
}

// Fields returns the field names of (product, log) in insertion order.
func (c *Catalog) Fields(productName, log string) []string {
	fields := c.fieldsOf(productName, log)
	if fields == nil {
		return nil
	}
	return fields.Names()
}

// Attributes returns a copy of the attributes stored under (product, log,
// field). Changing it leaves the catalog untouched.
func (c *Catalog) Attributes(productName, log, field string) (AttributeSet, bool) {
	fields := c.fieldsOf(productName, log)
	if fields == nil {
		return AttributeSet{}, false
	}
	return fields.Get(field)
}

func (c *Catalog) fieldsOf(productName, log string) *Fields {
	p, ok := c.products.get(productName)
	if !ok {
		return nil
	}
	fields, ok := p.logs.get(log)
	if !ok {
		return nil
	}
	return fields
}

// Len returns the number of (product, log, field) records.
func (c *Catalog) Len() int {
	n := 0
	for _, name := range c.products.keys {
		p := c.products.items[name]
		for _, log := range p.logs.keys {
			n += p.logs.items[log].Len()
		}
	}
	return n
}

// Walk calls fn for every record, product-major, in insertion order.
// Walking stops at the first error fn returns.
func (c *Catalog) Walk(fn func(Record) error) error {
	for _, productName := range c.products.keys {
		p := c.products.items[productName]
		for _, log := range p.logs.keys {
			fields := p.logs.items[log]
			for _, field := range fields.fields.keys {
				rec := Record{
					Product:    productName,
					Log:        log,
					Field:      field,
					Attributes: fields.fields.items[field].Clone(),
				}
				if err := fn(rec); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Clone returns a deep copy, including logs without fields.
func (c *Catalog) Clone() *Catalog {
	out := New()
	for _, productName := range c.products.keys {
		p := c.products.items[productName]
		for _, log := range p.logs.keys {
			out.Register(productName, log, p.logs.items[log].clone())
		}
		if p.logs.len() == 0 {
			out.products.set(productName, &product{})
		}
	}
	return out
}
