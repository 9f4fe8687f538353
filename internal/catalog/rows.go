package catalog

// SummaryRow is the (product, log, field, standard name) projection of a
// record used by graph construction.
type SummaryRow struct {
	Product      string
	Log          string
	Field        string
	StandardName string
}

// Strings returns the row as CSV-ready cells.
func (r SummaryRow) Strings() []string {
	return []string{r.Product, r.Log, r.Field, r.StandardName}
}

// FlatRows returns one row per record: product, log, field, then the
// attribute values ordered by attribute name, descending.
func (c *Catalog) FlatRows() [][]string {
	var rows [][]string
	c.Walk(func(rec Record) error {
		row := append([]string{rec.Product, rec.Log, rec.Field}, rec.Attributes.DescendingValues()...)
		rows = append(rows, row)
		return nil
	})
	return rows
}

// SummaryRows projects every record onto its standard name. Unlike
// FilterByStandardName it fails on the first record without one; filter
// first when the catalog may hold degraded records.
func (c *Catalog) SummaryRows() ([]SummaryRow, error) {
	var rows []SummaryRow
	err := c.Walk(func(rec Record) error {
		standard, ok := rec.Attributes.StandardName()
		if !ok {
			return &MissingAttributeError{
				Product:   rec.Product,
				Log:       rec.Log,
				Field:     rec.Field,
				Attribute: StandardNameAttribute,
			}
		}
		rows = append(rows, SummaryRow{
			Product:      rec.Product,
			Log:          rec.Log,
			Field:        rec.Field,
			StandardName: standard,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
