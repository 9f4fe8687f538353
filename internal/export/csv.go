// Package export writes catalogs as flat CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/itsmostafa/ossemdict/internal/catalog"
)

// WriteCSV writes rows comma-delimited, quoting cells only where needed.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// WriteCatalogCSV writes one row per record: product, log, field, then the
// attribute values by descending attribute name.
func WriteCatalogCSV(w io.Writer, c *catalog.Catalog) error {
	return WriteCSV(w, c.FlatRows())
}

// WriteCatalogCSVFile writes the catalog's flat rows to path.
func WriteCatalogCSVFile(path string, c *catalog.Catalog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCatalogCSV(f, c); err != nil {
		return err
	}
	return f.Close()
}
