package scrape

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// UnknownProduct is used when no product can be read from a document path.
const UnknownProduct = "unknown"

var (
	// ErrSourceNotFound indicates a missing scrape root
	ErrSourceNotFound = errors.New("scrape: source not found")

	// productPattern captures the directory that holds a markdown file,
	// e.g. "sysmon" in ".../windows/sysmon/ProcessCreate.md".
	productPattern = regexp.MustCompile(`(?:^|[\\/])([^\\/\s]+)[\\/][^\\/\s]+\.md$`)
)

// ProductFromPath returns the product a document belongs to, or
// UnknownProduct when the path does not match.
func ProductFromPath(path string) string {
	if m := productPattern.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	return UnknownProduct
}

// LogFromPath returns the document base name without its extension.
func LogFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Documents lists the markdown documents to scrape. A root that is itself
// a .md file yields just that file; a directory yields every .md file
// below it in lexical order.
func Documents(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, root)
		}
		return nil, err
	}

	if !info.IsDir() {
		if filepath.Ext(root) == ".md" {
			return []string{root}, nil
		}
		return nil, nil
	}

	var docs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".md" {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return docs, nil
}
