package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// MarshalJSON encodes the catalog as nested objects keyed by product, log
// and field, keeping insertion order on every level.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	for i, productName := range c.products.keys {
		p := c.products.items[productName]
		writeKey(&buf, i, productName)

		buf.WriteByte('{')
		for j, log := range p.logs.keys {
			fields := p.logs.items[log]
			writeKey(&buf, j, log)

			buf.WriteByte('{')
			for k, field := range fields.fields.keys {
				attrs := fields.fields.items[field]
				writeKey(&buf, k, field)

				buf.WriteByte('{')
				for l, name := range attrs.attrs.keys {
					writeKey(&buf, l, name)
					writeString(&buf, attrs.attrs.items[name])
				}
				buf.WriteByte('}')
			}
			buf.WriteByte('}')
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, idx int, key string) {
	if idx > 0 {
		buf.WriteByte(',')
	}
	writeString(buf, key)
	buf.WriteByte(':')
}

func writeString(buf *bytes.Buffer, s string) {
	// Marshalling a string cannot fail.
	b, _ := json.Marshal(s)
	buf.Write(b)
}

// UnmarshalJSON decodes the nested object form produced by MarshalJSON.
// Object key order becomes insertion order. The receiver is left untouched
// when decoding fails.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	out := New()

	err := decodeObject(dec, func(productName string) error {
		out.products.getOrCreate(productName, func() *product { return &product{} })

		return decodeObject(dec, func(log string) error {
			fields := NewFields()
			err := decodeObject(dec, func(field string) error {
				var attrs AttributeSet
				err := decodeObject(dec, func(name string) error {
					value, err := decodeString(dec)
					if err != nil {
						return fmt.Errorf("%s/%s/%s/%s: %w", productName, log, field, name, err)
					}
					attrs.Set(name, value)
					return nil
				})
				if err != nil {
					return err
				}
				fields.Set(field, attrs)
				return nil
			})
			if err != nil {
				return err
			}
			out.Register(productName, log, fields)
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after catalog", ErrSerialization)
	}

	*c = *out
	return nil
}

// decodeObject reads one JSON object, calling fn after each key so fn can
// consume the value.
func decodeObject(dec *json.Decoder, fn func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key); err != nil {
			return err
		}
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func decodeString(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string value, got %v", tok)
	}
	return s, nil
}

// Print writes the catalog as indented JSON.
func (c *Catalog) Print(w io.Writer) error {
	data, err := c.indented()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (c *Catalog) indented() ([]byte, error) {
	raw, err := c.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Save writes the catalog to path as indented JSON.
func Save(c *Catalog, path string) error {
	data, err := c.indented()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

// Load reads a catalog written by Save. No catalog is returned on error.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	c := New()
	if err := c.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return c, nil
}
