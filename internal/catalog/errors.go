package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAttribute indicates a record without a required attribute
	ErrMissingAttribute = errors.New("catalog: missing attribute")

	// ErrSerialization indicates a catalog that could not be encoded or decoded
	ErrSerialization = errors.New("catalog: serialization failed")

	// ErrUnknownFilter indicates an unsupported filter kind
	ErrUnknownFilter = errors.New("catalog: unknown filter")
)

// MissingAttributeError identifies the record that lacks an attribute.
type MissingAttributeError struct {
	Product   string
	Log       string
	Field     string
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("catalog: %s/%s/%s has no %q attribute", e.Product, e.Log, e.Field, e.Attribute)
}

// Unwrap lets errors.Is match ErrMissingAttribute.
func (e *MissingAttributeError) Unwrap() error {
	return ErrMissingAttribute
}
