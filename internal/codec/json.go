package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"asetgraph/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a dataset from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Dataset, error) {
	var dataset domain.Dataset
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&dataset); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if err := validate(&dataset); err != nil {
		return nil, err
	}
	return &dataset, nil
}

// Export exports a dataset to JSON
func (c *JSONCodec) Export(dataset *domain.Dataset, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(dataset); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
