package codec

import (
	"fmt"
	"io"

	"asetgraph/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports a dataset from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Dataset, error) {
	var dataset domain.Dataset
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&dataset); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validate(&dataset); err != nil {
		return nil, err
	}

	// Empty documents decode as nil maps
	for i := range dataset.Collections {
		for j, doc := range dataset.Collections[i].Documents {
			if doc == nil {
				dataset.Collections[i].Documents[j] = domain.Document{}
			}
		}
	}
	return &dataset, nil
}

// Export exports a dataset to YAML
func (c *YAMLCodec) Export(dataset *domain.Dataset, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(dataset); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
