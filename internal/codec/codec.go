package codec

import (
	"fmt"
	"io"
	"strings"

	"asetgraph/internal/domain"
)

// Importer interface for importing datasets from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Dataset, error)
	Format() string
}

// Exporter interface for exporting datasets to various formats
type Exporter interface {
	Export(dataset *domain.Dataset, w io.Writer) error
	Format() string
}

// Codec both imports and exports
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec for a format name ("json", "yaml" or "yml")
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// ForPath picks a codec from a file extension, defaulting to JSON
func ForPath(path string) Codec {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return NewYAMLCodec()
	}
	return NewJSONCodec()
}

func validate(dataset *domain.Dataset) error {
	for _, c := range dataset.Collections {
		if err := domain.ValidateCollectionName(c.Name); err != nil {
			return err
		}
		if !c.Type.Valid() {
			return fmt.Errorf("collection %s: unknown type %q", c.Name, c.Type)
		}
	}
	return nil
}
