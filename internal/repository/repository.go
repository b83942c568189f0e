package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"asetgraph/internal/domain"
)

// Row is one result row of a raw query, keyed by column name
type Row map[string]any

// Selector narrows a collection operation
type Selector struct {
	// ID matches the storage key OR the domain id field; empty means no id constraint
	ID string
	// Filters are ANDed equality predicates; _key, _id, _from and _to address columns
	Filters domain.Filter
	// Limit caps the number of matched documents; zero means unlimited
	Limit int
}

// Database is a live handle to the document/edge store
type Database interface {
	// Name returns the target database name
	Name() string

	// Collection catalog
	CollectionExists(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, name string, t domain.CollectionType) error
	Collection(ctx context.Context, name string) (Collection, error)
	Collections(ctx context.Context) (map[string]domain.CollectionType, error)

	// Raw access; ? placeholders are rebound for the active dialect
	Query(ctx context.Context, raw string, args ...any) ([]Row, error)
	Exec(ctx context.Context, raw string, args ...any) (int64, error)

	// Close releases resources
	Close() error
}

// Collection is a handle to one document- or edge-typed collection
type Collection interface {
	Name() string
	Type() domain.CollectionType

	// Insert stores doc and returns it with _key and _id populated
	Insert(ctx context.Context, doc domain.Document) (domain.Document, error)
	// Find returns the matching documents
	Find(ctx context.Context, sel Selector) ([]domain.Document, error)
	// Update merges patch into every match and returns the new documents
	Update(ctx context.Context, sel Selector, patch domain.Document) ([]domain.Document, error)
	// Remove deletes every match and returns the old documents
	Remove(ctx context.Context, sel Selector) ([]domain.Document, error)

	Count(ctx context.Context) (int, error)
	Truncate(ctx context.Context) error
}

// DecodeDocument converts a JSON column value from a raw query into a document.
// Drivers hand back JSON as text, bytes or an already-decoded map.
func DecodeDocument(v any) (domain.Document, error) {
	var raw []byte
	switch b := v.(type) {
	case nil:
		return nil, nil
	case domain.Document:
		return b, nil
	case map[string]any:
		return b, nil
	case []byte:
		raw = b
	case string:
		raw = []byte(b)
	default:
		return nil, fmt.Errorf("unexpected JSON column type %T", v)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	doc := domain.Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// String returns a column as a string, "" when NULL
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
