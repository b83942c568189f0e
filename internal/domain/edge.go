package domain

import (
	"fmt"
	"strings"
)

// Direction selects which endpoint of an edge a traversal starts from
type Direction string

const (
	// Outbound starts at _from and yields the _to side
	Outbound Direction = "outbound"
	// Inbound starts at _to and yields the _from side
	Inbound Direction = "inbound"
)

// NewEdgeDocument builds an edge document. Endpoints are used verbatim.
func NewEdgeDocument(fromID, toID string, data Document) Document {
	edge := make(Document, len(data)+2)
	edge[FromField] = fromID
	edge[ToField] = toID
	for k, v := range data {
		if k == FromField || k == ToField {
			continue
		}
		edge[k] = v
	}
	return edge
}

// QualifiedID joins a collection name and a storage key
func QualifiedID(collection, key string) string {
	return collection + "/" + key
}

// NormalizeID prefixes collection onto a bare key. Identifiers that already carry
// the collection prefix are returned unchanged.
func NormalizeID(collection, id string) string {
	if strings.HasPrefix(id, collection+"/") {
		return id
	}
	return QualifiedID(collection, id)
}

// SplitID splits a fully-qualified identifier into collection and key
func SplitID(id string) (collection, key string, err error) {
	collection, key, ok := strings.Cut(id, "/")
	if !ok || collection == "" || key == "" || strings.Contains(key, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return collection, key, nil
}

// ValidateEdge checks that both endpoints are fully-qualified identifiers
func ValidateEdge(doc Document) error {
	for _, field := range []string{FromField, ToField} {
		v, ok := doc[field].(string)
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidEdge, field)
		}
		if _, _, err := SplitID(v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidEdge, field, err)
		}
	}
	return nil
}
