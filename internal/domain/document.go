package domain

import (
	"fmt"
	"maps"
	"regexp"
	"time"
)

// System attribute names carried by every stored document
const (
	KeyField  = "_key"
	IDField   = "_id"
	FromField = "_from"
	ToField   = "_to"

	// DomainIDField is the optional caller-supplied identifier honored as an alternate lookup key
	DomainIDField = "id"

	CreatedAtField = "createdAt"
	UpdatedAtField = "updatedAt"
)

// TimestampLayout matches the millisecond ISO-8601 form used for createdAt/updatedAt
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// CollectionType is fixed when a collection is created and never changes afterwards
type CollectionType string

const (
	CollectionTypeDocument CollectionType = "document"
	CollectionTypeEdge     CollectionType = "edge"
)

// Valid reports whether t is a known collection type
func (t CollectionType) Valid() bool {
	return t == CollectionTypeDocument || t == CollectionTypeEdge
}

var collectionNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,63}$`)

// ValidateCollectionName rejects names that cannot be used as a table identifier.
// Identifiers are never bound parameters, so this check is the only gate.
func ValidateCollectionName(name string) error {
	if !collectionNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidCollectionName, name)
	}
	return nil
}

// Document is a schema-less record addressed by its storage key
type Document map[string]any

// Key returns the storage key, or "" if the document has not been stored
func (d Document) Key() string {
	return d.String(KeyField)
}

// ID returns the fully-qualified identifier (collection/key)
func (d Document) ID() string {
	return d.String(IDField)
}

// From returns the edge source endpoint
func (d Document) From() string {
	return d.String(FromField)
}

// To returns the edge target endpoint
func (d Document) To() string {
	return d.String(ToField)
}

// String returns the field as a string, or "" when absent or not a string
func (d Document) String(field string) string {
	if v, ok := d[field].(string); ok {
		return v
	}
	return ""
}

// StringPtr returns a pointer to the string field, nil when absent
func (d Document) StringPtr(field string) *string {
	v, ok := d[field].(string)
	if !ok {
		return nil
	}
	return &v
}

// Float returns a numeric field as float64
func (d Document) Float(field string) (float64, bool) {
	return ToFloat(d[field])
}

// Clone returns a shallow copy of the document
func (d Document) Clone() Document {
	if d == nil {
		return Document{}
	}
	return maps.Clone(d)
}

// Body returns the document without its system attributes
func (d Document) Body() Document {
	body := make(Document, len(d))
	for k, v := range d {
		switch k {
		case KeyField, IDField, FromField, ToField:
			continue
		}
		body[k] = v
	}
	return body
}

// Project reduces the document to the given fields. Absent fields are kept as nil
// so the projected shape is stable.
func (d Document) Project(fields ...string) Document {
	out := make(Document, len(fields))
	for _, f := range fields {
		out[f] = d[f]
	}
	return out
}

// Merge applies patch onto d. Nested objects are merged recursively, every other
// value replaces the existing one.
func (d Document) Merge(patch Document) Document {
	out := d.Clone()
	for k, v := range patch {
		if pm, ok := asMap(v); ok {
			if cur, ok := asMap(out[k]); ok {
				out[k] = map[string]any(Document(cur).Merge(pm))
				continue
			}
		}
		out[k] = v
	}
	return out
}

func asMap(v any) (Document, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return m, true
	}
	return nil, false
}

// Stamp sets createdAt and updatedAt to the same instant
func (d Document) Stamp(now time.Time) Document {
	out := d.Clone()
	ts := FormatTimestamp(now)
	out[CreatedAtField] = ts
	out[UpdatedAtField] = ts
	return out
}

// Touch refreshes updatedAt, leaving createdAt alone
func (d Document) Touch(now time.Time) Document {
	out := d.Clone()
	out[UpdatedAtField] = FormatTimestamp(now)
	return out
}

// FormatTimestamp renders t in UTC with millisecond precision
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ToFloat converts JSON/YAML numeric values to float64
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
