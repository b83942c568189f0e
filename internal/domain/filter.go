package domain

import (
	"fmt"
	"sort"
)

// Filter maps a field name to the value it must equal. All pairs must hold.
type Filter map[string]any

// Validate rejects filter values that are not flat scalars
func (f Filter) Validate() error {
	for field, v := range f {
		if field == "" {
			return fmt.Errorf("%w: empty field name", ErrInvalidFilter)
		}
		switch v.(type) {
		case nil, string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
		default:
			return fmt.Errorf("%w: field %q has non-scalar value %T", ErrInvalidFilter, field, v)
		}
	}
	return nil
}

// Fields returns the filter's field names in a stable order
func (f Filter) Fields() []string {
	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}
