package sqldb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"asetgraph/internal/domain"
	"asetgraph/internal/repository"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ============================================================================
// JSON Helpers
// ============================================================================

// marshalBody encodes the non-system part of a document.
// An empty body is stored as "{}" so the column stays NOT NULL.
func marshalBody(doc domain.Document) (string, error) {
	data, err := json.Marshal(doc.Body())
	if err != nil {
		return "", fmt.Errorf("marshal body: %w", err)
	}
	return string(data), nil
}

// ============================================================================
// Document Row Scanner
// ============================================================================

// docRow holds the columns of a collection query
type docRow struct {
	Key  string
	ID   string
	From sql.NullString
	To   sql.NullString
	Body sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match docColumns order exactly: _key, _id, _from, _to, body
func (r *docRow) scanArgs() []any {
	return []any{
		&r.Key,  // 1
		&r.ID,   // 2
		&r.From, // 3
		&r.To,   // 4
		&r.Body, // 5
	}
}

// toDomain rebuilds the document, restoring system fields from their columns
func (r *docRow) toDomain(t domain.CollectionType) (domain.Document, error) {
	doc := domain.Document{}
	if r.Body.Valid && r.Body.String != "" {
		if err := json.Unmarshal([]byte(r.Body.String), &doc); err != nil {
			return nil, fmt.Errorf("unmarshal body of %s: %w", r.ID, err)
		}
	}
	doc[domain.KeyField] = r.Key
	doc[domain.IDField] = r.ID
	if t == domain.CollectionTypeEdge {
		doc[domain.FromField] = nullToString(r.From)
		doc[domain.ToField] = nullToString(r.To)
	}
	return doc, nil
}

// docColumns returns the SELECT column list for collection queries
func docColumns(d dialect) string {
	return "_key, _id, _from, _to, " + d.selectBody()
}

// ============================================================================
// Selector Translation
// ============================================================================

// systemColumns are filter fields that address real columns instead of the body
var systemColumns = map[string]bool{
	domain.KeyField:  true,
	domain.IDField:   true,
	domain.FromField: true,
	domain.ToField:   true,
}

// buildWhere turns a selector into a WHERE clause with bound arguments.
// Field names and values are never interpolated into the SQL text.
func buildWhere(d dialect, sel repository.Selector) (string, []any, error) {
	if err := sel.Filters.Validate(); err != nil {
		return "", nil, err
	}

	var (
		conds []string
		args  []any
	)

	if sel.ID != "" {
		cond, a := d.idEquals(sel.ID)
		conds = append(conds, cond)
		args = append(args, a...)
	}

	for _, field := range sel.Filters.Fields() {
		value := sel.Filters[field]

		if systemColumns[field] {
			if value == nil {
				conds = append(conds, field+" IS NULL")
				continue
			}
			conds = append(conds, field+" = ?")
			args = append(args, fmt.Sprint(value))
			continue
		}

		if strings.ContainsAny(field, "\"\\") {
			return "", nil, fmt.Errorf("%w: unsupported field name %q", domain.ErrInvalidFilter, field)
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", domain.ErrInvalidFilter, err)
		}
		cond, a := d.fieldEquals(field, string(encoded))
		conds = append(conds, cond)
		args = append(args, a...)
	}

	if len(conds) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// quoteIdent quotes a validated collection name for use as a table identifier
func quoteIdent(name string) string {
	return `"` + name + `"`
}

// ============================================================================
// Raw Row Scanning
// ============================================================================

// scanRows converts arbitrary result rows to repository.Row values
func scanRows(rows *sql.Rows) ([]repository.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []repository.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(repository.Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
