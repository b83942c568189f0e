package sqldb

import (
	"fmt"
	"strconv"
	"strings"
)

// dialect isolates the SQL that differs between SQLite and PostgreSQL.
// Everything else (identifier quoting, ON CONFLICT, LIMIT, ||) is shared.
type dialect interface {
	driverName() string
	// rebind rewrites ? placeholders into the driver's native form
	rebind(query string) string
	// seqColumn declares the monotonically increasing insertion-order column
	seqColumn() string
	bodyType() string
	// bodyParam wraps the placeholder that binds a JSON body
	bodyParam() string
	// selectBody reads the body column back as JSON text
	selectBody() string
	// fieldEquals compares a top-level body field with a JSON-encoded scalar
	fieldEquals(field, valueJSON string) (string, []any)
	// idEquals matches the storage key or the domain id field
	idEquals(id string) (string, []any)
}

// ============================================================================
// SQLite
// ============================================================================

type sqliteDialect struct{}

func (sqliteDialect) driverName() string { return "sqlite" }

func (sqliteDialect) rebind(query string) string { return query }

func (sqliteDialect) seqColumn() string { return "_seq INTEGER PRIMARY KEY AUTOINCREMENT" }

func (sqliteDialect) bodyType() string { return "TEXT" }

func (sqliteDialect) bodyParam() string { return "?" }

func (sqliteDialect) selectBody() string { return "body" }

// json_extract keeps strings as TEXT, so IS is null-safe and never equates 5 with
// "5". It also maps true/false to 1/0, so the boolean class is compared separately.
func (sqliteDialect) fieldEquals(field, valueJSON string) (string, []any) {
	path := jsonPath(field)
	return "(json_extract(body, ?) IS json_extract(?, '$')" +
			" AND (COALESCE(json_type(body, ?), 'null') IN ('true', 'false')) = (json_type(?, '$') IN ('true', 'false')))",
		[]any{path, valueJSON, path, valueJSON}
}

func (sqliteDialect) idEquals(id string) (string, []any) {
	return `(_key = ? OR json_extract(body, '$."id"') = ?)`, []any{id, id}
}

func jsonPath(field string) string {
	return `$."` + field + `"`
}

// ============================================================================
// PostgreSQL
// ============================================================================

type postgresDialect struct{}

func (postgresDialect) driverName() string { return "pgx" }

// rebind replaces ? with $1..$n, skipping quoted literals and identifiers
func (postgresDialect) rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	var quote byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func (postgresDialect) seqColumn() string { return "_seq BIGSERIAL PRIMARY KEY" }

func (postgresDialect) bodyType() string { return "JSONB" }

func (postgresDialect) bodyParam() string { return "CAST(? AS JSONB)" }

func (postgresDialect) selectBody() string { return "body::text" }

func (postgresDialect) fieldEquals(field, valueJSON string) (string, []any) {
	return "COALESCE(body -> CAST(? AS TEXT), 'null'::jsonb) = CAST(? AS JSONB)", []any{field, valueJSON}
}

func (postgresDialect) idEquals(id string) (string, []any) {
	return "(_key = ? OR body -> 'id' = to_jsonb(CAST(? AS TEXT)))", []any{id, id}
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverSQLite, "":
		return sqliteDialect{}, nil
	case DriverPostgres:
		return postgresDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}
