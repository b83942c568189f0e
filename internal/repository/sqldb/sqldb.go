package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"asetgraph/internal/domain"
	"asetgraph/internal/repository"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// MemoryURL selects a private in-memory SQLite database
const MemoryURL = ":memory:"

// catalogTable records every collection and its immutable type
const catalogTable = "_collections"

// Config addresses one database
type Config struct {
	Driver   string
	URL      string
	Username string
	Password string
	Name     string
}

// DSN builds the driver-specific data source name
func (c Config) DSN() (string, error) {
	switch c.Driver {
	case DriverSQLite, "":
		if c.URL == MemoryURL {
			return MemoryURL, nil
		}
		dir := strings.TrimPrefix(c.URL, "file:")
		if dir == "" {
			dir = "."
		}
		name := c.Name
		if name == "" {
			name = "asetgraph"
		}
		path := filepath.Join(dir, name+".db")
		return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil

	case DriverPostgres:
		u, err := url.Parse(c.URL)
		if err != nil {
			return "", fmt.Errorf("parse database url: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return "", fmt.Errorf("database url %q must be postgres://host:port", c.URL)
		}
		if c.Username != "" {
			u.User = url.UserPassword(c.Username, c.Password)
		}
		if c.Name != "" {
			u.Path = "/" + c.Name
		}
		return u.String(), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", c.Driver)
}

// DB implements repository.Database on database/sql
type DB struct {
	db      *sql.DB
	dialect dialect
	name    string
}

var _ repository.Database = (*DB)(nil)

// Open connects to the configured database and ensures the catalog exists
func Open(ctx context.Context, cfg Config) (*DB, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	if (cfg.Driver == DriverSQLite || cfg.Driver == "") && cfg.URL != MemoryURL {
		dir := filepath.Dir(strings.TrimPrefix(strings.SplitN(dsn, "?", 2)[0], "file:"))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every :memory: connection is a separate database
	if cfg.URL == MemoryURL {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &DB{db: db, dialect: d, name: cfg.Name}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *DB) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+catalogTable+` (
		name TEXT PRIMARY KEY,
		type TEXT NOT NULL
	)`)
	return err
}

// Name returns the target database name
func (s *DB) Name() string {
	return s.name
}

// Close releases the connection pool
func (s *DB) Close() error {
	return s.db.Close()
}

// ============================================================================
// Collection Catalog
// ============================================================================

func (s *DB) lookupType(ctx context.Context, q querier, name string) (domain.CollectionType, bool, error) {
	var t string
	err := q.QueryRowContext(ctx, s.dialect.rebind(`SELECT type FROM `+catalogTable+` WHERE name = ?`), name).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return domain.CollectionType(t), true, nil
}

// CollectionExists reports whether name is in the catalog
func (s *DB) CollectionExists(ctx context.Context, name string) (bool, error) {
	if err := domain.ValidateCollectionName(name); err != nil {
		return false, err
	}
	_, ok, err := s.lookupType(ctx, s.db, name)
	if err != nil {
		return false, domain.NewStorageError("lookup collection", name, err)
	}
	return ok, nil
}

// CreateCollection creates the backing table and registers its type. Creating an
// existing collection with the same type is a no-op, so concurrent callers are safe.
func (s *DB) CreateCollection(ctx context.Context, name string, t domain.CollectionType) error {
	if err := domain.ValidateCollectionName(name); err != nil {
		return err
	}
	if !t.Valid() {
		return fmt.Errorf("unknown collection type %q", t)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("create collection", name, err)
	}
	defer tx.Rollback()

	table := quoteIdent(name)
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			%s,
			_key TEXT NOT NULL UNIQUE,
			_id TEXT NOT NULL UNIQUE,
			_from TEXT,
			_to TEXT,
			body %s NOT NULL
		)`, table, s.dialect.seqColumn(), s.dialect.bodyType()),
	}
	if t == domain.CollectionTypeEdge {
		stmts = append(stmts,
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s(_from)`, quoteIdent("idx_"+name+"_from"), table),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s(_to)`, quoteIdent("idx_"+name+"_to"), table),
		)
	}
	stmts = append(stmts, `INSERT INTO `+catalogTable+` (name, type) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`)

	for i, stmt := range stmts {
		var args []any
		if i == len(stmts)-1 {
			args = []any{name, string(t)}
		}
		if _, err := tx.ExecContext(ctx, s.dialect.rebind(stmt), args...); err != nil {
			return domain.NewStorageError("create collection", name, err)
		}
	}

	existing, _, err := s.lookupType(ctx, tx, name)
	if err != nil {
		return domain.NewStorageError("create collection", name, err)
	}
	if existing != t {
		return fmt.Errorf("%w: %s is %s, not %s", domain.ErrCollectionTypeMismatch, name, existing, t)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("create collection", name, err)
	}
	return nil
}

// Collection returns a handle to an existing collection
func (s *DB) Collection(ctx context.Context, name string) (repository.Collection, error) {
	if err := domain.ValidateCollectionName(name); err != nil {
		return nil, err
	}
	t, ok, err := s.lookupType(ctx, s.db, name)
	if err != nil {
		return nil, domain.NewStorageError("open collection", name, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	return &collection{s: s, name: name, typ: t}, nil
}

// Collections lists the catalog
func (s *DB) Collections(ctx context.Context) (map[string]domain.CollectionType, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, type FROM `+catalogTable+` ORDER BY name`)
	if err != nil {
		return nil, domain.NewStorageError("list collections", "", err)
	}
	defer rows.Close()

	out := make(map[string]domain.CollectionType)
	for rows.Next() {
		var name, t string
		if err := rows.Scan(&name, &t); err != nil {
			return nil, domain.NewStorageError("list collections", "", err)
		}
		out[name] = domain.CollectionType(t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list collections", "", err)
	}
	return out, nil
}

// ============================================================================
// Raw Access
// ============================================================================

// Query runs a parameterized statement and returns every row
func (s *DB) Query(ctx context.Context, raw string, args ...any) ([]repository.Row, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(raw), args...)
	if err != nil {
		return nil, domain.NewStorageError("query", "", err)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, domain.NewStorageError("query", "", err)
	}
	return out, nil
}

// Exec runs a parameterized statement and reports the affected row count
func (s *DB) Exec(ctx context.Context, raw string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(raw), args...)
	if err != nil {
		return 0, domain.NewStorageError("exec", "", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// querier is satisfied by *sql.DB and *sql.Tx
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
