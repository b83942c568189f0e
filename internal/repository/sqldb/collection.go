package sqldb

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"asetgraph/internal/domain"
	"asetgraph/internal/repository"
)

// collection implements repository.Collection over one table
type collection struct {
	s    *DB
	name string
	typ  domain.CollectionType
}

func (c *collection) Name() string                { return c.name }
func (c *collection) Type() domain.CollectionType { return c.typ }

func (c *collection) table() string {
	return quoteIdent(c.name)
}

// Insert stores doc. A caller-supplied _key is kept, otherwise one is generated.
func (c *collection) Insert(ctx context.Context, doc domain.Document) (domain.Document, error) {
	key := doc.Key()
	if key == "" {
		key = uuid.NewString()
	}
	if strings.Contains(key, "/") {
		return nil, fmt.Errorf("%w: key %q", domain.ErrInvalidID, key)
	}

	var from, to string
	if c.typ == domain.CollectionTypeEdge {
		if err := domain.ValidateEdge(doc); err != nil {
			return nil, err
		}
		from, to = doc.From(), doc.To()
	}

	body, err := marshalBody(doc)
	if err != nil {
		return nil, err
	}

	id := domain.QualifiedID(c.name, key)
	q := fmt.Sprintf(`INSERT INTO %s (_key, _id, _from, _to, body) VALUES (?, ?, ?, ?, %s)`,
		c.table(), c.s.dialect.bodyParam())
	if _, err := c.s.db.ExecContext(ctx, c.s.dialect.rebind(q), key, id, stringToNull(from), stringToNull(to), body); err != nil {
		return nil, domain.NewStorageError("insert into", c.name, err)
	}

	row := docRow{Key: key, ID: id, From: stringToNull(from), To: stringToNull(to)}
	row.Body.String, row.Body.Valid = body, true
	return row.toDomain(c.typ)
}

// Find returns matches in insertion order
func (c *collection) Find(ctx context.Context, sel repository.Selector) ([]domain.Document, error) {
	if err := sel.Filters.Validate(); err != nil {
		return nil, err
	}
	docs, err := c.find(ctx, c.s.db, sel)
	if err != nil {
		return nil, domain.NewStorageError("find in", c.name, err)
	}
	return docs, nil
}

func (c *collection) find(ctx context.Context, q querier, sel repository.Selector) ([]domain.Document, error) {
	where, args, err := buildWhere(c.s.dialect, sel)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY _seq`, docColumns(c.s.dialect), c.table(), where)
	if sel.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", sel.Limit)
	}

	rows, err := q.QueryContext(ctx, c.s.dialect.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var r docRow
		if err := rows.Scan(r.scanArgs()...); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc, err := r.toDomain(c.typ)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Update merges patch into every match. _key and _id are immutable; edge
// endpoints may be moved when the patch carries valid _from/_to values.
func (c *collection) Update(ctx context.Context, sel repository.Selector, patch domain.Document) ([]domain.Document, error) {
	tx, err := c.s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.NewStorageError("update", c.name, err)
	}
	defer tx.Rollback()

	matches, err := c.find(ctx, tx, sel)
	if err != nil {
		return nil, domain.NewStorageError("update", c.name, err)
	}

	q := fmt.Sprintf(`UPDATE %s SET _from = ?, _to = ?, body = %s WHERE _key = ?`,
		c.table(), c.s.dialect.bodyParam())
	q = c.s.dialect.rebind(q)

	updated := make([]domain.Document, 0, len(matches))
	for _, old := range matches {
		next := old.Body().Merge(patch.Body())
		if c.typ == domain.CollectionTypeEdge {
			next[domain.FromField] = old.From()
			next[domain.ToField] = old.To()
			if v, ok := patch[domain.FromField]; ok {
				next[domain.FromField] = v
			}
			if v, ok := patch[domain.ToField]; ok {
				next[domain.ToField] = v
			}
			if err := domain.ValidateEdge(next); err != nil {
				return nil, err
			}
		}

		body, err := marshalBody(next)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, q, stringToNull(next.From()), stringToNull(next.To()), body, old.Key()); err != nil {
			return nil, domain.NewStorageError("update", c.name, err)
		}

		row := docRow{Key: old.Key(), ID: old.ID(), From: stringToNull(next.From()), To: stringToNull(next.To())}
		row.Body.String, row.Body.Valid = body, true
		doc, err := row.toDomain(c.typ)
		if err != nil {
			return nil, err
		}
		updated = append(updated, doc)
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.NewStorageError("update", c.name, err)
	}
	return updated, nil
}

// Remove deletes every match and returns the documents as they were
func (c *collection) Remove(ctx context.Context, sel repository.Selector) ([]domain.Document, error) {
	tx, err := c.s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.NewStorageError("remove from", c.name, err)
	}
	defer tx.Rollback()

	matches, err := c.find(ctx, tx, sel)
	if err != nil {
		return nil, domain.NewStorageError("remove from", c.name, err)
	}

	q := c.s.dialect.rebind(fmt.Sprintf(`DELETE FROM %s WHERE _key = ?`, c.table()))
	for _, old := range matches {
		if _, err := tx.ExecContext(ctx, q, old.Key()); err != nil {
			return nil, domain.NewStorageError("remove from", c.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.NewStorageError("remove from", c.name, err)
	}
	return matches, nil
}

// Count returns the number of stored documents
func (c *collection) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+c.table()).Scan(&n); err != nil {
		return 0, domain.NewStorageError("count", c.name, err)
	}
	return n, nil
}

// Truncate removes every document, keeping the collection
func (c *collection) Truncate(ctx context.Context) error {
	if _, err := c.s.db.ExecContext(ctx, `DELETE FROM `+c.table()); err != nil {
		return domain.NewStorageError("truncate", c.name, err)
	}
	return nil
}
