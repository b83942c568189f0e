package datasource

import (
	"context"
	"time"

	"asetgraph/internal/domain"
)

// Edge is a datasource over an edge-typed collection.
//
// It adds no edge-specific update or delete. The embedded Base still exposes
// Update and Delete, which address an edge by its own _key like any document;
// relations remove edges by endpoint pair instead (see service.Relation).
type Edge struct {
	*Base
}

// NewEdge creates an edge datasource; the collection type is always edge
func NewEdge(connector Connector, opts ...Option) *Edge {
	opts = append(opts, WithCollectionType(domain.CollectionTypeEdge))
	return &Edge{Base: NewBase(connector, opts...)}
}

// CreateEdge stores {_from, _to, ...data} through the create hooks. Endpoints are
// used as given; callers pass fully-qualified identifiers.
func (e *Edge) CreateEdge(ctx context.Context, fromID, toID string, data domain.Document) (domain.Document, error) {
	if e.collectionName == "" {
		return nil, domain.ErrConfiguration
	}
	start := time.Now()

	edge := domain.NewEdgeDocument(fromID, toID, data)
	if err := domain.ValidateEdge(edge); err != nil {
		e.observe("create_edge", start, domain.OperationResult{})
		return nil, err
	}

	created, err := e.insert(ctx, edge)
	if err != nil {
		e.logger.Errorw("Error creating edge", "collection", e.collectionName, "from", fromID, "to", toID, "error", err)
		e.observe("create_edge", start, domain.OperationResult{})
		return nil, err
	}
	e.observe("create_edge", start, domain.OperationResult{Success: true})
	return created, nil
}

// FindOutbound returns every edge leaving fromID
func (e *Edge) FindOutbound(ctx context.Context, fromID string) ([]domain.Document, error) {
	return e.FindAll(ctx, domain.Filter{domain.FromField: fromID})
}

// FindInbound returns every edge arriving at toID
func (e *Edge) FindInbound(ctx context.Context, toID string) ([]domain.Document, error) {
	return e.FindAll(ctx, domain.Filter{domain.ToField: toID})
}
