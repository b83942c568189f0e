package datasource

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"asetgraph/internal/domain"
	"asetgraph/internal/metrics"
	"asetgraph/internal/repository"
)

// Base is a generic datasource over exactly one bound collection
type Base struct {
	connector      Connector
	collectionName string
	collectionType domain.CollectionType
	timestamps     bool
	hooks          Hooks
	clock          func() time.Time
	logger         *zap.SugaredLogger
	publisher      Publisher

	mu          sync.Mutex
	db          repository.Database
	collections map[string]repository.Collection
	creating    singleflight.Group
}

// NewBase creates a document datasource. Nothing is opened until first use.
func NewBase(connector Connector, opts ...Option) *Base {
	b := &Base{
		connector:      connector,
		collectionType: domain.CollectionTypeDocument,
		timestamps:     true,
		clock:          time.Now,
		logger:         zap.NewNop().Sugar(),
		collections:    make(map[string]repository.Collection),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CollectionName returns the bound collection, "" when unbound
func (b *Base) CollectionName() string {
	return b.collectionName
}

// CollectionType returns the type used when creating missing collections
func (b *Base) CollectionType() domain.CollectionType {
	return b.collectionType
}

// ============================================================================
// Connection Manager
// ============================================================================

func (b *Base) connection(ctx context.Context) (repository.Database, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db != nil {
		return b.db, nil
	}
	if b.connector == nil {
		return nil, errors.New("datasource has no connector")
	}
	db, err := b.connector.Connect(ctx)
	if err != nil {
		return nil, domain.NewStorageError("connect", b.collectionName, err)
	}
	b.db = db
	return db, nil
}

// Initialize connects if needed and, when a collection is bound, ensures it exists.
// Safe to call repeatedly.
func (b *Base) Initialize(ctx context.Context) (repository.Database, error) {
	db, err := b.connection(ctx)
	if err != nil {
		b.logger.Errorw("Failed to connect to the database", "error", err)
		return nil, err
	}
	if b.collectionName != "" {
		if _, err := b.GetCollection(ctx, b.collectionName); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Disconnect drops the connection handle and the collection cache. The shared
// pool itself belongs to the Connector.
func (b *Base) Disconnect() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.db = nil
	clear(b.collections)
}

// ============================================================================
// Collection Registry
// ============================================================================

// GetCollection returns the cached handle for name, creating the collection with
// this datasource's type on first use. Concurrent first calls share one
// check-and-create round trip.
func (b *Base) GetCollection(ctx context.Context, name string) (repository.Collection, error) {
	if coll := b.cached(name); coll != nil {
		return coll, nil
	}

	db, err := b.connection(ctx)
	if err != nil {
		return nil, err
	}

	// the shared call outlives any single caller's cancellation
	shared := context.WithoutCancel(ctx)
	v, err, _ := b.creating.Do(name, func() (any, error) {
		if coll := b.cached(name); coll != nil {
			return coll, nil
		}
		return b.ensureCollection(shared, db, name)
	})
	if err != nil {
		return nil, err
	}
	return v.(repository.Collection), nil
}

func (b *Base) cached(name string) repository.Collection {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.collections[name]
}

func (b *Base) ensureCollection(ctx context.Context, db repository.Database, name string) (repository.Collection, error) {
	exists, err := db.CollectionExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := db.CreateCollection(ctx, name, b.collectionType); err != nil {
			return nil, err
		}
		b.logger.Infow(fmt.Sprintf("Created %s collection", b.collectionType), "collection", name)
		metrics.RecordCollectionCreated(name, string(b.collectionType))
	}

	coll, err := db.Collection(ctx, name)
	if err != nil {
		return nil, err
	}
	if coll.Type() != b.collectionType {
		return nil, fmt.Errorf("%w: %s is %s, datasource expects %s",
			domain.ErrCollectionTypeMismatch, name, coll.Type(), b.collectionType)
	}

	b.mu.Lock()
	b.collections[name] = coll
	b.mu.Unlock()
	return coll, nil
}

// ============================================================================
// CRUD
// ============================================================================

// Create inserts data through the create hooks
func (b *Base) Create(ctx context.Context, data domain.Document) (domain.OperationResult, error) {
	if b.collectionName == "" {
		return domain.OperationResult{}, domain.ErrConfiguration
	}
	start := time.Now()

	created, err := b.insert(ctx, data)
	if err != nil {
		b.logger.Errorw("Error creating document", "collection", b.collectionName, "error", err)
		return b.observe("create", start, domain.Failed("Failed to create document: %v", err)), nil
	}

	b.publish(domain.EventDocumentCreated, created)
	return b.observe("create", start, domain.Succeeded("Successfully created document in %s", b.collectionName)), nil
}

// insert runs the create pipeline and returns the stored document
func (b *Base) insert(ctx context.Context, data domain.Document) (domain.Document, error) {
	coll, err := b.GetCollection(ctx, b.collectionName)
	if err != nil {
		return nil, err
	}
	doc, err := b.beforeCreate(ctx, data)
	if err != nil {
		return nil, err
	}
	created, err := coll.Insert(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := b.afterCreate(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// FindAll returns every document matching all filter pairs
func (b *Base) FindAll(ctx context.Context, filters domain.Filter) ([]domain.Document, error) {
	return b.find(ctx, "find_all", repository.Selector{Filters: filters})
}

// FindByID returns the first document whose _key or id equals id, nil when none
func (b *Base) FindByID(ctx context.Context, id string) (domain.Document, error) {
	docs, err := b.find(ctx, "find_by_id", repository.Selector{ID: id, Limit: 1})
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return docs[0], nil
}

func (b *Base) find(ctx context.Context, op string, sel repository.Selector) ([]domain.Document, error) {
	if b.collectionName == "" {
		return nil, domain.ErrConfiguration
	}
	start := time.Now()

	coll, err := b.GetCollection(ctx, b.collectionName)
	if err != nil {
		metrics.RecordDatasourceOperation(b.collectionName, op, metrics.OutcomeError, time.Since(start))
		return nil, err
	}
	docs, err := coll.Find(ctx, sel)
	if err != nil {
		b.logger.Errorw("Error fetching documents", "collection", b.collectionName, "error", err)
		metrics.RecordDatasourceOperation(b.collectionName, op, metrics.OutcomeError, time.Since(start))
		return nil, err
	}
	metrics.RecordDatasourceOperation(b.collectionName, op, metrics.OutcomeSuccess, time.Since(start))
	return docs, nil
}

// Update merges data into the documents matched by _key or id
func (b *Base) Update(ctx context.Context, id string, data domain.Document) (domain.OperationResult, error) {
	if b.collectionName == "" {
		return domain.OperationResult{}, domain.ErrConfiguration
	}
	start := time.Now()

	updated, err := b.update(ctx, id, data)
	if errors.Is(err, domain.ErrNotFound) {
		b.logger.Debugw("Update matched nothing", "collection", b.collectionName, "id", id)
		return b.observe("update", start, domain.Failed("Document with ID %s not found in %s", id, b.collectionName)), nil
	}
	if err != nil {
		b.logger.Errorw("Error updating document", "collection", b.collectionName, "id", id, "error", err)
		return b.observe("update", start, domain.Failed("Failed to update document: %v", err)), nil
	}

	for _, doc := range updated {
		b.publish(domain.EventDocumentUpdated, doc)
	}
	return b.observe("update", start, domain.Succeeded("Successfully updated document with ID %s in %s", id, b.collectionName)), nil
}

func (b *Base) update(ctx context.Context, id string, data domain.Document) ([]domain.Document, error) {
	coll, err := b.GetCollection(ctx, b.collectionName)
	if err != nil {
		return nil, err
	}
	patch, err := b.beforeUpdate(ctx, id, data)
	if err != nil {
		return nil, err
	}
	updated, err := coll.Update(ctx, repository.Selector{ID: id}, patch)
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, b.notFound(id)
	}
	for _, doc := range updated {
		if err := b.afterUpdate(ctx, doc); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// Delete removes the documents matched by _key or id
func (b *Base) Delete(ctx context.Context, id string) (domain.OperationResult, error) {
	if b.collectionName == "" {
		return domain.OperationResult{}, domain.ErrConfiguration
	}
	start := time.Now()

	removed, err := b.remove(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		b.logger.Debugw("Delete matched nothing", "collection", b.collectionName, "id", id)
		return b.observe("delete", start, domain.Failed("Document with ID %s not found in %s", id, b.collectionName)), nil
	}
	if err != nil {
		b.logger.Errorw("Error deleting document", "collection", b.collectionName, "id", id, "error", err)
		return b.observe("delete", start, domain.Failed("Failed to delete document: %v", err)), nil
	}

	for _, doc := range removed {
		b.publish(domain.EventDocumentDeleted, doc)
	}
	return b.observe("delete", start, domain.Succeeded("Successfully deleted document with ID %s from %s", id, b.collectionName)), nil
}

func (b *Base) remove(ctx context.Context, id string) ([]domain.Document, error) {
	coll, err := b.GetCollection(ctx, b.collectionName)
	if err != nil {
		return nil, err
	}
	id, err = b.beforeDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	removed, err := coll.Remove(ctx, repository.Selector{ID: id})
	if err != nil {
		return nil, err
	}
	if err := b.afterDelete(ctx, len(removed) > 0); err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, b.notFound(id)
	}
	return removed, nil
}

func (b *Base) notFound(id string) error {
	return fmt.Errorf("%w: document %s in %s", domain.ErrNotFound, id, b.collectionName)
}

// Query runs a raw parameterized statement. Bypasses hooks and the bound collection.
func (b *Base) Query(ctx context.Context, raw string, args ...any) ([]repository.Row, error) {
	db, err := b.connection(ctx)
	if err != nil {
		return nil, err
	}
	return db.Query(ctx, raw, args...)
}

// ============================================================================
// Helpers
// ============================================================================

func (b *Base) observe(op string, start time.Time, res domain.OperationResult) domain.OperationResult {
	metrics.RecordDatasourceOperation(b.collectionName, op, metrics.Outcome(res.Success), time.Since(start))
	return res
}

func (b *Base) publish(t domain.EventType, doc domain.Document) {
	if b.publisher == nil {
		return
	}
	b.publisher.Publish(domain.Event{
		Type:       t,
		Collection: b.collectionName,
		Key:        doc.Key(),
		Payload:    doc,
	})
}
