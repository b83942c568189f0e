package datasource

import (
	"context"

	"asetgraph/internal/domain"
	"asetgraph/internal/repository"
)

// Connector opens the shared store. sqldb.Connector implements it.
type Connector interface {
	Connect(ctx context.Context) (repository.Database, error)
}

// Publisher receives change events after successful writes
type Publisher interface {
	Publish(event domain.Event)
}

// DocumentStore is the capability set of a document datasource
type DocumentStore interface {
	CollectionName() string
	CollectionType() domain.CollectionType

	Initialize(ctx context.Context) (repository.Database, error)
	GetCollection(ctx context.Context, name string) (repository.Collection, error)
	Disconnect()

	Create(ctx context.Context, data domain.Document) (domain.OperationResult, error)
	FindAll(ctx context.Context, filters domain.Filter) ([]domain.Document, error)
	FindByID(ctx context.Context, id string) (domain.Document, error)
	Update(ctx context.Context, id string, data domain.Document) (domain.OperationResult, error)
	Delete(ctx context.Context, id string) (domain.OperationResult, error)
	Query(ctx context.Context, raw string, args ...any) ([]repository.Row, error)
}

// EdgeStore adds directed edge operations to DocumentStore
type EdgeStore interface {
	DocumentStore

	CreateEdge(ctx context.Context, fromID, toID string, data domain.Document) (domain.Document, error)
	FindOutbound(ctx context.Context, fromID string) ([]domain.Document, error)
	FindInbound(ctx context.Context, toID string) ([]domain.Document, error)
}

var (
	_ DocumentStore = (*Base)(nil)
	_ EdgeStore     = (*Edge)(nil)
)
