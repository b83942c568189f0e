package service

import (
	"context"
	"fmt"
	"io"

	"asetgraph/internal/codec"
	"asetgraph/internal/domain"
	"asetgraph/internal/repository"
)

// Import strategies
const (
	StrategyMerge   = "merge"
	StrategyReplace = "replace"
)

// ImportResult contains the result of an import operation
type ImportResult struct {
	DocumentsCreated int    `json:"documents_created"`
	DocumentsUpdated int    `json:"documents_updated"`
	Collections      int    `json:"collections"`
	Strategy         string `json:"strategy"`
}

// ArchiveService exports and imports whole datasets. Documents are written
// straight to their collections so _key and timestamps survive a round trip;
// hooks do not run.
type ArchiveService struct {
	ds *DataSources
}

func NewArchiveService(ds *DataSources) *ArchiveService {
	return &ArchiveService{ds: ds}
}

// Snapshot reads every store-backed collection
func (s *ArchiveService) Snapshot(ctx context.Context) (*domain.Dataset, error) {
	dataset := &domain.Dataset{}
	for _, store := range s.ds.Stores() {
		coll, err := store.GetCollection(ctx, store.CollectionName())
		if err != nil {
			return nil, err
		}
		docs, err := coll.Find(ctx, repository.Selector{})
		if err != nil {
			return nil, err
		}
		if docs == nil {
			docs = []domain.Document{}
		}
		dataset.Collections = append(dataset.Collections, domain.CollectionDump{
			Name:      coll.Name(),
			Type:      coll.Type(),
			Documents: docs,
		})
	}
	return dataset, nil
}

// Export writes a snapshot in the given format
func (s *ArchiveService) Export(ctx context.Context, format string, w io.Writer) error {
	c, err := codec.ForFormat(format)
	if err != nil {
		return err
	}
	dataset, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	return c.Export(dataset, w)
}

// Import parses r and applies it with the given strategy
func (s *ArchiveService) Import(ctx context.Context, c codec.Importer, r io.Reader, strategy string) (*ImportResult, error) {
	dataset, err := c.Parse(r)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, dataset, strategy)
}

// Apply writes a dataset. "merge" upserts by _key; "replace" truncates each
// listed collection first.
func (s *ArchiveService) Apply(ctx context.Context, dataset *domain.Dataset, strategy string) (*ImportResult, error) {
	if strategy == "" {
		strategy = StrategyMerge
	}
	if strategy != StrategyMerge && strategy != StrategyReplace {
		return nil, fmt.Errorf("invalid strategy %s, must be 'merge' or 'replace'", strategy)
	}

	result := &ImportResult{Strategy: strategy}
	for _, dump := range dataset.Collections {
		store, ok := s.ds.Store(dump.Name)
		if !ok {
			return result, fmt.Errorf("%w: no datasource serves %s", domain.ErrCollectionNotFound, dump.Name)
		}
		if store.CollectionType() != dump.Type {
			return result, fmt.Errorf("%w: %s is %s, dataset has %s",
				domain.ErrCollectionTypeMismatch, dump.Name, store.CollectionType(), dump.Type)
		}

		coll, err := store.GetCollection(ctx, dump.Name)
		if err != nil {
			return result, err
		}
		if strategy == StrategyReplace {
			if err := coll.Truncate(ctx); err != nil {
				return result, err
			}
		}

		for _, doc := range dump.Documents {
			created, err := upsert(ctx, coll, doc)
			if err != nil {
				return result, err
			}
			if created {
				result.DocumentsCreated++
			} else {
				result.DocumentsUpdated++
			}
		}
		result.Collections++
	}

	s.ds.Events.Publish(domain.Event{
		Type:    domain.EventDatasetImported,
		Payload: result,
	})
	return result, nil
}

// upsert merges doc into an existing key or inserts it as a new document
func upsert(ctx context.Context, coll repository.Collection, doc domain.Document) (bool, error) {
	key := doc.Key()
	if key != "" {
		updated, err := coll.Update(ctx, repository.Selector{Filters: domain.Filter{domain.KeyField: key}}, doc)
		if err != nil {
			return false, err
		}
		if len(updated) > 0 {
			return false, nil
		}
	}
	if _, err := coll.Insert(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}
