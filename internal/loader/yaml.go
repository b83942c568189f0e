// Package loader applies YAML seed files to the store.
//
// A seed lists documents per collection, each with a fixed _key, and the
// relations between them. Applying the same seed twice creates nothing new:
// documents are upserted by key and relations are only assigned when the pair
// is not yet connected.
package loader

import (
	"context"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"asetgraph/internal/domain"
	"asetgraph/internal/service"
)

// SeedYAML represents the seed file structure
type SeedYAML struct {
	Version   string                      `yaml:"version,omitempty"`
	Documents map[string][]map[string]any `yaml:"documents"`
	Relations map[string][]RelationYAML   `yaml:"relations,omitempty"`
}

// RelationYAML links two documents by key through a named relation
type RelationYAML struct {
	From string         `yaml:"from"`
	To   string         `yaml:"to"`
	Data map[string]any `yaml:"data,omitempty"`
}

// Result counts what an Apply changed
type Result struct {
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Assigned int `json:"assigned"`
	Skipped  int `json:"skipped"`
}

func (r Result) String() string {
	return fmt.Sprintf("%d created, %d updated, %d relations assigned, %d already present",
		r.Created, r.Updated, r.Assigned, r.Skipped)
}

// LoadYAML reads a seed file
func LoadYAML(path string) (*SeedYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML parses a seed and checks that every document has a key
func ParseYAML(data []byte) (*SeedYAML, error) {
	var seed SeedYAML
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for name, docs := range seed.Documents {
		for i, doc := range docs {
			if domain.Document(doc).Key() == "" {
				return nil, fmt.Errorf("documents.%s[%d]: _key is required", name, i)
			}
		}
	}
	for name, rels := range seed.Relations {
		for i, rel := range rels {
			if rel.From == "" || rel.To == "" {
				return nil, fmt.Errorf("relations.%s[%d]: from and to are required", name, i)
			}
		}
	}
	return &seed, nil
}

// Loader applies seeds through the datasources, so hooks, timestamps and
// change events apply exactly as for API writes.
type Loader struct {
	ds     *service.DataSources
	logger *zap.SugaredLogger
}

func New(ds *service.DataSources, logger *zap.SugaredLogger) *Loader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Loader{ds: ds, logger: logger}
}

// LoadFile reads and applies a seed file
func (l *Loader) LoadFile(ctx context.Context, path string) (Result, error) {
	seed, err := LoadYAML(path)
	if err != nil {
		return Result{}, err
	}
	res, err := l.Apply(ctx, seed)
	if err != nil {
		return res, fmt.Errorf("apply %s: %w", path, err)
	}
	l.logger.Infow("Seed applied", "path", path, "result", res.String())
	return res, nil
}

// Apply writes documents first, then relations. It stops at the first failure;
// whatever was written before it stays.
func (l *Loader) Apply(ctx context.Context, seed *SeedYAML) (Result, error) {
	var res Result

	for _, name := range sortedKeys(seed.Documents) {
		store, ok := l.ds.Store(name)
		if !ok || store.CollectionType() != domain.CollectionTypeDocument {
			return res, fmt.Errorf("%w: no document datasource serves %s", domain.ErrCollectionNotFound, name)
		}
		for _, raw := range seed.Documents[name] {
			created, err := upsert(ctx, store, domain.Document(raw))
			if err != nil {
				return res, err
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
		}
	}

	relations := make(map[string]*service.Relation)
	for _, rel := range l.ds.Relations() {
		relations[rel.Name()] = rel
	}
	for _, name := range sortedKeys(seed.Relations) {
		rel, ok := relations[name]
		if !ok {
			return res, fmt.Errorf("%w: no relation named %s", domain.ErrCollectionNotFound, name)
		}
		for _, link := range seed.Relations[name] {
			check := rel.CheckExists(ctx, link.From, link.To)
			if !check.Success {
				return res, fmt.Errorf("%s %s -> %s: %s", name, link.From, link.To, check.Message)
			}
			if check.IsConnected {
				res.Skipped++
				continue
			}
			assigned := rel.Assign(ctx, link.From, link.To, link.Data)
			if !assigned.Success {
				return res, fmt.Errorf("%s %s -> %s: %s", name, link.From, link.To, assigned.Message)
			}
			res.Assigned++
		}
	}
	return res, nil
}

type documentStore interface {
	CollectionName() string
	FindByID(ctx context.Context, id string) (domain.Document, error)
	Create(ctx context.Context, data domain.Document) (domain.OperationResult, error)
	Update(ctx context.Context, id string, data domain.Document) (domain.OperationResult, error)
}

func upsert(ctx context.Context, store documentStore, doc domain.Document) (bool, error) {
	key := doc.Key()
	existing, err := store.FindByID(ctx, key)
	if err != nil {
		return false, err
	}

	var op domain.OperationResult
	if existing == nil {
		op, err = store.Create(ctx, doc)
	} else {
		// the key is addressed, not patched
		op, err = store.Update(ctx, existing.Key(), doc.Body())
	}
	if err != nil {
		return false, err
	}
	if !op.Success {
		return false, fmt.Errorf("%s/%s: %s", store.CollectionName(), key, op.Message)
	}
	return existing == nil, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
