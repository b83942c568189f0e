package datasource

import (
	"context"

	"asetgraph/internal/domain"
)

// Hooks are optional lifecycle extension points. A nil hook is the identity.
// Before* hooks may rewrite the payload; After* hooks observe the outcome and
// fail the operation by returning an error.
type Hooks struct {
	BeforeCreate func(ctx context.Context, data domain.Document) (domain.Document, error)
	AfterCreate  func(ctx context.Context, created domain.Document) error

	BeforeUpdate func(ctx context.Context, id string, data domain.Document) (domain.Document, error)
	AfterUpdate  func(ctx context.Context, updated domain.Document) error

	BeforeDelete func(ctx context.Context, id string) (string, error)
	AfterDelete  func(ctx context.Context, removed bool) error
}

// beforeCreate stamps timestamps, then runs the custom hook
func (b *Base) beforeCreate(ctx context.Context, data domain.Document) (domain.Document, error) {
	doc := data.Clone()
	if b.timestamps {
		doc = doc.Stamp(b.clock())
	}
	if b.hooks.BeforeCreate != nil {
		return b.hooks.BeforeCreate(ctx, doc)
	}
	return doc, nil
}

func (b *Base) afterCreate(ctx context.Context, created domain.Document) error {
	if b.hooks.AfterCreate != nil {
		return b.hooks.AfterCreate(ctx, created)
	}
	return nil
}

// beforeUpdate refreshes updatedAt and drops any createdAt in the patch
func (b *Base) beforeUpdate(ctx context.Context, id string, data domain.Document) (domain.Document, error) {
	patch := data.Clone()
	if b.timestamps {
		delete(patch, domain.CreatedAtField)
		patch = patch.Touch(b.clock())
	}
	if b.hooks.BeforeUpdate != nil {
		return b.hooks.BeforeUpdate(ctx, id, patch)
	}
	return patch, nil
}

func (b *Base) afterUpdate(ctx context.Context, updated domain.Document) error {
	if b.hooks.AfterUpdate != nil {
		return b.hooks.AfterUpdate(ctx, updated)
	}
	return nil
}

func (b *Base) beforeDelete(ctx context.Context, id string) (string, error) {
	if b.hooks.BeforeDelete != nil {
		return b.hooks.BeforeDelete(ctx, id)
	}
	return id, nil
}

func (b *Base) afterDelete(ctx context.Context, removed bool) error {
	if b.hooks.AfterDelete != nil {
		return b.hooks.AfterDelete(ctx, removed)
	}
	return nil
}
