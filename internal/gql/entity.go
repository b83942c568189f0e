package gql

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"asetgraph/internal/domain"
)

type EntityInput struct {
	Nilai string
	Type  string
}

func (in EntityInput) document() domain.Document {
	return domain.Document{"nilai": in.Nilai, "type": in.Type}
}

type EntityResolver struct {
	document
}

func (r *EntityResolver) Nilai() string { return r.text("nilai") }
func (r *EntityResolver) Type() string  { return r.text("type") }

func (r *EntityResolver) Organisasi(ctx context.Context) ([]*OrganisasiRelationResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := ds.OrganisasiAset.OrganisasiByAset(ctx, r.doc.Key())
	if err != nil {
		return nil, err
	}
	out := make([]*OrganisasiRelationResolver, len(docs))
	for i, d := range docs {
		out[i] = &OrganisasiRelationResolver{document{d}}
	}
	return out, nil
}

func (r *EntityResolver) Vulner(ctx context.Context) ([]*VulnerResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := ds.AsetVulner.VulnerByAset(ctx, r.doc.Key())
	if err != nil {
		return nil, err
	}
	return vulnerResolvers(docs), nil
}

type EntityReferenceResolver struct {
	document
}

func (r *EntityReferenceResolver) Nilai() string { return r.text("nilai") }
func (r *EntityReferenceResolver) Type() string  { return r.text("type") }

func entityResolvers(docs []domain.Document) []*EntityResolver {
	out := make([]*EntityResolver, len(docs))
	for i, d := range docs {
		out[i] = &EntityResolver{document{d}}
	}
	return out
}

// ============================================================================
// Queries
// ============================================================================

func (r *Resolver) EntityList(ctx context.Context, args struct{ Type *string }) ([]*EntityResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	var filters domain.Filter
	if args.Type != nil {
		filters = domain.Filter{"type": *args.Type}
	}
	docs, err := ds.Entity.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	return entityResolvers(docs), nil
}

func (r *Resolver) Entity(ctx context.Context, args struct{ ID graphql.ID }) (*EntityResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := ds.Entity.FindByID(ctx, string(args.ID))
	if err != nil || doc == nil {
		return nil, err
	}
	return &EntityResolver{document{doc}}, nil
}

// ============================================================================
// Mutations
// ============================================================================

func (r *Resolver) CreateEntity(ctx context.Context, args struct{ Input EntityInput }) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	return operationResult(ds.Entity.Create(ctx, args.Input.document()))
}

func (r *Resolver) UpdateEntity(ctx context.Context, args struct {
	ID    graphql.ID
	Input EntityInput
}) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	return operationResult(ds.Entity.Update(ctx, string(args.ID), args.Input.document()))
}

func (r *Resolver) DeleteEntity(ctx context.Context, args struct{ ID graphql.ID }) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	return operationResult(ds.Entity.Delete(ctx, string(args.ID)))
}

func (r *Resolver) AssignVulnerabilityToAset(ctx context.Context, args struct {
	AsetID          graphql.ID
	VulnerabilityID graphql.ID
}) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	res := ds.AsetVulner.AssignVulnerabilityToAset(ctx, string(args.AsetID), string(args.VulnerabilityID), nil)
	return &OperationResultResolver{res: res}, nil
}

func (r *Resolver) RemoveVulnerabilityFromAset(ctx context.Context, args struct {
	AsetID          graphql.ID
	VulnerabilityID graphql.ID
}) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	res := ds.AsetVulner.RemoveVulnerabilityFromAset(ctx, string(args.AsetID), string(args.VulnerabilityID))
	return &OperationResultResolver{res: res}, nil
}
