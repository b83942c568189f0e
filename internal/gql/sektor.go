package gql

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"asetgraph/internal/domain"
	"asetgraph/internal/service"
)

type SektorInput struct {
	Nama      string
	Deskripsi *string
	Category  *string
	Budget    *float64
}

func (in SektorInput) document() domain.Document {
	doc := domain.Document{"nama": in.Nama}
	setOptional(doc, "deskripsi", in.Deskripsi)
	setOptional(doc, service.CategoryField, in.Category)
	setOptional(doc, service.BudgetField, in.Budget)
	return doc
}

type SektorResolver struct {
	document
}

func (r *SektorResolver) Nama() string       { return r.text("nama") }
func (r *SektorResolver) Deskripsi() *string { return r.optionalText("deskripsi") }
func (r *SektorResolver) Category() *string  { return r.optionalText(service.CategoryField) }
func (r *SektorResolver) Budget() *float64   { return r.optionalFloat(service.BudgetField) }

func (r *SektorResolver) Organisasi(ctx context.Context) ([]*OrganisasiReferenceResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := ds.SektorOrganisasi.OrganisasiBySektor(ctx, r.doc.Key())
	if err != nil {
		return nil, err
	}
	out := make([]*OrganisasiReferenceResolver, len(docs))
	for i, d := range docs {
		out[i] = &OrganisasiReferenceResolver{document{d}}
	}
	return out, nil
}

// SektorReferenceResolver is a sektor reached through a relation
type SektorReferenceResolver struct {
	document
}

func (r *SektorReferenceResolver) Nama() string       { return r.text("nama") }
func (r *SektorReferenceResolver) Deskripsi() *string { return r.optionalText("deskripsi") }

// ============================================================================
// Queries
// ============================================================================

func (r *Resolver) Sektors(ctx context.Context, args struct{ Category *string }) ([]*SektorResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	var filters domain.Filter
	if args.Category != nil {
		filters = domain.Filter{service.CategoryField: *args.Category}
	}
	docs, err := ds.Sektor.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	out := make([]*SektorResolver, len(docs))
	for i, d := range docs {
		out[i] = &SektorResolver{document{d}}
	}
	return out, nil
}

func (r *Resolver) Sektor(ctx context.Context, args struct{ ID graphql.ID }) (*SektorResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := ds.Sektor.FindByID(ctx, string(args.ID))
	if err != nil || doc == nil {
		return nil, err
	}
	return &SektorResolver{document{doc}}, nil
}

func (r *Resolver) SektorStats(ctx context.Context) ([]*CategoryStatsResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := ds.Sektor.StatsByCategory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*CategoryStatsResolver, len(stats))
	for i, s := range stats {
		out[i] = &CategoryStatsResolver{s}
	}
	return out, nil
}

// ============================================================================
// Mutations
// ============================================================================

func (r *Resolver) CreateSektor(ctx context.Context, args struct{ Input SektorInput }) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	return operationResult(ds.Sektor.Create(ctx, args.Input.document()))
}

func (r *Resolver) UpdateSektor(ctx context.Context, args struct {
	ID    graphql.ID
	Input SektorInput
}) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	return operationResult(ds.Sektor.Update(ctx, string(args.ID), args.Input.document()))
}

func (r *Resolver) DeleteSektor(ctx context.Context, args struct{ ID graphql.ID }) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	return operationResult(ds.Sektor.Delete(ctx, string(args.ID)))
}

func (r *Resolver) AssignOrganisasiToSektor(ctx context.Context, args struct {
	SektorID     graphql.ID
	OrganisasiID graphql.ID
}) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	res := ds.SektorOrganisasi.AssignOrganisasiToSektor(ctx, string(args.SektorID), string(args.OrganisasiID), nil)
	return &OperationResultResolver{res: res}, nil
}

func (r *Resolver) RemoveOrganisasiFromSektor(ctx context.Context, args struct {
	SektorID     graphql.ID
	OrganisasiID graphql.ID
}) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	res := ds.SektorOrganisasi.RemoveOrganisasiFromSektor(ctx, string(args.SektorID), string(args.OrganisasiID))
	return &OperationResultResolver{res: res}, nil
}
