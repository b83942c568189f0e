package gql

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"asetgraph/internal/domain"
	"asetgraph/internal/service"
)

type OrganisasiInput struct {
	Nama      string
	Deskripsi *string
}

func (in OrganisasiInput) document() domain.Document {
	doc := domain.Document{"nama": in.Nama}
	setOptional(doc, "deskripsi", in.Deskripsi)
	return doc
}

type OrganisasiResolver struct {
	document
}

func (r *OrganisasiResolver) Nama() string       { return r.text("nama") }
func (r *OrganisasiResolver) Deskripsi() *string { return r.optionalText("deskripsi") }

func (r *OrganisasiResolver) Sektor(ctx context.Context) ([]*SektorReferenceResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := ds.SektorOrganisasi.SektorByOrganisasi(ctx, r.doc.Key())
	if err != nil {
		return nil, err
	}
	out := make([]*SektorReferenceResolver, len(docs))
	for i, d := range docs {
		out[i] = &SektorReferenceResolver{document{d}}
	}
	return out, nil
}

func (r *OrganisasiResolver) Aset(ctx context.Context) ([]*EntityResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := ds.OrganisasiAset.AsetByOrganisasi(ctx, r.doc.Key())
	if err != nil {
		return nil, err
	}
	return entityResolvers(docs), nil
}

type OrganisasiReferenceResolver struct {
	document
}

func (r *OrganisasiReferenceResolver) Nama() string       { return r.text("nama") }
func (r *OrganisasiReferenceResolver) Deskripsi() *string { return r.optionalText("deskripsi") }

// OrganisasiRelationResolver is an organisasi listed together with the edge
// that links it to an aset
type OrganisasiRelationResolver struct {
	document
}

func (r *OrganisasiRelationResolver) Nama() string       { return r.text("nama") }
func (r *OrganisasiRelationResolver) Deskripsi() *string { return r.optionalText("deskripsi") }

func (r *OrganisasiRelationResolver) RelationID() graphql.ID {
	return graphql.ID(r.text(service.RelationIDField))
}

func (r *OrganisasiRelationResolver) RelationData() *JSON {
	v, ok := r.doc[service.RelationDataField]
	if !ok || v == nil {
		return nil
	}
	return &JSON{Value: v}
}

// ============================================================================
// Queries
// ============================================================================

func (r *Resolver) OrganisasiList(ctx context.Context) ([]*OrganisasiResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := ds.Organisasi.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]*OrganisasiResolver, len(docs))
	for i, d := range docs {
		out[i] = &OrganisasiResolver{document{d}}
	}
	return out, nil
}

func (r *Resolver) Organisasi(ctx context.Context, args struct{ ID graphql.ID }) (*OrganisasiResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := ds.Organisasi.FindByID(ctx, string(args.ID))
	if err != nil || doc == nil {
		return nil, err
	}
	return &OrganisasiResolver{document{doc}}, nil
}

// ============================================================================
// Mutations
// ============================================================================

func (r *Resolver) CreateOrganisasi(ctx context.Context, args struct{ Input OrganisasiInput }) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	return operationResult(ds.Organisasi.Create(ctx, args.Input.document()))
}

func (r *Resolver) UpdateOrganisasi(ctx context.Context, args struct {
	ID    graphql.ID
	Input OrganisasiInput
}) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	return operationResult(ds.Organisasi.Update(ctx, string(args.ID), args.Input.document()))
}

func (r *Resolver) DeleteOrganisasi(ctx context.Context, args struct{ ID graphql.ID }) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	return operationResult(ds.Organisasi.Delete(ctx, string(args.ID)))
}

func (r *Resolver) AssignAsetToOrganisasi(ctx context.Context, args struct {
	AsetID       graphql.ID
	OrganisasiID graphql.ID
}) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	res := ds.OrganisasiAset.AssignAsetToOrganisasi(ctx, string(args.AsetID), string(args.OrganisasiID), nil)
	return &OperationResultResolver{res: res}, nil
}

func (r *Resolver) RemoveAsetFromOrganisasi(ctx context.Context, args struct {
	AsetID       graphql.ID
	OrganisasiID graphql.ID
}) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	res := ds.OrganisasiAset.RemoveAsetFromOrganisasi(ctx, string(args.AsetID), string(args.OrganisasiID))
	return &OperationResultResolver{res: res}, nil
}
