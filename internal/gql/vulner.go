package gql

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"asetgraph/internal/domain"
)

type VulnerInput struct {
	Nama     string
	Type     *string
	Skor     string
	Severity string
}

func (in VulnerInput) document() domain.Document {
	doc := domain.Document{"nama": in.Nama, "skor": in.Skor, "severity": in.Severity}
	setOptional(doc, "type", in.Type)
	return doc
}

type VulnerResolver struct {
	document
}

func (r *VulnerResolver) Nama() string     { return r.text("nama") }
func (r *VulnerResolver) Type() string     { return r.text("type") }
func (r *VulnerResolver) Skor() string     { return r.text("skor") }
func (r *VulnerResolver) Severity() string { return r.text("severity") }

func (r *VulnerResolver) Aset(ctx context.Context) ([]*EntityReferenceResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := ds.AsetVulner.AsetByVulner(ctx, r.doc.Key())
	if err != nil {
		return nil, err
	}
	out := make([]*EntityReferenceResolver, len(docs))
	for i, d := range docs {
		out[i] = &EntityReferenceResolver{document{d}}
	}
	return out, nil
}

func vulnerResolvers(docs []domain.Document) []*VulnerResolver {
	out := make([]*VulnerResolver, len(docs))
	for i, d := range docs {
		out[i] = &VulnerResolver{document{d}}
	}
	return out
}

func (r *Resolver) Vulners(ctx context.Context, args struct{ Severity *string }) ([]*VulnerResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	var filters domain.Filter
	if args.Severity != nil {
		filters = domain.Filter{"severity": *args.Severity}
	}
	docs, err := ds.Vulner.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	return vulnerResolvers(docs), nil
}

func (r *Resolver) Vulner(ctx context.Context, args struct{ ID graphql.ID }) (*VulnerResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := ds.Vulner.FindByID(ctx, string(args.ID))
	if err != nil || doc == nil {
		return nil, err
	}
	return &VulnerResolver{document{doc}}, nil
}

func (r *Resolver) CreateVulner(ctx context.Context, args struct{ Input VulnerInput }) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	return operationResult(ds.Vulner.Create(ctx, args.Input.document()))
}

func (r *Resolver) UpdateVulner(ctx context.Context, args struct {
	ID    graphql.ID
	Input VulnerInput
}) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	return operationResult(ds.Vulner.Update(ctx, string(args.ID), args.Input.document()))
}

func (r *Resolver) DeleteVulner(ctx context.Context, args struct{ ID graphql.ID }) (*OperationResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	return operationResult(ds.Vulner.Delete(ctx, string(args.ID)))
}
