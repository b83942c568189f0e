package gql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/graph-gophers/graphql-go"

	"asetgraph/internal/domain"
	"asetgraph/internal/service"
)

// ErrNoDataSources is returned when a request context carries no datasources
var ErrNoDataSources = errors.New("datasources not available in request context")

// Resolver is the root of Query and Mutation
type Resolver struct{}

func dataSources(ctx context.Context) (*service.DataSources, error) {
	ds, ok := service.FromContext(ctx)
	if !ok {
		return nil, ErrNoDataSources
	}
	return ds, nil
}

// ============================================================================
// Result Types
// ============================================================================

type OperationResultResolver struct {
	res domain.OperationResult
}

func (r *OperationResultResolver) Success() bool { return r.res.Success }

func (r *OperationResultResolver) Message() *string {
	if r.res.Message == "" {
		return nil
	}
	return &r.res.Message
}

// operationResult converts a write outcome. ErrConfiguration is the only error
// a write can return and is reported as a GraphQL error.
func operationResult(res domain.OperationResult, err error) (*OperationResultResolver, error) {
	if err != nil {
		return nil, err
	}
	return &OperationResultResolver{res: res}, nil
}

type ConnectionResultResolver struct {
	res domain.ConnectionResult
}

func (r *ConnectionResultResolver) Success() bool     { return r.res.Success }
func (r *ConnectionResultResolver) IsConnected() bool { return r.res.IsConnected }

func (r *ConnectionResultResolver) Message() *string {
	if r.res.Message == "" {
		return nil
	}
	return &r.res.Message
}

type CategoryStatsResolver struct {
	stats domain.CategoryStats
}

func (r *CategoryStatsResolver) Category() string     { return r.stats.Category }
func (r *CategoryStatsResolver) Count() int32         { return int32(r.stats.Count) }
func (r *CategoryStatsResolver) TotalBudget() float64 { return r.stats.TotalBudget }

// ============================================================================
// JSON Scalar
// ============================================================================

// JSON carries an arbitrary value through the JSON scalar
type JSON struct {
	Value any
}

func (JSON) ImplementsGraphQLType(name string) bool { return name == "JSON" }

func (j *JSON) UnmarshalGraphQL(input any) error {
	j.Value = input
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.Value)
}

// ============================================================================
// Document Fields
// ============================================================================

// document provides the fields every stored document exposes
type document struct {
	doc domain.Document
}

func (d *document) Key() graphql.ID    { return graphql.ID(d.doc.Key()) }
func (d *document) CreatedAt() *string { return d.doc.StringPtr(domain.CreatedAtField) }
func (d *document) UpdatedAt() *string { return d.doc.StringPtr(domain.UpdatedAtField) }

// text renders a field for a non-null String, "" when absent
func (d *document) text(field string) string {
	switch v := d.doc[field].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// optionalText renders a field for a nullable String
func (d *document) optionalText(field string) *string {
	if d.doc[field] == nil {
		return nil
	}
	s := d.text(field)
	return &s
}

func (d *document) optionalFloat(field string) *float64 {
	f, ok := d.doc.Float(field)
	if !ok {
		return nil
	}
	return &f
}

// setOptional copies a nullable input field into a document
func setOptional[T any](doc domain.Document, field string, v *T) {
	if v != nil {
		doc[field] = *v
	}
}

// ============================================================================
// Relation Checks
// ============================================================================

func (r *Resolver) IsOrganisasiInSektor(ctx context.Context, args struct {
	SektorID     graphql.ID
	OrganisasiID graphql.ID
}) (*ConnectionResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	res := ds.SektorOrganisasi.CheckOrganisasiInSektor(ctx, string(args.SektorID), string(args.OrganisasiID))
	return &ConnectionResultResolver{res: res}, nil
}

func (r *Resolver) IsAsetInOrganisasi(ctx context.Context, args struct {
	AsetID       graphql.ID
	OrganisasiID graphql.ID
}) (*ConnectionResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	res := ds.OrganisasiAset.CheckAsetInOrganisasi(ctx, string(args.AsetID), string(args.OrganisasiID))
	return &ConnectionResultResolver{res: res}, nil
}

func (r *Resolver) IsVulnerabilityInAset(ctx context.Context, args struct {
	AsetID          graphql.ID
	VulnerabilityID graphql.ID
}) (*ConnectionResultResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	res := ds.AsetVulner.CheckVulnerabilityInAset(ctx, string(args.AsetID), string(args.VulnerabilityID))
	return &ConnectionResultResolver{res: res}, nil
}
