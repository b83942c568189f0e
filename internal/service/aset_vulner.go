package service

import (
	"context"

	"asetgraph/internal/datasource"
	"asetgraph/internal/domain"
)

var asetReference = Projection{Fields: []string{domain.KeyField, "nilai", "type"}}

// AsetVulnerAPI relates entity/aset (from) to vulner (to)
type AsetVulnerAPI struct {
	*Relation
}

func NewAsetVulnerAPI(edges datasource.EdgeStore, entity, vulner datasource.DocumentStore, opts ...RelationOption) *AsetVulnerAPI {
	return &AsetVulnerAPI{
		Relation: NewRelation(edges, entity, vulner, RelationLabels{From: "aset", To: "vulnerability"}, opts...),
	}
}

func (a *AsetVulnerAPI) AssignVulnerabilityToAset(ctx context.Context, asetID, vulnerID string, metadata domain.Document) domain.OperationResult {
	return a.Assign(ctx, asetID, vulnerID, metadata)
}

func (a *AsetVulnerAPI) RemoveVulnerabilityFromAset(ctx context.Context, asetID, vulnerID string) domain.OperationResult {
	return a.Remove(ctx, asetID, vulnerID)
}

func (a *AsetVulnerAPI) CheckVulnerabilityInAset(ctx context.Context, asetID, vulnerID string) domain.ConnectionResult {
	return a.CheckExists(ctx, asetID, vulnerID)
}

// VulnerByAset returns the full vulnerability documents of an aset
func (a *AsetVulnerAPI) VulnerByAset(ctx context.Context, asetID string) ([]domain.Document, error) {
	return a.ListRelated(ctx, asetID, domain.Outbound, FullDocument)
}

// AsetByVulner returns aset references affected by a vulnerability
func (a *AsetVulnerAPI) AsetByVulner(ctx context.Context, vulnerID string) ([]domain.Document, error) {
	return a.ListRelated(ctx, vulnerID, domain.Inbound, asetReference)
}
