package service

import (
	"context"

	"asetgraph/internal/datasource"
	"asetgraph/internal/domain"
)

// sektorReference is the reduced shape returned when listing across the relation
var sektorReference = Projection{Fields: []string{domain.KeyField, "nama", "deskripsi"}}

// SektorOrganisasiAPI relates sektor (from) to organisasi (to)
type SektorOrganisasiAPI struct {
	*Relation
}

func NewSektorOrganisasiAPI(edges datasource.EdgeStore, sektor, organisasi datasource.DocumentStore, opts ...RelationOption) *SektorOrganisasiAPI {
	return &SektorOrganisasiAPI{
		Relation: NewRelation(edges, sektor, organisasi, RelationLabels{From: "sektor", To: "organisasi"}, opts...),
	}
}

func (a *SektorOrganisasiAPI) AssignOrganisasiToSektor(ctx context.Context, sektorID, organisasiID string, metadata domain.Document) domain.OperationResult {
	return a.Assign(ctx, sektorID, organisasiID, metadata)
}

func (a *SektorOrganisasiAPI) RemoveOrganisasiFromSektor(ctx context.Context, sektorID, organisasiID string) domain.OperationResult {
	return a.Remove(ctx, sektorID, organisasiID)
}

func (a *SektorOrganisasiAPI) CheckOrganisasiInSektor(ctx context.Context, sektorID, organisasiID string) domain.ConnectionResult {
	return a.CheckExists(ctx, sektorID, organisasiID)
}

// OrganisasiBySektor lists organisasi references assigned to a sektor
func (a *SektorOrganisasiAPI) OrganisasiBySektor(ctx context.Context, sektorID string) ([]domain.Document, error) {
	return a.ListRelated(ctx, sektorID, domain.Outbound, sektorReference)
}

// SektorByOrganisasi lists sektor references an organisasi belongs to
func (a *SektorOrganisasiAPI) SektorByOrganisasi(ctx context.Context, organisasiID string) ([]domain.Document, error) {
	return a.ListRelated(ctx, organisasiID, domain.Inbound, sektorReference)
}
