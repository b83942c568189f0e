package service

import (
	"context"

	"asetgraph/internal/datasource"
	"asetgraph/internal/domain"
)

var organisasiWithRelation = Projection{
	Fields:       []string{domain.KeyField, "nama", "deskripsi"},
	WithRelation: true,
}

// OrganisasiAsetAPI relates organisasi (from) to entity/aset (to). Public methods
// take the aset first, matching the mutation arguments.
type OrganisasiAsetAPI struct {
	*Relation
}

func NewOrganisasiAsetAPI(edges datasource.EdgeStore, organisasi, entity datasource.DocumentStore, opts ...RelationOption) *OrganisasiAsetAPI {
	return &OrganisasiAsetAPI{
		Relation: NewRelation(edges, organisasi, entity, RelationLabels{From: "organisasi", To: "aset"}, opts...),
	}
}

func (a *OrganisasiAsetAPI) AssignAsetToOrganisasi(ctx context.Context, asetID, organisasiID string, metadata domain.Document) domain.OperationResult {
	return a.Assign(ctx, organisasiID, asetID, metadata)
}

func (a *OrganisasiAsetAPI) RemoveAsetFromOrganisasi(ctx context.Context, asetID, organisasiID string) domain.OperationResult {
	return a.Remove(ctx, organisasiID, asetID)
}

func (a *OrganisasiAsetAPI) CheckAsetInOrganisasi(ctx context.Context, asetID, organisasiID string) domain.ConnectionResult {
	return a.CheckExists(ctx, organisasiID, asetID)
}

// AsetByOrganisasi returns the full aset documents owned by an organisasi
func (a *OrganisasiAsetAPI) AsetByOrganisasi(ctx context.Context, organisasiID string) ([]domain.Document, error) {
	return a.ListRelated(ctx, organisasiID, domain.Outbound, FullDocument)
}

// OrganisasiByAset returns organisasi references together with the connecting edge
func (a *OrganisasiAsetAPI) OrganisasiByAset(ctx context.Context, asetID string) ([]domain.Document, error) {
	return a.ListRelated(ctx, asetID, domain.Inbound, organisasiWithRelation)
}
