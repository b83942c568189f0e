package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asetgraph/internal/codec"
	"asetgraph/internal/domain"
)

func TestArchiveRoundTrip(t *testing.T) {
	src, _ := newTestDataSources(t)
	ctx := context.Background()

	mustCreate(t, src.Sektor, domain.Document{"_key": "s1", "nama": "Energi"})
	mustCreate(t, src.Organisasi, domain.Document{"_key": "o1", "nama": "PLN"})
	require.True(t, src.SektorOrganisasi.AssignOrganisasiToSektor(ctx, "s1", "o1", nil).Success)

	var buf bytes.Buffer
	require.NoError(t, NewArchiveService(src).Export(ctx, "yaml", &buf))

	dst, _ := newTestDataSources(t)
	result, err := NewArchiveService(dst).Import(ctx, codec.NewYAMLCodec(), &buf, "")
	require.NoError(t, err)
	assert.Equal(t, StrategyMerge, result.Strategy)
	assert.Equal(t, 3, result.DocumentsCreated)
	assert.Equal(t, 7, result.Collections)

	orig, err := src.Sektor.FindByID(ctx, "s1")
	require.NoError(t, err)
	copied, err := dst.Sektor.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, orig, copied, "keys and timestamps survive the round trip")

	check := dst.SektorOrganisasi.CheckOrganisasiInSektor(ctx, "s1", "o1")
	assert.True(t, check.IsConnected)
}

func TestArchiveApplyStrategies(t *testing.T) {
	ds, _ := newTestDataSources(t)
	ctx := context.Background()
	archive := NewArchiveService(ds)

	mustCreate(t, ds.Vulner, domain.Document{"_key": "v1", "nama": "Old", "severity": "low"})
	mustCreate(t, ds.Vulner, domain.Document{"_key": "v2", "nama": "Other"})

	dataset := &domain.Dataset{Collections: []domain.CollectionDump{{
		Name:      CollectionVulner,
		Type:      domain.CollectionTypeDocument,
		Documents: []domain.Document{{"_key": "v1", "nama": "New"}, {"_key": "v3", "nama": "Fresh"}},
	}}}

	result, err := archive.Apply(ctx, dataset, StrategyMerge)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DocumentsCreated)
	assert.Equal(t, 1, result.DocumentsUpdated)

	v1, err := ds.Vulner.FindByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "New", v1["nama"])
	assert.Equal(t, "low", v1["severity"], "merge keeps fields missing from the dataset")

	_, err = archive.Apply(ctx, dataset, StrategyReplace)
	require.NoError(t, err)
	all, err := ds.Vulner.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v3"}, keys(all))

	_, err = archive.Apply(ctx, dataset, "overwrite")
	assert.Error(t, err)

	_, err = archive.Apply(ctx, &domain.Dataset{Collections: []domain.CollectionDump{{
		Name: CollectionVulner, Type: domain.CollectionTypeEdge,
	}}}, StrategyMerge)
	assert.ErrorIs(t, err, domain.ErrCollectionTypeMismatch)

	_, err = archive.Apply(ctx, &domain.Dataset{Collections: []domain.CollectionDump{{
		Name: "unknown", Type: domain.CollectionTypeDocument,
	}}}, StrategyMerge)
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
}
