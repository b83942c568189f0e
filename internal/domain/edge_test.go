package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "sektor/s1", NormalizeID("sektor", "s1"))
	assert.Equal(t, "sektor/s1", NormalizeID("sektor", "sektor/s1"))
	assert.Equal(t, "sektor/organisasi/o1", NormalizeID("sektor", "organisasi/o1"))
}

func TestSplitID(t *testing.T) {
	coll, key, err := SplitID("entity/a1")
	assert.NoError(t, err)
	assert.Equal(t, "entity", coll)
	assert.Equal(t, "a1", key)

	for _, bad := range []string{"", "a1", "/a1", "entity/", "a/b/c"} {
		_, _, err := SplitID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, bad)
	}
}

func TestNewEdgeDocument(t *testing.T) {
	edge := NewEdgeDocument("sektor/s1", "organisasi/o1", Document{"_from": "x/y", "peran": "induk"})
	assert.Equal(t, Document{"_from": "sektor/s1", "_to": "organisasi/o1", "peran": "induk"}, edge)
	assert.NoError(t, ValidateEdge(edge))
}

func TestValidateEdge(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{"missing from", Document{"_to": "b/2"}},
		{"missing to", Document{"_from": "a/1"}},
		{"bare key", Document{"_from": "1", "_to": "b/2"}},
		{"wrong type", Document{"_from": 1, "_to": "b/2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateEdge(tt.doc), ErrInvalidEdge)
		})
	}
}

func TestFilterValidate(t *testing.T) {
	assert.NoError(t, Filter{"a": 1, "b": "x", "c": nil, "d": true, "e": 1.5}.Validate())
	assert.ErrorIs(t, Filter{"": 1}.Validate(), ErrInvalidFilter)
	assert.ErrorIs(t, Filter{"a": []any{1}}.Validate(), ErrInvalidFilter)
	assert.ErrorIs(t, Filter{"a": map[string]any{}}.Validate(), ErrInvalidFilter)
	assert.Equal(t, []string{"a", "b", "c"}, Filter{"c": 1, "a": 1, "b": 1}.Fields())
}

func TestDatasetLookup(t *testing.T) {
	ds := Dataset{Collections: []CollectionDump{
		{Name: "sektor", Type: CollectionTypeDocument, Documents: []Document{{}, {}}},
		{Name: "sektor_organisasi", Type: CollectionTypeEdge, Documents: []Document{{}}},
	}}
	assert.Equal(t, 3, ds.DocumentCount())
	assert.NotNil(t, ds.Collection("sektor"))
	assert.Nil(t, ds.Collection("vulner"))
}
