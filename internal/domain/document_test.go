package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCollectionName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"sektor", true},
		{"aset_vulnerability", true},
		{"A1", true},
		{"", false},
		{"1sektor", false},
		{"_collections", false},
		{"sektor;drop", false},
		{`se"ktor`, false},
		{strings.Repeat("a", 65), false},
	}
	for _, tt := range tests {
		err := ValidateCollectionName(tt.name)
		if tt.valid {
			assert.NoError(t, err, tt.name)
		} else {
			assert.ErrorIs(t, err, ErrInvalidCollectionName, tt.name)
		}
	}
}

func TestDocumentAccessors(t *testing.T) {
	doc := Document{
		KeyField:  "k1",
		IDField:   "sektor/k1",
		"nama":    "Energi",
		"budget":  json.Number("12.5"),
		"jumlah":  3,
		"bendera": true,
	}

	assert.Equal(t, "k1", doc.Key())
	assert.Equal(t, "sektor/k1", doc.ID())
	assert.Equal(t, "", doc.From())
	assert.Equal(t, "", doc.String("jumlah"))
	assert.Nil(t, doc.StringPtr("missing"))
	require.NotNil(t, doc.StringPtr("nama"))
	assert.Equal(t, "Energi", *doc.StringPtr("nama"))

	f, ok := doc.Float("budget")
	assert.True(t, ok)
	assert.Equal(t, 12.5, f)
	f, ok = doc.Float("jumlah")
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)
	_, ok = doc.Float("bendera")
	assert.False(t, ok)
}

func TestBodyStripsSystemFields(t *testing.T) {
	doc := Document{KeyField: "k", IDField: "e/k", FromField: "a/1", ToField: "b/2", "x": 1}
	assert.Equal(t, Document{"x": 1}, doc.Body())
}

func TestProjectKeepsShape(t *testing.T) {
	doc := Document{"_key": "o1", "nama": "PLN", "extra": true}
	assert.Equal(t, Document{"_key": "o1", "nama": "PLN", "deskripsi": nil}, doc.Project("_key", "nama", "deskripsi"))
}

func TestMergeIsRecursive(t *testing.T) {
	base := Document{
		"nama":   "A",
		"kontak": map[string]any{"email": "a@x", "telepon": "1"},
		"tags":   []any{"x"},
	}
	patch := Document{
		"kontak": map[string]any{"email": "b@x"},
		"tags":   []any{"y"},
		"baru":   1,
	}

	merged := base.Merge(patch)
	assert.Equal(t, Document{
		"nama":   "A",
		"kontak": map[string]any{"email": "b@x", "telepon": "1"},
		"tags":   []any{"y"},
		"baru":   1,
	}, merged)
	assert.Equal(t, "a@x", base["kontak"].(map[string]any)["email"], "receiver is not modified")
}

func TestStampAndTouch(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.FixedZone("WIB", 7*3600))
	doc := Document{"nama": "A"}.Stamp(created)
	assert.Equal(t, "2024-01-01T20:04:05.006Z", doc[CreatedAtField])
	assert.Equal(t, doc[CreatedAtField], doc[UpdatedAtField])

	touched := doc.Touch(created.Add(time.Minute))
	assert.Equal(t, "2024-01-01T20:04:05.006Z", touched[CreatedAtField])
	assert.Equal(t, "2024-01-01T20:05:05.006Z", touched[UpdatedAtField])
}

func TestCloneNil(t *testing.T) {
	var doc Document
	clone := doc.Clone()
	require.NotNil(t, clone)
	clone["a"] = 1
}
