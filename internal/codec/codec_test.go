package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asetgraph/internal/domain"
)

func sampleDataset() *domain.Dataset {
	return &domain.Dataset{Collections: []domain.CollectionDump{
		{
			Name: "sektor",
			Type: domain.CollectionTypeDocument,
			Documents: []domain.Document{
				{"_key": "s1", "nama": "Energi", "budget": 10.5},
			},
		},
		{
			Name: "sektor_organisasi",
			Type: domain.CollectionTypeEdge,
			Documents: []domain.Document{
				{"_key": "e1", "_from": "sektor/s1", "_to": "organisasi/o1"},
			},
		},
	}}
}

func TestCodecsPreserveKeysAndEndpoints(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			c, err := ForFormat(format)
			require.NoError(t, err)
			assert.Equal(t, format, c.Format())

			var buf bytes.Buffer
			require.NoError(t, c.Export(sampleDataset(), &buf))

			got, err := c.Parse(&buf)
			require.NoError(t, err)
			require.Len(t, got.Collections, 2)
			assert.Equal(t, 2, got.DocumentCount())

			edges := got.Collection("sektor_organisasi")
			require.NotNil(t, edges)
			assert.Equal(t, domain.CollectionTypeEdge, edges.Type)
			assert.Equal(t, "sektor/s1", edges.Documents[0].From())
			assert.Equal(t, "e1", edges.Documents[0].Key())

			budget, ok := got.Collection("sektor").Documents[0].Float("budget")
			require.True(t, ok)
			assert.Equal(t, 10.5, budget)
		})
	}
}

func TestParseRejectsBadCollections(t *testing.T) {
	_, err := NewJSONCodec().Parse(strings.NewReader(`{"collections":[{"name":"bad name","type":"document"}]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidCollectionName)

	_, err = NewYAMLCodec().Parse(strings.NewReader("collections:\n  - name: sektor\n    type: graph\n"))
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	_, err := ForFormat("csv")
	assert.Error(t, err)

	assert.Equal(t, "yaml", ForPath("dump.YML").Format())
	assert.Equal(t, "json", ForPath("dump.json").Format())
}
