package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asetgraph/internal/domain"
	"asetgraph/internal/repository/sqldb"
)

// ============================================================================
// Test Helpers
// ============================================================================

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestDataSources(t *testing.T) (*DataSources, *fakeClock) {
	t.Helper()
	conn := sqldb.NewConnector(sqldb.Config{Driver: sqldb.DriverSQLite, URL: sqldb.MemoryURL, Name: "test"}, nil)
	t.Cleanup(func() { conn.Close() })

	clock := &fakeClock{now: time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)}
	ds := NewDataSources(conn, Options{Timestamps: true, Clock: clock.Now})
	require.NoError(t, ds.Initialize(context.Background()))
	return ds, clock
}

func mustCreate(t *testing.T, ds interface {
	Create(context.Context, domain.Document) (domain.OperationResult, error)
}, doc domain.Document) {
	t.Helper()
	res, err := ds.Create(context.Background(), doc)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
}

func keys(docs []domain.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Key())
	}
	return out
}

// ============================================================================
// Relations
// ============================================================================

func TestAssignCheckRemove(t *testing.T) {
	ds, _ := newTestDataSources(t)
	ctx := context.Background()
	rel := ds.SektorOrganisasi

	res := rel.AssignOrganisasiToSektor(ctx, "s1", "o1", domain.Document{"type": "has"})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Berhasil mengaitkan organisasi o1 ke sektor s1", res.Message)

	check := rel.CheckOrganisasiInSektor(ctx, "s1", "o1")
	assert.True(t, check.Success)
	assert.True(t, check.IsConnected)

	res = rel.RemoveOrganisasiFromSektor(ctx, "s1", "o1")
	require.True(t, res.Success, res.Message)

	check = rel.CheckOrganisasiInSektor(ctx, "s1", "o1")
	assert.True(t, check.Success)
	assert.False(t, check.IsConnected)

	res = rel.RemoveOrganisasiFromSektor(ctx, "s1", "o1")
	assert.False(t, res.Success)
	assert.Equal(t, "Relasi tidak ditemukan", res.Message)
}

func TestAssignNormalizesIdentifiers(t *testing.T) {
	ds, clock := newTestDataSources(t)
	ctx := context.Background()
	rel := ds.SektorOrganisasi

	require.True(t, rel.AssignOrganisasiToSektor(ctx, "x", "y", nil).Success)
	clock.Advance(time.Minute)
	require.True(t, rel.AssignOrganisasiToSektor(ctx, "sektor/x", "organisasi/y", nil).Success)

	edges, err := rel.Edges().FindAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, edges, 2, "assign does not guard against duplicates")

	for _, e := range edges {
		assert.Equal(t, "sektor/x", e.From())
		assert.Equal(t, "organisasi/y", e.To())
	}
	assert.Equal(t, "2024-05-17T09:30:00.000Z", edges[0][DateAssignedField])
	assert.Equal(t, "2024-05-17T09:31:00.000Z", edges[1][DateAssignedField])

	// remove takes every edge with the pair
	res := rel.RemoveOrganisasiFromSektor(ctx, "x", "organisasi/y")
	require.True(t, res.Success)
	edges, err = rel.Edges().FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestAssignRejectsEmptyIdentifiers(t *testing.T) {
	ds, _ := newTestDataSources(t)

	res := ds.AsetVulner.AssignVulnerabilityToAset(context.Background(), "", "v1", nil)
	assert.False(t, res.Success)
}

func TestCheckExistsNeverErrors(t *testing.T) {
	ds, _ := newTestDataSources(t)
	ctx := context.Background()

	// drop the table behind the cached handle
	db, err := ds.Sektor.Initialize(ctx)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `DROP TABLE "organisasi_aset"`)
	require.NoError(t, err)

	check := ds.OrganisasiAset.CheckAsetInOrganisasi(ctx, "a1", "o1")
	assert.False(t, check.Success)
	assert.False(t, check.IsConnected)
	assert.Contains(t, check.Message, "Gagal memeriksa kaitan")
}

func TestListRelated(t *testing.T) {
	ds, _ := newTestDataSources(t)
	ctx := context.Background()

	mustCreate(t, ds.Sektor, domain.Document{"_key": "s1", "nama": "Energi", "deskripsi": "Listrik", "budget": 10})
	mustCreate(t, ds.Organisasi, domain.Document{"_key": "o1", "nama": "PLN", "deskripsi": "BUMN"})
	mustCreate(t, ds.Organisasi, domain.Document{"_key": "o2", "nama": "Pertamina"})
	mustCreate(t, ds.Entity, domain.Document{"_key": "a1", "nilai": "10.0.0.1", "type": "ip"})
	mustCreate(t, ds.Vulner, domain.Document{"_key": "v1", "nama": "Heartbleed", "type": "CVE", "skor": "7.5", "severity": "high"})

	require.True(t, ds.SektorOrganisasi.AssignOrganisasiToSektor(ctx, "s1", "o1", nil).Success)
	require.True(t, ds.SektorOrganisasi.AssignOrganisasiToSektor(ctx, "s1", "o2", nil).Success)
	require.True(t, ds.SektorOrganisasi.AssignOrganisasiToSektor(ctx, "s1", "ghost", nil).Success)
	require.True(t, ds.OrganisasiAset.AssignAsetToOrganisasi(ctx, "a1", "o1", domain.Document{"peran": "pemilik"}).Success)
	require.True(t, ds.AsetVulner.AssignVulnerabilityToAset(ctx, "a1", "v1", nil).Success)

	t.Run("projection skips dangling edges", func(t *testing.T) {
		orgs, err := ds.SektorOrganisasi.OrganisasiBySektor(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, orgs, 2)
		assert.Equal(t, domain.Document{"_key": "o1", "nama": "PLN", "deskripsi": "BUMN"}, orgs[0])
		assert.Equal(t, domain.Document{"_key": "o2", "nama": "Pertamina", "deskripsi": nil}, orgs[1])
	})

	t.Run("inbound projection", func(t *testing.T) {
		sektors, err := ds.SektorOrganisasi.SektorByOrganisasi(ctx, "organisasi/o1")
		require.NoError(t, err)
		assert.Equal(t, []domain.Document{{"_key": "s1", "nama": "Energi", "deskripsi": "Listrik"}}, sektors)
	})

	t.Run("full documents", func(t *testing.T) {
		aset, err := ds.OrganisasiAset.AsetByOrganisasi(ctx, "o1")
		require.NoError(t, err)
		require.Len(t, aset, 1)
		assert.Equal(t, "10.0.0.1", aset[0]["nilai"])
		assert.Equal(t, "entity/a1", aset[0].ID())
		assert.NotEmpty(t, aset[0][domain.CreatedAtField])
	})

	t.Run("projection with relation", func(t *testing.T) {
		orgs, err := ds.OrganisasiAset.OrganisasiByAset(ctx, "a1")
		require.NoError(t, err)
		require.Len(t, orgs, 1)
		assert.Equal(t, "PLN", orgs[0]["nama"])
		assert.NotEmpty(t, orgs[0][RelationIDField])

		data, ok := orgs[0][RelationDataField].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "pemilik", data["peran"])
		assert.Equal(t, "organisasi/o1", data["_from"])
		assert.Equal(t, orgs[0][RelationIDField], data["_key"])
	})

	t.Run("aset and vulnerability", func(t *testing.T) {
		vulns, err := ds.AsetVulner.VulnerByAset(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, []string{"v1"}, keys(vulns))
		assert.Equal(t, "Heartbleed", vulns[0]["nama"])

		aset, err := ds.AsetVulner.AsetByVulner(ctx, "vulner/v1")
		require.NoError(t, err)
		assert.Equal(t, []domain.Document{{"_key": "a1", "nilai": "10.0.0.1", "type": "ip"}}, aset)
	})

	t.Run("nothing related", func(t *testing.T) {
		none, err := ds.AsetVulner.VulnerByAset(ctx, "unknown")
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestRelationEventsArePublished(t *testing.T) {
	ds, _ := newTestDataSources(t)
	ctx := context.Background()

	ch := make(chan domain.Event, 8)
	ds.Events.Subscribe(ch)
	defer ds.Events.Unsubscribe(ch)

	require.True(t, ds.AsetVulner.AssignVulnerabilityToAset(ctx, "a1", "v1", nil).Success)
	require.True(t, ds.AsetVulner.RemoveVulnerabilityFromAset(ctx, "a1", "v1").Success)

	first, second := <-ch, <-ch
	assert.Equal(t, domain.EventRelationAssigned, first.Type)
	assert.Equal(t, CollectionAsetVulner, first.Collection)
	assert.Equal(t, domain.EventRelationRemoved, second.Type)
}

// ============================================================================
// Statistics
// ============================================================================

func TestStatsByCategory(t *testing.T) {
	ds, _ := newTestDataSources(t)
	ctx := context.Background()

	mustCreate(t, ds.Sektor, domain.Document{"category": "A", "budget": 10})
	mustCreate(t, ds.Sektor, domain.Document{"category": "A", "budget": 5})
	mustCreate(t, ds.Sektor, domain.Document{"budget": 3})

	stats, err := ds.Sektor.StatsByCategory(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.CategoryStats{
		{Category: "A", Count: 2, TotalBudget: 15},
		{Category: "Uncategorized", Count: 1, TotalBudget: 3},
	}, stats)
}

func TestAggregateByCategoryEdgeCases(t *testing.T) {
	stats := aggregateByCategory([]domain.Document{
		{"category": "", "budget": "lots"},
		{"category": nil},
		{"budget": 2.5},
		{"category": "B", "budget": 1},
		{"category": 7, "budget": 1},
	})

	assert.Equal(t, []domain.CategoryStats{
		{Category: "7", Count: 1, TotalBudget: 1},
		{Category: "B", Count: 1, TotalBudget: 1},
		{Category: "Uncategorized", Count: 3, TotalBudget: 2.5},
	}, stats)

	assert.Empty(t, aggregateByCategory(nil))
}

// ============================================================================
// Container
// ============================================================================

func TestDataSourcesContext(t *testing.T) {
	ds, _ := newTestDataSources(t)

	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	got, ok := FromContext(WithDataSources(context.Background(), ds))
	require.True(t, ok)
	assert.Same(t, ds, got)

	store, ok := ds.Store(CollectionOrganisasiAset)
	require.True(t, ok)
	assert.Equal(t, domain.CollectionTypeEdge, store.CollectionType())

	_, ok = ds.Store("track")
	assert.False(t, ok)

	ds.Disconnect()
	ds.Disconnect()
}

func TestTrackAPI(t *testing.T) {
	api := NewTrackAPI()

	assert.Len(t, api.Tracks(), 3)
	require.NotNil(t, api.TrackByID("2"))
	assert.Equal(t, "React Hooks Deep Dive", api.TrackByID("2").Title)
	assert.Nil(t, api.TrackByID("99"))
}

func TestEventBusSkipsSlowSubscribers(t *testing.T) {
	bus := NewEventBus()
	slow := make(chan domain.Event)
	fast := make(chan domain.Event, 1)
	bus.Subscribe(slow)
	bus.Subscribe(fast)

	bus.Publish(domain.Event{Type: domain.EventDocumentCreated})

	select {
	case e := <-fast:
		assert.Equal(t, domain.EventDocumentCreated, e.Type)
	default:
		t.Fatal("fast subscriber did not receive the event")
	}
}
