package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"asetgraph/internal/datasource"
)

// Collection names
const (
	CollectionSektor           = "sektor"
	CollectionOrganisasi       = "organisasi"
	CollectionEntity           = "entity"
	CollectionVulner           = "vulner"
	CollectionSektorOrganisasi = "sektor_organisasi"
	CollectionOrganisasiAset   = "organisasi_aset"
	CollectionAsetVulner       = "aset_vulnerability"
)

// Options configures every datasource built by NewDataSources
type Options struct {
	Timestamps bool
	Clock      func() time.Time
	Logger     *zap.SugaredLogger
	Events     *EventBus
}

// DataSources holds one instance of every datasource and relation. It is built
// once at startup and handed to request handlers through the context.
type DataSources struct {
	Sektor     *SektorAPI
	Organisasi *datasource.Base
	Entity     *datasource.Base
	Vulner     *datasource.Base

	SektorOrganisasi *SektorOrganisasiAPI
	OrganisasiAset   *OrganisasiAsetAPI
	AsetVulner       *AsetVulnerAPI

	Track  *TrackAPI
	Events *EventBus
}

// NewDataSources builds every datasource on top of one connector
func NewDataSources(conn datasource.Connector, opts Options) *DataSources {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Events == nil {
		opts.Events = NewEventBus()
	}

	common := func(name string, pub datasource.Publisher) []datasource.Option {
		return []datasource.Option{
			datasource.WithCollection(name),
			datasource.WithTimestamps(opts.Timestamps),
			datasource.WithClock(opts.Clock),
			datasource.WithLogger(opts.Logger.Named("datasource." + name)),
			datasource.WithPublisher(pub),
		}
	}
	relationOpts := func(name string) []RelationOption {
		return []RelationOption{
			WithRelationClock(opts.Clock),
			WithRelationLogger(opts.Logger.Named("relation." + name)),
			WithRelationPublisher(opts.Events),
		}
	}

	ds := &DataSources{
		Sektor:     NewSektorAPI(datasource.NewBase(conn, common(CollectionSektor, opts.Events)...)),
		Organisasi: datasource.NewBase(conn, common(CollectionOrganisasi, opts.Events)...),
		Entity:     datasource.NewBase(conn, common(CollectionEntity, opts.Events)...),
		Vulner:     datasource.NewBase(conn, common(CollectionVulner, opts.Events)...),
		Track:      NewTrackAPI(),
		Events:     opts.Events,
	}

	// relations publish their own events, so edge datasources get no publisher
	edge := func(name string) *datasource.Edge {
		return datasource.NewEdge(conn, common(name, nil)...)
	}

	ds.SektorOrganisasi = NewSektorOrganisasiAPI(edge(CollectionSektorOrganisasi), ds.Sektor, ds.Organisasi,
		relationOpts(CollectionSektorOrganisasi)...)
	ds.OrganisasiAset = NewOrganisasiAsetAPI(edge(CollectionOrganisasiAset), ds.Organisasi, ds.Entity,
		relationOpts(CollectionOrganisasiAset)...)
	ds.AsetVulner = NewAsetVulnerAPI(edge(CollectionAsetVulner), ds.Entity, ds.Vulner,
		relationOpts(CollectionAsetVulner)...)

	return ds
}

// Stores returns every store-backed datasource, documents first
func (d *DataSources) Stores() []datasource.DocumentStore {
	return []datasource.DocumentStore{
		d.Sektor,
		d.Organisasi,
		d.Entity,
		d.Vulner,
		d.SektorOrganisasi.Edges(),
		d.OrganisasiAset.Edges(),
		d.AsetVulner.Edges(),
	}
}

// Relations returns the relation modules
func (d *DataSources) Relations() []*Relation {
	return []*Relation{d.SektorOrganisasi.Relation, d.OrganisasiAset.Relation, d.AsetVulner.Relation}
}

// Initialize connects every datasource and ensures its collection exists
func (d *DataSources) Initialize(ctx context.Context) error {
	var errs []error
	for _, s := range d.Stores() {
		if _, err := s.Initialize(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Disconnect releases every datasource's handle and collection cache
func (d *DataSources) Disconnect() {
	for _, s := range d.Stores() {
		s.Disconnect()
	}
}

// Store returns the datasource bound to a collection name
func (d *DataSources) Store(collection string) (datasource.DocumentStore, bool) {
	for _, s := range d.Stores() {
		if s.CollectionName() == collection {
			return s, true
		}
	}
	return nil, false
}

type dataSourcesKey struct{}

// WithDataSources attaches ds to ctx
func WithDataSources(ctx context.Context, ds *DataSources) context.Context {
	return context.WithValue(ctx, dataSourcesKey{}, ds)
}

// FromContext returns the DataSources attached to ctx
func FromContext(ctx context.Context) (*DataSources, bool) {
	ds, ok := ctx.Value(dataSourcesKey{}).(*DataSources)
	return ds, ok && ds != nil
}
