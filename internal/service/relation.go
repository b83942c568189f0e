package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"asetgraph/internal/datasource"
	"asetgraph/internal/domain"
	"asetgraph/internal/metrics"
	"asetgraph/internal/repository"
)

// DateAssignedField is stamped into every relation edge on assignment
const DateAssignedField = "dateAssigned"

// Projection fields added when a listing includes its relation edge
const (
	RelationIDField   = "relationId"
	RelationDataField = "relationData"
)

// Projection shapes the documents returned by ListRelated
type Projection struct {
	// Fields keeps only these fields; nil returns the full document
	Fields []string
	// WithRelation adds relationId and relationData from the connecting edge
	WithRelation bool
}

// FullDocument returns related documents unchanged
var FullDocument = Projection{}

// RelationLabels name both sides in user-facing result messages
type RelationLabels struct {
	From string
	To   string
}

// Relation implements assign/remove/check/list for one edge collection
// connecting a "from" document collection to a "to" document collection.
type Relation struct {
	edges     datasource.EdgeStore
	from      datasource.DocumentStore
	to        datasource.DocumentStore
	labels    RelationLabels
	clock     func() time.Time
	logger    *zap.SugaredLogger
	publisher datasource.Publisher
}

// RelationOption configures a Relation
type RelationOption func(*Relation)

func WithRelationClock(clock func() time.Time) RelationOption {
	return func(r *Relation) {
		if clock != nil {
			r.clock = clock
		}
	}
}

func WithRelationLogger(logger *zap.SugaredLogger) RelationOption {
	return func(r *Relation) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithRelationPublisher(p datasource.Publisher) RelationOption {
	return func(r *Relation) { r.publisher = p }
}

// NewRelation wires an edge store to its two endpoint stores
func NewRelation(edges datasource.EdgeStore, from, to datasource.DocumentStore, labels RelationLabels, opts ...RelationOption) *Relation {
	r := &Relation{
		edges:  edges,
		from:   from,
		to:     to,
		labels: labels,
		clock:  time.Now,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the edge collection name
func (r *Relation) Name() string {
	return r.edges.CollectionName()
}

// Edges exposes the underlying edge datasource
func (r *Relation) Edges() datasource.EdgeStore {
	return r.edges
}

// FromID normalizes id onto the "from" collection
func (r *Relation) FromID(id string) string {
	return domain.NormalizeID(r.from.CollectionName(), id)
}

// ToID normalizes id onto the "to" collection
func (r *Relation) ToID(id string) string {
	return domain.NormalizeID(r.to.CollectionName(), id)
}

// Assign creates an edge between the two endpoints. Assigning an existing pair
// again adds another edge.
func (r *Relation) Assign(ctx context.Context, fromID, toID string, metadata domain.Document) domain.OperationResult {
	if strings.TrimSpace(fromID) == "" || strings.TrimSpace(toID) == "" {
		return r.record("assign", domain.Failed("Gagal mengaitkan %s: %v", r.labels.To, domain.ErrInvalidID))
	}

	data := metadata.Clone()
	data[DateAssignedField] = domain.FormatTimestamp(r.clock())

	edge, err := r.edges.CreateEdge(ctx, r.FromID(fromID), r.ToID(toID), data)
	if err != nil {
		r.logger.Errorw("Error assigning relation", "relation", r.Name(), "from", fromID, "to", toID, "error", err)
		return r.record("assign", domain.Failed("Gagal mengaitkan %s: %v", r.labels.To, err))
	}

	r.publish(domain.EventRelationAssigned, edge)
	return r.record("assign", domain.Succeeded("Berhasil mengaitkan %s %s ke %s %s", r.labels.To, toID, r.labels.From, fromID))
}

// Remove deletes every edge with exactly this endpoint pair
func (r *Relation) Remove(ctx context.Context, fromID, toID string) domain.OperationResult {
	removed, err := r.removeEdges(ctx, r.FromID(fromID), r.ToID(toID))
	if err != nil {
		r.logger.Errorw("Error removing relation", "relation", r.Name(), "from", fromID, "to", toID, "error", err)
		return r.record("remove", domain.Failed("Gagal menghapus kaitan: %v", err))
	}
	if len(removed) == 0 {
		return r.record("remove", domain.Failed("Relasi tidak ditemukan"))
	}

	for _, edge := range removed {
		r.publish(domain.EventRelationRemoved, edge)
	}
	return r.record("remove", domain.Succeeded("Berhasil menghapus kaitan %s %s dari %s %s", r.labels.To, toID, r.labels.From, fromID))
}

func (r *Relation) removeEdges(ctx context.Context, from, to string) ([]domain.Document, error) {
	coll, err := r.edges.GetCollection(ctx, r.Name())
	if err != nil {
		return nil, err
	}
	return coll.Remove(ctx, repository.Selector{Filters: pairFilter(from, to)})
}

// CheckExists looks up at most one edge for the pair. It never returns an error;
// lookup failures yield success=false, isConnected=false.
func (r *Relation) CheckExists(ctx context.Context, fromID, toID string) domain.ConnectionResult {
	connected, err := r.exists(ctx, r.FromID(fromID), r.ToID(toID))
	if err != nil {
		r.logger.Errorw("Error checking relation", "relation", r.Name(), "from", fromID, "to", toID, "error", err)
		metrics.RecordRelationOperation(r.Name(), "check", metrics.OutcomeError)
		return domain.ConnectionResult{
			OperationResult: domain.Failed("Gagal memeriksa kaitan: %v", err),
			IsConnected:     false,
		}
	}

	metrics.RecordRelationOperation(r.Name(), "check", metrics.OutcomeSuccess)
	if connected {
		return domain.ConnectionResult{
			OperationResult: domain.Succeeded("%s %s terkait dengan %s %s", capitalize(r.labels.To), toID, r.labels.From, fromID),
			IsConnected:     true,
		}
	}
	return domain.ConnectionResult{
		OperationResult: domain.Succeeded("%s %s tidak terkait dengan %s %s", capitalize(r.labels.To), toID, r.labels.From, fromID),
		IsConnected:     false,
	}
}

func (r *Relation) exists(ctx context.Context, from, to string) (bool, error) {
	coll, err := r.edges.GetCollection(ctx, r.Name())
	if err != nil {
		return false, err
	}
	edges, err := coll.Find(ctx, repository.Selector{Filters: pairFilter(from, to), Limit: 1})
	if err != nil {
		return false, err
	}
	return len(edges) > 0, nil
}

// ListRelated returns the documents on the other side of every edge touching id.
// Outbound treats id as a "from" endpoint, Inbound as a "to" endpoint. Edges whose
// opposite document no longer exists are skipped.
func (r *Relation) ListRelated(ctx context.Context, id string, dir domain.Direction, proj Projection) ([]domain.Document, error) {
	var (
		other     datasource.DocumentStore
		endpoint  string
		matchCol  string
		targetCol string
	)
	switch dir {
	case domain.Outbound:
		other, endpoint, matchCol, targetCol = r.to, r.FromID(id), domain.FromField, domain.ToField
	case domain.Inbound:
		other, endpoint, matchCol, targetCol = r.from, r.ToID(id), domain.ToField, domain.FromField
	default:
		return nil, fmt.Errorf("unknown direction %q", dir)
	}

	// both tables must exist before they can be joined
	if _, err := r.edges.GetCollection(ctx, r.Name()); err != nil {
		return nil, err
	}
	if _, err := other.GetCollection(ctx, other.CollectionName()); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT d._key AS doc_key, d._id AS doc_id, d.body AS doc_body,
		e._key AS edge_key, e._id AS edge_id, e._from AS edge_from, e._to AS edge_to, e.body AS edge_body
		FROM "%s" e JOIN "%s" d ON d._id = e.%s
		WHERE e.%s = ?
		ORDER BY e._seq`, r.Name(), other.CollectionName(), targetCol, matchCol)

	rows, err := r.edges.Query(ctx, q, endpoint)
	if err != nil {
		r.logger.Errorw("Error listing related documents", "relation", r.Name(), "id", id, "direction", dir, "error", err)
		return nil, err
	}

	out := make([]domain.Document, 0, len(rows))
	for _, row := range rows {
		doc, edge, err := decodeRelatedRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, proj.apply(doc, edge))
	}
	return out, nil
}

func decodeRelatedRow(row repository.Row) (doc, edge domain.Document, err error) {
	doc, err = repository.DecodeDocument(row["doc_body"])
	if err != nil {
		return nil, nil, fmt.Errorf("decode related document: %w", err)
	}
	if doc == nil {
		doc = domain.Document{}
	}
	doc[domain.KeyField] = row.String("doc_key")
	doc[domain.IDField] = row.String("doc_id")

	edge, err = repository.DecodeDocument(row["edge_body"])
	if err != nil {
		return nil, nil, fmt.Errorf("decode relation edge: %w", err)
	}
	if edge == nil {
		edge = domain.Document{}
	}
	edge[domain.KeyField] = row.String("edge_key")
	edge[domain.IDField] = row.String("edge_id")
	edge[domain.FromField] = row.String("edge_from")
	edge[domain.ToField] = row.String("edge_to")
	return doc, edge, nil
}

func (p Projection) apply(doc, edge domain.Document) domain.Document {
	out := doc
	if p.Fields != nil {
		out = doc.Project(p.Fields...)
	}
	if p.WithRelation {
		out[RelationIDField] = edge.Key()
		out[RelationDataField] = map[string]any(edge)
	}
	return out
}

func pairFilter(from, to string) domain.Filter {
	return domain.Filter{domain.FromField: from, domain.ToField: to}
}

func (r *Relation) record(op string, res domain.OperationResult) domain.OperationResult {
	metrics.RecordRelationOperation(r.Name(), op, metrics.Outcome(res.Success))
	return res
}

func (r *Relation) publish(t domain.EventType, edge domain.Document) {
	if r.publisher == nil {
		return
	}
	r.publisher.Publish(domain.Event{
		Type:       t,
		Collection: r.Name(),
		Key:        edge.Key(),
		Payload:    edge,
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
