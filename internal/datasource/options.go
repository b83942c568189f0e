package datasource

import (
	"time"

	"go.uber.org/zap"

	"asetgraph/internal/domain"
)

// Option configures a Base
type Option func(*Base)

// WithCollection binds the collection every CRUD call operates on
func WithCollection(name string) Option {
	return func(b *Base) { b.collectionName = name }
}

// WithCollectionType sets how missing collections are created
func WithCollectionType(t domain.CollectionType) Option {
	return func(b *Base) { b.collectionType = t }
}

// WithTimestamps toggles createdAt/updatedAt stamping
func WithTimestamps(enabled bool) Option {
	return func(b *Base) { b.timestamps = enabled }
}

func WithHooks(h Hooks) Option {
	return func(b *Base) { b.hooks = h }
}

// WithClock overrides time.Now, mostly for tests
func WithClock(clock func() time.Time) Option {
	return func(b *Base) {
		if clock != nil {
			b.clock = clock
		}
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(b *Base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithPublisher emits a domain.Event after every successful write
func WithPublisher(p Publisher) Option {
	return func(b *Base) { b.publisher = p }
}
