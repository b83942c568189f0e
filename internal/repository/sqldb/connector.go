package sqldb

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"asetgraph/internal/repository"
)

// Connector opens the database on first use and hands every caller the same pool
type Connector struct {
	cfg    Config
	logger *zap.SugaredLogger

	mu sync.Mutex
	db *DB
}

// NewConnector creates a connector; nothing is opened until Connect
func NewConnector(cfg Config, logger *zap.SugaredLogger) *Connector {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Connector{cfg: cfg, logger: logger}
}

// Connect returns the shared database handle, opening it if needed.
// A failed attempt is not cached; the next call retries.
func (c *Connector) Connect(ctx context.Context) (repository.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	db, err := Open(ctx, c.cfg)
	if err != nil {
		c.logger.Errorw("Database connection failed", "driver", c.cfg.Driver, "database", c.cfg.Name, "error", err)
		return nil, err
	}
	c.logger.Infow("Connected to database", "driver", c.driver(), "database", c.cfg.Name)
	c.db = db
	return db, nil
}

// Close releases the pool. Connect may be called again afterwards.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

func (c *Connector) driver() string {
	if c.cfg.Driver == "" {
		return DriverSQLite
	}
	return c.cfg.Driver
}
