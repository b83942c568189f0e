package config

// Config is the root configuration structure
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Seed     SeedConfig     `yaml:"seed"`
}

// DatabaseConfig selects and addresses the document store
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // sqlite, postgres
	URL      string `yaml:"url"`    // sqlite data directory or :memory:, postgres server URL
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Name     string `yaml:"name"`

	// Timestamps is a pointer so an explicit false in the file survives defaults
	Timestamps *bool `yaml:"timestamps,omitempty"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port        int      `yaml:"port"`
	Debug       bool     `yaml:"debug"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level  string `yaml:"level"`  // DEBUG, INFO, WARN, ERROR
	Format string `yaml:"format"` // CONSOLE, JSON
}

// SeedConfig points serve at a seed file to apply on startup
type SeedConfig struct {
	Path  string `yaml:"path,omitempty"`
	Watch bool   `yaml:"watch"`
}
