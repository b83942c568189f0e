// Package config loads asetgraph settings.
//
// Sources, lowest priority first:
//  1. built-in defaults
//  2. the first config file found (see FindConfigPath)
//  3. environment variables, including those from a .env file in the
//     working directory
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"asetgraph/internal/repository/sqldb"
)

// Default values
const (
	DefaultDriver       = sqldb.DriverSQLite
	DefaultSQLiteURL    = "./data"
	DefaultPostgresURL  = "postgres://127.0.0.1:5432"
	DefaultDatabaseName = "asetgraph"
	DefaultPort         = 4000
	DefaultLogLevel     = "INFO"
	DefaultLogFormat    = "CONSOLE"
)

// Load reads .env, finds and loads the config file, then applies environment
// overrides. A missing .env or config file is not an error.
func Load() (*Config, string, error) {
	// before discovery, .env may set ASETGRAPH_CONFIG
	loadDotEnv()

	path := FindConfigPath()
	if path == "" {
		cfg := &Config{}
		cfg.applyEnv()
		cfg.applyDefaults()
		return cfg, "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path. Environment overrides,
// including .env, still apply.
func LoadFromPath(path string) (*Config, string, error) {
	loadDotEnv()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, path, nil
}

// loadDotEnv reads ./.env if present. Variables already set are not overwritten,
// so calling it twice is harmless.
func loadDotEnv() {
	_ = godotenv.Load()
}

// ErrConfigExists is returned by WriteDefault when the target is already present
var ErrConfigExists = errors.New("config file already exists")

// WriteDefault writes DefaultConfig to path, or to DefaultConfigPath when path
// is empty. An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) (string, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	if !force && fileExists(path) {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := DefaultConfig().Save(path); err != nil {
		return path, err
	}
	return path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = DefaultDriver
	}
	if c.Database.URL == "" {
		if c.Database.Driver == sqldb.DriverPostgres {
			c.Database.URL = DefaultPostgresURL
		} else {
			c.Database.URL = DefaultSQLiteURL
		}
	}
	if c.Database.Name == "" {
		c.Database.Name = DefaultDatabaseName
	}
	if c.Database.Timestamps == nil {
		on := true
		c.Database.Timestamps = &on
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
}

// applyEnv overrides file values with any environment variables that are set.
// Malformed booleans and numbers are ignored.
func (c *Config) applyEnv() {
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.URL, "DB_URL")
	setString(&c.Database.Username, "DB_USERNAME")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	if v, ok := lookupBool("DB_TIMESTAMPS"); ok {
		c.Database.Timestamps = &v
	}

	if v, ok := os.LookupEnv("PORT"); ok {
		if port, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Server.Port = port
		}
	}
	if v, ok := lookupBool("SERVER_DEBUG"); ok {
		c.Server.Debug = v
	}
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		c.Server.CORSOrigins = splitList(v)
	}

	setString(&c.Logging.Level, "LOGGING_LEVEL")
	setString(&c.Logging.Format, "LOGGING_FORMAT")

	setString(&c.Seed.Path, "SEED_PATH")
	if v, ok := lookupBool("SEED_WATCH"); ok {
		c.Seed.Watch = v
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func lookupBool(key string) (bool, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, false
	}
	return b, true
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case sqldb.DriverSQLite, sqldb.DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("database.driver: unknown driver %q", c.Database.Driver))
	}
	if strings.TrimSpace(c.Database.Name) == "" {
		errs = append(errs, errors.New("database.name: must not be empty"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port: %d out of range", c.Server.Port))
	}
	if c.Seed.Watch && c.Seed.Path == "" {
		errs = append(errs, errors.New("seed.watch: requires seed.path"))
	}
	return errors.Join(errs...)
}

// TimestampsEnabled reports whether datasources stamp createdAt/updatedAt
func (c *Config) TimestampsEnabled() bool {
	return c.Database.Timestamps == nil || *c.Database.Timestamps
}

// SQLDB returns the storage connection settings
func (c *Config) SQLDB() sqldb.Config {
	return sqldb.Config{
		Driver:   c.Database.Driver,
		URL:      c.Database.URL,
		Username: c.Database.Username,
		Password: c.Database.Password,
		Name:     c.Database.Name,
	}
}

// Summary returns a human-readable config summary. The password is never
// included.
func (c *Config) Summary() string {
	timestamps := "on"
	if !c.TimestampsEnabled() {
		timestamps = "off"
	}
	summary := fmt.Sprintf("Database: %s %s/%s (timestamps %s)\n", c.Database.Driver, c.Database.URL, c.Database.Name, timestamps)
	summary += fmt.Sprintf("Server: port %d, debug %v", c.Server.Port, c.Server.Debug)
	if len(c.Server.CORSOrigins) > 0 {
		summary += fmt.Sprintf(", cors %s", strings.Join(c.Server.CORSOrigins, ","))
	}
	summary += fmt.Sprintf("\nLogging: %s %s", c.Logging.Level, c.Logging.Format)
	if c.Seed.Path != "" {
		summary += fmt.Sprintf("\nSeed: %s (watch %v)", c.Seed.Path, c.Seed.Watch)
	}
	return summary
}
