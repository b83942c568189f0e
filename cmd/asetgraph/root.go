package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"asetgraph/internal/config"
	"asetgraph/internal/logger"
	"asetgraph/internal/repository/sqldb"
	"asetgraph/internal/service"
)

var (
	configPath string

	cfg   *config.Config
	sugar *zap.SugaredLogger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "asetgraph",
	Short: "GraphQL inventory of sectors, organisations, assets and vulnerabilities",
	Long: `asetgraph stores sektor, organisasi, aset (entity) and vulner documents and
the relations between them, and serves them over GraphQL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var (
			path string
			err  error
		)
		if configPath != "" {
			cfg, path, err = config.LoadFromPath(configPath)
		} else {
			cfg, path, err = config.Load()
		}
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		// stdout is reserved for command output such as exports
		sugar = logger.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, os.Stderr).Sugar()
		if path != "" {
			sugar.Debugw("Loaded configuration", "path", path)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: search $ASETGRAPH_CONFIG, ./asetgraph.yaml, XDG and /etc)")
}

// openDataSources connects to the configured store and creates every
// collection. The returned cleanup closes the connection.
func openDataSources(ctx context.Context, events *service.EventBus) (*service.DataSources, func(), error) {
	conn := sqldb.NewConnector(cfg.SQLDB(), sugar.Named("sqldb"))
	ds := service.NewDataSources(conn, service.Options{
		Timestamps: cfg.TimestampsEnabled(),
		Logger:     sugar,
		Events:     events,
	})

	cleanup := func() {
		ds.Disconnect()
		if err := conn.Close(); err != nil {
			sugar.Warnw("Failed to close database", "error", err)
		}
	}

	if err := ds.Initialize(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("initialize datasources: %w", err)
	}
	return ds, cleanup, nil
}
