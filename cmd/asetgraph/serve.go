package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"asetgraph/internal/domain"
	"asetgraph/internal/handler"
	"asetgraph/internal/hub"
	"asetgraph/internal/loader"
	"asetgraph/internal/service"
	"asetgraph/internal/watcher"
)

var (
	servePort  int
	serveSeed  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GraphQL server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed.Path = serveSeed
		}
		if cmd.Flags().Changed("watch") {
			cfg.Seed.Watch = serveWatch
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (overrides server.port)")
	serveCmd.Flags().StringVar(&serveSeed, "seed", "", "seed file applied at startup")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "re-apply the seed file when it changes")
	rootCmd.AddCommand(serveCmd)
}

func serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sugar.Infow("Starting asetgraph", "version", Version)
	sugar.Info(cfg.Summary())

	events := service.NewEventBus()
	ds, cleanup, err := openDataSources(ctx, events)
	if err != nil {
		return err
	}
	defer cleanup()

	sseHub := hub.New(sugar.Named("hub"))
	go sseHub.Run(ctx)

	eventChan := make(chan domain.Event, 100)
	events.Subscribe(eventChan)
	defer events.Unsubscribe(eventChan)
	go sseHub.Forward(ctx, eventChan)

	if cfg.Seed.Path != "" {
		seeds := loader.New(ds, sugar.Named("loader"))
		if _, err := seeds.LoadFile(ctx, cfg.Seed.Path); err != nil {
			return err
		}
		if cfg.Seed.Watch {
			w := watcher.New(cfg.Seed.Path, func() {
				if _, err := seeds.LoadFile(ctx, cfg.Seed.Path); err != nil {
					sugar.Errorw("Failed to reload seed", "path", cfg.Seed.Path, "error", err)
				}
			}, sugar.Named("watcher"))
			go func() {
				if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
					sugar.Errorw("Seed watcher stopped", "error", err)
				}
			}()
		}
	}

	srv, err := handler.NewServer(ds, sseHub, &handler.ServerConfig{
		Port:        cfg.Server.Port,
		Debug:       cfg.Server.Debug,
		CORSOrigins: cfg.Server.CORSOrigins,
	}, sugar.Named("server"))
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Start(ctx) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sugar.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		sugar.Warnw("Server shutdown error", "error", err)
	}
	sugar.Info("Server stopped")
	return nil
}
