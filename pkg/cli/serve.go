package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloudstub/cloudstub/pkg/config"
	"github.com/cloudstub/cloudstub/pkg/cursor"
	"github.com/cloudstub/cloudstub/pkg/fixture"
	"github.com/cloudstub/cloudstub/pkg/functions"
	"github.com/cloudstub/cloudstub/pkg/logging"
	"github.com/cloudstub/cloudstub/pkg/logs"
	"github.com/cloudstub/cloudstub/pkg/objectstore"
	"github.com/cloudstub/cloudstub/pkg/server"
)

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	configPath     string
	listen         string
	ingestionDelay time.Duration
	fixtures       []string
	logLevel       string
	logFormat      string
}

var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the emulator",
	Example: `  # Serve with defaults on 127.0.0.1:4566
  cloudstub serve

  # Load fixtures and shrink the simulated ingestion delay
  cloudstub serve --fixtures ./fixtures --ingestion-delay 5m`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	f := serveCmd.Flags()
	f.StringVarP(&serveFlagVals.configPath, "config", "c", "", "path to cloudstub.yaml")
	f.StringVar(&serveFlagVals.listen, "listen", "", "HTTP bind address")
	f.DurationVar(&serveFlagVals.ingestionDelay, "ingestion-delay", 0, "simulated visibility delay for stream metadata")
	f.StringSliceVar(&serveFlagVals.fixtures, "fixtures", nil, "fixture files or directories to load at startup")
	f.StringVar(&serveFlagVals.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.StringVar(&serveFlagVals.logFormat, "log-format", "", "log format (text, json)")
}

// resolveConfig merges the config file (when present) with flag
// overrides; flags win.
func resolveConfig(flags serveFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flags.listen != "" {
		cfg.Listen = flags.listen
	}
	if flags.ingestionDelay > 0 {
		cfg.IngestionDelay = config.Duration(flags.ingestionDelay)
	}
	if len(flags.fixtures) > 0 {
		cfg.Fixtures = flags.fixtures
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command) error {
	cfg, err := resolveConfig(serveFlagVals)
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: logging.ParseFormat(cfg.Log.Format),
	})

	registry := cursor.NewRegistry()
	logStore := logs.NewStore(registry, logs.WithIngestionDelay(time.Duration(cfg.IngestionDelay)))
	objStore := objectstore.New(registry)
	fnStore := functions.New(registry)

	importer := &fixture.Importer{Logs: logStore, Objects: objStore, Functions: fnStore}
	for _, path := range cfg.Fixtures {
		if err := importer.ApplyPath(path); err != nil {
			return fmt.Errorf("loading fixture %s: %w", path, err)
		}
		log.Info("fixture loaded", "path", path)
	}

	srv := server.New(cfg.Listen, logStore, objStore, fnStore, server.WithLogger(log))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("signal received, shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
