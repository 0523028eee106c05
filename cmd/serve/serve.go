package serve

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tphakala/video-enrichment-api/internal/api"
	"github.com/tphakala/video-enrichment-api/internal/buildinfo"
	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/datastore"
	"github.com/tphakala/video-enrichment-api/internal/domain"
	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/objectstore"
	"github.com/tphakala/video-enrichment-api/internal/observability"
	"github.com/tphakala/video-enrichment-api/internal/telemetry"
	"github.com/tphakala/video-enrichment-api/internal/videoprobe"
)

// Command creates a new cobra.Command that runs the HTTP API.
func Command(settings *conf.Settings) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				settings.API.Listen = listen
			}
			return run(cmd.Context(), settings)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Address to listen on, overrides api.listen")

	return cmd
}

// run wires every component and blocks until the server shuts down
func run(ctx context.Context, settings *conf.Settings) error {
	log := logger.Global().Module("main")
	log.Info("starting video-enrichment-api",
		logger.String("version", buildinfo.Version()),
		logger.String("environment", settings.Main.Environment),
		logger.String("storage", settings.Storage.Backend),
		logger.String("database", settings.Database.Type))

	if err := telemetry.Init(settings, logger.Global().Module("telemetry")); err != nil {
		// error reporting is optional, keep serving without it
		log.Warn("telemetry disabled", logger.Error(err))
	}
	defer telemetry.Flush()

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	db, err := datastore.Open(settings, datastore.Options{
		Logger:    logger.Global().Module("datastore"),
		Metrics:   metrics.Datastore,
		Actor:     settings.Main.Name,
		SlowQuery: settings.Database.SlowQuery,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close database", logger.Error(err))
		}
	}()

	if err := db.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	store, err := objectstore.New(ctx, settings, metrics.ObjectStore, logger.Global().Module("objectstore"))
	if err != nil {
		return fmt.Errorf("failed to create object store: %w", err)
	}

	scratchDir := settings.Video.ScratchDir
	if scratchDir == "" {
		scratchDir = os.TempDir()
	}

	managers := domain.New(domain.Deps{
		Name:  settings.Main.Name,
		Repos: domain.NewRepositories(db.DB()),
		Store: store,
		Prober: videoprobe.NewFFmpegProber(
			settings.Video.FFprobePath,
			settings.Video.FFmpegPath,
			settings.Video.ProbeTimeout,
			logger.Global().Module("videoprobe"),
		),
		DB:         db,
		Scratch:    afero.NewOsFs(),
		ScratchDir: scratchDir,
		Paths:      domain.PathsFromSettings(&settings.S3),
		Log:        logger.Global().Module("domain"),
	})

	server, err := api.New(settings, managers,
		api.WithLogger(logger.Global().Module("api")),
		api.WithMetrics(metrics))
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	return server.StartWithGracefulShutdown()
}
