package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"filmoasis/src/config"
	"filmoasis/src/logging"
	eventsctl "filmoasis/src/modules/events/controllers"
	events "filmoasis/src/modules/events/services"
	filesctl "filmoasis/src/modules/files/controllers"
	files "filmoasis/src/modules/files/services"
	moviesctl "filmoasis/src/modules/movies/controllers"
	movies "filmoasis/src/modules/movies/services"
	statisticsctl "filmoasis/src/modules/statistics/controllers"
	statistics "filmoasis/src/modules/statistics/services"
	"filmoasis/src/routes"
	"filmoasis/src/services"
)

func main() {
	loaded, envErr := config.LoadDotEnv()

	settings, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid configuration")
	}

	logging.Init(logging.Config{
		Level:  settings.Logging.Level,
		Format: settings.Logging.Format,
	})
	if envErr != nil {
		logging.Warn().Err(envErr).Msg("Could not load .env file")
	} else if loaded {
		logging.Info().Msg("Loaded .env file")
	}
	logging.Info().Str("env", settings.App.Env).Msg("Starting Film Oasis API")

	if settings.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, settings); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Server stopped")
}

func run(ctx context.Context, settings *config.Settings) error {
	db, err := config.ConnectDatabase(settings.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			logging.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	hub := events.NewHub(events.DefaultBuffer)
	defer hub.Close()
	publishers := events.Multi{hub}

	rdb, err := config.ConnectRedis(ctx, settings.Redis)
	if err != nil {
		// Events still reach in-process subscribers without Redis.
		logging.Warn().Err(err).Msg("Redis unavailable")
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		publishers = append(publishers, events.NewRedisPublisher(rdb, settings.Redis.Channel))
	}

	catalog := movies.NewRepository(db, publishers)
	aggregator := statistics.NewAggregator(db, statistics.WithLocation(settings.Stats.Location()))

	deps := routes.Dependencies{
		Movies:     moviesctl.NewMovieController(catalog),
		Statistics: statisticsctl.NewStatisticsController(aggregator),
		Stream:     eventsctl.NewStreamController(hub, settings.App.CORSAllowOrigins),
		Ready: func(ctx context.Context) bool {
			return config.CheckConnection(ctx, db)
		},
	}

	scheduler, err := setupArtwork(ctx, settings, catalog, &deps)
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() { <-scheduler.Stop().Done() }()
	}

	return serve(ctx, settings.App, routes.NewRouter(settings.App.CORSAllowOrigins, deps))
}

// setupArtwork wires the MinIO-backed static route and mirror job. Both are
// skipped when MinIO is not configured.
func setupArtwork(ctx context.Context, settings *config.Settings, catalog *movies.Repository, deps *routes.Dependencies) (*cron.Cron, error) {
	client, err := config.ConnectMinio(settings.Minio)
	if err != nil || client == nil {
		return nil, err
	}

	store := files.NewArtworkStore(client, settings.Minio.Bucket, settings.Artwork.ImageBaseURL)
	if err := store.EnsureBucket(ctx); err != nil {
		logging.Warn().Err(err).Msg("Artwork bucket unavailable")
	}
	deps.Files = filesctl.NewFileController(store)

	job := services.NewArtworkJob(catalog, store, settings.Artwork.BatchSize)
	return services.SetupBackgroundJobs(ctx, settings.Artwork.Schedule, job)
}

func serve(ctx context.Context, app config.AppSettings, handler http.Handler) error {
	srv := &http.Server{
		Addr:              app.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
