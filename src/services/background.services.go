package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"filmoasis/src/logging"
	"filmoasis/src/metrics"
	movies "filmoasis/src/modules/movies/models"
)

type ArtworkCatalog interface {
	MoviesMissingArtwork(ctx context.Context, limit int) ([]movies.Movie, error)
	SetLocalArtwork(ctx context.Context, id int64, poster, backdrop *string) error
	MarkArtworkAttempted(ctx context.Context, id int64, at time.Time) error
}

type Mirrorer interface {
	Mirror(ctx context.Context, source string) (string, error)
}

// ArtworkJob copies TMDB posters and backdrops into object storage and
// records the local keys on the movie.
type ArtworkJob struct {
	catalog   ArtworkCatalog
	store     Mirrorer
	batchSize int
	timeout   time.Duration
	now       func() time.Time
}

func NewArtworkJob(catalog ArtworkCatalog, store Mirrorer, batchSize int) *ArtworkJob {
	return &ArtworkJob{
		catalog:   catalog,
		store:     store,
		batchSize: batchSize,
		timeout:   5 * time.Minute,
		now:       time.Now,
	}
}

// Run processes one batch and returns how many movies were updated.
// Movies with a failed source are stamped so the next batch starts with
// movies that have not been tried yet.
func (j *ArtworkJob) Run(ctx context.Context) (int, error) {
	list, err := j.catalog.MoviesMissingArtwork(ctx, j.batchSize)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, m := range list {
		if ctx.Err() != nil {
			return updated, ctx.Err()
		}

		poster, posterErr := j.mirror(ctx, m.ID, "poster", m.TMDBPosterPath, m.LocalPosterPath)
		backdrop, backdropErr := j.mirror(ctx, m.ID, "backdrop", m.TMDBBackdropPath, m.LocalBackdropPath)
		if posterErr != nil || backdropErr != nil {
			if err := j.catalog.MarkArtworkAttempted(ctx, m.ID, j.now()); err != nil {
				logging.Error().Err(err).Int64("movie_id", m.ID).Msg("[ImageSync] failed to record artwork attempt")
			}
		}
		if poster == nil && backdrop == nil {
			continue
		}

		if err := j.catalog.SetLocalArtwork(ctx, m.ID, poster, backdrop); err != nil {
			logging.Error().Err(err).Int64("movie_id", m.ID).Msg("[ImageSync] failed to record local artwork")
			continue
		}
		updated++
	}
	return updated, nil
}

func (j *ArtworkJob) mirror(ctx context.Context, movieID int64, kind string, source, local *string) (*string, error) {
	if source == nil || *source == "" || local != nil {
		return nil, nil
	}

	key, err := j.store.Mirror(ctx, *source)
	if err != nil {
		metrics.ArtworkMirrored.WithLabelValues("failed").Inc()
		logging.Warn().Err(err).
			Int64("movie_id", movieID).
			Str("kind", kind).
			Str("source", *source).
			Msg("[ImageSync] failed to mirror artwork")
		return nil, err
	}

	metrics.ArtworkMirrored.WithLabelValues("mirrored").Inc()
	return &key, nil
}

func (j *ArtworkJob) tick(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	start := time.Now()
	n, err := j.Run(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("[ImageSync] run failed")
		return
	}
	logging.Info().
		Int("updated", n).
		Dur("took", time.Since(start)).
		Msg("[ImageSync] run finished")
}

// SetupBackgroundJobs schedules the artwork mirror and starts the scheduler.
// Runs never overlap; the returned scheduler must be stopped on shutdown.
func SetupBackgroundJobs(ctx context.Context, schedule string, job *ArtworkJob) (*cron.Cron, error) {
	l := logging.CronLogger()
	c := cron.New(
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)

	if _, err := c.AddFunc(schedule, func() { job.tick(ctx) }); err != nil {
		return nil, fmt.Errorf("invalid artwork schedule %q: %w", schedule, err)
	}

	c.Start()
	logging.Info().Str("schedule", schedule).Msg("[Cron] Background jobs initialized")
	return c, nil
}
