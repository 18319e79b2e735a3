package movies

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	events "filmoasis/src/modules/events/models"
	lib "filmoasis/src/modules/movies/lib"
	movies "filmoasis/src/modules/movies/models"
	"filmoasis/src/utils"
)

const movieOrder = "created_at DESC, id DESC"

// EventPublisher receives catalog changes after they are committed.
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event)
}

// Repository is the catalog data access layer over movies and movie_links.
type Repository struct {
	db        *gorm.DB
	publisher EventPublisher
}

// NewRepository builds a repository on db. publisher may be nil.
func NewRepository(db *gorm.DB, publisher EventPublisher) *Repository {
	return &Repository{db: db, publisher: publisher}
}

func (r *Repository) publish(ctx context.Context, e events.Event) {
	if r.publisher != nil {
		r.publisher.Publish(ctx, e)
	}
}

func (r *Repository) ListMovies(ctx context.Context) ([]movies.Movie, error) {
	list := []movies.Movie{}
	if err := r.db.WithContext(ctx).Order(movieOrder).Find(&list).Error; err != nil {
		return nil, utils.StorageFailure("list movies", err)
	}
	return list, nil
}

func (r *Repository) GetMovie(ctx context.Context, id int64) (*movies.Movie, error) {
	var m movies.Movie
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Movie not found")
	}
	if err != nil {
		return nil, utils.StorageFailure("get movie", err)
	}
	return &m, nil
}

// GetMovieByTMDBID returns the most recently created movie with the given
// TMDB id.
func (r *Repository) GetMovieByTMDBID(ctx context.Context, tmdbID int64) (*movies.Movie, error) {
	var m movies.Movie
	err := r.db.WithContext(ctx).Where("tmdb_id = ?", tmdbID).Order(movieOrder).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Movie not found")
	}
	if err != nil {
		return nil, utils.StorageFailure("get movie by tmdb id", err)
	}
	return &m, nil
}

func (r *Repository) CreateMovie(ctx context.Context, req lib.MovieCreateRequest) (*movies.Movie, error) {
	m := req.Movie()
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, utils.StorageFailure("create movie", err)
	}
	r.publish(ctx, events.NewMovieEvent(events.MovieCreated, m.ID))
	return &m, nil
}

// UpdateMovie overwrites the mutable fields of a movie in one statement and
// returns the stored row.
func (r *Repository) UpdateMovie(ctx context.Context, id int64, req lib.MovieUpdateRequest) (*movies.Movie, error) {
	cols := req.Columns()
	cols["updated_at"] = time.Now()

	var m movies.Movie
	res := r.db.WithContext(ctx).
		Model(&m).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return nil, utils.StorageFailure("update movie", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.NotFound("Movie not found")
	}
	r.publish(ctx, events.NewMovieEvent(events.MovieUpdated, m.ID))
	return &m, nil
}

// DeleteMovie removes a movie and, through the foreign key, its links.
func (r *Repository) DeleteMovie(ctx context.Context, id int64) (*movies.Movie, error) {
	var m movies.Movie
	res := r.db.WithContext(ctx).Clauses(clause.Returning{}).Where("id = ?", id).Delete(&m)
	if res.Error != nil {
		return nil, utils.StorageFailure("delete movie", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.NotFound("Movie not found")
	}
	r.publish(ctx, events.NewMovieEvent(events.MovieDeleted, id))
	return &m, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchMovies matches q case-insensitively as a substring of the English
// or Arabic title or description.
func (r *Repository) SearchMovies(ctx context.Context, q string) ([]movies.Movie, error) {
	if strings.TrimSpace(q) == "" {
		return nil, utils.Invalid("Search query is required")
	}

	pattern := "%" + likeEscaper.Replace(q) + "%"
	list := []movies.Movie{}
	err := r.db.WithContext(ctx).
		Where("title ILIKE @q OR title_ar ILIKE @q OR description ILIKE @q OR description_ar ILIKE @q",
			map[string]interface{}{"q": pattern}).
		Order(movieOrder).
		Find(&list).Error
	if err != nil {
		return nil, utils.StorageFailure("search movies", err)
	}
	return list, nil
}

func (r *Repository) ListMovieLinks(ctx context.Context, movieID int64) ([]movies.MovieLink, error) {
	links := []movies.MovieLink{}
	err := r.db.WithContext(ctx).Where("movie_id = ?", movieID).Order(movieOrder).Find(&links).Error
	if err != nil {
		return nil, utils.StorageFailure("list movie links", err)
	}
	return links, nil
}

// AddMovieLink inserts a link. Callers check that the movie exists.
func (r *Repository) AddMovieLink(ctx context.Context, movieID int64, req lib.LinkCreateRequest) (*movies.MovieLink, error) {
	link := req.Link(movieID)
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		return nil, utils.StorageFailure("add movie link", err)
	}
	r.publish(ctx, events.NewLinkEvent(events.LinkCreated, movieID, link.ID))
	return &link, nil
}

// DeleteMovieLink removes a link only if it belongs to movieID.
func (r *Repository) DeleteMovieLink(ctx context.Context, movieID, linkID int64) (*movies.MovieLink, error) {
	var link movies.MovieLink
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ? AND movie_id = ?", linkID, movieID).
		Delete(&link)
	if res.Error != nil {
		return nil, utils.StorageFailure("delete movie link", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.NotFound("Link not found")
	}
	r.publish(ctx, events.NewLinkEvent(events.LinkDeleted, movieID, linkID))
	return &link, nil
}

// ReplaceMovieLinks swaps the full link set of a movie in one transaction.
// On any failure the previous links are left untouched.
func (r *Repository) ReplaceMovieLinks(ctx context.Context, movieID int64, links []movies.MovieLink) ([]movies.MovieLink, error) {
	for i := range links {
		links[i].ID = 0
		links[i].MovieID = movieID
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", movieID).Delete(&movies.MovieLink{}).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return nil, utils.StorageFailure("replace movie links", err)
	}

	r.publish(ctx, events.NewMovieEvent(events.LinksReplaced, movieID))
	if links == nil {
		links = []movies.MovieLink{}
	}
	return links, nil
}

// MoviesMissingArtwork lists movies that have a TMDB image path without a
// mirrored copy. Movies never attempted come first, then the least recently
// attempted, so failing sources rotate to the back of the queue.
func (r *Repository) MoviesMissingArtwork(ctx context.Context, limit int) ([]movies.Movie, error) {
	list := []movies.Movie{}
	err := r.db.WithContext(ctx).
		Where("(COALESCE(tmdb_poster_path, '') <> '' AND local_poster_path IS NULL) OR " +
			"(COALESCE(tmdb_backdrop_path, '') <> '' AND local_backdrop_path IS NULL)").
		Order("artwork_attempted_at ASC NULLS FIRST, id").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, utils.StorageFailure("list movies missing artwork", err)
	}
	return list, nil
}

// SetLocalArtwork records mirrored object keys. Nil keys are left unchanged.
func (r *Repository) SetLocalArtwork(ctx context.Context, id int64, poster, backdrop *string) error {
	cols := map[string]interface{}{}
	if poster != nil {
		cols["local_poster_path"] = *poster
	}
	if backdrop != nil {
		cols["local_backdrop_path"] = *backdrop
	}
	if len(cols) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&movies.Movie{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return utils.StorageFailure("set local artwork", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("Movie not found")
	}
	r.publish(ctx, events.NewMovieEvent(events.MovieUpdated, id))
	return nil
}

// MarkArtworkAttempted stamps a failed mirror attempt on the movie.
func (r *Repository) MarkArtworkAttempted(ctx context.Context, id int64, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&movies.Movie{}).
		Where("id = ?", id).
		UpdateColumn("artwork_attempted_at", at).Error
	if err != nil {
		return utils.StorageFailure("mark artwork attempted", err)
	}
	return nil
}
