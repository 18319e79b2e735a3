package movies

import (
	"github.com/lib/pq"

	movies "filmoasis/src/modules/movies/models"
)

type MovieCreateRequest struct {
	TMDBID            *int64       `json:"tmdb_id"`
	Title             string       `json:"title"`
	TitleAr           *string      `json:"title_ar"`
	Description       *string      `json:"description"`
	DescriptionAr     *string      `json:"description_ar"`
	ReleaseDate       *movies.Date `json:"release_date"`
	Rating            *float64     `json:"rating"`
	Genres            []string     `json:"genres"`
	TMDBPosterPath    *string      `json:"tmdb_poster_path"`
	TMDBBackdropPath  *string      `json:"tmdb_backdrop_path"`
	LocalPosterPath   *string      `json:"local_poster_path"`
	LocalBackdropPath *string      `json:"local_backdrop_path"`
}

func (r MovieCreateRequest) Movie() movies.Movie {
	return movies.Movie{
		TMDBID:            r.TMDBID,
		Title:             r.Title,
		TitleAr:           r.TitleAr,
		Description:       r.Description,
		DescriptionAr:     r.DescriptionAr,
		ReleaseDate:       r.ReleaseDate,
		Rating:            r.Rating,
		Genres:            pq.StringArray(r.Genres),
		TMDBPosterPath:    r.TMDBPosterPath,
		TMDBBackdropPath:  r.TMDBBackdropPath,
		LocalPosterPath:   r.LocalPosterPath,
		LocalBackdropPath: r.LocalBackdropPath,
	}
}

// MovieUpdateRequest carries the fields an update overwrites. Fields left
// out of the body are written as NULL.
type MovieUpdateRequest struct {
	Title         string       `json:"title"`
	TitleAr       *string      `json:"title_ar"`
	Description   *string      `json:"description"`
	DescriptionAr *string      `json:"description_ar"`
	ReleaseDate   *movies.Date `json:"release_date"`
	Rating        *float64     `json:"rating"`
	Genres        []string     `json:"genres"`
}

// Columns returns the column/value pairs of the update. Absent values are
// untyped nils so the driver binds them as NULL.
func (r MovieUpdateRequest) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"title":          r.Title,
		"title_ar":       nullable(r.TitleAr),
		"description":    nullable(r.Description),
		"description_ar": nullable(r.DescriptionAr),
		"release_date":   nil,
		"rating":         nil,
		"genres":         nil,
	}
	if r.ReleaseDate != nil {
		cols["release_date"] = *r.ReleaseDate
	}
	if r.Rating != nil {
		cols["rating"] = *r.Rating
	}
	if r.Genres != nil {
		cols["genres"] = pq.StringArray(r.Genres)
	}
	return cols
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
