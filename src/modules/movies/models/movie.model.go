package movies

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Movie struct {
	ID                int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	TMDBID            *int64         `json:"tmdb_id" gorm:"column:tmdb_id;index"`
	Title             string         `json:"title" gorm:"type:varchar(255);not null;check:chk_movies_title,title <> ''"`
	TitleAr           *string        `json:"title_ar" gorm:"type:varchar(255)"`
	Description       *string        `json:"description" gorm:"type:text"`
	DescriptionAr     *string        `json:"description_ar" gorm:"type:text"`
	ReleaseDate       *Date          `json:"release_date" gorm:"type:date"`
	Rating            *float64       `json:"rating" gorm:"type:double precision"`
	Genres            pq.StringArray `json:"genres" gorm:"type:text[]"`
	TMDBPosterPath    *string        `json:"tmdb_poster_path" gorm:"column:tmdb_poster_path;type:text"`
	TMDBBackdropPath  *string        `json:"tmdb_backdrop_path" gorm:"column:tmdb_backdrop_path;type:text"`
	LocalPosterPath   *string        `json:"local_poster_path" gorm:"type:text"`
	LocalBackdropPath *string        `json:"local_backdrop_path" gorm:"type:text"`
	ArtworkTriedAt    *time.Time     `json:"-" gorm:"column:artwork_attempted_at;index"`
	CreatedAt         time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt         time.Time      `json:"updated_at" gorm:"autoUpdateTime"`

	Links []MovieLink `json:"-" gorm:"foreignKey:MovieID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func MigrateMovies(db *gorm.DB) error {
	return db.AutoMigrate(&Movie{})
}
