package movies

import (
	"time"

	"gorm.io/gorm"
)

// LinkType is the presentation bucket of a link. The column is free text;
// values other than the two below are kept in storage but never shown.
type LinkType string

const (
	LinkDownload LinkType = "download"
	LinkWatch    LinkType = "watch"
)

type MovieLink struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	MovieID   int64     `json:"movie_id" gorm:"not null;index"`
	Type      LinkType  `json:"type" gorm:"type:varchar(16);not null"`
	Quality   string    `json:"quality" gorm:"type:varchar(64)"`
	URL       string    `json:"url" gorm:"type:text;not null;check:chk_movie_links_url,url <> ''"`
	Size      *string   `json:"size" gorm:"type:varchar(64)"`
	Server    *string   `json:"server" gorm:"type:varchar(128)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// MigrateMovieLinks must run after MigrateMovies; it also ensures the
// cascading foreign key declared on Movie.Links.
func MigrateMovieLinks(db *gorm.DB) error {
	if err := db.AutoMigrate(&MovieLink{}); err != nil {
		return err
	}
	if !db.Migrator().HasConstraint(&Movie{}, "Links") {
		return db.Migrator().CreateConstraint(&Movie{}, "Links")
	}
	return nil
}
