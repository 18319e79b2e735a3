package statistics

import (
	"time"

	"gorm.io/gorm"

	movies "filmoasis/src/modules/movies/models"
)

// WatchHistory is one viewing event. Rows are appended by the player; the
// catalog service only reads them.
type WatchHistory struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    *int64    `json:"user_id" gorm:"index"`
	MovieID   *int64    `json:"movie_id" gorm:"index"`
	WatchTime time.Time `json:"watch_time" gorm:"type:timestamptz;not null;default:now();index"`
	Duration  int       `json:"duration" gorm:"not null;default:0"`

	User  *User         `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL"`
	Movie *movies.Movie `json:"-" gorm:"foreignKey:MovieID;references:ID;constraint:OnDelete:SET NULL"`
}

func (WatchHistory) TableName() string {
	return "watch_history"
}

func MigrateWatchHistory(db *gorm.DB) error {
	return db.AutoMigrate(&WatchHistory{})
}
