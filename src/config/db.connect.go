package config

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"filmoasis/src/logging"
	movies "filmoasis/src/modules/movies/models"
	statistics "filmoasis/src/modules/statistics/models"
)

// ConnectDatabase opens the Postgres pool and migrates the schema.
func ConnectDatabase(s DatabaseSettings) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(s.DSN()), &gorm.Config{
		Logger:         logging.NewGormLogger(s.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}
	sqlDB.SetMaxOpenConns(s.MaxOpenConns)
	sqlDB.SetMaxIdleConns(s.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(s.ConnMaxLifetime)

	logging.Info().
		Str("host", s.Host).
		Int("port", s.Port).
		Str("database", s.Name).
		Msg("Connected to PostgreSQL database")

	if err := RunMigrations(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// CheckConnection pings the pool and runs a trivial query.
func CheckConnection(ctx context.Context, db *gorm.DB) bool {
	if db == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	sqlDB, err := db.DB()
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to get generic database object")
		return false
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		logging.Warn().Err(err).Msg("Database ping failed")
		return false
	}

	var result int
	if err := db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		logging.Warn().Err(err).Msg("Test query failed")
		return false
	}
	return result == 1
}

// CloseDatabase releases the pool.
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RunMigrations creates or updates every table, parents first.
func RunMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		movies.MigrateMovies,
		movies.MigrateMovieLinks,
		statistics.MigrateUsers,
		statistics.MigrateWatchHistory,
	}

	for _, migrate := range migrations {
		if err := migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	logging.Info().Msg("All migrations completed successfully")
	return nil
}
