package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Settings struct {
	App      AppSettings      `koanf:"app"`
	Database DatabaseSettings `koanf:"database"`
	Redis    RedisSettings    `koanf:"redis"`
	Minio    MinioSettings    `koanf:"minio"`
	Artwork  ArtworkSettings  `koanf:"artwork"`
	Stats    StatsSettings    `koanf:"stats"`
	Logging  LoggingSettings  `koanf:"logging"`
}

type AppSettings struct {
	Env              string        `koanf:"env"`
	Host             string        `koanf:"host" validate:"required"`
	Port             int           `koanf:"port" validate:"min=1,max=65535"`
	CORSAllowOrigins []string      `koanf:"cors_allow_origins" validate:"min=1"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

func (a AppSettings) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

func (a AppSettings) IsProduction() bool {
	return a.Env == "production"
}

type DatabaseSettings struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	LogLevel        string        `koanf:"log_level" validate:"oneof=silent error warn info"`
}

func (d DatabaseSettings) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisSettings struct {
	Mode       string   `koanf:"mode" validate:"omitempty,oneof=standalone sentinel"`
	Host       string   `koanf:"host"`
	Port       int      `koanf:"port" validate:"min=1,max=65535"`
	Password   string   `koanf:"password"`
	MasterName string   `koanf:"master_name" validate:"required_if=Mode sentinel"`
	Sentinels  []string `koanf:"sentinels" validate:"required_if=Mode sentinel"`
	Channel    string   `koanf:"channel" validate:"required"`
}

// Enabled reports whether a Redis server is configured.
func (r RedisSettings) Enabled() bool {
	if r.Mode == "sentinel" {
		return true
	}
	return r.Host != ""
}

type MinioSettings struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key" validate:"required_with=Endpoint"`
	SecretKey string `koanf:"secret_key" validate:"required_with=Endpoint"`
	Bucket    string `koanf:"bucket" validate:"required"`
	UseSSL    bool   `koanf:"use_ssl"`
}

func (m MinioSettings) Enabled() bool {
	return m.Endpoint != ""
}

type ArtworkSettings struct {
	Schedule     string `koanf:"schedule" validate:"required"`
	ImageBaseURL string `koanf:"image_base_url" validate:"required,url"`
	BatchSize    int    `koanf:"batch_size" validate:"min=1"`
}

type StatsSettings struct {
	Timezone string `koanf:"timezone" validate:"required"`
}

// Location resolves the reporting time zone. Load has already checked it.
func (s StatsSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type LoggingSettings struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

func Defaults() Settings {
	return Settings{
		App: AppSettings{
			Env:              "development",
			Host:             "0.0.0.0",
			Port:             2000,
			CORSAllowOrigins: []string{"*"},
			ShutdownTimeout:  15 * time.Second,
		},
		Database: DatabaseSettings{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Name:            "film_oasis",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			LogLevel:        "warn",
		},
		Redis: RedisSettings{
			Port:    6379,
			Channel: "filmoasis:catalog",
		},
		Minio: MinioSettings{
			Bucket: "artwork",
		},
		Artwork: ArtworkSettings{
			Schedule:     "@every 10m",
			ImageBaseURL: "https://image.tmdb.org/t/p/original",
			BatchSize:    50,
		},
		Stats: StatsSettings{
			Timezone: "UTC",
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "json",
		},
	}
}

var envKeys = map[string]string{
	"NODE_ENV":               "app.env",
	"HOST":                   "app.host",
	"APP_PORT":               "app.port",
	"CORS_ALLOW_ORIGINS":     "app.cors_allow_origins",
	"SHUTDOWN_TIMEOUT":       "app.shutdown_timeout",
	"DB_HOST":                "database.host",
	"DB_PORT":                "database.port",
	"DB_USER":                "database.user",
	"DB_PASS":                "database.password",
	"DB_NAME":                "database.name",
	"DB_SSLMODE":             "database.sslmode",
	"DB_MAX_OPEN_CONNS":      "database.max_open_conns",
	"DB_MAX_IDLE_CONNS":      "database.max_idle_conns",
	"DB_CONN_MAX_LIFETIME":   "database.conn_max_lifetime",
	"DB_LOG_LEVEL":           "database.log_level",
	"REDIS_MODE":             "redis.mode",
	"REDIS_HOST":             "redis.host",
	"REDIS_PORT":             "redis.port",
	"REDIS_PASSWORD":         "redis.password",
	"REDIS_MASTER_NAME":      "redis.master_name",
	"REDIS_SENTINELS":        "redis.sentinels",
	"REDIS_CHANNEL":          "redis.channel",
	"MINIO_ENDPOINT":         "minio.endpoint",
	"MINIO_ACCESS_KEY":       "minio.access_key",
	"MINIO_SECRET_KEY":       "minio.secret_key",
	"MINIO_BUCKET":           "minio.bucket",
	"MINIO_USE_SSL":          "minio.use_ssl",
	"ARTWORK_SCHEDULE":       "artwork.schedule",
	"ARTWORK_IMAGE_BASE_URL": "artwork.image_base_url",
	"ARTWORK_BATCH_SIZE":     "artwork.batch_size",
	"STATS_TIMEZONE":         "stats.timezone",
	"LOG_LEVEL":              "logging.level",
	"LOG_FORMAT":             "logging.format",
}

// Comma-separated env values that map onto slices.
var sliceKeys = []string{
	"app.cors_allow_origins",
	"redis.sentinels",
}

// envTransformFunc maps a known environment variable to its koanf path.
// Unknown variables map to "" and are skipped.
func envTransformFunc(key string) string {
	return envKeys[key]
}

// LoadDotEnv loads .env from the working directory when it exists.
func LoadDotEnv() (bool, error) {
	if _, err := os.Stat(".env"); err != nil {
		return false, nil
	}
	if err := godotenv.Load(); err != nil {
		return false, fmt.Errorf("load .env: %w", err)
	}
	return true, nil
}

// Load layers the defaults with environment variables and validates the result.
func Load() (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := splitSliceKeys(k); err != nil {
		return nil, err
	}

	s := &Settings{}
	if err := k.Unmarshal("", s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return s, nil
}

func splitSliceKeys(k *koanf.Koanf) error {
	for _, path := range sliceKeys {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := []string{}
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var validate = validator.New()

func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	if _, err := time.LoadLocation(s.Stats.Timezone); err != nil {
		return fmt.Errorf("stats timezone %q: %w", s.Stats.Timezone, err)
	}
	return nil
}
