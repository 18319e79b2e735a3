package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if s.Database.MaxOpenConns != 25 {
		t.Errorf("MaxOpenConns = %d, want 25", s.Database.MaxOpenConns)
	}
	if s.Artwork.Schedule != "@every 10m" {
		t.Errorf("Artwork.Schedule = %q", s.Artwork.Schedule)
	}
	if s.App.ShutdownTimeout != 15*time.Second {
		t.Errorf("ShutdownTimeout = %v", s.App.ShutdownTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("NODE_ENV", "production")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "oasis")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_NAME", "catalog")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")
	t.Setenv("REDIS_MODE", "sentinel")
	t.Setenv("REDIS_MASTER_NAME", "mymaster")
	t.Setenv("REDIS_SENTINELS", "s1:26379, s2:26379,,")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("STATS_TIMEZONE", "Africa/Cairo")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !s.App.IsProduction() {
		t.Error("expected production environment")
	}
	if s.App.Addr() != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", s.App.Addr())
	}
	if got := s.Database.DSN(); !strings.Contains(got, "host=db.internal port=6543 user=oasis password=secret dbname=catalog") {
		t.Errorf("DSN() = %q", got)
	}
	if s.Database.ConnMaxLifetime != 90*time.Second {
		t.Errorf("ConnMaxLifetime = %v", s.Database.ConnMaxLifetime)
	}
	if !s.Redis.Enabled() {
		t.Error("expected redis enabled in sentinel mode")
	}
	if len(s.Redis.Sentinels) != 2 || s.Redis.Sentinels[1] != "s2:26379" {
		t.Errorf("Sentinels = %v", s.Redis.Sentinels)
	}
	if len(s.App.CORSAllowOrigins) != 2 {
		t.Errorf("CORSAllowOrigins = %v", s.App.CORSAllowOrigins)
	}
	if s.Stats.Location().String() != "Africa/Cairo" {
		t.Errorf("Location() = %v", s.Stats.Location())
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "APP_PORT", "70000"},
		{"bad sslmode", "DB_SSLMODE", "sometimes"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"bad timezone", "STATS_TIMEZONE", "Mars/Olympus"},
		{"sentinel without master", "REDIS_MODE", "sentinel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			t.Setenv("REDIS_MASTER_NAME", "")
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestMinioEnabled(t *testing.T) {
	s := Defaults()
	if s.Minio.Enabled() {
		t.Error("minio should be disabled without an endpoint")
	}
	s.Minio.Endpoint = "localhost:9000"
	if !s.Minio.Enabled() {
		t.Error("minio should be enabled with an endpoint")
	}
}
