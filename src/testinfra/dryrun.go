package testinfra

import (
	"strings"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Statement is one SQL statement built by a dry-run session.
type Statement struct {
	SQL  string
	Vars []interface{}
}

// SQLRecorder collects the statements a dry-run session builds. Safe for
// concurrent use.
type SQLRecorder struct {
	mu    sync.Mutex
	stmts []Statement
}

func (r *SQLRecorder) record(db *gorm.DB) {
	if db.Statement.SQL.Len() == 0 {
		return
	}
	vars := append([]interface{}(nil), db.Statement.Vars...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.stmts = append(r.stmts, Statement{SQL: db.Statement.SQL.String(), Vars: vars})
}

func (r *SQLRecorder) Statements() []Statement {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Statement(nil), r.stmts...)
}

// Find returns the first statement whose SQL contains marker.
func (r *SQLRecorder) Find(marker string) (Statement, bool) {
	for _, s := range r.Statements() {
		if strings.Contains(s.SQL, marker) {
			return s, true
		}
	}
	return Statement{}, false
}

// NewDryRun opens a Postgres-dialect session that builds SQL without a
// server. Queries return gorm.ErrDryRunModeUnsupported or empty results.
func NewDryRun(t *testing.T) (*gorm.DB, *SQLRecorder) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=postgres dbname=film_oasis sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		t.Fatalf("open dry-run session: %v", err)
	}

	rec := &SQLRecorder{}
	if err := db.Callback().Query().After("gorm:query").Register("testinfra:record", rec.record); err != nil {
		t.Fatalf("register query recorder: %v", err)
	}
	if err := db.Callback().Row().After("gorm:row").Register("testinfra:record", rec.record); err != nil {
		t.Fatalf("register row recorder: %v", err)
	}
	if err := db.Callback().Update().After("gorm:update").Register("testinfra:record", rec.record); err != nil {
		t.Fatalf("register update recorder: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db, rec
}
