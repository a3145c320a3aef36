package db

import (
	"path/filepath"
	"testing"

	"github.com/careerpath/careerpath-backend/internal/domain"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

func TestPostgresDSN(t *testing.T) {
	cfg := Config{User: "u", Password: "p", Host: "h", Port: "5433", Name: "cp", SSLMode: "require"}
	want := "postgres://u:p@h:5433/cp?sslmode=require"
	if got := cfg.PostgresDSN(); got != want {
		t.Fatalf("dsn: want=%q got=%q", want, got)
	}
}

func TestSQLiteServiceMigrates(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	path := filepath.Join(t.TempDir(), "cp.db")
	svc, err := NewService(log, Config{Driver: DriverSQLite, SQLitePath: path})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	defer svc.Close()
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	for _, m := range domain.Models() {
		if !svc.DB().Migrator().HasTable(m) {
			t.Fatalf("missing table for %T", m)
		}
	}
}

func TestUnsupportedDriver(t *testing.T) {
	if _, err := NewService(logger.Nop(), Config{Driver: "mysql"}); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}
