package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/promocheck/pkg/config"
	"github.com/angelmondragon/promocheck/pkg/db"
	"github.com/angelmondragon/promocheck/pkg/db/models"
	"github.com/angelmondragon/promocheck/pkg/logger"
)

func TestPromotionsMigrationContainsSchema(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_promotions_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no promotions migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS promotions",
		"rules JSONB",
		"minimum_order_value NUMERIC(12,2)",
		"CREATE INDEX IF NOT EXISTS idx_promotions_active_window",
		"DROP TABLE IF EXISTS promotions",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("expected shipped migrations to validate: %v", err)
	}
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad-name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename to fail validation")
	}

	dir = t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "20260101000000_missing_down.sql"), []byte("-- +goose Up\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected missing down section to fail validation")
	}

	dir = t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "20260101000000_reversed.sql"), []byte("-- +goose Down\n-- +goose Up\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Bad.sql"), []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := ValidateDir(dir)
	if err == nil {
		t.Fatal("expected reversed sections to fail validation")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("expected both problems reported, got %d: %v", got, err)
	}

	if err := ValidateDir(t.TempDir()); err == nil {
		t.Fatal("expected empty directory to fail validation")
	}
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	path, err := CreateSQLMigration(dir, "Add Promotion Priority!", now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if filepath.Base(path) != "20260302093000_add_promotion_priority.sql" {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
	if _, err := CreateSQLMigration(dir, "add promotion priority", now); err == nil {
		t.Fatal("expected existing migration to be kept")
	}
	if _, err := CreateSQLMigration(dir, "!!!", now); err == nil {
		t.Fatal("expected unusable name to fail")
	}
}

func TestParseVersion(t *testing.T) {
	if v, err := ParseVersion("20260301120000"); err != nil || v != 20260301120000 {
		t.Fatalf("unexpected parse result %d %v", v, err)
	}
	for _, bad := range []string{"", "2026", "2026030112000x"} {
		if _, err := ParseVersion(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestMaybeRunDevAutoMigratesSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:migrate_autorun?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	client := db.NewFromConn(conn)
	cfg := &config.Config{
		App:        config.AppConfig{Env: config.AppEnvDev},
		DB:         config.DBConfig{Driver: config.DBDriverSQLite},
		Promotions: config.PromotionsConfig{AutoMigrate: true},
	}

	if err := MaybeRunDev(context.Background(), cfg, logger.Nop(), client); err != nil {
		t.Fatalf("MaybeRunDev: %v", err)
	}
	if !conn.Migrator().HasTable(&models.Promotion{}) {
		t.Fatal("expected promotions table to exist")
	}
}

func TestMaybeRunDevSkipsOutsideDev(t *testing.T) {
	cfg := &config.Config{
		App:        config.AppConfig{Env: config.AppEnvProd},
		Promotions: config.PromotionsConfig{AutoMigrate: true},
	}
	if err := MaybeRunDev(context.Background(), cfg, logger.Nop(), nil); err != nil {
		t.Fatalf("expected no-op outside dev, got %v", err)
	}
}
