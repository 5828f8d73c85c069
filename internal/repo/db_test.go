package repo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dkaravias/go-laptop-registry/internal/domain"
)

func TestOpenSQLite_ErrorOnBadPath(t *testing.T) {
	base := t.TempDir()
	bad := filepath.Join(base, "does-not-exist", "registry.db")

	db, err := OpenSQLite(bad)
	if err == nil || db != nil {
		t.Fatalf("expected error opening %q, got db=%v err=%v", bad, db, err)
	}

	// Be tolerant across platforms/drivers:
	// - Windows: *os.PathError ("CreateFile … cannot find the file specified")
	// - SQLite:  "unable to open database file" / "out of memory (14)"
	// - Unix:    "no such file or directory"
	lower := strings.ToLower(err.Error())
	if !(os.IsNotExist(err) ||
		strings.Contains(lower, "unable to open database file") ||
		strings.Contains(lower, "no such file or directory") ||
		strings.Contains(lower, "out of memory")) {
		t.Fatalf("unexpected error opening %q: %v", bad, err)
	}
}

func TestOpenSQLite_MigrateAndSeed(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "registry.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	for _, tbl := range []any{
		&domain.Token{}, &domain.Laptop{}, &domain.RepairLog{},
		&domain.RegistryState{}, &domain.Receipt{},
	} {
		if !db.Migrator().HasTable(tbl) {
			t.Fatalf("expected table for %T after migration", tbl)
		}
	}

	ctx := context.Background()
	if err := SeedState(ctx, db, "admin"); err != nil {
		t.Fatalf("SeedState: %v", err)
	}
	st, err := GetState(ctx, db)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if st.Admin != "admin" || st.Paused || st.LastTokenID != 0 || st.LastLogID != 0 {
		t.Fatalf("unexpected seeded state: %+v", st)
	}

	// WAL journal mode sticks on the file-backed database.
	var mode string
	if err := db.Raw("PRAGMA journal_mode;").Scan(&mode).Error; err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if !strings.EqualFold(mode, "wal") {
		t.Fatalf("journal_mode = %q; want wal", mode)
	}
}

func TestOpenSQLite_PoolSettings(t *testing.T) {
	tmp := t.TempDir()
	db, err := OpenSQLite(filepath.Join(tmp, "registry.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	stats := sqlDB.Stats()
	if stats.MaxOpenConnections != 10 {
		t.Fatalf("MaxOpenConnections = %d; want 10", stats.MaxOpenConnections)
	}

	// Connections should be usable straight away.
	deadlineCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(deadlineCtx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
