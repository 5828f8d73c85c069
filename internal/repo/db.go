// Package repo implements the data persistence layer for the registry
// domain entities, backed by GORM. This file contains database bootstrapping
// helpers for SQLite (pure Go driver), schema migrations, and seeding of the
// singleton registry state row.
package repo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/dkaravias/go-laptop-registry/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Query-level tracing piggybacks on the global tracer provider; metrics
	// are covered by the HTTP middleware instead.
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the registry schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Token{},
		&domain.Laptop{},
		&domain.RepairLog{},
		&domain.RegistryState{},
		&domain.Receipt{},
	)
}

// SeedState inserts the singleton registry state row if it does not exist.
// The admin identity comes from configuration; counters start at zero so the
// first minted token gets id 1. An existing row is left untouched, so the
// configured admin never overrides a later SetAdmin.
func SeedState(ctx context.Context, db *gorm.DB, admin string) error {
	var st domain.RegistryState
	err := db.WithContext(ctx).First(&st, "id = ?", domain.RegistryStateID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	st = domain.RegistryState{
		ID:     domain.RegistryStateID,
		Admin:  admin,
		Paused: false,
	}
	return db.WithContext(ctx).Create(&st).Error
}
