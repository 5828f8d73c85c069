// Package repo implements the data persistence layer for the registry
// domain entities, backed by GORM. This file provides repository helpers for
// the Receipt model used to implement safe-retry semantics for the mutating
// POST endpoints (mint, append repair log).
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dkaravias/go-laptop-registry/internal/domain"
)

// ErrDuplicate indicates that a receipt already exists for the given
// (caller, scope, key) tuple.
var ErrDuplicate = errors.New("duplicate")

// GetReceipt returns a non-expired receipt or ErrNotFound.
func GetReceipt(ctx context.Context, db *gorm.DB, caller, scope, key string, now time.Time) (*domain.Receipt, error) {
	if strings.TrimSpace(scope) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Receipt
	err := db.WithContext(ctx).
		Where("caller = ? AND scope = ? AND key = ? AND expires_at > ?", caller, scope, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateReceipt inserts a receipt and returns ErrDuplicate on unique violation.
func CreateReceipt(ctx context.Context, db *gorm.DB, caller, scope, key string, resourceID uint64, status int, ttl time.Duration) (*domain.Receipt, error) {
	now := time.Now().UTC()
	rec := &domain.Receipt{
		ID:         uuid.NewString(),
		Caller:     caller,
		Scope:      scope,
		Key:        key,
		ResourceID: resourceID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}
