// Package repo implements the data persistence layer for the registry
// domain entities, backed by GORM. This file provides repository functions
// for the Token model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a token is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// This repository is wrapped by services.RegistryService, which enforces the
// registry's authorization and validation rules and sequences mutations
// inside a single transaction.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dkaravias/go-laptop-registry/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateToken inserts a new Token row with the given pre-assigned id and
// owner. The id always comes from the registry counter; the database never
// allocates identifiers.
func CreateToken(ctx context.Context, db *gorm.DB, id uint64, owner string) (*domain.Token, error) {
	t := &domain.Token{
		ID:        id,
		Owner:     owner,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetToken fetches a token by id, or ErrNotFound if it was never minted or
// has been burned.
func GetToken(ctx context.Context, db *gorm.DB, id uint64) (*domain.Token, error) {
	var t domain.Token
	if err := db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTokenOwner reassigns ownership of a token. Returns ErrNotFound when
// the token does not exist.
func UpdateTokenOwner(ctx context.Context, db *gorm.DB, id uint64, owner string) error {
	res := db.WithContext(ctx).
		Model(&domain.Token{}).
		Where("id = ?", id).
		Updates(map[string]any{"owner": owner, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteToken removes a token row (burn). Returns ErrNotFound when no row
// was deleted. The delete is permanent; the id is retired, not recycled.
func DeleteToken(ctx context.Context, db *gorm.DB, id uint64) error {
	res := db.WithContext(ctx).Delete(&domain.Token{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
