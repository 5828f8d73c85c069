// Package repo implements the data persistence layer for the registry
// domain entities, backed by GORM. This file provides repository functions
// for the Laptop metadata model (1:1 with Token while the token exists).
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dkaravias/go-laptop-registry/internal/domain"
)

// CreateLaptop inserts the metadata record for a freshly minted token.
// description may be nil (absent); an empty string is a present, empty value.
func CreateLaptop(ctx context.Context, db *gorm.DB, tokenID uint64, serial string, description *string, now time.Time) (*domain.Laptop, error) {
	l := &domain.Laptop{
		TokenID:     tokenID,
		Serial:      serial,
		Description: description,
		MintedAt:    now,
		LastUpdated: now,
	}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

// GetLaptop fetches the metadata record for a token, or ErrNotFound.
func GetLaptop(ctx context.Context, db *gorm.DB, tokenID uint64) (*domain.Laptop, error) {
	var l domain.Laptop
	if err := db.WithContext(ctx).First(&l, "token_id = ?", tokenID).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateLaptopDescription replaces the description and bumps LastUpdated.
// Returns ErrNotFound when the metadata row does not exist.
func UpdateLaptopDescription(ctx context.Context, db *gorm.DB, tokenID uint64, description *string, now time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.Laptop{}).
		Where("token_id = ?", tokenID).
		Updates(map[string]any{"description": description, "last_updated": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLaptop bumps LastUpdated without changing descriptive fields. Used
// when a repair log is appended. Returns ErrNotFound for a missing row.
func TouchLaptop(ctx context.Context, db *gorm.DB, tokenID uint64, now time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.Laptop{}).
		Where("token_id = ?", tokenID).
		Update("last_updated", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLaptop removes the metadata row in the same transaction as a burn.
// Repair-log rows are deliberately untouched.
func DeleteLaptop(ctx context.Context, db *gorm.DB, tokenID uint64) error {
	res := db.WithContext(ctx).Delete(&domain.Laptop{}, "token_id = ?", tokenID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
