// Package repo implements the data persistence layer for the registry
// domain entities, backed by GORM. This file provides repository functions
// for the append-only RepairLog table.
//
// Rows in this table are write-once: there is no update or delete function
// on purpose. The ordered per-token log list is derived by id order — log
// ids are globally monotonic and token ids are never reissued, so
// "WHERE token_id = ? ORDER BY id" is exactly the append order.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dkaravias/go-laptop-registry/internal/domain"
)

// CreateRepairLog inserts one immutable repair-log entry with the given
// pre-assigned id (from the registry's log counter).
func CreateRepairLog(ctx context.Context, db *gorm.DB, id, tokenID uint64, description, shop string, now time.Time) (*domain.RepairLog, error) {
	rl := &domain.RepairLog{
		ID:          id,
		TokenID:     tokenID,
		Description: description,
		Shop:        shop,
		Timestamp:   now,
	}
	if err := db.WithContext(ctx).Create(rl).Error; err != nil {
		return nil, err
	}
	return rl, nil
}

// GetRepairLog fetches a repair log by its own id, or ErrNotFound. Orphaned
// logs (originating token burned) are still returned.
func GetRepairLog(ctx context.Context, db *gorm.DB, id uint64) (*domain.RepairLog, error) {
	var rl domain.RepairLog
	if err := db.WithContext(ctx).First(&rl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rl, nil
}

// ListRepairLogIDs returns the ordered log-id list for a token (append order).
func ListRepairLogIDs(ctx context.Context, db *gorm.DB, tokenID uint64) ([]uint64, error) {
	ids := make([]uint64, 0, 8)
	err := db.WithContext(ctx).
		Model(&domain.RepairLog{}).
		Where("token_id = ?", tokenID).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListRepairLogs returns the full ordered log records for a token.
func ListRepairLogs(ctx context.Context, db *gorm.DB, tokenID uint64) ([]domain.RepairLog, error) {
	var logs []domain.RepairLog
	err := db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Order("id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// CountRepairLogs returns how many logs have been appended to a token,
// used for the per-token capacity check.
func CountRepairLogs(ctx context.Context, db *gorm.DB, tokenID uint64) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.RepairLog{}).
		Where("token_id = ?", tokenID).
		Count(&n).Error
	return n, err
}
