// Package repo implements the data persistence layer for the registry
// domain entities, backed by GORM. This file provides access to the
// singleton RegistryState row (admin, pause flag, id counters).
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dkaravias/go-laptop-registry/internal/domain"
)

// GetState loads the singleton registry state row. The row is created by
// SeedState at startup; ErrNotFound here indicates a bootstrap bug.
func GetState(ctx context.Context, db *gorm.DB) (*domain.RegistryState, error) {
	var st domain.RegistryState
	if err := db.WithContext(ctx).First(&st, "id = ?", domain.RegistryStateID).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// SaveState writes back the full state row. Callers mutate the struct
// returned by GetState inside the same transaction, so the read-modify-write
// is one unit under the facade's single-writer discipline.
func SaveState(ctx context.Context, db *gorm.DB, st *domain.RegistryState) error {
	st.UpdatedAt = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.RegistryState{}).
		Where("id = ?", domain.RegistryStateID).
		Updates(map[string]any{
			"admin":         st.Admin,
			"paused":        st.Paused,
			"last_token_id": st.LastTokenID,
			"last_log_id":   st.LastLogID,
			"updated_at":    st.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
