// Package domain defines the core persistence models for the application.
// These types are used by GORM for database schema mapping and are shared
// across the repository and service layers.
package domain

import "time"

// Receipt records the outcome of a previously processed mutating request,
// keyed by (caller, scope, key). It enables safe retries for mint and
// append-repair-log operations: a replayed request returns the originally
// assigned identifier instead of re-executing the state transition.
//
// Scope distinguishes the operation family ("mint", or the token id for
// per-token appends) so the same client key can be reused across resources.
type Receipt struct {
	ID         string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	Caller     string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_caller_scope_key,priority:1"`
	Scope      string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_caller_scope_key,priority:2"`
	Key        string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_caller_scope_key,priority:3"`
	ResourceID uint64    `gorm:"type:INTEGER NOT NULL"`
	Status     int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt  time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Receipt) TableName() string { return "receipts" }
