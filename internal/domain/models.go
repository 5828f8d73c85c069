// Package domain defines the persistence models for the laptop registry:
// tokens, per-token laptop metadata, repair logs, and the singleton registry
// state row. These types are mapped with GORM and form the core data layer
// of the registry application.
package domain

import "time"

// MaxRepairLogsPerToken caps the number of repair logs that can ever be
// appended to a single token. Appends past this bound are rejected with a
// capacity error; the list is never truncated or overwritten.
const MaxRepairLogsPerToken = 100

// Token represents one uniquely owned, non-fungible record for a physical
// laptop. A row exists iff the token has been minted and not yet burned.
//
// Fields:
//   - ID: positive integer identifier, assigned sequentially from the
//     registry counter (never by the database, never reused after a burn).
//   - Owner: opaque identity string of the current owner; indexed for
//     ownership lookups.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Token struct {
	ID        uint64    `json:"id"         gorm:"primaryKey;autoIncrement:false"`
	Owner     string    `json:"owner"      gorm:"type:varchar(128);not null;index:idx_token_owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Token.
func (Token) TableName() string { return "tokens" }

// Laptop is the mutable descriptive record attached to a live token. It is
// created in the same transaction as its Token and deleted in the same
// transaction as the burn; it never exists without its token.
//
// Fields:
//   - TokenID: primary key, 1:1 with Token.ID.
//   - Serial: manufacturer serial, non-empty, at most 50 bytes.
//   - Description: optional free text, at most 256 bytes. A nil pointer means
//     the description is absent; an empty string is a present, empty value.
//   - MintedAt / LastUpdated: creation time and time of the most recent
//     description or repair-log mutation.
type Laptop struct {
	TokenID     uint64    `json:"token_id"              gorm:"primaryKey;autoIncrement:false"`
	Serial      string    `json:"serial"                gorm:"type:varchar(50);not null"`
	Description *string   `json:"description,omitempty" gorm:"type:varchar(256)"`
	MintedAt    time.Time `json:"minted_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// TableName returns the database table name for Laptop.
func (Laptop) TableName() string { return "laptops" }

// RepairLog is one immutable historical entry describing a repair event.
// Log identifiers come from their own monotonic counter, independent of token
// identifiers. Once written a row is never updated or deleted — burning the
// originating token orphans its logs but leaves them retrievable by log id.
//
// Fields:
//   - ID: globally unique, monotonically increasing log identifier.
//   - TokenID: the token the log was appended to. Retained after a burn;
//     because token ids are never reissued the association stays unambiguous.
//   - Description: free text, at most 512 bytes.
//   - Shop: identity of the reporting repair shop. Never the registry's own
//     system identity.
//   - Timestamp: when the repair was recorded.
type RepairLog struct {
	ID          uint64    `json:"id"          gorm:"primaryKey;autoIncrement:false"`
	TokenID     uint64    `json:"token_id"    gorm:"not null;index:idx_repair_logs_token"`
	Description string    `json:"description" gorm:"type:varchar(512);not null"`
	Shop        string    `json:"shop"        gorm:"type:varchar(128);not null"`
	Timestamp   time.Time `json:"timestamp"`
}

// TableName returns the database table name for RepairLog.
func (RepairLog) TableName() string { return "repair_logs" }

// RegistryStateID is the fixed primary key of the singleton state row.
const RegistryStateID uint = 1

// RegistryState is the singleton row holding the registry's global mutable
// state: the admin identity, the pause flag, and the two monotonic id
// counters. It is seeded once at startup and mutated only inside facade
// transactions.
type RegistryState struct {
	ID          uint      `json:"-"             gorm:"primaryKey"`
	Admin       string    `json:"admin"         gorm:"type:varchar(128);not null"`
	Paused      bool      `json:"paused"        gorm:"not null"`
	LastTokenID uint64    `json:"last_token_id" gorm:"not null"`
	LastLogID   uint64    `json:"last_log_id"   gorm:"not null"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName returns the database table name for RegistryState.
func (RegistryState) TableName() string { return "registry_state" }
