// Package services – RegistryService
//
// This file implements the registry facade: mint, transfer, burn, metadata
// update, repair-log append, and the admin pause/unpause/admin-change
// controls, plus the read-only accessors. Every mutating operation runs its
// full precondition chain (pause gate, validation gate, access control)
// against current store state and applies the complete mutation set inside
// one transaction — on the first failed precondition it returns a typed
// RegistryError and changes nothing.
//
// Identifier assignment is the facade's responsibility: token and repair-log
// ids come from two independent monotonic counters in the registry state row
// and are never reused, including after burns.
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/dkaravias/go-laptop-registry/internal/domain"
	"github.com/dkaravias/go-laptop-registry/internal/repo"
	"github.com/dkaravias/go-laptop-registry/internal/validation"
)

// RegistryService provides the registry's public operation set. All mutating
// operations are serialized through a single mutex per instance and executed
// inside one GORM transaction, so each call is an indivisible transition of
// the token, metadata, repair-log, and state stores.
type RegistryService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// SystemIdentity is the registry's own execution identity. The
	// validation gate refuses to assign it any owner, recipient, admin, or
	// shop role.
	SystemIdentity string

	// mu serializes mutating operations (single-writer discipline).
	mu sync.Mutex
}

// NewRegistryService constructs a RegistryService bound to db with the given
// system identity.
func NewRegistryService(db *gorm.DB, systemIdentity string) *RegistryService {
	return &RegistryService{DB: db, SystemIdentity: systemIdentity}
}

// LaptopDetails is the read model returned by Details: the metadata record
// plus the current owner and the ordered repair-log id list.
type LaptopDetails struct {
	TokenID     uint64    `json:"token_id"`
	Owner       string    `json:"owner"`
	Serial      string    `json:"serial"`
	Description *string   `json:"description,omitempty"`
	RepairLogs  []uint64  `json:"repair_logs"`
	MintedAt    time.Time `json:"minted_at"`
	LastUpdated time.Time `json:"last_updated"`
}

//
// Mutating operations
//

// Mint creates a new token owned by caller with the given serial and
// optional description, and returns the assigned token id (previous counter
// value + 1).
//
// Precondition order: pause gate, serial bound, description bound.
func (s *RegistryService) Mint(ctx context.Context, caller, serial string, description *string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id uint64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := repo.GetState(ctx, tx)
		if err != nil {
			return err
		}
		if st.Paused {
			return ErrPaused
		}
		if !validation.Serial(serial) {
			return ErrInvalidField
		}
		if description != nil && !validation.Description(*description) {
			return ErrInvalidField
		}

		id = st.LastTokenID + 1
		now := time.Now().UTC()
		if _, err := repo.CreateToken(ctx, tx, id, caller); err != nil {
			return err
		}
		if _, err := repo.CreateLaptop(ctx, tx, id, serial, description, now); err != nil {
			return err
		}
		st.LastTokenID = id
		return repo.SaveState(ctx, tx, st)
	})
	observe("mint", err)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Transfer reassigns ownership of token id from sender to recipient.
//
// The caller must be the sender and the sender must be the current owner;
// a missing token also fails this check (ownership of nothing is false).
// Precondition order: pause gate, caller/owner check, recipient identity.
func (s *RegistryService) Transfer(ctx context.Context, caller string, id uint64, sender, recipient string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := repo.GetState(ctx, tx)
		if err != nil {
			return err
		}
		if st.Paused {
			return ErrPaused
		}
		if caller != sender {
			return ErrNotOwner
		}
		owned, err := isOwner(ctx, tx, id, sender)
		if err != nil {
			return err
		}
		if !owned {
			return ErrNotOwner
		}
		if !validation.Identity(recipient, s.SystemIdentity) {
			return ErrInvalidField
		}
		return repo.UpdateTokenOwner(ctx, tx, id, recipient)
	})
	observe("transfer", err)
	return err
}

// Burn destroys token id and its metadata. Repair-log entries are left in
// place: they remain retrievable by log id as orphaned history.
func (s *RegistryService) Burn(ctx context.Context, caller string, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := repo.GetState(ctx, tx)
		if err != nil {
			return err
		}
		if st.Paused {
			return ErrPaused
		}
		owned, err := isOwner(ctx, tx, id, caller)
		if err != nil {
			return err
		}
		if !owned {
			return ErrNotOwner
		}
		if err := repo.DeleteToken(ctx, tx, id); err != nil {
			return err
		}
		return repo.DeleteLaptop(ctx, tx, id)
	})
	observe("burn", err)
	return err
}

// UpdateDescription replaces the description of token id and bumps the
// metadata's LastUpdated timestamp.
//
// Precondition order: pause gate, token existence, ownership, length bound.
func (s *RegistryService) UpdateDescription(ctx context.Context, caller string, id uint64, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := repo.GetState(ctx, tx)
		if err != nil {
			return err
		}
		if st.Paused {
			return ErrPaused
		}
		tok, err := repo.GetToken(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if tok.Owner != caller {
			return ErrNotOwner
		}
		if !validation.Description(description) {
			return ErrInvalidField
		}
		desc := description
		return repo.UpdateLaptopDescription(ctx, tx, id, &desc, time.Now().UTC())
	})
	observe("update_description", err)
	return err
}

// AppendRepairLog records one immutable repair event against token id on
// behalf of shop and returns the assigned log id. Log ids come from their
// own monotonic counter, independent of token ids.
//
// Precondition order: pause gate, shop identity, token existence, ownership,
// metadata existence, capacity, description bound.
func (s *RegistryService) AppendRepairLog(ctx context.Context, caller string, id uint64, description, shop string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var logID uint64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := repo.GetState(ctx, tx)
		if err != nil {
			return err
		}
		if st.Paused {
			return ErrPaused
		}
		if !validation.Identity(shop, s.SystemIdentity) {
			return ErrInvalidField
		}
		tok, err := repo.GetToken(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if tok.Owner != caller {
			return ErrNotOwner
		}
		if _, err := repo.GetLaptop(ctx, tx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		n, err := repo.CountRepairLogs(ctx, tx, id)
		if err != nil {
			return err
		}
		if n >= domain.MaxRepairLogsPerToken {
			return ErrLogCapacity
		}
		if !validation.LogDescription(description) {
			return ErrInvalidField
		}

		logID = st.LastLogID + 1
		now := time.Now().UTC()
		if _, err := repo.CreateRepairLog(ctx, tx, logID, id, description, shop, now); err != nil {
			return err
		}
		if err := repo.TouchLaptop(ctx, tx, id, now); err != nil {
			return err
		}
		st.LastLogID = logID
		return repo.SaveState(ctx, tx, st)
	})
	observe("append_repair_log", err)
	if err != nil {
		return 0, err
	}
	return logID, nil
}

//
// Admin operations (not gated by the pause flag)
//

// Pause sets the global pause gate. Admin only.
func (s *RegistryService) Pause(ctx context.Context, caller string) error {
	return s.setPaused(ctx, caller, true)
}

// Unpause clears the global pause gate. Admin only.
func (s *RegistryService) Unpause(ctx context.Context, caller string) error {
	return s.setPaused(ctx, caller, false)
}

func (s *RegistryService) setPaused(ctx context.Context, caller string, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := repo.GetState(ctx, tx)
		if err != nil {
			return err
		}
		if st.Admin != caller {
			return ErrNotAdmin
		}
		st.Paused = paused
		return repo.SaveState(ctx, tx, st)
	})
	if paused {
		observe("pause", err)
	} else {
		observe("unpause", err)
	}
	return err
}

// SetAdmin transfers adminship to newAdmin. Admin only; the new admin must
// pass the identity gate.
func (s *RegistryService) SetAdmin(ctx context.Context, caller, newAdmin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := repo.GetState(ctx, tx)
		if err != nil {
			return err
		}
		if st.Admin != caller {
			return ErrNotAdmin
		}
		if !validation.Identity(newAdmin, s.SystemIdentity) {
			return ErrInvalidField
		}
		st.Admin = newAdmin
		return repo.SaveState(ctx, tx, st)
	})
	observe("set_admin", err)
	return err
}

//
// Read-only accessors
//
// None of these fail on access control, and — with the single documented
// exception of AllRepairLogs — absence is reported as a not-found sentinel
// value, not an error.
//

// LastTokenID returns the most recently assigned token identifier (0 before
// the first mint).
func (s *RegistryService) LastTokenID(ctx context.Context) (uint64, error) {
	st, err := repo.GetState(ctx, s.DB)
	if err != nil {
		return 0, err
	}
	return st.LastTokenID, nil
}

// LastLogID returns the most recently assigned repair-log identifier.
func (s *RegistryService) LastLogID(ctx context.Context) (uint64, error) {
	st, err := repo.GetState(ctx, s.DB)
	if err != nil {
		return 0, err
	}
	return st.LastLogID, nil
}

// Owner returns the current owner of token id. A missing token is reported
// as ("", false, nil) — success with an absent value, never an error.
func (s *RegistryService) Owner(ctx context.Context, id uint64) (string, bool, error) {
	tok, err := repo.GetToken(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return tok.Owner, true, nil
}

// VerifyOwnership reports whether identity currently owns token id. False
// for a missing token.
func (s *RegistryService) VerifyOwnership(ctx context.Context, id uint64, identity string) (bool, error) {
	owner, found, err := s.Owner(ctx, id)
	if err != nil {
		return false, err
	}
	return found && owner == identity, nil
}

// Details returns the full laptop read model for token id, or (nil, nil)
// when the token does not exist or has been burned.
func (s *RegistryService) Details(ctx context.Context, id uint64) (*LaptopDetails, error) {
	tok, err := repo.GetToken(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	lap, err := repo.GetLaptop(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	ids, err := repo.ListRepairLogIDs(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	return &LaptopDetails{
		TokenID:     tok.ID,
		Owner:       tok.Owner,
		Serial:      lap.Serial,
		Description: lap.Description,
		RepairLogs:  ids,
		MintedAt:    lap.MintedAt,
		LastUpdated: lap.LastUpdated,
	}, nil
}

// GetRepairLog returns one repair log by log id, or (nil, nil) when absent.
// Orphaned logs (token burned) are still returned.
func (s *RegistryService) GetRepairLog(ctx context.Context, logID uint64) (*domain.RepairLog, error) {
	rl, err := repo.GetRepairLog(ctx, s.DB, logID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rl, nil
}

// AllRepairLogs returns the ordered repair-log records for token id.
//
// Unlike the other accessors this one returns ErrNotFound for a missing
// token. The asymmetry with Owner is deliberate; both behaviors are part of
// the API contract.
func (s *RegistryService) AllRepairLogs(ctx context.Context, id uint64) ([]domain.RepairLog, error) {
	if _, err := repo.GetToken(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return repo.ListRepairLogs(ctx, s.DB, id)
}

// IsPaused reports the registry pause gate.
func (s *RegistryService) IsPaused(ctx context.Context) (bool, error) {
	st, err := repo.GetState(ctx, s.DB)
	if err != nil {
		return false, err
	}
	return st.Paused, nil
}

// Admin returns the current admin identity.
func (s *RegistryService) Admin(ctx context.Context) (string, error) {
	st, err := repo.GetState(ctx, s.DB)
	if err != nil {
		return "", err
	}
	return st.Admin, nil
}

// State returns a snapshot of the registry control row.
func (s *RegistryService) State(ctx context.Context) (*domain.RegistryState, error) {
	return repo.GetState(ctx, s.DB)
}

// isOwner reports whether identity owns token id at call time. A missing
// token yields false, not an error.
func isOwner(ctx context.Context, db *gorm.DB, id uint64, identity string) (bool, error) {
	tok, err := repo.GetToken(ctx, db, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return tok.Owner == identity, nil
}
