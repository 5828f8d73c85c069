package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkaravias/go-laptop-registry/internal/domain"
)

func TestCreateRepairLog_AndGet(t *testing.T) {
	db := newRegistryDB(t, &domain.RepairLog{})
	ctx := context.Background()
	now := time.Now().UTC()

	rl, err := CreateRepairLog(ctx, db, 1, 42, "screen repaired", "shop-x", now)
	if err != nil {
		t.Fatalf("CreateRepairLog: %v", err)
	}
	if rl.ID != 1 || rl.TokenID != 42 || rl.Shop != "shop-x" {
		t.Fatalf("unexpected RepairLog fields: %+v", rl)
	}

	got, err := GetRepairLog(ctx, db, 1)
	if err != nil {
		t.Fatalf("GetRepairLog: %v", err)
	}
	if got.Description != "screen repaired" {
		t.Fatalf("persisted log mismatch: %+v", got)
	}
}

func TestGetRepairLog_NotFound(t *testing.T) {
	db := newRegistryDB(t, &domain.RepairLog{})
	if _, err := GetRepairLog(context.Background(), db, 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRepairLogs_AppendOrderPerToken(t *testing.T) {
	db := newRegistryDB(t, &domain.RepairLog{})
	ctx := context.Background()
	now := time.Now().UTC()

	// Interleave two tokens; ids are globally monotonic.
	for _, e := range []struct {
		id, tokenID uint64
	}{
		{1, 10}, {2, 20}, {3, 10}, {4, 10}, {5, 20},
	} {
		if _, err := CreateRepairLog(ctx, db, e.id, e.tokenID, "d", "s", now); err != nil {
			t.Fatalf("CreateRepairLog %d: %v", e.id, err)
		}
	}

	ids, err := ListRepairLogIDs(ctx, db, 10)
	if err != nil {
		t.Fatalf("ListRepairLogIDs: %v", err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 3 || ids[2] != 4 {
		t.Fatalf("unexpected id order for token 10: %v", ids)
	}

	logs, err := ListRepairLogs(ctx, db, 20)
	if err != nil {
		t.Fatalf("ListRepairLogs: %v", err)
	}
	if len(logs) != 2 || logs[0].ID != 2 || logs[1].ID != 5 {
		t.Fatalf("unexpected log order for token 20: %+v", logs)
	}

	n, err := CountRepairLogs(ctx, db, 10)
	if err != nil || n != 3 {
		t.Fatalf("CountRepairLogs: n=%d err=%v", n, err)
	}
}

func TestListRepairLogs_EmptyForUnknownToken(t *testing.T) {
	db := newRegistryDB(t, &domain.RepairLog{})
	ctx := context.Background()

	ids, err := ListRepairLogIDs(ctx, db, 999)
	if err != nil {
		t.Fatalf("ListRepairLogIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty id list, got %v", ids)
	}
	// Existence checks belong to the service layer; the repo just lists.
	logs, err := ListRepairLogs(ctx, db, 999)
	if err != nil || len(logs) != 0 {
		t.Fatalf("expected empty list, got logs=%v err=%v", logs, err)
	}
}
