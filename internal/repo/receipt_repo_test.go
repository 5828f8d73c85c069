package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkaravias/go-laptop-registry/internal/domain"
)

func TestCreateReceipt_AndGet(t *testing.T) {
	db := newRegistryDB(t, &domain.Receipt{})
	ctx := context.Background()

	rec, err := CreateReceipt(ctx, db, "alice", "mint", "key-1", 7, 201, time.Hour)
	if err != nil {
		t.Fatalf("CreateReceipt: %v", err)
	}
	if rec.ResourceID != 7 || rec.Status != 201 {
		t.Fatalf("unexpected receipt: %+v", rec)
	}

	got, err := GetReceipt(ctx, db, "alice", "mint", "key-1", time.Now().UTC())
	if err != nil {
		t.Fatalf("GetReceipt: %v", err)
	}
	if got.ResourceID != 7 {
		t.Fatalf("receipt mismatch: %+v", got)
	}
}

func TestCreateReceipt_DuplicateTuple(t *testing.T) {
	db := newRegistryDB(t, &domain.Receipt{})
	ctx := context.Background()

	if _, err := CreateReceipt(ctx, db, "alice", "42", "key-1", 1, 201, time.Hour); err != nil {
		t.Fatalf("CreateReceipt: %v", err)
	}
	if _, err := CreateReceipt(ctx, db, "alice", "42", "key-1", 2, 201, time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Different scope with the same key is a distinct tuple.
	if _, err := CreateReceipt(ctx, db, "alice", "43", "key-1", 3, 201, time.Hour); err != nil {
		t.Fatalf("CreateReceipt different scope: %v", err)
	}
	// Different caller likewise.
	if _, err := CreateReceipt(ctx, db, "bob", "42", "key-1", 4, 201, time.Hour); err != nil {
		t.Fatalf("CreateReceipt different caller: %v", err)
	}
}

func TestGetReceipt_ExpiredAndMissing(t *testing.T) {
	db := newRegistryDB(t, &domain.Receipt{})
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := GetReceipt(ctx, db, "alice", "mint", "nope", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing receipt, got %v", err)
	}

	if _, err := CreateReceipt(ctx, db, "alice", "mint", "key-1", 1, 201, time.Millisecond); err != nil {
		t.Fatalf("CreateReceipt: %v", err)
	}
	if _, err := GetReceipt(ctx, db, "alice", "mint", "key-1", now.Add(time.Minute)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired receipt should be ErrNotFound, got %v", err)
	}
}

func TestGetReceipt_EmptyScope(t *testing.T) {
	db := newRegistryDB(t, &domain.Receipt{})
	if _, err := GetReceipt(context.Background(), db, "alice", "  ", "k", time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("blank scope should be ErrNotFound, got %v", err)
	}
}
