package badger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ohayoapp/ohayo/internal/common"
	"github.com/ohayoapp/ohayo/internal/interfaces"
)

// --- Test helpers ---

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	logger := common.NewSilentLogger()
	store, err := NewStore(logger, filepath.Join(dir, "badger"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// --- Store tests ---

func TestStore_OpenClose(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(common.NewSilentLogger(), filepath.Join(dir, "badger"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

// --- KV tests ---

func TestKV_SetGet(t *testing.T) {
	kv := NewKVStorage(newTestStore(t), common.NewSilentLogger())
	ctx := context.Background()

	if err := kv.Set(ctx, interfaces.KeyUserName, "asha"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err := kv.Get(ctx, interfaces.KeyUserName)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "asha" {
		t.Errorf("value = %q, want asha", value)
	}
}

func TestKV_GetAbsentKey(t *testing.T) {
	kv := NewKVStorage(newTestStore(t), common.NewSilentLogger())

	_, err := kv.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for absent key")
	}
	if !errors.Is(err, interfaces.ErrKeyNotFound) {
		t.Errorf("error = %v, want ErrKeyNotFound", err)
	}
}

func TestKV_SetOverwrites(t *testing.T) {
	kv := NewKVStorage(newTestStore(t), common.NewSilentLogger())
	ctx := context.Background()

	if err := kv.Set(ctx, interfaces.KeyDailyRecord, "first"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Set(ctx, interfaces.KeyDailyRecord, "second"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err := kv.Get(ctx, interfaces.KeyDailyRecord)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "second" {
		t.Errorf("value = %q, want second", value)
	}
}

func TestKV_Delete(t *testing.T) {
	kv := NewKVStorage(newTestStore(t), common.NewSilentLogger())
	ctx := context.Background()

	if err := kv.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := kv.Get(ctx, "k"); !errors.Is(err, interfaces.ErrKeyNotFound) {
		t.Errorf("Get after delete = %v, want ErrKeyNotFound", err)
	}

	// Deleting an absent key is not an error
	if err := kv.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete absent key = %v, want nil", err)
	}
}

func TestKV_ValuesSurviveReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")
	logger := common.NewSilentLogger()
	ctx := context.Background()

	store, err := NewStore(logger, dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := NewKVStorage(store, logger).Set(ctx, interfaces.KeyUserName, "asha"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewStore(logger, dir)
	if err != nil {
		t.Fatalf("NewStore reopen failed: %v", err)
	}
	defer reopened.Close()

	value, err := NewKVStorage(reopened, logger).Get(ctx, interfaces.KeyUserName)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if value != "asha" {
		t.Errorf("value = %q, want asha", value)
	}
}
