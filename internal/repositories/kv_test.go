package repositories

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Fatalf("value mismatch: %q", string(data))
	}

	if err := store.Del(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	value := []byte("original")
	store.Set(ctx, "k", value)
	value[0] = 'X'

	data, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "original" {
		t.Fatalf("stored value aliased caller buffer: %q", string(data))
	}
}

func TestLoadJSON_MissingKey(t *testing.T) {
	store := NewMemoryStore()

	v := map[string]int{"kept": 1}
	if loadJSON(context.Background(), store, "absent", &v) {
		t.Fatal("missing key reported as loaded")
	}
	if v["kept"] != 1 {
		t.Fatal("default value was touched")
	}
}

// A corrupt stored value must not poison the collection: the default is kept
// and the bad key cleared so the next write starts clean.
func TestLoadJSON_CorruptValueCleared(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "bad", []byte("{not json"))

	var v map[string]int
	if loadJSON(ctx, store, "bad", &v) {
		t.Fatal("corrupt value reported as loaded")
	}
	if _, err := store.Get(ctx, "bad"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("corrupt key was not cleared: %v", err)
	}
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	saveJSON(ctx, store, "k", map[string]int{"a": 1})

	var v map[string]int
	if !loadJSON(ctx, store, "k", &v) {
		t.Fatal("saved value not loadable")
	}
	if v["a"] != 1 {
		t.Fatalf("value mismatch: %v", v)
	}
}
