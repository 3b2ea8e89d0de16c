package store

import (
	"context"
	"errors"
	"sort"
	"testing"
)

func TestMemory_GetSet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "key1", "value1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := m.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != "value1" {
		t.Errorf("Get returned %q, want %q", val, "value1")
	}

	_, err = m.Get(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemory_Keys(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "lingo:v1:a", "1")
	m.Set(ctx, "lingo:v1:b", "2")
	m.Set(ctx, "other:c", "3")

	keys, err := m.Keys(ctx, "lingo:v1:")
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	sort.Strings(keys)

	want := []string{"lingo:v1:a", "lingo:v1:b"}
	if len(keys) != 2 || keys[0] != want[0] || keys[1] != want[1] {
		t.Errorf("Keys = %v, want %v", keys, want)
	}
}

func TestMemory_GetMulti(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "a", "1")
	m.Set(ctx, "b", "2")

	got, err := m.GetMulti(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("GetMulti failed: %v", err)
	}
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Errorf("GetMulti = %v", got)
	}
}

func TestMemory_DeleteMulti(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "a", "1")
	m.Set(ctx, "b", "2")

	if err := m.DeleteMulti(ctx, []string{"a", "missing"}); err != nil {
		t.Fatalf("DeleteMulti failed: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Len after delete = %d, want 1", m.Len())
	}
	if _, err := m.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Error("deleted key still readable")
	}
}
