package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cache.json")
}

func TestFile_GetSet(t *testing.T) {
	path := tempStorePath(t)
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	ctx := context.Background()

	if err := f.Set(ctx, "key1", "value1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := f.Get(ctx, "key1")
	if err != nil || val != "value1" {
		t.Errorf("Get = (%q, %v), want (value1, nil)", val, err)
	}

	if _, err := f.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestFile_PersistsAcrossReopen(t *testing.T) {
	path := tempStorePath(t)
	ctx := context.Background()

	f1, err := NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	f1.Set(ctx, "lingo:v1:a", "नमस्ते")
	f1.Set(ctx, "lingo:v1:b", "दुनिया")

	// A fresh store over the same file sees the entries.
	f2, err := NewFile(path)
	if err != nil {
		t.Fatalf("reopening store failed: %v", err)
	}
	val, err := f2.Get(ctx, "lingo:v1:a")
	if err != nil || val != "नमस्ते" {
		t.Errorf("reopened Get = (%q, %v)", val, err)
	}
	if f2.Len() != 2 {
		t.Errorf("reopened Len = %d, want 2", f2.Len())
	}
}

func TestFile_MissingFileIsEmpty(t *testing.T) {
	f, err := NewFile(tempStorePath(t))
	if err != nil {
		t.Fatalf("NewFile on missing path failed: %v", err)
	}
	if f.Len() != 0 {
		t.Errorf("Len = %d, want 0", f.Len())
	}
}

func TestFile_CorruptFileRejected(t *testing.T) {
	path := tempStorePath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFile(path); err == nil {
		t.Error("NewFile accepted a corrupt file")
	}
}

func TestFile_KeysAndDelete(t *testing.T) {
	f, err := NewFile(tempStorePath(t))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	f.Set(ctx, "lingo:v1:a", "1")
	f.Set(ctx, "lingo:v1:b", "2")
	f.Set(ctx, "other", "3")

	keys, err := f.Keys(ctx, "lingo:v1:")
	if err != nil || len(keys) != 2 {
		t.Errorf("Keys = (%v, %v), want 2 namespaced keys", keys, err)
	}

	if err := f.DeleteMulti(ctx, keys); err != nil {
		t.Fatalf("DeleteMulti failed: %v", err)
	}
	if f.Len() != 1 {
		t.Errorf("Len after delete = %d, want 1", f.Len())
	}
}

func TestFile_GetMulti(t *testing.T) {
	f, err := NewFile(tempStorePath(t))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	f.Set(ctx, "a", "1")

	got, err := f.GetMulti(ctx, []string{"a", "missing"})
	if err != nil {
		t.Fatalf("GetMulti failed: %v", err)
	}
	if len(got) != 1 || got["a"] != "1" {
		t.Errorf("GetMulti = %v", got)
	}
}
