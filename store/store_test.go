package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func exerciseProvider(t *testing.T, p Provider) {
	t.Helper()
	ctx := context.Background()

	if _, err := p.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing: expected ErrNotFound, got %v", err)
	}
	if err := p.Put(ctx, "b", `{"v":1}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := p.Put(ctx, "a", `{"v":2}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := p.Put(ctx, "b", `{"v":3}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, err := p.Get(ctx, "b")
	if err != nil || v != `{"v":3}` {
		t.Fatalf("get b = %q, %v", v, err)
	}

	keys, err := p.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("keys = %v", keys)
	}

	if err := p.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := p.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
	if _, err := p.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get deleted: expected ErrNotFound, got %v", err)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	exerciseProvider(t, m)
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "plans.db")
	s, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()
	exerciseProvider(t, s)
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "plans.db")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "user:x", `{"selectedRaces":[]}`); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	v, err := s.Get(ctx, "user:x")
	if err != nil || v != `{"selectedRaces":[]}` {
		t.Fatalf("after reopen: %q, %v", v, err)
	}
}
