package store

import (
	"context"
	"testing"
	"time"
)

func TestRegistryTouchAndList(t *testing.T) {
	t.Setenv("TRAIL_CONFIG_DIR", t.TempDir())
	ctx := context.Background()

	t1 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	if err := TouchRegistry(ctx, "alpha", t.TempDir(), t1); err != nil {
		t.Fatalf("TouchRegistry: %v", err)
	}
	if err := TouchRegistry(ctx, "beta", t.TempDir(), t2); err != nil {
		t.Fatalf("TouchRegistry: %v", err)
	}

	entries, err := ListRegistry(ctx)
	if err != nil {
		t.Fatalf("ListRegistry: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries; got %d", len(entries))
	}
	if entries[0].Name != "beta" || entries[1].Name != "alpha" {
		t.Errorf("expected most recent first; got %s, %s", entries[0].Name, entries[1].Name)
	}
	if !entries[0].LastOpened.Equal(t2) {
		t.Errorf("expected last-opened %v; got %v", t2, entries[0].LastOpened)
	}
}

func TestRegistryUpsertsByPath(t *testing.T) {
	t.Setenv("TRAIL_CONFIG_DIR", t.TempDir())
	ctx := context.Background()
	root := t.TempDir()

	t1 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := TouchRegistry(ctx, "old-name", root, t1); err != nil {
		t.Fatalf("TouchRegistry: %v", err)
	}
	if err := TouchRegistry(ctx, "new-name", root, t1.Add(time.Minute)); err != nil {
		t.Fatalf("TouchRegistry: %v", err)
	}

	entries, err := ListRegistry(ctx)
	if err != nil {
		t.Fatalf("ListRegistry: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single entry per path; got %d", len(entries))
	}
	if entries[0].Name != "new-name" {
		t.Errorf("expected name updated; got %q", entries[0].Name)
	}
}

func TestRegistryEmptyList(t *testing.T) {
	t.Setenv("TRAIL_CONFIG_DIR", t.TempDir())
	entries, err := ListRegistry(context.Background())
	if err != nil {
		t.Fatalf("ListRegistry: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty registry; got %d", len(entries))
	}
}
