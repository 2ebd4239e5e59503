package server

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "drawings.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreLifecycle(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().UTC()
			for _, d := range []Drawing{
				{ID: "a", Type: "rectangle", X: 1, Y: 2, Properties: map[string]any{"width": 10.0}, Owner: "tok", CreatedAt: now},
				{ID: "b", Type: "line", Owner: "other", CreatedAt: now},
			} {
				if err := store.Add(ctx, d); err != nil {
					t.Fatalf("add %s: %v", d.ID, err)
				}
			}

			list, err := store.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
				t.Fatalf("unexpected list %+v", list)
			}
			if list[0].Properties["width"] != 10.0 || list[0].X != 1 || list[0].Owner != "tok" {
				t.Fatalf("fields lost: %+v", list[0])
			}

			x := 50.0
			if err := store.Update(ctx, "a", Patch{X: &x, Properties: map[string]any{"height": 4.0}}); err != nil {
				t.Fatalf("update: %v", err)
			}
			list, _ = store.List(ctx)
			if list[0].X != 50 || list[0].Y != 2 || list[0].Properties["width"] != 10.0 || list[0].Properties["height"] != 4.0 {
				t.Fatalf("patch not merged: %+v", list[0])
			}

			if err := store.Update(ctx, "missing", Patch{}); !errors.Is(err, ErrNotFound) {
				t.Fatalf("update missing: %v", err)
			}
			if err := store.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("delete missing: %v", err)
			}
			if err := store.Delete(ctx, "a"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			list, _ = store.List(ctx)
			if len(list) != 1 || list[0].ID != "b" {
				t.Fatalf("after delete: %+v", list)
			}
		})
	}
}

func TestMemoryStoreListIsACopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	store.Add(ctx, Drawing{ID: "a", Type: "ellipse", Properties: map[string]any{"width": 1.0}})
	list, _ := store.List(ctx)
	list[0].Properties["width"] = 99.0
	again, _ := store.List(ctx)
	if again[0].Properties["width"] != 1.0 {
		t.Fatal("callers must not be able to mutate stored properties")
	}
}

func TestOpenSQLiteRejectsEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Fatal("expected an error for an empty path")
	}
}

func TestDrawingRecordOwnership(t *testing.T) {
	d := Drawing{ID: "a", Type: "diamond", Owner: "tok"}
	if d.Record("tok")["isOwner"] != true {
		t.Fatal("owner token should see isOwner true")
	}
	if d.Record("someone")["isOwner"] != false {
		t.Fatal("other tokens should see isOwner false")
	}
	if _, ok := d.Record("tok")["properties"].(map[string]any); !ok {
		t.Fatal("properties should never be nil")
	}
}
