package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"farm-dashboard/internal/model"

	"github.com/google/go-cmp/cmp"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func fixedClock() func() time.Time {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		return now
	}
}

func newTestResources(t *testing.T, opts ...Option) *Memory[model.Resource, *model.Resource] {
	t.Helper()
	opts = append([]Option{WithIDGenerator(sequentialIDs()), WithClock(fixedClock())}, opts...)
	repo, err := NewMemory[model.Resource](opts...)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	return repo
}

func TestMemoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestResources(t)

	created, err := repo.Create(ctx, model.Resource{Name: "Corn seed", Quantity: 40, MinimumStock: 20})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "id-1" {
		t.Errorf("expected generated id id-1, got %q", created.ID)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestResources(t)

	for _, name := range []string{"first", "second", "third"} {
		if _, err := repo.Create(ctx, model.Resource{Name: name}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, item := range items {
		names = append(names, item.Name)
	}
	if diff := cmp.Diff([]string{"third", "second", "first"}, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	// the returned slice is a copy
	items[0].Name = "mutated"
	again, _ := repo.List(ctx)
	if again[0].Name != "third" {
		t.Errorf("List exposed internal state, got %q", again[0].Name)
	}
}

func TestMemoryUpdateShallowMerge(t *testing.T) {
	ctx := context.Background()
	repo := newTestResources(t)

	created, err := repo.Create(ctx, model.Resource{
		Name:         "Urea",
		Type:         "Fertilizer",
		Quantity:     12,
		Unit:         "tons",
		MinimumStock: 10,
		Supplier:     "AgriSupply Co",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, Patch{"quantity": 42, "id": "hijack"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	want := created
	want.Quantity = 42
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Errorf("Update mismatch (-want +got):\n%s", diff)
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if got.Quantity != 42 || got.Supplier != "AgriSupply Co" || got.Unit != "tons" {
		t.Errorf("unexpected record after update: %+v", got)
	}
}

func TestMemoryUpdateReplacesNestedValues(t *testing.T) {
	ctx := context.Background()
	repo, err := NewMemory[model.MaintenanceRecord](WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}

	created, err := repo.Create(ctx, model.MaintenanceRecord{
		EquipmentID: "1",
		PartsUsed:   []string{"Oil filter", "Fuel filter"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, Patch{"partsUsed": []string{"Air filter"}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if diff := cmp.Diff([]string{"Air filter"}, updated.PartsUsed); diff != "" {
		t.Errorf("partsUsed mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryInvalidPatch(t *testing.T) {
	ctx := context.Background()
	repo := newTestResources(t)

	created, err := repo.Create(ctx, model.Resource{Name: "Diesel", Quantity: 100})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = repo.Update(ctx, created.ID, Patch{"quantity": "lots"})
	if !errors.Is(err, ErrInvalidPatch) {
		t.Fatalf("expected ErrInvalidPatch, got %v", err)
	}

	got, _ := repo.Get(ctx, created.ID)
	if got.Quantity != 100 {
		t.Errorf("failed update must not change the record, quantity=%v", got.Quantity)
	}
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestResources(t)

	tests := []struct {
		name string
		call func() error
	}{
		{"get", func() error { _, err := repo.Get(ctx, "missing"); return err }},
		{"update", func() error { _, err := repo.Update(ctx, "missing", Patch{"quantity": 1}); return err }},
		{"delete", func() error { return repo.Delete(ctx, "missing") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			var nf *NotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("expected *NotFoundError, got %T", err)
			}
			if nf.Entity != "Resource" || nf.ID != "missing" {
				t.Errorf("unexpected error details: %+v", nf)
			}
		})
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestResources(t)

	a, _ := repo.Create(ctx, model.Resource{Name: "a"})
	b, _ := repo.Create(ctx, model.Resource{Name: "b"})

	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	items, _ := repo.List(ctx)
	if len(items) != 1 || items[0].ID != b.ID {
		t.Errorf("unexpected items after delete: %+v", items)
	}
	if err := repo.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete should fail with ErrNotFound, got %v", err)
	}
}

func TestMemoryDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := newTestResources(t)

	if _, err := repo.Create(ctx, model.Resource{Base: model.Base{ID: "1"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, model.Resource{Base: model.Base{ID: "1"}}); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestMemoryCanceledContext(t *testing.T) {
	repo := newTestResources(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.Create(ctx, model.Resource{Name: "late"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	items, _ := repo.List(context.Background())
	if len(items) != 0 {
		t.Errorf("canceled create must not store a record, got %d", len(items))
	}
}

func TestMemorySnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repo := newTestResources(t, WithSnapshotDir(dir))
	created, err := repo.Create(ctx, model.Resource{Name: "Glyphosate", Quantity: 3, MinimumStock: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Update(ctx, created.ID, Patch{"quantity": 7}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	reopened := newTestResources(t, WithSnapshotDir(dir))
	got, err := reopened.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get from reopened repository: %v", err)
	}
	if got.Name != "Glyphosate" || got.Quantity != 7 {
		t.Errorf("unexpected record after reopen: %+v", got)
	}
}
