package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"farm-dashboard/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestGormCRUD(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewGorm[model.Field](db, WithIDGenerator(sequentialIDs()))

	created, err := repo.Create(ctx, model.Field{
		Name:         "North Field",
		Size:         25.5,
		SoilType:     "Loamy",
		CurrentCrop:  "Corn",
		Status:       model.FieldActive,
		PlantingDate: model.NewDate(2024, time.April, 15),
		Coordinates:  orb.Point{-93.625, 42.0308},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "id-1" {
		t.Errorf("expected id-1, got %q", created.ID)
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "North Field" || got.Size != 25.5 || got.Status != model.FieldActive {
		t.Errorf("unexpected field: %+v", got)
	}
	if got.PlantingDate.String() != "2024-04-15" {
		t.Errorf("planting date = %q", got.PlantingDate.String())
	}
	if !got.ExpectedHarvest.IsZero() {
		t.Errorf("unset date should stay unset, got %s", got.ExpectedHarvest)
	}
	if got.Coordinates != (orb.Point{-93.625, 42.0308}) {
		t.Errorf("coordinates = %v", got.Coordinates)
	}

	updated, err := repo.Update(ctx, created.ID, Patch{"currentCrop": "Soybeans"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CurrentCrop != "Soybeans" || updated.Name != "North Field" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := repo.Update(ctx, created.ID, Patch{"name": "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on update, got %v", err)
	}
}

func TestGormDecimalAndListOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	repo := NewGorm[model.Expense](db, WithClock(clock))

	for _, amount := range []string{"100.25", "200.50"} {
		if _, err := repo.Create(ctx, model.Expense{
			Description: "expense " + amount,
			Amount:      decimal.RequireFromString(amount),
			Category:    model.CategorySeeds,
			Date:        model.NewDate(2024, time.May, 1),
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(items))
	}
	if !items[0].Amount.Equal(decimal.RequireFromString("200.50")) {
		t.Errorf("expected newest expense first, got amount %s", items[0].Amount)
	}
	if !items[1].Amount.Equal(decimal.RequireFromString("100.25")) {
		t.Errorf("unexpected second amount %s", items[1].Amount)
	}
}

func TestGormInvalidPatchLeavesRowUntouched(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewGorm[model.Resource](db)

	created, err := repo.Create(ctx, model.Resource{Name: "Diesel", Quantity: 1500})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Update(ctx, created.ID, Patch{"quantity": []int{1}}); !errors.Is(err, ErrInvalidPatch) {
		t.Fatalf("expected ErrInvalidPatch, got %v", err)
	}
	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Quantity != 1500 {
		t.Errorf("quantity changed to %v", got.Quantity)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("NewMemoryRepositories: %v", err)
	}
	seeder := NewSeeder(repos, discardLogger())

	if err := seeder.SeedIfEmpty(ctx); err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}
	fields, _ := repos.Fields.List(ctx)
	if len(fields) != 4 {
		t.Fatalf("expected 4 seeded fields, got %d", len(fields))
	}
	if fields[0].ID != "1" || fields[3].ID != "4" {
		t.Errorf("fixture order not preserved: first=%s last=%s", fields[0].ID, fields[3].ID)
	}
	if fields[0].Coordinates.Lat() != 42.0308 {
		t.Errorf("coordinates not decoded: %v", fields[0].Coordinates)
	}

	expenses, _ := repos.Expenses.List(ctx)
	if !expenses[0].Amount.Equal(decimal.NewFromInt(11400)) {
		t.Errorf("unexpected first expense amount %s", expenses[0].Amount)
	}

	// a second call must not duplicate data
	if err := seeder.SeedIfEmpty(ctx); err != nil {
		t.Fatalf("second SeedIfEmpty: %v", err)
	}
	fields, _ = repos.Fields.List(ctx)
	if len(fields) != 4 {
		t.Errorf("expected 4 fields after reseed, got %d", len(fields))
	}
}

func TestSeedIntoSQLite(t *testing.T) {
	ctx := context.Background()
	repos := NewGormRepositories(openTestDB(t))

	if err := NewSeeder(repos, discardLogger()).Seed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	records, err := repos.Maintenance.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 maintenance records, got %d", len(records))
	}
	for _, r := range records {
		if r.ID == "1" && len(r.PartsUsed) != 3 {
			t.Errorf("partsUsed not stored: %v", r.PartsUsed)
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
