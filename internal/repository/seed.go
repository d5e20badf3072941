package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"farm-dashboard/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/farm.yaml
var defaultFixtures []byte

// Fixtures is the demo data set loaded into empty stores
type Fixtures struct {
	Fields      []model.Field             `json:"fields"`
	Crops       []model.Crop              `json:"crops"`
	Tasks       []model.Task              `json:"tasks"`
	Resources   []model.Resource          `json:"resources"`
	Equipment   []model.Equipment         `json:"equipment"`
	Maintenance []model.MaintenanceRecord `json:"maintenance"`
	Expenses    []model.Expense           `json:"expenses"`
	Budgets     []model.Budget            `json:"budgets"`
	Income      []model.Income            `json:"income"`
}

// LoadFixtures decodes a YAML fixture document. Values go through the
// JSON codecs of the model types so YAML and API payloads agree.
func LoadFixtures(data []byte) (*Fixtures, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encode fixtures: %w", err)
	}
	var fx Fixtures
	if err := json.Unmarshal(encoded, &fx); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &fx, nil
}

// Seeder loads fixtures into a set of repositories
type Seeder struct {
	repos    *Repositories
	logger   *slog.Logger
	fixtures []byte
}

// NewSeeder creates a seeder for the bundled fixtures
func NewSeeder(repos *Repositories, logger *slog.Logger) *Seeder {
	return &Seeder{
		repos:    repos,
		logger:   logger,
		fixtures: defaultFixtures,
	}
}

// SeedIfEmpty seeds only when no fields are stored yet
func (s *Seeder) SeedIfEmpty(ctx context.Context) error {
	fields, err := s.repos.Fields.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if len(fields) > 0 {
		s.logger.Info("storage already contains data, skipping seed", "fields", len(fields))
		return nil
	}
	return s.Seed(ctx)
}

// Seed inserts every fixture record
func (s *Seeder) Seed(ctx context.Context) error {
	fx, err := LoadFixtures(s.fixtures)
	if err != nil {
		return err
	}

	counts := make([]any, 0, 18)
	steps := []struct {
		name string
		run  func() (int, error)
	}{
		{"fields", func() (int, error) { return seedAll(ctx, s.repos.Fields, fx.Fields) }},
		{"crops", func() (int, error) { return seedAll(ctx, s.repos.Crops, fx.Crops) }},
		{"tasks", func() (int, error) { return seedAll(ctx, s.repos.Tasks, fx.Tasks) }},
		{"resources", func() (int, error) { return seedAll(ctx, s.repos.Resources, fx.Resources) }},
		{"equipment", func() (int, error) { return seedAll(ctx, s.repos.Equipment, fx.Equipment) }},
		{"maintenance", func() (int, error) { return seedAll(ctx, s.repos.Maintenance, fx.Maintenance) }},
		{"expenses", func() (int, error) { return seedAll(ctx, s.repos.Expenses, fx.Expenses) }},
		{"budgets", func() (int, error) { return seedAll(ctx, s.repos.Budgets, fx.Budgets) }},
		{"income", func() (int, error) { return seedAll(ctx, s.repos.Income, fx.Income) }},
	}
	for _, step := range steps {
		n, err := step.run()
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
		counts = append(counts, step.name, n)
	}

	s.logger.Info("seeded storage", counts...)
	return nil
}

// seedAll inserts items in reverse so that newest-first listing returns
// them in fixture order
func seedAll[T any](ctx context.Context, repo Repository[T], items []T) (int, error) {
	for i := len(items) - 1; i >= 0; i-- {
		if _, err := repo.Create(ctx, items[i]); err != nil {
			return len(items) - 1 - i, err
		}
	}
	return len(items), nil
}
