package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Gorm stores records in a SQL table through gorm
type Gorm[T any, P record[T]] struct {
	db   *gorm.DB
	opts options
}

// NewGorm creates a new gorm-backed repository. The table must already be migrated.
func NewGorm[T any, P record[T]](db *gorm.DB, opts ...Option) *Gorm[T, P] {
	return &Gorm[T, P]{
		db:   db,
		opts: buildOptions(opts),
	}
}

func (r *Gorm[T, P]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table(), err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Gorm[T, P]) Get(ctx context.Context, id string) (T, error) {
	var item T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, notFound[T, P](id)
	}
	if err != nil {
		return item, fmt.Errorf("failed to get %s %s: %w", r.table(), id, err)
	}
	return item, nil
}

func (r *Gorm[T, P]) Create(ctx context.Context, item T) (T, error) {
	meta := P(&item).Meta()
	if meta.ID == "" {
		meta.ID = r.opts.newID()
	}
	meta.Touch(r.opts.now())

	err := r.db.WithContext(ctx).Create(&item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		var zero T
		return zero, fmt.Errorf("%s %s: %w", P(&item).EntityName(), meta.ID, ErrConflict)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to create %s: %w", r.table(), err)
	}
	return item, nil
}

// Update reads, merges and saves inside one transaction
func (r *Gorm[T, P]) Update(ctx context.Context, id string, patch Patch) (T, error) {
	var merged T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current T
		err := tx.Where("id = ?", id).First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound[T, P](id)
		}
		if err != nil {
			return fmt.Errorf("failed to load %s %s: %w", r.table(), id, err)
		}

		merged, err = applyPatch[T, P](current, patch)
		if err != nil {
			return err
		}
		P(&merged).Meta().Touch(r.opts.now())

		if err := tx.Save(&merged).Error; err != nil {
			return fmt.Errorf("failed to save %s %s: %w", r.table(), id, err)
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return merged, nil
}

func (r *Gorm[T, P]) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(P(new(T)))
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s %s: %w", r.table(), id, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound[T, P](id)
	}
	return nil
}

func (r *Gorm[T, P]) table() string {
	var zero T
	return P(&zero).TableName()
}
