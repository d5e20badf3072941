package repository

import (
	"context"
	"fmt"
	"sync"
)

// Memory keeps records in an ordered slice, newest first. When a snapshot
// directory is configured every mutation is written through to disk.
type Memory[T any, P record[T]] struct {
	mu       sync.RWMutex
	items    []T
	opts     options
	snapshot *snapshot
}

// NewMemory creates an in-memory repository, loading the snapshot file
// when WithSnapshotDir is set.
func NewMemory[T any, P record[T]](opts ...Option) (*Memory[T, P], error) {
	m := &Memory[T, P]{opts: buildOptions(opts)}
	if m.opts.snapshotDir == "" {
		return m, nil
	}

	var zero T
	snap, err := newSnapshot(m.opts.snapshotDir, P(&zero).TableName())
	if err != nil {
		return nil, err
	}
	m.snapshot = snap
	if err := snap.load(&m.items); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Memory[T, P]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *Memory[T, P]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return zero, notFound[T, P](id)
	}
	return m.items[idx], nil
}

// Create prepends item. An empty id is filled in by the id generator.
func (m *Memory[T, P]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	meta := P(&item).Meta()
	if meta.ID == "" {
		meta.ID = m.opts.newID()
	}
	if m.indexOf(meta.ID) >= 0 {
		return zero, fmt.Errorf("%s %s: %w", P(&item).EntityName(), meta.ID, ErrConflict)
	}
	meta.Touch(m.opts.now())

	items := make([]T, 0, len(m.items)+1)
	items = append(items, item)
	items = append(items, m.items...)
	if err := m.persist(items); err != nil {
		return zero, err
	}
	m.items = items
	return item, nil
}

func (m *Memory[T, P]) Update(ctx context.Context, id string, patch Patch) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return zero, notFound[T, P](id)
	}
	merged, err := applyPatch[T, P](m.items[idx], patch)
	if err != nil {
		return zero, err
	}
	P(&merged).Meta().Touch(m.opts.now())

	items := make([]T, len(m.items))
	copy(items, m.items)
	items[idx] = merged
	if err := m.persist(items); err != nil {
		return zero, err
	}
	m.items = items
	return merged, nil
}

func (m *Memory[T, P]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return notFound[T, P](id)
	}
	items := make([]T, 0, len(m.items)-1)
	items = append(items, m.items[:idx]...)
	items = append(items, m.items[idx+1:]...)
	if err := m.persist(items); err != nil {
		return err
	}
	m.items = items
	return nil
}

// indexOf must be called with the lock held
func (m *Memory[T, P]) indexOf(id string) int {
	for i := range m.items {
		if P(&m.items[i]).Meta().ID == id {
			return i
		}
	}
	return -1
}

func (m *Memory[T, P]) persist(items []T) error {
	if m.snapshot == nil {
		return nil
	}
	return m.snapshot.save(items)
}
