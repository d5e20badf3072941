package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"farm-dashboard/internal/model"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is matched by every *NotFoundError
	ErrNotFound = errors.New("record not found")
	// ErrInvalidPatch is returned when a patch value does not fit the record
	ErrInvalidPatch = errors.New("invalid patch")
	// ErrConflict is returned when creating a record whose id is taken
	ErrConflict = errors.New("record already exists")
)

// NotFoundError reports a lookup for an id that is not stored
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) hold for any NotFoundError
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Patch holds the top-level JSON keys to replace on update
type Patch map[string]any

// Repository stores one entity type. List returns records newest first.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, patch Patch) (T, error)
	Delete(ctx context.Context, id string) error
}

// record constrains P to be the pointer type of a model entity T
type record[T any] interface {
	*T
	model.Entity
}

type options struct {
	newID       func() string
	now         func() time.Time
	snapshotDir string
}

// Option configures a repository
type Option func(*options)

// WithIDGenerator overrides uuid identity generation
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// WithClock overrides the clock used for CreatedAt/UpdatedAt
func WithClock(fn func() time.Time) Option {
	return func(o *options) {
		o.now = fn
	}
}

// WithSnapshotDir persists memory repositories as JSON files in dir
func WithSnapshotDir(dir string) Option {
	return func(o *options) {
		o.snapshotDir = dir
	}
}

func buildOptions(opts []Option) options {
	o := options{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func notFound[T any, P record[T]](id string) error {
	var zero T
	return &NotFoundError{Entity: P(&zero).EntityName(), ID: id}
}

// applyPatch shallow-merges patch over current through the JSON
// representation. Identity and timestamps are kept from current.
func applyPatch[T any, P record[T]](current T, patch Patch) (T, error) {
	encoded, err := json.Marshal(current)
	if err != nil {
		return current, fmt.Errorf("encode record: %w", err)
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return current, fmt.Errorf("decode record: %w", err)
	}

	for key, value := range patch {
		raw, err := json.Marshal(value)
		if err != nil {
			return current, fmt.Errorf("%w: %s: %v", ErrInvalidPatch, key, err)
		}
		fields[key] = raw
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return current, fmt.Errorf("encode merged record: %w", err)
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return current, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	*P(&out).Meta() = *P(&current).Meta()
	return out, nil
}
