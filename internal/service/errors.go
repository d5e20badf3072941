package service

import (
	"context"
	"errors"

	"farm-dashboard/internal/repository"
)

// isClientError reports errors caused by the request rather than the system
func isClientError(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrInvalidPatch) ||
		errors.Is(err, repository.ErrConflict) ||
		errors.Is(err, context.Canceled)
}

// normalizePatch returns a copy of patch with the string value under key
// passed through fn
func normalizePatch(patch repository.Patch, key string, fn func(string) string) repository.Patch {
	out := make(repository.Patch, len(patch))
	for k, v := range patch {
		out[k] = v
	}
	if s, ok := out[key].(string); ok {
		out[key] = fn(s)
	}
	return out
}
