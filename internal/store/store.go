// Package store holds the stateful storefront stores. Each store keeps its
// state in memory, restores it from storage on construction and writes the
// full representation back under a single key after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/storage"
	apperrors "github.com/Thamizhjaisankar-git/amazon-clone/pkg/errors"
)

// Observer receives a change after it has been persisted. Observers run
// outside the store's lock and must not block for long.
type Observer[T any] func(ctx context.Context, change T)

// Deps are the collaborators shared by all stores.
type Deps struct {
	Storage storage.Storage
	Logger  *slog.Logger
	Metrics *Metrics
	Now     func() time.Time
	NewID   func() string
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) newID() string {
	if d.NewID != nil {
		return d.NewID()
	}
	return uuid.NewString()
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// restore loads the value under key. A missing key yields the zero value.
// Undecodable or invalid data is logged and discarded. Storage read
// failures are returned.
func restore[T any](ctx context.Context, d Deps, name, key string, valid func(T) bool) (T, error) {
	var zero T

	data, err := d.Storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return zero, nil
		}
		return zero, fmt.Errorf("restore %s: %w", name, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		d.logger().WarnContext(ctx, "discarding corrupt persisted state",
			slog.String("store", name),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		d.Metrics.corrupt(name)
		return zero, nil
	}
	if !valid(v) {
		d.logger().WarnContext(ctx, "discarding invalid persisted state",
			slog.String("store", name),
			slog.String("key", key),
		)
		d.Metrics.corrupt(name)
		return zero, nil
	}
	return v, nil
}

// persist writes v as JSON under key.
func persist(ctx context.Context, d Deps, name, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := d.Storage.Set(ctx, key, data); err != nil {
		d.Metrics.persistFailed(name)
		d.logger().ErrorContext(ctx, "failed to persist state",
			slog.String("store", name),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("persist %s: %w", name, err)
	}
	return nil
}

func notify[T any](ctx context.Context, observers []Observer[T], change T) {
	for _, o := range observers {
		o(ctx, change)
	}
}
