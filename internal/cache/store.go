package cache

import (
	"context"
	"fmt"
)

// Loader computes a value on a miss. The returned tags are added to the
// static tags of the key before the value is stored.
type Loader func(ctx context.Context) (value any, derivedTags []string, err error)

type Store interface {
	// GetOrCompute returns the stored value for key or runs load and stores
	// its result under every tag. Load errors are returned and not stored.
	GetOrCompute(ctx context.Context, key Key, tags []string, load Loader) (any, error)
	// Invalidate evicts every entry carrying at least one of tags.
	Invalidate(ctx context.Context, tags ...string)
}

// Remember is the typed form of Store.GetOrCompute. deriveTags may be nil.
func Remember[T any](
	ctx context.Context,
	store Store,
	key Key,
	tags []string,
	compute func(ctx context.Context) (T, error),
	deriveTags func(T) []string,
) (T, error) {
	var zero T

	value, err := store.GetOrCompute(ctx, key, tags, func(ctx context.Context) (any, []string, error) {
		v, err := compute(ctx)
		if err != nil {
			return nil, nil, err
		}
		var derived []string
		if deriveTags != nil {
			derived = deriveTags(v)
		}
		return v, derived, nil
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache: entry %s holds %T", key, value)
	}
	return typed, nil
}
