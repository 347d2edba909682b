package cachemanager

import (
	"context"
	"time"
)

// Loader computes the value for a key from its input.
type Loader[V any, I any] func(ctx context.Context, input I) (V, error)

// ReadThroughCache computes values on miss and remembers them. A hit slides
// the entry's expiry forward by the ttl passed to Get.
type ReadThroughCache[K ~string, V any, I any] struct {
	store CacheManager[K, V]
	load  Loader[V, I]
}

// NewReadThroughCache wraps store with load.
func NewReadThroughCache[K ~string, V any, I any](store CacheManager[K, V], load Loader[V, I]) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{store: store, load: load}
}

// Get returns the value cached under key, or loads it from input. Loader
// errors are returned and leave the cache untouched.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if hit, ok := r.store.GetWithRefresh(ctx, key, ttl); ok {
		return hit, nil
	}
	v, err := r.load(ctx, input)
	if err == nil {
		r.store.Set(ctx, key, v, ttl)
	}
	return v, err
}
