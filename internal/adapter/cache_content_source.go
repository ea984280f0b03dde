package adapter

import (
	"context"
	"errors"
	"fmt"

	"cobible/internal/cache"
	"cobible/internal/domain"
)

// CacheContentSource serves datasets published into a cache, so several hosts
// can share one copy of the content.
type CacheContentSource struct {
	store domain.Cache
}

// NewCacheContentSource creates a content source over store.
func NewCacheContentSource(store domain.Cache) *CacheContentSource {
	return &CacheContentSource{store: store}
}

func (s *CacheContentSource) Read(ctx context.Context, name string) (string, error) {
	raw, err := s.store.Get(ctx, cache.DatasetKey(name))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return "", fmt.Errorf("dataset %q is not published: %w", name, err)
		}
		return "", fmt.Errorf("read published dataset %q: %w", name, err)
	}
	return raw, nil
}

// Publish stores raw under the dataset key without expiry.
func (s *CacheContentSource) Publish(ctx context.Context, name, raw string) error {
	return s.store.Set(ctx, cache.DatasetKey(name), raw, 0)
}

// Unpublish removes a published dataset.
func (s *CacheContentSource) Unpublish(ctx context.Context, name string) error {
	return s.store.Delete(ctx, cache.DatasetKey(name))
}
