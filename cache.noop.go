package main

import "context"

var _ BookCache = (*noopBookCache)(nil) // ensure noopBookCache implements BookCache.

// noopBookCache is the cache used when the redis server is unreachable at
// boot. Every read misses and every write no-ops so the rest of the app
// never has to check whether a cache is present.
type noopBookCache struct{}

// NewNoopBookCache provides a book cache that does nothing.
func NewNoopBookCache() BookCache {
	return &noopBookCache{}
}

func (nc *noopBookCache) GetOne(_ context.Context, _ int64) (Book, bool) { return Book{}, false }

func (nc *noopBookCache) GetAll(_ context.Context) ([]Book, bool) { return nil, false }

func (nc *noopBookCache) SetOne(_ context.Context, _ Book) {}

func (nc *noopBookCache) SetAll(_ context.Context, _ []Book) {}

func (nc *noopBookCache) Invalidate(_ context.Context) {}

func (nc *noopBookCache) Available(_ context.Context) bool { return false }
