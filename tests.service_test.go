package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// This file contains unit tests for the cache-aside resolver.

var testServiceBook = Book{
	ID:        7,
	Title:     "Dune",
	Author:    "Herbert",
	ISBN:      "9780441013593",
	Price:     9.99,
	Stock:     3,
	CreatedAt: time.Date(2023, 7, 2, 0, 0, 0, 0, time.UTC),
	UpdatedAt: time.Date(2023, 7, 2, 0, 0, 0, 0, time.UTC),
}

// TestBookServiceGetAll ensures list reads follow the cache-aside policy.
func TestBookServiceGetAll(t *testing.T) {
	t.Run("cache hit skips the store", func(t *testing.T) {
		var storeCalled bool
		cache := &MockBookCache{
			GetAllFunc: func(ctx context.Context) ([]Book, bool) {
				return []Book{testServiceBook}, true
			},
		}
		repo := &MockBookStorage{
			GetAllFunc: func(ctx context.Context) ([]Book, error) {
				storeCalled = true
				return nil, nil
			},
		}
		bs := NewBookService(zap.NewNop(), repo, cache)
		books, fromCache, err := bs.GetAll(context.Background())
		assert.NoError(t, err)
		assert.True(t, fromCache)
		assert.Equal(t, []Book{testServiceBook}, books)
		assert.False(t, storeCalled)
		assert.Equal(t, 0, cache.SetAllCalls)
	})

	t.Run("cache miss reads the store and populates the cache", func(t *testing.T) {
		cache := &MockBookCache{}
		repo := &MockBookStorage{
			GetAllFunc: func(ctx context.Context) ([]Book, error) {
				return []Book{testServiceBook}, nil
			},
		}
		bs := NewBookService(zap.NewNop(), repo, cache)
		books, fromCache, err := bs.GetAll(context.Background())
		assert.NoError(t, err)
		assert.False(t, fromCache)
		assert.Equal(t, []Book{testServiceBook}, books)
		assert.Equal(t, 1, cache.SetAllCalls)
		assert.Equal(t, []Book{testServiceBook}, cache.LastSetBooks)
	})

	t.Run("store failure is not cached", func(t *testing.T) {
		cache := &MockBookCache{}
		repo := &MockBookStorage{
			GetAllFunc: func(ctx context.Context) ([]Book, error) {
				return nil, errors.New("store down")
			},
		}
		bs := NewBookService(zap.NewNop(), repo, cache)
		_, fromCache, err := bs.GetAll(context.Background())
		assert.Error(t, err)
		assert.False(t, fromCache)
		assert.Equal(t, 0, cache.SetAllCalls)
	})
}

// TestBookServiceGetOne ensures single reads follow the cache-aside policy
// and that negative results are never cached.
func TestBookServiceGetOne(t *testing.T) {
	t.Run("cache hit skips the store", func(t *testing.T) {
		var storeCalled bool
		cache := &MockBookCache{
			GetOneFunc: func(ctx context.Context, id int64) (Book, bool) {
				return testServiceBook, true
			},
		}
		repo := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id int64) (Book, error) {
				storeCalled = true
				return Book{}, nil
			},
		}
		bs := NewBookService(zap.NewNop(), repo, cache)
		book, fromCache, err := bs.GetOne(context.Background(), 7)
		assert.NoError(t, err)
		assert.True(t, fromCache)
		assert.Equal(t, testServiceBook, book)
		assert.False(t, storeCalled)
	})

	t.Run("cache miss reads the store and populates the cache", func(t *testing.T) {
		cache := &MockBookCache{}
		repo := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id int64) (Book, error) {
				assert.Equal(t, int64(7), id)
				return testServiceBook, nil
			},
		}
		bs := NewBookService(zap.NewNop(), repo, cache)
		book, fromCache, err := bs.GetOne(context.Background(), 7)
		assert.NoError(t, err)
		assert.False(t, fromCache)
		assert.Equal(t, testServiceBook, book)
		assert.Equal(t, 1, cache.SetOneCalls)
		assert.Equal(t, testServiceBook, cache.LastSetBook)
	})

	t.Run("not found is never cached", func(t *testing.T) {
		cache := &MockBookCache{}
		repo := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{}, ErrBookNotFound
			},
		}
		bs := NewBookService(zap.NewNop(), repo, cache)
		_, fromCache, err := bs.GetOne(context.Background(), 404)
		assert.ErrorIs(t, err, ErrBookNotFound)
		assert.False(t, fromCache)
		assert.Equal(t, 0, cache.SetOneCalls)
	})
}

// TestBookServiceWrites ensures every successful write flushes the cache and
// every failed write leaves it untouched.
func TestBookServiceWrites(t *testing.T) {
	t.Run("create invalidates the cache", func(t *testing.T) {
		cache := &MockBookCache{}
		repo := &MockBookStorage{
			AddFunc: func(ctx context.Context, book Book) (Book, error) {
				return testServiceBook, nil
			},
		}
		bs := NewBookService(zap.NewNop(), repo, cache)
		created, err := bs.Create(context.Background(), Book{Title: "Dune", Author: "Herbert", ISBN: "9780441013593"})
		assert.NoError(t, err)
		assert.Equal(t, testServiceBook, created)
		assert.Equal(t, 1, cache.InvalidateCalls)
	})

	t.Run("duplicate isbn does not touch the cache", func(t *testing.T) {
		cache := &MockBookCache{}
		repo := &MockBookStorage{
			AddFunc: func(ctx context.Context, book Book) (Book, error) {
				return Book{}, ErrDuplicateISBN
			},
		}
		bs := NewBookService(zap.NewNop(), repo, cache)
		_, err := bs.Create(context.Background(), testServiceBook)
		assert.ErrorIs(t, err, ErrDuplicateISBN)
		assert.Equal(t, 0, cache.InvalidateCalls)
	})

	t.Run("update invalidates the cache", func(t *testing.T) {
		cache := &MockBookCache{}
		repo := &MockBookStorage{
			UpdateFunc: func(ctx context.Context, id int64, book Book) error {
				return nil
			},
		}
		bs := NewBookService(zap.NewNop(), repo, cache)
		err := bs.Update(context.Background(), 7, testServiceBook)
		assert.NoError(t, err)
		assert.Equal(t, 1, cache.InvalidateCalls)
	})

	t.Run("update of missing book does not touch the cache", func(t *testing.T) {
		cache := &MockBookCache{}
		repo := &MockBookStorage{
			UpdateFunc: func(ctx context.Context, id int64, book Book) error {
				return ErrBookNotFound
			},
		}
		bs := NewBookService(zap.NewNop(), repo, cache)
		err := bs.Update(context.Background(), 404, testServiceBook)
		assert.ErrorIs(t, err, ErrBookNotFound)
		assert.Equal(t, 0, cache.InvalidateCalls)
	})

	t.Run("delete invalidates the cache", func(t *testing.T) {
		cache := &MockBookCache{}
		repo := &MockBookStorage{
			DeleteFunc: func(ctx context.Context, id int64) error {
				return nil
			},
		}
		bs := NewBookService(zap.NewNop(), repo, cache)
		err := bs.Delete(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, 1, cache.InvalidateCalls)
	})

	t.Run("delete of missing book does not touch the cache", func(t *testing.T) {
		cache := &MockBookCache{}
		repo := &MockBookStorage{
			DeleteFunc: func(ctx context.Context, id int64) error {
				return ErrBookNotFound
			},
		}
		bs := NewBookService(zap.NewNop(), repo, cache)
		err := bs.Delete(context.Background(), 404)
		assert.ErrorIs(t, err, ErrBookNotFound)
		assert.Equal(t, 0, cache.InvalidateCalls)
	})
}

// TestBookServiceDegradedCache ensures the resolver stays fully functional
// with the no-op cache wired in.
func TestBookServiceDegradedCache(t *testing.T) {
	repo := &MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			return []Book{testServiceBook}, nil
		},
		GetOneFunc: func(ctx context.Context, id int64) (Book, error) {
			return testServiceBook, nil
		},
		AddFunc: func(ctx context.Context, book Book) (Book, error) {
			return testServiceBook, nil
		},
	}
	bs := NewBookService(zap.NewNop(), repo, NewNoopBookCache())

	books, fromCache, err := bs.GetAll(context.Background())
	assert.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, []Book{testServiceBook}, books)

	// repeated reads never come from the cache.
	_, fromCache, err = bs.GetAll(context.Background())
	assert.NoError(t, err)
	assert.False(t, fromCache)

	book, fromCache, err := bs.GetOne(context.Background(), 7)
	assert.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, testServiceBook, book)

	_, err = bs.Create(context.Background(), testServiceBook)
	assert.NoError(t, err)
}
