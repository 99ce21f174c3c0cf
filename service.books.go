package main

import (
	"context"

	"go.uber.org/zap"
)

// BookServiceProvider is the cache-aside resolver over the book store.
// Read results report whether they were served from the cache.
type BookServiceProvider interface {
	GetAll(ctx context.Context) ([]Book, bool, error)
	GetOne(ctx context.Context, id int64) (Book, bool, error)
	Create(ctx context.Context, book Book) (Book, error)
	Update(ctx context.Context, id int64, book Book) error
	Delete(ctx context.Context, id int64) error
}

type BookService struct {
	logger  *zap.Logger
	storage BookStorage
	cache   BookCache
}

func NewBookService(logger *zap.Logger, storage BookStorage, cache BookCache) BookServiceProvider {
	return &BookService{
		logger:  logger,
		storage: storage,
		cache:   cache,
	}
}

// GetAll serves the books list from the cache when possible and falls back
// to the store on a miss, populating the cache afterward.
func (bs *BookService) GetAll(ctx context.Context) ([]Book, bool, error) {
	if books, ok := bs.cache.GetAll(ctx); ok {
		return books, true, nil
	}

	books, err := bs.storage.GetAll(ctx)
	if err != nil {
		return nil, false, err
	}
	bs.cache.SetAll(ctx, books)
	return books, false, nil
}

// GetOne serves a single book from the cache when possible and falls back
// to the store on a miss. Not-found results are never cached.
func (bs *BookService) GetOne(ctx context.Context, id int64) (Book, bool, error) {
	if book, ok := bs.cache.GetOne(ctx, id); ok {
		return book, true, nil
	}

	book, err := bs.storage.GetOne(ctx, id)
	if err != nil {
		return Book{}, false, err
	}
	bs.cache.SetOne(ctx, book)
	return book, false, nil
}

// Create inserts the book then flushes the cache. Store errors propagate
// without touching the cache.
func (bs *BookService) Create(ctx context.Context, book Book) (Book, error) {
	created, err := bs.storage.Add(ctx, book)
	if err != nil {
		return Book{}, err
	}
	bs.cache.Invalidate(ctx)
	bs.logger.Info("service: book created", zap.Int64("book.id", created.ID), zap.String("book.isbn", created.ISBN))
	return created, nil
}

// Update rewrites the book then flushes the cache. A missing row fails
// before any invalidation happens.
func (bs *BookService) Update(ctx context.Context, id int64, book Book) error {
	if err := bs.storage.Update(ctx, id, book); err != nil {
		return err
	}
	bs.cache.Invalidate(ctx)
	bs.logger.Info("service: book updated", zap.Int64("book.id", id))
	return nil
}

// Delete removes the book then flushes the cache. A missing row fails
// before any invalidation happens.
func (bs *BookService) Delete(ctx context.Context, id int64) error {
	if err := bs.storage.Delete(ctx, id); err != nil {
		return err
	}
	bs.cache.Invalidate(ctx)
	bs.logger.Info("service: book deleted", zap.Int64("book.id", id))
	return nil
}
