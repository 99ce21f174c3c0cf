package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	AddFunc    func(ctx context.Context, book Book) (Book, error)
	GetOneFunc func(ctx context.Context, id int64) (Book, error)
	GetAllFunc func(ctx context.Context) ([]Book, error)
	UpdateFunc func(ctx context.Context, id int64, book Book) error
	DeleteFunc func(ctx context.Context, id int64) error
	PingFunc   func(ctx context.Context) error
}

// Add mocks the behavior of book creation by the repository.
func (m *MockBookStorage) Add(ctx context.Context, book Book) (Book, error) {
	return m.AddFunc(ctx, book)
}

// GetOne mocks the behavior of retrieving a book by the repository.
func (m *MockBookStorage) GetOne(ctx context.Context, id int64) (Book, error) {
	return m.GetOneFunc(ctx, id)
}

// GetAll mocks the behavior of retrieving all books by the repository.
func (m *MockBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	return m.GetAllFunc(ctx)
}

// Update mocks the behavior of updating a book by the repository.
func (m *MockBookStorage) Update(ctx context.Context, id int64, book Book) error {
	return m.UpdateFunc(ctx, id, book)
}

// Delete mocks the behavior of deleting a book by the repository.
func (m *MockBookStorage) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

// Ping mocks the behavior of the repository connection check.
func (m *MockBookStorage) Ping(ctx context.Context) error {
	if m.PingFunc == nil {
		return nil
	}
	return m.PingFunc(ctx)
}

// MockBookCache implements a fake BookCache. Reads are configurable through
// the func fields and default to a miss. Writes and invalidations are
// recorded so tests can assert on the cache interactions.
type MockBookCache struct {
	GetOneFunc    func(ctx context.Context, id int64) (Book, bool)
	GetAllFunc    func(ctx context.Context) ([]Book, bool)
	AvailableFunc func(ctx context.Context) bool

	SetOneCalls     int
	SetAllCalls     int
	InvalidateCalls int
	LastSetBook     Book
	LastSetBooks    []Book
}

func (m *MockBookCache) GetOne(ctx context.Context, id int64) (Book, bool) {
	if m.GetOneFunc == nil {
		return Book{}, false
	}
	return m.GetOneFunc(ctx, id)
}

func (m *MockBookCache) GetAll(ctx context.Context) ([]Book, bool) {
	if m.GetAllFunc == nil {
		return nil, false
	}
	return m.GetAllFunc(ctx)
}

func (m *MockBookCache) SetOne(_ context.Context, book Book) {
	m.SetOneCalls++
	m.LastSetBook = book
}

func (m *MockBookCache) SetAll(_ context.Context, books []Book) {
	m.SetAllCalls++
	m.LastSetBooks = books
}

func (m *MockBookCache) Invalidate(_ context.Context) {
	m.InvalidateCalls++
}

func (m *MockBookCache) Available(ctx context.Context) bool {
	if m.AvailableFunc == nil {
		return false
	}
	return m.AvailableFunc(ctx)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}
