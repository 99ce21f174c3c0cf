package main

import (
	"context"
	"errors"
	"time"
)

// Book represents a book record as stored in the books table.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Price     float64   `json:"price"`
	Stock     int64     `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	// ErrBookNotFound is returned when no book row matches the requested id.
	ErrBookNotFound = errors.New("book not found")
	// ErrDuplicateISBN is returned when an insert or update collides with
	// the unique constraint on the isbn column.
	ErrDuplicateISBN = errors.New("book with this isbn already exists")
)

// BookStorage defines the operations of the authoritative book store.
// Its errors are real and must propagate to the caller.
type BookStorage interface {
	Add(ctx context.Context, book Book) (Book, error)
	GetOne(ctx context.Context, id int64) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	Update(ctx context.Context, id int64, book Book) error
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// BookCache defines the look-aside cache over book reads. It is strictly
// best-effort: a failing cache behaves like an empty one and no method
// reports an error.
type BookCache interface {
	GetOne(ctx context.Context, id int64) (Book, bool)
	GetAll(ctx context.Context) ([]Book, bool)
	SetOne(ctx context.Context, book Book)
	SetAll(ctx context.Context, books []Book)
	Invalidate(ctx context.Context)
	Available(ctx context.Context) bool
}
