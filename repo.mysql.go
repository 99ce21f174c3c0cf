package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

const booksColumns = "id, title, author, isbn, price, stock, created_at, updated_at"

// mysqlErrDuplicateEntry is the server error number raised when a
// statement violates a unique constraint.
const mysqlErrDuplicateEntry = 1062

type mysqlBookStorage struct {
	logger *zap.Logger
	db     *sql.DB
}

// GetMySQLClient opens the connections pool towards the books database and
// verifies it with a ping. The ping is retried a fixed number of times with
// a fixed delay since the database may still be booting. Exhausting all
// attempts is a fatal initialization error.
func GetMySQLClient(config *Config, logger *zap.Logger) (*sql.DB, error) {
	dsnConfig := mysql.Config{
		User:                 config.Database.User,
		Passwd:               config.Database.Password,
		Net:                  "tcp",
		Addr:                 net.JoinHostPort(config.Database.Host, config.Database.Port),
		DBName:               config.Database.Name,
		ParseTime:            true,
		AllowNativePasswords: true,
		// report matched rows so an update that leaves values unchanged
		// is not mistaken for a missing row.
		ClientFoundRows: true,
	}

	db, err := sql.Open("mysql", dsnConfig.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open the database: %v", err)
	}

	db.SetMaxOpenConns(config.Database.PoolSize)
	db.SetMaxIdleConns(config.Database.PoolSize)
	db.SetConnMaxLifetime(config.Database.ConnMaxLifetime)

	for attempt := 1; attempt <= config.Database.ConnectRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			return db, nil
		}
		logger.Warn("database not reachable yet",
			zap.Int("attempt", attempt),
			zap.Int("attempts.max", config.Database.ConnectRetries),
			zap.Duration("retry.delay", config.Database.RetryDelay),
			zap.Error(err),
		)
		if attempt < config.Database.ConnectRetries {
			time.Sleep(config.Database.RetryDelay)
		}
	}
	_ = db.Close()
	return nil, fmt.Errorf("test connection failed after %d attempts: %v", config.Database.ConnectRetries, err)
}

// NewMySQLBookStorage provides an instance of mysql-based book storage.
func NewMySQLBookStorage(logger *zap.Logger, db *sql.DB) BookStorage {
	return &mysqlBookStorage{
		logger: logger,
		db:     db,
	}
}

// Ping verifies the books database is reachable.
func (ms *mysqlBookStorage) Ping(ctx context.Context) error {
	return ms.db.PingContext(ctx)
}

// Add inserts a new book record and reads the stored row back so the
// returned book carries the database-assigned id and timestamps.
func (ms *mysqlBookStorage) Add(ctx context.Context, book Book) (Book, error) {
	result, err := ms.db.ExecContext(ctx,
		"INSERT INTO books (title, author, isbn, price, stock) VALUES (?, ?, ?, ?, ?)",
		book.Title, book.Author, book.ISBN, book.Price, book.Stock,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return Book{}, ErrDuplicateISBN
		}
		return Book{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Book{}, err
	}
	return ms.GetOne(ctx, id)
}

// GetOne retrieves a book record based on its ID.
func (ms *mysqlBookStorage) GetOne(ctx context.Context, id int64) (Book, error) {
	var book Book
	err := ms.db.QueryRowContext(ctx,
		"SELECT "+booksColumns+" FROM books WHERE id = ?", id,
	).Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.Price, &book.Stock, &book.CreatedAt, &book.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrBookNotFound
	}
	if err != nil {
		return Book{}, err
	}
	return book, nil
}

// GetAll retrieves all book records ordered by creation time, newest first.
func (ms *mysqlBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	rows, err := ms.db.QueryContext(ctx,
		"SELECT "+booksColumns+" FROM books ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		var book Book
		if err = rows.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.Price, &book.Stock, &book.CreatedAt, &book.UpdatedAt); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// Update rewrites all mutable fields of an existing book record and
// refreshes its updated_at timestamp.
func (ms *mysqlBookStorage) Update(ctx context.Context, id int64, book Book) error {
	result, err := ms.db.ExecContext(ctx,
		"UPDATE books SET title = ?, author = ?, isbn = ?, price = ?, stock = ?, updated_at = NOW() WHERE id = ?",
		book.Title, book.Author, book.ISBN, book.Price, book.Stock, id,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicateISBN
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// Delete removes a book record based on its ID.
func (ms *mysqlBookStorage) Delete(ctx context.Context, id int64) error {
	result, err := ms.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// isDuplicateEntry tells whether the statement hit the unique isbn index.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}
