package repository

import (
	"context"

	"gutenberg-catalog/internal/domains/catalog/model"
)

// RepositoryInterface is the query-execution surface of the catalog store.
// CountBooks and ListBooks consume the same composed Query so count and
// slice always agree on the filtered, deduplicated set.
type RepositoryInterface interface {
	// CountBooks returns the number of distinct books matching the query.
	CountBooks(ctx context.Context, q Query) (int, error)

	// ListBooks returns one page of books in composer-defined order, with
	// all related entities attached.
	ListBooks(ctx context.Context, q Query, limit, offset int) ([]model.Book, error)

	// GetBookByID returns a single book with relations, or
	// model.ErrBookNotFound.
	GetBookByID(ctx context.Context, id int64) (*model.Book, error)
}
