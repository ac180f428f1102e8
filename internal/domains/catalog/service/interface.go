package service

import (
	"context"

	"gutenberg-catalog/internal/domains/catalog/model"
)

// BookPage is one paginated slice of the filtered catalog plus the metadata
// the response assembler needs to build the envelope.
type BookPage struct {
	TotalCount  int
	Books       []model.Book
	HasNext     bool
	HasPrevious bool
}

type ServiceInterface interface {
	// ListBooks counts the full filtered set, then fetches the requested
	// page. A page beyond the available range yields an empty, non-error
	// page.
	ListBooks(ctx context.Context, filter model.BookFilter) (*BookPage, error)

	// GetBook returns one book by internal identity, or
	// model.ErrBookNotFound.
	GetBook(ctx context.Context, id int64) (*model.Book, error)
}
