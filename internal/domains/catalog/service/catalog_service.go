package service

import (
	"context"

	"gutenberg-catalog/internal/domains/catalog/model"
	"gutenberg-catalog/internal/domains/catalog/repository"
)

type catalogService struct {
	repo repository.RepositoryInterface
}

// NewCatalogService - Constructor with DI
func NewCatalogService(repo repository.RepositoryInterface) ServiceInterface {
	return &catalogService{repo: repo}
}

// ListBooks composes the query once and runs the count before the slice, so
// TotalCount reflects the whole filtered set and both run against the same
// deduplicated query skeleton.
func (s *catalogService) ListBooks(ctx context.Context, filter model.BookFilter) (*BookPage, error) {
	query := repository.ComposeBookQuery(filter)

	total, err := s.repo.CountBooks(ctx, query)
	if err != nil {
		return nil, err
	}

	books := []model.Book{}
	if offset := filter.Offset(); offset < total {
		books, err = s.repo.ListBooks(ctx, query, filter.PageSize, offset)
		if err != nil {
			return nil, err
		}
	}

	return &BookPage{
		TotalCount:  total,
		Books:       books,
		HasNext:     filter.Page*filter.PageSize < total,
		HasPrevious: filter.Page > 1,
	}, nil
}

func (s *catalogService) GetBook(ctx context.Context, id int64) (*model.Book, error) {
	return s.repo.GetBookByID(ctx, id)
}
