package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gutenberg-catalog/internal/domains/catalog/model"
	"gutenberg-catalog/internal/domains/catalog/service"
	"gutenberg-catalog/pkg/cache"
)

type fakeService struct {
	page      *service.BookPage
	book      *model.Book
	listErr   error
	getErr    error
	listCalls int
	getCalls  int
}

func (f *fakeService) ListBooks(_ context.Context, _ model.BookFilter) (*service.BookPage, error) {
	f.listCalls++
	return f.page, f.listErr
}

func (f *fakeService) GetBook(_ context.Context, _ int64) (*model.Book, error) {
	f.getCalls++
	return f.book, f.getErr
}

// fakeCache is an in-memory stand-in for the Redis client.
type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}

func (f *fakeCache) Ping(_ context.Context) error { return nil }

func setupRouter(svc service.ServiceInterface, c cache.Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, c)

	router := gin.New()
	router.GET("/books", h.ListBooks)
	router.GET("/books/:id", h.GetBookDetail)
	return router
}

func doRequest(router *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListBooks_Envelope(t *testing.T) {
	svc := &fakeService{
		page: &service.BookPage{
			TotalCount:  40,
			Books:       []model.Book{{ID: 1, GutenbergID: 11}, {ID: 2, GutenbergID: 84}},
			HasNext:     true,
			HasPrevious: true,
		},
	}
	router := setupRouter(svc, nil)

	rec := doRequest(router, "http://example.com/books?language=en&page=2&page_size=2")

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope model.BookListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.Equal(t, 2, envelope.Count)
	assert.Equal(t, 40, envelope.CountTotal)
	require.Len(t, envelope.Results, 2)
	assert.Equal(t, 11, envelope.Results[0].GutenbergID)

	require.NotNil(t, envelope.Next)
	assert.Equal(t, "http://example.com/books?language=en&page=3&page_size=2", *envelope.Next)
	require.NotNil(t, envelope.Previous)
	assert.Equal(t, "http://example.com/books?language=en&page=1&page_size=2", *envelope.Previous)
}

func TestListBooks_FirstAndLastPageLinks(t *testing.T) {
	svc := &fakeService{
		page: &service.BookPage{TotalCount: 40, Books: []model.Book{{ID: 1}}, HasNext: true},
	}
	router := setupRouter(svc, nil)

	rec := doRequest(router, "http://example.com/books")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope model.BookListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	require.NotNil(t, envelope.Next)
	assert.Equal(t, "http://example.com/books?page=2", *envelope.Next)
	assert.Nil(t, envelope.Previous)

	svc.page = &service.BookPage{TotalCount: 40, Books: []model.Book{{ID: 2}}, HasPrevious: true}

	rec = doRequest(router, "http://example.com/books?page=2")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.Nil(t, envelope.Next)
	require.NotNil(t, envelope.Previous)
	assert.Equal(t, "http://example.com/books?page=1", *envelope.Previous)
}

func TestListBooks_EmptyResultIsStillOK(t *testing.T) {
	svc := &fakeService{page: &service.BookPage{Books: []model.Book{}}}
	router := setupRouter(svc, nil)

	rec := doRequest(router, "http://example.com/books?topic=nonexistent")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"results":[]`)
	assert.Contains(t, rec.Body.String(), `"count":0`)
	assert.Contains(t, rec.Body.String(), `"next":null`)
	assert.Contains(t, rec.Body.String(), `"previous":null`)
}

func TestListBooks_StoreFailure(t *testing.T) {
	svc := &fakeService{listErr: model.ErrDatabaseQuery}
	router := setupRouter(svc, nil)

	rec := doRequest(router, "http://example.com/books")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL_SERVER_ERROR"`)
}

func TestGetBookDetail_OK(t *testing.T) {
	title := "Frankenstein"
	svc := &fakeService{book: &model.Book{ID: 84, GutenbergID: 84, Title: &title}}
	router := setupRouter(svc, nil)

	rec := doRequest(router, "http://example.com/books/84")

	require.Equal(t, http.StatusOK, rec.Code)

	var dto model.BookDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, int64(84), dto.ID)
	require.NotNil(t, dto.Title)
	assert.Equal(t, "Frankenstein", *dto.Title)
}

func TestGetBookDetail_CacheReadThrough(t *testing.T) {
	svc := &fakeService{book: &model.Book{ID: 84, GutenbergID: 84}}
	fc := newFakeCache()
	router := setupRouter(svc, fc)

	rec := doRequest(router, "http://example.com/books/84")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.getCalls)
	assert.Contains(t, fc.entries, "catalog:book:84")

	// Second hit must be served from the cache.
	rec = doRequest(router, "http://example.com/books/84")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.getCalls)
}

func TestGetBookDetail_NotFound(t *testing.T) {
	svc := &fakeService{getErr: model.ErrBookNotFound}
	router := setupRouter(svc, nil)

	rec := doRequest(router, "http://example.com/books/99999")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestGetBookDetail_NonNumericID(t *testing.T) {
	svc := &fakeService{}
	router := setupRouter(svc, nil)

	rec := doRequest(router, "http://example.com/books/frankenstein")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, svc.getCalls)
}

func TestGetBookDetail_StoreFailure(t *testing.T) {
	svc := &fakeService{getErr: model.ErrDatabaseQuery}
	router := setupRouter(svc, nil)

	rec := doRequest(router, "http://example.com/books/84")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL_SERVER_ERROR"`)
}
