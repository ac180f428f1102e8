package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gutenberg-catalog/internal/domains/catalog/model"
	"gutenberg-catalog/internal/domains/catalog/service"
	"gutenberg-catalog/internal/shared/response"
	"gutenberg-catalog/pkg/cache"
	"gutenberg-catalog/pkg/logger"
)

const detailCacheTTL = 10 * time.Minute

// Handler - HTTP handlers for the catalog endpoints
type Handler struct {
	service service.ServiceInterface
	cache   cache.Cache
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface, cache cache.Cache) *Handler {
	return &Handler{
		service: service,
		cache:   cache,
	}
}

// ListBooks - GET /books
// Query params: gutenberg_id, language, topic, mime_type, author, title,
// page, page_size (all optional, comma-separated lists). Always 200; an
// empty result set is a valid outcome, never an error.
func (h *Handler) ListBooks(c *gin.Context) {
	filter := model.ParseBookFilter(c.Request.URL.Query())

	page, err := h.service.ListBooks(c.Request.Context(), filter)
	if model.HandleCatalogError(c, err) {
		return
	}

	results := model.ToBookDTOs(page.Books)
	envelope := model.BookListResponse{
		Count:      len(results),
		CountTotal: page.TotalCount,
		Results:    results,
	}
	if page.HasNext {
		envelope.Next = pageLink(c.Request, filter.Page+1)
	}
	if page.HasPrevious {
		envelope.Previous = pageLink(c.Request, filter.Page-1)
	}

	c.JSON(http.StatusOK, envelope)
}

// GetBookDetail - GET /books/:id
func (h *Handler) GetBookDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		// The route space holds no book under a non-numeric id.
		response.NotFound(c, "No book with the given id exists")
		return
	}

	cacheKey := detailCacheKey(id)
	if h.cache != nil {
		var cached model.BookDTO
		found, cacheErr := h.cache.Get(c.Request.Context(), cacheKey, &cached)
		if found {
			c.JSON(http.StatusOK, cached)
			return
		}
		if cacheErr != nil {
			logger.Error("book detail cache read failed", cacheErr)
		}
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if model.HandleCatalogError(c, err) {
		return
	}

	dto := model.ToBookDTO(book)
	if h.cache != nil {
		if err := h.cache.Set(c.Request.Context(), cacheKey, dto, detailCacheTTL); err != nil {
			logger.Error("book detail cache write failed", err)
		}
	}

	c.JSON(http.StatusOK, dto)
}

// pageLink rebuilds the incoming request URL with only the page parameter
// replaced, preserving every currently-active filter parameter.
func pageLink(r *http.Request, page int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	link := fmt.Sprintf("%s://%s%s", scheme, r.Host, u.RequestURI())
	return &link
}

func detailCacheKey(id int64) string {
	return fmt.Sprintf("catalog:book:%d", id)
}
