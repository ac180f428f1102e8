package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gutenberg-catalog/internal/shared/response"
	"gutenberg-catalog/pkg/logger"
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrDatabaseQuery = errors.New("database query error")
)

var catalogErrorMap = map[error]struct {
	Status  int
	Title   string
	Message string
}{
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Title:   "Book not found",
		Message: "No book with the given id exists",
	},
}

// HandleCatalogError writes the HTTP response for a service error.
// Returns true if err was non-nil and a response has been written.
// Unknown errors (store failures included) map to a 500, never a 404.
func HandleCatalogError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range catalogErrorMap {
		if errors.Is(err, sentinel) {
			response.Error(c, cfg.Status, cfg.Title, cfg.Message)
			return true
		}
	}

	logger.Error("catalog request failed", err)
	response.InternalServerError(c, "Failed to retrieve books")
	return true
}
