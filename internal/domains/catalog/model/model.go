package model

// ============ ENTITIES ============
// Read-only views over the Project Gutenberg catalog tables (books_*).
// The catalog is batch-loaded externally; nothing in this service mutates it.

// Book - Domain entity (books_book)
type Book struct {
	ID            int64   `json:"id" db:"id"`
	GutenbergID   int     `json:"gutenberg_id" db:"gutenberg_id"`
	Title         *string `json:"title" db:"title"`
	DownloadCount *int    `json:"download_count" db:"download_count"`
	MediaType     string  `json:"media_type" db:"media_type"`

	// Relations, populated by the repository for each page of results.
	Authors     []Author    `json:"authors"`
	Languages   []Language  `json:"languages"`
	Subjects    []Subject   `json:"subjects"`
	Bookshelves []Bookshelf `json:"bookshelves"`
	Formats     []Format    `json:"formats"`
}

// Author - books_author, many-to-many with Book
type Author struct {
	Name      string `json:"name" db:"name"`
	BirthYear *int   `json:"birth_year" db:"birth_year"`
	DeathYear *int   `json:"death_year" db:"death_year"`
}

// Language - books_language, ISO-like code
type Language struct {
	Code string `json:"code" db:"code"`
}

// Subject - books_subject free-text tag
type Subject struct {
	Name string `json:"name" db:"name"`
}

// Bookshelf - books_bookshelf free-text tag; queried together with
// Subject under the "topic" filter
type Bookshelf struct {
	Name string `json:"name" db:"name"`
}

// Format - books_format, owned exclusively by one Book
type Format struct {
	MimeType string `json:"mime_type" db:"mime_type"`
	URL      string `json:"url" db:"url"`
}
