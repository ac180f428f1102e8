package model

// ============ DTOs ============
// Wire-facing shapes, distinct from the storage entities. The projection is
// a pure function; relation arrays are never null on the wire.

// BookDTO - Serialized book for both list and detail responses
type BookDTO struct {
	ID            int64          `json:"id"`
	Title         *string        `json:"title"`
	GutenbergID   int            `json:"gutenberg_id"`
	DownloadCount *int           `json:"download_count"`
	Authors       []AuthorDTO    `json:"authors"`
	Languages     []LanguageDTO  `json:"languages"`
	Subjects      []SubjectDTO   `json:"subjects"`
	Bookshelves   []BookshelfDTO `json:"bookshelves"`
	Formats       []FormatDTO    `json:"formats"`
}

type AuthorDTO struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}

type LanguageDTO struct {
	Code string `json:"code"`
}

type SubjectDTO struct {
	Name string `json:"name"`
}

type BookshelfDTO struct {
	Name string `json:"name"`
}

type FormatDTO struct {
	MimeType string `json:"mime_type"`
	URL      string `json:"url"`
}

// BookListResponse - Paginated envelope for the list endpoint
type BookListResponse struct {
	Count      int       `json:"count"`
	CountTotal int       `json:"count_total"`
	Next       *string   `json:"next"`
	Previous   *string   `json:"previous"`
	Results    []BookDTO `json:"results"`
}

// ToBookDTO projects a Book entity onto its wire shape.
func ToBookDTO(b *Book) BookDTO {
	dto := BookDTO{
		ID:            b.ID,
		Title:         b.Title,
		GutenbergID:   b.GutenbergID,
		DownloadCount: b.DownloadCount,
		Authors:       make([]AuthorDTO, 0, len(b.Authors)),
		Languages:     make([]LanguageDTO, 0, len(b.Languages)),
		Subjects:      make([]SubjectDTO, 0, len(b.Subjects)),
		Bookshelves:   make([]BookshelfDTO, 0, len(b.Bookshelves)),
		Formats:       make([]FormatDTO, 0, len(b.Formats)),
	}
	for _, a := range b.Authors {
		dto.Authors = append(dto.Authors, AuthorDTO{Name: a.Name, BirthYear: a.BirthYear, DeathYear: a.DeathYear})
	}
	for _, l := range b.Languages {
		dto.Languages = append(dto.Languages, LanguageDTO{Code: l.Code})
	}
	for _, s := range b.Subjects {
		dto.Subjects = append(dto.Subjects, SubjectDTO{Name: s.Name})
	}
	for _, s := range b.Bookshelves {
		dto.Bookshelves = append(dto.Bookshelves, BookshelfDTO{Name: s.Name})
	}
	for _, fm := range b.Formats {
		dto.Formats = append(dto.Formats, FormatDTO{MimeType: fm.MimeType, URL: fm.URL})
	}
	return dto
}

// ToBookDTOs projects a page of books, preserving order.
func ToBookDTOs(books []Book) []BookDTO {
	dtos := make([]BookDTO, 0, len(books))
	for i := range books {
		dtos = append(dtos, ToBookDTO(&books[i]))
	}
	return dtos
}
