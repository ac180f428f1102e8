package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestToBookDTO_Projection(t *testing.T) {
	book := &Book{
		ID:            84,
		GutenbergID:   84,
		Title:         strPtr("Frankenstein"),
		DownloadCount: intPtr(76000),
		MediaType:     "Text",
		Authors: []Author{
			{Name: "Shelley, Mary Wollstonecraft", BirthYear: intPtr(1797), DeathYear: intPtr(1851)},
		},
		Languages:   []Language{{Code: "en"}},
		Subjects:    []Subject{{Name: "Gothic fiction"}, {Name: "Horror tales"}},
		Bookshelves: []Bookshelf{{Name: "Precursors of Science Fiction"}},
		Formats: []Format{
			{MimeType: "text/plain", URL: "https://www.gutenberg.org/files/84/84-0.txt"},
		},
	}

	dto := ToBookDTO(book)

	assert.Equal(t, int64(84), dto.ID)
	assert.Equal(t, 84, dto.GutenbergID)
	require.NotNil(t, dto.Title)
	assert.Equal(t, "Frankenstein", *dto.Title)
	require.NotNil(t, dto.DownloadCount)
	assert.Equal(t, 76000, *dto.DownloadCount)

	require.Len(t, dto.Authors, 1)
	assert.Equal(t, "Shelley, Mary Wollstonecraft", dto.Authors[0].Name)
	assert.Equal(t, 1797, *dto.Authors[0].BirthYear)
	assert.Equal(t, 1851, *dto.Authors[0].DeathYear)

	assert.Equal(t, []LanguageDTO{{Code: "en"}}, dto.Languages)
	assert.Equal(t, []SubjectDTO{{Name: "Gothic fiction"}, {Name: "Horror tales"}}, dto.Subjects)
	assert.Equal(t, []BookshelfDTO{{Name: "Precursors of Science Fiction"}}, dto.Bookshelves)
	assert.Equal(t, []FormatDTO{{MimeType: "text/plain", URL: "https://www.gutenberg.org/files/84/84-0.txt"}}, dto.Formats)
}

func TestToBookDTO_EmptyRelationsSerializeAsArrays(t *testing.T) {
	dto := ToBookDTO(&Book{ID: 1, GutenbergID: 1})

	raw, err := json.Marshal(dto)
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, `"authors":[]`)
	assert.Contains(t, body, `"languages":[]`)
	assert.Contains(t, body, `"subjects":[]`)
	assert.Contains(t, body, `"bookshelves":[]`)
	assert.Contains(t, body, `"formats":[]`)
	assert.Contains(t, body, `"title":null`)
	assert.Contains(t, body, `"download_count":null`)
}

func TestToBookDTOs_PreservesOrder(t *testing.T) {
	books := []Book{
		{ID: 3, GutenbergID: 30},
		{ID: 1, GutenbergID: 10},
		{ID: 2, GutenbergID: 20},
	}

	dtos := ToBookDTOs(books)

	require.Len(t, dtos, 3)
	assert.Equal(t, int64(3), dtos[0].ID)
	assert.Equal(t, int64(1), dtos[1].ID)
	assert.Equal(t, int64(2), dtos[2].ID)
}

func TestBookListResponse_EnvelopeShape(t *testing.T) {
	raw, err := json.Marshal(BookListResponse{
		Count:      0,
		CountTotal: 0,
		Results:    []BookDTO{},
	})
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, `"count":0`)
	assert.Contains(t, body, `"count_total":0`)
	assert.Contains(t, body, `"next":null`)
	assert.Contains(t, body, `"previous":null`)
	assert.Contains(t, body, `"results":[]`)
}
