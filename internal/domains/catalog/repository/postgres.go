package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"gutenberg-catalog/internal/domains/catalog/model"
)

// postgresRepository - Raw SQL execution with pgxpool. The SQL itself comes
// from the composed Query (list/count) or from the fixed detail statement;
// this layer only executes, scans and attaches relations.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) CountBooks(ctx context.Context, q Query) (int, error) {
	sql, args, err := q.CountSQL()
	if err != nil {
		return 0, errors.Join(model.ErrDatabaseQuery, err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count query failed: %w", errors.Join(model.ErrDatabaseQuery, err))
	}

	return total, nil
}

func (r *postgresRepository) ListBooks(ctx context.Context, q Query, limit, offset int) ([]model.Book, error) {
	sql, args, err := q.SelectSQL(uint(limit), uint(offset))
	if err != nil {
		return nil, errors.Join(model.ErrDatabaseQuery, err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", errors.Join(model.ErrDatabaseQuery, err))
	}
	defer rows.Close()

	books := make([]model.Book, 0, limit)
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.GutenbergID, &b.Title, &b.DownloadCount, &b.MediaType); err != nil {
			return nil, fmt.Errorf("scan book row: %w", errors.Join(model.ErrDatabaseQuery, err))
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rows: %w", errors.Join(model.ErrDatabaseQuery, err))
	}

	if err := r.loadRelations(ctx, books); err != nil {
		return nil, err
	}

	return books, nil
}

func (r *postgresRepository) GetBookByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `
		SELECT id, gutenberg_id, title, download_count, media_type
		FROM books_book
		WHERE id = $1
	`

	var b model.Book
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.GutenbergID, &b.Title, &b.DownloadCount, &b.MediaType,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, errors.Join(model.ErrDatabaseQuery, err))
	}

	books := []model.Book{b}
	if err := r.loadRelations(ctx, books); err != nil {
		return nil, err
	}

	return &books[0], nil
}

// ============================================
// RELATION LOADING
// ============================================

// loadRelations attaches authors, languages, subjects, bookshelves and
// formats to every book in the slice, one batched query per relation.
func (r *postgresRepository) loadRelations(ctx context.Context, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}

	ids := make(pq.Int64Array, 0, len(books))
	byID := make(map[int64]*model.Book, len(books))
	for i := range books {
		ids = append(ids, books[i].ID)
		byID[books[i].ID] = &books[i]
	}

	if err := r.eachRelationRow(ctx, `
		SELECT ba.book_id, a.name, a.birth_year, a.death_year
		FROM books_book_authors ba
		JOIN books_author a ON a.id = ba.author_id
		WHERE ba.book_id = ANY($1)
		ORDER BY a.name
	`, ids, func(rows pgx.Rows) error {
		var bookID int64
		var a model.Author
		if err := rows.Scan(&bookID, &a.Name, &a.BirthYear, &a.DeathYear); err != nil {
			return err
		}
		byID[bookID].Authors = append(byID[bookID].Authors, a)
		return nil
	}); err != nil {
		return fmt.Errorf("load authors: %w", errors.Join(model.ErrDatabaseQuery, err))
	}

	if err := r.eachRelationRow(ctx, `
		SELECT bl.book_id, l.code
		FROM books_book_languages bl
		JOIN books_language l ON l.id = bl.language_id
		WHERE bl.book_id = ANY($1)
		ORDER BY l.code
	`, ids, func(rows pgx.Rows) error {
		var bookID int64
		var l model.Language
		if err := rows.Scan(&bookID, &l.Code); err != nil {
			return err
		}
		byID[bookID].Languages = append(byID[bookID].Languages, l)
		return nil
	}); err != nil {
		return fmt.Errorf("load languages: %w", errors.Join(model.ErrDatabaseQuery, err))
	}

	if err := r.eachRelationRow(ctx, `
		SELECT bs.book_id, s.name
		FROM books_book_subjects bs
		JOIN books_subject s ON s.id = bs.subject_id
		WHERE bs.book_id = ANY($1)
		ORDER BY s.name
	`, ids, func(rows pgx.Rows) error {
		var bookID int64
		var s model.Subject
		if err := rows.Scan(&bookID, &s.Name); err != nil {
			return err
		}
		byID[bookID].Subjects = append(byID[bookID].Subjects, s)
		return nil
	}); err != nil {
		return fmt.Errorf("load subjects: %w", errors.Join(model.ErrDatabaseQuery, err))
	}

	if err := r.eachRelationRow(ctx, `
		SELECT bb.book_id, sh.name
		FROM books_book_bookshelves bb
		JOIN books_bookshelf sh ON sh.id = bb.bookshelf_id
		WHERE bb.book_id = ANY($1)
		ORDER BY sh.name
	`, ids, func(rows pgx.Rows) error {
		var bookID int64
		var sh model.Bookshelf
		if err := rows.Scan(&bookID, &sh.Name); err != nil {
			return err
		}
		byID[bookID].Bookshelves = append(byID[bookID].Bookshelves, sh)
		return nil
	}); err != nil {
		return fmt.Errorf("load bookshelves: %w", errors.Join(model.ErrDatabaseQuery, err))
	}

	if err := r.eachRelationRow(ctx, `
		SELECT book_id, mime_type, url
		FROM books_format
		WHERE book_id = ANY($1)
		ORDER BY mime_type
	`, ids, func(rows pgx.Rows) error {
		var bookID int64
		var f model.Format
		if err := rows.Scan(&bookID, &f.MimeType, &f.URL); err != nil {
			return err
		}
		byID[bookID].Formats = append(byID[bookID].Formats, f)
		return nil
	}); err != nil {
		return fmt.Errorf("load formats: %w", errors.Join(model.ErrDatabaseQuery, err))
	}

	return nil
}

// eachRelationRow runs one batched relation query and invokes scan per row.
// The cursor is closed on every exit path.
func (r *postgresRepository) eachRelationRow(ctx context.Context, query string, ids pq.Int64Array, scan func(rows pgx.Rows) error) error {
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}

	return rows.Err()
}
