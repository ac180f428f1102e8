package repository

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/doug-martin/goqu/v9/exp"

	"gutenberg-catalog/internal/domains/catalog/model"
)

const dialectPostgres = "postgres"

// Catalog tables. Naming follows the batch loader that populates the store.
const (
	tableBook            = "books_book"
	tableAuthor          = "books_author"
	tableLanguage        = "books_language"
	tableSubject         = "books_subject"
	tableBookshelf       = "books_bookshelf"
	tableFormat          = "books_format"
	tableBookAuthors     = "books_book_authors"
	tableBookLanguages   = "books_book_languages"
	tableBookSubjects    = "books_book_subjects"
	tableBookBookshelves = "books_book_bookshelves"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Query is the composed, not-yet-executed representation of a filter set:
// the FROM/JOIN/WHERE skeleton shared by the count and the page slice, plus
// whether deduplication of book identities is required.
//
// ComposeBookQuery is a pure function; rendering and execution belong to the
// repository. Both renderings share the same skeleton, so the total count
// can never be inflated by join fan-out that the page slice suppresses.
type Query struct {
	base     *goqu.SelectDataset
	distinct bool
}

// ComposeBookQuery builds the query descriptor for a parsed filter set.
// Active filters are ANDed together; values within one filter are ORed.
// Joins are added only for the relation filters that are active, and any
// join forces DISTINCT semantics so each book appears at most once no
// matter how many related rows matched.
func ComposeBookQuery(f model.BookFilter) Query {
	ds := goqu.Dialect(dialectPostgres).From(goqu.T(tableBook).As("b"))

	if len(f.GutenbergIDs) > 0 {
		ds = ds.Where(goqu.I("b.gutenberg_id").In(f.GutenbergIDs))
	}

	if len(f.Titles) > 0 {
		ds = ds.Where(anyContains(f.Titles, "b.title"))
	}

	if len(f.Languages) > 0 {
		ds = ds.
			Join(goqu.T(tableBookLanguages).As("bl"), goqu.On(goqu.I("bl.book_id").Eq(goqu.I("b.id")))).
			Join(goqu.T(tableLanguage).As("l"), goqu.On(goqu.I("l.id").Eq(goqu.I("bl.language_id")))).
			Where(goqu.I("l.code").In(f.Languages))
	}

	if len(f.Topics) > 0 {
		// A topic may live on either tag table, so both relations are
		// LEFT JOINed and the match is ORed across the two name columns.
		ds = ds.
			LeftJoin(goqu.T(tableBookSubjects).As("bsu"), goqu.On(goqu.I("bsu.book_id").Eq(goqu.I("b.id")))).
			LeftJoin(goqu.T(tableSubject).As("su"), goqu.On(goqu.I("su.id").Eq(goqu.I("bsu.subject_id")))).
			LeftJoin(goqu.T(tableBookBookshelves).As("bsh"), goqu.On(goqu.I("bsh.book_id").Eq(goqu.I("b.id")))).
			LeftJoin(goqu.T(tableBookshelf).As("sh"), goqu.On(goqu.I("sh.id").Eq(goqu.I("bsh.bookshelf_id")))).
			Where(anyContains(f.Topics, "su.name", "sh.name"))
	}

	if len(f.MimeTypes) > 0 {
		ds = ds.
			Join(goqu.T(tableFormat).As("fm"), goqu.On(goqu.I("fm.book_id").Eq(goqu.I("b.id")))).
			Where(goqu.I("fm.mime_type").In(f.MimeTypes))
	}

	if len(f.Authors) > 0 {
		ds = ds.
			Join(goqu.T(tableBookAuthors).As("ba"), goqu.On(goqu.I("ba.book_id").Eq(goqu.I("b.id")))).
			Join(goqu.T(tableAuthor).As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("ba.author_id")))).
			Where(anyContains(f.Authors, "a.name"))
	}

	return Query{base: ds, distinct: f.HasRelationFilter()}
}

// SelectSQL renders the page-slice query: book columns, default ordering by
// download count descending (nulls treated as lowest) with the book id as a
// stable tiebreak, and the requested LIMIT/OFFSET.
func (q Query) SelectSQL(limit, offset uint) (string, []interface{}, error) {
	ds := q.base.Select(
		goqu.I("b.id"),
		goqu.I("b.gutenberg_id"),
		goqu.I("b.title"),
		goqu.I("b.download_count"),
		goqu.I("b.media_type"),
	)
	if q.distinct {
		ds = ds.Distinct()
	}

	return ds.
		Order(
			goqu.I("b.download_count").Desc().NullsLast(),
			goqu.I("b.id").Asc(),
		).
		Limit(limit).
		Offset(offset).
		Prepared(true).
		ToSQL()
}

// CountSQL renders the total-count query over the same filtered set. With
// relation joins active it counts DISTINCT book ids, so the total matches
// the deduplicated page slices.
func (q Query) CountSQL() (string, []interface{}, error) {
	var count exp.SQLFunctionExpression
	if q.distinct {
		count = goqu.COUNT(goqu.DISTINCT(goqu.I("b.id")))
	} else {
		count = goqu.COUNT(goqu.Star())
	}

	return q.base.Select(count).Prepared(true).ToSQL()
}

// anyContains ORs a case-insensitive substring match of every token against
// every given column. LIKE metacharacters in tokens are escaped so user
// input always matches literally.
func anyContains(tokens []string, columns ...string) exp.ExpressionList {
	exprs := make([]goqu.Expression, 0, len(tokens)*len(columns))
	for _, token := range tokens {
		pattern := "%" + likeEscaper.Replace(token) + "%"
		for _, column := range columns {
			exprs = append(exprs, goqu.I(column).ILike(pattern))
		}
	}
	return goqu.Or(exprs...)
}
