// Package views builds the two denormalized, display-ready tables from the
// normalized storage rows: the books view and the reading view. It reads raw
// rows through the storage contract only, so both backends produce identical
// results. The filter engine in this package reduces a view by user-supplied
// predicates before display.
package views

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/avolkova/shelves/internal/entities"
	"github.com/avolkova/shelves/internal/storage"
)

// Column sets for the two friendly views, in display order.
var (
	BooksColumns   = []string{"Title", "Author(s)", "Pages", "Times Read", "Rating", "Genre"}
	ReadingColumns = []string{"ID", "Title", "Author(s)", "Start", "Finish", "Rating", "Read Time"}
)

// Row maps a column name to its cell value. Cells are string, int, int64,
// float64, time.Time or nil for missing values.
type Row map[string]any

// Table is a friendly view: an ordered column set plus rows. Filtering never
// mutates a table; it produces a new one.
type Table struct {
	Columns []string
	Rows    []Row
}

// Engine aggregates raw storage rows into friendly views.
type Engine struct {
	store storage.Store
}

func NewEngine(store storage.Store) *Engine {
	return &Engine{store: store}
}

// Books builds the books view. Every book appears exactly once, in insertion
// order, with zero reads shown as Times Read 0 and the book's own rating
// standing in when no session has been rated.
func (e *Engine) Books() (Table, error) {
	books, err := e.store.Books()
	if err != nil {
		return Table{}, err
	}
	authorNames, err := e.authorNamesByBook()
	if err != nil {
		return Table{}, err
	}
	genreNames, err := e.genreNamesByBook()
	if err != nil {
		return Table{}, err
	}
	sessions, err := e.store.ReadingSessions()
	if err != nil {
		return Table{}, err
	}

	timesRead := make(map[int64]int)
	ratingSum := make(map[int64]int)
	ratingCount := make(map[int64]int)
	for _, session := range sessions {
		if session.FinishDate != nil {
			timesRead[session.BookID]++
		}
		if session.Rating != nil {
			ratingSum[session.BookID] += *session.Rating
			ratingCount[session.BookID]++
		}
	}

	table := Table{Columns: BooksColumns}
	for _, book := range books {
		row := Row{
			"Title":      book.Title,
			"Author(s)":  joinNames(authorNames[book.ID]),
			"Pages":      optionalInt(book.Pages),
			"Times Read": timesRead[book.ID],
			"Rating":     mergedRating(book, ratingSum[book.ID], ratingCount[book.ID]),
			"Genre":      joinNames(genreNames[book.ID]),
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// Reading builds the reading view, one row per session in insertion order. A
// session whose book row has gone missing still appears, with an empty title.
func (e *Engine) Reading() (Table, error) {
	sessions, err := e.store.ReadingSessions()
	if err != nil {
		return Table{}, err
	}
	books, err := e.store.Books()
	if err != nil {
		return Table{}, err
	}
	authorNames, err := e.authorNamesByBook()
	if err != nil {
		return Table{}, err
	}

	titles := make(map[int64]string, len(books))
	for _, book := range books {
		titles[book.ID] = book.Title
	}

	table := Table{Columns: ReadingColumns}
	for _, session := range sessions {
		row := Row{
			"ID":        session.ID,
			"Title":     titles[session.BookID],
			"Author(s)": joinNames(authorNames[session.BookID]),
			"Start":     optionalDate(session.StartDate),
			"Finish":    optionalDate(session.FinishDate),
			"Rating":    optionalInt(session.Rating),
			"Read Time": readTime(session),
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func (e *Engine) authorNamesByBook() (map[int64][]string, error) {
	authors, err := e.store.Authors()
	if err != nil {
		return nil, err
	}
	links, err := e.store.BookAuthors()
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]entities.Author, len(authors))
	for _, author := range authors {
		byID[author.ID] = author
	}
	names := make(map[int64][]string)
	for _, link := range links {
		if author, ok := byID[link.AuthorID]; ok {
			names[link.BookID] = append(names[link.BookID], author.DisplayName())
		}
	}
	return names, nil
}

func (e *Engine) genreNamesByBook() (map[int64][]string, error) {
	genres, err := e.store.Genres()
	if err != nil {
		return nil, err
	}
	links, err := e.store.BookGenres()
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]string, len(genres))
	for _, genre := range genres {
		byID[genre.ID] = genre.Name
	}
	names := make(map[int64][]string)
	for _, link := range links {
		if name, ok := byID[link.GenreID]; ok {
			names[link.BookID] = append(names[link.BookID], name)
		}
	}
	return names, nil
}

// joinNames produces the deterministic comma-joined string: name order, not
// insertion order.
func joinNames(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

// mergedRating prefers the mean of the book's session ratings over its own
// rating. Averages round half away from zero to one decimal place.
func mergedRating(book entities.Book, sum, count int) any {
	if count > 0 {
		return round1(float64(sum) / float64(count))
	}
	if book.Rating != nil {
		return float64(*book.Rating)
	}
	return nil
}

// readTime is the inclusive day count: a same-day read counts as one day.
func readTime(session entities.ReadingSession) any {
	if session.StartDate == nil || session.FinishDate == nil {
		return nil
	}
	days := int(session.FinishDate.Sub(*session.StartDate).Hours()/24) + 1
	return days
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func optionalInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func optionalDate(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}
