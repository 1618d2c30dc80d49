package library_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkova/shelves/internal/entities"
	"github.com/avolkova/shelves/internal/library"
	"github.com/avolkova/shelves/internal/storage"
	"github.com/avolkova/shelves/internal/storage/csvstore"
	"github.com/avolkova/shelves/internal/views"
)

func setupLibrary(t *testing.T) *library.Library {
	store := csvstore.New(t.TempDir())
	require.NoError(t, store.Initialize(false))
	return library.New(store)
}

func intp(v int) *int { return &v }

func datep(t *testing.T, value string) *time.Time {
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return &d
}

func duneInput() library.BookInput {
	return library.BookInput{
		Title: "Dune",
		Pages: intp(412),
		Authors: []entities.Author{
			{FirstName: "Frank", LastName: "Herbert"},
		},
		Genres: []string{"Sci-Fi"},
		Series: []library.SeriesEntry{{Name: "Dune Chronicles", BookNumber: 1}},
	}
}

func TestAddBookRoundTrip(t *testing.T) {
	lib := setupLibrary(t)

	bookID, err := lib.AddBook(duneInput())
	require.NoError(t, err)

	_, err = lib.AddReadingSession(library.SessionInput{
		BookID:     bookID,
		StartDate:  datep(t, "2020-01-01"),
		FinishDate: datep(t, "2020-01-10"),
		Rating:     intp(5),
	})
	require.NoError(t, err)

	table, err := lib.ListBooks()
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "Dune", row["Title"])
	assert.Equal(t, "Frank Herbert", row["Author(s)"])
	assert.Equal(t, 412, row["Pages"])
	assert.Equal(t, 1, row["Times Read"])
	assert.Equal(t, 5.0, row["Rating"])
	assert.Equal(t, "Sci-Fi", row["Genre"])
}

func TestListBooks_AppliesFilters(t *testing.T) {
	lib := setupLibrary(t)
	_, err := lib.AddBook(duneInput())
	require.NoError(t, err)
	_, err = lib.AddBook(library.BookInput{Title: "Hyperion", Pages: intp(482)})
	require.NoError(t, err)

	table, err := lib.ListBooks(views.Predicate{Column: "Title", Op: views.OpContains, Value: "dune"})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Dune", table.Rows[0]["Title"])

	_, err = lib.ListBooks(views.Predicate{Column: "Publisher", Op: views.OpEquals, Value: "Ace"})
	assert.ErrorIs(t, err, storage.ErrInvalidFilter)
}

func TestAddBookReusesExistingReferences(t *testing.T) {
	lib := setupLibrary(t)
	_, err := lib.AddBook(duneInput())
	require.NoError(t, err)

	messiah := duneInput()
	messiah.Title = "Dune Messiah"
	messiah.Series = []library.SeriesEntry{{Name: "Dune Chronicles", BookNumber: 2}}
	_, err = lib.AddBook(messiah)
	require.NoError(t, err)

	authors, err := lib.Authors()
	require.NoError(t, err)
	assert.Len(t, authors, 1, "the same author is looked up, not recreated")

	genres, err := lib.Genres()
	require.NoError(t, err)
	assert.Len(t, genres, 1)

	series, err := lib.Series()
	require.NoError(t, err)
	assert.Len(t, series, 1)
}

func TestEditBookReplacesAssociationsWholesale(t *testing.T) {
	lib := setupLibrary(t)
	bookID, err := lib.AddBook(duneInput())
	require.NoError(t, err)

	err = lib.EditBook(bookID, library.BookInput{
		Title: "Dune",
		Pages: intp(412),
		Authors: []entities.Author{
			{FirstName: "Kevin", MiddleName: "J.", LastName: "Anderson"},
		},
		Genres: []string{"Fantasy"},
	})
	require.NoError(t, err)

	table, err := lib.ListBooks()
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Kevin J. Anderson", table.Rows[0]["Author(s)"])
	assert.Equal(t, "Fantasy", table.Rows[0]["Genre"])

	// The replaced references remain in the catalog.
	authors, err := lib.Authors()
	require.NoError(t, err)
	assert.Len(t, authors, 2)
}

func TestEditBookUnknownID(t *testing.T) {
	lib := setupLibrary(t)
	err := lib.EditBook(99, duneInput())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteBookCascades(t *testing.T) {
	lib := setupLibrary(t)
	bookID, err := lib.AddBook(duneInput())
	require.NoError(t, err)
	_, err = lib.AddReadingSession(library.SessionInput{
		BookID:    bookID,
		StartDate: datep(t, "2020-01-01"),
	})
	require.NoError(t, err)

	require.NoError(t, lib.DeleteBook(bookID))

	table, err := lib.ListBooks()
	require.NoError(t, err)
	assert.Empty(t, table.Rows)

	reading, err := lib.ListReading()
	require.NoError(t, err)
	assert.Empty(t, reading.Rows)

	authors, err := lib.Authors()
	require.NoError(t, err)
	assert.Len(t, authors, 1, "authors survive their last book")
}

func TestReadingSessionLifecycle(t *testing.T) {
	lib := setupLibrary(t)
	bookID, err := lib.AddBook(duneInput())
	require.NoError(t, err)

	sessionID, err := lib.AddReadingSession(library.SessionInput{
		BookID:    bookID,
		StartDate: datep(t, "2020-01-01"),
	})
	require.NoError(t, err)

	err = lib.EditReadingSession(sessionID, library.SessionInput{
		BookID:     bookID,
		StartDate:  datep(t, "2020-01-01"),
		FinishDate: datep(t, "2020-01-10"),
		Rating:     intp(4),
	})
	require.NoError(t, err)

	table, err := lib.ListReading()
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 10, table.Rows[0]["Read Time"])
	assert.Equal(t, 4, table.Rows[0]["Rating"])

	require.NoError(t, lib.DeleteReadingSession(sessionID))
	table, err = lib.ListReading()
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestStatsThroughFacade(t *testing.T) {
	lib := setupLibrary(t)
	bookID, err := lib.AddBook(duneInput())
	require.NoError(t, err)
	_, err = lib.AddReadingSession(library.SessionInput{
		BookID:     bookID,
		StartDate:  datep(t, "2020-01-01"),
		FinishDate: datep(t, "2020-01-10"),
		Rating:     intp(5),
	})
	require.NoError(t, err)

	stats, err := lib.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalBooks)
	assert.Equal(t, 1, stats.FinishedReads)
	assert.Equal(t, 412, stats.PagesRead)
	assert.Equal(t, 5.0, stats.AverageRating)
}
