package csvstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkova/shelves/internal/entities"
	"github.com/avolkova/shelves/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	store := New(t.TempDir())
	require.NoError(t, store.Initialize(false))
	return store
}

func date(t *testing.T, value string) *time.Time {
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return &d
}

func TestInitialize_CreatesTableFiles(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	require.NoError(t, store.Initialize(false))

	for _, name := range tableNames {
		_, err := os.Stat(filepath.Join(dir, "backend", name+".csv"))
		assert.NoError(t, err, "%s.csv should exist", name)
	}
}

func TestInitialize_FailsWithoutForce(t *testing.T) {
	store := setupTestStore(t)

	id, err := store.CreateBook(entities.Book{Title: "Dune"})
	require.NoError(t, err)

	err = store.Initialize(false)
	assert.ErrorIs(t, err, storage.ErrAlreadyInitialized)

	// Existing data must be untouched.
	book, err := store.BookByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
}

func TestInitialize_ForceRecreates(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.CreateBook(entities.Book{Title: "Dune"})
	require.NoError(t, err)

	require.NoError(t, store.Initialize(true))

	books, err := store.Books()
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestCreateBook_AssignsMonotonicIDs(t *testing.T) {
	store := setupTestStore(t)

	first, err := store.CreateBook(entities.Book{Title: "Dune"})
	require.NoError(t, err)
	second, err := store.CreateBook(entities.Book{Title: "Hyperion"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestCreateBook_EmptyTitleFails(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.CreateBook(entities.Book{})
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func TestBooks_PersistAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	require.NoError(t, store.Initialize(false))

	pages := 412
	rating := 4
	_, err := store.CreateBook(entities.Book{Title: "Dune", Pages: &pages, Rating: &rating})
	require.NoError(t, err)

	reopened := New(dir)
	books, err := reopened.Books()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
	require.NotNil(t, books[0].Pages)
	assert.Equal(t, 412, *books[0].Pages)
	require.NotNil(t, books[0].Rating)
	assert.Equal(t, 4, *books[0].Rating)
}

func TestUpdateBook_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.UpdateBook(42, entities.Book{Title: "Dune"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLookupOrCreateAuthor_ReturnsExistingID(t *testing.T) {
	store := setupTestStore(t)

	herbert := entities.Author{FirstName: "Frank", LastName: "Herbert"}
	first, err := store.LookupOrCreateAuthor(herbert)
	require.NoError(t, err)

	again, err := store.LookupOrCreateAuthor(herbert)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// Different tuple gets a new id; the match is case-sensitive.
	other, err := store.LookupOrCreateAuthor(entities.Author{FirstName: "frank", LastName: "Herbert"})
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestLookupOrCreateGenre_Idempotent(t *testing.T) {
	store := setupTestStore(t)

	first, err := store.LookupOrCreateGenre("Sci-Fi")
	require.NoError(t, err)
	again, err := store.LookupOrCreateGenre("Sci-Fi")
	require.NoError(t, err)
	assert.Equal(t, first, again)

	genres, err := store.Genres()
	require.NoError(t, err)
	assert.Len(t, genres, 1)
}

func TestUpdateGenre_DuplicateName(t *testing.T) {
	store := setupTestStore(t)

	scifi, err := store.LookupOrCreateGenre("Sci-Fi")
	require.NoError(t, err)
	_, err = store.LookupOrCreateGenre("Fantasy")
	require.NoError(t, err)

	err = store.UpdateGenre(scifi, "Fantasy")
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	// Renaming to its own name is not a collision.
	assert.NoError(t, store.UpdateGenre(scifi, "Sci-Fi"))
}

func TestCreateReadingSession_RequiresExistingBook(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.CreateReadingSession(entities.ReadingSession{BookID: 99})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteBook_CascadesToChildren(t *testing.T) {
	store := setupTestStore(t)

	bookID, err := store.CreateBook(entities.Book{Title: "Dune"})
	require.NoError(t, err)
	authorID, err := store.LookupOrCreateAuthor(entities.Author{FirstName: "Frank", LastName: "Herbert"})
	require.NoError(t, err)
	genreID, err := store.LookupOrCreateGenre("Sci-Fi")
	require.NoError(t, err)
	seriesID, err := store.LookupOrCreateSeries("Dune Chronicles")
	require.NoError(t, err)
	require.NoError(t, store.ReplaceBookAuthors(bookID, []int64{authorID}))
	require.NoError(t, store.ReplaceBookGenres(bookID, []int64{genreID}))
	require.NoError(t, store.ReplaceBookSeries(bookID, []entities.BookSeries{{SeriesID: seriesID, BookNumber: 1}}))
	_, err = store.CreateReadingSession(entities.ReadingSession{
		BookID: bookID, StartDate: date(t, "2020-01-01"), FinishDate: date(t, "2020-01-10"),
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteBook(bookID))

	sessions, err := store.ReadingSessionsForBook(bookID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	bookAuthors, err := store.BookAuthors()
	require.NoError(t, err)
	assert.Empty(t, bookAuthors)
	bookGenres, err := store.BookGenres()
	require.NoError(t, err)
	assert.Empty(t, bookGenres)
	bookSeries, err := store.BookSeries()
	require.NoError(t, err)
	assert.Empty(t, bookSeries)

	// The author, genre and series rows themselves survive.
	authors, err := store.Authors()
	require.NoError(t, err)
	assert.Len(t, authors, 1)
}

func TestDeleteAuthor_CascadesToAssociationsOnly(t *testing.T) {
	store := setupTestStore(t)

	bookID, err := store.CreateBook(entities.Book{Title: "Dune"})
	require.NoError(t, err)
	authorID, err := store.LookupOrCreateAuthor(entities.Author{FirstName: "Frank", LastName: "Herbert"})
	require.NoError(t, err)
	require.NoError(t, store.ReplaceBookAuthors(bookID, []int64{authorID}))

	require.NoError(t, store.DeleteAuthor(authorID))

	links, err := store.BookAuthors()
	require.NoError(t, err)
	assert.Empty(t, links)
	_, err = store.BookByID(bookID)
	assert.NoError(t, err, "the book itself survives")
}

func TestReplaceBookAuthors_DuplicatePairing(t *testing.T) {
	store := setupTestStore(t)

	bookID, err := store.CreateBook(entities.Book{Title: "Dune"})
	require.NoError(t, err)
	authorID, err := store.LookupOrCreateAuthor(entities.Author{LastName: "Herbert"})
	require.NoError(t, err)

	err = store.ReplaceBookAuthors(bookID, []int64{authorID, authorID})
	assert.ErrorIs(t, err, storage.ErrDuplicate)
}

func TestReplaceBookSeries_SamePositionTwice(t *testing.T) {
	store := setupTestStore(t)

	bookID, err := store.CreateBook(entities.Book{Title: "Dune"})
	require.NoError(t, err)
	seriesID, err := store.LookupOrCreateSeries("Dune Chronicles")
	require.NoError(t, err)

	err = store.ReplaceBookSeries(bookID, []entities.BookSeries{
		{SeriesID: seriesID, BookNumber: 1},
		{SeriesID: seriesID, BookNumber: 1},
	})
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	// Two distinct positions in the same series are allowed.
	err = store.ReplaceBookSeries(bookID, []entities.BookSeries{
		{SeriesID: seriesID, BookNumber: 1},
		{SeriesID: seriesID, BookNumber: 2},
	})
	assert.NoError(t, err)
}

func TestUpdateReadingSession_FinishToNil(t *testing.T) {
	store := setupTestStore(t)

	bookID, err := store.CreateBook(entities.Book{Title: "Dune"})
	require.NoError(t, err)
	sessionID, err := store.CreateReadingSession(entities.ReadingSession{
		BookID: bookID, StartDate: date(t, "2020-01-01"), FinishDate: date(t, "2020-01-10"),
	})
	require.NoError(t, err)

	err = store.UpdateReadingSession(sessionID, entities.ReadingSession{
		BookID: bookID, StartDate: date(t, "2020-01-01"),
	})
	require.NoError(t, err)

	sessions, err := store.ReadingSessionsForBook(bookID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Nil(t, sessions[0].FinishDate)
}
