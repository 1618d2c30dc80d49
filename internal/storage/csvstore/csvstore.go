// Package csvstore implements the storage contract over plain CSV files, one
// file per table under <data dir>/backend/. The file format enforces nothing:
// referential integrity, uniqueness and cascading deletes are all maintained
// here. Whole tables are held in memory and rewritten on every mutation,
// children before parents, so a failure partway through a cascade leaves at
// worst a parent without children rather than orphaned child rows.
package csvstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avolkova/shelves/internal/entities"
	"github.com/avolkova/shelves/internal/storage"
)

var _ storage.Store = (*Store)(nil)

var tableHeaders = map[string][]string{
	"books":         {"id", "title", "pages", "rating"},
	"authors":       {"id", "first_name", "middle_name", "last_name", "suffix"},
	"genres":        {"id", "name"},
	"series":        {"id", "name"},
	"reading":       {"id", "book_id", "start_date", "finish_date", "rating"},
	"books_authors": {"book_id", "author_id"},
	"books_genres":  {"book_id", "genre_id"},
	"books_series":  {"book_id", "series_id", "book_number"},
}

var tableNames = []string{
	"books", "authors", "genres", "series", "reading",
	"books_authors", "books_genres", "books_series",
}

// Store is the flat-file backend. Not safe for concurrent use; the tool runs
// one logical operation at a time.
type Store struct {
	dir    string
	loaded bool

	books    []entities.Book
	authors  []entities.Author
	genres   []entities.Genre
	series   []entities.Series
	sessions []entities.ReadingSession

	bookAuthors []entities.BookAuthor
	bookGenres  []entities.BookGenre
	bookSeries  []entities.BookSeries

	// Natural-key indexes for lookup-or-create, rebuilt on load and kept
	// current by every mutation.
	authorIndex map[string]int64
	genreIndex  map[string]int64
	seriesIndex map[string]int64
}

// New returns a store rooted at the given data directory. Table files are
// not touched until the first operation.
func New(dataDir string) *Store {
	return &Store{dir: dataDir}
}

func (s *Store) backendDir() string {
	return filepath.Join(s.dir, "backend")
}

func (s *Store) tablePath(name string) string {
	return filepath.Join(s.backendDir(), name+".csv")
}

// Initialize creates the backend directory and one header-only CSV per
// table. If any table file already exists and force is false, it fails with
// ErrAlreadyInitialized and leaves existing data untouched.
func (s *Store) Initialize(force bool) error {
	if !force {
		for _, name := range tableNames {
			if _, err := os.Stat(s.tablePath(name)); err == nil {
				return fmt.Errorf("%w: %s", storage.ErrAlreadyInitialized, s.tablePath(name))
			}
		}
	}
	if err := os.MkdirAll(s.backendDir(), 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", storage.ErrStorageIO, s.backendDir(), err)
	}
	for _, name := range tableNames {
		if err := writeTable(s.tablePath(name), tableHeaders[name], nil); err != nil {
			return err
		}
	}
	s.loaded = false
	return nil
}

func (s *Store) Close() error { return nil }

// load reads every table file into memory. Called lazily by each operation.
func (s *Store) load() error {
	if s.loaded {
		return nil
	}
	rows := make(map[string][][]string, len(tableNames))
	for _, name := range tableNames {
		records, err := readTable(s.tablePath(name), len(tableHeaders[name]))
		if err != nil {
			return err
		}
		rows[name] = records
	}

	var err error
	if s.books, err = decodeBooks(rows["books"]); err != nil {
		return err
	}
	if s.authors, err = decodeAuthors(rows["authors"]); err != nil {
		return err
	}
	if s.genres, err = decodeGenres(rows["genres"]); err != nil {
		return err
	}
	if s.series, err = decodeSeries(rows["series"]); err != nil {
		return err
	}
	if s.sessions, err = decodeSessions(rows["reading"]); err != nil {
		return err
	}
	if s.bookAuthors, err = decodeBookAuthors(rows["books_authors"]); err != nil {
		return err
	}
	if s.bookGenres, err = decodeBookGenres(rows["books_genres"]); err != nil {
		return err
	}
	if s.bookSeries, err = decodeBookSeries(rows["books_series"]); err != nil {
		return err
	}

	s.authorIndex = make(map[string]int64, len(s.authors))
	for _, a := range s.authors {
		s.authorIndex[a.NaturalKey()] = a.ID
	}
	s.genreIndex = make(map[string]int64, len(s.genres))
	for _, g := range s.genres {
		s.genreIndex[g.Name] = g.ID
	}
	s.seriesIndex = make(map[string]int64, len(s.series))
	for _, sr := range s.series {
		s.seriesIndex[sr.Name] = sr.ID
	}
	s.loaded = true
	return nil
}

func readTable(path string, wantCols int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", storage.ErrStorageIO, path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = wantCols
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", storage.ErrStorageIO, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s is missing its header row", storage.ErrStorageIO, path)
	}
	return records[1:], nil
}

func writeTable(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: writing %s: %v", storage.ErrStorageIO, path, err)
	}
	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("%w: writing %s: %v", storage.ErrStorageIO, path, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("%w: writing %s: %v", storage.ErrStorageIO, path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return fmt.Errorf("%w: writing %s: %v", storage.ErrStorageIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", storage.ErrStorageIO, path, err)
	}
	return nil
}

func (s *Store) saveTable(name string) error {
	var rows [][]string
	switch name {
	case "books":
		rows = encodeBooks(s.books)
	case "authors":
		rows = encodeAuthors(s.authors)
	case "genres":
		rows = encodeGenres(s.genres)
	case "series":
		rows = encodeSeries(s.series)
	case "reading":
		rows = encodeSessions(s.sessions)
	case "books_authors":
		rows = encodeBookAuthors(s.bookAuthors)
	case "books_genres":
		rows = encodeBookGenres(s.bookGenres)
	case "books_series":
		rows = encodeBookSeries(s.bookSeries)
	}
	return writeTable(s.tablePath(name), tableHeaders[name], rows)
}
