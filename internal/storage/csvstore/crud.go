package csvstore

import (
	"fmt"

	"github.com/avolkova/shelves/internal/entities"
	"github.com/avolkova/shelves/internal/storage"
)

func nextID[T any](rows []T, id func(T) int64) int64 {
	var max int64
	for _, row := range rows {
		if v := id(row); v > max {
			max = v
		}
	}
	return max + 1
}

func (s *Store) CreateBook(book entities.Book) (int64, error) {
	if err := s.load(); err != nil {
		return 0, err
	}
	if err := entities.Validate(book); err != nil {
		return 0, fmt.Errorf("%w: book: %v", storage.ErrValidation, err)
	}
	book.ID = nextID(s.books, func(b entities.Book) int64 { return b.ID })
	s.books = append(s.books, book)
	if err := s.saveTable("books"); err != nil {
		return 0, err
	}
	return book.ID, nil
}

func (s *Store) Books() ([]entities.Book, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return append([]entities.Book(nil), s.books...), nil
}

func (s *Store) BookByID(id int64) (entities.Book, error) {
	if err := s.load(); err != nil {
		return entities.Book{}, err
	}
	for _, b := range s.books {
		if b.ID == id {
			return b, nil
		}
	}
	return entities.Book{}, fmt.Errorf("%w: book %d", storage.ErrNotFound, id)
}

func (s *Store) UpdateBook(id int64, book entities.Book) error {
	if err := s.load(); err != nil {
		return err
	}
	if err := entities.Validate(book); err != nil {
		return fmt.Errorf("%w: book: %v", storage.ErrValidation, err)
	}
	for i := range s.books {
		if s.books[i].ID == id {
			book.ID = id
			s.books[i] = book
			return s.saveTable("books")
		}
	}
	return fmt.Errorf("%w: book %d", storage.ErrNotFound, id)
}

// DeleteBook removes the book and everything hanging off it. The flat files
// enforce no constraints, so the cascade is an explicit delete sequence:
// reading sessions and association rows are removed and persisted before the
// book row itself.
func (s *Store) DeleteBook(id int64) error {
	if err := s.load(); err != nil {
		return err
	}
	idx := -1
	for i := range s.books {
		if s.books[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: book %d", storage.ErrNotFound, id)
	}

	s.sessions = filterRows(s.sessions, func(r entities.ReadingSession) bool { return r.BookID != id })
	s.bookAuthors = filterRows(s.bookAuthors, func(l entities.BookAuthor) bool { return l.BookID != id })
	s.bookGenres = filterRows(s.bookGenres, func(l entities.BookGenre) bool { return l.BookID != id })
	s.bookSeries = filterRows(s.bookSeries, func(l entities.BookSeries) bool { return l.BookID != id })
	for _, table := range []string{"reading", "books_authors", "books_genres", "books_series"} {
		if err := s.saveTable(table); err != nil {
			return err
		}
	}

	s.books = append(s.books[:idx], s.books[idx+1:]...)
	return s.saveTable("books")
}

func filterRows[T any](rows []T, keep func(T) bool) []T {
	kept := rows[:0]
	for _, row := range rows {
		if keep(row) {
			kept = append(kept, row)
		}
	}
	return kept
}

func (s *Store) Authors() ([]entities.Author, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return append([]entities.Author(nil), s.authors...), nil
}

func (s *Store) LookupOrCreateAuthor(author entities.Author) (int64, error) {
	if err := s.load(); err != nil {
		return 0, err
	}
	if id, ok := s.authorIndex[author.NaturalKey()]; ok {
		return id, nil
	}
	author.ID = nextID(s.authors, func(a entities.Author) int64 { return a.ID })
	s.authors = append(s.authors, author)
	if err := s.saveTable("authors"); err != nil {
		return 0, err
	}
	s.authorIndex[author.NaturalKey()] = author.ID
	return author.ID, nil
}

func (s *Store) UpdateAuthor(id int64, author entities.Author) error {
	if err := s.load(); err != nil {
		return err
	}
	if existing, ok := s.authorIndex[author.NaturalKey()]; ok && existing != id {
		return fmt.Errorf("%w: author %q", storage.ErrDuplicate, author.DisplayName())
	}
	for i := range s.authors {
		if s.authors[i].ID == id {
			delete(s.authorIndex, s.authors[i].NaturalKey())
			author.ID = id
			s.authors[i] = author
			s.authorIndex[author.NaturalKey()] = id
			return s.saveTable("authors")
		}
	}
	return fmt.Errorf("%w: author %d", storage.ErrNotFound, id)
}

func (s *Store) DeleteAuthor(id int64) error {
	if err := s.load(); err != nil {
		return err
	}
	idx := -1
	for i := range s.authors {
		if s.authors[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: author %d", storage.ErrNotFound, id)
	}

	s.bookAuthors = filterRows(s.bookAuthors, func(l entities.BookAuthor) bool { return l.AuthorID != id })
	if err := s.saveTable("books_authors"); err != nil {
		return err
	}
	delete(s.authorIndex, s.authors[idx].NaturalKey())
	s.authors = append(s.authors[:idx], s.authors[idx+1:]...)
	return s.saveTable("authors")
}

func (s *Store) Genres() ([]entities.Genre, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return append([]entities.Genre(nil), s.genres...), nil
}

func (s *Store) LookupOrCreateGenre(name string) (int64, error) {
	if err := s.load(); err != nil {
		return 0, err
	}
	if id, ok := s.genreIndex[name]; ok {
		return id, nil
	}
	genre := entities.Genre{Name: name}
	if err := entities.Validate(genre); err != nil {
		return 0, fmt.Errorf("%w: genre: %v", storage.ErrValidation, err)
	}
	genre.ID = nextID(s.genres, func(g entities.Genre) int64 { return g.ID })
	s.genres = append(s.genres, genre)
	if err := s.saveTable("genres"); err != nil {
		return 0, err
	}
	s.genreIndex[name] = genre.ID
	return genre.ID, nil
}

func (s *Store) UpdateGenre(id int64, name string) error {
	if err := s.load(); err != nil {
		return err
	}
	if err := entities.Validate(entities.Genre{Name: name}); err != nil {
		return fmt.Errorf("%w: genre: %v", storage.ErrValidation, err)
	}
	if existing, ok := s.genreIndex[name]; ok && existing != id {
		return fmt.Errorf("%w: genre %q", storage.ErrDuplicate, name)
	}
	for i := range s.genres {
		if s.genres[i].ID == id {
			delete(s.genreIndex, s.genres[i].Name)
			s.genres[i].Name = name
			s.genreIndex[name] = id
			return s.saveTable("genres")
		}
	}
	return fmt.Errorf("%w: genre %d", storage.ErrNotFound, id)
}

func (s *Store) DeleteGenre(id int64) error {
	if err := s.load(); err != nil {
		return err
	}
	idx := -1
	for i := range s.genres {
		if s.genres[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: genre %d", storage.ErrNotFound, id)
	}

	s.bookGenres = filterRows(s.bookGenres, func(l entities.BookGenre) bool { return l.GenreID != id })
	if err := s.saveTable("books_genres"); err != nil {
		return err
	}
	delete(s.genreIndex, s.genres[idx].Name)
	s.genres = append(s.genres[:idx], s.genres[idx+1:]...)
	return s.saveTable("genres")
}

func (s *Store) AllSeries() ([]entities.Series, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return append([]entities.Series(nil), s.series...), nil
}

func (s *Store) LookupOrCreateSeries(name string) (int64, error) {
	if err := s.load(); err != nil {
		return 0, err
	}
	if id, ok := s.seriesIndex[name]; ok {
		return id, nil
	}
	series := entities.Series{Name: name}
	if err := entities.Validate(series); err != nil {
		return 0, fmt.Errorf("%w: series: %v", storage.ErrValidation, err)
	}
	series.ID = nextID(s.series, func(sr entities.Series) int64 { return sr.ID })
	s.series = append(s.series, series)
	if err := s.saveTable("series"); err != nil {
		return 0, err
	}
	s.seriesIndex[name] = series.ID
	return series.ID, nil
}

func (s *Store) UpdateSeries(id int64, name string) error {
	if err := s.load(); err != nil {
		return err
	}
	if err := entities.Validate(entities.Series{Name: name}); err != nil {
		return fmt.Errorf("%w: series: %v", storage.ErrValidation, err)
	}
	if existing, ok := s.seriesIndex[name]; ok && existing != id {
		return fmt.Errorf("%w: series %q", storage.ErrDuplicate, name)
	}
	for i := range s.series {
		if s.series[i].ID == id {
			delete(s.seriesIndex, s.series[i].Name)
			s.series[i].Name = name
			s.seriesIndex[name] = id
			return s.saveTable("series")
		}
	}
	return fmt.Errorf("%w: series %d", storage.ErrNotFound, id)
}

func (s *Store) DeleteSeries(id int64) error {
	if err := s.load(); err != nil {
		return err
	}
	idx := -1
	for i := range s.series {
		if s.series[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: series %d", storage.ErrNotFound, id)
	}

	s.bookSeries = filterRows(s.bookSeries, func(l entities.BookSeries) bool { return l.SeriesID != id })
	if err := s.saveTable("books_series"); err != nil {
		return err
	}
	delete(s.seriesIndex, s.series[idx].Name)
	s.series = append(s.series[:idx], s.series[idx+1:]...)
	return s.saveTable("series")
}

func (s *Store) CreateReadingSession(session entities.ReadingSession) (int64, error) {
	if err := s.load(); err != nil {
		return 0, err
	}
	if err := entities.Validate(session); err != nil {
		return 0, fmt.Errorf("%w: reading session: %v", storage.ErrValidation, err)
	}
	if !s.bookExists(session.BookID) {
		return 0, fmt.Errorf("%w: book %d", storage.ErrNotFound, session.BookID)
	}
	session.ID = nextID(s.sessions, func(r entities.ReadingSession) int64 { return r.ID })
	s.sessions = append(s.sessions, session)
	if err := s.saveTable("reading"); err != nil {
		return 0, err
	}
	return session.ID, nil
}

func (s *Store) ReadingSessions() ([]entities.ReadingSession, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return append([]entities.ReadingSession(nil), s.sessions...), nil
}

func (s *Store) ReadingSessionsForBook(bookID int64) ([]entities.ReadingSession, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	var sessions []entities.ReadingSession
	for _, r := range s.sessions {
		if r.BookID == bookID {
			sessions = append(sessions, r)
		}
	}
	return sessions, nil
}

func (s *Store) UpdateReadingSession(id int64, session entities.ReadingSession) error {
	if err := s.load(); err != nil {
		return err
	}
	if err := entities.Validate(session); err != nil {
		return fmt.Errorf("%w: reading session: %v", storage.ErrValidation, err)
	}
	if !s.bookExists(session.BookID) {
		return fmt.Errorf("%w: book %d", storage.ErrNotFound, session.BookID)
	}
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			session.ID = id
			s.sessions[i] = session
			return s.saveTable("reading")
		}
	}
	return fmt.Errorf("%w: reading session %d", storage.ErrNotFound, id)
}

func (s *Store) DeleteReadingSession(id int64) error {
	if err := s.load(); err != nil {
		return err
	}
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return s.saveTable("reading")
		}
	}
	return fmt.Errorf("%w: reading session %d", storage.ErrNotFound, id)
}

func (s *Store) bookExists(id int64) bool {
	for _, b := range s.books {
		if b.ID == id {
			return true
		}
	}
	return false
}
