package csvstore

import (
	"fmt"

	"github.com/avolkova/shelves/internal/entities"
	"github.com/avolkova/shelves/internal/storage"
)

func (s *Store) BookAuthors() ([]entities.BookAuthor, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return append([]entities.BookAuthor(nil), s.bookAuthors...), nil
}

func (s *Store) BookGenres() ([]entities.BookGenre, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return append([]entities.BookGenre(nil), s.bookGenres...), nil
}

func (s *Store) BookSeries() ([]entities.BookSeries, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return append([]entities.BookSeries(nil), s.bookSeries...), nil
}

func (s *Store) ReplaceBookAuthors(bookID int64, authorIDs []int64) error {
	if err := s.load(); err != nil {
		return err
	}
	if !s.bookExists(bookID) {
		return fmt.Errorf("%w: book %d", storage.ErrNotFound, bookID)
	}
	seen := make(map[int64]bool, len(authorIDs))
	for _, authorID := range authorIDs {
		if seen[authorID] {
			return fmt.Errorf("%w: book %d already linked to author %d", storage.ErrDuplicate, bookID, authorID)
		}
		seen[authorID] = true
		if !s.authorExists(authorID) {
			return fmt.Errorf("%w: author %d", storage.ErrNotFound, authorID)
		}
	}

	s.bookAuthors = filterRows(s.bookAuthors, func(l entities.BookAuthor) bool { return l.BookID != bookID })
	for _, authorID := range authorIDs {
		s.bookAuthors = append(s.bookAuthors, entities.BookAuthor{BookID: bookID, AuthorID: authorID})
	}
	return s.saveTable("books_authors")
}

func (s *Store) ReplaceBookGenres(bookID int64, genreIDs []int64) error {
	if err := s.load(); err != nil {
		return err
	}
	if !s.bookExists(bookID) {
		return fmt.Errorf("%w: book %d", storage.ErrNotFound, bookID)
	}
	seen := make(map[int64]bool, len(genreIDs))
	for _, genreID := range genreIDs {
		if seen[genreID] {
			return fmt.Errorf("%w: book %d already linked to genre %d", storage.ErrDuplicate, bookID, genreID)
		}
		seen[genreID] = true
		if !s.genreExists(genreID) {
			return fmt.Errorf("%w: genre %d", storage.ErrNotFound, genreID)
		}
	}

	s.bookGenres = filterRows(s.bookGenres, func(l entities.BookGenre) bool { return l.BookID != bookID })
	for _, genreID := range genreIDs {
		s.bookGenres = append(s.bookGenres, entities.BookGenre{BookID: bookID, GenreID: genreID})
	}
	return s.saveTable("books_genres")
}

func (s *Store) ReplaceBookSeries(bookID int64, series []entities.BookSeries) error {
	if err := s.load(); err != nil {
		return err
	}
	if !s.bookExists(bookID) {
		return fmt.Errorf("%w: book %d", storage.ErrNotFound, bookID)
	}
	type position struct {
		seriesID int64
		number   int
	}
	seen := make(map[position]bool, len(series))
	for _, link := range series {
		key := position{link.SeriesID, link.BookNumber}
		if seen[key] {
			return fmt.Errorf("%w: book %d already at position %d in series %d",
				storage.ErrDuplicate, bookID, link.BookNumber, link.SeriesID)
		}
		seen[key] = true
		if !s.seriesExists(link.SeriesID) {
			return fmt.Errorf("%w: series %d", storage.ErrNotFound, link.SeriesID)
		}
	}

	s.bookSeries = filterRows(s.bookSeries, func(l entities.BookSeries) bool { return l.BookID != bookID })
	for _, link := range series {
		link.BookID = bookID
		s.bookSeries = append(s.bookSeries, link)
	}
	return s.saveTable("books_series")
}

func (s *Store) authorExists(id int64) bool {
	for _, a := range s.authors {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) genreExists(id int64) bool {
	for _, g := range s.genres {
		if g.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) seriesExists(id int64) bool {
	for _, sr := range s.series {
		if sr.ID == id {
			return true
		}
	}
	return false
}
