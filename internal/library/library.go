// Package library is the orchestration surface consumed by the CLI: list,
// add, edit and delete entry points that combine the storage backend, the
// aggregation engine and the filter engine. It is constructed with an
// explicit backend; nothing here knows which variant it is talking to.
package library

import (
	"time"

	"github.com/avolkova/shelves/internal/entities"
	"github.com/avolkova/shelves/internal/storage"
	"github.com/avolkova/shelves/internal/views"
)

// Library is the management facade over one storage backend.
type Library struct {
	store  storage.Store
	engine *views.Engine
}

func New(store storage.Store) *Library {
	return &Library{store: store, engine: views.NewEngine(store)}
}

// SeriesEntry names a series and the book's position within it.
type SeriesEntry struct {
	Name       string
	BookNumber int
}

// BookInput collects everything needed to add or edit a book. Authors,
// genres and series are given by natural key and resolved with
// lookup-or-create; they are never deleted when a book stops referencing
// them.
type BookInput struct {
	Title  string
	Pages  *int
	Rating *int

	Authors []entities.Author
	Genres  []string
	Series  []SeriesEntry
}

// SessionInput collects a reading session's fields. FinishDate nil marks an
// in-progress read.
type SessionInput struct {
	BookID     int64
	StartDate  *time.Time
	FinishDate *time.Time
	Rating     *int
}

// ListBooks aggregates the books view and applies the given filters.
func (l *Library) ListBooks(predicates ...views.Predicate) (views.Table, error) {
	table, err := l.engine.Books()
	if err != nil {
		return views.Table{}, err
	}
	return views.Apply(table, predicates...)
}

// ListReading aggregates the reading view and applies the given filters.
func (l *Library) ListReading(predicates ...views.Predicate) (views.Table, error) {
	table, err := l.engine.Reading()
	if err != nil {
		return views.Table{}, err
	}
	return views.Apply(table, predicates...)
}

// Stats summarizes the library.
func (l *Library) Stats() (views.Stats, error) {
	return l.engine.Stats()
}

// AddBook resolves the natural-key references, creates the book row and then
// its association rows, in dependency order: parents first, so a failure
// partway never leaves a child row pointing at a missing parent.
func (l *Library) AddBook(input BookInput) (int64, error) {
	authorIDs, genreIDs, seriesLinks, err := l.resolveReferences(input)
	if err != nil {
		return 0, err
	}

	bookID, err := l.store.CreateBook(entities.Book{
		Title:  input.Title,
		Pages:  input.Pages,
		Rating: input.Rating,
	})
	if err != nil {
		return 0, err
	}

	if err := l.replaceAssociations(bookID, authorIDs, genreIDs, seriesLinks); err != nil {
		return 0, err
	}
	return bookID, nil
}

// EditBook updates the book row and replaces its associations wholesale;
// associations are never diffed.
func (l *Library) EditBook(id int64, input BookInput) error {
	if _, err := l.store.BookByID(id); err != nil {
		return err
	}
	authorIDs, genreIDs, seriesLinks, err := l.resolveReferences(input)
	if err != nil {
		return err
	}
	err = l.store.UpdateBook(id, entities.Book{
		Title:  input.Title,
		Pages:  input.Pages,
		Rating: input.Rating,
	})
	if err != nil {
		return err
	}
	return l.replaceAssociations(id, authorIDs, genreIDs, seriesLinks)
}

// DeleteBook removes the book, cascading to its associations and sessions.
func (l *Library) DeleteBook(id int64) error {
	return l.store.DeleteBook(id)
}

func (l *Library) AddReadingSession(input SessionInput) (int64, error) {
	return l.store.CreateReadingSession(entities.ReadingSession{
		BookID:     input.BookID,
		StartDate:  input.StartDate,
		FinishDate: input.FinishDate,
		Rating:     input.Rating,
	})
}

func (l *Library) EditReadingSession(id int64, input SessionInput) error {
	return l.store.UpdateReadingSession(id, entities.ReadingSession{
		BookID:     input.BookID,
		StartDate:  input.StartDate,
		FinishDate: input.FinishDate,
		Rating:     input.Rating,
	})
}

func (l *Library) DeleteReadingSession(id int64) error {
	return l.store.DeleteReadingSession(id)
}

func (l *Library) resolveReferences(input BookInput) (authorIDs, genreIDs []int64, seriesLinks []entities.BookSeries, err error) {
	for _, author := range input.Authors {
		id, err := l.store.LookupOrCreateAuthor(author)
		if err != nil {
			return nil, nil, nil, err
		}
		authorIDs = append(authorIDs, id)
	}
	for _, name := range input.Genres {
		id, err := l.store.LookupOrCreateGenre(name)
		if err != nil {
			return nil, nil, nil, err
		}
		genreIDs = append(genreIDs, id)
	}
	for _, entry := range input.Series {
		id, err := l.store.LookupOrCreateSeries(entry.Name)
		if err != nil {
			return nil, nil, nil, err
		}
		seriesLinks = append(seriesLinks, entities.BookSeries{
			SeriesID:   id,
			BookNumber: entry.BookNumber,
		})
	}
	return authorIDs, genreIDs, seriesLinks, nil
}

func (l *Library) replaceAssociations(bookID int64, authorIDs, genreIDs []int64, seriesLinks []entities.BookSeries) error {
	if err := l.store.ReplaceBookAuthors(bookID, authorIDs); err != nil {
		return err
	}
	if err := l.store.ReplaceBookGenres(bookID, genreIDs); err != nil {
		return err
	}
	return l.store.ReplaceBookSeries(bookID, seriesLinks)
}
