// Package storage defines the backend contract shared by the flat-file and
// relational stores. Both variants expose identical CRUD semantics: the
// aggregation engine and the facade depend only on the Store interface and
// never on a concrete backend.
package storage

import (
	"github.com/avolkova/shelves/internal/entities"
)

// Store is the capability contract implemented by csvstore and sqlstore.
//
// All reads return rows in insertion order. Writes enforce each entity's
// uniqueness invariant (ErrDuplicate) and field constraints (ErrValidation).
// Deleting a book cascades to its association rows and reading sessions;
// deleting an author, genre or series cascades to its association rows. The
// relational backend cascades natively, the flat-file backend re-implements
// the cascade as an explicit children-then-parent delete sequence.
type Store interface {
	// Initialize creates the backing files or schema. Without force it fails
	// with ErrAlreadyInitialized if the store already exists; with force it
	// destructively recreates.
	Initialize(force bool) error
	Close() error

	CreateBook(book entities.Book) (int64, error)
	Books() ([]entities.Book, error)
	BookByID(id int64) (entities.Book, error)
	UpdateBook(id int64, book entities.Book) error
	DeleteBook(id int64) error

	Authors() ([]entities.Author, error)
	LookupOrCreateAuthor(author entities.Author) (int64, error)
	UpdateAuthor(id int64, author entities.Author) error
	DeleteAuthor(id int64) error

	Genres() ([]entities.Genre, error)
	LookupOrCreateGenre(name string) (int64, error)
	UpdateGenre(id int64, name string) error
	DeleteGenre(id int64) error

	AllSeries() ([]entities.Series, error)
	LookupOrCreateSeries(name string) (int64, error)
	UpdateSeries(id int64, name string) error
	DeleteSeries(id int64) error

	CreateReadingSession(session entities.ReadingSession) (int64, error)
	ReadingSessions() ([]entities.ReadingSession, error)
	ReadingSessionsForBook(bookID int64) ([]entities.ReadingSession, error)
	UpdateReadingSession(id int64, session entities.ReadingSession) error
	DeleteReadingSession(id int64) error

	BookAuthors() ([]entities.BookAuthor, error)
	BookGenres() ([]entities.BookGenre, error)
	BookSeries() ([]entities.BookSeries, error)

	// ReplaceBookAuthors and friends swap a book's association rows
	// wholesale. Edits never diff associations; they delete and reinsert.
	ReplaceBookAuthors(bookID int64, authorIDs []int64) error
	ReplaceBookGenres(bookID int64, genreIDs []int64) error
	ReplaceBookSeries(bookID int64, series []entities.BookSeries) error
}
