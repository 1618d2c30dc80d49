package library

import (
	"github.com/avolkova/shelves/internal/entities"
)

// Raw catalog accessors used by the CLI layer to resolve prompts ("which
// book?") into ids before any mutation starts.

func (l *Library) Books() ([]entities.Book, error) {
	return l.store.Books()
}

func (l *Library) Authors() ([]entities.Author, error) {
	return l.store.Authors()
}

func (l *Library) Genres() ([]entities.Genre, error) {
	return l.store.Genres()
}

func (l *Library) Series() ([]entities.Series, error) {
	return l.store.AllSeries()
}

func (l *Library) ReadingSessions() ([]entities.ReadingSession, error) {
	return l.store.ReadingSessions()
}

// Author, genre and series management. Edits collide with existing natural
// keys as ErrDuplicate; deletes cascade to the entity's association rows,
// never to books.

func (l *Library) EditAuthor(id int64, author entities.Author) error {
	return l.store.UpdateAuthor(id, author)
}

func (l *Library) DeleteAuthor(id int64) error {
	return l.store.DeleteAuthor(id)
}

func (l *Library) EditGenre(id int64, name string) error {
	return l.store.UpdateGenre(id, name)
}

func (l *Library) DeleteGenre(id int64) error {
	return l.store.DeleteGenre(id)
}

func (l *Library) EditSeries(id int64, name string) error {
	return l.store.UpdateSeries(id, name)
}

func (l *Library) DeleteSeries(id int64) error {
	return l.store.DeleteSeries(id)
}
