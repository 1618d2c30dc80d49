package sqlstore

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/avolkova/shelves/internal/entities"
	"github.com/avolkova/shelves/internal/storage"
)

func (s *Store) CreateBook(book entities.Book) (int64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	if err := entities.Validate(book); err != nil {
		return 0, fmt.Errorf("%w: book: %v", storage.ErrValidation, err)
	}
	book.ID = 0
	if err := db.Create(&book).Error; err != nil {
		return 0, translate(err, fmt.Sprintf("book %q", book.Title))
	}
	return book.ID, nil
}

func (s *Store) Books() ([]entities.Book, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	var books []entities.Book
	if err := db.Order("id").Find(&books).Error; err != nil {
		return nil, translate(err, "books")
	}
	return books, nil
}

func (s *Store) BookByID(id int64) (entities.Book, error) {
	db, err := s.conn()
	if err != nil {
		return entities.Book{}, err
	}
	var book entities.Book
	if err := db.First(&book, id).Error; err != nil {
		return entities.Book{}, translate(err, fmt.Sprintf("book %d", id))
	}
	return book, nil
}

func (s *Store) UpdateBook(id int64, book entities.Book) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if err := entities.Validate(book); err != nil {
		return fmt.Errorf("%w: book: %v", storage.ErrValidation, err)
	}
	if _, err := s.BookByID(id); err != nil {
		return err
	}
	err = db.Model(&entities.Book{}).Where("id = ?", id).
		Select("Title", "Pages", "Rating").Updates(book).Error
	if err != nil {
		return translate(err, fmt.Sprintf("book %d", id))
	}
	return nil
}

// DeleteBook removes the book row; the ON DELETE CASCADE constraints take
// its reading sessions and association rows with it.
func (s *Store) DeleteBook(id int64) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	result := db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return translate(result.Error, fmt.Sprintf("book %d", id))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: book %d", storage.ErrNotFound, id)
	}
	return nil
}

func (s *Store) Authors() ([]entities.Author, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	var authors []entities.Author
	if err := db.Order("id").Find(&authors).Error; err != nil {
		return nil, translate(err, "authors")
	}
	return authors, nil
}

func (s *Store) LookupOrCreateAuthor(author entities.Author) (int64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	var existing entities.Author
	err = db.Where("first_name = ? AND middle_name = ? AND last_name = ? AND suffix = ?",
		author.FirstName, author.MiddleName, author.LastName, author.Suffix).
		First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, translate(err, fmt.Sprintf("author %q", author.DisplayName()))
	}
	author.ID = 0
	if err := db.Create(&author).Error; err != nil {
		return 0, translate(err, fmt.Sprintf("author %q", author.DisplayName()))
	}
	return author.ID, nil
}

func (s *Store) UpdateAuthor(id int64, author entities.Author) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	var existing entities.Author
	if err := db.First(&existing, id).Error; err != nil {
		return translate(err, fmt.Sprintf("author %d", id))
	}
	err = db.Model(&entities.Author{}).Where("id = ?", id).
		Select("FirstName", "MiddleName", "LastName", "Suffix").Updates(author).Error
	if err != nil {
		return translate(err, fmt.Sprintf("author %q", author.DisplayName()))
	}
	return nil
}

func (s *Store) DeleteAuthor(id int64) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	result := db.Delete(&entities.Author{}, id)
	if result.Error != nil {
		return translate(result.Error, fmt.Sprintf("author %d", id))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: author %d", storage.ErrNotFound, id)
	}
	return nil
}

func (s *Store) Genres() ([]entities.Genre, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	var genres []entities.Genre
	if err := db.Order("id").Find(&genres).Error; err != nil {
		return nil, translate(err, "genres")
	}
	return genres, nil
}

func (s *Store) LookupOrCreateGenre(name string) (int64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	var existing entities.Genre
	err = db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, translate(err, fmt.Sprintf("genre %q", name))
	}
	genre := entities.Genre{Name: name}
	if err := entities.Validate(genre); err != nil {
		return 0, fmt.Errorf("%w: genre: %v", storage.ErrValidation, err)
	}
	if err := db.Create(&genre).Error; err != nil {
		return 0, translate(err, fmt.Sprintf("genre %q", name))
	}
	return genre.ID, nil
}

func (s *Store) UpdateGenre(id int64, name string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if err := entities.Validate(entities.Genre{Name: name}); err != nil {
		return fmt.Errorf("%w: genre: %v", storage.ErrValidation, err)
	}
	var existing entities.Genre
	if err := db.First(&existing, id).Error; err != nil {
		return translate(err, fmt.Sprintf("genre %d", id))
	}
	err = db.Model(&entities.Genre{}).Where("id = ?", id).Update("name", name).Error
	if err != nil {
		return translate(err, fmt.Sprintf("genre %q", name))
	}
	return nil
}

func (s *Store) DeleteGenre(id int64) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	result := db.Delete(&entities.Genre{}, id)
	if result.Error != nil {
		return translate(result.Error, fmt.Sprintf("genre %d", id))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: genre %d", storage.ErrNotFound, id)
	}
	return nil
}

func (s *Store) AllSeries() ([]entities.Series, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	var series []entities.Series
	if err := db.Order("id").Find(&series).Error; err != nil {
		return nil, translate(err, "series")
	}
	return series, nil
}

func (s *Store) LookupOrCreateSeries(name string) (int64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	var existing entities.Series
	err = db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, translate(err, fmt.Sprintf("series %q", name))
	}
	series := entities.Series{Name: name}
	if err := entities.Validate(series); err != nil {
		return 0, fmt.Errorf("%w: series: %v", storage.ErrValidation, err)
	}
	if err := db.Create(&series).Error; err != nil {
		return 0, translate(err, fmt.Sprintf("series %q", name))
	}
	return series.ID, nil
}

func (s *Store) UpdateSeries(id int64, name string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if err := entities.Validate(entities.Series{Name: name}); err != nil {
		return fmt.Errorf("%w: series: %v", storage.ErrValidation, err)
	}
	var existing entities.Series
	if err := db.First(&existing, id).Error; err != nil {
		return translate(err, fmt.Sprintf("series %d", id))
	}
	err = db.Model(&entities.Series{}).Where("id = ?", id).Update("name", name).Error
	if err != nil {
		return translate(err, fmt.Sprintf("series %q", name))
	}
	return nil
}

func (s *Store) DeleteSeries(id int64) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	result := db.Delete(&entities.Series{}, id)
	if result.Error != nil {
		return translate(result.Error, fmt.Sprintf("series %d", id))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: series %d", storage.ErrNotFound, id)
	}
	return nil
}

func (s *Store) CreateReadingSession(session entities.ReadingSession) (int64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	if err := entities.Validate(session); err != nil {
		return 0, fmt.Errorf("%w: reading session: %v", storage.ErrValidation, err)
	}
	if _, err := s.BookByID(session.BookID); err != nil {
		return 0, err
	}
	session.ID = 0
	if err := db.Omit("Book").Create(&session).Error; err != nil {
		return 0, translate(err, fmt.Sprintf("reading session for book %d", session.BookID))
	}
	return session.ID, nil
}

func (s *Store) ReadingSessions() ([]entities.ReadingSession, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	var sessions []entities.ReadingSession
	if err := db.Order("id").Find(&sessions).Error; err != nil {
		return nil, translate(err, "reading sessions")
	}
	return sessions, nil
}

func (s *Store) ReadingSessionsForBook(bookID int64) ([]entities.ReadingSession, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	var sessions []entities.ReadingSession
	if err := db.Where("book_id = ?", bookID).Order("id").Find(&sessions).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("reading sessions for book %d", bookID))
	}
	return sessions, nil
}

func (s *Store) UpdateReadingSession(id int64, session entities.ReadingSession) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if err := entities.Validate(session); err != nil {
		return fmt.Errorf("%w: reading session: %v", storage.ErrValidation, err)
	}
	var existing entities.ReadingSession
	if err := db.First(&existing, id).Error; err != nil {
		return translate(err, fmt.Sprintf("reading session %d", id))
	}
	err = db.Model(&entities.ReadingSession{}).Where("id = ?", id).
		Select("BookID", "StartDate", "FinishDate", "Rating").Updates(session).Error
	if err != nil {
		return translate(err, fmt.Sprintf("reading session %d", id))
	}
	return nil
}

func (s *Store) DeleteReadingSession(id int64) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	result := db.Delete(&entities.ReadingSession{}, id)
	if result.Error != nil {
		return translate(result.Error, fmt.Sprintf("reading session %d", id))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: reading session %d", storage.ErrNotFound, id)
	}
	return nil
}
