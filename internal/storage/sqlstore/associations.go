package sqlstore

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/avolkova/shelves/internal/entities"
)

func (s *Store) BookAuthors() ([]entities.BookAuthor, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	var links []entities.BookAuthor
	if err := db.Order("book_id, author_id").Find(&links).Error; err != nil {
		return nil, translate(err, "book authors")
	}
	return links, nil
}

func (s *Store) BookGenres() ([]entities.BookGenre, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	var links []entities.BookGenre
	if err := db.Order("book_id, genre_id").Find(&links).Error; err != nil {
		return nil, translate(err, "book genres")
	}
	return links, nil
}

func (s *Store) BookSeries() ([]entities.BookSeries, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	var links []entities.BookSeries
	if err := db.Order("book_id, series_id, book_number").Find(&links).Error; err != nil {
		return nil, translate(err, "book series")
	}
	return links, nil
}

// ReplaceBookAuthors swaps the book's author links in one transaction.
func (s *Store) ReplaceBookAuthors(bookID int64, authorIDs []int64) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := s.BookByID(bookID); err != nil {
		return err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", bookID).Delete(&entities.BookAuthor{}).Error; err != nil {
			return err
		}
		for _, authorID := range authorIDs {
			link := entities.BookAuthor{BookID: bookID, AuthorID: authorID}
			if err := tx.Omit("Book", "Author").Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translate(err, fmt.Sprintf("authors for book %d", bookID))
	}
	return nil
}

func (s *Store) ReplaceBookGenres(bookID int64, genreIDs []int64) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := s.BookByID(bookID); err != nil {
		return err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", bookID).Delete(&entities.BookGenre{}).Error; err != nil {
			return err
		}
		for _, genreID := range genreIDs {
			link := entities.BookGenre{BookID: bookID, GenreID: genreID}
			if err := tx.Omit("Book", "Genre").Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translate(err, fmt.Sprintf("genres for book %d", bookID))
	}
	return nil
}

func (s *Store) ReplaceBookSeries(bookID int64, series []entities.BookSeries) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := s.BookByID(bookID); err != nil {
		return err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", bookID).Delete(&entities.BookSeries{}).Error; err != nil {
			return err
		}
		for _, link := range series {
			link.BookID = bookID
			if err := tx.Omit("Book", "Series").Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translate(err, fmt.Sprintf("series for book %d", bookID))
	}
	return nil
}
