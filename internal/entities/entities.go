package entities

import (
	"strings"
	"time"
)

// Book is the primary catalog entry. Pages and Rating are optional; a nil
// Rating means the book has never been rated by the reader directly.
type Book struct {
	ID     int64  `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"index;size:512" json:"title" validate:"required"`
	Pages  *int   `json:"pages,omitempty"`
	Rating *int   `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

func (Book) TableName() string { return "books" }

// Author name components are individually optional, but the full tuple is
// the natural key: no two authors may share all four fields.
type Author struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	FirstName  string `gorm:"uniqueIndex:idx_author_name;size:100" json:"first_name"`
	MiddleName string `gorm:"uniqueIndex:idx_author_name;size:100" json:"middle_name"`
	LastName   string `gorm:"uniqueIndex:idx_author_name;size:100" json:"last_name"`
	Suffix     string `gorm:"uniqueIndex:idx_author_name;size:20" json:"suffix"`
}

func (Author) TableName() string { return "authors" }

// DisplayName formats the author as "First Middle Last, Suffix", omitting
// any missing component together with its separator.
func (a Author) DisplayName() string {
	var b strings.Builder
	for _, part := range []string{a.FirstName, a.MiddleName, a.LastName} {
		if part == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(part)
	}
	if a.Suffix != "" {
		b.WriteString(", " + a.Suffix)
	}
	return b.String()
}

// NaturalKey is the case-sensitive lookup key used by lookup-or-create.
func (a Author) NaturalKey() string {
	return a.FirstName + "\x1f" + a.MiddleName + "\x1f" + a.LastName + "\x1f" + a.Suffix
}

type Genre struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100" json:"name" validate:"required"`
}

func (Genre) TableName() string { return "genres" }

type Series struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100" json:"name" validate:"required"`
}

func (Series) TableName() string { return "series" }

// ReadingSession records one read of a book. FinishDate stays nil while the
// read is in progress; a session only counts towards times-read once it has
// a finish date.
type ReadingSession struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	BookID     int64      `gorm:"index" json:"book_id" validate:"required"`
	Book       Book       `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	FinishDate *time.Time `json:"finish_date,omitempty"`
	Rating     *int       `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

func (ReadingSession) TableName() string { return "reading" }

// BookAuthor links a book to one of its authors. Each pairing is unique and
// is removed when either side is deleted.
type BookAuthor struct {
	BookID   int64  `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	AuthorID int64  `gorm:"primaryKey;autoIncrement:false" json:"author_id"`
	Book     Book   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Author   Author `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (BookAuthor) TableName() string { return "books_authors" }

type BookGenre struct {
	BookID  int64 `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	GenreID int64 `gorm:"primaryKey;autoIncrement:false" json:"genre_id"`
	Book    Book  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Genre   Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (BookGenre) TableName() string { return "books_genres" }

// BookSeries carries the book's position within the series. The full
// (book, series, position) triple is unique.
type BookSeries struct {
	BookID     int64  `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	SeriesID   int64  `gorm:"primaryKey;autoIncrement:false" json:"series_id"`
	BookNumber int    `gorm:"primaryKey;autoIncrement:false" json:"book_number"`
	Book       Book   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Series     Series `gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (BookSeries) TableName() string { return "books_series" }
