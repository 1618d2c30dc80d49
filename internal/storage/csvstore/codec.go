package csvstore

import (
	"fmt"
	"strconv"
	"time"

	"github.com/avolkova/shelves/internal/entities"
	"github.com/avolkova/shelves/internal/storage"
)

const dateLayout = "2006-01-02"

// Row encoding helpers. Optional values serialize as the empty string.

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(dateLayout)
}

func parseID(field, table string) (int64, error) {
	id, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: bad id %q", storage.ErrStorageIO, table, field)
	}
	return id, nil
}

func parseOptionalInt(field, table string) (*int, error) {
	if field == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(field)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: bad number %q", storage.ErrStorageIO, table, field)
	}
	return &v, nil
}

func parseOptionalDate(field, table string) (*time.Time, error) {
	if field == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, field)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: bad date %q", storage.ErrStorageIO, table, field)
	}
	return &t, nil
}

func decodeBooks(rows [][]string) ([]entities.Book, error) {
	books := make([]entities.Book, 0, len(rows))
	for _, row := range rows {
		id, err := parseID(row[0], "books")
		if err != nil {
			return nil, err
		}
		pages, err := parseOptionalInt(row[2], "books")
		if err != nil {
			return nil, err
		}
		rating, err := parseOptionalInt(row[3], "books")
		if err != nil {
			return nil, err
		}
		books = append(books, entities.Book{ID: id, Title: row[1], Pages: pages, Rating: rating})
	}
	return books, nil
}

func encodeBooks(books []entities.Book) [][]string {
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10), b.Title, formatInt(b.Pages), formatInt(b.Rating),
		})
	}
	return rows
}

func decodeAuthors(rows [][]string) ([]entities.Author, error) {
	authors := make([]entities.Author, 0, len(rows))
	for _, row := range rows {
		id, err := parseID(row[0], "authors")
		if err != nil {
			return nil, err
		}
		authors = append(authors, entities.Author{
			ID: id, FirstName: row[1], MiddleName: row[2], LastName: row[3], Suffix: row[4],
		})
	}
	return authors, nil
}

func encodeAuthors(authors []entities.Author) [][]string {
	rows := make([][]string, 0, len(authors))
	for _, a := range authors {
		rows = append(rows, []string{
			strconv.FormatInt(a.ID, 10), a.FirstName, a.MiddleName, a.LastName, a.Suffix,
		})
	}
	return rows
}

func decodeGenres(rows [][]string) ([]entities.Genre, error) {
	genres := make([]entities.Genre, 0, len(rows))
	for _, row := range rows {
		id, err := parseID(row[0], "genres")
		if err != nil {
			return nil, err
		}
		genres = append(genres, entities.Genre{ID: id, Name: row[1]})
	}
	return genres, nil
}

func encodeGenres(genres []entities.Genre) [][]string {
	rows := make([][]string, 0, len(genres))
	for _, g := range genres {
		rows = append(rows, []string{strconv.FormatInt(g.ID, 10), g.Name})
	}
	return rows
}

func decodeSeries(rows [][]string) ([]entities.Series, error) {
	series := make([]entities.Series, 0, len(rows))
	for _, row := range rows {
		id, err := parseID(row[0], "series")
		if err != nil {
			return nil, err
		}
		series = append(series, entities.Series{ID: id, Name: row[1]})
	}
	return series, nil
}

func encodeSeries(series []entities.Series) [][]string {
	rows := make([][]string, 0, len(series))
	for _, sr := range series {
		rows = append(rows, []string{strconv.FormatInt(sr.ID, 10), sr.Name})
	}
	return rows
}

func decodeSessions(rows [][]string) ([]entities.ReadingSession, error) {
	sessions := make([]entities.ReadingSession, 0, len(rows))
	for _, row := range rows {
		id, err := parseID(row[0], "reading")
		if err != nil {
			return nil, err
		}
		bookID, err := parseID(row[1], "reading")
		if err != nil {
			return nil, err
		}
		start, err := parseOptionalDate(row[2], "reading")
		if err != nil {
			return nil, err
		}
		finish, err := parseOptionalDate(row[3], "reading")
		if err != nil {
			return nil, err
		}
		rating, err := parseOptionalInt(row[4], "reading")
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, entities.ReadingSession{
			ID: id, BookID: bookID, StartDate: start, FinishDate: finish, Rating: rating,
		})
	}
	return sessions, nil
}

func encodeSessions(sessions []entities.ReadingSession) [][]string {
	rows := make([][]string, 0, len(sessions))
	for _, r := range sessions {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10), strconv.FormatInt(r.BookID, 10),
			formatDate(r.StartDate), formatDate(r.FinishDate), formatInt(r.Rating),
		})
	}
	return rows
}

func decodeBookAuthors(rows [][]string) ([]entities.BookAuthor, error) {
	links := make([]entities.BookAuthor, 0, len(rows))
	for _, row := range rows {
		bookID, err := parseID(row[0], "books_authors")
		if err != nil {
			return nil, err
		}
		authorID, err := parseID(row[1], "books_authors")
		if err != nil {
			return nil, err
		}
		links = append(links, entities.BookAuthor{BookID: bookID, AuthorID: authorID})
	}
	return links, nil
}

func encodeBookAuthors(links []entities.BookAuthor) [][]string {
	rows := make([][]string, 0, len(links))
	for _, l := range links {
		rows = append(rows, []string{
			strconv.FormatInt(l.BookID, 10), strconv.FormatInt(l.AuthorID, 10),
		})
	}
	return rows
}

func decodeBookGenres(rows [][]string) ([]entities.BookGenre, error) {
	links := make([]entities.BookGenre, 0, len(rows))
	for _, row := range rows {
		bookID, err := parseID(row[0], "books_genres")
		if err != nil {
			return nil, err
		}
		genreID, err := parseID(row[1], "books_genres")
		if err != nil {
			return nil, err
		}
		links = append(links, entities.BookGenre{BookID: bookID, GenreID: genreID})
	}
	return links, nil
}

func encodeBookGenres(links []entities.BookGenre) [][]string {
	rows := make([][]string, 0, len(links))
	for _, l := range links {
		rows = append(rows, []string{
			strconv.FormatInt(l.BookID, 10), strconv.FormatInt(l.GenreID, 10),
		})
	}
	return rows
}

func decodeBookSeries(rows [][]string) ([]entities.BookSeries, error) {
	links := make([]entities.BookSeries, 0, len(rows))
	for _, row := range rows {
		bookID, err := parseID(row[0], "books_series")
		if err != nil {
			return nil, err
		}
		seriesID, err := parseID(row[1], "books_series")
		if err != nil {
			return nil, err
		}
		number, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("%w: books_series: bad position %q", storage.ErrStorageIO, row[2])
		}
		links = append(links, entities.BookSeries{BookID: bookID, SeriesID: seriesID, BookNumber: number})
	}
	return links, nil
}

func encodeBookSeries(links []entities.BookSeries) [][]string {
	rows := make([][]string, 0, len(links))
	for _, l := range links {
		rows = append(rows, []string{
			strconv.FormatInt(l.BookID, 10), strconv.FormatInt(l.SeriesID, 10),
			strconv.Itoa(l.BookNumber),
		})
	}
	return rows
}
