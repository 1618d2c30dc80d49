package views

// Stats summarizes the library for the `view ... stats` mode.
type Stats struct {
	TotalBooks    int
	FinishedReads int
	InProgress    int
	PagesRead     int
	AverageRating float64
}

// Stats computes summary figures over the raw rows. PagesRead counts a
// book's page count once per finished read; unfinished sessions contribute
// to InProgress. AverageRating is the mean of the books-view Rating column
// over rated books, rounded to one decimal.
func (e *Engine) Stats() (Stats, error) {
	books, err := e.store.Books()
	if err != nil {
		return Stats{}, err
	}
	sessions, err := e.store.ReadingSessions()
	if err != nil {
		return Stats{}, err
	}

	pages := make(map[int64]int, len(books))
	for _, book := range books {
		if book.Pages != nil {
			pages[book.ID] = *book.Pages
		}
	}

	stats := Stats{TotalBooks: len(books)}
	for _, session := range sessions {
		if session.FinishDate != nil {
			stats.FinishedReads++
			stats.PagesRead += pages[session.BookID]
		} else {
			stats.InProgress++
		}
	}

	booksView, err := e.Books()
	if err != nil {
		return Stats{}, err
	}
	var sum float64
	var rated int
	for _, row := range booksView.Rows {
		if rating, ok := row["Rating"].(float64); ok {
			sum += rating
			rated++
		}
	}
	if rated > 0 {
		stats.AverageRating = round1(sum / float64(rated))
	}
	return stats, nil
}
