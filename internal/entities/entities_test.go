package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthor_DisplayName(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{
			name:   "full name",
			author: Author{FirstName: "John", MiddleName: "Ronald Reuel", LastName: "Tolkien"},
			want:   "John Ronald Reuel Tolkien",
		},
		{
			name:   "first and last",
			author: Author{FirstName: "Frank", LastName: "Herbert"},
			want:   "Frank Herbert",
		},
		{
			name:   "with suffix",
			author: Author{FirstName: "Martin", LastName: "King", Suffix: "Jr."},
			want:   "Martin King, Jr.",
		},
		{
			name:   "last name only",
			author: Author{LastName: "Homer"},
			want:   "Homer",
		},
		{
			name:   "missing middle leaves single spaces",
			author: Author{FirstName: "Ursula", MiddleName: "K.", LastName: "Le Guin"},
			want:   "Ursula K. Le Guin",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.author.DisplayName())
		})
	}
}

func TestAuthor_NaturalKeyDistinguishesFields(t *testing.T) {
	a := Author{FirstName: "A", LastName: "BC"}
	b := Author{FirstName: "AB", LastName: "C"}
	assert.NotEqual(t, a.NaturalKey(), b.NaturalKey())
}

func TestValidate_Book(t *testing.T) {
	rating := 5
	require.NoError(t, Validate(Book{Title: "Dune", Rating: &rating}))

	assert.Error(t, Validate(Book{Title: ""}))

	bad := 6
	assert.Error(t, Validate(Book{Title: "Dune", Rating: &bad}))

	zero := 0
	assert.Error(t, Validate(Book{Title: "Dune", Rating: &zero}))
}

func TestValidate_ReadingSessionDates(t *testing.T) {
	start := time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC)
	finish := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	err := Validate(ReadingSession{BookID: 1, StartDate: &start, FinishDate: &finish})
	assert.Error(t, err, "finish before start must fail")

	require.NoError(t, Validate(ReadingSession{BookID: 1, StartDate: &finish, FinishDate: &start}))
	require.NoError(t, Validate(ReadingSession{BookID: 1, StartDate: &start}), "open-ended read is valid")
	require.NoError(t, Validate(ReadingSession{BookID: 1, StartDate: &start, FinishDate: &start}), "same-day read is valid")
}

func TestValidate_ReadingSessionRequiresBook(t *testing.T) {
	assert.Error(t, Validate(ReadingSession{}))
}

func TestValidate_IgnoresRelationFields(t *testing.T) {
	// Only scalar fields are validated; the zero-value Book relation must
	// not trip its own required tags.
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, Validate(ReadingSession{BookID: 1, StartDate: &start}))
	assert.NoError(t, Validate(BookAuthor{BookID: 1, AuthorID: 1}))
	assert.NoError(t, Validate(BookSeries{BookID: 1, SeriesID: 1, BookNumber: 1}))
}
