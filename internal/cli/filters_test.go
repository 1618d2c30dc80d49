package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkova/shelves/internal/views"
)

func TestParsePredicates(t *testing.T) {
	cases := []struct {
		arg  string
		want views.Predicate
	}{
		{"Title=Dune", views.Predicate{Column: "Title", Op: views.OpEquals, Value: "Dune"}},
		{"Title~dune", views.Predicate{Column: "Title", Op: views.OpContains, Value: "dune"}},
		{"Pages>400", views.Predicate{Column: "Pages", Op: views.OpGreater, Value: "400"}},
		{"Pages<400", views.Predicate{Column: "Pages", Op: views.OpLess, Value: "400"}},
		{"Pages=200..500", views.Predicate{Column: "Pages", Op: views.OpBetween, Value: "200", Value2: "500"}},
		{"Rating=null", views.Predicate{Column: "Rating", Op: views.OpIsNull}},
		{"Finish=2020", views.Predicate{Column: "Finish", Op: views.OpEquals, Value: "2020"}},
		{"Finish=2020-01-01..2020-12-31", views.Predicate{Column: "Finish", Op: views.OpBetween, Value: "2020-01-01", Value2: "2020-12-31"}},
	}
	for _, tc := range cases {
		t.Run(tc.arg, func(t *testing.T) {
			got, err := ParsePredicates([]string{tc.arg})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0])
		})
	}
}

func TestParsePredicates_BadInput(t *testing.T) {
	for _, arg := range []string{"Title", "=Dune", "Title=", "~dune"} {
		t.Run(arg, func(t *testing.T) {
			_, err := ParsePredicates([]string{arg})
			assert.Error(t, err)
		})
	}
}

func TestParsePredicates_StopsAtFirstBadArg(t *testing.T) {
	_, err := ParsePredicates([]string{"Title=Dune", "nonsense"})
	assert.Error(t, err)
}
