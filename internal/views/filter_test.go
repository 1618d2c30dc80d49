package views_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkova/shelves/internal/storage"
	"github.com/avolkova/shelves/internal/views"
)

func sampleTable(t *testing.T) views.Table {
	date := func(value string) time.Time {
		d, err := time.Parse("2006-01-02", value)
		require.NoError(t, err)
		return d
	}
	return views.Table{
		Columns: []string{"Title", "Pages", "Rating", "Finish"},
		Rows: []views.Row{
			{"Title": "Dune", "Pages": 412, "Rating": 4.5, "Finish": date("2020-01-10")},
			{"Title": "Dune Messiah", "Pages": 256, "Rating": 3.0, "Finish": date("2021-06-01")},
			{"Title": "Hyperion", "Pages": 482, "Rating": nil, "Finish": nil},
		},
	}
}

func titles(table views.Table) []string {
	var out []string
	for _, row := range table.Rows {
		out = append(out, row["Title"].(string))
	}
	return out
}

func TestApply_ContainsIsCaseInsensitive(t *testing.T) {
	out, err := views.Apply(sampleTable(t), views.Predicate{Column: "Title", Op: views.OpContains, Value: "dune"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Dune Messiah"}, titles(out))
}

func TestApply_NumericComparisons(t *testing.T) {
	table := sampleTable(t)

	out, err := views.Apply(table, views.Predicate{Column: "Pages", Op: views.OpGreater, Value: "412"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hyperion"}, titles(out), "greater is strict")

	out, err = views.Apply(table, views.Predicate{Column: "Pages", Op: views.OpBetween, Value: "256", Value2: "412"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Dune Messiah"}, titles(out), "between includes both bounds")
}

func TestApply_DateComparisons(t *testing.T) {
	table := sampleTable(t)

	out, err := views.Apply(table, views.Predicate{Column: "Finish", Op: views.OpEquals, Value: "2020"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune"}, titles(out), "a bare year matches the whole year")

	out, err = views.Apply(table, views.Predicate{Column: "Finish", Op: views.OpAfter, Value: "2020-01-10"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune Messiah"}, titles(out))

	// On a date column > means after.
	out, err = views.Apply(table, views.Predicate{Column: "Finish", Op: views.OpGreater, Value: "2020-01-10"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune Messiah"}, titles(out))
}

func TestApply_IsNull(t *testing.T) {
	out, err := views.Apply(sampleTable(t), views.Predicate{Column: "Rating", Op: views.OpIsNull})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hyperion"}, titles(out))
}

func TestApply_NullCellsNeverMatchValueOperators(t *testing.T) {
	out, err := views.Apply(sampleTable(t), views.Predicate{Column: "Finish", Op: views.OpBefore, Value: "2030-01-01"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Dune Messiah"}, titles(out))
}

func TestApply_PredicatesCommute(t *testing.T) {
	table := sampleTable(t)
	byPages := views.Predicate{Column: "Pages", Op: views.OpGreater, Value: "200"}
	byTitle := views.Predicate{Column: "Title", Op: views.OpContains, Value: "dune"}

	forward, err := views.Apply(table, byPages, byTitle)
	require.NoError(t, err)
	backward, err := views.Apply(table, byTitle, byPages)
	require.NoError(t, err)
	assert.Equal(t, forward.Rows, backward.Rows)
}

func TestApply_IsIdempotentAndNonMutating(t *testing.T) {
	table := sampleTable(t)
	predicate := views.Predicate{Column: "Title", Op: views.OpContains, Value: "dune"}

	once, err := views.Apply(table, predicate)
	require.NoError(t, err)
	twice, err := views.Apply(once, predicate)
	require.NoError(t, err)
	assert.Equal(t, once.Rows, twice.Rows)
	assert.Len(t, table.Rows, 3, "the input table is left alone")
}

func TestApply_UnknownColumn(t *testing.T) {
	_, err := views.Apply(sampleTable(t), views.Predicate{Column: "Publisher", Op: views.OpEquals, Value: "Ace"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrInvalidFilter)
}

func TestApply_IncompatibleOperator(t *testing.T) {
	_, err := views.Apply(sampleTable(t), views.Predicate{Column: "Title", Op: views.OpBetween, Value: "A", Value2: "Z"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrInvalidFilter)

	_, err = views.Apply(sampleTable(t), views.Predicate{Column: "Pages", Op: views.OpContains, Value: "41"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrInvalidFilter)
}

func TestApply_BadValueForNumericColumn(t *testing.T) {
	_, err := views.Apply(sampleTable(t), views.Predicate{Column: "Pages", Op: views.OpGreater, Value: "many"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrInvalidFilter)
}
