package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avolkova/shelves/internal/storage"
)

// Op is a filter comparison operator. Text columns support Equals and
// Contains, numeric columns Equals/Greater/Less/Between/IsNull, date columns
// Equals (full date or bare year)/Before/After/Between/IsNull. On date
// columns Greater and Less act as After and Before.
type Op string

const (
	OpEquals   Op = "equals"
	OpContains Op = "contains"
	OpBefore   Op = "before"
	OpAfter    Op = "after"
	OpBetween  Op = "between"
	OpGreater  Op = "greater"
	OpLess     Op = "less"
	OpIsNull   Op = "isnull"
)

// Predicate names a view column, an operator and the value(s) to compare
// against. Value2 is only used by Between.
type Predicate struct {
	Column string
	Op     Op
	Value  string
	Value2 string
}

// Apply reduces a view by the given predicates, combined with logical AND.
// Predicates commute: order never changes the surviving row set. The input
// table is not mutated and surviving rows keep their relative order.
func Apply(table Table, predicates ...Predicate) (Table, error) {
	columns := make(map[string]bool, len(table.Columns))
	for _, column := range table.Columns {
		columns[column] = true
	}
	for _, predicate := range predicates {
		if !columns[predicate.Column] {
			return Table{}, fmt.Errorf("%w: unknown column %q", storage.ErrInvalidFilter, predicate.Column)
		}
	}

	out := Table{Columns: table.Columns}
	for _, row := range table.Rows {
		keep := true
		for _, predicate := range predicates {
			match, err := matches(row[predicate.Column], predicate)
			if err != nil {
				return Table{}, err
			}
			if !match {
				keep = false
				break
			}
		}
		if keep {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

func matches(cell any, predicate Predicate) (bool, error) {
	if predicate.Op == OpIsNull {
		return cell == nil, nil
	}
	if cell == nil {
		return false, nil
	}

	switch v := cell.(type) {
	case string:
		return matchString(v, predicate)
	case int:
		return matchNumber(float64(v), predicate)
	case int64:
		return matchNumber(float64(v), predicate)
	case float64:
		return matchNumber(v, predicate)
	case time.Time:
		return matchDate(v, predicate)
	}
	return false, fmt.Errorf("%w: column %q has unsupported type %T",
		storage.ErrInvalidFilter, predicate.Column, cell)
}

func matchString(v string, predicate Predicate) (bool, error) {
	switch predicate.Op {
	case OpEquals:
		return v == predicate.Value, nil
	case OpContains:
		return strings.Contains(strings.ToLower(v), strings.ToLower(predicate.Value)), nil
	}
	return false, incompatible(predicate, "text")
}

func matchNumber(v float64, predicate Predicate) (bool, error) {
	switch predicate.Op {
	case OpEquals, OpGreater, OpLess:
		threshold, err := parseNumber(predicate.Column, predicate.Value)
		if err != nil {
			return false, err
		}
		switch predicate.Op {
		case OpEquals:
			return v == threshold, nil
		case OpGreater:
			return v > threshold, nil
		default:
			return v < threshold, nil
		}
	case OpBetween:
		lower, err := parseNumber(predicate.Column, predicate.Value)
		if err != nil {
			return false, err
		}
		upper, err := parseNumber(predicate.Column, predicate.Value2)
		if err != nil {
			return false, err
		}
		return v >= lower && v <= upper, nil
	}
	return false, incompatible(predicate, "numeric")
}

func matchDate(v time.Time, predicate Predicate) (bool, error) {
	switch predicate.Op {
	case OpEquals:
		// A bare year matches any date within that year.
		if year, err := strconv.Atoi(predicate.Value); err == nil && len(predicate.Value) == 4 {
			return v.Year() == year, nil
		}
		threshold, err := parseDate(predicate.Column, predicate.Value)
		if err != nil {
			return false, err
		}
		return sameDay(v, threshold), nil
	case OpBefore, OpLess:
		threshold, err := parseDate(predicate.Column, predicate.Value)
		if err != nil {
			return false, err
		}
		return v.Before(threshold), nil
	case OpAfter, OpGreater:
		threshold, err := parseDate(predicate.Column, predicate.Value)
		if err != nil {
			return false, err
		}
		return v.After(threshold), nil
	case OpBetween:
		lower, err := parseDate(predicate.Column, predicate.Value)
		if err != nil {
			return false, err
		}
		upper, err := parseDate(predicate.Column, predicate.Value2)
		if err != nil {
			return false, err
		}
		return !v.Before(lower) && !v.After(upper), nil
	}
	return false, incompatible(predicate, "date")
}

func parseNumber(column, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q needs a numeric value, got %q",
			storage.ErrInvalidFilter, column, value)
	}
	return v, nil
}

func parseDate(column, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: column %q needs a date (YYYY-MM-DD), got %q",
			storage.ErrInvalidFilter, column, value)
	}
	return t, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func incompatible(predicate Predicate, kind string) error {
	return fmt.Errorf("%w: operator %q does not apply to %s column %q",
		storage.ErrInvalidFilter, predicate.Op, kind, predicate.Column)
}
