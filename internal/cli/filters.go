package cli

import (
	"fmt"
	"strings"

	"github.com/avolkova/shelves/internal/views"
)

// ParsePredicates turns filter arguments into view predicates. The grammar:
//
//	Column=value     exact match (dates also accept a bare year)
//	Column~value     case-insensitive substring
//	Column>value     greater than (after, for dates)
//	Column<value     less than (before, for dates)
//	Column=lo..hi    inclusive range
//	Column=null      missing value
func ParsePredicates(args []string) ([]views.Predicate, error) {
	var predicates []views.Predicate
	for _, arg := range args {
		predicate, err := parsePredicate(arg)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, predicate)
	}
	return predicates, nil
}

func parsePredicate(arg string) (views.Predicate, error) {
	idx := strings.IndexAny(arg, "=~<>")
	if idx <= 0 || idx == len(arg)-1 {
		return views.Predicate{}, fmt.Errorf("bad filter %q (want Column=value, Column~value, Column<value or Column>value)", arg)
	}
	column := arg[:idx]
	value := arg[idx+1:]

	switch arg[idx] {
	case '~':
		return views.Predicate{Column: column, Op: views.OpContains, Value: value}, nil
	case '>':
		return views.Predicate{Column: column, Op: views.OpGreater, Value: value}, nil
	case '<':
		return views.Predicate{Column: column, Op: views.OpLess, Value: value}, nil
	}

	if value == "null" {
		return views.Predicate{Column: column, Op: views.OpIsNull}, nil
	}
	if lo, hi, ok := strings.Cut(value, ".."); ok {
		return views.Predicate{Column: column, Op: views.OpBetween, Value: lo, Value2: hi}, nil
	}
	return views.Predicate{Column: column, Op: views.OpEquals, Value: value}, nil
}
