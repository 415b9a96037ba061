// Package sortutil provides generic sorting helpers for diagnostics.
//
// These helpers use slices.SortFunc and cmp.Or so that multi-key orderings
// read as a list of keys.
package sortutil

import (
	"cmp"
	"slices"
)

// ByName sorts a slice of elements using a function that extracts the name.
func ByName[S ~[]E, E any](s S, getName func(E) string) {
	slices.SortFunc(s, func(a, b E) int {
		return cmp.Compare(getName(a), getName(b))
	})
}

// ByLineColumnName sorts elements by line, then column, then name. The sort
// is stable so equal keys keep their input order.
func ByLineColumnName[S ~[]E, E any](s S, getLine, getCol func(E) int, getName func(E) string) {
	slices.SortStableFunc(s, func(a, b E) int {
		return cmp.Or(
			cmp.Compare(getLine(a), getLine(b)),
			cmp.Compare(getCol(a), getCol(b)),
			cmp.Compare(getName(a), getName(b)),
		)
	})
}

// ByFileLineColumn sorts elements by file path, then line, then column.
func ByFileLineColumn[S ~[]E, E any](s S, getPath func(E) string, getLine, getCol func(E) int) {
	slices.SortStableFunc(s, func(a, b E) int {
		return cmp.Or(
			cmp.Compare(getPath(a), getPath(b)),
			cmp.Compare(getLine(a), getLine(b)),
			cmp.Compare(getCol(a), getCol(b)),
		)
	})
}

// Desc sorts elements by an integer field in descending order.
func Desc[S ~[]E, E any](s S, getValue func(E) int) {
	slices.SortStableFunc(s, func(a, b E) int {
		return cmp.Compare(getValue(b), getValue(a))
	})
}
