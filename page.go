package gokeyset

import (
	"context"

	"github.com/samber/lo"
)

// Page is a generic page container.
type Page[T any] struct {
	// Items page elements, at most page size of them.
	Items []T
	// Last is true when no rows follow the page. Without lookahead a full
	// page is never reported as the last one.
	Last bool
}

// Load executes q and returns at most GetPageSize() rows mapped to T.
func Load[T any](ctx context.Context, q *PaginatedQuery) ([]T, error) {
	var rows []T
	if err := q.Execute(ctx, &rows); err != nil {
		return nil, err
	}

	return TrimResultSet(q, rows), nil
}

// LoadPage executes q and reports whether the page is the last one.
func LoadPage[T any](ctx context.Context, q *PaginatedQuery) (Page[T], error) {
	var rows []T
	if err := q.Execute(ctx, &rows); err != nil {
		return Page[T]{}, err
	}

	return Page[T]{
		Items: TrimResultSet(q, rows),
		Last:  IsLastPage(q, rows),
	}, nil
}

// IsLastPage returns true if the result set is the last page in the dataset.
//
// The last page is determined by one of two conditions:
//  1. The number of returned records is less than the page size.
//  2. Lookahead = true and the number of returned records is less than or
//     equal to the page size.
func IsLastPage[T any](q *PaginatedQuery, resultSet []T) bool {
	return len(resultSet) < q.GetPageSize() ||
		(q.IsLookahead() && len(resultSet) <= q.GetPageSize())
}

// TrimResultSet trims the result set to what should be returned to the client.
//
// If lookahead = true, the extra row is dropped. Suppose page size is 2 and
// resultSet = [a, b, c].
//
//   - With lookahead → resultSet becomes [a, b].
//   - Without lookahead → resultSet remains unchanged.
func TrimResultSet[T any](q *PaginatedQuery, resultSet []T) []T {
	if len(resultSet) > q.GetPageSize() {
		resultSet = resultSet[:q.GetPageSize()]
	}

	return resultSet
}

// NextColumnCursor returns the cursor of the page following resultSet: the
// anchor row is the last row of resultSet. Returns nil for an empty result set.
//
//	next := gokeyset.NextColumnCursor(users, usersID, func(u User) int { return u.ID })
func NextColumnCursor[T any, V any](resultSet []T, column Column[V], getter func(T) V) *ColumnCursor[V] {
	if len(resultSet) == 0 {
		return nil
	}

	return NewColumnCursor(column, getter(lo.LastOrEmpty(resultSet)))
}
