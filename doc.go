// Package gokeyset provides keyset (seek) pagination on top of GORM queries.
//
// # Overview
//
// A PaginatedQuery wraps an arbitrary base query and renders it as
//
//	SELECT * FROM (<base query>) AS <relation>
//	WHERE (<order>) > (SELECT <order> FROM <relation> WHERE <anchor predicate>)
//	ORDER BY <order>
//	LIMIT <page size>
//
// so the next page is found by comparing against the order key of an anchor
// row instead of skipping rows with OFFSET. Joins, filters and projections of
// the base query are kept untouched inside the derived table.
//
// # Key concepts
//   - Column: a typed column reference. The type parameter is the Go type of
//     the column values and ties cursor values to it at compile time.
//   - Order: one or more columns defining a total ascending order. Composite
//     orders are compared as row values.
//   - CursorSpec: identifies the anchor row, either by a column value
//     (ColumnCursor) or by an arbitrary predicate (PredicateCursor). A nil
//     cursor requests the first page.
//
// The anchor predicate must match exactly one row of the anchor relation. The
// row does not have to pass the filters of the base query. No match yields an
// empty page. Several matches are handled by the database: PostgreSQL and
// MySQL report a subquery error, SQLite silently uses one of the rows.
package gokeyset
