package gokeyset

import (
	"encoding/base64"

	"gorm.io/gorm/clause"
)

var _encoder = base64.RawURLEncoding

// CursorSpec identifies the anchor row: the row the next page starts after.
//
// Implemented by ColumnCursor and PredicateCursor only. A nil or empty
// CursorSpec requests the first page.
type CursorSpec interface {
	IsEmpty() bool
	// anchorTable returns the table the anchor row must be looked up in, or
	// an empty string to use the relation of the base query.
	anchorTable() string
	// buildPredicate writes the condition selecting the anchor row.
	buildPredicate(builder clause.Builder)
	validate() error
}

func isEmptyCursor(cursor CursorSpec) bool {
	return cursor == nil || cursor.IsEmpty()
}
