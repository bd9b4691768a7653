package gokeyset

import "errors"

var (
	ErrNilBaseQuery         = errors.New("base query is nil")
	ErrInvalidPageSize      = errors.New("page size must be positive")
	ErrEmptyOrder           = errors.New("empty ordering list")
	ErrUnknownRelation      = errors.New("cannot resolve relation of the base query")
	ErrUnsupportedDirection = errors.New("only ascending ordering is supported")
	ErrCursorColumnMismatch = errors.New("cursor token was issued for another column")
	ErrForeignOrderColumn   = errors.New("ordering column does not belong to the paginated relation")
)
