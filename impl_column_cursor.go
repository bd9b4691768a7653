package gokeyset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gorm.io/gorm/clause"
)

// ColumnCursor identifies the anchor row by the value of a single column,
// usually the primary key:
//
//	"column" = ?
//
// The anchor row is looked up in the table owning the column, or in the
// relation of the base query when the column has no table.
//
// IMPORTANT:
// The column MUST be unique, otherwise the anchor lookup returns several rows.
type ColumnCursor[T any] struct {
	column Column[T]
	value  T
}

func NewColumnCursor[T any](column Column[T], value T) *ColumnCursor[T] {
	return &ColumnCursor[T]{
		column: column,
		value:  value,
	}
}

type columnCursorToken[T any] struct {
	Column string `json:"c"`
	Value  T      `json:"v"`
}

// DecodeColumnCursor attempts to parse a base64-encoded token produced by
// ColumnCursor.String. The value is decoded as T, and the token must have been
// issued for the same column. An empty token yields nil, i.e. the first page.
func DecodeColumnCursor[T any](column Column[T], b64String string) (*ColumnCursor[T], error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	jsonData, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 encoded cursor: %w", err)
	}

	var token columnCursorToken[T]
	if err = json.Unmarshal(jsonData, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json encoded cursor: %w", err)
	}

	if token.Column != column.Qualified() {
		return nil, fmt.Errorf("column '%s': %w", token.Column, ErrCursorColumnMismatch)
	}

	return &ColumnCursor[T]{
		column: column,
		value:  token.Value,
	}, nil
}

// String - implements fmt.Stringer. Returns an opaque token to hand out to
// API clients.
func (c *ColumnCursor[T]) String() string {
	if c.IsEmpty() {
		return ""
	}

	jTok, err := json.Marshal(columnCursorToken[T]{
		Column: c.column.Qualified(),
		Value:  c.value,
	})
	if err != nil {
		panic(fmt.Errorf("cannot marshal cursor value: %w", err))
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		panic(fmt.Errorf("cannot compact cursor value: %w", err))
	}

	return _encoder.EncodeToString(buf.Bytes())
}

// IsEmpty - implements CursorSpec.
func (c *ColumnCursor[T]) IsEmpty() bool {
	return c == nil
}

// Column returns the column identifying the anchor row.
func (c *ColumnCursor[T]) Column() Column[T] {
	if c == nil {
		return Column[T]{}
	}

	return c.column
}

// Value returns the value of the anchor row in Column.
func (c *ColumnCursor[T]) Value() T {
	var zero T
	if c == nil {
		return zero
	}

	return c.value
}

func (c *ColumnCursor[T]) anchorTable() string {
	return c.column.Table
}

func (c *ColumnCursor[T]) buildPredicate(builder clause.Builder) {
	c.column.Eq(c.value).Build(builder)
}

// validate - implements CursorSpec.
func (c *ColumnCursor[T]) validate() error {
	if c.IsEmpty() {
		return nil
	}

	if err := c.column.validate(); err != nil {
		return fmt.Errorf("invalid cursor column: %w", err)
	}

	return nil
}

var (
	_ CursorSpec   = (*ColumnCursor[int])(nil)
	_ fmt.Stringer = (*ColumnCursor[int])(nil)
)
