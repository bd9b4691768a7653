package gokeyset

import (
	"fmt"
	"strings"

	"gorm.io/gorm/clause"
)

// Column is a reference to a table column whose values have the Go type T.
//
// The type parameter is never stored, it only binds cursor values to the
// column they are compared with:
//
//	var usersID = gokeyset.NewColumn[int]("users", "id")
//
//	gokeyset.NewColumnCursor(usersID, 42)   // ok
//	gokeyset.NewColumnCursor(usersID, "42") // does not compile
type Column[T any] struct {
	// Table owning the column. Empty means the relation of the base query.
	Table string
	// Name of the column.
	Name string
}

func NewColumn[T any](table, name string) Column[T] {
	return Column[T]{Table: table, Name: name}
}

// ParseColumn builds a column from "table.name" or "name".
func ParseColumn[T any](qualified string) Column[T] {
	table, name, ok := strings.Cut(qualified, ".")
	if !ok {
		return Column[T]{Name: table}
	}

	return Column[T]{Table: table, Name: name}
}

// Qualified returns "table.name", or "name" when the table is unknown.
func (c Column[T]) Qualified() string {
	if c.Table == "" {
		return c.Name
	}

	return c.Table + "." + c.Name
}

// OrderColumn - implements Orderable.
func (c Column[T]) OrderColumn() clause.Column {
	return clause.Column{Table: c.Table, Name: c.Name}
}

// Eq returns the "column = value" condition with the value bound as a parameter.
func (c Column[T]) Eq(value T) clause.Expression {
	return clause.Eq{Column: c.OrderColumn(), Value: value}
}

func (c Column[T]) validate() error {
	if c.Name == "" {
		return fmt.Errorf("column name is empty")
	}

	return validateIdentifier(c.Qualified())
}

// Orderable is anything that can be used as a key of an Order.
type Orderable interface {
	OrderColumn() clause.Column
}

// RawExpression is a SQL expression used as an ordering key as-is, e.g.
// "lower(users.email)". It is never quoted nor validated.
type RawExpression string

// Raw marks a SQL expression as an ordering key.
func Raw(expression string) RawExpression {
	return RawExpression(expression)
}

// OrderColumn - implements Orderable.
func (r RawExpression) OrderColumn() clause.Column {
	return clause.Column{Name: string(r), Raw: true}
}

var (
	_ Orderable = Column[int]{}
	_ Orderable = RawExpression("")
)
