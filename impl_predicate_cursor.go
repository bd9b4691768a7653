package gokeyset

import (
	"fmt"

	"gorm.io/gorm/clause"
)

// PredicateCursor identifies the anchor row by an arbitrary condition, e.g. a
// composite key. The anchor row is looked up in the relation of the base
// query.
//
// Unlike ColumnCursor, nothing checks that the values match the column
// types: a wrong condition is reported by the database at execution time.
type PredicateCursor struct {
	expression clause.Expression
}

func NewPredicateCursor(expression clause.Expression) *PredicateCursor {
	return &PredicateCursor{
		expression: expression,
	}
}

// AnchorWhere builds a PredicateCursor from a SQL condition with "?"
// placeholders:
//
//	gokeyset.AnchorWhere("tenant_id = ? AND id = ?", tenantID, id)
func AnchorWhere(sql string, vars ...any) *PredicateCursor {
	return NewPredicateCursor(clause.Expr{SQL: sql, Vars: vars})
}

// Expression returns the anchor condition.
func (p *PredicateCursor) Expression() clause.Expression {
	if p == nil {
		return nil
	}

	return p.expression
}

// IsEmpty - implements CursorSpec.
func (p *PredicateCursor) IsEmpty() bool {
	return p == nil || p.expression == nil
}

func (p *PredicateCursor) anchorTable() string {
	return ""
}

func (p *PredicateCursor) buildPredicate(builder clause.Builder) {
	p.expression.Build(builder)
}

// validate - implements CursorSpec.
func (p *PredicateCursor) validate() error {
	if expr, ok := p.expression.(clause.Expr); ok && expr.SQL == "" {
		return fmt.Errorf("anchor condition is empty")
	}

	return nil
}

var _ CursorSpec = (*PredicateCursor)(nil)
