package gokeyset

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var _schemaCache sync.Map

// relation is the table the anchor row is looked up in.
type relation struct {
	// table is written as a quoted identifier when expr is nil.
	table string
	// expr is the FROM expression of the base query as given to
	// gorm.DB.Table, e.g. "users u".
	expr *clause.Expr
	// alias is the name order columns are qualified with. The wrapped base
	// query is exposed under it.
	alias string
}

func tableRelation(name string) relation {
	return relation{
		table: name,
		alias: name,
	}
}

// baseRelation derives the relation the base query ultimately selects from.
//
// Resolution order:
//  1. the FROM expression set with Table ("users", "users u", "users AS u");
//  2. the table name of the statement;
//  3. the table of the model set with Model.
func baseRelation(db *gorm.DB) (relation, error) {
	stmt := db.Statement
	if stmt == nil {
		return relation{}, ErrUnknownRelation
	}

	switch {
	case stmt.TableExpr != nil:
		return relation{
			expr:  stmt.TableExpr,
			alias: stmt.Table,
		}, nil
	case stmt.Table != "":
		return tableRelation(stmt.Table), nil
	case stmt.Model != nil:
		modelSchema, err := schema.Parse(stmt.Model, &_schemaCache, db.NamingStrategy)
		if err != nil {
			return relation{}, fmt.Errorf("%w: %w", ErrUnknownRelation, err)
		}

		return tableRelation(modelSchema.Table), nil
	default:
		return relation{}, ErrUnknownRelation
	}
}

func (r relation) buildFrom(builder clause.Builder) {
	if r.expr != nil {
		r.expr.Build(builder)
		return
	}

	builder.WriteQuoted(clause.Table{Name: r.table})
}

// anchorLookup renders subqueries reading order keys of the anchor row.
type anchorLookup struct {
	relation relation
	cursor   CursorSpec
}

// buildRow writes "(SELECT c1, c2 FROM relation WHERE predicate)".
func (a anchorLookup) buildRow(builder clause.Builder, order Order) {
	builder.WriteString("(SELECT ")
	order.build(builder)
	a.buildTail(builder)
}

// buildScalar writes "(SELECT c FROM relation WHERE predicate)".
func (a anchorLookup) buildScalar(builder clause.Builder, column clause.Column) {
	builder.WriteString("(SELECT ")
	builder.WriteQuoted(column)
	a.buildTail(builder)
}

func (a anchorLookup) buildTail(builder clause.Builder) {
	builder.WriteString(" FROM ")
	a.relation.buildFrom(builder)
	builder.WriteString(" WHERE ")
	a.cursor.buildPredicate(builder)
	builder.WriteByte(')')
}
