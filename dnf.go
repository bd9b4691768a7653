package gokeyset

import (
	"gorm.io/gorm/clause"
)

type (
	// tConjunct compares an ordering column with the value of the same column
	// in the anchor row: Operator(Column, anchor.Column).
	tConjunct struct {
		Column   clause.Column
		Operator Operator
	}

	tDisjunct []tConjunct

	// tDNF represents the disjunctive normal form (DNF) of a logical expression.
	// Each disjunct is joined by OR, and each disjunct consists of a list of
	// conjuncts which are joined by AND.
	//
	// Thus:
	//
	//	DNF = X1 OR X2 ... OR Xn, where Xi = Ai1 AND Ai2 ... AND Aim.
	//
	// It is used for dialects which cannot compare row values, where
	// (c1, c2) > (v1, v2) has to be spelled as (c1 > v1) OR (c1 = v1 AND c2 > v2).
	tDNF []tDisjunct
)

// expandOrder converts the row comparison "order > anchor" into tDNF.
//
// For order (C1, C2 ... Cn) the result is:
//
//	(C1 > A1) OR (C1 = A1 AND C2 > A2) ... OR (C1 = A1 ... AND Cn > An)
//
// where Ai is the value of Ci in the anchor row.
func expandOrder(order Order) tDNF {
	dnf := make(tDNF, 0, len(order))
	for i := range order {
		disjunct := make(tDisjunct, 0, i+1)
		for _, previous := range order[:i] {
			disjunct = append(disjunct, tConjunct{Column: previous, Operator: operatorEq})
		}
		disjunct = append(disjunct, tConjunct{Column: order[i], Operator: OperatorGT})

		dnf = append(dnf, disjunct)
	}

	return dnf
}

// build writes "Column Operator (SELECT Column FROM ... WHERE ...)".
func (c tConjunct) build(builder clause.Builder, anchor anchorLookup) {
	builder.WriteQuoted(c.Column)
	builder.WriteByte(' ')
	builder.WriteString(string(c.Operator))
	builder.WriteByte(' ')
	anchor.buildScalar(builder, c.Column)
}

// build writes a disjunct (K1, K2, K3) as "(K1 AND K2 AND K3)".
func (d tDisjunct) build(builder clause.Builder, anchor anchorLookup) {
	builder.WriteByte('(')
	for i, conjunct := range d {
		if i > 0 {
			builder.WriteString(" AND ")
		}
		conjunct.build(builder, anchor)
	}
	builder.WriteByte(')')
}

// build writes the DNF as "((K11) OR (K21 AND K22))". An empty DNF is
// written as TRUE.
func (d tDNF) build(builder clause.Builder, anchor anchorLookup) {
	if len(d) == 0 {
		builder.WriteString("TRUE")
		return
	}

	builder.WriteByte('(')
	for i, disjunct := range d {
		if i > 0 {
			builder.WriteString(" OR ")
		}
		disjunct.build(builder, anchor)
	}
	builder.WriteByte(')')
}
