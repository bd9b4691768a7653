package gokeyset

// Operator is a comparison operator used in expanded keyset conditions.
type Operator string

func (o Operator) Valid() bool {
	return o == OperatorGT || o == operatorEq
}

const (
	// OperatorGT selects rows strictly after the anchor row.
	OperatorGT Operator = ">"

	// operatorEq is the equality operator. It is private because we use it
	// ONLY while expanding row comparisons.
	operatorEq Operator = "="
)
