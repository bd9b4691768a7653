package gokeyset

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

type (
	// Order defines a total ascending order over the result rows. Columns are
	// compared lexicographically, so the last column should be unique.
	Order []clause.Column

	ColumnAlias = string

	// ColumnMapping maps external column aliases to fully qualified column names.
	// Use it when bare column names could cause an "ambiguous column name" error.
	// Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

const _directionASC = "ASC"

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

// OrderBy builds an Order from the given keys. Repeated keys are dropped,
// the first occurrence wins:
//
//	gokeyset.OrderBy(usersSlug, usersID)
func OrderBy(keys ...Orderable) Order {
	columns := lo.Map(keys, func(key Orderable, _ int) clause.Column {
		return key.OrderColumn()
	})

	return lo.Uniq(columns)
}

// Columns returns the ordering columns.
func (o Order) Columns() []clause.Column {
	return o
}

// build writes "c1, c2, ... cn".
func (o Order) build(builder clause.Builder) {
	for i, column := range o {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteQuoted(column)
	}
}

// buildRow writes the order as a row value "(c1, c2)". A single column is
// written without the row constructor.
func (o Order) buildRow(builder clause.Builder) {
	if len(o) == 1 {
		o.build(builder)
		return
	}

	builder.WriteByte('(')
	o.build(builder)
	builder.WriteByte(')')
}

func (o Order) validate() error {
	if len(o) == 0 {
		return ErrEmptyOrder
	}

	for _, column := range o {
		if column.Raw {
			if strings.TrimSpace(column.Name) == "" {
				return fmt.Errorf("ordering expression is empty")
			}
			continue
		}

		if column.Name == "" {
			return fmt.Errorf("ordering column name is empty")
		}

		err := validateIdentifier(lo.Ternary(column.Table == "", column.Name, column.Table+"."+column.Name))
		if err != nil {
			return err
		}
	}

	return nil
}

// validateIdentifier guards against SQL injection by restricting allowed
// characters in column and table names.
func validateIdentifier(identifier string) error {
	if !lo.Every(_availableColumnNameSymbols, []rune(identifier)) {
		return fmt.Errorf("column name contains forbidden symbols '%s'", identifier)
	}

	return nil
}

// ParseOrder builds an Order from a list of strings in the format
// "column" or "column asc". Column aliases are resolved via ColumnMapping,
// mapped names may be qualified ("users.id").
// Returns an error if an alias is not found in the mapping or if a
// descending direction is requested.
func ParseOrder(stringsOrderings []string, columnMapping ColumnMapping) (Order, error) {
	ret := make([]Orderable, 0, len(stringsOrderings))
	aliases := lo.Keys(columnMapping)

	for _, stringOrdering := range stringsOrderings {
		cutStringOrdering := strings.Fields(stringOrdering)
		if len(cutStringOrdering) == 0 || len(cutStringOrdering) > 2 {
			return nil, fmt.Errorf("invalid ordering string format '%s'", stringOrdering)
		}

		if len(cutStringOrdering) == 2 && strings.ToUpper(cutStringOrdering[1]) != _directionASC {
			return nil, fmt.Errorf("ordering '%s': %w", stringOrdering, ErrUnsupportedDirection)
		}

		columnAlias := cutStringOrdering[0]
		columnName := columnMapping[columnAlias]
		if columnName == "" {
			return nil, fmt.Errorf("invalid column alias. closest: '%s'", closestAlias(columnAlias, aliases))
		}

		ret = append(ret, ParseColumn[any](columnName))
	}

	order := OrderBy(ret...)
	if err := order.validate(); err != nil {
		return nil, err
	}

	return order, nil
}

func closestAlias(input ColumnAlias, dataSet []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist || (dist == minDist && dataSetAlias < closest) {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
