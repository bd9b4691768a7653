package gokeyset

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RawPage is intended for API payloads. For proper code generation, inline it:
//
//	type MyFilter struct {
//	    Paging RawPage `json:",inline"`
//	}
type RawPage struct {
	// Limit - maximum number of records to return in the response.
	Limit int `json:"limit"`
	// StartToken - base64-encoded cursor token obtained via ColumnCursor.String().
	// If empty, the first page with Limit records is returned.
	StartToken string `json:"startToken"`
}

// PaginateRaw decodes RawPage into *PaginatedQuery over base, normalizing
// Limit and validating StartToken against column.
func PaginateRaw[T any](raw RawPage, base *gorm.DB, order Order, column Column[T]) (*PaginatedQuery, error) {
	cursor, err := DecodeColumnCursor(column, raw.StartToken)
	if err != nil {
		return nil, err
	}

	return New(base, order, cursor, NormalizePageSize(raw.Limit))
}

// PaginatedQuery is a not yet executed page of a base query: rows strictly
// after the anchor row in ascending order, at most page size of them.
//
// PaginatedQuery is immutable, With* methods return modified copies. It never
// changes the base query, so it is safe for concurrent use as long as the
// base query is.
type PaginatedQuery struct {
	base     *gorm.DB
	order    Order
	cursor   CursorSpec
	pageSize int

	alias       string
	anchorTable string
	expanded    bool
	lookahead   bool
}

// New wraps base into a keyset paginated query. All arguments are required,
// except cursor which may be nil to request the first page. Qualified order
// columns must belong to the relation the base query is exposed as.
//
//	q, err := gokeyset.New(
//		db.Table("users"),
//		gokeyset.OrderBy(usersSlug, usersID),
//		gokeyset.NewColumnCursor(usersID, lastSeenID),
//		20,
//	)
func New(base *gorm.DB, order Order, cursor CursorSpec, pageSize int) (*PaginatedQuery, error) {
	q := &PaginatedQuery{
		base:     base,
		order:    order,
		cursor:   cursor,
		pageSize: pageSize,
	}

	if err := q.validate(); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	// An unresolved relation is reported on render, WithAlias may provide it.
	if rel, err := q.resolveRelation(); err == nil {
		if err = q.checkOrder(rel); err != nil {
			return nil, fmt.Errorf("cannot paginate: %w", err)
		}
	}

	return q, nil
}

func (q *PaginatedQuery) clone() *PaginatedQuery {
	if q == nil {
		return new(PaginatedQuery)
	}

	cp := *q
	return &cp
}

// WithAlias sets the name the wrapped base query is exposed under. By default
// it is the name of the anchor relation, so table qualified order columns
// resolve against the wrapped query.
func (q *PaginatedQuery) WithAlias(alias string) *PaginatedQuery {
	cp := q.clone()
	cp.alias = alias

	return cp
}

// WithAnchorTable sets the table the anchor row is looked up in, overriding
// the one derived from the cursor column or the base query.
func (q *PaginatedQuery) WithAnchorTable(table string) *PaginatedQuery {
	cp := q.clone()
	cp.anchorTable = table

	return cp
}

// WithExpandedComparison replaces the row value comparison with the
// equivalent OR/AND expansion, for databases without row values.
func (q *PaginatedQuery) WithExpandedComparison() *PaginatedQuery {
	cp := q.clone()
	cp.expanded = true

	return cp
}

// WithLookahead fetches one extra row to find out whether the page is the
// last one. Load and LoadPage drop the extra row.
func (q *PaginatedQuery) WithLookahead() *PaginatedQuery {
	cp := q.clone()
	cp.lookahead = true

	return cp
}

// GetPageSize returns the page size as given to New.
func (q *PaginatedQuery) GetPageSize() int {
	if q == nil {
		return 0
	}

	return q.pageSize
}

// GetOrder returns the ordering of the page.
func (q *PaginatedQuery) GetOrder() Order {
	if q == nil {
		return nil
	}

	return q.order
}

// GetCursor returns the cursor as given to New.
func (q *PaginatedQuery) GetCursor() CursorSpec {
	if q == nil {
		return nil
	}

	return q.cursor
}

// IsLookahead returns true if lookahead is enabled.
func (q *PaginatedQuery) IsLookahead() bool {
	return q != nil && q.lookahead
}

// GetDatasetLimit returns the LIMIT sent to the database:
//   - if Lookahead = true → GetPageSize() + 1
//   - if Lookahead = false → GetPageSize()
func (q *PaginatedQuery) GetDatasetLimit() int {
	pageSize := q.GetPageSize()

	return lo.Ternary(q.IsLookahead(), pageSize+1, pageSize)
}

func (q *PaginatedQuery) validate() error {
	if q == nil {
		return fmt.Errorf("paginated query is nil")
	}

	if q.base == nil {
		return ErrNilBaseQuery
	}

	if q.pageSize <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidPageSize, q.pageSize)
	}

	if err := q.order.validate(); err != nil {
		return err
	}

	for _, identifier := range []string{q.alias, q.anchorTable} {
		if err := validateIdentifier(identifier); err != nil {
			return err
		}
	}

	if isEmptyCursor(q.cursor) {
		return nil
	}

	return q.cursor.validate()
}

// resolveRelation picks the relation of the anchor lookup. The wrapped base
// query is aliased with its name unless WithAlias is set.
func (q *PaginatedQuery) resolveRelation() (relation, error) {
	base, baseErr := baseRelation(q.base)

	var (
		rel relation
		err error
	)

	switch {
	case q.anchorTable != "":
		rel = tableRelation(q.anchorTable)
	case !isEmptyCursor(q.cursor) && q.cursor.anchorTable() != "":
		// "users u": a cursor on u.id reads the FROM expression, u is not a table.
		if table := q.cursor.anchorTable(); baseErr == nil && table == base.alias {
			rel = base
		} else {
			rel = tableRelation(table)
		}
	default:
		rel, err = base, baseErr
	}

	if q.alias != "" {
		rel.alias = q.alias
		// The first page never reads the anchor relation, an alias is enough.
		if isEmptyCursor(q.cursor) {
			return rel, nil
		}
	}

	if err != nil {
		return relation{}, err
	}

	if rel.alias == "" {
		return relation{}, fmt.Errorf("%w: cannot derive alias, use WithAlias", ErrUnknownRelation)
	}

	return rel, nil
}

// checkOrder rejects ordering columns qualified with a table other than the
// name the wrapped base query is exposed as.
func (q *PaginatedQuery) checkOrder(rel relation) error {
	for _, column := range q.order {
		if column.Raw || column.Table == "" || column.Table == rel.alias {
			continue
		}

		return fmt.Errorf("%w: '%s.%s' is not in '%s'", ErrForeignOrderColumn, column.Table, column.Name, rel.alias)
	}

	return nil
}

// Build - implements clause.Expression. Writes the paginated statement:
//
//	SELECT * FROM (<base>) AS <alias>
//	WHERE (<order>) > (SELECT <order> FROM <relation> WHERE <anchor predicate>)
//	ORDER BY <order>
//	LIMIT ?
//
// The WHERE clause is omitted for the first page.
func (q *PaginatedQuery) Build(builder clause.Builder) {
	if err := q.validate(); err != nil {
		_ = builder.AddError(fmt.Errorf("cannot paginate: %w", err))
		return
	}

	rel, err := q.resolveRelation()
	if err == nil {
		err = q.checkOrder(rel)
	}
	if err != nil {
		_ = builder.AddError(fmt.Errorf("cannot paginate: %w", err))
		return
	}

	builder.WriteString("SELECT * FROM (")
	builder.AddVar(builder, q.base)
	builder.WriteString(") AS ")
	builder.WriteQuoted(clause.Table{Name: rel.alias})

	if !isEmptyCursor(q.cursor) {
		anchor := anchorLookup{relation: rel, cursor: q.cursor}

		builder.WriteString(" WHERE ")
		if q.expanded {
			expandOrder(q.order).build(builder, anchor)
		} else {
			q.order.buildRow(builder)
			builder.WriteString(" > ")
			anchor.buildRow(builder, q.order)
		}
	}

	builder.WriteString(" ORDER BY ")
	q.order.build(builder)

	builder.WriteString(" LIMIT ")
	builder.AddVar(builder, q.GetDatasetLimit())
}

// render builds the statement on a fresh session of the base connection.
func (q *PaginatedQuery) render(ctx context.Context) (*gorm.DB, error) {
	if err := q.validate(); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	tx := q.base.Session(&gorm.Session{NewDB: true, Context: ctx}).Raw("")
	q.Build(tx.Statement)
	if tx.Error != nil {
		return nil, tx.Error
	}

	return tx, nil
}

// ToSQL returns the statement text with placeholders of the base connection
// dialect and the bind parameters. It has no side effects and returns the
// same result on every call.
func (q *PaginatedQuery) ToSQL() (string, []any, error) {
	tx, err := q.render(context.Background())
	if err != nil {
		return "", nil, err
	}

	return tx.Statement.SQL.String(), tx.Statement.Vars, nil
}

// Explain returns the statement with bind parameters inlined. Use it for
// logging only.
func (q *PaginatedQuery) Explain() (string, error) {
	sql, vars, err := q.ToSQL()
	if err != nil {
		return "", err
	}

	return q.base.Dialector.Explain(sql, vars...), nil
}

// Execute runs the statement and scans the rows into dest, a pointer to a
// slice. Database errors are returned as is.
//
// IMPORTANT:
// With lookahead, dest may receive GetPageSize()+1 rows. Use Load or
// LoadPage to get a trimmed page.
func (q *PaginatedQuery) Execute(ctx context.Context, dest any) error {
	tx, err := q.render(ctx)
	if err != nil {
		return err
	}

	return tx.Scan(dest).Error
}

var _ clause.Expression = (*PaginatedQuery)(nil)
