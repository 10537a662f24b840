package query

import (
	"fmt"
	"reflect"
	"strings"
)

type condition struct {
	clause string
	args   []any
}

// SortField is a single column in an ORDER BY clause. Field is the logical
// field name resolved through the ProjectionMap.
type SortField struct {
	Field      string
	Descending bool
}

// Builder assembles SELECT statements with a fluent API and automatic
// PostgreSQL parameter numbering.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	orderBy     []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder for the projection with optional default sort.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		conditions:  make([]condition, 0),
		defaultSort: defaultSort,
	}
}

// ParseSortFields parses a comma-separated sort string into SortFields.
// A "-" prefix marks descending order, e.g. "name,-uploaded_at". Returns
// nil for empty input.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	fields := make([]SortField, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if name, ok := strings.CutPrefix(part, "-"); ok {
			fields = append(fields, SortField{Field: name, Descending: true})
		} else {
			fields = append(fields, SortField{Field: part})
		}
	}

	return fields
}

// Build returns a SELECT query with the current conditions and ordering.
func (b *Builder) Build() (string, []any) {
	where, args := b.buildWhere()
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(),
		b.projection.From(),
		where,
		b.buildOrderBy(),
	)
	return sql, args
}

// BuildCount returns a COUNT(*) query with the current conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.buildWhere()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.From(), where), args
}

// BuildPage returns a paginated SELECT with ordering, limit, and offset.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args := b.buildWhere()
	sql := fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(),
		b.projection.From(),
		where,
		b.buildOrderBy(),
		pageSize,
		(page-1)*pageSize,
	)
	return sql, args
}

// BuildSingle returns a SELECT for a single record by the given field.
func (b *Builder) BuildSingle(field string, value any) (string, []any) {
	sql := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(),
		b.projection.From(),
		b.projection.Column(field),
	)
	return sql, []any{value}
}

// OrderByFields sets the sort order, overriding the default sort. Fields
// without a projection mapping are dropped so user-supplied sort input
// never reaches the ORDER BY clause verbatim.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	mapped := make([]SortField, 0, len(fields))
	for _, field := range fields {
		if b.projection.Mapped(field.Field) {
			mapped = append(mapped, field)
		}
	}
	if len(mapped) > 0 {
		b.orderBy = mapped
	}
	return b
}

// WhereEquals adds an equality condition. No-op for nil values.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("%s = $%%d", b.projection.Column(field)),
		args:   []any{value},
	})
	return b
}

// WhereContains adds a case-insensitive ILIKE condition. No-op for nil or
// empty values.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("%s ILIKE $%%d", b.projection.Column(field)),
		args:   []any{"%" + *value + "%"},
	})
	return b
}

// WhereSearch adds an OR of ILIKE conditions across fields. No-op for nil
// or empty search.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	pattern := "%" + *search + "%"
	for i, field := range fields {
		clauses[i] = fmt.Sprintf("%s ILIKE $%%d", b.projection.Column(field))
		args[i] = pattern
	}

	b.conditions = append(b.conditions, condition{
		clause: "(" + strings.Join(clauses, " OR ") + ")",
		args:   args,
	})
	return b
}

func (b *Builder) buildOrderBy() string {
	fields := b.orderBy
	if len(fields) == 0 {
		fields = b.defaultSort
	}
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = fmt.Sprintf("%s %s", b.projection.Column(f.Field), dir)
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}

func (b *Builder) buildWhere() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(b.conditions))
	args := make([]any, 0)
	param := 1

	for _, cond := range b.conditions {
		clause := cond.clause
		for _, arg := range cond.args {
			clause = strings.Replace(clause, "$%d", fmt.Sprintf("$%d", param), 1)
			args = append(args, arg)
			param++
		}
		clauses = append(clauses, clause)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}

	return false
}
