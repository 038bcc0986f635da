package query

import (
	"fmt"
	"reflect"
	"strings"
)

const placeholder = "$?"

type condition struct {
	clause string
	args   []any
}

// SortField is one ORDER BY term on a logical field.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses "name,-submittedAt" into sort fields. A leading "-"
// sorts descending. Returns nil for empty input.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if after, ok := strings.CutPrefix(part, "-"); ok {
			fields = append(fields, SortField{Field: after, Descending: true})
			continue
		}
		fields = append(fields, SortField{Field: part})
	}
	return fields
}

// Builder accumulates WHERE conditions and ordering for a projection and numbers
// parameters when the statement is built.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	orderBy     []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder with optional default ordering.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// Build returns an unpaginated SELECT.
func (b *Builder) Build() (string, []any) {
	where, args := b.where()
	return fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(), b.projection.From(), where, b.order(),
	), args
}

// BuildCount returns a COUNT(*) over the current conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.where()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.From(), where), args
}

// BuildPage returns a SELECT limited to one page. Pages are 1-indexed.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args := b.where()
	return fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(), b.projection.From(), where, b.order(),
		pageSize, (page-1)*pageSize,
	), args
}

// BuildSingle returns a SELECT for the row whose field equals id.
func (b *Builder) BuildSingle(field string, id any) (string, []any) {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(), b.projection.From(), b.projection.Column(field),
	), []any{id}
}

// OrderByFields overrides the default ordering. Fields that are not projected
// are dropped so request input never reaches the statement text.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.orderBy = b.orderBy[:0]
	for _, f := range fields {
		if b.projection.Has(f.Field) {
			b.orderBy = append(b.orderBy, f)
		}
	}
	return b
}

// WhereEquals adds field = value. No-op for nil values.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.add(b.projection.Column(field)+" = "+placeholder, value)
}

// WhereContains adds a case-insensitive substring match. No-op for nil or empty values.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	return b.add(b.projection.Column(field)+" ILIKE "+placeholder, "%"+*value+"%")
}

// WhereSearch adds a substring match OR-ed across fields. No-op for nil or empty search.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		clauses[i] = b.projection.Column(f) + " ILIKE " + placeholder
		args[i] = "%" + *search + "%"
	}
	return b.add("("+strings.Join(clauses, " OR ")+")", args...)
}

func (b *Builder) add(clause string, args ...any) *Builder {
	b.conditions = append(b.conditions, condition{clause: clause, args: args})
	return b
}

func (b *Builder) order() string {
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
		parts[i] = b.projection.Column(f.Field) + " " + dir
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func (b *Builder) where() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	var args []any
	clauses := make([]string, len(b.conditions))
	for i, c := range b.conditions {
		clause := c.clause
		for _, arg := range c.args {
			args = append(args, arg)
			clause = strings.Replace(clause, placeholder, fmt.Sprintf("$%d", len(args)), 1)
		}
		clauses[i] = clause
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
