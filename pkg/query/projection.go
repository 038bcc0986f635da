// Package query builds parameterized PostgreSQL SELECT statements from a projection
// of logical field names onto table columns.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps logical field names to qualified column references (alias.column).
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns map[string]string
	ordered []string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project maps a table column to a logical field name. Columns are selected in
// the order they are projected.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.columns[field] = qualified
	p.ordered = append(p.ordered, qualified)
	return p
}

// From returns the FROM target (schema.table alias).
func (p *ProjectionMap) From() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column returns the qualified column for a field, or the input if not mapped.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.columns[field]; ok {
		return col
	}
	return field
}

// Has reports whether field is projected.
func (p *ProjectionMap) Has(field string) bool {
	_, ok := p.columns[field]
	return ok
}

// Columns returns the projected columns as a comma-separated list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ordered, ", ")
}
