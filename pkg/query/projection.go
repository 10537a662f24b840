// Package query builds SQL queries from projection maps with automatic
// parameter numbering.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view property names to qualified column references
// (alias.column) for a single table.
type ProjectionMap struct {
	schema     string
	table      string
	alias      string
	columns    map[string]string
	columnList []string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:     schema,
		table:      table,
		alias:      alias,
		columns:    make(map[string]string),
		columnList: make([]string, 0),
	}
}

// Project adds a mapping from database column to view property name.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.columns[viewName] = qualified
	p.columnList = append(p.columnList, qualified)
	return p
}

// Column returns the qualified column for a view property name, or the
// input unchanged when not mapped.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

// Mapped reports whether a view property name has a column mapping.
func (p *ProjectionMap) Mapped(viewName string) bool {
	_, ok := p.columns[viewName]
	return ok
}

// Columns returns all mapped columns as a comma-separated string.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columnList, ", ")
}

// From returns the fully qualified table reference with alias.
func (p *ProjectionMap) From() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}
