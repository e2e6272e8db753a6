// Package scope implements the compile-time DeclaredTypes and CustomTypes
// tables: map-plus-parent-link chains consulted by the type checker and
// compiler.
//
// A child scope links to its parent by a shared pointer rather than
// cloning it: lookup costs O(depth), and this is observably equivalent to
// a deep copy because a frame is never mutated after a child scope is
// created from it.
package scope

import "github.com/ky0422/sanetaka/internal/ast"

// Types is a scoped table from identifier to DataType. It backs both the
// DeclaredTypes scope (variable/parameter types) and the CustomTypes scope
// (alias definitions); callers keep one instance of each, never sharing a
// chain between the two namespaces.
type Types struct {
	table  map[string]ast.DataType
	parent *Types
}

// New creates a root-level table with no parent.
func New() *Types {
	return &Types{table: make(map[string]ast.DataType)}
}

// Enclose creates a child table whose lookups fall through to parent on
// miss. The child sees a live view of parent — not a snapshot — but since
// parent is never mutated after Enclose is called at its usual call sites
// (function-body entry, block entry), this is observably a frozen view.
func Enclose(parent *Types) *Types {
	return &Types{table: make(map[string]ast.DataType), parent: parent}
}

// Get walks the parent chain looking for name, returning ok=false if no
// frame in the chain defines it.
func (t *Types) Get(name string) (ast.DataType, bool) {
	if t == nil {
		return nil, false
	}
	if dt, ok := t.table[name]; ok {
		return dt, true
	}
	return t.parent.Get(name)
}

// Set writes name into the current frame only; it never reaches into an
// enclosing frame.
func (t *Types) Set(name string, dt ast.DataType) {
	t.table[name] = dt
}
