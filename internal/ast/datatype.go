package ast

import "strings"

// DataType is the closed set of type-grammar variants. Implementations
// must be comparable by structural Equals, not Go's `==`, because
// Array/Fn/Generic wrap other DataTypes by pointer.
type DataType interface {
	dataTypeNode()
	String() string
	// Equals reports structural equality.
	Equals(other DataType) bool
}

// NumberType is the primitive 64-bit float type.
type NumberType struct{}

func (NumberType) dataTypeNode()  {}
func (NumberType) String() string { return "number" }
func (NumberType) Equals(other DataType) bool {
	_, ok := other.(NumberType)
	return ok
}

// StringType is the primitive string type.
type StringType struct{}

func (StringType) dataTypeNode()  {}
func (StringType) String() string { return "string" }
func (StringType) Equals(other DataType) bool {
	_, ok := other.(StringType)
	return ok
}

// BooleanType is the primitive boolean type.
type BooleanType struct{}

func (BooleanType) dataTypeNode()  {}
func (BooleanType) String() string { return "boolean" }
func (BooleanType) Equals(other DataType) bool {
	_, ok := other.(BooleanType)
	return ok
}

// UnknownType is the inference placeholder; it must not survive past the
// checker for any array whose element type cannot be inferred from context.
type UnknownType struct{}

func (UnknownType) dataTypeNode()  {}
func (UnknownType) String() string { return "unknown" }
func (UnknownType) Equals(other DataType) bool {
	_, ok := other.(UnknownType)
	return ok
}

// ArrayType is an array of Elem.
type ArrayType struct {
	Elem DataType
}

func (ArrayType) dataTypeNode()  {}
func (a ArrayType) String() string { return a.Elem.String() + "[]" }
func (a ArrayType) Equals(other DataType) bool {
	o, ok := other.(ArrayType)
	return ok && a.Elem.Equals(o.Elem)
}

// Param is one parameter of a FunctionType: its data type and whether it is
// the spread (variadic) parameter. A spread parameter may appear only as
// the last parameter, checked in the compiler.
type Param struct {
	Type   DataType
	Spread bool
}

// FunctionType is the type-grammar shape of a function: optional generic
// parameter names (carried syntactically, never checked — generics are a
// spec Non-goal), ordered parameter types, and a return type.
type FunctionType struct {
	Generics []string
	Params   []Param
	Return   DataType
}

// FnType wraps a FunctionType as a DataType.
type FnType struct {
	Fn FunctionType
}

func (FnType) dataTypeNode() {}
func (f FnType) String() string {
	parts := make([]string, len(f.Fn.Params))
	for i, p := range f.Fn.Params {
		prefix := ""
		if p.Spread {
			prefix = "..."
		}
		parts[i] = prefix + p.Type.String()
	}
	ret := "unknown"
	if f.Fn.Return != nil {
		ret = f.Fn.Return.String()
	}
	return "fn(" + strings.Join(parts, ", ") + ") -> " + ret
}

func (f FnType) Equals(other DataType) bool {
	o, ok := other.(FnType)
	if !ok {
		return false
	}
	if len(f.Fn.Params) != len(o.Fn.Params) {
		return false
	}
	for i := range f.Fn.Params {
		if f.Fn.Params[i].Spread != o.Fn.Params[i].Spread {
			return false
		}
		if !f.Fn.Params[i].Type.Equals(o.Fn.Params[i].Type) {
			return false
		}
	}
	if f.Fn.Return == nil || o.Fn.Return == nil {
		return f.Fn.Return == o.Fn.Return
	}
	return f.Fn.Return.Equals(o.Fn.Return)
}

// GenericType is a generic application of a base alias to argument types,
// e.g. `Box<number>`. Generics are parsed and carried syntactically but not
// checked (spec Non-goal); alias resolution resolves its argument types but
// keeps the GenericType itself, with Base neither looked up nor
// instantiated.
type GenericType struct {
	Base string
	Args []DataType
}

func (GenericType) dataTypeNode() {}
func (g GenericType) String() string {
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.String()
	}
	return g.Base + "<" + strings.Join(parts, ", ") + ">"
}

func (g GenericType) Equals(other DataType) bool {
	o, ok := other.(GenericType)
	if !ok || g.Base != o.Base || len(g.Args) != len(o.Args) {
		return false
	}
	for i := range g.Args {
		if !g.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

// ObjectType is the opaque `object` primitive type, used by `declare`
// bindings for external host values. Object/hash literals of this type are a
// spec Non-goal; only the type keyword itself is supported.
type ObjectType struct{}

func (ObjectType) dataTypeNode()  {}
func (ObjectType) String() string { return "object" }
func (ObjectType) Equals(other DataType) bool {
	_, ok := other.(ObjectType)
	return ok
}

// CustomType is a reference to a user-defined type alias, resolved to its
// target type before comparison.
type CustomType struct {
	Name string
}

func (CustomType) dataTypeNode()  {}
func (c CustomType) String() string { return c.Name }
func (c CustomType) Equals(other DataType) bool {
	o, ok := other.(CustomType)
	return ok && c.Name == o.Name
}
