// Package types implements the interned semantic type table for MiniSharp.
//
// Types are canonical: interning the same structural type twice yields the
// same TypeID, so type equality is id equality. The table is append-only;
// a TypeID is never reassigned during a compilation.
package types

import (
	"fmt"
	"math"

	"github.com/cwbudde/go-minisharp/internal/ast"
)

// TypeID is a dense index into the interned type table. Primitives occupy
// fixed low ids; AnyID is a sentinel that never appears in the table.
type TypeID uint32

const (
	// IntID is the id of the int type.
	IntID TypeID = iota
	// BoolID is the id of the bool type.
	BoolID
	// StringID is the id of the string type.
	StringID
	// VoidID is the id of the void type.
	VoidID
	// ConsoleID is the id of the builtin Console type.
	ConsoleID

	numPrimitives = iota
)

// AnyID is the top type produced only by null literals. It unifies with
// every type and cannot be materialized as a concrete Type.
const AnyID TypeID = math.MaxUint32

// Kind tags the variant stored in a Type.
type Kind uint8

const (
	KindInt Kind = iota
	KindBool
	KindString
	KindVoid
	KindConsole
	KindArray
	KindClass
)

// Type is a canonical semantic type. Array types reference their element
// type by id; class types reference the declaring ClassDecl by label.
// Type is a comparable value so it can key the intern table.
type Type struct {
	Kind  Kind
	Elem  TypeID
	Class ast.ClassDeclLabel
}

// ArrayOf returns the array type with the given element type.
func ArrayOf(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}

// ClassOf returns the class type for the given declaration label.
func ClassOf(decl ast.ClassDeclLabel) Type {
	return Type{Kind: KindClass, Class: decl}
}

func (t Type) String() string {
	switch t.Kind {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	case KindConsole:
		return "Console"
	case KindArray:
		return fmt.Sprintf("array(%d)", t.Elem)
	case KindClass:
		return fmt.Sprintf("class(%d)", t.Class.Label())
	default:
		return "unknown"
	}
}

// Map is the interned type table: an ordered sequence of canonical types
// plus the reverse mapping from Type to position. It grows monotonically
// during a compilation.
type Map struct {
	types []Type
	ids   map[Type]TypeID
}

// NewMap creates a type table pre-populated with the primitive types at
// their fixed ids, reverse index included.
func NewMap() *Map {
	types := []Type{
		{Kind: KindInt},
		{Kind: KindBool},
		{Kind: KindString},
		{Kind: KindVoid},
		{Kind: KindConsole},
	}
	ids := make(map[Type]TypeID, len(types))
	for id, ty := range types {
		ids[ty] = TypeID(id)
	}
	return &Map{types: types, ids: ids}
}

// Intern returns the id of t, appending it to the table if it is new.
func (m *Map) Intern(t Type) TypeID {
	if id, ok := m.ids[t]; ok {
		return id
	}
	id := TypeID(len(m.types))
	m.types = append(m.types, t)
	m.ids[t] = id
	return id
}

// Get returns the type with the given id. Get panics when id is AnyID:
// the any type is a sentinel and cannot be materialized. An id that was
// never handed out is a programmer error and also panics.
func (m *Map) Get(id TypeID) Type {
	if id == AnyID {
		panic("types: attempted to get the type corresponding to the any type")
	}
	if int(id) >= len(m.types) {
		panic(fmt.Sprintf("types: unknown type id %d", id))
	}
	return m.types[id]
}

// Len returns the number of interned types.
func (m *Map) Len() int {
	return len(m.types)
}

// Unify reports whether two type ids are compatible: they are equal, or
// either side is the any type. No substitution is performed; any is only
// ever produced by null literals.
func (m *Map) Unify(a, b TypeID) bool {
	return a == AnyID || b == AnyID || a == b
}

// UnknownClassError reports a surface type naming a class that is not
// declared in the program.
type UnknownClassError struct {
	Name string
}

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("unresolved class %q in type", e.Name)
}

// FromASTType resolves a surface type to an interned semantic type.
// The builtin names int, bool, string and Console resolve to primitives;
// any other name must match a declared class. Array types recurse on the
// element type.
func (m *Map) FromASTType(t ast.TypeExpr, classes map[string]*ast.ClassDecl) (TypeID, error) {
	switch ty := t.(type) {
	case *ast.ArrayType:
		elem, err := m.FromASTType(ty.Elem, classes)
		if err != nil {
			return 0, err
		}
		return m.Intern(ArrayOf(elem)), nil
	case *ast.CustomType:
		switch ty.Name {
		case "int":
			return IntID, nil
		case "bool":
			return BoolID, nil
		case "string":
			return StringID, nil
		case "Console":
			return ConsoleID, nil
		default:
			decl, ok := classes[ty.Name]
			if !ok {
				return 0, &UnknownClassError{Name: ty.Name}
			}
			return m.Intern(ClassOf(decl.Label.AsClassDecl())), nil
		}
	case *ast.VoidType:
		return VoidID, nil
	default:
		panic(fmt.Sprintf("types: unknown surface type %T", t))
	}
}
