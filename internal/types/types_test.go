package types

import (
	"testing"

	"github.com/cwbudde/go-minisharp/internal/ast"
)

func TestPrimitiveIDs(t *testing.T) {
	m := NewMap()

	tests := []struct {
		name string
		typ  Type
		id   TypeID
	}{
		{"int", Type{Kind: KindInt}, IntID},
		{"bool", Type{Kind: KindBool}, BoolID},
		{"string", Type{Kind: KindString}, StringID},
		{"void", Type{Kind: KindVoid}, VoidID},
		{"Console", Type{Kind: KindConsole}, ConsoleID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Intern(tt.typ); got != tt.id {
				t.Errorf("Intern(%s) = %d, want %d", tt.typ, got, tt.id)
			}
			if got := m.Get(tt.id); got != tt.typ {
				t.Errorf("Get(%d) = %v, want %v", tt.id, got, tt.typ)
			}
		})
	}
}

// Interning must round-trip from construction onward: for every interned
// type, Intern(Get(id)) == id.
func TestInternRoundTrip(t *testing.T) {
	m := NewMap()

	classLabel := ast.FreshLabel().AsClassDecl()
	ids := []TypeID{
		m.Intern(ArrayOf(IntID)),
		m.Intern(ClassOf(classLabel)),
		m.Intern(ArrayOf(StringID)),
	}
	for id := TypeID(0); int(id) < m.Len(); id++ {
		if got := m.Intern(m.Get(id)); got != id {
			t.Errorf("Intern(Get(%d)) = %d, want %d", id, got, id)
		}
	}

	// Interning the same structural type again yields the same id.
	if got := m.Intern(ArrayOf(IntID)); got != ids[0] {
		t.Errorf("re-Intern(array of int) = %d, want %d", got, ids[0])
	}
	if got := m.Intern(ClassOf(classLabel)); got != ids[1] {
		t.Errorf("re-Intern(class) = %d, want %d", got, ids[1])
	}
}

func TestInternAssignsDenseIDs(t *testing.T) {
	m := NewMap()

	first := m.Intern(ArrayOf(IntID))
	second := m.Intern(ArrayOf(BoolID))
	if first != TypeID(numPrimitives) {
		t.Errorf("first interned id = %d, want %d", first, numPrimitives)
	}
	if second != first+1 {
		t.Errorf("second interned id = %d, want %d", second, first+1)
	}
}

func TestUnify(t *testing.T) {
	m := NewMap()
	arrayTy := m.Intern(ArrayOf(IntID))

	all := []TypeID{IntID, BoolID, StringID, VoidID, ConsoleID, arrayTy, AnyID}

	for _, a := range all {
		if !m.Unify(a, a) {
			t.Errorf("Unify(%d, %d) = false, want true", a, a)
		}
		if !m.Unify(AnyID, a) || !m.Unify(a, AnyID) {
			t.Errorf("Unify with any failed for %d", a)
		}
		for _, b := range all {
			if m.Unify(a, b) != m.Unify(b, a) {
				t.Errorf("Unify(%d, %d) is not symmetric", a, b)
			}
		}
	}

	if m.Unify(IntID, BoolID) {
		t.Error("Unify(int, bool) = true, want false")
	}
	if m.Unify(arrayTy, IntID) {
		t.Error("Unify(array, int) = true, want false")
	}
}

func TestGetAnyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Get(AnyID) did not panic")
		}
	}()
	NewMap().Get(AnyID)
}

func TestFromASTType(t *testing.T) {
	m := NewMap()
	point := &ast.ClassDecl{Label: ast.FreshLabel(), Name: "Point"}
	classes := map[string]*ast.ClassDecl{"Point": point}

	tests := []struct {
		name string
		expr ast.TypeExpr
		want TypeID
	}{
		{"int", &ast.CustomType{Name: "int"}, IntID},
		{"bool", &ast.CustomType{Name: "bool"}, BoolID},
		{"string", &ast.CustomType{Name: "string"}, StringID},
		{"Console", &ast.CustomType{Name: "Console"}, ConsoleID},
		{"void", &ast.VoidType{}, VoidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.FromASTType(tt.expr, classes)
			if err != nil {
				t.Fatalf("FromASTType(%s) error: %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("FromASTType(%s) = %d, want %d", tt.expr, got, tt.want)
			}
		})
	}

	t.Run("class", func(t *testing.T) {
		got, err := m.FromASTType(&ast.CustomType{Name: "Point"}, classes)
		if err != nil {
			t.Fatalf("FromASTType(Point) error: %v", err)
		}
		ty := m.Get(got)
		if ty.Kind != KindClass || ty.Class != point.Label.AsClassDecl() {
			t.Errorf("FromASTType(Point) resolved to %v", ty)
		}
	})

	t.Run("nested array", func(t *testing.T) {
		expr := &ast.ArrayType{Elem: &ast.ArrayType{Elem: &ast.CustomType{Name: "int"}}}
		got, err := m.FromASTType(expr, classes)
		if err != nil {
			t.Fatalf("FromASTType(int[][]) error: %v", err)
		}
		outer := m.Get(got)
		if outer.Kind != KindArray {
			t.Fatalf("outer kind = %v, want array", outer.Kind)
		}
		inner := m.Get(outer.Elem)
		if inner.Kind != KindArray || inner.Elem != IntID {
			t.Errorf("inner type = %v, want array of int", inner)
		}
	})

	t.Run("unknown class", func(t *testing.T) {
		_, err := m.FromASTType(&ast.CustomType{Name: "Missing"}, classes)
		if err == nil {
			t.Fatal("FromASTType(Missing) succeeded, want error")
		}
		if _, ok := err.(*UnknownClassError); !ok {
			t.Errorf("error type = %T, want *UnknownClassError", err)
		}
	})
}
