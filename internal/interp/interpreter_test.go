package interp

import (
	"bytes"
	"testing"

	"github.com/cwbudde/go-minisharp/internal/analysis"
	"github.com/cwbudde/go-minisharp/internal/ast"
	"github.com/cwbudde/go-minisharp/internal/lowering"
	"github.com/cwbudde/go-minisharp/internal/samples"
)

// runProgram compiles and executes a program, returning everything it
// printed.
func runProgram(t *testing.T, program *ast.Program) string {
	t.Helper()
	engine, err := analysis.NewQueryEngine(program)
	if err != nil {
		t.Fatalf("NewQueryEngine() error: %v", err)
	}
	output, err := lowering.LowerProgram(program, engine)
	if err != nil {
		t.Fatalf("LowerProgram() error: %v", err)
	}

	var out bytes.Buffer
	in := New(&output.Program, output.Classes, &out)
	if err := in.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return out.String()
}

func TestHelloWorld(t *testing.T) {
	got := runProgram(t, samples.HelloWorld())
	if got != "Hello world!\n" {
		t.Errorf("output = %q, want %q", got, "Hello world!\n")
	}
}

func TestArithmetic(t *testing.T) {
	got := runProgram(t, samples.Arithmetic())
	if got != "44\n" {
		t.Errorf("output = %q, want %q", got, "44\n")
	}
}

func TestFactorial(t *testing.T) {
	got := runProgram(t, samples.Factorial())
	if got != "1\n120\n" {
		t.Errorf("output = %q, want %q", got, "1\n120\n")
	}
}

func TestVariables(t *testing.T) {
	want := "Part one\n" +
		"========\n" +
		"Hello there!\n" +
		"42\n" +
		"44\n" +
		"46\n" +
		"Part two\n" +
		"========\n" +
		"Factorial of 0\n" +
		"1\n" +
		"Factorial of 5\n" +
		"120\n"
	got := runProgram(t, samples.Variables())
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// Objects are born with all fields null, and print their class name and
// fields recursively.
func TestObjectPrinting(t *testing.T) {
	want := "Point {\n" +
		"    x: null,\n" +
		"    y: null,\n" +
		"}\n" +
		"null\n"
	got := runProgram(t, samples.Fields())
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestArrayAndNullPrinting(t *testing.T) {
	program := samples.Program(
		samples.Class("Program",
			samples.Method("Main", true, &ast.VoidType{}, nil, []ast.Statement{
				samples.WriteLineExpr(samples.ArrayLit(samples.IntType(),
					samples.IntLit(1), samples.IntLit(2), samples.IntLit(3))),
				samples.WriteLineExpr(samples.ArrayLit(samples.IntType())),
				samples.WriteLineExpr(samples.NullLit()),
				samples.WriteLineExpr(samples.BoolLit(true)),
			}),
		),
	)
	want := "[1, 2, 3]\n[]\nnull\ntrue\n"
	got := runProgram(t, program)
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestEqProducesBool(t *testing.T) {
	program := samples.Program(
		samples.Class("Program",
			samples.Method("Main", true, &ast.VoidType{}, nil, []ast.Statement{
				samples.IfThenElse(
					samples.BinaryOp(ast.Eq, samples.IntLit(2), samples.IntLit(2)),
					[]ast.Statement{samples.WriteLineStr("equal")},
					[]ast.Statement{samples.WriteLineStr("different")},
				),
				samples.IfThenElse(
					samples.BinaryOp(ast.Eq, samples.IntLit(1), samples.IntLit(2)),
					[]ast.Statement{samples.WriteLineStr("equal")},
					[]ast.Statement{samples.WriteLineStr("different")},
				),
			}),
		),
	)
	want := "equal\ndifferent\n"
	got := runProgram(t, program)
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// Statements following an if/then/else run exactly once regardless of
// the branch taken.
func TestIfFallThrough(t *testing.T) {
	build := func(cond bool) *ast.Program {
		return samples.Program(
			samples.Class("Program",
				samples.Method("Main", true, &ast.VoidType{}, nil, []ast.Statement{
					samples.IfThenElse(
						samples.BinaryOp(ast.Eq, samples.IntLit(1), samples.IntLit(map[bool]int64{true: 1, false: 2}[cond])),
						[]ast.Statement{samples.WriteLineStr("then")},
						[]ast.Statement{samples.WriteLineStr("else")},
					),
					samples.WriteLineStr("after"),
				}),
			),
		)
	}

	if got := runProgram(t, build(true)); got != "then\nafter\n" {
		t.Errorf("true branch output = %q", got)
	}
	if got := runProgram(t, build(false)); got != "else\nafter\n" {
		t.Errorf("false branch output = %q", got)
	}
}

// Local variables keep their values across nested calls.
func TestFrameDiscipline(t *testing.T) {
	// Main declares locals before and after a call that itself uses
	// several locals; the outer values must survive.
	program := samples.Program(
		samples.Class("Program",
			samples.Method("Main", true, &ast.VoidType{}, nil, []ast.Statement{
				samples.DeclInt("a", 10),
				samples.DeclIntFromExpr("b", samples.StaticCall("Program", "Aux", samples.VarUse("a"))),
				samples.WriteLine("a"),
				samples.WriteLine("b"),
			}),
			samples.Method("Aux", true, samples.IntType(),
				[]*ast.VarDecl{samples.Param("x", samples.IntType())},
				[]ast.Statement{
					samples.DeclInt("one", 1),
					samples.DeclInt("two", 2),
					samples.DeclIntFromExpr("sum", samples.SumVars("x", "one")),
					samples.Assign("sum", samples.SumVars("sum", "two")),
					samples.ReturnVar("sum"),
				}),
		),
	)
	want := "10\n13\n"
	got := runProgram(t, program)
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDivisionByZero(t *testing.T) {
	program := samples.Program(
		samples.Class("Program",
			samples.Method("Main", true, &ast.VoidType{}, nil, []ast.Statement{
				samples.WriteLineExpr(samples.BinaryOp(ast.Div, samples.IntLit(1), samples.IntLit(0))),
			}),
		),
	)
	engine, err := analysis.NewQueryEngine(program)
	if err != nil {
		t.Fatalf("NewQueryEngine() error: %v", err)
	}
	output, err := lowering.LowerProgram(program, engine)
	if err != nil {
		t.Fatalf("LowerProgram() error: %v", err)
	}
	in := New(&output.Program, output.Classes, nil)
	if err := in.Run(); err == nil {
		t.Error("Run() succeeded, want division-by-zero error")
	}
}

func TestValueConstructors(t *testing.T) {
	if v := IntValue(7); v.Type != ValueInt {
		t.Errorf("IntValue type = %s", v.Type)
	} else if i, ok := v.AsInt(); !ok || i != 7 {
		t.Errorf("AsInt() = %d, %t", i, ok)
	}
	if v := BoolValue(true); v.Type != ValueBool {
		t.Errorf("BoolValue type = %s", v.Type)
	} else if b, ok := v.AsBool(); !ok || !b {
		t.Errorf("AsBool() = %t, %t", b, ok)
	}
	if v := NullValue(); v.Type != ValueNull || v.Data != nil {
		t.Errorf("NullValue = %#v", v)
	}
	if _, ok := StringValue("s").AsInt(); ok {
		t.Error("AsInt() succeeded on a string value")
	}
}
