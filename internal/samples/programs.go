package samples

import (
	"fmt"

	"github.com/cwbudde/go-minisharp/internal/ast"
)

// HelloWorld builds the canonical smallest program:
//
//	class Program {
//	    static void Main(string[] args) {
//	        Console.WriteLine("Hello world!");
//	    }
//	}
func HelloWorld() *ast.Program {
	main := Method("Main", true, &ast.VoidType{},
		[]*ast.VarDecl{Param("args", &ast.ArrayType{Elem: StringType()})},
		[]ast.Statement{
			WriteLineStr("Hello world!"),
		})
	return Program(Class("Program", main))
}

// Arithmetic builds a two-method program exercising declarations, a
// static call and int arithmetic:
//
//	class Program {
//	    static void Main() {
//	        int x = 42;
//	        int y = Program.Aux(x);
//	        Console.WriteLine(y);
//	    }
//	    static int Aux(int x) {
//	        int two = 2;
//	        int sum = x + two;
//	        return sum;
//	    }
//	}
//
// Running it prints 44.
func Arithmetic() *ast.Program {
	main := Method("Main", true, &ast.VoidType{}, nil, []ast.Statement{
		DeclInt("x", 42),
		DeclIntFromExpr("y", StaticCall("Program", "Aux", VarUse("x"))),
		WriteLine("y"),
	})
	aux := Method("Aux", true, IntType(),
		[]*ast.VarDecl{Param("x", IntType())},
		[]ast.Statement{
			DeclInt("two", 2),
			DeclIntFromExpr("sum", SumVars("x", "two")),
			ReturnVar("sum"),
		})
	return Program(Class("Program", main, aux))
}

// Factorial builds the recursive factorial program with if/then/else:
//
//	class Program {
//	    static void Main() {
//	        Console.WriteLine(Program.Factorial(0));
//	        Console.WriteLine(Program.Factorial(5));
//	    }
//	    static int Factorial(int x) {
//	        if (0 == x) { return 1; } else { return x * Program.Factorial(x - 1); }
//	    }
//	}
//
// Running it prints 1 and 120.
func Factorial() *ast.Program {
	main := Method("Main", true, &ast.VoidType{}, nil, []ast.Statement{
		WriteLineExpr(StaticCall("Program", "Factorial", IntLit(0))),
		WriteLineExpr(StaticCall("Program", "Factorial", IntLit(5))),
	})
	factorial := Method("Factorial", true, IntType(),
		[]*ast.VarDecl{Param("x", IntType())},
		[]ast.Statement{
			IfThenElse(
				BinaryOp(ast.Eq, IntLit(0), VarUse("x")),
				[]ast.Statement{Return(IntLit(1))},
				[]ast.Statement{Return(BinaryOp(
					ast.Mul,
					VarUse("x"),
					StaticCall("Program", "Factorial", BinaryOp(ast.Sub, VarUse("x"), IntLit(1))),
				))},
			),
		})
	return Program(Class("Program", main, factorial))
}

// Variables combines string copies, chained static calls and the
// factorial into one program, mirroring the original demo script.
func Variables() *ast.Program {
	main := Method("Main", true, &ast.VoidType{}, nil, []ast.Statement{
		WriteLineStr("Part one"),
		WriteLineStr("========"),
		DeclString("msg", "Hello there!"),
		DeclStringFromVar("msgCopy", "msg"),
		WriteLine("msgCopy"),
		DeclInt("x", 42),
		DeclIntFromExpr("y", StaticCall("Program", "Aux", VarUse("x"))),
		DeclIntFromExpr("z", StaticCall("Program", "Aux", VarUse("y"))),
		WriteLine("x"),
		WriteLine("y"),
		WriteLine("z"),
		WriteLineStr("Part two"),
		WriteLineStr("========"),
		WriteLineStr("Factorial of 0"),
		WriteLineExpr(StaticCall("Program", "Factorial", IntLit(0))),
		WriteLineStr("Factorial of 5"),
		WriteLineExpr(StaticCall("Program", "Factorial", IntLit(5))),
	})
	aux := Method("Aux", true, IntType(),
		[]*ast.VarDecl{Param("x", IntType())},
		[]ast.Statement{
			DeclInt("two", 2),
			DeclIntFromExpr("sum", SumVars("x", "two")),
			ReturnVar("sum"),
		})
	factorial := Method("Factorial", true, IntType(),
		[]*ast.VarDecl{Param("x", IntType())},
		[]ast.Statement{
			IfThenElse(
				BinaryOp(ast.Eq, IntLit(0), VarUse("x")),
				[]ast.Statement{Return(IntLit(1))},
				[]ast.Statement{Return(BinaryOp(
					ast.Mul,
					VarUse("x"),
					StaticCall("Program", "Factorial", BinaryOp(ast.Sub, VarUse("x"), IntLit(1))),
				))},
			),
		})
	return Program(Class("Program", main, aux, factorial))
}

// Fields builds a program exercising object construction, instance
// methods, `this` and field printing:
//
//	class Point {
//	    int x;
//	    int y;
//	    int X() { return this.x; }
//	}
//	class Program {
//	    static void Main() {
//	        Point p = new Point();
//	        Console.WriteLine(p);
//	        Console.WriteLine(p.X());
//	    }
//	}
func Fields() *ast.Program {
	point := Class("Point",
		Field("x", IntType(), nil),
		Field("y", IntType(), nil),
		Method("X", false, IntType(), nil, []ast.Statement{
			Return(FieldAccess(This(), "x")),
		}),
	)
	main := Method("Main", true, &ast.VoidType{}, nil, []ast.Statement{
		Decl("p", ClassType("Point"), New("Point")),
		WriteLine("p"),
		WriteLineExpr(Call(VarUse("p"), "X")),
	})
	return Program(point, Class("Program", main))
}

// LargeFnSize is the statement count of the stock LargeFn program.
const LargeFnSize = 100_000

// LargeFn builds a program whose Main declares a chain of n int
// variables, each adding 1 to its predecessor:
//
//	int a0 = 42;
//	int a1 = a0 + 1;
//	...
//
// The rhs of the last statement is the natural target for the
// type-of-expression query.
func LargeFn(n int) *ast.Program {
	statements := make([]ast.Statement, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("a%d", i)
		var expr ast.Expression
		if i == 0 {
			expr = IntLit(42)
		} else {
			prev := fmt.Sprintf("a%d", i-1)
			expr = BinaryOp(ast.Add, VarUse(prev), IntLit(1))
		}
		statements = append(statements, DeclIntFromExpr(name, expr))
	}
	main := Method("Main", true, &ast.VoidType{}, nil, statements)
	return Program(Class("Program", main))
}

// ManyClasses builds a program with 1000 classes C0..C999, each with
// three empty static methods, plus a Program class holding Main.
func ManyClasses() *ast.Program {
	const classCount = 1000
	const methodCount = 3

	classes := make([]*ast.ClassDecl, 0, classCount+1)
	for i := 0; i < classCount; i++ {
		items := make([]ast.ClassItem, 0, methodCount)
		for j := 0; j < methodCount; j++ {
			items = append(items, Method(fmt.Sprintf("Method%d", j), true, &ast.VoidType{}, nil, nil))
		}
		classes = append(classes, Class(fmt.Sprintf("C%d", i), items...))
	}
	classes = append(classes, Class("Program",
		Method("Main", true, &ast.VoidType{}, nil, nil)))
	return Program(classes...)
}

// ByName resolves a sample program by its CLI name.
func ByName(name string) (*ast.Program, bool) {
	switch name {
	case "hello-world":
		return HelloWorld(), true
	case "arithmetic":
		return Arithmetic(), true
	case "factorial":
		return Factorial(), true
	case "variables":
		return Variables(), true
	case "fields":
		return Fields(), true
	case "large-fn":
		return LargeFn(LargeFnSize), true
	case "many-classes":
		return ManyClasses(), true
	}
	return nil, false
}

// Names lists the available sample program names in CLI order.
func Names() []string {
	return []string{
		"hello-world",
		"arithmetic",
		"factorial",
		"variables",
		"fields",
		"large-fn",
		"many-classes",
	}
}
