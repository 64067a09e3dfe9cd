package analysis

import (
	"testing"

	"github.com/cwbudde/go-minisharp/internal/ast"
	"github.com/cwbudde/go-minisharp/internal/samples"
	"github.com/cwbudde/go-minisharp/internal/types"
)

// exprCollector gathers the label of every expression in a program.
type exprCollector struct {
	labels []ast.Label
}

func (c *exprCollector) VisitClassDecl(decl *ast.ClassDecl)   { ast.WalkClassDecl(c, decl) }
func (c *exprCollector) VisitFieldDecl(decl *ast.FieldDecl)   { ast.WalkFieldDecl(c, decl) }
func (c *exprCollector) VisitMethodDecl(decl *ast.MethodDecl) { ast.WalkMethodDecl(c, decl) }
func (c *exprCollector) VisitStatement(stmt ast.Statement)    { ast.WalkStatement(c, stmt) }
func (c *exprCollector) VisitAssign(assign *ast.Assign)       { ast.WalkAssign(c, assign) }
func (c *exprCollector) VisitReturn(ret *ast.Return)          { ast.WalkReturn(c, ret) }
func (c *exprCollector) VisitVarDecl(decl *ast.VarDecl)       { ast.WalkVarDecl(c, decl) }
func (c *exprCollector) VisitIfThenElse(ite *ast.IfThenElse)  { ast.WalkIfThenElse(c, ite) }

func (c *exprCollector) VisitExpression(expr ast.Expression) {
	c.labels = append(c.labels, expr.NodeLabel())
	ast.WalkExpression(c, expr)
}

func (c *exprCollector) VisitBinaryOp(op *ast.BinaryOp)           { ast.WalkBinaryOp(c, op) }
func (c *exprCollector) VisitFieldAccess(access *ast.FieldAccess) { ast.WalkFieldAccess(c, access) }
func (c *exprCollector) VisitLiteral(lit *ast.Literal)            { ast.WalkLiteral(c, lit) }
func (c *exprCollector) VisitMethodCall(call *ast.MethodCall)     { ast.WalkMethodCall(c, call) }
func (c *exprCollector) VisitNew(n *ast.New)                      {}
func (c *exprCollector) VisitIdentifier(id *ast.Identifier)       {}
func (c *exprCollector) VisitThis(t *ast.This)                    {}

func collectExpressions(p *ast.Program) []ast.Label {
	c := &exprCollector{}
	ast.Walk(c, p)
	return c.labels
}

// resolve maps a type id from one table to a structural description that
// can be compared across tables (the two inference paths intern
// structural types in different orders, so raw ids only line up for
// primitives and the any sentinel).
func resolve(m *types.Map, id types.TypeID) string {
	if id == types.AnyID {
		return "any"
	}
	ty := m.Get(id)
	if ty.Kind == types.KindArray {
		return "array of " + resolve(m, ty.Elem)
	}
	return ty.String()
}

// The on-demand query engine and the traditional type checker must agree
// on the type of every expression in the program.
func TestOnDemandAgreesWithTraditional(t *testing.T) {
	programs := map[string]*ast.Program{
		"hello-world": samples.HelloWorld(),
		"arithmetic":  samples.Arithmetic(),
		"factorial":   samples.Factorial(),
		"variables":   samples.Variables(),
		"fields":      samples.Fields(),
		"large-fn":    samples.LargeFn(500),
	}

	for name, program := range programs {
		t.Run(name, func(t *testing.T) {
			engine, err := NewQueryEngine(program)
			if err != nil {
				t.Fatalf("NewQueryEngine() error: %v", err)
			}
			checked, checkedTypes, err := CheckTypes(program)
			if err != nil {
				t.Fatalf("CheckTypes() error: %v", err)
			}

			for _, label := range collectExpressions(program) {
				onDemand, okOnDemand, err := engine.ExprType(label.AsExpression())
				if err != nil {
					t.Fatalf("ExprType(%d) error: %v", label, err)
				}
				eager, okEager := checked[label]

				if okOnDemand != okEager {
					t.Fatalf("presence disagrees for %d: on-demand %t, traditional %t", label, okOnDemand, okEager)
				}
				if !okOnDemand {
					continue
				}
				got := resolve(engine.Types(), onDemand)
				want := resolve(checkedTypes, eager)
				if got != want {
					t.Errorf("type disagrees for %d: on-demand %s, traditional %s", label, got, want)
				}
			}
		})
	}
}

// Ill-typed programs abort both paths with the same error kind.
func TestBothPathsAgreeOnErrors(t *testing.T) {
	tests := []struct {
		name    string
		program *ast.Program
		kind    ErrorKind
	}{
		{
			"binary op on strings",
			samples.Program(
				samples.Class("Program", samples.Method("Main", true, &ast.VoidType{}, nil, []ast.Statement{
					samples.ExprStmt(samples.BinaryOp(ast.Add, samples.StringLit("a"), samples.StringLit("b"))),
				})),
			),
			ErrTypeMismatch,
		},
		{
			"field access on int",
			samples.Program(
				samples.Class("Program", samples.Method("Main", true, &ast.VoidType{}, nil, []ast.Statement{
					samples.ExprStmt(samples.FieldAccess(samples.IntLit(1), "x")),
				})),
			),
			ErrNonClassFieldTarget,
		},
		{
			"field access on null",
			samples.Program(
				samples.Class("Program", samples.Method("Main", true, &ast.VoidType{}, nil, []ast.Statement{
					samples.ExprStmt(samples.FieldAccess(samples.NullLit(), "x")),
				})),
			),
			ErrNonClassFieldTarget,
		},
		{
			"arity mismatch",
			samples.Program(
				samples.Class("Program",
					samples.Method("Main", true, &ast.VoidType{}, nil, []ast.Statement{
						samples.ExprStmt(samples.StaticCall("Program", "Aux", samples.IntLit(1), samples.IntLit(2))),
					}),
					samples.Method("Aux", true, samples.IntType(),
						[]*ast.VarDecl{samples.Param("x", samples.IntType())},
						[]ast.Statement{samples.ReturnVar("x")}),
				),
			),
			ErrArityMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewQueryEngine(tt.program)
			if err != nil {
				t.Fatalf("NewQueryEngine() error: %v", err)
			}

			var onDemandErr error
			for _, label := range collectExpressions(tt.program) {
				if _, _, err := engine.ExprType(label.AsExpression()); err != nil {
					onDemandErr = err
					break
				}
			}
			_, _, eagerErr := CheckTypes(tt.program)

			if onDemandErr == nil || eagerErr == nil {
				t.Fatalf("expected both paths to fail: on-demand %v, traditional %v", onDemandErr, eagerErr)
			}
			if KindOf(onDemandErr) != tt.kind {
				t.Errorf("on-demand kind = %s, want %s", KindOf(onDemandErr), tt.kind)
			}
			if KindOf(eagerErr) != tt.kind {
				t.Errorf("traditional kind = %s, want %s", KindOf(eagerErr), tt.kind)
			}
		})
	}
}
