// Package analysis implements semantic analysis for MiniSharp programs.
//
// Two complementary modes are provided over the same AST:
//
//   - Preprocess runs a single eager pre-pass that builds the node map,
//     name-resolution tables and entry-point record consumed by every
//     downstream phase.
//   - QueryEngine answers targeted semantic questions on demand, walking
//     only the AST subtrees needed and memoizing intermediate facts.
//   - CheckTypes is the traditional whole-program type checker used to
//     cross-validate the on-demand path; both must agree on every
//     expression's type.
package analysis

import (
	"github.com/cwbudde/go-minisharp/internal/ast"
)

// Preprocessed is the output of the preprocessing pass. The maps borrow
// from the AST and stay valid for the lifetime of the compilation.
type Preprocessed struct {
	// Nodes maps every handled node's label to the node itself.
	// The map is injective: labels are unique.
	Nodes map[ast.Label]ast.Node

	// ClassesByName maps each class name to its declaration.
	ClassesByName map[string]*ast.ClassDecl

	// VarMap maps the label of an Identifier or Assign target to the
	// VarDecl naming it in scope. Identifiers that legally denote class
	// names have no entry.
	VarMap map[ast.Label]*ast.VarDecl

	// ThisMap maps the label of a This node to its enclosing class.
	ThisMap map[ast.Label]*ast.ClassDecl

	// EntryPoint is the unique static Main method.
	EntryPoint *ast.MethodDecl
}

// Preprocess traverses the program once and builds the lookup tables.
// Errors are accumulated over the whole pass; if any were found the pass
// returns an *ErrorList and no tables.
func Preprocess(p *ast.Program) (*Preprocessed, error) {
	v := &preprocessVisitor{
		out: &Preprocessed{
			Nodes:         make(map[ast.Label]ast.Node),
			ClassesByName: make(map[string]*ast.ClassDecl),
			VarMap:        make(map[ast.Label]*ast.VarDecl),
			ThisMap:       make(map[ast.Label]*ast.ClassDecl),
		},
		currentVars: make(map[string]*ast.VarDecl),
	}
	ast.Walk(v, p)

	if v.out.EntryPoint == nil {
		v.errors = append(v.errors, errorf(ErrNoEntryPoint, "no static Main method found"))
	}
	if len(v.errors) > 0 {
		return nil, &ErrorList{Errors: v.errors}
	}
	return v.out, nil
}

// preprocessVisitor tracks the current class and the current method's
// locals while descending, and records the back-edges the tree itself
// cannot express (this → enclosing class, use → declaration).
type preprocessVisitor struct {
	out    *Preprocessed
	errors []*Error

	currentClass *ast.ClassDecl
	currentVars  map[string]*ast.VarDecl
	inMethod     bool
}

func (v *preprocessVisitor) insertNode(n ast.Node) {
	label := n.NodeLabel()
	if _, dup := v.out.Nodes[label]; dup {
		panic("analysis: node labels must be unique")
	}
	v.out.Nodes[label] = n
}

func (v *preprocessVisitor) VisitClassDecl(decl *ast.ClassDecl) {
	v.currentClass = decl

	if _, dup := v.out.ClassesByName[decl.Name]; dup {
		v.errors = append(v.errors, errorf(ErrMultiClassDecl, "class %q declared more than once", decl.Name))
	} else {
		v.out.ClassesByName[decl.Name] = decl
	}

	v.insertNode(decl)
	ast.WalkClassDecl(v, decl)
}

func (v *preprocessVisitor) VisitFieldDecl(decl *ast.FieldDecl) {
	v.insertNode(decl)
	ast.WalkFieldDecl(v, decl)
}

func (v *preprocessVisitor) VisitMethodDecl(decl *ast.MethodDecl) {
	// A fresh locals scope per method. Parameters count as declarations.
	clear(v.currentVars)
	v.inMethod = true

	// Entry points must be static and be called Main. Parameters are
	// accepted and ignored.
	if decl.IsStatic && decl.Name == "Main" {
		if v.out.EntryPoint != nil {
			v.errors = append(v.errors, errorf(ErrMultiEntryPoint, "multiple static Main methods"))
		}
		v.out.EntryPoint = decl
	}

	v.insertNode(decl)
	ast.WalkMethodDecl(v, decl)
	v.inMethod = false
}

func (v *preprocessVisitor) VisitStatement(stmt ast.Statement) {
	ast.WalkStatement(v, stmt)
}

func (v *preprocessVisitor) VisitAssign(assign *ast.Assign) {
	// Assignment targets must resolve; there is no fallback reading.
	if decl, ok := v.currentVars[assign.VarName]; ok {
		v.out.VarMap[assign.Label] = decl
	} else {
		v.errors = append(v.errors, errorf(ErrUnresolvedName, "assignment to undeclared variable %q", assign.VarName))
	}
	ast.WalkAssign(v, assign)
}

func (v *preprocessVisitor) VisitReturn(ret *ast.Return) {
	ast.WalkReturn(v, ret)
}

func (v *preprocessVisitor) VisitVarDecl(decl *ast.VarDecl) {
	if _, dup := v.currentVars[decl.Name]; dup {
		v.errors = append(v.errors, errorf(ErrDoubleVarDecl, "variable %q declared more than once in one scope", decl.Name))
	}
	v.currentVars[decl.Name] = decl

	v.insertNode(decl)
	ast.WalkVarDecl(v, decl)
}

func (v *preprocessVisitor) VisitIfThenElse(ite *ast.IfThenElse) {
	ast.WalkIfThenElse(v, ite)
}

func (v *preprocessVisitor) VisitExpression(expr ast.Expression) {
	ast.WalkExpression(v, expr)
}

func (v *preprocessVisitor) VisitBinaryOp(op *ast.BinaryOp) {
	v.insertNode(op)
	ast.WalkBinaryOp(v, op)
}

func (v *preprocessVisitor) VisitFieldAccess(access *ast.FieldAccess) {
	v.insertNode(access)
	ast.WalkFieldAccess(v, access)
}

func (v *preprocessVisitor) VisitLiteral(lit *ast.Literal) {
	v.insertNode(lit)
	ast.WalkLiteral(v, lit)
}

func (v *preprocessVisitor) VisitMethodCall(call *ast.MethodCall) {
	v.insertNode(call)
	ast.WalkMethodCall(v, call)
}

func (v *preprocessVisitor) VisitNew(n *ast.New) {
	v.insertNode(n)
}

func (v *preprocessVisitor) VisitIdentifier(id *ast.Identifier) {
	// An identifier can refer to a variable or a class name. Only the
	// first case is recorded; the second is resolved on demand.
	if decl, ok := v.currentVars[id.Name]; ok {
		v.out.VarMap[id.Label] = decl
	}
	v.insertNode(id)
}

func (v *preprocessVisitor) VisitThis(t *ast.This) {
	if !v.inMethod {
		// The class scope is not active while field initializers are
		// evaluated.
		v.errors = append(v.errors, errorf(ErrThisOutsideMethod, "`this` used outside a method body"))
	} else {
		v.out.ThisMap[t.Label] = v.currentClass
	}
	v.insertNode(t)
}
