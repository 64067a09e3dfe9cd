// Package samples provides pre-built MiniSharp programs.
//
// The compiler has no parser: external callers supply the AST. These
// programs are the shared fixtures used by the CLI, the benchmarks and
// the end-to-end tests.
package samples

import "github.com/cwbudde/go-minisharp/internal/ast"

// Builder helpers construct freshly-labeled AST fragments. Each call
// allocates new labels, so fragments are never shared between programs.

// IntType returns the surface type int.
func IntType() ast.TypeExpr { return &ast.CustomType{Name: "int"} }

// StringType returns the surface type string.
func StringType() ast.TypeExpr { return &ast.CustomType{Name: "string"} }

// ClassType returns the surface type naming a class.
func ClassType(name string) ast.TypeExpr { return &ast.CustomType{Name: name} }

// IntLit returns an int literal expression.
func IntLit(value int64) ast.Expression {
	return &ast.Literal{Label: ast.FreshLabel(), Kind: ast.LitInt, Int: value}
}

// StringLit returns a string literal expression.
func StringLit(value string) ast.Expression {
	return &ast.Literal{Label: ast.FreshLabel(), Kind: ast.LitString, Str: value}
}

// BoolLit returns a bool literal expression.
func BoolLit(value bool) ast.Expression {
	return &ast.Literal{Label: ast.FreshLabel(), Kind: ast.LitBool, Bool: value}
}

// NullLit returns the null literal expression.
func NullLit() ast.Expression {
	return &ast.Literal{Label: ast.FreshLabel(), Kind: ast.LitNull}
}

// ArrayLit returns an array literal with the given element type.
func ArrayLit(elem ast.TypeExpr, elems ...ast.Expression) ast.Expression {
	return &ast.Literal{Label: ast.FreshLabel(), Kind: ast.LitArray, Elem: elem, Elems: elems}
}

// VarUse returns an identifier expression reading a variable.
func VarUse(name string) ast.Expression {
	return &ast.Identifier{Label: ast.FreshLabel(), Name: name}
}

// This returns a `this` expression.
func This() ast.Expression {
	return &ast.This{Label: ast.FreshLabel()}
}

// New returns an object construction expression.
func New(className string) ast.Expression {
	return &ast.New{Label: ast.FreshLabel(), ClassName: className}
}

// BinaryOp returns a binary operation expression.
func BinaryOp(op ast.BinaryOperator, left, right ast.Expression) ast.Expression {
	return &ast.BinaryOp{Label: ast.FreshLabel(), Op: op, Left: left, Right: right}
}

// SumVars returns x + y for two variable names.
func SumVars(x, y string) ast.Expression {
	return BinaryOp(ast.Add, VarUse(x), VarUse(y))
}

// FieldAccess returns a field read on the target expression.
func FieldAccess(target ast.Expression, field string) ast.Expression {
	return &ast.FieldAccess{Label: ast.FreshLabel(), Target: target, FieldName: field}
}

// Call returns a method call on an arbitrary target expression.
func Call(target ast.Expression, method string, args ...ast.Expression) ast.Expression {
	return &ast.MethodCall{
		Label:      ast.FreshLabel(),
		Target:     target,
		MethodName: method,
		Args:       args,
	}
}

// StaticCall returns a call of a static method on a named class.
func StaticCall(class, method string, args ...ast.Expression) ast.Expression {
	return Call(VarUse(class), method, args...)
}

// Decl returns a variable declaration statement with an optional
// initializer (nil for none).
func Decl(name string, ty ast.TypeExpr, init ast.Expression) ast.Statement {
	return &ast.VarDecl{Label: ast.FreshLabel(), Name: name, Type: ty, Init: init}
}

// DeclInt declares an int variable initialized to a literal.
func DeclInt(name string, value int64) ast.Statement {
	return Decl(name, IntType(), IntLit(value))
}

// DeclIntFromExpr declares an int variable initialized to an expression.
func DeclIntFromExpr(name string, expr ast.Expression) ast.Statement {
	return Decl(name, IntType(), expr)
}

// DeclString declares a string variable initialized to a literal.
func DeclString(name, value string) ast.Statement {
	return Decl(name, StringType(), StringLit(value))
}

// DeclStringFromVar declares a string variable initialized from another
// variable.
func DeclStringFromVar(name, from string) ast.Statement {
	return Decl(name, StringType(), VarUse(from))
}

// Assign returns an assignment statement.
func Assign(name string, expr ast.Expression) ast.Statement {
	return &ast.Assign{Label: ast.FreshLabel(), VarName: name, Expr: expr}
}

// ExprStmt wraps an expression as a statement.
func ExprStmt(expr ast.Expression) ast.Statement {
	return &ast.ExpressionStmt{Expr: expr}
}

// Return returns a return statement carrying expr (nil for a bare
// return).
func Return(expr ast.Expression) ast.Statement {
	return &ast.Return{Label: ast.FreshLabel(), Expr: expr}
}

// ReturnVar returns `return name;`.
func ReturnVar(name string) ast.Statement {
	return Return(VarUse(name))
}

// IfThenElse returns a conditional statement.
func IfThenElse(cond ast.Expression, then, els []ast.Statement) ast.Statement {
	return &ast.IfThenElse{Label: ast.FreshLabel(), Cond: cond, Then: then, Else: els}
}

// WriteLine returns a Console.WriteLine statement printing a variable.
func WriteLine(name string) ast.Statement {
	return ExprStmt(StaticCall("Console", "WriteLine", VarUse(name)))
}

// WriteLineStr returns a Console.WriteLine statement printing a string
// literal.
func WriteLineStr(text string) ast.Statement {
	return ExprStmt(StaticCall("Console", "WriteLine", StringLit(text)))
}

// WriteLineExpr returns a Console.WriteLine statement printing an
// arbitrary expression.
func WriteLineExpr(expr ast.Expression) ast.Statement {
	return ExprStmt(StaticCall("Console", "WriteLine", expr))
}

// Param returns a parameter declaration.
func Param(name string, ty ast.TypeExpr) *ast.VarDecl {
	return &ast.VarDecl{Label: ast.FreshLabel(), Name: name, Type: ty}
}

// Method returns a method declaration.
func Method(name string, isStatic bool, returnType ast.TypeExpr, params []*ast.VarDecl, body []ast.Statement) *ast.MethodDecl {
	return &ast.MethodDecl{
		Label:      ast.FreshLabel(),
		Name:       name,
		Params:     params,
		Body:       body,
		IsStatic:   isStatic,
		ReturnType: returnType,
	}
}

// Field returns a field declaration with an optional initializer.
func Field(name string, ty ast.TypeExpr, init ast.Expression) *ast.FieldDecl {
	return &ast.FieldDecl{Label: ast.FreshLabel(), Name: name, Type: ty, Init: init}
}

// Class returns a class declaration.
func Class(name string, items ...ast.ClassItem) *ast.ClassDecl {
	return &ast.ClassDecl{Label: ast.FreshLabel(), Name: name, Items: items}
}

// Program returns a program from class declarations.
func Program(classes ...*ast.ClassDecl) *ast.Program {
	return &ast.Program{Classes: classes}
}
