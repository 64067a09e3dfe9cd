// Package ast defines the Abstract Syntax Tree node types for MiniSharp.
//
// The AST is supplied pre-built (there is no parser in this module) and is
// never mutated once analysis starts. Every node carries a Label that
// identifies it throughout preprocessing, querying and lowering.
//
// Node categories:
//   - Expressions: values that can be evaluated (literals, identifiers,
//     binary ops, field accesses, method calls, object construction, this)
//   - Statements: actions to be executed (assignments, declarations,
//     returns, if/then/else)
//   - Declarations: classes and their fields and methods
package ast

import "bytes"

// Node is the base interface for all AST nodes.
type Node interface {
	// NodeLabel returns the label identifying this node.
	NodeLabel() Label

	// String returns a string representation of the node for debugging
	// and testing.
	String() string
}

// Expression represents any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// ClassItem represents a member of a class body (a field or a method).
type ClassItem interface {
	Node
	classItemNode()
}

// ExprLabelOf returns the typed expression label of e.
func ExprLabelOf(e Expression) ExpressionLabel {
	return e.NodeLabel().AsExpression()
}

// Program is the root node of the AST.
// Its top-level items are class declarations in source order.
type Program struct {
	Classes []*ClassDecl
}

// Methods returns every method declared in the program, walking classes in
// declaration order and class items in declaration order. This ordering is
// observable through the dense method ids assigned during lowering.
func (p *Program) Methods() []*MethodDecl {
	var methods []*MethodDecl
	for _, cd := range p.Classes {
		for _, item := range cd.Items {
			if md, ok := item.(*MethodDecl); ok {
				methods = append(methods, md)
			}
		}
	}
	return methods
}

func (p *Program) String() string {
	var out bytes.Buffer
	p.print(&out)
	return out.String()
}

// ClassDecl represents a class declaration with its fields and methods.
type ClassDecl struct {
	Label Label
	Name  string
	Items []ClassItem
}

func (cd *ClassDecl) NodeLabel() Label { return cd.Label }
func (cd *ClassDecl) String() string {
	var out bytes.Buffer
	cd.print(&out, "")
	return out.String()
}

// Fields returns the class fields in declaration order.
func (cd *ClassDecl) Fields() []*FieldDecl {
	var fields []*FieldDecl
	for _, item := range cd.Items {
		if fd, ok := item.(*FieldDecl); ok {
			fields = append(fields, fd)
		}
	}
	return fields
}

// Methods returns the class methods in declaration order.
func (cd *ClassDecl) Methods() []*MethodDecl {
	var methods []*MethodDecl
	for _, item := range cd.Items {
		if md, ok := item.(*MethodDecl); ok {
			methods = append(methods, md)
		}
	}
	return methods
}

// FindField returns the field with the given name, or nil.
func (cd *ClassDecl) FindField(name string) *FieldDecl {
	for _, fd := range cd.Fields() {
		if fd.Name == name {
			return fd
		}
	}
	return nil
}

// FindMethod returns the method with the given name, or nil.
// Static and instance methods share one namespace.
func (cd *ClassDecl) FindMethod(name string) *MethodDecl {
	for _, md := range cd.Methods() {
		if md.Name == name {
			return md
		}
	}
	return nil
}

// FieldDecl represents a field declaration inside a class body.
// The initializer is optional.
type FieldDecl struct {
	Label Label
	Name  string
	Type  TypeExpr
	Init  Expression
}

func (fd *FieldDecl) classItemNode()   {}
func (fd *FieldDecl) NodeLabel() Label { return fd.Label }
func (fd *FieldDecl) String() string {
	var out bytes.Buffer
	out.WriteString(fd.Type.String())
	out.WriteString(" ")
	out.WriteString(fd.Name)
	if fd.Init != nil {
		out.WriteString(" = ")
		out.WriteString(fd.Init.String())
	}
	out.WriteString(";")
	return out.String()
}

// MethodDecl represents a method declaration.
// Parameters are recorded as VarDecls in declaration order.
type MethodDecl struct {
	Label      Label
	Name       string
	Params     []*VarDecl
	Body       []Statement
	IsStatic   bool
	ReturnType TypeExpr
}

func (md *MethodDecl) classItemNode()   {}
func (md *MethodDecl) NodeLabel() Label { return md.Label }
func (md *MethodDecl) String() string {
	var out bytes.Buffer
	md.printSignature(&out)
	return out.String()
}

func (md *MethodDecl) printSignature(out *bytes.Buffer) {
	if md.IsStatic {
		out.WriteString("static ")
	}
	out.WriteString(md.ReturnType.String())
	out.WriteString(" ")
	out.WriteString(md.Name)
	out.WriteString("(")
	for i, p := range md.Params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.Type.String())
		out.WriteString(" ")
		out.WriteString(p.Name)
	}
	out.WriteString(")")
}
