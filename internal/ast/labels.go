package ast

import "sync/atomic"

// Label is an opaque identity assigned to every AST node.
// Labels are globally unique within a compilation; equality is identity.
type Label uint32

var nextLabel atomic.Uint32

// FreshLabel returns a label that has never been handed out before.
// The counter is process-wide; all labels used within one Program must be
// generated before the Program is preprocessed.
func FreshLabel() Label {
	return Label(nextLabel.Add(1) - 1)
}

// Typed labels witness that a label denotes a node of a particular
// syntactic kind. The witness is asserted by the producer: constructing
// one via the As* methods claims knowledge about the underlying node.

// ClassDeclLabel is the label of a ClassDecl node.
type ClassDeclLabel Label

// MethodDeclLabel is the label of a MethodDecl node.
type MethodDeclLabel Label

// MethodUseLabel is the label of a MethodCall node.
type MethodUseLabel Label

// VarDeclLabel is the label of a VarDecl node.
type VarDeclLabel Label

// VarUseLabel is the label of a node that uses a variable or field
// (an Identifier, an Assign target, or a FieldAccess).
type VarUseLabel Label

// TypeUseLabel is the label of a node that mentions a surface type.
type TypeUseLabel Label

// ExpressionLabel is the label of any Expression node.
type ExpressionLabel Label

// AsClassDecl asserts that l denotes a ClassDecl.
func (l Label) AsClassDecl() ClassDeclLabel { return ClassDeclLabel(l) }

// AsMethodDecl asserts that l denotes a MethodDecl.
func (l Label) AsMethodDecl() MethodDeclLabel { return MethodDeclLabel(l) }

// AsMethodUse asserts that l denotes a MethodCall.
func (l Label) AsMethodUse() MethodUseLabel { return MethodUseLabel(l) }

// AsVarDecl asserts that l denotes a VarDecl.
func (l Label) AsVarDecl() VarDeclLabel { return VarDeclLabel(l) }

// AsVarUse asserts that l denotes a variable use.
func (l Label) AsVarUse() VarUseLabel { return VarUseLabel(l) }

// AsTypeUse asserts that l denotes a type mention.
func (l Label) AsTypeUse() TypeUseLabel { return TypeUseLabel(l) }

// AsExpression asserts that l denotes an Expression.
func (l Label) AsExpression() ExpressionLabel { return ExpressionLabel(l) }

func (l ClassDeclLabel) Label() Label  { return Label(l) }
func (l MethodDeclLabel) Label() Label { return Label(l) }
func (l MethodUseLabel) Label() Label  { return Label(l) }
func (l VarDeclLabel) Label() Label    { return Label(l) }
func (l VarUseLabel) Label() Label     { return Label(l) }
func (l TypeUseLabel) Label() Label    { return Label(l) }
func (l ExpressionLabel) Label() Label { return Label(l) }
