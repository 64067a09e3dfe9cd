package analysis

import (
	"github.com/cwbudde/go-minisharp/internal/ast"
	"github.com/cwbudde/go-minisharp/internal/types"
)

// CheckTypes is the traditional whole-program analysis: it consumes the
// preprocessor's tables and eagerly computes the type of every expression
// in a single post-order walk. The result maps expression labels to type
// ids; identifiers that denote class names have no entry.
//
// The on-demand ExprType query and this checker must agree on every
// expression's type, or abort with the same error kind.
func CheckTypes(p *ast.Program) (map[ast.Label]types.TypeID, *types.Map, error) {
	pre, err := Preprocess(p)
	if err != nil {
		return nil, nil, err
	}

	v := &typeckVisitor{
		pre:     pre,
		typeMap: types.NewMap(),
		output:  make(map[ast.Label]types.TypeID),
	}
	ast.Walk(v, p)
	if v.err != nil {
		return nil, nil, v.err
	}
	return v.output, v.typeMap, nil
}

type typeckVisitor struct {
	pre     *Preprocessed
	typeMap *types.Map
	output  map[ast.Label]types.TypeID
	err     error
}

func (v *typeckVisitor) fail(err error) {
	if v.err == nil {
		v.err = err
	}
}

func (v *typeckVisitor) fromASTType(t ast.TypeExpr) (types.TypeID, bool) {
	id, err := v.typeMap.FromASTType(t, v.pre.ClassesByName)
	if err != nil {
		v.fail(errorf(ErrUnresolvedClass, "%s", err))
		return 0, false
	}
	return id, true
}

func (v *typeckVisitor) VisitClassDecl(decl *ast.ClassDecl)   { ast.WalkClassDecl(v, decl) }
func (v *typeckVisitor) VisitFieldDecl(decl *ast.FieldDecl)   { ast.WalkFieldDecl(v, decl) }
func (v *typeckVisitor) VisitMethodDecl(decl *ast.MethodDecl) { ast.WalkMethodDecl(v, decl) }
func (v *typeckVisitor) VisitStatement(stmt ast.Statement)    { ast.WalkStatement(v, stmt) }
func (v *typeckVisitor) VisitAssign(assign *ast.Assign)       { ast.WalkAssign(v, assign) }
func (v *typeckVisitor) VisitReturn(ret *ast.Return)          { ast.WalkReturn(v, ret) }
func (v *typeckVisitor) VisitVarDecl(decl *ast.VarDecl)       { ast.WalkVarDecl(v, decl) }
func (v *typeckVisitor) VisitIfThenElse(ite *ast.IfThenElse)  { ast.WalkIfThenElse(v, ite) }

// VisitExpression processes children first: every expression's type is
// derived from types already present in the output table.
func (v *typeckVisitor) VisitExpression(expr ast.Expression) {
	ast.WalkExpression(v, expr)
}

func (v *typeckVisitor) VisitLiteral(lit *ast.Literal) {
	ast.WalkLiteral(v, lit)
	if v.err != nil {
		return
	}

	switch lit.Kind {
	case ast.LitInt:
		v.output[lit.Label] = types.IntID
	case ast.LitString:
		v.output[lit.Label] = types.StringID
	case ast.LitBool:
		v.output[lit.Label] = types.BoolID
	case ast.LitNull:
		v.output[lit.Label] = types.AnyID
	case ast.LitArray:
		if elem, ok := v.fromASTType(lit.Elem); ok {
			v.output[lit.Label] = v.typeMap.Intern(types.ArrayOf(elem))
		}
	}
}

func (v *typeckVisitor) VisitIdentifier(id *ast.Identifier) {
	// Class-name identifiers stay absent from the output table.
	if vd, ok := v.pre.VarMap[id.Label]; ok {
		if ty, resolved := v.fromASTType(vd.Type); resolved {
			v.output[id.Label] = ty
		}
	}
}

func (v *typeckVisitor) VisitThis(t *ast.This) {
	if v.err != nil {
		return
	}
	cd, ok := v.pre.ThisMap[t.Label]
	if !ok {
		v.fail(errorf(ErrThisOutsideMethod, "`this` has no enclosing class"))
		return
	}
	v.output[t.Label] = v.typeMap.Intern(types.ClassOf(cd.Label.AsClassDecl()))
}

func (v *typeckVisitor) VisitNew(n *ast.New) {
	if v.err != nil {
		return
	}
	cd, ok := v.pre.ClassesByName[n.ClassName]
	if !ok {
		v.fail(errorf(ErrUnresolvedClass, "class %q is not declared", n.ClassName))
		return
	}
	v.output[n.Label] = v.typeMap.Intern(types.ClassOf(cd.Label.AsClassDecl()))
}

func (v *typeckVisitor) VisitBinaryOp(op *ast.BinaryOp) {
	ast.WalkBinaryOp(v, op)
	if v.err != nil {
		return
	}

	for _, side := range []ast.Expression{op.Left, op.Right} {
		id, ok := v.output[side.NodeLabel()]
		if !ok || id != types.IntID {
			v.fail(errorf(ErrTypeMismatch, "binary operator %s requires int operands, got %s", op.Op, side))
			return
		}
	}
	if op.Op == ast.Eq {
		v.output[op.Label] = types.BoolID
	} else {
		v.output[op.Label] = types.IntID
	}
}

func (v *typeckVisitor) VisitFieldAccess(access *ast.FieldAccess) {
	ast.WalkFieldAccess(v, access)
	if v.err != nil {
		return
	}

	targetTy, ok := v.output[access.Target.NodeLabel()]
	if !ok {
		v.fail(errorf(ErrNonClassFieldTarget, "field access on a target with no type: %s", access.Target))
		return
	}
	if targetTy == types.AnyID {
		v.fail(errorf(ErrNonClassFieldTarget, "field access on null"))
		return
	}
	ty := v.typeMap.Get(targetTy)
	if ty.Kind != types.KindClass {
		v.fail(errorf(ErrNonClassFieldTarget, "field access on non-class type %s", ty))
		return
	}

	cd := v.pre.Nodes[ty.Class.Label()].(*ast.ClassDecl)
	fd := cd.FindField(access.FieldName)
	if fd == nil {
		v.fail(errorf(ErrUnresolvedName, "class %q has no field %q", cd.Name, access.FieldName))
		return
	}
	if fieldTy, resolved := v.fromASTType(fd.Type); resolved {
		v.output[access.Label] = fieldTy
	}
}

func (v *typeckVisitor) VisitMethodCall(call *ast.MethodCall) {
	ast.WalkMethodCall(v, call)
	if v.err != nil {
		return
	}

	if call.IsConsoleWriteLine() {
		if len(call.Args) != 1 {
			v.fail(errorf(ErrArityMismatch, "Console.WriteLine takes exactly one argument, got %d", len(call.Args)))
			return
		}
		v.output[call.Label] = types.VoidID
		return
	}

	// Resolve the dispatch class: instance call when the target has a
	// type, static call on a class-name identifier otherwise.
	var cd *ast.ClassDecl
	if targetTy, ok := v.output[call.Target.NodeLabel()]; ok {
		if targetTy == types.AnyID {
			v.fail(errorf(ErrTypeMismatch, "method call on null"))
			return
		}
		ty := v.typeMap.Get(targetTy)
		if ty.Kind != types.KindClass {
			v.fail(errorf(ErrTypeMismatch, "method call target is not an object: %s", ty))
			return
		}
		cd = v.pre.Nodes[ty.Class.Label()].(*ast.ClassDecl)
	} else {
		id, isIdent := call.Target.(*ast.Identifier)
		if !isIdent {
			v.fail(errorf(ErrTypeMismatch, "method call target has no type: %s", call.Target))
			return
		}
		decl, found := v.pre.ClassesByName[id.Name]
		if !found {
			v.fail(errorf(ErrUnresolvedClass, "class %q is not declared", id.Name))
			return
		}
		cd = decl
	}

	md := cd.FindMethod(call.MethodName)
	if md == nil {
		v.fail(errorf(ErrUnresolvedName, "class %q has no method %q", cd.Name, call.MethodName))
		return
	}

	if len(md.Params) != len(call.Args) {
		v.fail(errorf(ErrArityMismatch, "method %q takes %d arguments, got %d", call.MethodName, len(md.Params), len(call.Args)))
		return
	}
	for i, arg := range call.Args {
		paramTy, resolved := v.fromASTType(md.Params[i].Type)
		if !resolved {
			return
		}
		argTy, ok := v.output[arg.NodeLabel()]
		if !ok {
			v.fail(errorf(ErrTypeMismatch, "argument %d of %q has no type", i, call.MethodName))
			return
		}
		if !v.typeMap.Unify(argTy, paramTy) {
			v.fail(errorf(ErrTypeMismatch, "argument %d of %q does not match the parameter type", i, call.MethodName))
			return
		}
	}

	if retTy, resolved := v.fromASTType(md.ReturnType); resolved {
		v.output[call.Label] = retTy
	}
}
