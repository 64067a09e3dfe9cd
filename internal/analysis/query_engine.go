package analysis

import (
	"github.com/cwbudde/go-minisharp/internal/ast"
	"github.com/cwbudde/go-minisharp/internal/types"
)

// QueryEngine answers semantic questions about a program on demand.
// Construction runs the preprocessing pass; individual queries then walk
// only the AST subtrees they need, memoizing expression types and
// field/method resolutions along the way.
//
// Queries are pure with respect to the AST but may grow the memo caches
// and the type table. The engine is not reentrant: memos must not be
// observed while a query is in progress.
type QueryEngine struct {
	pre     *Preprocessed
	typeMap *types.Map

	// Memo caches, keyed by input label. Expression types memoize the
	// "legally absent" outcome too, so class-name identifiers are not
	// re-resolved on every query.
	exprTypes  map[ast.Label]exprTypeResult
	fieldMemo  map[ast.Label]*ast.FieldDecl
	methodMemo map[ast.Label]*ast.MethodDecl
}

type exprTypeResult struct {
	id types.TypeID
	ok bool
}

// NewQueryEngine preprocesses the program and wraps the result together
// with a fresh type table.
func NewQueryEngine(p *ast.Program) (*QueryEngine, error) {
	pre, err := Preprocess(p)
	if err != nil {
		return nil, err
	}
	return &QueryEngine{
		pre:        pre,
		typeMap:    types.NewMap(),
		exprTypes:  make(map[ast.Label]exprTypeResult),
		fieldMemo:  make(map[ast.Label]*ast.FieldDecl),
		methodMemo: make(map[ast.Label]*ast.MethodDecl),
	}, nil
}

// Types exposes the engine's type table. The table is shared with callers
// (lowering interns through it) and grows monotonically.
func (q *QueryEngine) Types() *types.Map {
	return q.typeMap
}

// Node returns the AST node with the given label, or nil.
func (q *QueryEngine) Node(l ast.Label) ast.Node {
	return q.pre.Nodes[l]
}

// EntryPoint returns the program's unique static Main method.
func (q *QueryEngine) EntryPoint() *ast.MethodDecl {
	return q.pre.EntryPoint
}

// ClassDecl resolves a class name to its declaration label.
func (q *QueryEngine) ClassDecl(name string) (ast.ClassDeclLabel, error) {
	decl, ok := q.pre.ClassesByName[name]
	if !ok {
		return 0, errorf(ErrUnresolvedClass, "class %q is not declared", name)
	}
	return decl.Label.AsClassDecl(), nil
}

func (q *QueryEngine) classDeclNode(l ast.ClassDeclLabel) *ast.ClassDecl {
	return q.pre.Nodes[l.Label()].(*ast.ClassDecl)
}

func (q *QueryEngine) methodDeclNode(l ast.MethodDeclLabel) *ast.MethodDecl {
	return q.pre.Nodes[l.Label()].(*ast.MethodDecl)
}

// IsStatic reports whether the method was declared static.
func (q *QueryEngine) IsStatic(m ast.MethodDeclLabel) bool {
	return q.methodDeclNode(m).IsStatic
}

// ReturnType resolves the method's declared return type.
func (q *QueryEngine) ReturnType(m ast.MethodDeclLabel) (types.TypeID, error) {
	return q.fromASTType(q.methodDeclNode(m).ReturnType)
}

// VarType resolves the declared type of a variable.
func (q *QueryEngine) VarType(v ast.VarDeclLabel) (types.TypeID, error) {
	decl := q.pre.Nodes[v.Label()].(*ast.VarDecl)
	return q.fromASTType(decl.Type)
}

// ParamTypes resolves the method's parameter types in declaration order.
func (q *QueryEngine) ParamTypes(m ast.MethodDeclLabel) ([]types.TypeID, error) {
	md := q.methodDeclNode(m)
	ids := make([]types.TypeID, 0, len(md.Params))
	for _, p := range md.Params {
		id, err := q.fromASTType(p.Type)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// VarDecl resolves a label to the declaration of the variable it names.
// The label may denote a VarDecl directly, or an Identifier or Assign
// target, in which case the preprocessor's use map is consulted.
func (q *QueryEngine) VarDecl(l ast.Label) (ast.VarDeclLabel, error) {
	if vd, ok := q.pre.Nodes[l].(*ast.VarDecl); ok {
		return vd.Label.AsVarDecl(), nil
	}
	if vd, ok := q.pre.VarMap[l]; ok {
		return vd.Label.AsVarDecl(), nil
	}
	return 0, errorf(ErrUnresolvedName, "no variable declaration for node %d", l)
}

// Field resolves a field access to the field's declaration: the access
// target's type must be a class, and the class must declare a field with
// the accessed name.
func (q *QueryEngine) Field(use ast.VarUseLabel) (*ast.FieldDecl, error) {
	if fd, ok := q.fieldMemo[use.Label()]; ok {
		return fd, nil
	}

	fa := q.pre.Nodes[use.Label()].(*ast.FieldAccess)
	targetTy, ok, err := q.ExprType(ast.ExprLabelOf(fa.Target))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorf(ErrNonClassFieldTarget, "field access on a target with no type: %s", fa.Target)
	}
	if targetTy == types.AnyID {
		return nil, errorf(ErrNonClassFieldTarget, "field access on null")
	}

	ty := q.typeMap.Get(targetTy)
	if ty.Kind != types.KindClass {
		return nil, errorf(ErrNonClassFieldTarget, "field access on non-class type %s", ty)
	}

	cd := q.classDeclNode(ty.Class)
	fd := cd.FindField(fa.FieldName)
	if fd == nil {
		return nil, errorf(ErrUnresolvedName, "class %q has no field %q", cd.Name, fa.FieldName)
	}
	q.fieldMemo[use.Label()] = fd
	return fd, nil
}

// MethodDecl resolves a method call to the declaration of the invoked
// method. When the target has a type, the call is an instance call on
// that class; otherwise the target must be an identifier naming a class
// and the call is static.
func (q *QueryEngine) MethodDecl(use ast.MethodUseLabel) (*ast.MethodDecl, error) {
	if md, ok := q.methodMemo[use.Label()]; ok {
		return md, nil
	}

	mc := q.pre.Nodes[use.Label()].(*ast.MethodCall)
	cd, err := q.callTargetClass(mc)
	if err != nil {
		return nil, err
	}

	md := cd.FindMethod(mc.MethodName)
	if md == nil {
		return nil, errorf(ErrUnresolvedName, "class %q has no method %q", cd.Name, mc.MethodName)
	}
	q.methodMemo[use.Label()] = md
	return md, nil
}

// callTargetClass resolves the class a call dispatches on, via the static
// versus instance distinction described on MethodDecl.
func (q *QueryEngine) callTargetClass(mc *ast.MethodCall) (*ast.ClassDecl, error) {
	targetTy, ok, err := q.ExprType(ast.ExprLabelOf(mc.Target))
	if err != nil {
		return nil, err
	}
	if ok {
		if targetTy == types.AnyID {
			return nil, errorf(ErrTypeMismatch, "method call on null")
		}
		ty := q.typeMap.Get(targetTy)
		if ty.Kind != types.KindClass {
			return nil, errorf(ErrTypeMismatch, "method call target is not an object: %s", ty)
		}
		return q.classDeclNode(ty.Class), nil
	}

	// The target has no type, so it must be a class-name identifier and
	// the method static.
	id, isIdent := mc.Target.(*ast.Identifier)
	if !isIdent {
		return nil, errorf(ErrTypeMismatch, "method call target has no type: %s", mc.Target)
	}
	cd, found := q.pre.ClassesByName[id.Name]
	if !found {
		return nil, errorf(ErrUnresolvedClass, "class %q is not declared", id.Name)
	}
	return cd, nil
}

// ExprType returns the type of an expression. The second result is false
// when the expression legally has no type, which happens only for
// identifiers denoting class names.
func (q *QueryEngine) ExprType(l ast.ExpressionLabel) (types.TypeID, bool, error) {
	if r, hit := q.exprTypes[l.Label()]; hit {
		return r.id, r.ok, nil
	}

	id, ok, err := q.computeExprType(l)
	if err != nil {
		return 0, false, err
	}
	q.exprTypes[l.Label()] = exprTypeResult{id: id, ok: ok}
	return id, ok, nil
}

func (q *QueryEngine) computeExprType(l ast.ExpressionLabel) (types.TypeID, bool, error) {
	switch e := q.pre.Nodes[l.Label()].(type) {
	case *ast.Literal:
		id, err := q.literalType(e)
		return id, err == nil, err

	case *ast.Identifier:
		vd, ok := q.pre.VarMap[e.Label]
		if !ok {
			// The identifier names a class; it has no type of its own.
			return 0, false, nil
		}
		id, err := q.fromASTType(vd.Type)
		return id, err == nil, err

	case *ast.This:
		cd, ok := q.pre.ThisMap[e.Label]
		if !ok {
			return 0, false, errorf(ErrThisOutsideMethod, "`this` has no enclosing class")
		}
		return q.typeMap.Intern(types.ClassOf(cd.Label.AsClassDecl())), true, nil

	case *ast.New:
		label, err := q.ClassDecl(e.ClassName)
		if err != nil {
			return 0, false, err
		}
		return q.typeMap.Intern(types.ClassOf(label)), true, nil

	case *ast.BinaryOp:
		id, err := q.binaryOpType(e)
		return id, err == nil, err

	case *ast.FieldAccess:
		fd, err := q.Field(e.Label.AsVarUse())
		if err != nil {
			return 0, false, err
		}
		id, err := q.fromASTType(fd.Type)
		return id, err == nil, err

	case *ast.MethodCall:
		id, err := q.methodCallType(e)
		return id, err == nil, err

	default:
		return 0, false, nil
	}
}

func (q *QueryEngine) literalType(l *ast.Literal) (types.TypeID, error) {
	switch l.Kind {
	case ast.LitInt:
		return types.IntID, nil
	case ast.LitString:
		return types.StringID, nil
	case ast.LitBool:
		return types.BoolID, nil
	case ast.LitNull:
		return types.AnyID, nil
	case ast.LitArray:
		elem, err := q.fromASTType(l.Elem)
		if err != nil {
			return 0, err
		}
		return q.typeMap.Intern(types.ArrayOf(elem)), nil
	default:
		return 0, errorf(ErrTypeMismatch, "unknown literal kind %d", l.Kind)
	}
}

// binaryOpType checks that both operands are int. Arithmetic operators
// produce int; Eq produces bool.
func (q *QueryEngine) binaryOpType(op *ast.BinaryOp) (types.TypeID, error) {
	for _, side := range []ast.Expression{op.Left, op.Right} {
		id, ok, err := q.ExprType(ast.ExprLabelOf(side))
		if err != nil {
			return 0, err
		}
		if !ok || id != types.IntID {
			return 0, errorf(ErrTypeMismatch, "binary operator %s requires int operands, got %s", op.Op, side)
		}
	}
	if op.Op == ast.Eq {
		return types.BoolID, nil
	}
	return types.IntID, nil
}

func (q *QueryEngine) methodCallType(mc *ast.MethodCall) (types.TypeID, error) {
	// Console.WriteLine is an intrinsic: one argument of any type, void
	// result.
	if mc.IsConsoleWriteLine() {
		if len(mc.Args) != 1 {
			return 0, errorf(ErrArityMismatch, "Console.WriteLine takes exactly one argument, got %d", len(mc.Args))
		}
		if _, _, err := q.ExprType(ast.ExprLabelOf(mc.Args[0])); err != nil {
			return 0, err
		}
		return types.VoidID, nil
	}

	md, err := q.MethodDecl(mc.Label.AsMethodUse())
	if err != nil {
		return 0, err
	}

	params, err := q.ParamTypes(md.Label.AsMethodDecl())
	if err != nil {
		return 0, err
	}
	if len(params) != len(mc.Args) {
		return 0, errorf(ErrArityMismatch, "method %q takes %d arguments, got %d", mc.MethodName, len(params), len(mc.Args))
	}
	for i, arg := range mc.Args {
		argTy, ok, err := q.ExprType(ast.ExprLabelOf(arg))
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, errorf(ErrTypeMismatch, "argument %d of %q has no type", i, mc.MethodName)
		}
		if !q.typeMap.Unify(argTy, params[i]) {
			return 0, errorf(ErrTypeMismatch, "argument %d of %q does not match the parameter type", i, mc.MethodName)
		}
	}

	return q.ReturnType(md.Label.AsMethodDecl())
}

// fromASTType resolves a surface type against the program's classes,
// mapping resolution failures onto analysis errors.
func (q *QueryEngine) fromASTType(t ast.TypeExpr) (types.TypeID, error) {
	id, err := q.typeMap.FromASTType(t, q.pre.ClassesByName)
	if err != nil {
		return 0, errorf(ErrUnresolvedClass, "%s", err)
	}
	return id, nil
}
