// Package lowering translates a type-correct AST into the linear IR.
//
// Lowering assigns dense numeric ids to fields, methods and locals
// (classes stay identified by their declaration label), desugars binary operators into intrinsics and if/then/else into
// patched branch/jump pairs, and type-checks assignments, returns and
// call sites through the query engine as it goes. No partial IR is
// produced: the first error aborts.
package lowering

import (
	"github.com/cwbudde/go-minisharp/internal/analysis"
	"github.com/cwbudde/go-minisharp/internal/ast"
	"github.com/cwbudde/go-minisharp/internal/ir"
	"github.com/cwbudde/go-minisharp/internal/types"
)

// Output is the result of lowering: the runnable program plus the
// per-class metadata the interpreter needs for allocation and printing.
type Output struct {
	Program ir.Program
	Classes map[ast.ClassDeclLabel]*ir.ClassInfo
}

// LowerProgram lowers the whole program using the given query engine for
// name resolution and type inference.
func LowerProgram(prog *ast.Program, engine *analysis.QueryEngine) (*Output, error) {
	l := &lowerer{
		ast:     prog,
		engine:  engine,
		methods: make(map[ast.MethodDeclLabel]ir.MethodID),
		fields:  make(map[ast.Label]ir.FieldID),
		classes: make(map[ast.ClassDeclLabel]*ir.ClassInfo),
		vars:    newVarTracker(),
	}
	return l.lowerProgram()
}

type lowerer struct {
	ast    *ast.Program
	engine *analysis.QueryEngine

	methods map[ast.MethodDeclLabel]ir.MethodID
	fields  map[ast.Label]ir.FieldID
	classes map[ast.ClassDeclLabel]*ir.ClassInfo
	vars    *varTracker

	// current is the method being lowered.
	current *ast.MethodDecl
}

func (l *lowerer) lowerProgram() (*Output, error) {
	// The synthetic Console.WriteLine method occupies MethodID 0. Its
	// body prints its single argument.
	methods := []ir.Method{{
		Body: []ir.Statement{
			ir.ExprStmt{Expr: ir.PrintLine{Arg: ir.VarRead{Var: ir.ThisVar}}},
		},
	}}

	// Assign ids to all fields and methods before lowering any body, so
	// call sites and field accesses can refer forward.
	for _, cd := range l.ast.Classes {
		var fieldNames []string
		for _, item := range cd.Items {
			switch it := item.(type) {
			case *ast.FieldDecl:
				l.fields[it.Label] = ir.FieldID(len(fieldNames))
				fieldNames = append(fieldNames, it.Name)
			case *ast.MethodDecl:
				l.methods[it.Label.AsMethodDecl()] = ir.MethodID(len(methods) + len(l.methods))
			}
		}
		l.classes[cd.Label.AsClassDecl()] = &ir.ClassInfo{
			Name:       cd.Name,
			FieldNames: fieldNames,
		}
	}

	for _, md := range l.ast.Methods() {
		m, err := l.lowerMethod(md)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}

	ep := l.engine.EntryPoint()
	out := &Output{
		Program: ir.Program{
			Methods:    methods,
			EntryPoint: l.methods[ep.Label.AsMethodDecl()],
		},
		Classes: l.classes,
	}
	return out, nil
}

func (l *lowerer) lowerMethod(md *ast.MethodDecl) (ir.Method, error) {
	l.current = md
	l.vars.reset(!md.IsStatic)
	for _, p := range md.Params {
		l.vars.declare(p.Label.AsVarDecl())
	}

	var body []ir.Statement
	for _, stmt := range md.Body {
		if err := l.lowerStatement(stmt, &body); err != nil {
			return ir.Method{}, err
		}
	}
	return ir.Method{Body: body}, nil
}

func (l *lowerer) lowerStatement(stmt ast.Statement, body *[]ir.Statement) error {
	switch s := stmt.(type) {
	case *ast.Assign:
		lowered, err := l.lowerAssignment(s.Label, s.Expr)
		if err != nil {
			return err
		}
		*body = append(*body, lowered)
		return nil

	case *ast.ExpressionStmt:
		expr, err := l.lowerExpression(s.Expr)
		if err != nil {
			return err
		}
		*body = append(*body, ir.ExprStmt{Expr: expr})
		return nil

	case *ast.Return:
		return l.lowerReturn(s, body)

	case *ast.VarDecl:
		l.vars.declare(s.Label.AsVarDecl())
		*body = append(*body, ir.VarDecl{})
		if s.Init != nil {
			lowered, err := l.lowerAssignment(s.Label, s.Init)
			if err != nil {
				return err
			}
			*body = append(*body, lowered)
		}
		return nil

	case *ast.IfThenElse:
		return l.lowerIfThenElse(s, body)

	default:
		return errorf("unknown statement %T", stmt)
	}
}

func (l *lowerer) lowerReturn(ret *ast.Return, body *[]ir.Statement) error {
	retTy, err := l.engine.ReturnType(l.current.Label.AsMethodDecl())
	if err != nil {
		return err
	}

	exprTy := types.VoidID
	if ret.Expr != nil {
		ty, ok, err := l.engine.ExprType(ast.ExprLabelOf(ret.Expr))
		if err != nil {
			return err
		}
		if !ok {
			return typeMismatchf("returned expression has no type: %s", ret.Expr)
		}
		exprTy = ty
	}
	if !l.engine.Types().Unify(retTy, exprTy) {
		return typeMismatchf("return type of %q does not match the returned expression", l.current.Name)
	}

	var expr ir.Expression
	if ret.Expr != nil {
		expr, err = l.lowerExpression(ret.Expr)
		if err != nil {
			return err
		}
	}
	*body = append(*body, ir.Return{Expr: expr})
	return nil
}

// lowerIfThenElse emits the patched branch pattern: the condition branch
// skips over the else block to the then block, and the else block's
// trailing jump skips over the then block.
func (l *lowerer) lowerIfThenElse(ite *ast.IfThenElse, body *[]ir.Statement) error {
	condTy, ok, err := l.engine.ExprType(ast.ExprLabelOf(ite.Cond))
	if err != nil {
		return err
	}
	if !ok || condTy != types.BoolID {
		return typeMismatchf("if condition must be bool: %s", ite.Cond)
	}

	// Reserve the branch slot, then lay out the else block.
	branchSlot := len(*body)
	*body = append(*body, ir.Nop{})
	for _, stmt := range ite.Else {
		if err := l.lowerStatement(stmt, body); err != nil {
			return err
		}
	}

	// Reserve the jump past the then block, then lay out the then block.
	thenAddr := len(*body) + 1
	jumpSlot := len(*body)
	*body = append(*body, ir.Nop{})
	for _, stmt := range ite.Then {
		if err := l.lowerStatement(stmt, body); err != nil {
			return err
		}
	}
	endAddr := len(*body)

	cond, err := l.lowerExpression(ite.Cond)
	if err != nil {
		return err
	}
	(*body)[branchSlot] = ir.Branch{Cond: cond, Target: thenAddr}
	(*body)[jumpSlot] = ir.Jump{Target: endAddr}
	return nil
}

// lowerAssignment type-checks and lowers an assignment to the variable
// declared or referenced by target. It serves both Assign statements and
// VarDecl initializers.
func (l *lowerer) lowerAssignment(target ast.Label, expr ast.Expression) (ir.Statement, error) {
	declLabel, err := l.engine.VarDecl(target)
	if err != nil {
		return nil, err
	}

	varTy, err := l.engine.VarType(declLabel)
	if err != nil {
		return nil, err
	}
	exprTy, ok, err := l.engine.ExprType(ast.ExprLabelOf(expr))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, typeMismatchf("assigned expression has no type: %s", expr)
	}
	if !l.engine.Types().Unify(varTy, exprTy) {
		return nil, typeMismatchf("assignment to incompatible variable type: %s", expr)
	}

	value, err := l.lowerExpression(expr)
	if err != nil {
		return nil, err
	}
	varID, found := l.vars.lookup(declLabel)
	if !found {
		return nil, errorf("variable declared outside the current method: %d", declLabel.Label())
	}
	return ir.Assign{Var: varID, Value: value}, nil
}

func (l *lowerer) lowerExpression(expr ast.Expression) (ir.Expression, error) {
	switch e := expr.(type) {
	case *ast.BinaryOp:
		// Inferring the operator's type validates both operand types.
		if _, _, err := l.engine.ExprType(ast.ExprLabelOf(e)); err != nil {
			return nil, err
		}
		left, err := l.lowerExpression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := l.lowerExpression(e.Right)
		if err != nil {
			return nil, err
		}
		return ir.IntOp{Op: e.Op, Left: left, Right: right}, nil

	case *ast.FieldAccess:
		fd, err := l.engine.Field(e.Label.AsVarUse())
		if err != nil {
			return nil, err
		}
		target, err := l.lowerExpression(e.Target)
		if err != nil {
			return nil, err
		}
		return ir.FieldAccess{Target: target, Field: l.fields[fd.Label]}, nil

	case *ast.Literal:
		return l.lowerLiteral(e)

	case *ast.MethodCall:
		return l.lowerMethodCall(e)

	case *ast.New:
		classLabel, err := l.engine.ClassDecl(e.ClassName)
		if err != nil {
			return nil, err
		}
		return ir.NewObject{Class: classLabel}, nil

	case *ast.Identifier:
		declLabel, err := l.engine.VarDecl(e.Label)
		if err != nil {
			return nil, err
		}
		varID, found := l.vars.lookup(declLabel)
		if !found {
			return nil, errorf("variable declared outside the current method: %q", e.Name)
		}
		return ir.VarRead{Var: varID}, nil

	case *ast.This:
		if l.current.IsStatic {
			return nil, &analysis.Error{
				Kind:    analysis.ErrThisInStaticMethod,
				Message: "`this` used inside static method " + l.current.Name,
			}
		}
		return ir.VarRead{Var: ir.ThisVar}, nil

	default:
		return nil, errorf("unknown expression %T", expr)
	}
}

func (l *lowerer) lowerLiteral(lit *ast.Literal) (ir.Expression, error) {
	switch lit.Kind {
	case ast.LitInt:
		return ir.IntLit(lit.Int), nil
	case ast.LitString:
		return ir.StringLit(lit.Str), nil
	case ast.LitBool:
		return ir.BoolLit(lit.Bool), nil
	case ast.LitNull:
		return ir.NullLit{}, nil
	case ast.LitArray:
		elems := make(ir.ArrayLit, 0, len(lit.Elems))
		for _, e := range lit.Elems {
			lowered, err := l.lowerExpression(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, lowered)
		}
		return elems, nil
	default:
		return nil, errorf("unknown literal kind %d", lit.Kind)
	}
}

func (l *lowerer) lowerMethodCall(mc *ast.MethodCall) (ir.Expression, error) {
	// Inferring the call's type performs the arity and argument checks.
	if _, _, err := l.engine.ExprType(ast.ExprLabelOf(mc)); err != nil {
		return nil, err
	}

	if mc.IsConsoleWriteLine() {
		arg, err := l.lowerExpression(mc.Args[0])
		if err != nil {
			return nil, err
		}
		return ir.MethodCall{Method: ir.WriteLineMethod, Args: []ir.Expression{arg}}, nil
	}

	md, err := l.engine.MethodDecl(mc.Label.AsMethodUse())
	if err != nil {
		return nil, err
	}

	// Instance calls pass the receiver as the first argument.
	var args []ir.Expression
	if !md.IsStatic {
		receiver, err := l.lowerExpression(mc.Target)
		if err != nil {
			return nil, err
		}
		args = append(args, receiver)
	}
	for _, arg := range mc.Args {
		lowered, err := l.lowerExpression(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, lowered)
	}
	return ir.MethodCall{Method: l.methods[md.Label.AsMethodDecl()], Args: args}, nil
}
