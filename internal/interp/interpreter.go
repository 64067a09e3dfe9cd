// Package interp executes lowered MiniSharp programs on a stack machine.
//
// A single value stack holds every active frame's locals; stackPtr marks
// the base of the current frame. Expression evaluation is recursive;
// intermediate results are Go values, and only a method call touches the
// stack, opening a frame above the caller's locals and removing it on
// return. Runtime faults (division by zero, null dereference, a non-int
// IntOp operand) surface as errors from Run.
package interp

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/go-minisharp/internal/ast"
	"github.com/cwbudde/go-minisharp/internal/ir"
)

// Interpreter runs one lowered program. Output from Console.WriteLine
// goes to the configured writer.
type Interpreter struct {
	program  *ir.Program
	classes  map[ast.ClassDeclLabel]*ir.ClassInfo
	output   io.Writer
	stack    []Value
	stackPtr int
}

// New creates an interpreter for the program. If output is nil, printed
// output is discarded.
func New(program *ir.Program, classes map[ast.ClassDeclLabel]*ir.ClassInfo, output io.Writer) *Interpreter {
	if output == nil {
		output = io.Discard
	}
	return &Interpreter{
		program: program,
		classes: classes,
		output:  output,
		stack:   make([]Value, 0, 256),
	}
}

// Run executes the program's entry point with no arguments. Execution
// ends when the entry point returns.
func (in *Interpreter) Run() error {
	ep := &in.program.Methods[in.program.EntryPoint]
	_, _, err := in.runMethod(ep, nil)
	return err
}

// runMethod executes one method invocation: a new frame is opened at the
// top of the stack, the arguments become the first locals, and the frame
// is discarded on return.
func (in *Interpreter) runMethod(m *ir.Method, args []Value) (Value, bool, error) {
	caller := in.stackPtr
	base := len(in.stack)
	in.stackPtr = base
	in.stack = append(in.stack, args...)

	var ret Value
	var returned bool
	var err error

	for ip := 0; ip < len(m.Body); {
		var next nextAction
		next, err = in.runStatement(m.Body[ip])
		if err != nil {
			break
		}
		switch next.kind {
		case actionContinue:
			ip++
		case actionJump:
			ip = next.target
		case actionReturn:
			ret = next.value
			returned = next.hasValue
			ip = len(m.Body)
		}
	}

	in.stackPtr = caller
	in.stack = in.stack[:base]
	return ret, returned, err
}

type actionKind byte

const (
	actionContinue actionKind = iota
	actionJump
	actionReturn
)

type nextAction struct {
	kind     actionKind
	target   int
	value    Value
	hasValue bool
}

func (in *Interpreter) runStatement(s ir.Statement) (nextAction, error) {
	switch st := s.(type) {
	case ir.Assign:
		value, err := in.runExpression(st.Value)
		if err != nil {
			return nextAction{}, err
		}
		in.stack[in.stackPtr+int(st.Var)] = value
		return nextAction{kind: actionContinue}, nil

	case ir.ExprStmt:
		if _, err := in.runExpression(st.Expr); err != nil {
			return nextAction{}, err
		}
		return nextAction{kind: actionContinue}, nil

	case ir.Return:
		if st.Expr == nil {
			return nextAction{kind: actionReturn}, nil
		}
		value, err := in.runExpression(st.Expr)
		if err != nil {
			return nextAction{}, err
		}
		return nextAction{kind: actionReturn, value: value, hasValue: true}, nil

	case ir.VarDecl:
		// Reserve the slot with a sentinel; the initializer's Assign
		// follows separately.
		in.stack = append(in.stack, IntValue(math.MaxInt64))
		return nextAction{kind: actionContinue}, nil

	case ir.Branch:
		cond, err := in.runExpression(st.Cond)
		if err != nil {
			return nextAction{}, err
		}
		b, ok := cond.AsBool()
		if !ok {
			return nextAction{}, fmt.Errorf("interp: branch condition is not a bool but %s", cond.Type)
		}
		if b {
			return nextAction{kind: actionJump, target: st.Target}, nil
		}
		return nextAction{kind: actionContinue}, nil

	case ir.Jump:
		return nextAction{kind: actionJump, target: st.Target}, nil

	case ir.Nop:
		return nextAction{}, fmt.Errorf("interp: nop must not remain after lowering")

	default:
		return nextAction{}, fmt.Errorf("interp: unknown statement %T", s)
	}
}

func (in *Interpreter) runExpression(e ir.Expression) (Value, error) {
	switch ex := e.(type) {
	case ir.FieldAccess:
		target, err := in.runExpression(ex.Target)
		if err != nil {
			return Value{}, err
		}
		obj, ok := target.Data.(*Object)
		if !ok || target.Type != ValueObject {
			if target.Type == ValueNull {
				return Value{}, fmt.Errorf("interp: field access on null")
			}
			return Value{}, fmt.Errorf("interp: field access on %s", target.Type)
		}
		return obj.Fields[ex.Field], nil

	case ir.IntLit:
		return IntValue(int64(ex)), nil

	case ir.StringLit:
		return StringValue(string(ex)), nil

	case ir.BoolLit:
		return BoolValue(bool(ex)), nil

	case ir.NullLit:
		return NullValue(), nil

	case ir.ArrayLit:
		elems := make([]Value, 0, len(ex))
		for _, el := range ex {
			value, err := in.runExpression(el)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, value)
		}
		return ArrayValue(elems), nil

	case ir.IntOp:
		return in.runIntOp(ex)

	case ir.PrintLine:
		value, err := in.runExpression(ex.Arg)
		if err != nil {
			return Value{}, err
		}
		var out bytes.Buffer
		value.format(&out, in.classes)
		out.WriteString("\n")
		if _, err := in.output.Write(out.Bytes()); err != nil {
			return Value{}, err
		}
		// The result is discarded under the void return type.
		return NullValue(), nil

	case ir.MethodCall:
		method := &in.program.Methods[ex.Method]
		args := make([]Value, 0, len(ex.Args))
		for _, argExpr := range ex.Args {
			value, err := in.runExpression(argExpr)
			if err != nil {
				return Value{}, err
			}
			args = append(args, value)
		}
		ret, returned, err := in.runMethod(method, args)
		if err != nil {
			return Value{}, err
		}
		if !returned {
			// Void methods yield null; the type system guarantees the
			// value is ignored.
			return NullValue(), nil
		}
		return ret, nil

	case ir.VarRead:
		return in.stack[in.stackPtr+int(ex.Var)], nil

	case ir.NewObject:
		info := in.classes[ex.Class]
		fields := make([]Value, len(info.FieldNames))
		for i := range fields {
			fields[i] = NullValue()
		}
		return ObjectValue(&Object{Class: ex.Class, Fields: fields}), nil

	default:
		return Value{}, fmt.Errorf("interp: unknown expression %T", e)
	}
}

func (in *Interpreter) runIntOp(op ir.IntOp) (Value, error) {
	left, err := in.runExpression(op.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := in.runExpression(op.Right)
	if err != nil {
		return Value{}, err
	}

	a, okA := left.AsInt()
	b, okB := right.AsInt()
	if !okA || !okB {
		return Value{}, fmt.Errorf("interp: int operator %s applied to %s and %s", op.Op, left.Type, right.Type)
	}

	switch op.Op {
	case ast.Add:
		return IntValue(a + b), nil
	case ast.Sub:
		return IntValue(a - b), nil
	case ast.Mul:
		return IntValue(a * b), nil
	case ast.Div:
		if b == 0 {
			return Value{}, fmt.Errorf("interp: division by zero")
		}
		return IntValue(a / b), nil
	case ast.Eq:
		return BoolValue(a == b), nil
	default:
		return Value{}, fmt.Errorf("interp: unknown operator %s", op.Op)
	}
}
