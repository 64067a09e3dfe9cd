package ir

import (
	"fmt"
	"strings"
)

// Dump renders a program as a readable listing, one statement per line
// with its index, for debugging and the CLI's dump command.
func Dump(p *Program) string {
	var sb strings.Builder
	for id, m := range p.Methods {
		marker := ""
		if MethodID(id) == p.EntryPoint {
			marker = " (entry point)"
		}
		fmt.Fprintf(&sb, "method %d%s:\n", id, marker)
		for i, stmt := range m.Body {
			fmt.Fprintf(&sb, "%4d | %s\n", i, dumpStatement(stmt))
		}
	}
	return sb.String()
}

func dumpStatement(s Statement) string {
	switch st := s.(type) {
	case Assign:
		return fmt.Sprintf("assign v%d = %s", st.Var, dumpExpression(st.Value))
	case ExprStmt:
		return fmt.Sprintf("expr %s", dumpExpression(st.Expr))
	case Return:
		if st.Expr == nil {
			return "return"
		}
		return fmt.Sprintf("return %s", dumpExpression(st.Expr))
	case VarDecl:
		return "vardecl"
	case Branch:
		return fmt.Sprintf("branch %s -> %d", dumpExpression(st.Cond), st.Target)
	case Jump:
		return fmt.Sprintf("jump -> %d", st.Target)
	case Nop:
		return "nop"
	default:
		return fmt.Sprintf("%#v", s)
	}
}

func dumpExpression(e Expression) string {
	switch ex := e.(type) {
	case FieldAccess:
		return fmt.Sprintf("%s.f%d", dumpExpression(ex.Target), ex.Field)
	case IntLit:
		return fmt.Sprintf("%d", int64(ex))
	case StringLit:
		return fmt.Sprintf("%q", string(ex))
	case BoolLit:
		return fmt.Sprintf("%t", bool(ex))
	case NullLit:
		return "null"
	case ArrayLit:
		parts := make([]string, len(ex))
		for i, el := range ex {
			parts[i] = dumpExpression(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case IntOp:
		return fmt.Sprintf("(%s %s %s)", dumpExpression(ex.Left), ex.Op, dumpExpression(ex.Right))
	case PrintLine:
		return fmt.Sprintf("println(%s)", dumpExpression(ex.Arg))
	case MethodCall:
		parts := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			parts[i] = dumpExpression(a)
		}
		return fmt.Sprintf("call m%d(%s)", ex.Method, strings.Join(parts, ", "))
	case VarRead:
		return fmt.Sprintf("v%d", ex.Var)
	case NewObject:
		return fmt.Sprintf("new c%d", ex.Class.Label())
	default:
		return fmt.Sprintf("%#v", e)
	}
}
