package lowering

import (
	"github.com/cwbudde/go-minisharp/internal/ast"
	"github.com/cwbudde/go-minisharp/internal/ir"
)

// varTracker assigns dense local slot ids within one method. Slots are
// handed out in declaration order; in non-static methods slot 0 belongs
// to the implicit receiver.
type varTracker struct {
	vars map[ast.VarDeclLabel]ir.VarID
	next int
}

func newVarTracker() *varTracker {
	return &varTracker{vars: make(map[ast.VarDeclLabel]ir.VarID)}
}

// reset clears the tracker for a new method. When reserveThis is true the
// first slot is kept for the receiver and declarations start at 1.
func (t *varTracker) reset(reserveThis bool) {
	clear(t.vars)
	t.next = 0
	if reserveThis {
		t.next = 1
	}
}

// declare registers a declaration and returns its slot.
func (t *varTracker) declare(decl ast.VarDeclLabel) ir.VarID {
	id := ir.VarID(t.next)
	t.next++
	t.vars[decl] = id
	return id
}

// lookup returns the slot previously assigned to a declaration.
func (t *varTracker) lookup(decl ast.VarDeclLabel) (ir.VarID, bool) {
	id, ok := t.vars[decl]
	return id, ok
}
