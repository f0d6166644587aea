// Package lower rewrites labels, gotos and yields into a state machine: a labelled infinite loop around a switch on a state variable.
package lower

import (
	"github.com/tdewolff/jsgen/ir"
)

// Options are the collaborators and switches of the lowering.
type Options struct {
	// IsSafeToReevaluate reports whether an expression may be evaluated more than once, a switch discriminant for which it
	// returns false is stored in a temporary. It defaults to IsSimple.
	IsSafeToReevaluate func(ir.IExpr) bool

	// NewName returns a fresh identifier, used for the state variable, the loop label and temporaries. It is required.
	NewName func() string

	// SetCurrent returns the expression that stores the value of a yield return. It is required in iterator mode.
	SetCurrent func(value ir.IExpr) ir.IExpr

	// Iterator lowers the statement as the body of an iterator: each call resumes at the state of the last yield
	// return and returns whether a new value was yielded.
	Iterator bool

	// Fallthrough omits the jump at the end of a case to the case that follows it.
	Fallthrough bool
}

func (o *Options) check() {
	if o.NewName == nil {
		ir.Errorf(nil, "missing name factory")
	} else if o.Iterator && o.SetCurrent == nil {
		ir.Errorf(nil, "missing SetCurrent in iterator mode")
	}
	if o.IsSafeToReevaluate == nil {
		o.IsSafeToReevaluate = IsSimple
	}
}

// IsSimple returns true for identifiers, literals and this.
func IsSimple(e ir.IExpr) bool {
	switch e.(type) {
	case *ir.Ident, *ir.NumberExpr, *ir.StringExpr, *ir.BoolExpr, *ir.NullExpr, *ir.ThisExpr:
		return true
	}
	return false
}

// Lower returns s with nested functions lowered and, if s contains labels, gotos or yields or when in iterator mode,
// s itself lowered into a state machine. The state variable is initialized to zero, in iterator mode the caller must
// hoist its declaration, the first statement of the returned block, out of the function that is called repeatedly.
// Nested functions are never lowered in iterator mode.
func Lower(s ir.IStmt, o Options) (result ir.IStmt, err error) {
	defer ir.Recover(&err)
	o.check()
	nested := o
	nested.Iterator = false
	l := &lowerer{nested: &nested}
	return l.lower(s, &o), nil
}

// LowerGraph builds the state machine of a gathered graph.
func LowerGraph(graph *Graph, o Options) (result ir.IStmt, err error) {
	defer ir.Recover(&err)
	o.check()
	state, loop := o.NewName(), o.NewName()
	out := newMachine(&o, state, loop, o.Iterator).build(graph)
	checkGotos(out)
	return out, nil
}

type lowerer struct {
	nested *Options
}

func (l *lowerer) lower(s ir.IStmt, o *Options) ir.IStmt {
	s = l.RewriteStmt(s, struct{}{})
	if !o.Iterator && !needsLowering(s) {
		return s
	}

	state, loop := o.NewName(), o.NewName()
	g := newGatherer(&shared{opts: o, labels: map[string]bool{}}, nil)
	out := newMachine(o, state, loop, o.Iterator).build(g.gather(s))
	checkGotos(out)
	return out
}

func (l *lowerer) function(body *ir.BlockStmt) *ir.BlockStmt {
	if body == nil {
		return nil
	}
	s := l.lower(body, l.nested)
	if block, ok := s.(*ir.BlockStmt); ok {
		return block
	}
	return ir.Block(s)
}

func (l *lowerer) RewriteExpr(e ir.IExpr, data struct{}) ir.IExpr {
	if f, ok := e.(*ir.FuncExpr); ok {
		if body := l.function(f.Body); body != f.Body {
			return &ir.FuncExpr{Name: f.Name, Params: f.Params, Body: body}
		}
		return f
	}
	return ir.ExprChildren[struct{}](l, e, data)
}

func (l *lowerer) RewriteStmt(s ir.IStmt, data struct{}) ir.IStmt {
	if f, ok := s.(*ir.FuncDecl); ok {
		if body := l.function(f.Body); body != f.Body {
			return &ir.FuncDecl{Name: f.Name, Params: f.Params, Body: body}
		}
		return f
	}
	return ir.StmtChildren[struct{}](l, s, data)
}

func needsLowering(s ir.IStmt) bool {
	return ir.Contains(s, func(n ir.INode) bool {
		switch n.(type) {
		case *ir.LabelledStmt, *ir.GotoStmt, *ir.YieldReturnStmt, *ir.YieldBreakStmt:
			return true
		}
		return false
	})
}

// checkGotos fails on gotos that no machine resolved
func checkGotos(s ir.IStmt) {
	var jump *ir.GotoStmt
	ir.Contains(s, func(n ir.INode) bool {
		jump, _ = n.(*ir.GotoStmt)
		return jump != nil
	})
	if jump != nil {
		ir.Errorf(jump, "undefined label %s", jump.Label)
	}
}
