package lower

import (
	"strconv"

	"github.com/tdewolff/jsgen/ir"
)

// Exit is the jump target meaning that control leaves the lowered statement normally.
const Exit = "$exit"

// Block is a straight-line run of statements. It ends in a goto, in a yield return, or in nothing when
// its last statement is a return, throw or yield break. Gotos and yields may also appear nested in conditionals.
type Block struct {
	Name  string
	Stmts []ir.IStmt
}

// Graph is the arena of blocks produced by Gather.
type Graph struct {
	Blocks  []Block
	Index   map[string]int // block names and their aliases
	Entry   string
	Resume  map[*ir.YieldReturnStmt]string // the block that continues after a yield return
	Hoisted []ir.IStmt                     // function declarations
}

// Block returns the block with the given name or alias.
func (g *Graph) Block(name string) (Block, bool) {
	i, ok := g.Index[name]
	if !ok {
		return Block{}, false
	}
	return g.Blocks[i], true
}

// Gather decomposes s into named blocks, without lowering nested functions.
func Gather(s ir.IStmt, o Options) (graph *Graph, err error) {
	defer ir.Recover(&err)
	o.check()
	g := newGatherer(&shared{opts: &o, labels: map[string]bool{}}, nil)
	return g.gather(s), nil
}

////////////////////////////////////////////////////////////////

// shared is the state common to the gatherers of one function body, including those of try regions
type shared struct {
	opts   *Options
	labels map[string]bool
	n      int
}

func (sh *shared) label(hint string) string {
	sh.n++
	return "#" + hint + strconv.Itoa(sh.n)
}

// lazyLabel is a block name that is allocated on first use
type lazyLabel struct {
	sh   *shared
	hint string
	name string
}

func (l *lazyLabel) get() string {
	if l.name == "" {
		l.name = l.sh.label(l.hint)
	}
	return l.name
}

func (l *lazyLabel) used() bool {
	return l.name != ""
}

type targetKind int

const (
	labelTarget targetKind = iota
	loopTarget
	switchTarget
)

// target is a construct that break or continue statements can jump out of
type target struct {
	kind  targetKind
	label string
	brk   *lazyLabel
	cont  *lazyLabel
}

type gatherer struct {
	*shared
	blocks  []*Block
	index   map[string]int
	resume  map[*ir.YieldReturnStmt]string
	hoisted []ir.IStmt
	targets []target

	cur      *[]ir.IStmt // nil when control cannot reach the current position
	curBlock *Block      // nil when cur is the inline buffer of a branch
}

func newGatherer(sh *shared, targets []target) *gatherer {
	return &gatherer{
		shared:  sh,
		index:   map[string]int{},
		resume:  map[*ir.YieldReturnStmt]string{},
		targets: append([]target{}, targets...),
	}
}

func (g *gatherer) gather(s ir.IStmt) *Graph {
	entry := g.label("entry")
	g.startBlock(entry)
	g.stmts(s)
	g.jump(Exit)

	graph := &Graph{
		Blocks:  make([]Block, len(g.blocks)),
		Index:   g.index,
		Entry:   entry,
		Resume:  g.resume,
		Hoisted: g.hoisted,
	}
	for i, b := range g.blocks {
		graph.Blocks[i] = *b
	}
	return graph
}

func (g *gatherer) fixed(name string) *lazyLabel {
	return &lazyLabel{sh: g.shared, name: name}
}

func (g *gatherer) lazy(hint string) *lazyLabel {
	return &lazyLabel{sh: g.shared, hint: hint}
}

// emit appends to the current block, statements that cannot be reached go into a block that nothing jumps to
func (g *gatherer) emit(s ir.IStmt) {
	if g.cur == nil {
		g.startBlock(g.label("dead"))
	}
	*g.cur = append(*g.cur, s)
}

// jump ends the current block with a goto
func (g *gatherer) jump(name string) {
	if g.cur != nil {
		*g.cur = append(*g.cur, ir.Goto(name))
		g.close()
	}
}

func (g *gatherer) close() {
	g.cur = nil
	g.curBlock = nil
}

func (g *gatherer) isEmptyBlock() bool {
	return g.curBlock != nil && len(g.curBlock.Stmts) == 0
}

// startBlock opens the block name, the current block jumps to it. An empty current block gets name as alias.
func (g *gatherer) startBlock(name string) {
	if g.isEmptyBlock() {
		g.index[name] = g.index[g.curBlock.Name]
		return
	}
	g.jump(name)
	b := &Block{Name: name}
	g.index[name] = len(g.blocks)
	g.blocks = append(g.blocks, b)
	g.cur = &b.Stmts
	g.curBlock = b
}

// openBlock returns the name of a block that starts at the current position
func (g *gatherer) openBlock(hint string) string {
	if g.isEmptyBlock() {
		return g.curBlock.Name
	}
	name := g.label(hint)
	g.startBlock(name)
	return name
}

func (g *gatherer) push(t target) {
	g.targets = append(g.targets, t)
}

func (g *gatherer) pop() {
	g.targets = g.targets[:len(g.targets)-1]
}

// branchTarget returns the block that a break or continue jumps to
func (g *gatherer) branchTarget(s *ir.BranchStmt) string {
	for i := len(g.targets) - 1; 0 <= i; i-- {
		t := g.targets[i]
		if s.Label != "" {
			if t.label != s.Label {
				continue
			} else if s.Tok == ir.Continue && t.kind != loopTarget {
				ir.Errorf(s, "continue to label %s that is not a loop", s.Label)
			}
		} else if s.Tok == ir.Continue && t.kind != loopTarget || s.Tok == ir.Break && t.kind == labelTarget {
			continue
		}
		if s.Tok == ir.Continue {
			return t.cont.get()
		}
		return t.brk.get()
	}
	ir.Errorf(s, "%s outside of a loop or switch", s.Tok)
	return ""
}

func (g *gatherer) defineLabel(s *ir.LabelledStmt) {
	if g.labels[s.Label] {
		ir.Errorf(s, "duplicate label %s", s.Label)
	}
	g.labels[s.Label] = true
}

// needsSplit returns true if s contains a statement that starts or ends a block
func (g *gatherer) needsSplit(s ir.IStmt) bool {
	return ir.Contains(s, func(n ir.INode) bool {
		switch n.(type) {
		case *ir.LabelledStmt, *ir.YieldReturnStmt, *ir.YieldBreakStmt:
			return true
		}
		return false
	})
}

// stmts gathers s, the statements of a block are gathered into the current block
func (g *gatherer) stmts(s ir.IStmt) {
	if block, ok := s.(*ir.BlockStmt); ok {
		for _, item := range ir.Flatten(block.List) {
			g.stmt(item)
		}
		return
	}
	g.stmt(s)
}

func (g *gatherer) stmt(s ir.IStmt) {
	switch s := s.(type) {
	case nil:
		return
	case *ir.GotoStmt:
		g.jump(s.Label)
		return
	case *ir.BranchStmt:
		g.jump(g.branchTarget(s))
		return
	case *ir.ReturnStmt, *ir.ThrowStmt:
		g.emit(s)
		g.close()
		return
	case *ir.FuncDecl:
		g.hoisted = append(g.hoisted, s)
		return
	}
	if !g.needsSplit(s) {
		g.native(s, "")
		return
	}

	switch s := s.(type) {
	case *ir.BlockStmt:
		g.stmts(s)
	case *ir.LabelledStmt:
		g.labelled(s)
	case *ir.YieldReturnStmt:
		if !g.opts.Iterator {
			ir.Errorf(s, "yield outside of an iterator")
		}
		next := g.label("resume")
		g.emit(s)
		g.resume[s] = next
		g.close()
		g.startBlock(next)
	case *ir.YieldBreakStmt:
		if !g.opts.Iterator {
			ir.Errorf(s, "yield outside of an iterator")
		}
		g.emit(s)
		g.close()
	case *ir.IfStmt:
		g.ifStmt(s)
	case *ir.WhileStmt, *ir.DoWhileStmt, *ir.ForStmt, *ir.ForInStmt:
		g.loop(s, "")
	case *ir.SwitchStmt:
		g.switchStmt(s)
	case *ir.TryStmt:
		g.tryStmt(s)
	case *ir.WithStmt:
		ir.Errorf(s, "with statement containing labels or yields")
	default:
		ir.Errorf(s, "unknown statement")
	}
}

func (g *gatherer) labelled(s *ir.LabelledStmt) {
	g.defineLabel(s)
	g.startBlock(s.Label)
	switch v := s.Value.(type) {
	case *ir.WhileStmt, *ir.DoWhileStmt, *ir.ForStmt, *ir.ForInStmt:
		if g.needsSplit(v) {
			g.loop(v, s.Label)
			return
		}
	}

	if !g.needsSplit(s.Value) {
		g.native(s.Value, s.Label)
		return
	}
	after := g.lazy("after")
	g.push(target{kind: labelTarget, label: s.Label, brk: after})
	g.stmts(s.Value)
	g.pop()
	if after.used() {
		g.startBlock(after.name)
	}
}

// branch gathers a branch of an if statement into buf, a part that falls through from a split block jumps to after
func (g *gatherer) branch(buf *[]ir.IStmt, s ir.IStmt, after *lazyLabel) {
	g.cur, g.curBlock = buf, nil
	g.stmts(s)
	if g.cur != nil && g.cur != buf {
		g.jump(after.get())
	}
}

func (g *gatherer) ifStmt(s *ir.IfStmt) {
	if g.cur == nil {
		g.startBlock(g.label("dead"))
	}
	outer, outerBlock := g.cur, g.curBlock
	after := g.lazy("after")

	var body, els []ir.IStmt
	g.branch(&body, s.Body, after)
	var elsStmt ir.IStmt
	if s.Else != nil {
		g.branch(&els, s.Else, after)
		if _, ok := s.Else.(*ir.IfStmt); ok && len(els) == 1 {
			elsStmt = els[0] // else if
		} else {
			elsStmt = ir.Block(els...)
		}
	}

	g.cur, g.curBlock = outer, outerBlock
	g.emit(&ir.IfStmt{Cond: s.Cond, Body: ir.Block(body...), Else: elsStmt})
	if after.used() {
		g.startBlock(after.name)
	}
}

func (g *gatherer) loop(s ir.IStmt, label string) {
	after := g.label("after")
	switch s := s.(type) {
	case *ir.WhileStmt:
		test := g.openBlock("while")
		g.emit(&ir.IfStmt{Cond: ir.Not(s.Cond), Body: ir.Goto(after)})
		g.push(target{kind: loopTarget, label: label, brk: g.fixed(after), cont: g.fixed(test)})
		g.stmts(s.Body)
		g.pop()
		g.jump(test)
	case *ir.DoWhileStmt:
		body := g.openBlock("do")
		test := g.lazy("test")
		g.push(target{kind: loopTarget, label: label, brk: g.fixed(after), cont: test})
		g.stmts(s.Body)
		g.pop()
		if test.used() {
			g.startBlock(test.name)
		}
		if g.cur != nil {
			g.emit(&ir.IfStmt{Cond: s.Cond, Body: ir.Goto(body)})
		}
	case *ir.ForStmt:
		if s.Init != nil {
			g.stmt(s.Init)
		}
		test := g.openBlock("for")
		if s.Cond != nil {
			g.emit(&ir.IfStmt{Cond: ir.Not(s.Cond), Body: ir.Goto(after)})
		}
		cont := test
		if s.Post != nil {
			cont = g.label("incr")
		}
		g.push(target{kind: loopTarget, label: label, brk: g.fixed(after), cont: g.fixed(cont)})
		g.stmts(s.Body)
		g.pop()
		if s.Post != nil {
			g.startBlock(cont)
			g.emit(ir.Expr(s.Post))
		}
		g.jump(test)
	case *ir.ForInStmt:
		keys, key := g.opts.NewName(), g.opts.NewName()
		g.emit(ir.Var(keys, &ir.ArrayExpr{}))
		g.emit(&ir.ForInStmt{Var: key, Decl: true, Value: s.Value, Body: ir.Expr(ir.Call(ir.Dot(ir.Name(keys), "push"), ir.Name(key)))})
		test := g.openBlock("forin")
		g.emit(&ir.IfStmt{Cond: ir.Not(ir.Dot(ir.Name(keys), "length")), Body: ir.Goto(after)})
		shift := ir.Call(ir.Dot(ir.Name(keys), "shift"))
		if s.Decl {
			g.emit(ir.Var(s.Var, shift))
		} else {
			g.emit(ir.Expr(ir.Assign(ir.Name(s.Var), shift)))
		}
		g.push(target{kind: loopTarget, label: label, brk: g.fixed(after), cont: g.fixed(test)})
		g.stmts(s.Body)
		g.pop()
		g.jump(test)
	}
	g.startBlock(after)
}

func (g *gatherer) switchStmt(s *ir.SwitchStmt) {
	disc := s.Init
	if !g.opts.IsSafeToReevaluate(disc) {
		tmp := g.opts.NewName()
		g.emit(ir.Var(tmp, disc))
		disc = ir.Name(tmp)
	}

	after := g.label("after")
	names := make([]string, len(s.List))
	deflt := after
	for i, clause := range s.List {
		names[i] = g.label("case")
		if clause.IsDefault() {
			deflt = names[i]
		}
	}

	// build the if/else-if chain from the back
	var chain ir.IStmt = ir.Goto(deflt)
	for i := len(s.List) - 1; 0 <= i; i-- {
		clause := s.List[i]
		if clause.IsDefault() {
			continue
		}
		var cond ir.IExpr
		for _, v := range clause.Values {
			test := ir.Binary(ir.StrictEqOp, disc, v)
			if cond == nil {
				cond = test
			} else {
				cond = ir.Binary(ir.OrOp, cond, test)
			}
		}
		if cond == nil {
			continue
		}
		chain = &ir.IfStmt{Cond: cond, Body: ir.Goto(names[i]), Else: chain}
	}
	g.emit(chain)
	g.close()

	g.push(target{kind: switchTarget, brk: g.fixed(after)})
	for i, clause := range s.List {
		g.startBlock(names[i])
		for _, item := range clause.Body {
			g.stmt(item)
		}
	}
	g.pop()
	g.startBlock(after)
}

func (g *gatherer) tryStmt(s *ir.TryStmt) {
	if ir.Contains(s, func(n ir.INode) bool {
		switch n.(type) {
		case *ir.YieldReturnStmt, *ir.YieldBreakStmt:
			return true
		}
		return false
	}) {
		ir.Errorf(s, "yield inside try statement")
	}

	try := &ir.TryStmt{Body: g.region(s.Body)}
	if s.Catch != nil {
		try.Catch = &ir.CatchClause{Param: s.Catch.Param, Body: g.region(s.Catch.Body)}
	}
	if s.Finally != nil {
		try.Finally = g.region(s.Finally)
	}
	g.emit(try)
}

// region lowers a try, catch or finally body into its own state machine. Gotos that leave the region are kept for the enclosing machine.
func (g *gatherer) region(b *ir.BlockStmt) *ir.BlockStmt {
	if !g.needsSplit(b) {
		return g.escape(b, nest{}).(*ir.BlockStmt)
	}
	state, loop := g.opts.NewName(), g.opts.NewName()
	inner := newGatherer(g.shared, g.targets)
	graph := inner.gather(b)
	return newMachine(g.opts, state, loop, false).build(graph)
}

// native appends a statement that is kept intact, except for the breaks and continues that leave it.
// A non-empty label is the label of s itself.
func (g *gatherer) native(s ir.IStmt, label string) {
	s2 := g.escape(s, nest{label: label})
	if label != "" && ir.Contains(s2, func(n ir.INode) bool {
		branch, ok := n.(*ir.BranchStmt)
		return ok && branch.Label == label
	}) {
		s2 = &ir.LabelledStmt{Label: label, Value: s2}
	}
	g.emit(s2)
}

func (g *gatherer) escape(s ir.IStmt, n nest) ir.IStmt {
	return escaper{g}.RewriteStmt(s, n)
}

// nest tracks the constructs of a native statement that a break or continue may stay within
type nest struct {
	loop      bool
	breakable bool
	label     string
}

type escaper struct {
	g *gatherer
}

func (e escaper) RewriteExpr(x ir.IExpr, n nest) ir.IExpr {
	return x
}

func (e escaper) RewriteStmt(s ir.IStmt, n nest) ir.IStmt {
	switch s := s.(type) {
	case *ir.BranchStmt:
		if s.Label == "" && (s.Tok == ir.Continue && n.loop || s.Tok == ir.Break && n.breakable) || s.Label != "" && s.Label == n.label {
			return s
		}
		return ir.Goto(e.g.branchTarget(s))
	case *ir.WhileStmt, *ir.DoWhileStmt, *ir.ForStmt, *ir.ForInStmt:
		return ir.StmtChildren[nest](e, s, nest{true, true, n.label})
	case *ir.SwitchStmt:
		return ir.StmtChildren[nest](e, s, nest{n.loop, true, n.label})
	case *ir.FuncDecl:
		return s
	}
	return ir.StmtChildren[nest](e, s, n)
}
