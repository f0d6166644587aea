package lower

import (
	"go.uber.org/zap"

	"github.com/tdewolff/jsgen/ir"
)

// machine turns a block graph into a labelled loop around a switch on the state variable
type machine struct {
	opts     *Options
	state    string
	loop     string
	iterator bool

	graph *Graph
	nums  map[int]int // block index to state number
}

func newMachine(o *Options, state, loop string, iterator bool) *machine {
	return &machine{
		opts:     o,
		state:    state,
		loop:     loop,
		iterator: iterator,
	}
}

func (m *machine) build(graph *Graph) *ir.BlockStmt {
	m.graph = graph
	order := m.number()

	cases := make([]ir.CaseClause, 0, len(order)+1)
	for n, i := range order {
		stmts := graph.Blocks[i].Stmts
		if m.opts.Fallthrough && m.jumpsTo(stmts, n+1) {
			stmts = stmts[:len(stmts)-1]
		}
		list, _ := ir.RewriteList[int](m, stmts, n)

		var body []ir.IStmt
		if m.iterator {
			body = append(body, m.setState(-1))
		}
		body = append(body, list...)
		cases = append(cases, ir.CaseClause{
			Values: []ir.IExpr{ir.Number(float64(n))},
			Body:   []ir.IStmt{ir.Block(body...)},
		})
	}
	if m.iterator {
		cases = append(cases, ir.CaseClause{
			Values: []ir.IExpr{nil},
			Body:   []ir.IStmt{ir.Block(&ir.BranchStmt{Tok: ir.Break, Label: m.loop})},
		})
	}
	Logger().Debug("state machine",
		zap.String("state", m.state),
		zap.Int("blocks", len(graph.Blocks)),
		zap.Int("states", len(order)),
		zap.Bool("iterator", m.iterator),
	)

	list := []ir.IStmt{ir.Var(m.state, ir.Number(0))}
	list = append(list, graph.Hoisted...)
	list = append(list, &ir.LabelledStmt{
		Label: m.loop,
		Value: &ir.ForStmt{Body: ir.Block(&ir.SwitchStmt{Init: ir.Name(m.state), List: cases})},
	})
	if m.iterator {
		list = append(list, &ir.ReturnStmt{Value: &ir.BoolExpr{Value: false}})
	}
	return ir.Block(list...)
}

// number assigns state numbers to the reachable blocks in the order their jumps are first seen, breadth first from the entry
func (m *machine) number() []int {
	entry := m.graph.Index[m.graph.Entry]
	m.nums = map[int]int{entry: 0}
	order := []int{entry}
	for k := 0; k < len(order); k++ {
		for _, s := range m.graph.Blocks[order[k]].Stmts {
			ir.Walk(ir.VisitorFunc(func(n ir.INode) bool {
				var label string
				switch n := n.(type) {
				case *ir.GotoStmt:
					label = n.Label
				case *ir.YieldReturnStmt:
					label = m.graph.Resume[n]
				case *ir.FuncExpr, *ir.FuncDecl:
					return false
				default:
					return true
				}
				if i, ok := m.graph.Index[label]; ok {
					if _, ok := m.nums[i]; !ok {
						m.nums[i] = len(order)
						order = append(order, i)
					}
				}
				return true
			}), s)
		}
	}
	return order
}

// jumpsTo returns true if the last statement of stmts jumps to state n
func (m *machine) jumpsTo(stmts []ir.IStmt, n int) bool {
	if len(stmts) == 0 {
		return false
	}
	jump, ok := stmts[len(stmts)-1].(*ir.GotoStmt)
	if !ok {
		return false
	}
	i, ok := m.graph.Index[jump.Label]
	if !ok {
		return false
	}
	num, ok := m.nums[i]
	return ok && num == n
}

func (m *machine) setState(n int) ir.IStmt {
	return ir.Expr(ir.Assign(ir.Name(m.state), ir.Number(float64(n))))
}

func (m *machine) RewriteExpr(e ir.IExpr, n int) ir.IExpr {
	return e
}

func (m *machine) RewriteStmt(s ir.IStmt, n int) ir.IStmt {
	switch s := s.(type) {
	case *ir.GotoStmt:
		if s.Label == Exit {
			return &ir.BranchStmt{Tok: ir.Break, Label: m.loop}
		}
		i, ok := m.graph.Index[s.Label]
		if !ok {
			return s // leaves this machine
		}
		return ir.Merged(m.setState(m.nums[i]), &ir.BranchStmt{Tok: ir.Continue, Label: m.loop})
	case *ir.YieldReturnStmt:
		next := m.nums[m.graph.Index[m.graph.Resume[s]]]
		list := []ir.IStmt{}
		if s.Value != nil {
			list = append(list, ir.Expr(m.opts.SetCurrent(s.Value)))
		}
		list = append(list, m.setState(next), &ir.ReturnStmt{Value: &ir.BoolExpr{Value: true}})
		return ir.Merged(list...)
	case *ir.YieldBreakStmt:
		return &ir.ReturnStmt{Value: &ir.BoolExpr{Value: false}}
	case *ir.FuncDecl:
		return s
	}
	return ir.StmtChildren[int](m, s, n)
}
