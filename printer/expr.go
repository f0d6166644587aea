package printer

import (
	"math"
	"strconv"

	"github.com/tdewolff/parse/v2/js"

	"github.com/tdewolff/jsgen/ir"
)

const (
	forbidCall = 1 << iota
	forbidIn
	callTarget
	memberTarget
)

// expr prints e in a position of precedence level, it is parenthesized when its own precedence is not higher
func (p *printer) expr(e ir.IExpr, level ir.OpPrec, flags int) {
	switch e := e.(type) {
	case *ir.ArrayExpr:
		p.print("[")
		for i, item := range e.List {
			if i != 0 {
				p.print(",")
				p.space()
			}
			if item == nil {
				if i == len(e.List)-1 {
					p.print(",")
				}
				continue
			}
			p.expr(item, ir.OpComma, 0)
		}
		p.print("]")
	case *ir.BinaryExpr:
		prec := e.Op.Prec()
		if !e.Op.IsBinary() {
			ir.Errorf(e, "invalid binary operator %v", e.Op)
		}
		wrap := level >= prec || e.Op == ir.InOp && flags&forbidIn != 0
		if wrap {
			p.print("(")
			flags &^= forbidIn
		}
		left, right := prec-1, prec
		if e.Op.IsAssign() {
			left, right = prec, prec-1
		}
		p.expr(e.X, left, flags&forbidIn)
		p.space()
		if e.Op.IsKeyword() {
			p.keyword(e.Op.String())
		} else {
			p.operator(e.Op)
		}
		p.space()
		p.expr(e.Y, right, flags&forbidIn)
		if wrap {
			p.print(")")
		}
	case *ir.CommaExpr:
		wrap := level >= ir.OpComma
		if wrap {
			p.print("(")
			flags &^= forbidIn
		}
		for i, item := range e.List {
			if i != 0 {
				p.print(",")
				p.space()
			}
			p.expr(item, ir.OpComma, flags&forbidIn)
		}
		if wrap {
			p.print(")")
		}
	case *ir.CondExpr:
		p.print("(")
		p.expr(e.Cond, ir.OpCond, 0)
		p.space()
		p.print("?")
		p.space()
		p.expr(e.X, ir.OpComma, 0)
		p.space()
		p.print(":")
		p.space()
		p.expr(e.Y, ir.OpComma, 0)
		p.print(")")
	case *ir.NullExpr:
		p.keyword("null")
	case *ir.NumberExpr:
		v := e.Value
		neg := math.Signbit(v) && !math.IsNaN(v)
		wrap := neg && level >= ir.OpPrefix || flags&memberTarget != 0
		if wrap {
			p.print("(")
		}
		if neg {
			p.operator(ir.NegOp)
			v = -v
		}
		p.keyword(formatNumber(v))
		if wrap {
			p.print(")")
		}
	case *ir.StringExpr:
		p.print(quote(e.Value))
	case *ir.BoolExpr:
		if e.Value {
			p.keyword("true")
		} else {
			p.keyword("false")
		}
	case *ir.RegExpExpr:
		if n := len(p.buf); 0 < n && p.buf[n-1] == '/' {
			p.write(" ")
		}
		p.print("/" + e.Pattern + "/" + e.Flags)
		p.prevRegExpEnd = len(p.buf)
	case *ir.FuncExpr:
		p.flushIndent()
		wrap := p.stmtStart == len(p.buf) || flags&callTarget != 0
		if wrap {
			p.print("(")
		}
		p.keyword("function")
		if e.Name != "" {
			p.ident(e.Name)
		}
		p.function(e.Params, e.Body)
		if wrap {
			p.print(")")
		}
	case *ir.Ident:
		p.ident(e.Name)
	case *ir.CallExpr:
		wrap := level >= ir.OpNew || flags&forbidCall != 0
		if wrap {
			p.print("(")
		}
		p.expr(e.X, ir.OpPostfix, callTarget)
		p.args(e.Args)
		if wrap {
			p.print(")")
		}
	case *ir.ObjectExpr:
		p.flushIndent()
		wrap := p.stmtStart == len(p.buf)
		if wrap {
			p.print("(")
		}
		p.print("{")
		for i, item := range e.List {
			if i != 0 {
				p.print(",")
				p.space()
			}
			if js.AsIdentifierName([]byte(item.Name)) {
				p.ident(item.Name)
			} else {
				p.print(quote(item.Name))
			}
			p.print(":")
			p.space()
			p.expr(item.Value, ir.OpComma, 0)
		}
		p.print("}")
		if wrap {
			p.print(")")
		}
	case *ir.DotExpr:
		p.expr(e.X, ir.OpPostfix, flags&forbidCall|memberTarget)
		if js.AsIdentifierName([]byte(e.Name)) {
			p.print(".")
			p.print(e.Name)
		} else {
			p.print("[")
			p.print(quote(e.Name))
			p.print("]")
		}
	case *ir.IndexExpr:
		p.expr(e.X, ir.OpPostfix, flags&forbidCall|memberTarget)
		p.print("[")
		p.expr(e.Index, ir.OpLowest, 0)
		p.print("]")
	case *ir.NewExpr:
		wrap := level >= ir.OpPostfix
		if wrap {
			p.print("(")
		}
		p.keyword("new")
		p.space()
		p.expr(e.X, ir.OpNew, forbidCall)
		p.args(e.Args)
		if wrap {
			p.print(")")
		}
	case *ir.UnaryExpr:
		prec := e.Op.Prec()
		if !e.Op.IsUnary() {
			ir.Errorf(e, "invalid unary operator %v", e.Op)
		}
		wrap := level >= prec
		if wrap {
			p.print("(")
		}
		if e.Op.IsPostfix() {
			p.expr(e.X, ir.OpPostfix-1, 0)
			p.operator(e.Op)
		} else {
			if e.Op.IsKeyword() {
				p.keyword(e.Op.String())
				p.space()
			} else {
				p.operator(e.Op)
			}
			p.expr(e.X, ir.OpPrefix-1, 0)
		}
		if wrap {
			p.print(")")
		}
	case *ir.ThisExpr:
		p.keyword("this")
	case *ir.TypeRefExpr:
		p.intermediate(e)
		p.print("{" + e.Name + "}")
	case *ir.TemplateExpr:
		p.intermediate(e)
		p.template(e, level)
	case nil:
		ir.Errorf(nil, "missing expression")
	default:
		ir.Errorf(e, "unknown expression")
	}
}

func (p *printer) args(args []ir.IExpr) {
	p.print("(")
	for i, arg := range args {
		if i != 0 {
			p.print(",")
			p.space()
		}
		p.expr(arg, ir.OpComma, 0)
	}
	p.print(")")
}

// function prints the parameters and body of a function. The mapping that was active before the body is reported
// again after its closing brace.
func (p *printer) function(params []string, body *ir.BlockStmt) {
	p.print("(")
	for i, param := range params {
		if i != 0 {
			p.print(",")
			p.space()
		}
		p.ident(param)
	}
	p.print(")")
	p.space()

	saved := p.active
	if body == nil {
		p.print("{}")
	} else {
		p.block(body.List)
	}
	if saved != nil && p.active != saved {
		p.pending = nil
		p.record(saved)
	}
}

// template splices the arguments into the format at {0}, {1}, ...
func (p *printer) template(e *ir.TemplateExpr, level ir.OpPrec) {
	wrap := level > ir.OpLowest
	if wrap {
		p.print("(")
	}
	format := e.Format
	start := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '{' {
			continue
		}
		j := i + 1
		for j < len(format) && '0' <= format[j] && format[j] <= '9' {
			j++
		}
		if j == i+1 || len(format) <= j || format[j] != '}' {
			continue
		}
		n, _ := strconv.Atoi(format[i+1 : j])
		if len(e.Args) <= n {
			ir.Errorf(e, "template argument {%d} out of range", n)
		}
		if start < i {
			p.print(format[start:i])
		}
		p.expr(e.Args[n], ir.OpPrefix, 0)
		start = j + 1
		i = j
	}
	if start < len(format) {
		p.print(format[start:])
	}
	if wrap {
		p.print(")")
	}
}
