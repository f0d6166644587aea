// Package printer formats a tree as JavaScript, verbose or minified, and records the output positions of sequence points.
package printer

import (
	"strings"

	"github.com/tdewolff/jsgen/ir"
)

// Recorder receives a mapping from an output position to a source position. Output lines and columns start at 1,
// a mapping without source position has an empty path and zero line and column. Mappings arrive in output order.
type Recorder interface {
	RecordLocation(outLine, outCol int, path string, srcLine, srcCol int)
}

// RecorderFunc is a function that implements Recorder.
type RecorderFunc func(outLine, outCol int, path string, srcLine, srcCol int)

func (f RecorderFunc) RecordLocation(outLine, outCol int, path string, srcLine, srcCol int) {
	f(outLine, outCol, path, srcLine, srcCol)
}

// Options are the formatting options.
type Options struct {
	Minify             bool
	AllowIntermediates bool     // print goto, yield, type references and templates instead of failing
	Recorder           Recorder // can be nil
	Indent             string   // defaults to a tab
}

// Format returns the JavaScript text of n. A merging block is formatted as a list of statements.
func Format(n ir.INode, o Options) (s string, err error) {
	defer ir.Recover(&err)
	if o.Indent == "" {
		o.Indent = "\t"
	}
	p := &printer{
		opts:          o,
		line:          1,
		stmtStart:     -1,
		prevOpEnd:     -1,
		prevRegExpEnd: -1,
	}
	switch n := n.(type) {
	case *ir.BlockStmt:
		if n.Merge {
			p.stmts(n.List)
		} else {
			p.stmt(n)
		}
	case ir.IStmt:
		p.stmt(n)
	case ir.IExpr:
		p.expr(n, ir.OpLowest, 0)
	default:
		ir.Errorf(n, "unknown node")
	}
	return string(p.buf), nil
}

type printer struct {
	opts Options
	buf  []byte

	line        int // current output line
	lineStart   int // offset in buf of the current line
	indent      int
	atLineStart bool // indentation has not yet been written
	indents     []string

	needsSemicolon bool
	stmtStart      int
	prevOp         ir.Op
	prevOpEnd      int
	prevRegExpEnd  int

	pending *ir.SequencePoint // reported at the next token
	active  *ir.SequencePoint // last reported
}

// write appends s without indentation nor source mapping
func (p *printer) write(s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			p.line++
			p.lineStart = len(p.buf) + i + 1
		}
	}
	p.buf = append(p.buf, s...)
}

// print appends a token
func (p *printer) print(s string) {
	p.flushIndent()
	if p.pending != nil {
		p.record(p.pending)
		p.pending = nil
	}
	p.write(s)
}

func (p *printer) record(sp *ir.SequencePoint) {
	p.active = sp
	if p.opts.Recorder == nil {
		return
	}
	col := len(p.buf) - p.lineStart + 1
	if sp.Loc == nil {
		p.opts.Recorder.RecordLocation(p.line, col, "", 0, 0)
	} else {
		p.opts.Recorder.RecordLocation(p.line, col, sp.Loc.Path, sp.Loc.Line, sp.Loc.Column)
	}
}

func (p *printer) flushIndent() {
	if p.atLineStart {
		p.atLineStart = false
		for len(p.indents) <= p.indent {
			p.indents = append(p.indents, strings.Repeat(p.opts.Indent, len(p.indents)))
		}
		p.write(p.indents[p.indent])
	}
}

func (p *printer) space() {
	if !p.opts.Minify {
		p.write(" ")
	}
}

func (p *printer) newline() {
	if !p.opts.Minify {
		p.write("\n")
		p.atLineStart = true
	}
}

func (p *printer) semicolon() {
	if p.opts.Minify {
		p.needsSemicolon = true
	} else {
		p.write(";")
		p.newline()
	}
}

func (p *printer) semicolonIfNeeded() {
	if p.needsSemicolon {
		p.write(";")
		p.needsSemicolon = false
	}
}

func (p *printer) spaceBeforeIdentifier() {
	n := len(p.buf)
	if 0 < n && !p.atLineStart && (isIdentifierContinue(p.buf[n-1]) || n == p.prevRegExpEnd) {
		p.write(" ")
	}
}

// spaceBeforeOperator separates operators that would otherwise merge into a different token
func (p *printer) spaceBeforeOperator(next ir.Op) {
	if p.prevOpEnd == len(p.buf) {
		prev := p.prevOp
		// "+ + y" => "+ +y"
		// "x + ++ y" => "x+ ++y"
		// "-- >" => "-- >"
		// "< ! --" => "<! --"
		if (prev == ir.AddOp || prev == ir.PosOp) && (next == ir.AddOp || next == ir.PosOp || next == ir.PreIncrOp) ||
			(prev == ir.SubOp || prev == ir.NegOp) && (next == ir.SubOp || next == ir.NegOp || next == ir.PreDecrOp) ||
			prev == ir.PostDecrOp && next == ir.GtOp ||
			prev == ir.NotOp && next == ir.PreDecrOp && 1 < len(p.buf) && p.buf[len(p.buf)-2] == '<' {
			p.write(" ")
		}
	}
}

func (p *printer) operator(op ir.Op) {
	p.spaceBeforeOperator(op)
	p.print(op.String())
	p.prevOp = op
	p.prevOpEnd = len(p.buf)
}

func (p *printer) keyword(s string) {
	p.spaceBeforeIdentifier()
	p.print(s)
}

func (p *printer) ident(name string) {
	p.spaceBeforeIdentifier()
	p.print(name)
}

func (p *printer) intermediate(n ir.INode) {
	if !p.opts.AllowIntermediates {
		ir.Errorf(n, "intermediate node in output")
	}
}

func isIdentifierContinue(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_' || c == '$' || 0x80 <= c
}
