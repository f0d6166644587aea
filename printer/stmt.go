package printer

import (
	"strings"

	"github.com/tdewolff/jsgen/ir"
)

// stmts prints a statement list, merging blocks are spliced in
func (p *printer) stmts(list []ir.IStmt) {
	for _, item := range list {
		if block, ok := item.(*ir.BlockStmt); ok && block.Merge {
			p.stmts(block.List)
			continue
		}
		p.stmt(item)
	}
}

func (p *printer) block(list []ir.IStmt) {
	if len(list) == 0 {
		p.print("{}")
		return
	}
	p.print("{")
	p.newline()
	p.indent++
	p.stmts(list)
	p.indent--
	p.needsSemicolon = false
	p.print("}")
}

// body prints the body of a compound statement
func (p *printer) body(s ir.IStmt) {
	if block, ok := s.(*ir.BlockStmt); ok {
		p.space()
		p.block(block.List)
		p.newline()
	} else {
		p.newline()
		p.indent++
		p.stmt(s)
		p.indent--
	}
}

func (p *printer) stmt(s ir.IStmt) {
	if sp, ok := s.(*ir.SequencePoint); ok {
		p.pending = sp
		return
	}
	p.semicolonIfNeeded()

	switch s := s.(type) {
	case *ir.BlockStmt:
		p.block(s.List)
		p.newline()
	case *ir.CommentStmt:
		if p.opts.Minify {
			p.print("/*" + strings.ReplaceAll(s.Text, "*/", "* /") + "*/")
		} else {
			for _, line := range strings.Split(s.Text, "\n") {
				p.print("// " + line)
				p.newline()
			}
		}
	case *ir.BranchStmt:
		p.keyword(s.Tok.String())
		if s.Label != "" {
			p.space()
			p.ident(s.Label)
		}
		p.semicolon()
	case *ir.DoWhileStmt:
		p.keyword("do")
		if block, ok := s.Body.(*ir.BlockStmt); ok {
			p.space()
			p.block(block.List)
			p.space()
		} else {
			p.newline()
			p.indent++
			p.stmt(s.Body)
			p.semicolonIfNeeded()
			p.indent--
		}
		p.keyword("while")
		p.space()
		p.print("(")
		p.expr(s.Cond, ir.OpLowest, 0)
		p.print(")")
		p.semicolon()
	case *ir.EmptyStmt:
		p.print(";")
		p.newline()
	case *ir.ExprStmt:
		p.flushIndent()
		p.stmtStart = len(p.buf)
		p.expr(s.Value, ir.OpLowest, 0)
		p.semicolon()
	case *ir.ForInStmt:
		p.keyword("for")
		p.space()
		p.print("(")
		if s.Decl {
			p.keyword("var")
		}
		p.ident(s.Var)
		p.space()
		p.keyword("in")
		p.space()
		p.expr(s.Value, ir.OpLowest, 0)
		p.print(")")
		p.body(s.Body)
	case *ir.ForStmt:
		p.keyword("for")
		p.space()
		p.print("(")
		switch init := s.Init.(type) {
		case nil:
		case *ir.VarDecl:
			p.keyword("var")
			p.decls(init.List, forbidIn)
		case *ir.ExprStmt:
			p.expr(init.Value, ir.OpLowest, forbidIn)
		default:
			ir.Errorf(s, "invalid for initializer %T", init)
		}
		p.print(";")
		if s.Cond != nil {
			p.space()
			p.expr(s.Cond, ir.OpLowest, 0)
		}
		p.print(";")
		if s.Post != nil {
			p.space()
			p.expr(s.Post, ir.OpLowest, 0)
		}
		p.print(")")
		p.body(s.Body)
	case *ir.IfStmt:
		p.ifStmt(s)
	case *ir.ReturnStmt:
		p.keyword("return")
		if s.Value != nil {
			p.space()
			p.expr(s.Value, ir.OpLowest, 0)
		}
		p.semicolon()
	case *ir.SwitchStmt:
		p.switchStmt(s)
	case *ir.ThrowStmt:
		p.keyword("throw")
		p.space()
		p.expr(s.Value, ir.OpLowest, 0)
		p.semicolon()
	case *ir.TryStmt:
		p.keyword("try")
		p.space()
		p.block(s.Body.List)
		if s.Catch != nil {
			p.space()
			p.keyword("catch")
			p.space()
			p.print("(")
			p.ident(s.Catch.Param)
			p.print(")")
			p.space()
			p.block(s.Catch.Body.List)
		}
		if s.Finally != nil {
			p.space()
			p.keyword("finally")
			p.space()
			p.block(s.Finally.List)
		}
		p.newline()
	case *ir.VarDecl:
		p.keyword("var")
		p.decls(s.List, 0)
		p.semicolon()
	case *ir.WhileStmt:
		p.keyword("while")
		p.space()
		p.print("(")
		p.expr(s.Cond, ir.OpLowest, 0)
		p.print(")")
		p.body(s.Body)
	case *ir.WithStmt:
		p.keyword("with")
		p.space()
		p.print("(")
		p.expr(s.Object, ir.OpLowest, 0)
		p.print(")")
		p.body(s.Body)
	case *ir.LabelledStmt:
		p.ident(s.Label)
		p.print(":")
		p.space()
		p.stmt(s.Value)
	case *ir.FuncDecl:
		p.keyword("function")
		p.ident(s.Name)
		p.function(s.Params, s.Body)
		p.newline()
	case *ir.GotoStmt:
		p.intermediate(s)
		p.keyword("goto")
		p.ident(s.Label)
		p.semicolon()
	case *ir.YieldReturnStmt:
		p.intermediate(s)
		p.keyword("yield")
		p.keyword("return")
		if s.Value != nil {
			p.space()
			p.expr(s.Value, ir.OpLowest, 0)
		}
		p.semicolon()
	case *ir.YieldBreakStmt:
		p.intermediate(s)
		p.keyword("yield")
		p.keyword("break")
		p.semicolon()
	case nil:
		ir.Errorf(nil, "missing statement")
	default:
		ir.Errorf(s, "unknown statement")
	}
}

func (p *printer) decls(list []ir.Declarator, flags int) {
	for i, item := range list {
		if i != 0 {
			p.print(",")
			p.space()
		}
		p.ident(item.Name)
		if item.Init != nil {
			p.space()
			p.print("=")
			p.space()
			p.expr(item.Init, ir.OpComma, flags)
		}
	}
}

// wrapToAvoidAmbiguousElse returns true if s ends in an if without else, which would take the else that follows
func wrapToAvoidAmbiguousElse(s ir.IStmt) bool {
	for {
		switch cur := s.(type) {
		case *ir.IfStmt:
			if cur.Else == nil {
				return true
			}
			s = cur.Else
		case *ir.ForStmt:
			s = cur.Body
		case *ir.ForInStmt:
			s = cur.Body
		case *ir.WhileStmt:
			s = cur.Body
		case *ir.WithStmt:
			s = cur.Body
		case *ir.LabelledStmt:
			s = cur.Value
		default:
			return false
		}
	}
}

func (p *printer) ifStmt(s *ir.IfStmt) {
	p.keyword("if")
	p.space()
	p.print("(")
	p.expr(s.Cond, ir.OpLowest, 0)
	p.print(")")

	if block, ok := s.Body.(*ir.BlockStmt); ok {
		p.space()
		p.block(block.List)
		if s.Else != nil {
			p.space()
		} else {
			p.newline()
		}
	} else if s.Else != nil && wrapToAvoidAmbiguousElse(s.Body) {
		p.space()
		p.block([]ir.IStmt{s.Body})
		p.space()
	} else {
		p.newline()
		p.indent++
		p.stmt(s.Body)
		p.indent--
	}

	if s.Else != nil {
		p.semicolonIfNeeded()
		p.keyword("else")
		if block, ok := s.Else.(*ir.BlockStmt); ok {
			p.space()
			p.block(block.List)
			p.newline()
		} else if elseIf, ok := s.Else.(*ir.IfStmt); ok {
			p.space()
			p.ifStmt(elseIf)
		} else {
			p.newline()
			p.indent++
			p.stmt(s.Else)
			p.indent--
		}
	}
}

func (p *printer) switchStmt(s *ir.SwitchStmt) {
	p.keyword("switch")
	p.space()
	p.print("(")
	p.expr(s.Init, ir.OpLowest, 0)
	p.print(")")
	p.space()
	p.print("{")
	p.newline()
	p.indent++
	for _, clause := range s.List {
		for i, v := range clause.Values {
			p.semicolonIfNeeded()
			if i != 0 {
				p.newline()
			}
			if v == nil {
				p.keyword("default")
			} else {
				p.keyword("case")
				p.space()
				p.expr(v, ir.OpLowest, 0)
			}
			p.print(":")
		}
		if len(clause.Body) == 1 {
			if block, ok := clause.Body[0].(*ir.BlockStmt); ok && !block.Merge {
				p.space()
				p.block(block.List)
				p.newline()
				continue
			}
		}
		p.newline()
		p.indent++
		p.stmts(clause.Body)
		p.indent--
	}
	p.indent--
	p.needsSemicolon = false
	p.print("}")
	p.newline()
}
