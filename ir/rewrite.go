package ir

// Rewriter rewrites a tree bottom-up or top-down as it sees fit. Implementations handle the
// nodes they are interested in and delegate the others to ExprChildren and StmtChildren.
// Returning the argument itself means the subtree is unchanged.
type Rewriter[T any] interface {
	RewriteExpr(e IExpr, data T) IExpr
	RewriteStmt(s IStmt, data T) IStmt
}

// ExprChildren rewrites the children of e with r. It returns e itself when no child changed,
// otherwise a new node built from the new children.
func ExprChildren[T any](r Rewriter[T], e IExpr, data T) IExpr {
	switch e := e.(type) {
	case *ArrayExpr:
		if list, ok := rewriteExprs(r, e.List, data); ok {
			return &ArrayExpr{list}
		}
	case *BinaryExpr:
		x, y := rewriteExpr(r, e.X, data), rewriteExpr(r, e.Y, data)
		if x != e.X || y != e.Y {
			return &BinaryExpr{e.Op, x, y}
		}
	case *CommaExpr:
		if list, ok := rewriteExprs(r, e.List, data); ok {
			return &CommaExpr{list}
		}
	case *CondExpr:
		cond, x, y := rewriteExpr(r, e.Cond, data), rewriteExpr(r, e.X, data), rewriteExpr(r, e.Y, data)
		if cond != e.Cond || x != e.X || y != e.Y {
			return &CondExpr{cond, x, y}
		}
	case *FuncExpr:
		if body := rewriteBlock(r, e.Body, data); body != e.Body {
			return &FuncExpr{e.Name, e.Params, body}
		}
	case *CallExpr:
		x := rewriteExpr(r, e.X, data)
		args, ok := rewriteExprs(r, e.Args, data)
		if x != e.X || ok {
			return &CallExpr{x, args}
		}
	case *ObjectExpr:
		var list []Property
		for i, item := range e.List {
			value := rewriteExpr(r, item.Value, data)
			if value != item.Value && list == nil {
				list = make([]Property, len(e.List))
				copy(list, e.List[:i])
			}
			if list != nil {
				list[i] = Property{item.Name, value}
			}
		}
		if list != nil {
			return &ObjectExpr{list}
		}
	case *DotExpr:
		if x := rewriteExpr(r, e.X, data); x != e.X {
			return &DotExpr{x, e.Name}
		}
	case *IndexExpr:
		x, index := rewriteExpr(r, e.X, data), rewriteExpr(r, e.Index, data)
		if x != e.X || index != e.Index {
			return &IndexExpr{x, index}
		}
	case *NewExpr:
		x := rewriteExpr(r, e.X, data)
		args, ok := rewriteExprs(r, e.Args, data)
		if x != e.X || ok {
			return &NewExpr{x, args}
		}
	case *UnaryExpr:
		if x := rewriteExpr(r, e.X, data); x != e.X {
			return &UnaryExpr{e.Op, x}
		}
	case *TemplateExpr:
		if args, ok := rewriteExprs(r, e.Args, data); ok {
			return &TemplateExpr{e.Format, args}
		}
	case *NullExpr, *NumberExpr, *StringExpr, *BoolExpr, *RegExpExpr, *Ident, *ThisExpr, *TypeRefExpr:
	default:
		Errorf(e, "unknown expression")
	}
	return e
}

// StmtChildren rewrites the children of s with r. It returns s itself when no child changed,
// otherwise a new node built from the new children. Rewritten list elements that are merging
// blocks are spliced into the list.
func StmtChildren[T any](r Rewriter[T], s IStmt, data T) IStmt {
	switch s := s.(type) {
	case *BlockStmt:
		if list, ok := RewriteList(r, s.List, data); ok {
			return &BlockStmt{list, s.Merge}
		}
	case *DoWhileStmt:
		body, cond := rewriteStmt(r, s.Body, data), rewriteExpr(r, s.Cond, data)
		if body != s.Body || cond != s.Cond {
			return &DoWhileStmt{body, cond}
		}
	case *ExprStmt:
		if value := rewriteExpr(r, s.Value, data); value != s.Value {
			return &ExprStmt{value}
		}
	case *ForInStmt:
		value, body := rewriteExpr(r, s.Value, data), rewriteStmt(r, s.Body, data)
		if value != s.Value || body != s.Body {
			return &ForInStmt{s.Var, s.Decl, value, body}
		}
	case *ForStmt:
		init := rewriteStmt(r, s.Init, data)
		cond, post := rewriteExpr(r, s.Cond, data), rewriteExpr(r, s.Post, data)
		body := rewriteStmt(r, s.Body, data)
		if init != s.Init || cond != s.Cond || post != s.Post || body != s.Body {
			return &ForStmt{init, cond, post, body}
		}
	case *IfStmt:
		cond := rewriteExpr(r, s.Cond, data)
		body, els := rewriteStmt(r, s.Body, data), rewriteStmt(r, s.Else, data)
		if cond != s.Cond || body != s.Body || els != s.Else {
			return &IfStmt{cond, body, els}
		}
	case *ReturnStmt:
		if value := rewriteExpr(r, s.Value, data); value != s.Value {
			return &ReturnStmt{value}
		}
	case *SwitchStmt:
		init := rewriteExpr(r, s.Init, data)
		var list []CaseClause
		for i, clause := range s.List {
			values, okValues := rewriteExprs(r, clause.Values, data)
			body, okBody := RewriteList(r, clause.Body, data)
			if (okValues || okBody) && list == nil {
				list = make([]CaseClause, len(s.List))
				copy(list, s.List[:i])
			}
			if list != nil {
				list[i] = CaseClause{values, body}
			}
		}
		if init != s.Init || list != nil {
			if list == nil {
				list = s.List
			}
			return &SwitchStmt{init, list}
		}
	case *ThrowStmt:
		if value := rewriteExpr(r, s.Value, data); value != s.Value {
			return &ThrowStmt{value}
		}
	case *TryStmt:
		body := rewriteBlock(r, s.Body, data)
		catch := s.Catch
		if catch != nil {
			if catchBody := rewriteBlock(r, catch.Body, data); catchBody != catch.Body {
				catch = &CatchClause{catch.Param, catchBody}
			}
		}
		finally := rewriteBlock(r, s.Finally, data)
		if body != s.Body || catch != s.Catch || finally != s.Finally {
			return &TryStmt{body, catch, finally}
		}
	case *VarDecl:
		var list []Declarator
		for i, item := range s.List {
			init := rewriteExpr(r, item.Init, data)
			if init != item.Init && list == nil {
				list = make([]Declarator, len(s.List))
				copy(list, s.List[:i])
			}
			if list != nil {
				list[i] = Declarator{item.Name, init}
			}
		}
		if list != nil {
			return &VarDecl{list}
		}
	case *WhileStmt:
		cond, body := rewriteExpr(r, s.Cond, data), rewriteStmt(r, s.Body, data)
		if cond != s.Cond || body != s.Body {
			return &WhileStmt{cond, body}
		}
	case *WithStmt:
		object, body := rewriteExpr(r, s.Object, data), rewriteStmt(r, s.Body, data)
		if object != s.Object || body != s.Body {
			return &WithStmt{object, body}
		}
	case *LabelledStmt:
		if value := rewriteStmt(r, s.Value, data); value != s.Value {
			return &LabelledStmt{s.Label, value}
		}
	case *FuncDecl:
		if body := rewriteBlock(r, s.Body, data); body != s.Body {
			return &FuncDecl{s.Name, s.Params, body}
		}
	case *YieldReturnStmt:
		if value := rewriteExpr(r, s.Value, data); value != s.Value {
			return &YieldReturnStmt{value}
		}
	case *CommentStmt, *BranchStmt, *EmptyStmt, *GotoStmt, *YieldBreakStmt, *SequencePoint:
	default:
		Errorf(s, "unknown statement")
	}
	return s
}

// RewriteList rewrites every statement of list with r. Elements rewritten into a merging
// block are replaced by the block's statements and elements rewritten into nil are dropped.
// It returns the original list and false when nothing changed.
func RewriteList[T any](r Rewriter[T], list []IStmt, data T) ([]IStmt, bool) {
	var out []IStmt
	changed := false
	for i, item := range list {
		s := r.RewriteStmt(item, data)
		if s == item {
			if changed {
				out = append(out, s)
			}
			continue
		}
		if !changed {
			changed = true
			out = make([]IStmt, i, len(list))
			copy(out, list[:i])
		}
		out = appendStmt(out, s)
	}
	if !changed {
		return list, false
	}
	return out, true
}

// Flatten returns list with merging blocks spliced in recursively.
func Flatten(list []IStmt) []IStmt {
	out := make([]IStmt, 0, len(list))
	for _, item := range list {
		out = appendStmt(out, item)
	}
	return out
}

func appendStmt(list []IStmt, s IStmt) []IStmt {
	if s == nil {
		return list
	} else if block, ok := s.(*BlockStmt); ok && block.Merge {
		for _, item := range block.List {
			list = appendStmt(list, item)
		}
		return list
	}
	return append(list, s)
}

func rewriteExpr[T any](r Rewriter[T], e IExpr, data T) IExpr {
	if e == nil {
		return nil
	}
	return r.RewriteExpr(e, data)
}

func rewriteStmt[T any](r Rewriter[T], s IStmt, data T) IStmt {
	if s == nil {
		return nil
	}
	return r.RewriteStmt(s, data)
}

// rewriteBlock rewrites a block that must stay a block, a statement replacing it is wrapped
func rewriteBlock[T any](r Rewriter[T], b *BlockStmt, data T) *BlockStmt {
	if b == nil {
		return nil
	}
	s := r.RewriteStmt(b, data)
	if s == IStmt(b) {
		return b
	} else if block, ok := s.(*BlockStmt); ok {
		if block.Merge {
			return &BlockStmt{List: block.List}
		}
		return block
	} else if s == nil {
		return &BlockStmt{}
	}
	return &BlockStmt{List: []IStmt{s}}
}

func rewriteExprs[T any](r Rewriter[T], list []IExpr, data T) ([]IExpr, bool) {
	var out []IExpr
	for i, item := range list {
		e := rewriteExpr(r, item, data)
		if e != item && out == nil {
			out = make([]IExpr, len(list))
			copy(out, list[:i])
		}
		if out != nil {
			out[i] = e
		}
	}
	if out == nil {
		return list, false
	}
	return out, true
}
