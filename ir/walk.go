package ir

// IVisitor represents the AST Visitor
// Each INode encountered by `Walk` is passed to `Enter`, children nodes will be ignored if the returned IVisitor is nil
type IVisitor interface {
	Enter(n INode) IVisitor
}

// VisitorFunc is an IVisitor that keeps visiting children as long as it returns true.
type VisitorFunc func(n INode) bool

func (f VisitorFunc) Enter(n INode) IVisitor {
	if f(n) {
		return f
	}
	return nil
}

// Walk traverses an AST in depth-first order, children are visited in source order
func Walk(v IVisitor, n INode) {
	if isnil(n) {
		return
	}

	if v = v.Enter(n); v == nil {
		return
	}

	switch n := n.(type) {
	case *ArrayExpr:
		walkExprs(v, n.List)
	case *BinaryExpr:
		Walk(v, n.X)
		Walk(v, n.Y)
	case *CommaExpr:
		walkExprs(v, n.List)
	case *CondExpr:
		Walk(v, n.Cond)
		Walk(v, n.X)
		Walk(v, n.Y)
	case *FuncExpr:
		Walk(v, n.Body)
	case *CallExpr:
		Walk(v, n.X)
		walkExprs(v, n.Args)
	case *ObjectExpr:
		for _, item := range n.List {
			Walk(v, item.Value)
		}
	case *DotExpr:
		Walk(v, n.X)
	case *IndexExpr:
		Walk(v, n.X)
		Walk(v, n.Index)
	case *NewExpr:
		Walk(v, n.X)
		walkExprs(v, n.Args)
	case *UnaryExpr:
		Walk(v, n.X)
	case *TemplateExpr:
		walkExprs(v, n.Args)
	case *NullExpr, *NumberExpr, *StringExpr, *BoolExpr, *RegExpExpr, *Ident, *ThisExpr, *TypeRefExpr:
		return

	case *BlockStmt:
		walkStmts(v, n.List)
	case *DoWhileStmt:
		Walk(v, n.Body)
		Walk(v, n.Cond)
	case *ExprStmt:
		Walk(v, n.Value)
	case *ForInStmt:
		Walk(v, n.Value)
		Walk(v, n.Body)
	case *ForStmt:
		Walk(v, n.Init)
		Walk(v, n.Cond)
		Walk(v, n.Post)
		Walk(v, n.Body)
	case *IfStmt:
		Walk(v, n.Cond)
		Walk(v, n.Body)
		Walk(v, n.Else)
	case *ReturnStmt:
		Walk(v, n.Value)
	case *SwitchStmt:
		Walk(v, n.Init)
		for _, clause := range n.List {
			walkExprs(v, clause.Values)
			walkStmts(v, clause.Body)
		}
	case *ThrowStmt:
		Walk(v, n.Value)
	case *TryStmt:
		Walk(v, n.Body)
		if n.Catch != nil {
			Walk(v, n.Catch.Body)
		}
		Walk(v, n.Finally)
	case *VarDecl:
		for _, item := range n.List {
			Walk(v, item.Init)
		}
	case *WhileStmt:
		Walk(v, n.Cond)
		Walk(v, n.Body)
	case *WithStmt:
		Walk(v, n.Object)
		Walk(v, n.Body)
	case *LabelledStmt:
		Walk(v, n.Value)
	case *FuncDecl:
		Walk(v, n.Body)
	case *YieldReturnStmt:
		Walk(v, n.Value)
	case *CommentStmt, *BranchStmt, *EmptyStmt, *GotoStmt, *YieldBreakStmt, *SequencePoint:
		return
	default:
		Errorf(n, "unknown node")
	}
}

func walkExprs(v IVisitor, list []IExpr) {
	for _, item := range list {
		Walk(v, item)
	}
}

func walkStmts(v IVisitor, list []IStmt) {
	for _, item := range list {
		Walk(v, item)
	}
}

// isnil catches both nil interfaces and the typed nil of optional *BlockStmt children
func isnil(n INode) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *BlockStmt:
		return n == nil
	}
	return false
}

// Contains returns true if pred holds for any node in n, without descending into nested functions.
func Contains(n INode, pred func(INode) bool) bool {
	found := false
	Walk(VisitorFunc(func(m INode) bool {
		if found {
			return false
		} else if pred(m) {
			found = true
			return false
		}
		switch m.(type) {
		case *FuncExpr, *FuncDecl:
			return m == n
		}
		return true
	}), n)
	return found
}
