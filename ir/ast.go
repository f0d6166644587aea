// Package ir is the target-neutral tree that the lowering and printing passes operate on.
package ir

// INode is either an IExpr or an IStmt.
type INode interface {
	node()
}

// IExpr is an expression node.
type IExpr interface {
	INode
	exprNode()
}

// IStmt is a statement node.
type IStmt interface {
	INode
	stmtNode()
}

// Scope is a node that introduces bindings: *FuncExpr, *FuncDecl or *CatchClause.
type Scope interface {
	scopeNode()
}

// Location is a position in the original source, lines and columns start at 1.
type Location struct {
	Path   string
	Line   int
	Column int
}

////////////////////////////////////////////////////////////////

type ArrayExpr struct {
	List []IExpr
}

type BinaryExpr struct {
	Op   Op
	X, Y IExpr
}

type CommaExpr struct {
	List []IExpr
}

type CondExpr struct {
	Cond, X, Y IExpr
}

type NullExpr struct{}

type NumberExpr struct {
	Value float64
}

type StringExpr struct {
	Value string
}

type BoolExpr struct {
	Value bool
}

// RegExpExpr is a regular expression literal, use NewRegExp to validate the pattern.
type RegExpExpr struct {
	Pattern string
	Flags   string
}

type FuncExpr struct {
	Name   string // can be empty
	Params []string
	Body   *BlockStmt
}

type Ident struct {
	Name string
}

type CallExpr struct {
	X    IExpr
	Args []IExpr
}

type Property struct {
	Name  string
	Value IExpr
}

type ObjectExpr struct {
	List []Property
}

// DotExpr is the member access X.Name.
type DotExpr struct {
	X    IExpr
	Name string
}

// IndexExpr is the computed member access X[Index].
type IndexExpr struct {
	X     IExpr
	Index IExpr
}

type NewExpr struct {
	X    IExpr
	Args []IExpr
}

type UnaryExpr struct {
	Op Op
	X  IExpr
}

type ThisExpr struct{}

// TypeRefExpr is a placeholder for a type that is not yet resolved. It is intermediate only.
type TypeRefExpr struct {
	Name string
}

// TemplateExpr splices its arguments into Format at the positions {0}, {1}, ... It is intermediate only.
type TemplateExpr struct {
	Format string
	Args   []IExpr
}

func (n *ArrayExpr) node()    {}
func (n *BinaryExpr) node()   {}
func (n *CommaExpr) node()    {}
func (n *CondExpr) node()     {}
func (n *NullExpr) node()     {}
func (n *NumberExpr) node()   {}
func (n *StringExpr) node()   {}
func (n *BoolExpr) node()     {}
func (n *RegExpExpr) node()   {}
func (n *FuncExpr) node()     {}
func (n *Ident) node()        {}
func (n *CallExpr) node()     {}
func (n *ObjectExpr) node()   {}
func (n *DotExpr) node()      {}
func (n *IndexExpr) node()    {}
func (n *NewExpr) node()      {}
func (n *UnaryExpr) node()    {}
func (n *ThisExpr) node()     {}
func (n *TypeRefExpr) node()  {}
func (n *TemplateExpr) node() {}

func (n *ArrayExpr) exprNode()    {}
func (n *BinaryExpr) exprNode()   {}
func (n *CommaExpr) exprNode()    {}
func (n *CondExpr) exprNode()     {}
func (n *NullExpr) exprNode()     {}
func (n *NumberExpr) exprNode()   {}
func (n *StringExpr) exprNode()   {}
func (n *BoolExpr) exprNode()     {}
func (n *RegExpExpr) exprNode()   {}
func (n *FuncExpr) exprNode()     {}
func (n *Ident) exprNode()        {}
func (n *CallExpr) exprNode()     {}
func (n *ObjectExpr) exprNode()   {}
func (n *DotExpr) exprNode()      {}
func (n *IndexExpr) exprNode()    {}
func (n *NewExpr) exprNode()      {}
func (n *UnaryExpr) exprNode()    {}
func (n *ThisExpr) exprNode()     {}
func (n *TypeRefExpr) exprNode()  {}
func (n *TemplateExpr) exprNode() {}

////////////////////////////////////////////////////////////////

// BlockStmt is a statement list. When Merge is set, a rewrite that produces it inside another list splices its statements into that list.
type BlockStmt struct {
	List  []IStmt
	Merge bool
}

type CommentStmt struct {
	Text string
}

// BranchTok distinguishes break from continue.
type BranchTok int

const (
	Break BranchTok = iota
	Continue
)

func (tok BranchTok) String() string {
	if tok == Continue {
		return "continue"
	}
	return "break"
}

type BranchStmt struct {
	Tok   BranchTok
	Label string // can be empty
}

type DoWhileStmt struct {
	Body IStmt
	Cond IExpr
}

type EmptyStmt struct{}

type ExprStmt struct {
	Value IExpr
}

// ForInStmt is for (var Var in Value) Body, or for (Var in Value) Body when Decl is false.
type ForInStmt struct {
	Var   string
	Decl  bool
	Value IExpr
	Body  IStmt
}

type ForStmt struct {
	Init IStmt // can be nil, *VarDecl or *ExprStmt
	Cond IExpr // can be nil
	Post IExpr // can be nil
	Body IStmt
}

type IfStmt struct {
	Cond IExpr
	Body IStmt
	Else IStmt // can be nil
}

type ReturnStmt struct {
	Value IExpr // can be nil
}

// CaseClause is a switch section, a nil element in Values stands for default.
type CaseClause struct {
	Values []IExpr
	Body   []IStmt
}

// IsDefault returns true if the section contains the default label.
func (c CaseClause) IsDefault() bool {
	for _, v := range c.Values {
		if v == nil {
			return true
		}
	}
	return false
}

type SwitchStmt struct {
	Init IExpr
	List []CaseClause
}

type ThrowStmt struct {
	Value IExpr
}

type CatchClause struct {
	Param string
	Body  *BlockStmt
}

type TryStmt struct {
	Body    *BlockStmt
	Catch   *CatchClause // can be nil
	Finally *BlockStmt   // can be nil
}

type Declarator struct {
	Name string
	Init IExpr // can be nil
}

type VarDecl struct {
	List []Declarator
}

type WhileStmt struct {
	Cond IExpr
	Body IStmt
}

type WithStmt struct {
	Object IExpr
	Body   IStmt
}

type LabelledStmt struct {
	Label string
	Value IStmt
}

type FuncDecl struct {
	Name   string
	Params []string
	Body   *BlockStmt
}

// GotoStmt transfers control to a label. It is intermediate only.
type GotoStmt struct {
	Label string
}

// YieldReturnStmt suspends an iterator with a value. It is intermediate only.
type YieldReturnStmt struct {
	Value IExpr
}

// YieldBreakStmt ends an iterator. It is intermediate only.
type YieldBreakStmt struct{}

// SequencePoint marks the source position of the code that follows, a nil Loc ends the previous mapping.
type SequencePoint struct {
	Loc *Location
}

func (n *BlockStmt) node()       {}
func (n *CommentStmt) node()     {}
func (n *BranchStmt) node()      {}
func (n *DoWhileStmt) node()     {}
func (n *EmptyStmt) node()       {}
func (n *ExprStmt) node()        {}
func (n *ForInStmt) node()       {}
func (n *ForStmt) node()         {}
func (n *IfStmt) node()          {}
func (n *ReturnStmt) node()      {}
func (n *SwitchStmt) node()      {}
func (n *ThrowStmt) node()       {}
func (n *TryStmt) node()         {}
func (n *VarDecl) node()         {}
func (n *WhileStmt) node()       {}
func (n *WithStmt) node()        {}
func (n *LabelledStmt) node()    {}
func (n *FuncDecl) node()        {}
func (n *GotoStmt) node()        {}
func (n *YieldReturnStmt) node() {}
func (n *YieldBreakStmt) node()  {}
func (n *SequencePoint) node()   {}

func (n *BlockStmt) stmtNode()       {}
func (n *CommentStmt) stmtNode()     {}
func (n *BranchStmt) stmtNode()      {}
func (n *DoWhileStmt) stmtNode()     {}
func (n *EmptyStmt) stmtNode()       {}
func (n *ExprStmt) stmtNode()        {}
func (n *ForInStmt) stmtNode()       {}
func (n *ForStmt) stmtNode()         {}
func (n *IfStmt) stmtNode()          {}
func (n *ReturnStmt) stmtNode()      {}
func (n *SwitchStmt) stmtNode()      {}
func (n *ThrowStmt) stmtNode()       {}
func (n *TryStmt) stmtNode()         {}
func (n *VarDecl) stmtNode()         {}
func (n *WhileStmt) stmtNode()       {}
func (n *WithStmt) stmtNode()        {}
func (n *LabelledStmt) stmtNode()    {}
func (n *FuncDecl) stmtNode()        {}
func (n *GotoStmt) stmtNode()        {}
func (n *YieldReturnStmt) stmtNode() {}
func (n *YieldBreakStmt) stmtNode()  {}
func (n *SequencePoint) stmtNode()   {}

func (n *FuncExpr) scopeNode()    {}
func (n *FuncDecl) scopeNode()    {}
func (n *CatchClause) scopeNode() {}

// IsIntermediate returns true for the variants that may not appear in final output.
func IsIntermediate(n INode) bool {
	switch n.(type) {
	case *TypeRefExpr, *TemplateExpr, *GotoStmt, *YieldReturnStmt, *YieldBreakStmt:
		return true
	}
	return false
}
