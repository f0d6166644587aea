package ir

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/tdewolff/parse/v2/js"
)

// AsIdentifier returns true if name can be used as an identifier, that is a valid identifier name that is not reserved.
func AsIdentifier(name string) bool {
	return js.AsIdentifierName([]byte(name)) && !Keywords[name]
}

// NewRegExp returns a regular expression literal after checking that the pattern compiles under
// ECMAScript rules and that the flags are known and unique.
func NewRegExp(pattern, flags string) (*RegExpExpr, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty regular expression")
	} else if strings.ContainsAny(pattern, "\n\r\u2028\u2029") {
		return nil, fmt.Errorf("line terminator in regular expression")
	}
	for i, c := range flags {
		if !strings.ContainsRune("gimsuy", c) {
			return nil, fmt.Errorf("invalid regular expression flag '%c'", c)
		} else if strings.ContainsRune(flags[:i], c) {
			return nil, fmt.Errorf("duplicate regular expression flag '%c'", c)
		}
	}

	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if strings.ContainsRune(flags, 'i') {
		opts |= regexp2.IgnoreCase
	}
	if strings.ContainsRune(flags, 'm') {
		opts |= regexp2.Multiline
	}
	if _, err := regexp2.Compile(pattern, opts); err != nil {
		return nil, fmt.Errorf("invalid regular expression /%s/: %w", pattern, err)
	}
	return &RegExpExpr{escapeSlashes(pattern), flags}, nil
}

// escapeSlashes escapes the forward slashes outside of character classes so that the pattern can be delimited by slashes
func escapeSlashes(pattern string) string {
	if !strings.ContainsRune(pattern, '/') {
		return pattern
	}
	var sb strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			sb.WriteByte(c)
			i++
			c = pattern[i]
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// Helpers to build common nodes.

func Name(name string) *Ident {
	return &Ident{name}
}

func Number(f float64) *NumberExpr {
	return &NumberExpr{f}
}

func String(s string) *StringExpr {
	return &StringExpr{s}
}

func Assign(x, y IExpr) *BinaryExpr {
	return &BinaryExpr{AssignOp, x, y}
}

func Binary(op Op, x, y IExpr) *BinaryExpr {
	return &BinaryExpr{op, x, y}
}

func Not(x IExpr) IExpr {
	if u, ok := x.(*UnaryExpr); ok && u.Op == NotOp {
		if inner, ok := u.X.(*UnaryExpr); ok && inner.Op == NotOp {
			return inner // !!!x is !x
		}
	}
	return &UnaryExpr{NotOp, x}
}

func Call(x IExpr, args ...IExpr) *CallExpr {
	return &CallExpr{x, args}
}

func Dot(x IExpr, name string) *DotExpr {
	return &DotExpr{x, name}
}

func Expr(e IExpr) *ExprStmt {
	return &ExprStmt{e}
}

func Block(list ...IStmt) *BlockStmt {
	return &BlockStmt{List: list}
}

// Merged returns a block whose statements are spliced into the enclosing statement list.
func Merged(list ...IStmt) *BlockStmt {
	return &BlockStmt{List: list, Merge: true}
}

func Var(name string, init IExpr) *VarDecl {
	return &VarDecl{[]Declarator{{name, init}}}
}

func Goto(label string) *GotoStmt {
	return &GotoStmt{label}
}
