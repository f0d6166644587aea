package ir

// Renames maps a scope to its rename table, the table of the root scope is stored under nil.
type Renames map[Scope]map[string]string

type renamer struct {
	scopes Renames
}

// Rename applies the rename tables to identifier references, declared variables, catch parameters
// and function parameters. A nested scope without its own table inherits the enclosing one.
func Rename(s IStmt, scopes Renames) IStmt {
	r := renamer{scopes}
	return r.RewriteStmt(s, scopes[nil])
}

// RenameExpr is Rename for an expression.
func RenameExpr(e IExpr, scopes Renames) IExpr {
	r := renamer{scopes}
	return r.RewriteExpr(e, scopes[nil])
}

func (r renamer) enter(scope Scope, table map[string]string) map[string]string {
	if inner, ok := r.scopes[scope]; ok {
		return inner
	}
	return table
}

func (r renamer) RewriteExpr(e IExpr, table map[string]string) IExpr {
	switch e := e.(type) {
	case *Ident:
		if name, ok := table[e.Name]; ok && name != e.Name {
			return &Ident{name}
		}
		return e
	case *FuncExpr:
		inner := r.enter(e, table)
		name := renameOne(inner, e.Name)
		params, changed := renameAll(inner, e.Params)
		body := rewriteBlock[map[string]string](r, e.Body, inner)
		if name != e.Name || changed || body != e.Body {
			return &FuncExpr{name, params, body}
		}
		return e
	}
	return ExprChildren[map[string]string](r, e, table)
}

func (r renamer) RewriteStmt(s IStmt, table map[string]string) IStmt {
	switch s := s.(type) {
	case *VarDecl:
		var list []Declarator
		for i, item := range s.List {
			name := renameOne(table, item.Name)
			init := rewriteExpr[map[string]string](r, item.Init, table)
			if (name != item.Name || init != item.Init) && list == nil {
				list = make([]Declarator, len(s.List))
				copy(list, s.List[:i])
			}
			if list != nil {
				list[i] = Declarator{name, init}
			}
		}
		if list != nil {
			return &VarDecl{list}
		}
		return s
	case *ForInStmt:
		name := renameOne(table, s.Var)
		value := rewriteExpr[map[string]string](r, s.Value, table)
		body := rewriteStmt[map[string]string](r, s.Body, table)
		if name != s.Var || value != s.Value || body != s.Body {
			return &ForInStmt{name, s.Decl, value, body}
		}
		return s
	case *TryStmt:
		body := rewriteBlock[map[string]string](r, s.Body, table)
		catch := s.Catch
		if catch != nil {
			inner := r.enter(catch, table)
			param := renameOne(inner, catch.Param)
			catchBody := rewriteBlock[map[string]string](r, catch.Body, inner)
			if param != catch.Param || catchBody != catch.Body {
				catch = &CatchClause{param, catchBody}
			}
		}
		finally := rewriteBlock[map[string]string](r, s.Finally, table)
		if body != s.Body || catch != s.Catch || finally != s.Finally {
			return &TryStmt{body, catch, finally}
		}
		return s
	case *FuncDecl:
		name := renameOne(table, s.Name)
		inner := r.enter(s, table)
		params, changed := renameAll(inner, s.Params)
		body := rewriteBlock[map[string]string](r, s.Body, inner)
		if name != s.Name || changed || body != s.Body {
			return &FuncDecl{name, params, body}
		}
		return s
	}
	return StmtChildren[map[string]string](r, s, table)
}

func renameOne(table map[string]string, name string) string {
	if renamed, ok := table[name]; ok {
		return renamed
	}
	return name
}

func renameAll(table map[string]string, names []string) ([]string, bool) {
	var out []string
	for i, name := range names {
		renamed := renameOne(table, name)
		if renamed != name && out == nil {
			out = make([]string, len(names))
			copy(out, names[:i])
		}
		if out != nil {
			out[i] = renamed
		}
	}
	if out == nil {
		return names, false
	}
	return out, true
}
