package printer

import (
	"math"
	"strings"
	"testing"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
	"github.com/tdewolff/test"

	"github.com/tdewolff/jsgen/ir"
)

func name(s string) ir.IExpr {
	return ir.Name(s)
}

func expr(s string) ir.IStmt {
	return ir.Expr(ir.Name(s))
}

func unary(op ir.Op, x ir.IExpr) ir.IExpr {
	return &ir.UnaryExpr{Op: op, X: x}
}

func TestExpr(t *testing.T) {
	var tests = []struct {
		e        ir.IExpr
		expected string
	}{
		{ir.Binary(ir.SubOp, name("a"), ir.Binary(ir.SubOp, name("b"), name("c"))), "a-(b-c)"},
		{ir.Binary(ir.SubOp, ir.Binary(ir.SubOp, name("a"), name("b")), name("c")), "a-b-c"},
		{ir.Assign(name("a"), ir.Assign(name("b"), name("c"))), "a=b=c"},
		{ir.Assign(ir.Assign(name("a"), name("b")), name("c")), "(a=b)=c"},
		{ir.Assign(name("a"), &ir.CommaExpr{List: []ir.IExpr{name("b"), name("c")}}), "a=(b,c)"},
		{ir.Binary(ir.MulOp, name("a"), ir.Binary(ir.AddOp, name("b"), name("c"))), "a*(b+c)"},
		{ir.Binary(ir.AddOp, name("a"), ir.Binary(ir.MulOp, name("b"), name("c"))), "a+b*c"},
		{ir.Binary(ir.OrOp, ir.Binary(ir.AndOp, name("a"), name("b")), name("c")), "a&&b||c"},
		{ir.Binary(ir.AndOp, ir.Binary(ir.OrOp, name("a"), name("b")), name("c")), "(a||b)&&c"},
		{unary(ir.NegOp, unary(ir.NegOp, name("a"))), "- -a"},
		{ir.Binary(ir.AddOp, name("a"), unary(ir.PosOp, name("b"))), "a+ +b"},
		{ir.Binary(ir.SubOp, name("a"), ir.Number(-1)), "a- -1"},
		{ir.Binary(ir.AddOp, name("a"), unary(ir.PreIncrOp, name("b"))), "a+ ++b"},
		{ir.Binary(ir.AddOp, unary(ir.PostIncrOp, name("a")), name("b")), "a+++b"},
		{unary(ir.NotOp, ir.Binary(ir.LtOp, name("a"), name("b"))), "!(a<b)"},
		{unary(ir.TypeofOp, name("a")), "typeof a"},
		{unary(ir.TypeofOp, ir.Binary(ir.AddOp, name("a"), name("b"))), "typeof(a+b)"},
		{unary(ir.VoidOp, ir.Number(0)), "void 0"},
		{unary(ir.DeleteOp, ir.Dot(name("a"), "b")), "delete a.b"},
		{ir.Binary(ir.InOp, name("a"), name("b")), "a in b"},
		{ir.Binary(ir.InstanceofOp, name("a"), name("b")), "a instanceof b"},
		{&ir.CondExpr{Cond: name("a"), X: name("b"), Y: name("c")}, "(a?b:c)"},
		{&ir.CondExpr{Cond: ir.Assign(name("a"), name("b")), X: name("b"), Y: &ir.CommaExpr{List: []ir.IExpr{name("c"), name("d")}}}, "((a=b)?b:(c,d))"},
		{&ir.CommaExpr{List: []ir.IExpr{name("a"), name("b")}}, "a,b"},
		{ir.Call(name("f"), &ir.CommaExpr{List: []ir.IExpr{name("a"), name("b")}}, name("c")), "f((a,b),c)"},
		{ir.Call(ir.Call(name("f")), name("a")), "f()(a)"},
		{&ir.NewExpr{X: ir.Dot(name("a"), "B"), Args: []ir.IExpr{name("x")}}, "new a.B(x)"},
		{&ir.NewExpr{X: ir.Call(name("f"))}, "new(f())()"},
		{ir.Dot(&ir.NewExpr{X: name("A")}, "b"), "(new A()).b"},
		{ir.Call(&ir.NewExpr{X: name("A")}), "(new A())()"},
		{ir.Call(ir.Dot(ir.Number(1), "toString")), "(1).toString()"},
		{ir.Dot(ir.Number(-1.5), "x"), "(-1.5).x"},
		{ir.Call(&ir.FuncExpr{}), "(function(){})()"},
		{&ir.FuncExpr{Name: "f", Params: []string{"a", "b"}, Body: ir.Block(&ir.ReturnStmt{Value: name("a")})}, "function f(a,b){return a}"},
		{&ir.IndexExpr{X: name("a"), Index: ir.String("b")}, `a["b"]`},
		{ir.Dot(name("a"), "b-c"), `a["b-c"]`},
		{ir.Dot(ir.Dot(name("a"), "b"), "c"), "a.b.c"},
		{&ir.ArrayExpr{List: []ir.IExpr{name("a"), nil, name("b"), nil}}, "[a,,b,,]"},
		{&ir.ArrayExpr{}, "[]"},
		{&ir.ObjectExpr{List: []ir.Property{{Name: "a-b", Value: ir.Number(1)}, {Name: "c", Value: ir.Number(2)}}}, `{"a-b":1,c:2}`},
		{&ir.ObjectExpr{}, "{}"},
		{ir.Binary(ir.DivOp, name("a"), &ir.RegExpExpr{Pattern: "x", Flags: "g"}), "a/ /x/g"},
		{ir.Binary(ir.InOp, &ir.RegExpExpr{Pattern: "x"}, name("b")), "/x/ in b"},
		{ir.String("a\"b\n"), `"a\"b\n"`},
		{&ir.BoolExpr{Value: true}, "true"},
		{&ir.NullExpr{}, "null"},
		{ir.Dot(&ir.ThisExpr{}, "x"), "this.x"},
		{ir.Number(math.Inf(-1)), "-Infinity"},
		{ir.Number(math.Copysign(0, -1)), "-0"},
		{ir.Number(math.NaN()), "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			out, err := Format(tt.e, Options{Minify: true})
			test.Error(t, err)
			test.String(t, out, tt.expected)
		})
	}
}

func TestExprPrecedence(t *testing.T) {
	for parent := ir.AssignOp; parent <= ir.ModOp; parent++ {
		for child := ir.AssignOp; child <= ir.ModOp; child++ {
			inner := ir.Binary(child, name("b"), name("c"))
			// assignments associate to the right, all other binary operators to the left
			leftWrap := child.Prec() < parent.Prec() || child.Prec() == parent.Prec() && parent.IsAssign()
			rightWrap := child.Prec() < parent.Prec() || child.Prec() == parent.Prec() && !parent.IsAssign()

			t.Run(parent.String()+" left "+child.String(), func(t *testing.T) {
				out, err := Format(ir.Binary(parent, inner, name("d")), Options{Minify: true})
				test.Error(t, err)
				test.T(t, strings.HasPrefix(out, "("), leftWrap, out)
				test.T(t, strings.Count(out, "("), strings.Count(out, ")"), out)
			})
			t.Run(parent.String()+" right "+child.String(), func(t *testing.T) {
				out, err := Format(ir.Binary(parent, name("a"), inner), Options{Minify: true})
				test.Error(t, err)
				test.T(t, strings.HasSuffix(out, ")"), rightWrap, out)
				test.T(t, strings.Count(out, "("), strings.Count(out, ")"), out)
			})
		}
	}
}

func TestExprVerbose(t *testing.T) {
	var tests = []struct {
		e        ir.IExpr
		expected string
	}{
		{ir.Binary(ir.AddOp, name("a"), unary(ir.PosOp, name("b"))), "a + +b"},
		{ir.Assign(name("a"), &ir.CondExpr{Cond: name("b"), X: name("c"), Y: name("d")}), "a = (b ? c : d)"},
		{ir.Call(name("f"), name("a"), name("b")), "f(a, b)"},
		{&ir.ObjectExpr{List: []ir.Property{{Name: "a", Value: ir.Number(1)}, {Name: "b", Value: ir.Number(2)}}}, "{a: 1, b: 2}"},
		{&ir.FuncExpr{Params: []string{"a", "b"}}, "function(a, b) {}"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			out, err := Format(tt.e, Options{})
			test.Error(t, err)
			test.String(t, out, tt.expected)
		})
	}
}

var stmtTests = []struct {
	s       ir.IStmt
	verbose string
	minify  string
}{
	{ir.Merged(expr("a"), expr("b")), "a;\nb;\n", "a;b"},
	{ir.Merged(ir.Block(expr("a")), expr("b")), "{\n\ta;\n}\nb;\n", "{a}b"},
	{ir.Block(), "{}\n", "{}"},
	{&ir.IfStmt{Cond: name("a"), Body: ir.Block(expr("b")), Else: ir.Block(expr("c"))}, "if (a) {\n\tb;\n} else {\n\tc;\n}\n", "if(a){b}else{c}"},
	{&ir.IfStmt{Cond: name("a"), Body: &ir.IfStmt{Cond: name("b"), Body: expr("c")}, Else: expr("d")}, "if (a) {\n\tif (b)\n\t\tc;\n} else\n\td;\n", "if(a){if(b)c}else d"},
	{&ir.IfStmt{Cond: name("a"), Body: ir.Block(expr("b")), Else: &ir.IfStmt{Cond: name("c"), Body: ir.Block(expr("d"))}}, "if (a) {\n\tb;\n} else if (c) {\n\td;\n}\n", "if(a){b}else if(c){d}"},
	{&ir.ForStmt{
		Init: ir.Var("i", ir.Number(0)),
		Cond: ir.Binary(ir.LtOp, name("i"), name("n")),
		Post: unary(ir.PostIncrOp, name("i")),
		Body: ir.Block(ir.Expr(ir.Call(name("f")))),
	}, "for (var i = 0; i < n; i++) {\n\tf();\n}\n", "for(var i=0;i<n;i++){f()}"},
	{&ir.ForStmt{Body: ir.Expr(ir.Call(name("f")))}, "for (;;)\n\tf();\n", "for(;;)f()"},
	{&ir.ForStmt{Init: ir.Expr(ir.Binary(ir.InOp, name("a"), name("b"))), Body: &ir.EmptyStmt{}}, "for ((a in b);;)\n\t;\n", "for((a in b);;);"},
	{&ir.ForStmt{Init: ir.Var("a", ir.Binary(ir.InOp, name("b"), name("c"))), Body: ir.Block()}, "for (var a = (b in c);;) {}\n", "for(var a=(b in c);;){}"},
	{&ir.ForInStmt{Var: "k", Value: name("o"), Body: ir.Block()}, "for (k in o) {}\n", "for(k in o){}"},
	{&ir.ForInStmt{Var: "k", Decl: true, Value: name("o"), Body: expr("k")}, "for (var k in o)\n\tk;\n", "for(var k in o)k"},
	{&ir.WhileStmt{Cond: &ir.BoolExpr{Value: true}, Body: ir.Block(&ir.BranchStmt{Tok: ir.Break})}, "while (true) {\n\tbreak;\n}\n", "while(true){break}"},
	{&ir.DoWhileStmt{Body: ir.Block(expr("a")), Cond: name("x")}, "do {\n\ta;\n} while (x);\n", "do{a}while(x)"},
	{&ir.DoWhileStmt{Body: expr("a"), Cond: name("x")}, "do\n\ta;\nwhile (x);\n", "do a;while(x)"},
	{&ir.LabelledStmt{Label: "l", Value: &ir.WhileStmt{Cond: name("x"), Body: ir.Block(&ir.BranchStmt{Tok: ir.Continue, Label: "l"})}}, "l: while (x) {\n\tcontinue l;\n}\n", "l:while(x){continue l}"},
	{&ir.SwitchStmt{Init: name("x"), List: []ir.CaseClause{
		{Values: []ir.IExpr{ir.Number(1)}, Body: []ir.IStmt{expr("a"), &ir.BranchStmt{Tok: ir.Break}}},
		{Values: []ir.IExpr{nil}, Body: []ir.IStmt{expr("b")}},
	}}, "switch (x) {\n\tcase 1:\n\t\ta;\n\t\tbreak;\n\tdefault:\n\t\tb;\n}\n", "switch(x){case 1:a;break;default:b}"},
	{&ir.SwitchStmt{Init: name("x"), List: []ir.CaseClause{
		{Values: []ir.IExpr{ir.Number(1), ir.Number(2)}, Body: []ir.IStmt{ir.Block(expr("a"))}},
	}}, "switch (x) {\n\tcase 1:\n\tcase 2: {\n\t\ta;\n\t}\n}\n", "switch(x){case 1:case 2:{a}}"},
	{&ir.TryStmt{Body: ir.Block(expr("a")), Catch: &ir.CatchClause{Param: "e", Body: ir.Block(expr("b"))}, Finally: ir.Block(expr("c"))},
		"try {\n\ta;\n} catch (e) {\n\tb;\n} finally {\n\tc;\n}\n", "try{a}catch(e){b}finally{c}"},
	{&ir.FuncDecl{Name: "f", Params: []string{"a", "b"}, Body: ir.Block(&ir.ReturnStmt{Value: name("a")})}, "function f(a, b) {\n\treturn a;\n}\n", "function f(a,b){return a}"},
	{ir.Merged(&ir.ReturnStmt{}, &ir.ThrowStmt{Value: &ir.NewExpr{X: name("Error"), Args: []ir.IExpr{ir.String("x")}}}), "return;\nthrow new Error(\"x\");\n", `return;throw new Error("x")`},
	{&ir.VarDecl{List: []ir.Declarator{{Name: "a", Init: ir.Number(1)}, {Name: "b"}}}, "var a = 1, b;\n", "var a=1,b"},
	{&ir.WithStmt{Object: name("o"), Body: expr("a")}, "with (o)\n\ta;\n", "with(o)a"},
	{ir.Expr(ir.Call(&ir.FuncExpr{})), "(function() {})();\n", "(function(){})()"},
	{ir.Expr(&ir.FuncExpr{}), "(function() {});\n", "(function(){})"},
	{ir.Expr(ir.Dot(&ir.ObjectExpr{}, "x")), "({}).x;\n", "({}).x"},
	{ir.Expr(ir.Assign(name("a"), &ir.ObjectExpr{})), "a = {};\n", "a={}"},
	{ir.Merged(&ir.CommentStmt{Text: "x\ny*/"}, expr("a")), "// x\n// y*/\na;\n", "/*x\ny* /*/a"},
	{ir.Merged(&ir.EmptyStmt{}, expr("a")), ";\na;\n", ";a"},
}

func TestStmt(t *testing.T) {
	for _, tt := range stmtTests {
		t.Run(tt.minify, func(t *testing.T) {
			out, err := Format(tt.s, Options{})
			test.Error(t, err)
			test.String(t, out, tt.verbose)

			out, err = Format(tt.s, Options{Minify: true})
			test.Error(t, err)
			test.String(t, out, tt.minify)
		})
	}
}

func TestIndent(t *testing.T) {
	s := &ir.IfStmt{Cond: name("a"), Body: ir.Block(&ir.IfStmt{Cond: name("b"), Body: ir.Block(expr("c"))})}
	out, err := Format(s, Options{Indent: "  "})
	test.Error(t, err)
	test.String(t, out, "if (a) {\n  if (b) {\n    c;\n  }\n}\n")
}

// TestRoundTrip parses the output to make sure it is valid JavaScript, inside a function to allow return
func TestRoundTrip(t *testing.T) {
	for _, tt := range stmtTests {
		t.Run(tt.minify, func(t *testing.T) {
			for _, minify := range []bool{false, true} {
				out, err := Format(tt.s, Options{Minify: minify})
				test.Error(t, err)
				_, err = js.Parse(parse.NewInputString("function _(){\n"+out+"\n}"), js.Options{})
				test.Error(t, err, "invalid output: "+out)
			}
		})
	}
}

func TestIntermediates(t *testing.T) {
	var tests = []struct {
		n        ir.INode
		expected string
	}{
		{ir.Goto("l"), "goto l"},
		{&ir.YieldReturnStmt{Value: name("a")}, "yield return a"},
		{&ir.YieldBreakStmt{}, "yield break"},
		{&ir.TypeRefExpr{Name: "T"}, "{T}"},
		{&ir.TemplateExpr{Format: "{0}+{1}", Args: []ir.IExpr{name("a"), ir.Binary(ir.MulOp, name("b"), name("c"))}}, "a+(b*c)"},
		{ir.Binary(ir.AddOp, &ir.TemplateExpr{Format: "f({0})", Args: []ir.IExpr{name("a")}}, name("b")), "(f(a))+b"},
		{&ir.TemplateExpr{Format: "{x}{0}", Args: []ir.IExpr{name("a")}}, "{x}a"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			_, err := Format(tt.n, Options{Minify: true})
			test.That(t, err != nil, "intermediates must be rejected by default")

			out, err := Format(tt.n, Options{Minify: true, AllowIntermediates: true})
			test.Error(t, err)
			test.String(t, out, tt.expected)
		})
	}
}

func TestErrors(t *testing.T) {
	var tests = []struct {
		n   ir.INode
		err string
	}{
		{ir.Expr(nil), "missing expression"},
		{&ir.IfStmt{Cond: name("a")}, "missing statement"},
		{ir.Binary(ir.NegOp, name("a"), name("b")), "invalid binary operator"},
		{unary(ir.AddOp, name("a")), "invalid unary operator"},
		{&ir.ForStmt{Init: &ir.ReturnStmt{}, Body: ir.Block()}, "invalid for initializer"},
		{&ir.TemplateExpr{Format: "{1}", Args: []ir.IExpr{name("a")}}, "template argument {1} out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			_, err := Format(tt.n, Options{AllowIntermediates: true})
			test.That(t, err != nil, "expected error")
			if err != nil {
				test.That(t, strings.Contains(err.Error(), tt.err), "error "+err.Error()+" must contain "+tt.err)
			}
		})
	}
}

type mapping struct {
	outLine, outCol int
	path            string
	srcLine, srcCol int
}

func record(list *[]mapping) Recorder {
	return RecorderFunc(func(outLine, outCol int, path string, srcLine, srcCol int) {
		*list = append(*list, mapping{outLine, outCol, path, srcLine, srcCol})
	})
}

func TestSourceMap(t *testing.T) {
	loc1 := &ir.Location{Path: "a.cs", Line: 1, Column: 1}
	loc2 := &ir.Location{Path: "a.cs", Line: 2, Column: 5}

	var tests = []struct {
		name     string
		s        ir.IStmt
		minify   bool
		expected []mapping
	}{
		{"minify", ir.Merged(&ir.SequencePoint{Loc: loc1}, expr("a"), &ir.SequencePoint{}, expr("b")), true,
			[]mapping{{1, 1, "a.cs", 1, 1}, {1, 3, "", 0, 0}}},
		{"verbose", ir.Merged(&ir.SequencePoint{Loc: loc1}, expr("a"), &ir.SequencePoint{Loc: loc2}, expr("b")), false,
			[]mapping{{1, 1, "a.cs", 1, 1}, {2, 1, "a.cs", 2, 5}}},
		{"indented", ir.Merged(&ir.WhileStmt{Cond: name("x"), Body: ir.Block(&ir.SequencePoint{Loc: loc2}, expr("a"))}), false,
			[]mapping{{2, 2, "a.cs", 2, 5}}},
		{"function", ir.Merged(
			&ir.SequencePoint{Loc: loc1},
			ir.Expr(ir.Assign(name("f"), &ir.FuncExpr{Body: ir.Block(&ir.SequencePoint{Loc: loc2}, expr("x"))})),
			expr("g"),
		), false, []mapping{{1, 1, "a.cs", 1, 1}, {2, 2, "a.cs", 2, 5}, {3, 2, "a.cs", 1, 1}}},
		{"unused", ir.Merged(&ir.SequencePoint{Loc: loc1}), false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list []mapping
			_, err := Format(tt.s, Options{Minify: tt.minify, Recorder: record(&list)})
			test.Error(t, err)
			test.T(t, len(list), len(tt.expected))
			for i := 0; i < len(list) && i < len(tt.expected); i++ {
				test.T(t, list[i], tt.expected[i])
			}
		})
	}
}

func TestSourceMapOrder(t *testing.T) {
	var list []ir.IStmt
	for i := 1; i <= 20; i++ {
		loc := &ir.Location{Path: "a.cs", Line: i, Column: 1}
		body := ir.Block(&ir.SequencePoint{Loc: &ir.Location{Path: "a.cs", Line: i, Column: 9}}, &ir.ReturnStmt{Value: ir.Number(float64(i))})
		list = append(list, &ir.SequencePoint{Loc: loc}, ir.Expr(ir.Call(&ir.FuncExpr{Body: body})))
	}

	for _, minify := range []bool{false, true} {
		var mappings []mapping
		_, err := Format(ir.Merged(list...), Options{Minify: minify, Recorder: record(&mappings)})
		test.Error(t, err)
		test.T(t, len(mappings), 60)
		for i := 1; i < len(mappings); i++ {
			prev, cur := mappings[i-1], mappings[i]
			test.That(t, prev.outLine < cur.outLine || prev.outLine == cur.outLine && prev.outCol < cur.outCol, "mappings must be in output order")
		}
	}
}

func TestQuote(t *testing.T) {
	var tests = []struct {
		s        string
		expected string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{"a\"b'c", `"a\"b'c"`},
		{"\\", `"\\"`},
		{"\n\r\t\b\f\v", `"\n\r\t\b\f\v"`},
		{"\x00", `"\0"`},
		{"\x001", `"\x001"`},
		{"\x01\x1f\x7f", `"\x01\x1f\x7f"`},
		{"\u2028\u2029", `"\u2028\u2029"`},
		{"\u00e9\u4e16", "\"\u00e9\u4e16\""},
		{"\xff", `"\ufffd"`},
		{"</script>", `"</script>"`},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			test.String(t, quote(tt.s), tt.expected)
		})
	}
}

func TestFormatNumber(t *testing.T) {
	var tests = []struct {
		f        float64
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{123.5, "123.5"},
		{0.1, "0.1"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e300, "1.5e+300"},
		{1e-6, "0.000001"},
		{1e-7, "1e-7"},
		{1.5e-10, "1.5e-10"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
		{math.Inf(1), "Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			test.String(t, formatNumber(tt.f), tt.expected)
		})
	}
}

func FuzzQuote(f *testing.F) {
	f.Add("")
	f.Add("abc")
	f.Add("\"\\\n\x00")
	f.Add("\x001\u2028")
	f.Add("\xff\xfe")
	f.Fuzz(func(t *testing.T, s string) {
		src := "x=" + quote(s) + ";"
		if _, err := js.Parse(parse.NewInputString(src), js.Options{}); err != nil {
			t.Fatalf("invalid string literal %s: %v", src, err)
		}
	})
}
