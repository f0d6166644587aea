// Package jsgen compiles a resolved tree into JavaScript: it renames identifiers, lowers labels, gotos and yields into
// a state machine and formats the result, optionally recording a source map.
package jsgen

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/tdewolff/jsgen/ir"
	"github.com/tdewolff/jsgen/lower"
	"github.com/tdewolff/jsgen/printer"
)

// Hooks are the collaborators supplied by the front-end.
type Hooks struct {
	Renames            ir.Renames                   // can be nil
	IsSafeToReevaluate func(ir.IExpr) bool          // defaults to lower.IsSimple
	NewName            func() string                // defaults to Config.NamePrefix followed by a counter
	SetCurrent         func(value ir.IExpr) ir.IExpr // defaults to this.$current = value
}

// Result is the output of Compile.
type Result struct {
	Code      string
	SourceMap *SourceMap // nil unless enabled in Config
}

// Compile renames, lowers and formats s. A top-level block is formatted as a list of statements.
func Compile(s ir.IStmt, c Config, h Hooks) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	start := time.Now()

	if h.Renames != nil {
		var err error
		if s, err = rename(s, h.Renames); err != nil {
			return Result{}, fmt.Errorf("rename: %w", err)
		}
	}

	if h.NewName == nil {
		if err := c.validatePrefix(); err != nil {
			return Result{}, err
		}
		n := 0
		h.NewName = func() string {
			name := c.NamePrefix + strconv.Itoa(n)
			n++
			return name
		}
	}
	if h.SetCurrent == nil {
		h.SetCurrent = func(value ir.IExpr) ir.IExpr {
			return ir.Assign(ir.Dot(&ir.ThisExpr{}, "$current"), value)
		}
	}
	lowered, err := lower.Lower(s, lower.Options{
		IsSafeToReevaluate: h.IsSafeToReevaluate,
		NewName:            h.NewName,
		SetCurrent:         h.SetCurrent,
		Iterator:           c.Iterator,
		Fallthrough:        c.Fallthrough,
	})
	if err != nil {
		return Result{}, fmt.Errorf("lower: %w", err)
	}
	changed := lowered != s
	if block, ok := lowered.(*ir.BlockStmt); ok {
		lowered = ir.Merged(block.List...)
	}

	res := Result{}
	o := printer.Options{
		Minify:             c.Minify,
		AllowIntermediates: c.AllowIntermediates,
		Indent:             c.Indent,
	}
	if c.SourceMap {
		res.SourceMap = &SourceMap{}
		o.Recorder = res.SourceMap
	}
	if res.Code, err = printer.Format(lowered, o); err != nil {
		return Result{}, fmt.Errorf("format: %w", err)
	}

	Logger().Debug("compiled",
		zap.Duration("duration", time.Since(start)),
		zap.Int("bytes", len(res.Code)),
		zap.Bool("lowered", changed),
		zap.Bool("minify", c.Minify),
	)
	return res, nil
}

func rename(s ir.IStmt, renames ir.Renames) (result ir.IStmt, err error) {
	defer ir.Recover(&err)
	return ir.Rename(s, renames), nil
}
