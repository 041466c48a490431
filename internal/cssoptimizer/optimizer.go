// Package cssoptimizer is the optimiser core: declaration-level
// shorthand dissolution and re-merging, plus the value-level rewrites
// (colour, number, calc, transform, gradient). It mutates a cssast.Block
// tree in place, in a single downward traversal.
package cssoptimizer

import (
	"go.uber.org/zap"

	"github.com/cssopt/cssopt/internal/cssast"
)

// Options selects which rewrites run.
type Options struct {
	OptimiseShorthands Level
	CompressColors     bool
	CompressFontWeight bool
}

// Optimiser runs the postparse pipeline over a block tree. It is
// single-threaded and synchronous: one Optimiser value must not be
// shared across concurrent Postparse calls on overlapping trees, though
// distinct Optimiser values over disjoint trees are safe to run in
// parallel, since all of the static tables are immutable.
type Optimiser struct {
	options Options
	log     *zap.Logger
}

// New constructs an Optimiser. A nil logger is replaced with a no-op one,
// matching the nil-safe logger convention used throughout this repo.
func New(options Options, log *zap.Logger) *Optimiser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Optimiser{options: options, log: log}
}

// Postparse runs the full pipeline over block and its descendants:
// dissolve shorthands, rewrite values, re-merge shorthands, then
// recurse. It never aborts: malformed declarations are left unchanged in
// place.
func (o *Optimiser) Postparse(block cssast.Block) {
	props := block.Props()

	o.dissolveShorthands(props)

	names := props.Names()
	for _, name := range names {
		decl, ok := props.Get(name)
		if !ok {
			continue
		}
		rewritten := o.value(name, decl.Value)
		o.logRewrite(name, decl.Value, rewritten)
		props.Set(name, cssast.Declaration{Value: rewritten, Important: decl.Important})
	}

	if o.options.OptimiseShorthands >= LevelCommon {
		o.mergeFourValueShorthands(props)
		o.mergeTwoValueShorthands(props)
	}
	if o.options.OptimiseShorthands >= LevelFont {
		o.mergeFont(props)
	}
	if o.options.OptimiseShorthands >= LevelBackground {
		o.mergeBackground(props)
	}

	for _, child := range block.Children() {
		o.Postparse(child)
	}
}

func (o *Optimiser) logRewrite(property, before, after string) {
	if before == after {
		return
	}
	o.log.Info("rewrote declaration",
		zap.String("property", property),
		zap.String("before", before),
		zap.String("after", after),
	)
}
