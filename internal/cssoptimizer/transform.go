package cssoptimizer

import (
	"strings"

	"github.com/cssopt/cssopt/internal/cssnumber"
	"github.com/cssopt/cssopt/internal/cssvalue"
)

// transformFunc is one "name(args)" component of a transform value.
type transformFunc struct {
	name string
	args []string
}

// recognisedTransform classifies a function name into its merge-family
// base and, for an axis-qualified name like "translateX", which axis it
// is. axis is 0 for unqualified names such as "matrix", "translate",
// "rotate3d", and "perspective".
func recognisedTransform(name string) (base string, axis byte, ok bool) {
	lower := strings.ToLower(name)
	switch lower {
	case "matrix", "matrix3d", "translate", "translate3d", "scale", "scale3d",
		"rotate", "rotate3d", "skew", "perspective":
		return lower, 0, true
	}
	for _, base := range []string{"translate", "scale", "rotate", "skew"} {
		switch lower {
		case base + "x":
			return base, 'x', true
		case base + "y":
			return base, 'y', true
		case base + "z":
			return base, 'z', true
		}
	}
	return "", 0, false
}

// axisSet accumulates the X/Y/Z single-axis variants of one base name
// (e.g. translateX/translateY/translateZ) pending the 3D/2D merge passes.
type axisSet struct {
	x, y, z          string
	hasX, hasY, hasZ bool
}

// orderEntry records, in first-occurrence order, what to emit for one
// slot: either a passthrough function at its original index, a named
// (possibly merged) function, or a still-unmerged axis set.
type orderEntry struct {
	passthroughIndex int // -1 if not a passthrough
	name             string
}

// mergeTransforms rewrites a transform list: split into functions,
// normalise each recognised function's arguments through the number
// sub-engine, key by name (duplicates of one name collapse, last wins),
// then attempt the 3D merge (scale/translate XYZ) followed by the 2D
// merge (skew/scale/translate/rotate XY). Unrecognised functions pass
// through unchanged in their original position.
func mergeTransforms(value string) string {
	funcs := parseTransformFuncs(value)
	if funcs == nil {
		return value
	}

	named := map[string]transformFunc{}
	axes := map[string]*axisSet{}
	var order []orderEntry
	seenName := map[string]bool{}
	seenAxis := map[string]bool{}

	for i, f := range funcs {
		base, axis, ok := recognisedTransform(f.name)
		if !ok {
			order = append(order, orderEntry{passthroughIndex: i})
			continue
		}
		for j, a := range f.args {
			f.args[j] = cssnumber.Optimise("", strings.TrimSpace(a))
		}
		if axis == 0 {
			if !seenName[base] {
				order = append(order, orderEntry{passthroughIndex: -1, name: base})
				seenName[base] = true
			}
			named[base] = f
			continue
		}
		if !seenAxis[base] {
			order = append(order, orderEntry{passthroughIndex: -1, name: base})
			seenAxis[base] = true
			axes[base] = &axisSet{}
		}
		val := ""
		if len(f.args) > 0 {
			val = f.args[0]
		}
		set := axes[base]
		switch axis {
		case 'x':
			set.x, set.hasX = val, true
		case 'y':
			set.y, set.hasY = val, true
		case 'z':
			set.z, set.hasZ = val, true
		}
	}

	for _, base := range []string{"scale", "translate"} {
		if set, ok := axes[base]; ok && set.hasX && set.hasY && set.hasZ {
			named[base] = transformFunc{name: base + "3d", args: []string{set.x, set.y, set.z}}
			delete(axes, base)
		}
	}
	for _, base := range []string{"skew", "scale", "translate", "rotate"} {
		if set, ok := axes[base]; ok && set.hasX && set.hasY {
			named[base] = transformFunc{name: base, args: []string{set.x, set.y}}
			delete(axes, base)
		}
	}

	var out []string
	for _, entry := range order {
		if entry.passthroughIndex >= 0 {
			f := funcs[entry.passthroughIndex]
			out = append(out, f.name+"("+strings.Join(f.args, ",")+")")
			continue
		}
		if f, ok := named[entry.name]; ok {
			out = append(out, f.name+"("+strings.Join(f.args, ",")+")")
			continue
		}
		if set, ok := axes[entry.name]; ok {
			if set.hasX {
				out = append(out, entry.name+"X("+set.x+")")
			}
			if set.hasY {
				out = append(out, entry.name+"Y("+set.y+")")
			}
			if set.hasZ {
				out = append(out, entry.name+"Z("+set.z+")")
			}
		}
	}

	return strings.Join(out, " ")
}

// parseTransformFuncs splits value into its "name(args)" components, or
// returns nil if value does not look like a transform list at all.
func parseTransformFuncs(value string) []transformFunc {
	tokens := cssvalue.Fields(value)
	if len(tokens) == 0 {
		return nil
	}
	funcs := make([]transformFunc, 0, len(tokens))
	for _, tok := range tokens {
		open := strings.IndexByte(tok, '(')
		if open == -1 || !strings.HasSuffix(tok, ")") {
			return nil
		}
		name := tok[:open]
		interior := tok[open+1 : len(tok)-1]
		args := cssvalue.Split(',', interior)
		funcs = append(funcs, transformFunc{name: name, args: args})
	}
	return funcs
}
