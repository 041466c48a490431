package cssoptimizer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/cssopt/cssopt/internal/csscolor"
	"github.com/cssopt/cssopt/internal/cssnumber"
	"github.com/cssopt/cssopt/internal/cssvalue"
)

// value dispatches a declaration value to its rewriter: a fixed tagged
// match on property class (four-value shorthand, border-radius,
// background-with-gradient, transform, default). v never carries an
// "!important" marker: that is tracked separately on cssast.Declaration,
// whose String() re-emits it as a single compact suffix.
func (o *Optimiser) value(property, v string) string {
	if strings.HasPrefix(property, "--") {
		// custom property values are whitespace-significant
		return v
	}
	lowerProperty := strings.ToLower(property)
	switch {
	// The direct-shorthand compression branches only apply once
	// optimise_shorthands reaches COMMON; at NONE a shorthand value
	// passes through untouched.
	case o.options.OptimiseShorthands >= LevelCommon && isBorderRadius(lowerProperty):
		return o.valueBorderRadius(v)
	case o.options.OptimiseShorthands >= LevelCommon && isFourValueNonRadius(lowerProperty):
		return o.valueFourValueShorthand(v)
	case (lowerProperty == "background-image" || lowerProperty == "background") &&
		o.options.CompressColors && strings.Contains(strings.ToLower(v), "gradient("):
		return rewriteGradientColors(v)
	case stripVendorPrefix(lowerProperty) == "transform":
		return mergeTransforms(v)
	default:
		return o.valueDefault(property, v)
	}
}

func isFourValueNonRadius(property string) bool {
	s, ok := lookupFourValueShorthand(property)
	return ok && !isBorderRadius(s.name)
}

// valueFourValueShorthand compresses a four-value shorthand's own value
// in place, without dissolving it into longhands.
func (o *Optimiser) valueFourValueShorthand(v string) string {
	parts := cssvalue.Fields(v)
	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		return compressQuad(parts[0], parts[1], parts[0], parts[1])
	case 3:
		return compressQuad(parts[0], parts[1], parts[2], parts[1])
	case 4:
		return compressQuad(parts[0], parts[1], parts[2], parts[3])
	default:
		return v
	}
}

// valueBorderRadius splits border-radius on "/" (at most two parts) and
// compresses each half independently.
func (o *Optimiser) valueBorderRadius(v string) string {
	halves := strings.Split(v, "/")
	if len(halves) > 2 {
		return v
	}
	for i, half := range halves {
		halves[i] = o.valueFourValueShorthand(strings.TrimSpace(half))
	}
	return strings.Join(halves, " / ")
}

// valueDefault runs the sub-value rewrite over each top-level
// comma-separated piece of a value that isn't one of the
// specially-dispatched shapes.
func (o *Optimiser) valueDefault(property, v string) string {
	parts := cssvalue.Split(',', v)
	if parts == nil {
		return o.subValue(property, v)
	}
	for i, p := range parts {
		parts[i] = o.subValue(property, p)
	}
	return strings.Join(parts, ",")
}

// subValue rewrites one comma-separated sub-value: map bold/normal
// font-weight keywords when enabled, run the number and colour
// sub-engines on each whitespace-separated field, then the calc/min/max
// rewriter.
func (o *Optimiser) subValue(property, sv string) string {
	rewritten := strings.TrimSpace(sv)

	if strings.EqualFold(property, "font-weight") && o.options.CompressFontWeight {
		switch strings.ToLower(rewritten) {
		case "bold":
			o.log.Info("substituted font-weight keyword", zap.String("before", rewritten), zap.String("after", "700"))
			rewritten = "700"
		case "normal":
			o.log.Info("substituted font-weight keyword", zap.String("before", rewritten), zap.String("after", "400"))
			rewritten = "400"
		}
	}

	fields := cssvalue.Fields(rewritten)
	for i, f := range fields {
		f = cssnumber.Optimise(property, f)
		if o.options.CompressColors {
			f = csscolor.Optimise(f)
		}
		f = reduceCalc(f)
		fields[i] = f
	}
	return strings.Join(fields, " ")
}
