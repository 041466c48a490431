package cssoptimizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cssopt/cssopt/internal/cssoptimizer"
)

func TestCalcWhitespaceStripped(t *testing.T) {
	b := optimise(allOn, decl{"width", "calc(100% - 10px)"})
	assert.Equal(t, "calc(100%-10px)", get(t, b, "width"))
}

func TestMinMaxWhitespaceStripped(t *testing.T) {
	b := optimise(allOn, decl{"width", "min(10px, 5%)"})
	assert.Equal(t, "min(10px,5%)", get(t, b, "width"))

	b = optimise(allOn, decl{"height", "max(1em, 20px)"})
	assert.Equal(t, "max(1em,20px)", get(t, b, "height"))
}

func TestCalcNestedParens(t *testing.T) {
	b := optimise(allOn, decl{"width", "calc((100% - 10px) / 2)"})
	assert.Equal(t, "calc((100%-10px)/2)", get(t, b, "width"))
}

func TestImportantWhitespaceCompacted(t *testing.T) {
	b := optimise(allOn, decl{"color", "red   !IMPORTANT"})
	assert.Equal(t, "red!important", get(t, b, "color"))
}

func TestFontWeightKeywordMapping(t *testing.T) {
	b := optimise(allOn, decl{"font-weight", "bold"})
	assert.Equal(t, "700", get(t, b, "font-weight"))

	b = optimise(allOn, decl{"font-weight", "normal"})
	assert.Equal(t, "400", get(t, b, "font-weight"))

	off := allOn
	off.CompressFontWeight = false
	b = optimise(off, decl{"font-weight", "bold"})
	assert.Equal(t, "bold", get(t, b, "font-weight"))
}

func TestNumberNormalisation(t *testing.T) {
	b := optimise(allOn, decl{"margin", "0.50em 0px 1.0em 0px"})
	assert.Equal(t, ".5em 0 1em", get(t, b, "margin"))
}

func TestColourCompressionGated(t *testing.T) {
	off := allOn
	off.CompressColors = false
	b := optimise(off, decl{"color", "#ff0000"})
	assert.Equal(t, "#ff0000", get(t, b, "color"))

	b = optimise(allOn, decl{"color", "#ff0000"})
	assert.Equal(t, "red", get(t, b, "color"))
}

func TestBorderRadiusThreeHalvesLeftUnchanged(t *testing.T) {
	b := optimise(allOn, decl{"border-radius", "1px / 2px / 3px"})
	assert.Equal(t, "1px / 2px / 3px", get(t, b, "border-radius"))
}

func TestVendorPrefixedTransformMerges(t *testing.T) {
	b := optimise(allOn, decl{"-webkit-transform", "translateX(1px) translateY(2px)"})
	assert.Equal(t, "translate(1px,2px)", get(t, b, "-webkit-transform"))
}

func TestRadialGradientSkipsTwoGeometrySegments(t *testing.T) {
	b := optimise(allOn,
		decl{"background-image", "radial-gradient(circle, farthest-side, #ffffff, #ff0000)"})
	assert.Equal(t, "radial-gradient(circle,farthest-side,#fff,red)", get(t, b, "background-image"))
}

func TestVendorPrefixedGradientHeadPreserved(t *testing.T) {
	b := optimise(allOn,
		decl{"background-image", "-webkit-linear-gradient(left, #ffffff, #000000)"})
	assert.Equal(t, "-webkit-linear-gradient(left,#fff,#000)", get(t, b, "background-image"))
}

func TestUnknownGradientHeadLeftAlone(t *testing.T) {
	b := optimise(allOn,
		decl{"background-image", "conic-gradient(#ffffff, #000000)"})
	assert.Equal(t, "conic-gradient(#ffffff, #000000)", get(t, b, "background-image"))
}

func TestGradientStopCountPreserved(t *testing.T) {
	in := "linear-gradient(to right, #ff0000 0%, #00ff00 50%, #0000ff 100%)"
	b := optimise(allOn, decl{"background-image", in})
	assert.Equal(t, "linear-gradient(to right,red 0%,#0f0 50%,#00f 100%)", get(t, b, "background-image"))
}

func TestLevelGatesShorthandValueCompression(t *testing.T) {
	opts := cssoptimizer.Options{OptimiseShorthands: cssoptimizer.LevelNone}
	b := optimise(opts, decl{"border-radius", "5px 5px 5px 5px / 10px 10px 10px 10px"})
	assert.Equal(t, "5px 5px 5px 5px / 10px 10px 10px 10px", get(t, b, "border-radius"))
}
