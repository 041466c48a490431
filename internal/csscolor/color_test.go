package csscolor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cssopt/cssopt/internal/csscolor"
)

func TestOptimiseNamedAndHex(t *testing.T) {
	cases := map[string]string{
		"#ff0000":             "red",
		"#FFFFFF":             "#fff",
		"red":                 "red",
		"white":               "#fff",
		"rgb(255, 0, 0)":      "red",
		"rgb(0,0,0)":          "#000",
		"rgba(255, 0, 0, 0.5)": "rgba(255,0,0,0.502)",
		"hsl(0, 100%, 50%)":   "red",
		"transparent":         "transparent",
		"1px":                 "1px",
		"solid":               "solid",
		"Inherit":             "Inherit",
	}
	for in, want := range cases {
		got := csscolor.Optimise(in)
		assert.Equalf(t, want, got, "optimising %q", in)
	}
}

func TestOptimisePreservesUnrelatedCase(t *testing.T) {
	assert.Equal(t, "Arial", csscolor.Optimise("Arial"))
}

func TestOptimiseIsTotal(t *testing.T) {
	for _, in := range []string{"", "calc(1px + 2px)", "url(foo.png)", "10%"} {
		assert.NotPanics(t, func() { csscolor.Optimise(in) })
	}
}
