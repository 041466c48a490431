package cssnumber_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cssopt/cssopt/internal/cssnumber"
)

func TestOptimise(t *testing.T) {
	cases := []struct{ property, in, want string }{
		{"margin", "0.500px", ".5px"},
		{"margin", "0px", "0"},
		{"margin", "-0px", "0"},
		{"margin", "1.200em", "1.2em"},
		{"margin", "10%", "10%"},
		{"margin", "0%", "0%"},
		{"transition-duration", "0s", "0s"},
		{"margin", "5", "5"},
		{"margin", "solid", "solid"},
		{"", "", ""},
		{"margin", ".500px", ".5px"},
	}
	for _, c := range cases {
		got := cssnumber.Optimise(c.property, c.in)
		assert.Equalf(t, c.want, got, "property=%q in=%q", c.property, c.in)
	}
}

func TestOptimiseIsTotal(t *testing.T) {
	for _, in := range []string{"", "auto", "calc(1px)", "url(x)"} {
		assert.NotPanics(t, func() { cssnumber.Optimise("margin", in) })
	}
}
