// Package csscolor rewrites colour value tokens: a total function from
// a token to an equal-or-shorter canonical form, the shortest of the
// 3-digit hex, 6-digit hex, named, and rgb()/rgba() spellings.
// Non-colour tokens pass through unchanged, case included.
package csscolor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Optimise rewrites token if it parses as a colour, returning the shortest
// of its 3-digit hex, 6-digit hex, named, and rgb()/rgba() forms. Any
// token that does not look like a colour is returned unchanged.
func Optimise(token string) string {
	rgba, ok := parse(token)
	if !ok {
		return token
	}
	return shortestForm(rgba)
}

// rgba is an 8-bit-per-channel colour plus an 8-bit alpha (255 =
// opaque).
type rgba struct {
	r, g, b, a uint8
}

func (c rgba) opaque() bool { return c.a == 255 }

func parse(token string) (rgba, bool) {
	t := strings.TrimSpace(token)
	if t == "" {
		return rgba{}, false
	}

	if strings.HasPrefix(t, "#") {
		return parseHex(t[1:])
	}

	// "transparent" is left alone: every expressible equivalent
	// (rgba(0,0,0,0)) is longer, and other components compare against
	// the keyword literally.
	lower := strings.ToLower(t)
	if hex, ok := nameToHex[lower]; ok {
		return hex, true
	}

	if strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba(") {
		return parseRGBFunc(t)
	}
	if strings.HasPrefix(lower, "hsl(") || strings.HasPrefix(lower, "hsla(") {
		return parseHSLFunc(t)
	}

	return rgba{}, false
}

func parseHex(h string) (rgba, bool) {
	isHexDigit := func(c byte) bool {
		return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	}
	for i := 0; i < len(h); i++ {
		if !isHexDigit(h[i]) {
			return rgba{}, false
		}
	}
	expand := func(c byte) uint8 {
		v, _ := strconv.ParseUint(string([]byte{c, c}), 16, 8)
		return uint8(v)
	}
	byteAt := func(s string) uint8 {
		v, _ := strconv.ParseUint(s, 16, 8)
		return uint8(v)
	}
	switch len(h) {
	case 3:
		return rgba{expand(h[0]), expand(h[1]), expand(h[2]), 255}, true
	case 4:
		return rgba{expand(h[0]), expand(h[1]), expand(h[2]), expand(h[3])}, true
	case 6:
		return rgba{byteAt(h[0:2]), byteAt(h[2:4]), byteAt(h[4:6]), 255}, true
	case 8:
		return rgba{byteAt(h[0:2]), byteAt(h[2:4]), byteAt(h[4:6]), byteAt(h[6:8])}, true
	}
	return rgba{}, false
}

func funcArgs(t string) ([]string, bool) {
	open := strings.IndexByte(t, '(')
	if open == -1 || !strings.HasSuffix(t, ")") {
		return nil, false
	}
	inner := t[open+1 : len(t)-1]
	raw := strings.Split(inner, ",")
	if len(raw) == 1 {
		raw = strings.Fields(inner)
	}
	args := make([]string, 0, len(raw))
	for _, a := range raw {
		a = strings.TrimSpace(a)
		if a == "/" {
			continue
		}
		a = strings.TrimPrefix(a, "/")
		a = strings.TrimSpace(a)
		if a != "" {
			args = append(args, a)
		}
	}
	return args, true
}

func parseByteComponent(s string) (uint8, bool) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return floatToByte(v / 100 * 255), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatToByte(v), true
}

func parseAlphaComponent(s string) (uint8, bool) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return floatToByte(v / 100 * 255), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatToByte(v * 255), true
}

func floatToByte(f float64) uint8 {
	if f < 0 {
		f = 0
	}
	if f > 255 {
		f = 255
	}
	return uint8(math.Round(f))
}

func parseRGBFunc(t string) (rgba, bool) {
	args, ok := funcArgs(t)
	if !ok || (len(args) != 3 && len(args) != 4) {
		return rgba{}, false
	}
	r, ok1 := parseByteComponent(args[0])
	g, ok2 := parseByteComponent(args[1])
	b, ok3 := parseByteComponent(args[2])
	if !ok1 || !ok2 || !ok3 {
		return rgba{}, false
	}
	a := uint8(255)
	if len(args) == 4 {
		var ok4 bool
		a, ok4 = parseAlphaComponent(args[3])
		if !ok4 {
			return rgba{}, false
		}
	}
	return rgba{r, g, b, a}, true
}

func parseHSLFunc(t string) (rgba, bool) {
	args, ok := funcArgs(t)
	if !ok || (len(args) != 3 && len(args) != 4) {
		return rgba{}, false
	}
	hue, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return rgba{}, false
	}
	sat, ok1 := parsePercent(args[1])
	light, ok2 := parsePercent(args[2])
	if !ok1 || !ok2 {
		return rgba{}, false
	}
	a := uint8(255)
	if len(args) == 4 {
		var ok3 bool
		a, ok3 = parseAlphaComponent(args[3])
		if !ok3 {
			return rgba{}, false
		}
	}
	r, g, b := hslToRGB(hue, sat, light)
	return rgba{r, g, b, a}, true
}

func parsePercent(s string) (float64, bool) {
	if !strings.HasSuffix(s, "%") {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	return v / 100, true
}

// hslToRGB is the CSS hsl()-to-rgb conversion over [0,360) hue and
// [0,1] saturation/lightness.
func hslToRGB(hue, sat, light float64) (r, g, b uint8) {
	hue = hue / 360
	var t2 float64
	if light <= 0.5 {
		t2 = light * (1 + sat)
	} else {
		t2 = light + sat - light*sat
	}
	t1 := 2*light - t2
	toRGB := func(h float64) float64 {
		h -= math.Floor(h)
		h *= 6
		switch {
		case h < 1:
			return t1 + (t2-t1)*h
		case h < 3:
			return t2
		case h < 4:
			return t1 + (t2-t1)*(4-h)
		default:
			return t1
		}
	}
	rf := toRGB(hue + 1.0/3.0)
	gf := toRGB(hue)
	bf := toRGB(hue - 1.0/3.0)
	return floatToByte(rf * 255), floatToByte(gf * 255), floatToByte(bf * 255)
}

// shortestForm picks the shortest of the canonical spellings. A colour
// with alpha has exactly one canonical spelling, rgba(); the 4- and
// 8-digit hex forms are not emitted.
func shortestForm(c rgba) string {
	if !c.opaque() {
		return rgbForm(c)
	}

	candidates := []string{hexForm(c)}
	if name, ok := hexToName[c]; ok {
		candidates = append(candidates, name)
	}
	candidates = append(candidates, rgbForm(c))

	shortest := candidates[0]
	for _, cand := range candidates[1:] {
		if len(cand) < len(shortest) {
			shortest = cand
		}
	}
	return shortest
}

func hexForm(c rgba) string {
	if canCompact(c.r) && canCompact(c.g) && canCompact(c.b) {
		return fmt.Sprintf("#%x%x%x", c.r>>4, c.g>>4, c.b>>4)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

func canCompact(v uint8) bool { return v&0x0f == v>>4 }

func rgbForm(c rgba) string {
	if c.opaque() {
		return fmt.Sprintf("rgb(%d,%d,%d)", c.r, c.g, c.b)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.r, c.g, c.b, alphaString(c.a))
}

func alphaString(a uint8) string {
	f := float64(a) / 255
	s := strconv.FormatFloat(f, 'g', 4, 64)
	return s
}
