package cssoptimizer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/cssopt/cssopt/internal/cssast"
)

// mergeFourValueShorthands recomposes box shorthands: when all four
// longhands of a registered shorthand are present, compress them back
// into the shorthand using the top/right/bottom/left compaction rules.
func (o *Optimiser) mergeFourValueShorthands(props *cssast.Properties) {
	for _, s := range fourValueShorthands {
		o.mergeOneFourValueShorthand(props, s)
	}
}

func (o *Optimiser) mergeOneFourValueShorthand(props *cssast.Properties, s fourValueShorthand) {
	var decls [4]cssast.Declaration
	for i, name := range s.longhands {
		d, ok := props.Get(name)
		if !ok || d.IsEmpty() {
			return
		}
		decls[i] = d
	}

	// The group is treated as important if any member is important;
	// legacy behaviour, kept over the stricter all-or-skip rule.
	important := false
	for _, d := range decls {
		if d.Important {
			important = true
		}
	}

	v0, v1, v2, v3 := decls[0].Value, decls[1].Value, decls[2].Value, decls[3].Value
	compressed := compressQuad(v0, v1, v2, v3)

	for _, name := range s.longhands {
		props.Delete(name)
	}
	props.Set(s.name, cssast.Declaration{Value: compressed, Important: important})
	o.log.Info("merged shorthand", zap.String("shorthand", s.name))
}

// compressQuad emits the shortest top/right/bottom/left spelling.
func compressQuad(top, right, bottom, left string) string {
	switch {
	case top == right && right == bottom && bottom == left:
		return top
	case top == bottom && left == right:
		return top + " " + left
	case left == right:
		return top + " " + left + " " + bottom
	default:
		return top + " " + right + " " + bottom + " " + left
	}
}

// mergeTwoValueShorthands collapses paired longhands: both present and
// importance-agreeing collapse to "first" (if equal) or "first second".
func (o *Optimiser) mergeTwoValueShorthands(props *cssast.Properties) {
	for _, pair := range twoValuePairs {
		first, ok1 := props.Get(pair.longhands[0])
		second, ok2 := props.Get(pair.longhands[1])
		if !ok1 || !ok2 || first.IsEmpty() || second.IsEmpty() {
			continue
		}
		if first.Important != second.Important {
			continue
		}
		value := first.Value
		if first.Value != second.Value {
			value = first.Value + " " + second.Value
		}
		props.Delete(pair.longhands[0])
		props.Delete(pair.longhands[1])
		props.Set(pair.name, cssast.Declaration{Value: value, Important: first.Important})
		o.log.Info("merged shorthand", zap.String("shorthand", pair.name))
	}
}

// mergeFont assembles the font shorthand. Only attempted when font-size
// is set; walks the font defaults table in order, skipping default-equal
// longhands, and special-cases a font-variant the shorthand grammar
// cannot carry, which must survive as its own declaration.
func (o *Optimiser) mergeFont(props *cssast.Properties) {
	size, ok := props.Get("font-size")
	if !ok || size.IsEmpty() {
		return
	}

	// A font-variant the shorthand grammar cannot express (anything other
	// than small-caps or the default) survives as its own declaration.
	preserveVariant := false
	if v, ok := props.Get("font-variant"); ok && !v.IsEmpty() {
		switch strings.ToLower(v.Value) {
		case "small-caps", "normal":
		default:
			preserveVariant = true
		}
	}

	var parts []string
	important := size.Important

	for _, l := range fontLonghandsInOrder {
		if l.name == "font-variant" && preserveVariant {
			continue
		}
		d, ok := props.Get(l.name)
		if !ok || d.IsEmpty() || d.Value == l.deflt {
			continue
		}
		if l.name == "font-size" {
			lh, hasLH := props.Get("line-height")
			if hasLH && !lh.IsEmpty() && lh.Value != "" {
				parts = append(parts, d.Value+"/"+lh.Value)
			} else {
				parts = append(parts, d.Value)
			}
			continue
		}
		if l.name == "line-height" {
			// emitted alongside font-size above
			continue
		}
		parts = append(parts, d.Value)
	}

	if len(parts) == 0 {
		return
	}

	for _, l := range fontLonghandsInOrder {
		if l.name == "font-variant" && preserveVariant {
			continue
		}
		props.Delete(l.name)
	}
	props.Set("font", cssast.Declaration{Value: strings.Join(parts, " "), Important: important})
	o.log.Info("merged shorthand", zap.String("shorthand", "font"))
}

// mergeBackground assembles the background shorthand: abort if a
// non-empty background shorthand already exists; otherwise walk up to N
// layers (N = max comma-segment count across background-image and
// background-color), aborting entirely if any contributing longhand
// contains "gradient(".
func (o *Optimiser) mergeBackground(props *cssast.Properties) {
	if existing, ok := props.Get("background"); ok && !existing.IsEmpty() {
		return
	}

	longhandValues := make(map[string]cssast.Declaration, len(backgroundLonghands))
	any := false
	for _, l := range backgroundLonghands {
		if d, ok := props.Get(l.name); ok {
			longhandValues[l.name] = d
			any = true
			if strings.Contains(strings.ToLower(d.Value), "gradient(") {
				return
			}
		}
	}
	if !any {
		return
	}

	segCount := func(name string) int {
		d, ok := longhandValues[name]
		if !ok || d.IsEmpty() {
			return 0
		}
		return len(strings.Split(d.Value, ","))
	}
	n := segCount("background-image")
	if c := segCount("background-color"); c > n {
		n = c
	}
	if n == 0 {
		n = 1
	}

	segmentsOf := func(name string) []string {
		d, ok := longhandValues[name]
		if !ok || d.IsEmpty() {
			return nil
		}
		return strings.Split(d.Value, ",")
	}
	imageSegs := segmentsOf("background-image")
	sizeSegs := segmentsOf("background-size")
	repeatSegs := segmentsOf("background-repeat")
	positionSegs := segmentsOf("background-position")
	attachmentSegs := segmentsOf("background-attachment")
	clipSegs := segmentsOf("background-clip")
	originSegs := segmentsOf("background-origin")

	at := func(segs []string, i int) (string, bool) {
		if i >= len(segs) {
			return "", false
		}
		v := strings.TrimSpace(segs[i])
		return v, v != ""
	}

	var layerStrings []string
	important := false
	for i := 0; i < n; i++ {
		var words []string

		image, hasImage := at(imageSegs, i)
		skipLayout := !hasImage || strings.EqualFold(image, "none")
		if hasImage && !isDefaultEqual("background-image", image) {
			words = append(words, image)
		}

		if !skipLayout {
			if size, ok := at(sizeSegs, i); ok && !isDefaultEqual("background-size", size) {
				words = append(words, "("+size+")")
			}
			if rep, ok := at(repeatSegs, i); ok && !isDefaultEqual("background-repeat", rep) {
				words = append(words, rep)
			}
			if pos, ok := at(positionSegs, i); ok && !isDefaultEqual("background-position", pos) {
				words = append(words, pos)
			}
			if att, ok := at(attachmentSegs, i); ok && !isDefaultEqual("background-attachment", att) {
				words = append(words, att)
			}
		}

		if clip, ok := at(clipSegs, i); ok && !isDefaultEqual("background-clip", clip) {
			words = append(words, clip)
		}
		if origin, ok := at(originSegs, i); ok && !isDefaultEqual("background-origin", origin) {
			words = append(words, origin)
		}

		if i == n-1 {
			if d, ok := longhandValues["background-color"]; ok && !d.IsEmpty() && d.Value != "transparent" {
				words = append(words, d.Value)
				important = important || d.Important
			}
		}
		if d, ok := longhandValues["background-image"]; ok {
			important = important || d.Important
		}

		layerStrings = append(layerStrings, strings.TrimSpace(strings.Join(words, " ")))
	}

	assembled := strings.TrimSuffix(strings.Join(layerStrings, ","), ",")
	assembled = strings.Trim(assembled, ",")

	_, existedBefore := props.Get("background")
	for _, l := range backgroundLonghands {
		props.Delete(l.name)
	}
	if assembled != "" {
		props.Set("background", cssast.Declaration{Value: assembled, Important: important})
		o.log.Info("merged shorthand", zap.String("shorthand", "background"))
	} else if existedBefore {
		props.Set("background", cssast.Declaration{Value: "none"})
	}
}

func isDefaultEqual(longhand, value string) bool {
	deflt, ok := backgroundDefault(longhand)
	return ok && value == deflt
}
