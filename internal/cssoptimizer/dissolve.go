package cssoptimizer

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cssopt/cssopt/internal/cssast"
	"github.com/cssopt/cssopt/internal/cssvalue"
)

// dissolveShorthands is the first pipeline stage: it replaces each
// present, registered shorthand with its longhand set, gated by the
// configured optimisation level.
func (o *Optimiser) dissolveShorthands(props *cssast.Properties) {
	if o.options.OptimiseShorthands < LevelCommon {
		return
	}

	for _, s := range fourValueShorthands {
		if isBorderRadius(s.name) {
			// border-radius is not dissolved into its four corner
			// longhands; its value is compressed in place by
			// valueBorderRadius. Corner longhands present in the block
			// are still merged into border-radius by
			// mergeFourValueShorthands.
			continue
		}
		if decl, ok := props.Get(s.name); ok && !decl.IsEmpty() {
			o.dissolveFourValue(props, s, decl)
		}
	}

	if o.options.OptimiseShorthands >= LevelFont {
		if decl, ok := props.Get("font"); ok && !decl.IsEmpty() {
			o.dissolveFont(props, decl)
		}
	}

	if o.options.OptimiseShorthands >= LevelBackground {
		if decl, ok := props.Get("background"); ok && !decl.IsEmpty() {
			o.dissolveBackground(props, decl)
		}
	}
}

// dissolveFourValue expands a box shorthand: N=1..4 sub-values map to
// the box sides per the usual CSS rules, any other N tolerantly
// broadcasts the first value to all four sides.
func (o *Optimiser) dissolveFourValue(props *cssast.Properties, s fourValueShorthand, decl cssast.Declaration) {
	parts := cssvalue.Fields(decl.Value)
	if len(parts) == 0 {
		return
	}

	var top, right, bottom, left string
	switch len(parts) {
	case 1:
		top, right, bottom, left = parts[0], parts[0], parts[0], parts[0]
	case 2:
		top, bottom = parts[0], parts[0]
		left, right = parts[1], parts[1]
	case 3:
		top = parts[0]
		left, right = parts[1], parts[1]
		bottom = parts[2]
	case 4:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[3]
	default:
		top, right, bottom, left = parts[0], parts[0], parts[0], parts[0]
	}

	props.Set(s.longhands[0], cssast.Declaration{Value: top, Important: decl.Important})
	props.Set(s.longhands[1], cssast.Declaration{Value: right, Important: decl.Important})
	props.Set(s.longhands[2], cssast.Declaration{Value: bottom, Important: decl.Important})
	props.Set(s.longhands[3], cssast.Declaration{Value: left, Important: decl.Important})
	// The shorthand's slot is cleared to an empty sentinel rather than
	// removed, so a later merge re-places it at its original position.
	props.Set(s.name, cssast.Declaration{})
	o.log.Info("dissolved shorthand", zap.String("shorthand", s.name))
}

// dissolveFont expands the font shorthand: the first comma segment is
// scanned left to right, greedily absorbing one token each into
// style/variant/weight/size[/line-height], the rest joining font-family;
// remaining comma segments are appended as family fallbacks.
func (o *Optimiser) dissolveFont(props *cssast.Properties, decl cssast.Declaration) {
	segments := cssvalue.Split(',', decl.Value)
	if len(segments) == 0 {
		return
	}

	style, variant, weight, size, lineHeight := "", "", "", "", ""
	var familyWords []string

	tokens := cssvalue.Fields(segments[0])
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		switch {
		case weight == "" && fontWeightKeywords[lower]:
			weight = tok
		case variant == "" && fontVariantKeywords[lower]:
			variant = tok
		case style == "" && fontStyleKeywords[lower]:
			style = tok
		case size == "" && len(tok) > 0 && (tok[0] == '.' || (tok[0] >= '0' && tok[0] <= '9')):
			if slash := strings.IndexByte(tok, '/'); slash != -1 {
				size = tok[:slash]
				lineHeight = tok[slash+1:]
			} else {
				size = tok
			}
		default:
			familyWords = append(familyWords, tok)
		}
	}

	// Ambiguity fix: a bare numeric weight with no size token found is
	// really the size (font shorthand requires a size; "700" alone
	// before a family can't be a weight with nothing left to be size).
	if size == "" && weight != "" {
		if _, err := strconv.ParseFloat(weight, 64); err == nil {
			size, weight = weight, ""
		}
	}

	family := strings.Join(familyWords, " ")
	if len(familyWords) > 1 {
		family = `"` + family + `"`
	}
	for _, seg := range segments[1:] {
		family += "," + strings.TrimSpace(seg)
	}

	set := func(name, value, deflt string) {
		if value == "" {
			value = deflt
		}
		props.Set(name, cssast.Declaration{Value: value, Important: decl.Important})
	}
	set("font-style", style, "normal")
	set("font-variant", variant, "normal")
	set("font-weight", weight, "normal")
	set("font-size", size, "")
	set("line-height", lineHeight, "")
	set("font-family", family, "")

	props.Set("font", cssast.Declaration{})
	o.log.Info("dissolved shorthand", zap.String("shorthand", "font"))
}

// dissolveBackground expands the background shorthand, one layer per
// top-level comma segment. It refuses to dissolve (case-insensitively)
// when the value contains "gradient(" anywhere: gradient layers do not
// survive a round trip through the longhand set.
func (o *Optimiser) dissolveBackground(props *cssast.Properties, decl cssast.Declaration) {
	if strings.Contains(strings.ToLower(decl.Value), "gradient(") {
		return
	}

	layers := cssvalue.Split(',', decl.Value)
	if len(layers) == 0 {
		return
	}

	images := make([]string, len(layers))
	sizes := make([]string, len(layers))
	repeats := make([]string, len(layers))
	positions := make([]string, len(layers))
	attachments := make([]string, len(layers))
	clips := make([]string, len(layers))
	origins := make([]string, len(layers))
	color := ""

	for i, layer := range layers {
		tokens := cssvalue.Fields(layer)
		clipSet := false
		var posWords []string

		for _, tok := range tokens {
			lower := strings.ToLower(tok)
			switch {
			case images[i] == "" && (strings.HasPrefix(lower, "url(") || lower == "none"):
				images[i] = tok
			case repeats[i] == "" && backgroundRepeatKeywords[lower]:
				repeats[i] = tok
			case attachments[i] == "" && backgroundAttachmentKeywords[lower]:
				attachments[i] = tok
			case lower == "border" || lower == "padding" || lower == "content":
				if !clipSet && lower != "content" {
					clips[i] = tok
					clipSet = true
				} else {
					origins[i] = tok
				}
			case len(tok) > 0 && tok[0] == '(':
				sizes[i] = strings.TrimSuffix(strings.TrimPrefix(tok, "("), ")")
			case backgroundPositionKeywords[lower] || (len(tok) > 0 && (tok[0] == '.' || tok[0] == '-' || (tok[0] >= '0' && tok[0] <= '9'))):
				posWords = append(posWords, tok)
			default:
				if color == "" {
					color = tok
				}
			}
		}
		if len(posWords) > 0 {
			positions[i] = strings.Join(posWords, " ")
		}
	}

	join := func(vals []string, deflt string) string {
		var nonEmpty []string
		for _, v := range vals {
			if v != "" {
				nonEmpty = append(nonEmpty, v)
			}
		}
		if len(nonEmpty) == 0 {
			return deflt
		}
		return strings.Join(nonEmpty, ",")
	}

	set := func(name, value string) {
		props.Set(name, cssast.Declaration{Value: value, Important: decl.Important})
	}
	set("background-image", join(images, "none"))
	set("background-size", join(sizes, "auto"))
	set("background-repeat", join(repeats, "repeat"))
	set("background-position", join(positions, "0 0"))
	set("background-attachment", join(attachments, "scroll"))
	set("background-clip", join(clips, "border"))
	set("background-origin", join(origins, "padding"))
	if color == "" {
		color = "transparent"
	}
	set("background-color", color)

	props.Set("background", cssast.Declaration{})
	o.log.Info("dissolved shorthand", zap.String("shorthand", "background"))
}
