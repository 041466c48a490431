package cssoptimizer

// Level gates the optimisation stages: each stage only runs once the
// configured level reaches its minimum.
type Level int

const (
	LevelNone Level = iota
	LevelCommon
	LevelFont
	LevelBackground
	LevelAll
)

// ParseLevel maps a configuration spelling to its Level.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "NONE":
		return LevelNone, true
	case "COMMON":
		return LevelCommon, true
	case "FONT":
		return LevelFont, true
	case "BACKGROUND":
		return LevelBackground, true
	case "ALL":
		return LevelAll, true
	}
	return LevelNone, false
}

// fourValueShorthand describes a registered box-model shorthand: its
// longhand names in the shorthand's own declared order. That order is
// top/right/bottom/left (the CSS box order) except for border-radius
// (see isBorderRadius), whose order is
// top-left/top-right/bottom-right/bottom-left.
type fourValueShorthand struct {
	name      string
	longhands [4]string
}

// fourValueShorthands is the static shorthand registry. Longhand order
// is always top/right/bottom/left except border-radius, which uses its
// own corner order.
var fourValueShorthands = []fourValueShorthand{
	{"border-color", [4]string{"border-top-color", "border-right-color", "border-bottom-color", "border-left-color"}},
	{"border-style", [4]string{"border-top-style", "border-right-style", "border-bottom-style", "border-left-style"}},
	{"border-width", [4]string{"border-top-width", "border-right-width", "border-bottom-width", "border-left-width"}},
	{"margin", [4]string{"margin-top", "margin-right", "margin-bottom", "margin-left"}},
	{"padding", [4]string{"padding-top", "padding-right", "padding-bottom", "padding-left"}},
	{"border-radius", [4]string{"border-top-left-radius", "border-top-right-radius", "border-bottom-right-radius", "border-bottom-left-radius"}},
}

func lookupFourValueShorthand(name string) (fourValueShorthand, bool) {
	for _, s := range fourValueShorthands {
		if s.name == name {
			return s, true
		}
	}
	return fourValueShorthand{}, false
}

// isBorderRadius reports whether name is the one four-value shorthand
// whose longhand order is corner-based rather than box-side-based; the
// value engine dispatches it separately because it also accepts a "/"
// split for horizontal/vertical radii.
func isBorderRadius(name string) bool { return name == "border-radius" }

// twoValuePair is a registered paired shorthand.
type twoValuePair struct {
	name      string
	longhands [2]string
}

var twoValuePairs = []twoValuePair{
	{"overflow", [2]string{"overflow-x", "overflow-y"}},
	{"pause", [2]string{"pause-before", "pause-after"}},
	{"rest", [2]string{"rest-before", "rest-after"}},
	{"cue", [2]string{"cue-before", "cue-after"}},
}

// backgroundLonghand pairs a background longhand with its default
// value. Order matters: it is the order both dissolution and merge walk
// the longhand set in.
type backgroundLonghand struct {
	name    string
	deflt   string
}

var backgroundLonghands = []backgroundLonghand{
	{"background-image", "none"},
	{"background-size", "auto"},
	{"background-repeat", "repeat"},
	{"background-position", "0 0"},
	{"background-attachment", "scroll"},
	{"background-clip", "border"},
	{"background-origin", "padding"},
	{"background-color", "transparent"},
}

func backgroundDefault(name string) (string, bool) {
	for _, l := range backgroundLonghands {
		if l.name == name {
			return l.deflt, true
		}
	}
	return "", false
}

// fontLonghand pairs a font longhand with its default. Order is the
// merge walk order.
type fontLonghand struct {
	name  string
	deflt string
}

var fontLonghandsInOrder = []fontLonghand{
	{"font-style", "normal"},
	{"font-variant", "normal"},
	{"font-weight", "normal"},
	{"font-size", ""},
	{"line-height", ""},
	{"font-family", ""},
}

func fontDefault(name string) (string, bool) {
	for _, l := range fontLonghandsInOrder {
		if l.name == name {
			return l.deflt, true
		}
	}
	return "", false
}

var fontWeightKeywords = map[string]bool{
	"normal": true, "bold": true, "bolder": true, "lighter": true,
	"100": true, "200": true, "300": true, "400": true, "500": true,
	"600": true, "700": true, "800": true, "900": true,
}

var fontVariantKeywords = map[string]bool{"normal": true, "small-caps": true}

var fontStyleKeywords = map[string]bool{"normal": true, "italic": true, "oblique": true}

var backgroundRepeatKeywords = map[string]bool{
	"repeat": true, "repeat-x": true, "repeat-y": true, "no-repeat": true, "space": true,
}

var backgroundAttachmentKeywords = map[string]bool{
	"scroll": true, "fixed": true, "local": true,
}

var backgroundPositionKeywords = map[string]bool{
	"top": true, "center": true, "bottom": true, "left": true, "right": true,
}
