package cssoptimizer

import (
	"strings"

	"github.com/cssopt/cssopt/internal/csscolor"
	"github.com/cssopt/cssopt/internal/cssvalue"
)

// gradientSkipCounts maps a supported gradient head to the number of
// leading comma-segments that are geometry rather than colour stops.
var gradientSkipCounts = map[string]int{
	"linear-gradient":           1,
	"repeating-linear-gradient": 1,
	"radial-gradient":           2,
	"repeating-radial-gradient": 2,
}

// rewriteGradientColors rewrites the colour stops of a supported
// gradient: for each segment past the head's skip count, its first
// whitespace-separated token goes through the colour sub-engine. The
// original (possibly vendor-prefixed) head and the stop count are
// preserved.
func rewriteGradientColors(value string) string {
	open := strings.IndexByte(value, '(')
	if open == -1 || !strings.HasSuffix(value, ")") {
		return value
	}
	head := value[:open]
	unprefixed := stripVendorPrefix(head)
	skip, ok := gradientSkipCounts[strings.ToLower(unprefixed)]
	if !ok {
		return value
	}

	interior := value[open+1 : len(value)-1]
	segments := cssvalue.Split(',', interior)
	if segments == nil {
		return value
	}

	for i := skip; i < len(segments); i++ {
		tokens := cssvalue.Fields(segments[i])
		if len(tokens) == 0 {
			continue
		}
		tokens[0] = csscolor.Optimise(tokens[0])
		segments[i] = " " + strings.Join(tokens, " ")
	}

	for i, seg := range segments {
		segments[i] = strings.TrimPrefix(seg, " ")
	}

	return head + "(" + strings.Join(segments, ",") + ")"
}

// stripVendorPrefix removes a leading "-<vendor>-" segment (e.g.
// "-webkit-") from a property or function name.
func stripVendorPrefix(name string) string {
	if len(name) < 2 || name[0] != '-' {
		return name
	}
	rest := name[1:]
	idx := strings.IndexByte(rest, '-')
	if idx == -1 {
		return name
	}
	return rest[idx+1:]
}
