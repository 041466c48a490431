package cssoptimizer

import (
	"strings"

	"github.com/cssopt/cssopt/internal/cssvalue"
)

var calcHeads = []string{"calc(", "min(", "max("}

// reduceCalc compacts calc()/min()/max(): split the interior on
// top-level commas, strip all whitespace from each part, and rejoin.
// Anything that doesn't look like one of these three functions passes
// through unchanged.
func reduceCalc(value string) string {
	var head string
	for _, h := range calcHeads {
		if strings.HasPrefix(value, h) {
			head = h
			break
		}
	}
	if head == "" || !strings.HasSuffix(value, ")") {
		return value
	}

	interior := value[len(head) : len(value)-1]
	parts := cssvalue.Split(',', interior)
	if parts == nil {
		return head + stripSpaces(interior) + ")"
	}

	for i, p := range parts {
		parts[i] = stripSpaces(p)
	}
	return head + strings.Join(parts, ",") + ")"
}

func stripSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
