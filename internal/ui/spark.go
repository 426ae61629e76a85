package ui

import "strings"

// sparkline blocks: low -> high
var blocks = []rune("▁▂▃▄▅▆▇█")

// Spark renders a rate history as a fixed-width sparkline. Values scale from
// a zero baseline so an idle link reads flat rather than noisy.
func Spark(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat(" ", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	maxV := 0.0
	for _, v := range values {
		if v > maxV {
			maxV = v
		}
	}
	if maxV <= 1e-9 {
		return strings.Repeat(string(blocks[0]), len(values)) + strings.Repeat(" ", width-len(values))
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / maxV * float64(len(blocks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		b.WriteRune(blocks[idx])
	}
	if len(values) < width {
		b.WriteString(strings.Repeat(" ", width-len(values)))
	}
	return b.String()
}
