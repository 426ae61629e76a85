package ui

const truncationMarker = "[..]"

// Widths too small to fit the marker plus one rune on each side fall back to
// a hard clip instead of slicing with negative lengths.
const truncationFloor = len(truncationMarker) + 2

// truncateMiddle shortens s to at most maxWidth runes, keeping the head and
// tail and eliding the middle. Strings that already fit come back unchanged.
func truncateMiddle(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxWidth {
		return s
	}
	if maxWidth < truncationFloor {
		return string(r[:maxWidth])
	}
	keep := maxWidth/2 - 2
	return string(r[:keep]) + truncationMarker + string(r[len(r)-keep:])
}
