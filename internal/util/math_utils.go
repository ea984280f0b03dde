package util

// Percent returns part/total as a whole percentage, truncated toward zero.
// A zero or negative total yields (0, false) so callers never divide by it.
func Percent(part, total int) (int, bool) {
	if total <= 0 {
		return 0, false
	}
	if part < 0 {
		part = 0
	}
	return part * 100 / total, true
}
