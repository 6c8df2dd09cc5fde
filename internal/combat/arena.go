package combat

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// toward returns the step direction that brings from closer to to.
func toward(from, to int) int {
	switch {
	case to > from:
		return 1
	case to < from:
		return -1
	}
	return 0
}
