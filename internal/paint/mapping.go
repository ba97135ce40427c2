package paint

import (
	gomath "math"
)

// PaletteIndices maps values onto [0, colors-1]. Bounds come from r when
// given, otherwise from the finite minimum and maximum of values. NaN maps
// to 0; a zero-width range maps everything to 0.
func PaletteIndices(values []float64, colors int, r *Range) []int {
	out := make([]int, len(values))
	if colors <= 1 || len(values) == 0 {
		return out
	}

	lo, hi := gomath.Inf(1), gomath.Inf(-1)
	if r != nil {
		lo, hi = r.Min, r.Max
	} else {
		for _, v := range values {
			if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
				continue
			}
			lo = gomath.Min(lo, v)
			hi = gomath.Max(hi, v)
		}
	}
	span := hi - lo
	if !(span > 0) || gomath.IsInf(span, 0) {
		return out
	}

	top := colors - 1
	for i, v := range values {
		if gomath.IsNaN(v) {
			continue
		}
		t := (v - lo) / span
		switch {
		case t <= 0:
			out[i] = 0
		case t >= 1:
			out[i] = top
		default:
			out[i] = int(float64(top) * t)
		}
	}
	return out
}

// CycleIndices returns i % colors for each of n slots.
func CycleIndices(n, colors int) []int {
	out := make([]int, n)
	if colors <= 1 {
		return out
	}
	for i := range out {
		out[i] = i % colors
	}
	return out
}
