// Package xcorr implements discrete linear cross-correlation over a bounded
// lag range, the pure numeric core the temporal calibration aligner uses to
// find the best-fit time shift between two equal-length signals.
package xcorr

// Correlate returns the integer lag in [-maxLag, maxLag] that maximizes the
// unnormalized linear cross-correlation
//
//	C(lag) = sum over k of a[k] * b[k-lag]
//
// restricted to indices k for which both a[k] and b[k-lag] are defined. Ties
// are broken by the smallest absolute lag, and remaining ties by the most
// negative lag. a and b must have equal, non-zero length, and maxLag must be
// <= len(a)-1.
func Correlate(a, b []float64, maxLag int) int {
	if len(a) != len(b) {
		panic("xcorr: a and b must have equal length")
	}
	if len(a) == 0 {
		panic("xcorr: a and b must be non-empty")
	}
	if maxLag < 0 || maxLag > len(a)-1 {
		panic("xcorr: maxLag out of range")
	}

	bestLag := 0
	bestScore := correlationAt(a, b, 0)
	for lag := 1; lag <= maxLag; lag++ {
		// Check -lag before +lag so that, at equal scores for the same
		// magnitude, the most negative lag wins the tie-break.
		if score := correlationAt(a, b, -lag); score > bestScore {
			bestScore = score
			bestLag = -lag
		}
		if score := correlationAt(a, b, lag); score > bestScore {
			bestScore = score
			bestLag = lag
		}
	}
	return bestLag
}

// correlationAt computes C(lag) = sum_k a[k]*b[k-lag] over valid k.
func correlationAt(a, b []float64, lag int) float64 {
	n := len(a)
	lo := 0
	if lag > 0 {
		lo = lag
	}
	hi := n
	if lag < 0 {
		hi = n + lag
	}

	var sum float64
	for k := lo; k < hi; k++ {
		sum += a[k] * b[k-lag]
	}
	return sum
}
