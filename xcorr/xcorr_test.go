package xcorr

import (
	"testing"

	"go.viam.com/test"
)

func TestCorrelateNoShift(t *testing.T) {
	a := []float64{0, 1, 2, 1, 0, -1, -2, -1, 0}
	b := append([]float64(nil), a...)
	test.That(t, Correlate(a, b, len(a)-1), test.ShouldEqual, 0)
}

func TestCorrelatePositiveShift(t *testing.T) {
	signal := []float64{0, 1, 2, 3, 2, 1, 0, -1, -2, -1}
	shift := 3
	a := signal
	b := make([]float64, len(signal))
	for i := range b {
		src := i - shift
		if src >= 0 && src < len(signal) {
			b[i] = signal[src]
		}
	}
	test.That(t, Correlate(a, b, len(a)-1), test.ShouldEqual, shift)
}

func TestCorrelateNegativeShift(t *testing.T) {
	signal := []float64{0, 1, 2, 3, 2, 1, 0, -1, -2, -1}
	shift := -2
	a := signal
	b := make([]float64, len(signal))
	for i := range b {
		src := i - shift
		if src >= 0 && src < len(signal) {
			b[i] = signal[src]
		}
	}
	test.That(t, Correlate(a, b, len(a)-1), test.ShouldEqual, shift)
}

func TestCorrelateTieBreaksSmallestThenNegative(t *testing.T) {
	// All-zero signals produce a zero score at every lag: smallest |lag| wins.
	a := make([]float64, 5)
	b := make([]float64, 5)
	test.That(t, Correlate(a, b, len(a)-1), test.ShouldEqual, 0)

	// C(-1) = C(+1) = 1 and every other lag scores 0: the negative lag wins.
	test.That(t, Correlate([]float64{0, 1, 0}, []float64{1, 0, 1}, 2), test.ShouldEqual, -1)
}

func TestCorrelatePanicsOnMismatchedLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on mismatched lengths")
		}
	}()
	Correlate([]float64{1, 2}, []float64{1}, 0)
}

func TestCorrelatePanicsOnMaxLagOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range maxLag")
		}
	}()
	Correlate([]float64{1, 2}, []float64{1, 2}, 2)
}
