package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
	"go.viam.com/test"
)

func TestMagnitude(t *testing.T) {
	for _, tc := range []struct {
		name  string
		angle float64
		axis  r3.Vector
	}{
		{"identity", 0, r3.Vector{X: 0, Y: 0, Z: 1}},
		{"quarter turn about z", math.Pi / 2, r3.Vector{X: 0, Y: 0, Z: 1}},
		{"half turn about x", math.Pi, r3.Vector{X: 1, Y: 0, Z: 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			axis := tc.axis.Normalize()
			half := tc.angle / 2
			q := quat.Number{
				Real: math.Cos(half),
				Imag: axis.X * math.Sin(half),
				Jmag: axis.Y * math.Sin(half),
				Kmag: axis.Z * math.Sin(half),
			}
			test.That(t, Magnitude(q), test.ShouldAlmostEqual, tc.angle, 1e-9)
		})
	}
}

func TestGyroMagnitude(t *testing.T) {
	test.That(t, GyroMagnitude(r3.Vector{X: 3, Y: 4, Z: 0}), test.ShouldAlmostEqual, 5.0, 1e-9)
	test.That(t, GyroMagnitude(r3.Vector{}), test.ShouldEqual, 0.0)
}
