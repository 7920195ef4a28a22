// Package spatialmath provides the small amount of rotation math the temporal
// calibration core needs: turning a relative rotation into a scalar angular
// magnitude. It is a narrow sibling of go.viam.com/rdk/spatialmath, trimmed to
// the one conversion this module actually exercises.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Quaternion is a unit quaternion representing a 3-dof rotation.
type Quaternion = quat.Number

// Magnitude returns the angular magnitude ‖log(R)‖ of a rotation, in radians.
// A unit quaternion's logarithm has zero real part and an imaginary part of
// norm theta/2, where theta is the rotation angle about the log's axis.
func Magnitude(q Quaternion) float64 {
	w := quat.Log(q)
	halfAngle := math.Sqrt(w.Imag*w.Imag + w.Jmag*w.Jmag + w.Kmag*w.Kmag)
	return 2 * halfAngle
}

// GyroMagnitude returns the norm of a 3-axis angular rate vector, rad/s.
func GyroMagnitude(gyro r3.Vector) float64 {
	return gyro.Norm()
}
