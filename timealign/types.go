// Package timealign implements the cross-correlation time aligner: the state
// machine that estimates the time offset between a vision tracker's frame
// stream and an inertial stream for a VIO front-end.
package timealign

import (
	"github.com/golang/geo/r3"

	"go.viam.com/timealign/spatialmath"
)

// TrackerStatus is the closed set of verdicts a relative-rotation source can
// report for a pair of frames.
type TrackerStatus int

const (
	// StatusValid means a relative rotation was successfully recovered.
	StatusValid TrackerStatus = iota
	// StatusLowDisparity means the frames were too similar to recover motion.
	StatusLowDisparity
	// StatusFewMatches means too few feature correspondences were found.
	StatusFewMatches
	// StatusInvalid means the chain of relative rotations is broken; the
	// aligner restarts the chain at the current frame, which becomes the
	// reference for the next call.
	StatusInvalid
	// StatusDisabled means geometric verification is turned off; the aligner
	// short-circuits to a no-op success.
	StatusDisabled
)

// String implements fmt.Stringer for log-friendly output.
func (s TrackerStatus) String() string {
	switch s {
	case StatusValid:
		return "VALID"
	case StatusLowDisparity:
		return "LOW_DISPARITY"
	case StatusFewMatches:
		return "FEW_MATCHES"
	case StatusInvalid:
		return "INVALID"
	case StatusDisabled:
		return "DISABLED"
	default:
		return "UNKNOWN"
	}
}

// FrameOutput is the opaque per-frame handle the aligner caches across calls.
// It carries only what the aligner itself inspects; everything else the
// tracker needs to re-derive image features lives outside the core.
type FrameOutput struct {
	TimestampNs int64
}

// InertialBatch is the pair of aligned inertial sequences observed since the
// previous frame: nanosecond timestamps and 6-dof accel+gyro samples. Only
// Gyro is consumed by the aligner; Accel is carried to match the external
// wire contract but otherwise unused by this core.
type InertialBatch struct {
	StampsNs []int64
	Accel    []r3.Vector
	Gyro     []r3.Vector
}

// Len returns the number of inertial samples in the batch.
func (b InertialBatch) Len() int {
	return len(b.StampsNs)
}

// RelativeRotationSource is the capability abstraction for the tracker
// collaborator: a single synchronous query that returns both the tracking
// verdict and, when valid, the 3-dof rotation taking prev to curr. The
// aligner does not retain the source or the frames passed to it beyond the
// call.
type RelativeRotationSource interface {
	RelativeRotation(prev, curr FrameOutput) (TrackerStatus, spatialmath.Quaternion, error)
}

// Result is what EstimateTimeAlignment returns every call.
type Result struct {
	Valid bool
	// ImuTimeShift is the estimated offset, in seconds, to add to every
	// subsequent inertial timestamp before fusion.
	ImuTimeShift float64
}
