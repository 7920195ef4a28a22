package timealign

import (
	"math"

	"go.viam.com/timealign/spatialmath"
)

// scriptedSource is the capability-abstraction stand-in for a mocked tracker
// collaborator: it returns pre-canned verdicts in order.
type scriptedSource struct {
	calls   []scriptedCall
	nextIdx int
}

type scriptedCall struct {
	status   TrackerStatus
	rotation spatialmath.Quaternion
	err      error
}

func newScriptedSource(calls ...scriptedCall) *scriptedSource {
	return &scriptedSource{calls: calls}
}

func (s *scriptedSource) RelativeRotation(_, _ FrameOutput) (TrackerStatus, spatialmath.Quaternion, error) {
	if s.nextIdx >= len(s.calls) {
		// Mirrors the original's ReturnHelper: once the script is exhausted,
		// keep returning INVALID rather than panicking.
		return StatusInvalid, spatialmath.Quaternion{}, nil
	}
	c := s.calls[s.nextIdx]
	s.nextIdx++
	return c.status, c.rotation, c.err
}

func (s *scriptedSource) invocations() int {
	return s.nextIdx
}

func identityQuat() spatialmath.Quaternion {
	return spatialmath.Quaternion{Real: 1}
}

func zQuat(angle float64) spatialmath.Quaternion {
	return spatialmath.Quaternion{Real: math.Cos(angle / 2), Kmag: math.Sin(angle / 2)}
}
