package timealign

import (
	"math"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"go.viam.com/timealign/logging"
	"go.viam.com/timealign/ringbuffer"
	"go.viam.com/timealign/spatialmath"
	"go.viam.com/timealign/xcorr"
)

type alignerState int

const (
	stateAwaitInitial alignerState = iota
	stateWarming
	stateDone
)

// Aligner is the cross-correlation time aligner: the per-frame state machine
// that estimates the time offset between a vision tracker and an inertial
// stream. It is not safe for concurrent use; callers must serialize calls to
// EstimateTimeAlignment on a single instance, and must deliver frames in
// strictly increasing timestamp order with inertial batches spanning
// [prevFrame, currFrame], whose first sample is taken to coincide with the
// previous frame.
type Aligner struct {
	cfg    Config
	logger logging.Logger

	state alignerState

	prevFrame     *FrameOutput
	prevVisionMag float64

	visionBuf *ringbuffer.RingBuffer
	imuBuf    *ringbuffer.RingBuffer

	doneResult Result
}

// NewAligner constructs an Aligner from a validated Config.
func NewAligner(cfg Config, logger logging.Logger) (*Aligner, error) {
	if err := cfg.Validate("timealign"); err != nil {
		return nil, err
	}
	return &Aligner{
		cfg:       cfg,
		logger:    logger,
		state:     stateAwaitInitial,
		visionBuf: ringbuffer.New(cfg.WindowSize),
		imuBuf:    ringbuffer.New(cfg.WindowSize),
	}, nil
}

// EstimateTimeAlignment is the sole mutating entry point, called once per new
// frame with the inertial samples observed since the previous one.
func (a *Aligner) EstimateTimeAlignment(
	source RelativeRotationSource,
	frame FrameOutput,
	batch InertialBatch,
) Result {
	if a.state == stateDone {
		return a.doneResult
	}

	if a.prevFrame == nil {
		a.logger.Debugw("caching initial frame, awaiting next frame to compute a relative rotation",
			"timestamp_ns", frame.TimestampNs)
		a.setPrevFrame(frame, 0)
		a.state = stateWarming
		return Result{Valid: false}
	}

	status, rotation, err := source.RelativeRotation(*a.prevFrame, frame)
	if err != nil {
		a.logger.Debugw("relative rotation query failed, treating as low disparity", "error", err)
		status = StatusLowDisparity
	}

	switch status {
	case StatusDisabled:
		a.logger.Infow("tracker disabled, time alignment is a no-op")
		return a.finish(Result{Valid: true, ImuTimeShift: 0})
	case StatusInvalid:
		a.logger.Debugw("relative rotation invalid, breaking the rotation chain at this frame")
		// The chain of consecutive relative rotations is broken, but the
		// current frame still becomes the reference point for the next
		// call: buffers are left untouched, and the vision-magnitude
		// reference resets to zero rather than carrying over a rotation
		// that was never confirmed.
		a.setPrevFrame(frame, 0)
		return Result{Valid: true, ImuTimeShift: 0}
	}

	visionMag := 0.0
	if status == StatusValid {
		visionMag = rotationMagnitude(rotation)
	}

	prevFrame := *a.prevFrame
	prevVisionMag := a.prevVisionMag
	a.setPrevFrame(frame, visionMag)

	n := batch.Len()
	if n == 0 {
		return Result{Valid: true, ImuTimeShift: 0}
	}

	var periodS float64
	if a.cfg.DoImuRateTimeAlignment {
		periodS = a.pushImuRateSamples(batch, prevFrame, frame, prevVisionMag, visionMag)
	} else {
		periodS = a.pushFrameRateSample(batch, prevFrame, frame, visionMag)
	}

	if !a.visionBuf.Full() || !a.imuBuf.Full() {
		return Result{Valid: false}
	}

	imuValues := a.imuBuf.Values()
	if !a.passesVarianceGate(imuValues) {
		a.logger.Warnw("inertial signal variance below noise gate, holding window open",
			"gyro_noise_density", a.cfg.GyroNoiseDensity)
		return Result{Valid: false}
	}

	if !a.cfg.DoImuRateTimeAlignment {
		periodS = meanFramePeriodS(a.visionBuf.Timestamps())
	}

	lag := xcorr.Correlate(a.visionBuf.Values(), imuValues, a.visionBuf.Len()-1)
	shift := float64(lag) * periodS
	a.logger.Infow("time alignment converged", "lag", lag, "shift_s", shift)
	return a.finish(Result{Valid: true, ImuTimeShift: shift})
}

func (a *Aligner) setPrevFrame(frame FrameOutput, visionMag float64) {
	f := frame
	a.prevFrame = &f
	a.prevVisionMag = visionMag
}

func (a *Aligner) finish(result Result) Result {
	a.state = stateDone
	a.doneResult = result
	return result
}

// pushImuRateSamples buffers one (timestamp, gyro magnitude) entry per
// inertial sample after the first (which coincides with prevFrame's time and
// would otherwise be double-counted), paired with a linearly interpolated
// vision magnitude at the same timestamp. It returns the inertial sampling
// period in seconds.
func (a *Aligner) pushImuRateSamples(
	batch InertialBatch,
	prevFrame, frame FrameOutput,
	prevVisionMag, visionMag float64,
) float64 {
	span := float64(frame.TimestampNs - prevFrame.TimestampNs)
	for k := 1; k < batch.Len(); k++ {
		t := batch.StampsNs[k]
		omega := spatialmath.GyroMagnitude(batch.Gyro[k])

		fraction := 0.0
		if span > 0 {
			fraction = float64(t-prevFrame.TimestampNs) / span
		}
		visionInterp := prevVisionMag + fraction*(visionMag-prevVisionMag)

		a.imuBuf.Push(ringbuffer.Entry{TimestampNs: t, Value: omega})
		a.visionBuf.Push(ringbuffer.Entry{TimestampNs: t, Value: visionInterp})
	}
	return a.cfg.NominalSamplingTimeS
}

// pushFrameRateSample reduces the inter-frame inertial batch to a single
// time-normalized mean angular rate, paired with the current frame's vision
// magnitude. It returns the (placeholder) period in seconds; the caller
// overwrites it with the mean frame period once the buffer is full.
func (a *Aligner) pushFrameRateSample(batch InertialBatch, prevFrame, frame FrameOutput, visionMag float64) float64 {
	var integral float64
	if batch.Len() >= 2 {
		timesS := make([]float64, batch.Len())
		omegas := make([]float64, batch.Len())
		for k, ts := range batch.StampsNs {
			timesS[k] = float64(ts) * 1e-9
			omegas[k] = spatialmath.GyroMagnitude(batch.Gyro[k])
		}
		integral = integrate.Trapezoidal(timesS, omegas)
	}

	elapsedS := float64(frame.TimestampNs-prevFrame.TimestampNs) * 1e-9
	meanOmega := 0.0
	if elapsedS > 0 {
		meanOmega = integral / elapsedS
	}

	a.visionBuf.Push(ringbuffer.Entry{TimestampNs: frame.TimestampNs, Value: visionMag})
	a.imuBuf.Push(ringbuffer.Entry{TimestampNs: frame.TimestampNs, Value: meanOmega})
	return a.cfg.NominalSamplingTimeS
}

// passesVarianceGate reports whether the inertial buffer carries enough
// signal for correlation to be meaningful.
func (a *Aligner) passesVarianceGate(imuValues []float64) bool {
	sigma := a.cfg.GyroNoiseDensity / math.Sqrt(a.cfg.NominalSamplingTimeS)
	threshold := (3 * sigma) * (3 * sigma)
	variance := stat.Variance(imuValues, nil)
	return variance >= threshold
}

// rotationMagnitude extracts ‖log(R)‖ from a relative rotation, treating a
// non-finite result as a degenerate zero-motion observation rather than
// propagating a numeric failure.
func rotationMagnitude(q spatialmath.Quaternion) float64 {
	mag := spatialmath.Magnitude(q)
	if math.IsNaN(mag) || math.IsInf(mag, 0) {
		return 0
	}
	return mag
}

// meanFramePeriodS computes the mean sampling period, in seconds, from a full
// buffer's nanosecond timestamps.
func meanFramePeriodS(stampsNs []int64) float64 {
	n := len(stampsNs)
	if n < 2 {
		return 0
	}
	span := float64(stampsNs[n-1]-stampsNs[0]) * 1e-9
	return span / float64(n-1)
}
