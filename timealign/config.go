package timealign

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// Config is the flat set of options consumed once at Aligner construction.
type Config struct {
	// DoImuRateTimeAlignment, when set, accumulates one buffered value per
	// inertial sample; otherwise each inter-frame inertial batch is reduced
	// to a single scalar per frame.
	DoImuRateTimeAlignment bool `json:"do_imu_rate_time_alignment"`
	// WindowSize is the capacity of both ring buffers.
	WindowSize int `json:"time_alignment_window_size"`
	// GyroNoiseDensity derives the variance-gate threshold.
	GyroNoiseDensity float64 `json:"gyro_noise_density"`
	// NominalSamplingTimeS is the seconds-per-step of the active grid: the
	// inertial period in inertial-rate mode, the frame period in frame-rate
	// mode.
	NominalSamplingTimeS float64 `json:"nominal_sampling_time_s"`
}

// Validate checks that the config can produce a usable Aligner, returning a
// descriptive error rooted at path (the config tree location, e.g. a
// component name) if not. Every failing field is reported, not just the
// first, so a caller fixing config by hand sees all the problems at once.
func (c *Config) Validate(path string) error {
	var err error
	if c.WindowSize < 2 {
		err = multierr.Append(err, utils.NewConfigValidationError(path,
			errors.New("time_alignment_window_size must be >= 2")))
	}
	if c.NominalSamplingTimeS <= 0 {
		err = multierr.Append(err, utils.NewConfigValidationError(path,
			errors.New("nominal_sampling_time_s must be > 0")))
	}
	if c.GyroNoiseDensity < 0 {
		err = multierr.Append(err, utils.NewConfigValidationError(path,
			errors.New("gyro_noise_density must be >= 0")))
	}
	return err
}
