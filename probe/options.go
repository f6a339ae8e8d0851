package probe

import (
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	// ProbeKey is the Viper subkey under which probe options are stored.
	ProbeKey = "probe"

	// DefaultURL is the probe target used when none is configured.
	DefaultURL = "http://localhost:5000/"

	// DefaultInterval is the default time between probes.
	DefaultInterval = 30 * time.Second

	// DefaultTimeout is the default hard limit on a single probe attempt.
	DefaultTimeout = 10 * time.Second

	// DefaultStartPeriod is the default grace window after launch during which
	// failures do not mark the process unhealthy.
	DefaultStartPeriod = 30 * time.Second

	// DefaultRetries is the default number of consecutive failures before the
	// process is marked unhealthy.
	DefaultRetries = 3
)

// Options holds the configurable behavior of a Prober.  The zero value is
// usable:  every field falls back to its default.
type Options struct {
	// URL is the probe target, normally the root of the liveness endpoint.
	URL string `json:"url"`

	// Interval is the time between probes.  Nonpositive values mean DefaultInterval.
	Interval time.Duration `json:"interval"`

	// Timeout is the hard limit on a single probe attempt.  A probe exceeding
	// this duration is classified as a timeout.  Nonpositive values mean
	// DefaultTimeout.
	Timeout time.Duration `json:"timeout"`

	// StartPeriod is the grace window after launch.  Nonpositive values mean
	// DefaultStartPeriod.
	StartPeriod time.Duration `json:"startPeriod"`

	// Retries is the number of consecutive failures before the process is
	// marked unhealthy.  Nonpositive values mean DefaultRetries.
	Retries int `json:"retries"`
}

func (o *Options) url() string {
	if o != nil && len(o.URL) > 0 {
		return o.URL
	}

	return DefaultURL
}

func (o *Options) interval() time.Duration {
	if o != nil && o.Interval > 0 {
		return o.Interval
	}

	return DefaultInterval
}

func (o *Options) timeout() time.Duration {
	if o != nil && o.Timeout > 0 {
		return o.Timeout
	}

	return DefaultTimeout
}

func (o *Options) startPeriod() time.Duration {
	if o != nil && o.StartPeriod > 0 {
		return o.StartPeriod
	}

	return DefaultStartPeriod
}

func (o *Options) retries() int {
	if o != nil && o.Retries > 0 {
		return o.Retries
	}

	return DefaultRetries
}

// Sub returns the standard child Viper, using ProbeKey, for this package.
// If passed nil, this function returns nil.
func Sub(v *viper.Viper) *viper.Viper {
	if v != nil {
		return v.Sub(ProbeKey)
	}

	return nil
}

// FromViper produces an Options from a (possibly nil) Viper instance.
// Duration fields may be specified as strings, e.g. "30s".
func FromViper(v *viper.Viper) (*Options, error) {
	o := new(Options)
	if v != nil {
		err := v.Unmarshal(o, viper.DecodeHook(
			mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		))

		if err != nil {
			return nil, err
		}
	}

	return o, nil
}
