package liveness

import (
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	// ServerKey is the Viper subkey under which server options are stored.
	ServerKey = "server"

	// DefaultAddress is the listen address used when none is configured.  The
	// wildcard host is deliberate:  a prober outside this process's network
	// namespace must be able to reach the endpoint.
	DefaultAddress = ":5000"

	// DefaultName is the server name used in logging when none is configured.
	DefaultName = "vigil"
)

// Options holds the configurable behavior of the liveness server.  The zero
// value is usable:  every field falls back to a sensible default.
type Options struct {
	// Name is the human-readable identifier for this server, used in log output.
	Name string `json:"name"`

	// Address is the listen address, e.g. ":5000".  If unset, DefaultAddress is used.
	Address string `json:"address"`

	// Greeting is the fixed response body for the liveness endpoint.
	Greeting string `json:"greeting"`

	// ReadTimeout is the maximum duration for reading the entire request.  If not supplied,
	// defaults to the internal net/http default.
	ReadTimeout time.Duration `json:"readTimeout,omitempty"`

	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout,omitempty"`

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration `json:"writeTimeout,omitempty"`

	// IdleTimeout is the maximum amount of time to wait for the next request when
	// keep-alives are enabled.
	IdleTimeout time.Duration `json:"idleTimeout,omitempty"`

	// MaxHeaderBytes controls the maximum number of bytes the server will read parsing
	// request headers.  If not supplied, defaults to the internal net/http default.
	MaxHeaderBytes int `json:"maxHeaderBytes,omitempty"`

	// DisableKeepAlives indicates whether the server should honor keep alives
	DisableKeepAlives bool `json:"disableKeepAlives,omitempty"`

	// MaxConcurrentRequests caps the number of requests serviced at once.  If
	// nonpositive, no limit is applied.
	MaxConcurrentRequests int `json:"maxConcurrentRequests,omitempty"`

	// CertificateFile is the HTTPS certificate file.  If both this field and KeyFile
	// are set, the server starts with TLS.
	CertificateFile string `json:"certificateFile,omitempty"`

	// KeyFile is the HTTPS key file.
	KeyFile string `json:"keyFile,omitempty"`
}

func (o *Options) name() string {
	if o != nil && len(o.Name) > 0 {
		return o.Name
	}

	return DefaultName
}

func (o *Options) address() string {
	if o != nil && len(o.Address) > 0 {
		return o.Address
	}

	return DefaultAddress
}

// Sub returns the standard child Viper, using ServerKey, for this package.
// If passed nil, this function returns nil.
func Sub(v *viper.Viper) *viper.Viper {
	if v != nil {
		return v.Sub(ServerKey)
	}

	return nil
}

// FromViper produces an Options from a (possibly nil) Viper instance.
// Duration fields may be specified as strings, e.g. "15s".
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
