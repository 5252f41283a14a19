package config

import (
	"log/slog"
	"time"

	"github.com/dshills/termcore/internal/config/loader"
	"github.com/dshills/termcore/internal/logging"
)

// Option configures a Reader or a Store.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	metrics    *Metrics
	fsys       loader.FileSystem
	debounce   time.Duration
	forceWatch bool
	host       *hostDefaults
	env        []loader.Override
}

func defaultOptions() options {
	return options{
		fsys:     loader.DefaultFS(),
		debounce: 100 * time.Millisecond,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.Component(o.logger, "config")
	return o
}

// WithLogger sets the logger. Without it nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics records load statistics in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithFS sets the file system documents are read from.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// WithDebounce sets how long a Store waits for file changes to settle
// before reloading.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithWatch makes Store.Start watch the file even when the document does
// not set live_config.
func WithWatch(force bool) Option {
	return func(o *options) {
		o.forceWatch = force
	}
}

// WithEnv applies the TERMCORE_ overrides found in environ, a list of
// "NAME=value" entries as returned by os.Environ, on top of every loaded
// document.
func WithEnv(environ []string) Option {
	return func(o *options) {
		o.env = loader.NewEnvLoader(loader.EnvPrefix).Load(environ)
	}
}

// withHost replaces the host dependent defaults.
func withHost(h hostDefaults) Option {
	return func(o *options) {
		o.host = &h
	}
}
