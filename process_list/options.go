package process_list

import (
	"proclist/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

type config struct {
	sys  process.Snapshotter
	kind process.SnapshotKind
	log  *logger.Logger
}

// Option configures a List.
type Option func(*config)

// WithSnapshotter replaces the platform backend, e.g. with the portable one
// or with a test double.
func WithSnapshotter(sys process.Snapshotter) Option {
	return func(c *config) {
		c.sys = sys
	}
}

// WithSnapshotKind overrides the snapshot scope passed to the backend.
// The default is process.SnapshotProcesses.
func WithSnapshotKind(kind process.SnapshotKind) Option {
	return func(c *config) {
		c.kind = kind
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(log *logger.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

func newConfig(opts []Option) config {
	c := config{
		kind: process.SnapshotProcesses,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.sys == nil {
		c.sys = defaultSnapshotter()
	}
	if c.log == nil {
		c.log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "process-list"))
	}
	return c
}
