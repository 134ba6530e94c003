//go:build linux || freebsd || openbsd || netbsd || dragonfly

package media

import "github.com/rs/zerolog"

// NewSystemProvider returns the MPRIS provider on freedesktop systems
func NewSystemProvider(opts Options, logger zerolog.Logger) Provider {
	return NewMPRISProvider(logger, opts.MPRISConcurrency)
}
