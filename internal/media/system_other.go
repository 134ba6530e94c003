//go:build !linux && !freebsd && !openbsd && !netbsd && !dragonfly && !darwin

package media

import "github.com/rs/zerolog"

// NewSystemProvider reports media controls as unsupported on this platform
func NewSystemProvider(opts Options, logger zerolog.Logger) Provider {
	logger.Debug().Msg("No system media session API on this platform")
	return unsupportedProvider{}
}
