//go:build darwin

package media

import "github.com/rs/zerolog"

// NewSystemProvider returns the Apple Music provider on macOS
func NewSystemProvider(opts Options, logger zerolog.Logger) Provider {
	return NewAppleScriptProvider(logger)
}
