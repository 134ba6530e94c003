package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Options configures the providers built by NewProvider
type Options struct {
	MPD              MPDConfig
	MPRISConcurrency int
}

// NewProvider builds a provider from a list of provider names:
// "system" (the platform default), "mpris", "applescript" and "mpd".
// More than one name yields a MultiProvider.
func NewProvider(names []string, opts Options, logger zerolog.Logger) (Provider, error) {
	if len(names) == 0 {
		names = []string{"system"}
	}

	providers := make([]Provider, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "system":
			providers = append(providers, NewSystemProvider(opts, logger))
		case "mpris":
			providers = append(providers, NewMPRISProvider(logger, opts.MPRISConcurrency))
		case "applescript":
			providers = append(providers, NewAppleScriptProvider(logger))
		case "mpd":
			providers = append(providers, NewMPDProvider(opts.MPD, logger))
		default:
			return nil, fmt.Errorf("unknown provider %q", name)
		}
	}

	if len(providers) == 1 {
		return providers[0], nil
	}
	return NewMultiProvider(logger, providers...), nil
}

// MultiProvider reports the sessions of several providers, one after another
type MultiProvider struct {
	providers []Provider
	logger    zerolog.Logger
}

// NewMultiProvider combines providers into one
func NewMultiProvider(logger zerolog.Logger, providers ...Provider) *MultiProvider {
	return &MultiProvider{
		providers: providers,
		logger:    logger.With().Str("component", "multi").Logger(),
	}
}

// Sessions runs every provider in turn. ErrUnsupported is only returned
// when none of the providers is supported; other errors are joined.
func (m *MultiProvider) Sessions(ctx context.Context, fn SessionFunc) error {
	var errs []error
	unsupported := 0

	for _, p := range m.providers {
		err := p.Sessions(ctx, fn)
		switch {
		case err == nil:
		case errors.Is(err, ErrUnsupported):
			m.logger.Debug().Err(err).Msg("Provider unsupported, skipping")
			unsupported++
		default:
			errs = append(errs, err)
		}
	}

	if len(m.providers) > 0 && unsupported == len(m.providers) {
		return ErrUnsupported
	}
	return errors.Join(errs...)
}

// unsupportedProvider is the system provider on platforms without a
// known media session API
type unsupportedProvider struct{}

func (unsupportedProvider) Sessions(ctx context.Context, fn SessionFunc) error {
	return ErrUnsupported
}
