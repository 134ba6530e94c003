// Package shell implements the interactive command loop.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jfmyers9/mediactl/internal/control"
	"github.com/rs/zerolog"
)

// Dispatcher runs one command request
type Dispatcher interface {
	Dispatch(ctx context.Context, req control.Request) (control.Result, error)
}

// Config holds shell configuration
type Config struct {
	Version string        // Shown in the banner
	Timeout time.Duration // Deadline for each dispatched command
}

// Shell reads commands from a Console and dispatches them one at a time
type Shell struct {
	config     Config
	dispatcher Dispatcher
	logger     zerolog.Logger
}

// New creates a Shell
func New(cfg Config, d Dispatcher, logger zerolog.Logger) *Shell {
	return &Shell{
		config:     cfg,
		dispatcher: d,
		logger:     logger.With().Str("component", "shell").Logger(),
	}
}

// Run prints the banner and processes lines until "exit" or end of input.
// It returns the dispatcher's error if media controls are unsupported.
func (s *Shell) Run(ctx context.Context, console Console) error {
	control.WriteInfo(console, s.config.Version)

	for {
		line, err := console.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug().Msg("End of input")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			continue
		case "help":
			control.WriteHelp(console, s.config.Version, true)
			continue
		case "exit":
			return nil
		}

		if err := s.dispatch(ctx, control.ParseRequest(line)); err != nil {
			return err
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, req control.Request) error {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	res, err := s.dispatcher.Dispatch(ctx, req)
	if err != nil {
		return err
	}
	s.logger.Debug().
		Str("command", req.Command).
		Bool("success", res.Success).
		Msg("Command finished")
	return nil
}
