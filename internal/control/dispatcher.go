package control

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jfmyers9/mediactl/internal/media"
	"github.com/rs/zerolog"
)

// Config holds dispatcher configuration
type Config struct {
	Interactive bool // Selects the help guidance printed for unknown commands
}

// Result reports the outcome of one dispatch
type Result struct {
	AnySession bool // At least one session matched the request
	Success    bool // At least one action was performed
}

// transport describes a control-gated command
type transport struct {
	label   string
	enabled func(media.Controls) bool
	invoke  func(media.Session, context.Context) error
}

var transports = map[Verb]transport{
	VerbPlay: {
		label:   "Play",
		enabled: func(c media.Controls) bool { return c.Play },
		invoke:  media.Session.Play,
	},
	VerbPause: {
		label:   "Pause",
		enabled: func(c media.Controls) bool { return c.Pause },
		invoke:  media.Session.Pause,
	},
	VerbPlayPause: {
		label:   "Play/Pause",
		enabled: func(c media.Controls) bool { return c.Play || c.Pause },
		invoke:  media.Session.TogglePlayPause,
	},
	VerbStop: {
		label:   "Stop",
		enabled: func(c media.Controls) bool { return c.Stop },
		invoke:  media.Session.Stop,
	},
	VerbPrev: {
		label:   "Previous",
		enabled: func(c media.Controls) bool { return c.Previous },
		invoke:  media.Session.Previous,
	},
	VerbNext: {
		label:   "Next",
		enabled: func(c media.Controls) bool { return c.Next },
		invoke:  media.Session.Next,
	},
}

// Dispatcher runs requests against the sessions of a provider
type Dispatcher struct {
	config   Config
	provider media.Provider
	out      io.Writer
	logger   zerolog.Logger
}

// NewDispatcher creates a Dispatcher writing its console output to out
func NewDispatcher(cfg Config, provider media.Provider, out io.Writer, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		config:   cfg,
		provider: provider,
		out:      out,
		logger:   logger.With().Str("component", "dispatcher").Logger(),
	}
}

// Dispatch runs req against every matching session. The only error it
// returns wraps media.ErrUnsupported; every other condition is reported on
// the console and reflected in the Result.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	verb, ok := ParseVerb(req.Command)
	if !ok {
		d.writeUnknownCommand(req.Command)
		return Result{}, nil
	}

	d.logger.Debug().
		Str("command", verb.String()).
		Str("match", req.Match).
		Msg("Dispatching command")

	var (
		mu     sync.Mutex
		result Result
	)

	err := d.provider.Sessions(ctx, func(ctx context.Context, s media.Session) {
		var buf bytes.Buffer
		matched, performed := d.handleSession(ctx, &buf, verb, req.Match, s)
		if !matched {
			return
		}

		// Each session's output is written in one piece
		mu.Lock()
		defer mu.Unlock()
		result.AnySession = true
		if performed {
			result.Success = true
		}
		if _, err := d.out.Write(buf.Bytes()); err != nil {
			d.logger.Warn().Err(err).Msg("Failed to write output")
		}
	})
	if err != nil {
		if errors.Is(err, media.ErrUnsupported) {
			return Result{}, err
		}
		d.logger.Warn().Err(err).Msg("Session enumeration incomplete")
	}

	mu.Lock()
	defer mu.Unlock()
	if !result.AnySession {
		d.writeNoPlayers(req.Match)
	}
	return result, nil
}

// handleSession applies verb to s if it matches. It reports whether the
// session matched and whether an action was performed.
func (d *Dispatcher) handleSession(ctx context.Context, w io.Writer, verb Verb, match string, s media.Session) (matched, performed bool) {
	id := s.ID()
	logger := d.logger.With().Str("session", id).Logger()

	props, err := s.Properties(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to fetch media properties")
		props = &media.Properties{}
	}

	if match != "" && !strings.EqualFold(id, match) && !strings.EqualFold(props.Title, match) {
		logger.Debug().Str("title", props.Title).Msg("Session does not match, skipping")
		return false, false
	}

	info, err := s.PlaybackInfo(ctx)
	if err != nil {
		fmt.Fprintf(w, "Failed to read playback info for %s: %v\n", id, err)
		return true, false
	}

	if verb == VerbPrint {
		tl, err := s.Timeline(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to fetch timeline")
			tl = &media.Timeline{}
		}
		writeMediaInfo(w, id, props, info, tl)
		return true, true
	}

	t := transports[verb]
	if !t.enabled(info.Controls) {
		fmt.Fprintf(w, "%s is not enabled for %s\n", t.label, id)
		return true, false
	}

	if err := t.invoke(s, ctx); err != nil {
		logger.Warn().Err(err).Str("command", verb.String()).Msg("Transport command failed")
		fmt.Fprintf(w, "Failed to send %s to %s: %v\n", t.label, id, err)
		return true, false
	}

	logger.Info().Str("command", verb.String()).Msg("Transport command sent")
	return true, true
}

func (d *Dispatcher) writeUnknownCommand(command string) {
	fmt.Fprintf(d.out, "Unknown command: %s\n", command)
	if d.config.Interactive {
		fmt.Fprintln(d.out, `Type "help" for help`)
	} else {
		fmt.Fprintf(d.out, "Run \"%s help\" for help\n", ProgramName)
	}
	fmt.Fprintln(d.out)
}

func (d *Dispatcher) writeNoPlayers(match string) {
	if match != "" {
		fmt.Fprintf(d.out, "No media players found with the name %s\n", match)
		fmt.Fprintln(d.out, `Type "print" to print info about all available media players.`)
	} else {
		fmt.Fprintln(d.out, "No media players found")
	}
	fmt.Fprintln(d.out)
}
