package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// defaultMPRISConcurrency bounds how many players are probed at once
const defaultMPRISConcurrency = 4

// MPRISProvider enumerates media players that implement the MPRIS D-Bus interface
type MPRISProvider struct {
	logger      zerolog.Logger
	dial        func(ctx context.Context) (Bus, error)
	concurrency int
}

// NewMPRISProvider creates a provider backed by the D-Bus session bus.
// concurrency <= 0 selects the default.
func NewMPRISProvider(logger zerolog.Logger, concurrency int) *MPRISProvider {
	if concurrency <= 0 {
		concurrency = defaultMPRISConcurrency
	}
	return &MPRISProvider{
		logger:      logger.With().Str("component", "mpris").Logger(),
		dial:        dialSessionBus,
		concurrency: concurrency,
	}
}

// Sessions connects to the session bus and reports every MPRIS player on it.
// Players are probed concurrently, so fn may run on several goroutines.
func (p *MPRISProvider) Sessions(ctx context.Context, fn SessionFunc) error {
	bus, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("%w: session bus connection failed: %w", ErrUnsupported, err)
	}
	defer func() {
		if err := bus.Close(); err != nil {
			p.logger.Warn().Err(err).Msg("Failed to close D-Bus connection")
		}
	}()

	names, err := bus.ListNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bus names: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	playerCount := 0
	for _, name := range names {
		if !strings.HasPrefix(name, mprisBusPrefix) {
			continue
		}
		playerCount++

		g.Go(func() error {
			props, err := bus.PlayerProperties(gctx, name)
			if err != nil {
				// A player that stops answering is skipped, not fatal
				p.logger.Warn().Err(err).Str("player", name).Msg("Failed to fetch player properties")
				return nil
			}
			fn(gctx, &mprisSession{
				bus:    bus,
				dest:   name,
				id:     mprisSessionID(name),
				props:  props,
				logger: p.logger,
			})
			return nil
		})
	}

	err = g.Wait()
	p.logger.Debug().Int("count", playerCount).Msg("Player enumeration complete")
	return err
}

// mprisSessionID turns a bus name such as
// org.mpris.MediaPlayer2.firefox.instance_1_42 into the application name "firefox"
func mprisSessionID(busName string) string {
	id := strings.TrimPrefix(busName, mprisBusPrefix)
	if i := strings.Index(id, ".instance"); i > 0 {
		id = id[:i]
	}
	return id
}

// mprisSession is one MPRIS player, with properties captured at discovery
type mprisSession struct {
	bus    Bus
	dest   string
	id     string
	props  map[string]dbus.Variant
	logger zerolog.Logger
}

func (s *mprisSession) ID() string { return s.id }

func (s *mprisSession) metadata() map[string]dbus.Variant {
	if v, ok := s.props["Metadata"]; ok {
		// Some players return an empty or mistyped value when idle
		if m, ok := v.Value().(map[string]dbus.Variant); ok {
			return m
		}
	}
	return nil
}

func (s *mprisSession) Properties(ctx context.Context) (*Properties, error) {
	md := s.metadata()
	return &Properties{
		Title:       variantString(md["xesam:title"]),
		Artist:      strings.Join(variantStrings(md["xesam:artist"]), ", "),
		AlbumTitle:  variantString(md["xesam:album"]),
		AlbumArtist: strings.Join(variantStrings(md["xesam:albumArtist"]), ", "),
		TrackNumber: int(variantInt64(md["xesam:trackNumber"])),
		Genres:      variantStrings(md["xesam:genre"]),
	}, nil
}

func (s *mprisSession) PlaybackInfo(ctx context.Context) (*PlaybackInfo, error) {
	canControl := variantBool(s.props["CanControl"])

	info := &PlaybackInfo{
		Controls: Controls{
			Play:     variantBool(s.props["CanPlay"]),
			Pause:    variantBool(s.props["CanPause"]),
			Stop:     canControl,
			Previous: variantBool(s.props["CanGoPrevious"]),
			Next:     variantBool(s.props["CanGoNext"]),
		},
		Status:  parsePlaybackStatus(variantString(s.props["PlaybackStatus"])),
		Type:    TypeUnknown,
		Rate:    1,
		Shuffle: variantBool(s.props["Shuffle"]),
	}

	if v, ok := s.props["Rate"]; ok {
		if rate, ok := v.Value().(float64); ok {
			info.Rate = rate
		}
	}

	switch variantString(s.props["LoopStatus"]) {
	case "Track":
		info.Repeat = RepeatTrack
	case "Playlist":
		info.Repeat = RepeatList
	default:
		info.Repeat = RepeatNone
	}

	return info, nil
}

func (s *mprisSession) Timeline(ctx context.Context) (*Timeline, error) {
	// MPRIS reports times in microseconds
	return &Timeline{
		Position: time.Duration(variantInt64(s.props["Position"])) * time.Microsecond,
		EndTime:  time.Duration(variantInt64(s.metadata()["mpris:length"])) * time.Microsecond,
	}, nil
}

func (s *mprisSession) Play(ctx context.Context) error            { return s.call(ctx, "Play") }
func (s *mprisSession) Pause(ctx context.Context) error           { return s.call(ctx, "Pause") }
func (s *mprisSession) TogglePlayPause(ctx context.Context) error { return s.call(ctx, "PlayPause") }
func (s *mprisSession) Stop(ctx context.Context) error            { return s.call(ctx, "Stop") }
func (s *mprisSession) Previous(ctx context.Context) error        { return s.call(ctx, "Previous") }
func (s *mprisSession) Next(ctx context.Context) error            { return s.call(ctx, "Next") }

func (s *mprisSession) call(ctx context.Context, method string) error {
	if err := s.bus.CallPlayer(ctx, s.dest, method); err != nil {
		return fmt.Errorf("%s on %s: %w", method, s.dest, err)
	}
	s.logger.Debug().Str("player", s.dest).Str("method", method).Msg("Called player method")
	return nil
}

func parsePlaybackStatus(status string) PlayState {
	switch status {
	case "Playing":
		return StatePlaying
	case "Paused":
		return StatePaused
	case "Stopped":
		return StateStopped
	default:
		return StateClosed
	}
}

func variantString(v dbus.Variant) string {
	switch s := v.Value().(type) {
	case string:
		return s
	case dbus.ObjectPath:
		return string(s)
	default:
		return ""
	}
}

// variantStrings accepts both the MPRIS string list and a bare string,
// which some non-compliant players send
func variantStrings(v dbus.Variant) []string {
	switch s := v.Value().(type) {
	case []string:
		if len(s) == 0 {
			return nil
		}
		return s
	case string:
		if s == "" {
			return nil
		}
		return []string{s}
	default:
		return nil
	}
}

func variantBool(v dbus.Variant) bool {
	b, _ := v.Value().(bool)
	return b
}

func variantInt64(v dbus.Variant) int64 {
	switch n := v.Value().(type) {
	case int64:
		return n
	case uint64:
		return int64(n)
	case int32:
		return int64(n)
	case uint32:
		return int64(n)
	case int16:
		return int64(n)
	case uint16:
		return int64(n)
	case byte:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
