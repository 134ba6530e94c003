package media

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/fhs/gompd/v2/mpd"
	"github.com/rs/zerolog"
)

// mpdSessionID is the session identifier reported for a Music Player Daemon
const mpdSessionID = "mpd"

// mpdConn is the subset of *mpd.Client the provider uses
type mpdConn interface {
	Status() (mpd.Attrs, error)
	CurrentSong() (mpd.Attrs, error)
	Play(pos int) error
	Pause(pause bool) error
	Stop() error
	Next() error
	Previous() error
	Close() error
}

// MPDConfig holds the address of an MPD server
type MPDConfig struct {
	Network  string // "tcp" or "unix"
	Address  string // host:port or socket path
	Password string // Optional password
}

// MPDProvider reports a Music Player Daemon as a single session
type MPDProvider struct {
	config MPDConfig
	logger zerolog.Logger
	dial   func(cfg MPDConfig) (mpdConn, error)
}

// NewMPDProvider creates a provider for the MPD server described by cfg
func NewMPDProvider(cfg MPDConfig, logger zerolog.Logger) *MPDProvider {
	if cfg.Network == "" {
		cfg.Network = "tcp"
	}
	return &MPDProvider{
		config: cfg,
		logger: logger.With().Str("component", "mpd").Str("address", cfg.Address).Logger(),
		dial:   dialMPD,
	}
}

func dialMPD(cfg MPDConfig) (mpdConn, error) {
	var (
		client *mpd.Client
		err    error
	)
	if cfg.Password != "" {
		client, err = mpd.DialAuthenticated(cfg.Network, cfg.Address, cfg.Password)
	} else {
		client, err = mpd.Dial(cfg.Network, cfg.Address)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Sessions reports the MPD server if it can be reached. An unreachable
// server yields no session rather than an error.
func (p *MPDProvider) Sessions(ctx context.Context, fn SessionFunc) error {
	conn, err := p.dial(p.config)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Failed to connect to MPD")
		return nil
	}
	defer func() {
		if err := conn.Close(); err != nil {
			p.logger.Warn().Err(err).Msg("Failed to close MPD connection")
		}
	}()

	status, err := conn.Status()
	if err != nil {
		return fmt.Errorf("failed to get MPD status: %w", err)
	}
	song, err := conn.CurrentSong()
	if err != nil {
		return fmt.Errorf("failed to get current song: %w", err)
	}

	fn(ctx, &mpdSession{conn: conn, status: status, song: song, logger: p.logger})
	return nil
}

// mpdSession is an MPD server as seen by one status query
type mpdSession struct {
	conn   mpdConn
	status mpd.Attrs
	song   mpd.Attrs
	logger zerolog.Logger
}

func (s *mpdSession) ID() string { return mpdSessionID }

func (s *mpdSession) Properties(ctx context.Context) (*Properties, error) {
	title := s.song["Title"]
	if title == "" {
		title = s.song["Name"]
	}
	if title == "" && s.song["file"] != "" {
		title = path.Base(s.song["file"])
	}

	number, count := parseTrackField(s.song["Track"])

	var genres []string
	if g := s.song["Genre"]; g != "" {
		genres = []string{g}
	}

	return &Properties{
		Title:       title,
		Artist:      s.song["Artist"],
		AlbumTitle:  s.song["Album"],
		AlbumArtist: s.song["AlbumArtist"],
		TrackNumber: number,
		TrackCount:  count,
		Genres:      genres,
	}, nil
}

// parseTrackField parses MPD's "Track" tag, which is "3" or "3/12"
func parseTrackField(track string) (number, count int) {
	n, c, _ := strings.Cut(track, "/")
	number, _ = strconv.Atoi(strings.TrimSpace(n))
	count, _ = strconv.Atoi(strings.TrimSpace(c))
	return number, count
}

func (s *mpdSession) state() PlayState {
	switch s.status["state"] {
	case "play":
		return StatePlaying
	case "pause":
		return StatePaused
	default:
		return StateStopped
	}
}

func (s *mpdSession) PlaybackInfo(ctx context.Context) (*PlaybackInfo, error) {
	state := s.state()
	active := state != StateStopped

	repeat := RepeatNone
	if s.status["repeat"] == "1" {
		repeat = RepeatList
		if s.status["single"] == "1" {
			repeat = RepeatTrack
		}
	}

	return &PlaybackInfo{
		Controls: Controls{
			Play:     state != StatePlaying,
			Pause:    state == StatePlaying,
			Stop:     active,
			Previous: active,
			Next:     active,
		},
		Status:  state,
		Type:    TypeMusic,
		Rate:    playbackRate(state),
		Shuffle: s.status["random"] == "1",
		Repeat:  repeat,
	}, nil
}

func (s *mpdSession) Timeline(ctx context.Context) (*Timeline, error) {
	elapsed, _ := strconv.ParseFloat(s.status["elapsed"], 64)

	durationStr := s.status["duration"]
	if durationStr == "" {
		durationStr = s.song["duration"]
	}
	duration, _ := strconv.ParseFloat(durationStr, 64)

	return &Timeline{
		Position: secondsToDuration(elapsed),
		EndTime:  secondsToDuration(duration),
	}, nil
}

// Play resumes a paused song or starts the current one
func (s *mpdSession) Play(ctx context.Context) error {
	if s.state() == StatePaused {
		return s.do("pause off", func() error { return s.conn.Pause(false) })
	}
	return s.do("play", func() error { return s.conn.Play(-1) })
}

func (s *mpdSession) Pause(ctx context.Context) error {
	return s.do("pause", func() error { return s.conn.Pause(true) })
}

func (s *mpdSession) TogglePlayPause(ctx context.Context) error {
	if s.state() == StatePlaying {
		return s.Pause(ctx)
	}
	return s.Play(ctx)
}

func (s *mpdSession) Stop(ctx context.Context) error {
	return s.do("stop", s.conn.Stop)
}

func (s *mpdSession) Previous(ctx context.Context) error {
	return s.do("previous", s.conn.Previous)
}

func (s *mpdSession) Next(ctx context.Context) error {
	return s.do("next", s.conn.Next)
}

func (s *mpdSession) do(command string, fn func() error) error {
	if err := fn(); err != nil {
		return fmt.Errorf("mpd %s failed: %w", command, err)
	}
	s.logger.Debug().Str("command", command).Msg("Sent command to MPD")
	return nil
}
