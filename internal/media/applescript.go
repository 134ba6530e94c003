package media

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// appleMusicID is the session identifier reported for Apple Music
const appleMusicID = "Music"

// AppleScriptProvider implements the Provider interface using AppleScript to query Apple Music
type AppleScriptProvider struct {
	logger zerolog.Logger
}

// NewAppleScriptProvider creates a new AppleScript-based session provider
func NewAppleScriptProvider(logger zerolog.Logger) *AppleScriptProvider {
	return &AppleScriptProvider{
		logger: logger.With().Str("component", "applescript").Logger(),
	}
}

// Sessions reports Apple Music as a single session when the app is running.
// This uses a single osascript call that checks if Music is running and queries
// track data atomically, avoiding the overhead of two separate subprocess spawns.
func (p *AppleScriptProvider) Sessions(ctx context.Context, fn SessionFunc) error {
	script := `
tell application "System Events"
	if not ((name of processes) contains "Music") then
		return "not_running"
	end if
end tell
tell application "Music"
	set shuffleState to shuffle enabled as string
	set repeatState to song repeat as string
	if player state is stopped then
		return "stopped|||" & shuffleState & "|||" & repeatState
	else
		set trackName to name of current track
		set trackArtist to artist of current track
		set trackAlbum to album of current track
		set trackAlbumArtist to album artist of current track
		set trackNumber to track number of current track
		set trackCount to track count of current track
		set trackGenre to genre of current track
		set trackDuration to duration of current track
		set playerPos to player position
		set playerState to player state as string

		return trackName & "|||" & trackArtist & "|||" & trackAlbum & "|||" & trackAlbumArtist & "|||" & trackNumber & "|||" & trackCount & "|||" & trackGenre & "|||" & trackDuration & "|||" & playerPos & "|||" & playerState & "|||" & shuffleState & "|||" & repeatState
	end if
end tell`

	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	output, err := cmd.Output()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return fmt.Errorf("osascript unavailable: %w", ErrUnsupported)
		}
		// If there's an error, try to extract the error message
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("osascript error: %s", string(exitErr.Stderr))
		}
		return fmt.Errorf("failed to execute osascript: %w", err)
	}

	result := strings.TrimSpace(string(output))
	if result == "not_running" {
		p.logger.Debug().Msg("Music is not running")
		return nil
	}

	snap, err := parseTrackOutput(result)
	if err != nil {
		return fmt.Errorf("failed to parse track output: %w", err)
	}

	fn(ctx, &appleMusicSession{snapshot: snap, logger: p.logger})
	return nil
}

// musicSnapshot is everything one osascript query reports about Apple Music
type musicSnapshot struct {
	props    Properties
	timeline Timeline
	state    PlayState
	shuffle  bool
	repeat   RepeatMode
}

// parseTrackOutput parses the delimited output from the AppleScript
func parseTrackOutput(output string) (*musicSnapshot, error) {
	// Split by our custom delimiter
	parts := strings.Split(output, "|||")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) == 3 && parts[0] == "stopped" {
		return &musicSnapshot{
			state:   StateStopped,
			shuffle: parts[1] == "true",
			repeat:  parseSongRepeat(parts[2]),
		}, nil
	}
	if len(parts) != 12 {
		return nil, fmt.Errorf("expected 12 parts, got %d: %q", len(parts), output)
	}

	trackNumber, err := strconv.Atoi(parts[4])
	if err != nil {
		return nil, fmt.Errorf("failed to parse track number %q: %w", parts[4], err)
	}
	trackCount, err := strconv.Atoi(parts[5])
	if err != nil {
		return nil, fmt.Errorf("failed to parse track count %q: %w", parts[5], err)
	}

	// Parse duration (in seconds as float)
	durationSec, err := strconv.ParseFloat(parts[7], 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse duration %q: %w", parts[7], err)
	}

	// Parse position (in seconds as float)
	positionSec, err := strconv.ParseFloat(parts[8], 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse position %q: %w", parts[8], err)
	}

	var state PlayState
	switch parts[9] {
	case "playing":
		state = StatePlaying
	case "paused":
		state = StatePaused
	case "stopped":
		state = StateStopped
	case "fast forwarding", "rewinding":
		state = StateChanging
	default:
		return nil, fmt.Errorf("unknown player state: %q", parts[9])
	}

	var genres []string
	if parts[6] != "" {
		genres = []string{parts[6]}
	}

	return &musicSnapshot{
		props: Properties{
			Title:       parts[0],
			Artist:      parts[1],
			AlbumTitle:  parts[2],
			AlbumArtist: parts[3],
			TrackNumber: trackNumber,
			TrackCount:  trackCount,
			Genres:      genres,
		},
		timeline: Timeline{
			Position: secondsToDuration(positionSec),
			EndTime:  secondsToDuration(durationSec),
		},
		state:   state,
		shuffle: parts[10] == "true",
		repeat:  parseSongRepeat(parts[11]),
	}, nil
}

func parseSongRepeat(s string) RepeatMode {
	switch s {
	case "one":
		return RepeatTrack
	case "all":
		return RepeatList
	default:
		return RepeatNone
	}
}

// secondsToDuration converts seconds (as float) to time.Duration
func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// appleMusicSession is the Apple Music session as seen by one query
type appleMusicSession struct {
	snapshot *musicSnapshot
	logger   zerolog.Logger
}

func (s *appleMusicSession) ID() string { return appleMusicID }

func (s *appleMusicSession) Properties(ctx context.Context) (*Properties, error) {
	props := s.snapshot.props
	return &props, nil
}

func (s *appleMusicSession) PlaybackInfo(ctx context.Context) (*PlaybackInfo, error) {
	loaded := s.snapshot.state != StateStopped
	return &PlaybackInfo{
		Controls: Controls{
			Play:     s.snapshot.state != StatePlaying,
			Pause:    s.snapshot.state == StatePlaying,
			Stop:     loaded,
			Previous: loaded,
			Next:     loaded,
		},
		Status:  s.snapshot.state,
		Type:    TypeMusic,
		Rate:    playbackRate(s.snapshot.state),
		Shuffle: s.snapshot.shuffle,
		Repeat:  s.snapshot.repeat,
	}, nil
}

func (s *appleMusicSession) Timeline(ctx context.Context) (*Timeline, error) {
	tl := s.snapshot.timeline
	return &tl, nil
}

// Play resumes playback in Apple Music
func (s *appleMusicSession) Play(ctx context.Context) error {
	return s.tell(ctx, "play")
}

// Pause pauses playback in Apple Music
func (s *appleMusicSession) Pause(ctx context.Context) error {
	return s.tell(ctx, "pause")
}

// TogglePlayPause toggles between play and pause in Apple Music
func (s *appleMusicSession) TogglePlayPause(ctx context.Context) error {
	return s.tell(ctx, "playpause")
}

// Stop stops playback in Apple Music
func (s *appleMusicSession) Stop(ctx context.Context) error {
	return s.tell(ctx, "stop")
}

// Previous goes back to the previous track in Apple Music
func (s *appleMusicSession) Previous(ctx context.Context) error {
	return s.tell(ctx, "back track")
}

// Next skips to the next track in Apple Music
func (s *appleMusicSession) Next(ctx context.Context) error {
	return s.tell(ctx, "next track")
}

func (s *appleMusicSession) tell(ctx context.Context, command string) error {
	script := fmt.Sprintf(`tell application "Music" to %s`, command)
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to %s: %w", command, err)
	}
	s.logger.Debug().Str("command", command).Msg("Sent command to Music")
	return nil
}

// playbackRate reports 1 while playing and 0 otherwise
func playbackRate(state PlayState) float64 {
	if state == StatePlaying {
		return 1
	}
	return 0
}
