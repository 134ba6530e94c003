package media

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupported is returned by a Provider when the platform does not expose
// a media session API at all.
var ErrUnsupported = errors.New("media controls are not supported on this system")

// Properties is a snapshot of the metadata of the track a session is playing
type Properties struct {
	Title       string   // Track title
	Subtitle    string   // Track subtitle, rarely set
	Artist      string   // Artist name(s), comma separated
	AlbumTitle  string   // Album name
	AlbumArtist string   // Album artist name(s), comma separated
	TrackNumber int      // Position of the track on the album
	TrackCount  int      // Number of tracks on the album
	Genres      []string // Genre list
}

// Controls reports which transport controls a session currently permits
type Controls struct {
	Play     bool
	Pause    bool
	Stop     bool
	Previous bool
	Next     bool
}

// PlaybackInfo describes the playback state of a session
type PlaybackInfo struct {
	Controls Controls
	Status   PlayState
	Type     PlaybackType
	Rate     float64
	Shuffle  bool
	Repeat   RepeatMode
}

// Timeline holds the playback position of a session
type Timeline struct {
	Position time.Duration // Current playback position
	EndTime  time.Duration // Total track duration
}

// PlayState represents the current playback state of a session
type PlayState int

const (
	StateClosed   PlayState = iota // Session exists but has no media
	StateOpened                    // Media loaded, never started
	StateChanging                  // Switching tracks
	StateStopped                   // No track playing
	StatePlaying                   // Track is currently playing
	StatePaused                    // Track is paused
)

// String returns a human-readable representation of the PlayState
func (s PlayState) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpened:
		return "Opened"
	case StateChanging:
		return "Changing"
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// PlaybackType is the kind of media a session is playing
type PlaybackType int

const (
	TypeUnknown PlaybackType = iota
	TypeMusic
	TypeVideo
	TypeImage
)

func (t PlaybackType) String() string {
	switch t {
	case TypeMusic:
		return "Music"
	case TypeVideo:
		return "Video"
	case TypeImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// RepeatMode is the auto-repeat setting of a session
type RepeatMode int

const (
	RepeatNone  RepeatMode = iota // Play through once
	RepeatTrack                   // Repeat the current track
	RepeatList                    // Repeat the playlist
)

func (r RepeatMode) String() string {
	switch r {
	case RepeatTrack:
		return "Track"
	case RepeatList:
		return "List"
	default:
		return "None"
	}
}

// Session is one application's active media playback context
type Session interface {
	// ID returns the name of the application owning the session
	ID() string

	// Properties fetches the metadata of the current track
	Properties(ctx context.Context) (*Properties, error)

	// PlaybackInfo fetches the enabled controls and playback state
	PlaybackInfo(ctx context.Context) (*PlaybackInfo, error)

	// Timeline fetches the playback position and track length
	Timeline(ctx context.Context) (*Timeline, error)

	// Play resumes playback
	Play(ctx context.Context) error

	// Pause pauses playback
	Pause(ctx context.Context) error

	// TogglePlayPause toggles between play and pause
	TogglePlayPause(ctx context.Context) error

	// Stop stops playback
	Stop(ctx context.Context) error

	// Previous goes to the previous track
	Previous(ctx context.Context) error

	// Next skips to the next track
	Next(ctx context.Context) error
}

// SessionFunc is called once for every session a Provider discovers.
// It may be called from more than one goroutine at a time.
type SessionFunc func(ctx context.Context, s Session)

// Provider enumerates the active media sessions of a session registry
type Provider interface {
	// Sessions calls fn for each active session and returns once every
	// call has completed. It returns an error wrapping ErrUnsupported if
	// the registry is not available on this system.
	Sessions(ctx context.Context, fn SessionFunc) error
}
