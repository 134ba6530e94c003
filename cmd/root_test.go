package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/jfmyers9/mediactl/internal/media"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type stubSession struct {
	id    string
	title string

	mu    sync.Mutex
	calls []string
}

func (s *stubSession) ID() string { return s.id }

func (s *stubSession) Properties(ctx context.Context) (*media.Properties, error) {
	return &media.Properties{Title: s.title}, nil
}

func (s *stubSession) PlaybackInfo(ctx context.Context) (*media.PlaybackInfo, error) {
	return &media.PlaybackInfo{
		Controls: media.Controls{Play: true, Pause: true, Stop: true, Previous: true, Next: true},
		Status:   media.StatePaused,
	}, nil
}

func (s *stubSession) Timeline(ctx context.Context) (*media.Timeline, error) {
	return &media.Timeline{}, nil
}

func (s *stubSession) Play(ctx context.Context) error            { return s.record("Play") }
func (s *stubSession) Pause(ctx context.Context) error           { return s.record("Pause") }
func (s *stubSession) TogglePlayPause(ctx context.Context) error { return s.record("TogglePlayPause") }
func (s *stubSession) Stop(ctx context.Context) error            { return s.record("Stop") }
func (s *stubSession) Previous(ctx context.Context) error        { return s.record("Previous") }
func (s *stubSession) Next(ctx context.Context) error            { return s.record("Next") }

func (s *stubSession) record(call string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	return nil
}

type stubProvider struct {
	sessions []*stubSession
	err      error
}

func (p *stubProvider) Sessions(ctx context.Context, fn media.SessionFunc) error {
	if p.err != nil {
		return p.err
	}
	for _, s := range p.sessions {
		fn(ctx, s)
	}
	return nil
}

// useProvider points the command tree at p and isolates it from the
// user's configuration
func useProvider(t *testing.T, p media.Provider) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	orig := newProvider
	newProvider = func(names []string, opts media.Options, logger zerolog.Logger) (media.Provider, error) {
		return p, nil
	}
	t.Cleanup(func() { newProvider = orig })
}

func execute(t *testing.T, stdin string, args ...string) (int, string) {
	t.Helper()
	t.Cleanup(resetHelpFlags)
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String()
}

// resetHelpFlags clears --help values left set by a previous run of the
// shared command tree
func resetHelpFlags() {
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		if f := c.Flags().Lookup("help"); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

func TestRun_Batch(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		sessions  []string
		title     string
		wantCode  int
		wantOut   string
		wantCalls []string
	}{
		{
			name:      "play all sessions",
			args:      []string{"play"},
			sessions:  []string{"Spotify"},
			wantCode:  0,
			wantCalls: []string{"Play"},
		},
		{
			name:      "verb case is ignored",
			args:      []string{"NEXT"},
			sessions:  []string{"Spotify"},
			wantCode:  0,
			wantCalls: []string{"Next"},
		},
		{
			name:      "match selects the session",
			args:      []string{"pause", "spotify"},
			sessions:  []string{"Spotify"},
			wantCode:  0,
			wantCalls: []string{"Pause"},
		},
		{
			name:      "match title containing help",
			args:      []string{"play", "Help!"},
			sessions:  []string{"Spotify"},
			title:     "Help!",
			wantCode:  0,
			wantCalls: []string{"Play"},
		},
		{
			name:      "match title containing question mark",
			args:      []string{"next", "where is my mind?"},
			sessions:  []string{"Spotify"},
			title:     "Where Is My Mind?",
			wantCode:  0,
			wantCalls: []string{"Next"},
		},
		{
			name:      "match starting with dash after separator",
			args:      []string{"pause", "--", "-Live"},
			sessions:  []string{"Spotify"},
			title:     "-Live",
			wantCode:  0,
			wantCalls: []string{"Pause"},
		},
		{
			name:     "no players",
			args:     []string{"stop"},
			wantCode: 1,
			wantOut:  "No media players found\n\n",
		},
		{
			name:     "no match",
			args:     []string{"prev", "vlc"},
			sessions: []string{"Spotify"},
			wantCode: 1,
			wantOut: "No media players found with the name vlc\n" +
				"Type \"print\" to print info about all available media players.\n\n",
		},
		{
			name:     "unknown command",
			args:     []string{"rewind"},
			sessions: []string{"Spotify"},
			wantCode: 1,
			wantOut:  "Unknown command: rewind\nRun \"mediactl help\" for help\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubProvider{}
			for _, id := range tt.sessions {
				p.sessions = append(p.sessions, &stubSession{id: id, title: tt.title})
			}
			useProvider(t, p)

			code, out := execute(t, "", tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if out != tt.wantOut {
				t.Errorf("output = %q, want %q", out, tt.wantOut)
			}

			var calls []string
			for _, s := range p.sessions {
				calls = append(calls, s.calls...)
			}
			if strings.Join(calls, ",") != strings.Join(tt.wantCalls, ",") {
				t.Errorf("calls = %v, want %v", calls, tt.wantCalls)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	for _, args := range [][]string{
		{"help"},
		{"--help"},
		{"-h"},
		{"?"},
		{"/h"},
		{"gethelp"},
		{"play", "a", "b"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			session := &stubSession{id: "Spotify"}
			useProvider(t, &stubProvider{sessions: []*stubSession{session}})

			code, out := execute(t, "", args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(out, "Usage: mediactl [command] ([match])") {
				t.Errorf("output missing usage line:\n%s", out)
			}
			if len(session.calls) != 0 {
				t.Errorf("help invoked session: %v", session.calls)
			}
		})
	}
}

func TestRun_Unsupported(t *testing.T) {
	useProvider(t, &stubProvider{err: errors.Join(errors.New("no bus"), media.ErrUnsupported)})

	code, out := execute(t, "", "print")
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if out != "Media controls are not supported on this system.\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRun_Interactive(t *testing.T) {
	session := &stubSession{id: "Spotify", title: "Song"}
	useProvider(t, &stubProvider{sessions: []*stubSession{session}})

	code, out := execute(t, "playpause\nbogus\nnext song\nexit\nplay\n")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if got := strings.Join(session.calls, ","); got != "TogglePlayPause,Next" {
		t.Errorf("calls = %s, want TogglePlayPause,Next", got)
	}
	if !strings.Contains(out, "Unknown command: bogus\nType \"help\" for help\n") {
		t.Errorf("output missing interactive guidance:\n%s", out)
	}
}

func TestRun_InteractiveUnsupported(t *testing.T) {
	useProvider(t, &stubProvider{err: media.ErrUnsupported})

	code, out := execute(t, "play\n")
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if strings.Count(out, "Media controls are not supported on this system.") != 1 {
		t.Errorf("output = %q", out)
	}
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.WarnLevel},
		{"bogus", zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, closeLog := setupLogger(&buf, "", tt.level, false)
			defer closeLog()
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetupLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediactl.log")

	var stderr bytes.Buffer
	logger, closeLog := setupLogger(&stderr, path, "info", false)
	logger.Info().Msg("hello")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"message":"hello"`) {
		t.Errorf("log file = %q", data)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr.String())
	}
}
