package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jfmyers9/mediactl/internal/control"
	"github.com/jfmyers9/mediactl/internal/media"
	"github.com/rs/zerolog"
)

// recordingDispatcher records requests and returns a fixed error
type recordingDispatcher struct {
	requests  []control.Request
	deadlines []bool
	err       error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, req control.Request) (control.Result, error) {
	d.requests = append(d.requests, req)
	_, ok := ctx.Deadline()
	d.deadlines = append(d.deadlines, ok)
	return control.Result{}, d.err
}

func runShell(t *testing.T, d Dispatcher, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	sh := New(Config{Version: "test", Timeout: time.Second}, d, zerolog.Nop())
	err := sh.Run(context.Background(), NewScanConsole(strings.NewReader(input), &out))
	return out.String(), err
}

func TestShell_DispatchesLines(t *testing.T) {
	d := &recordingDispatcher{}

	_, err := runShell(t, d, "play\nPAUSE Spotify\n\n   \nprint Bohemian Rhapsody\nexit\nnext\n")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	want := []control.Request{
		{Command: "play"},
		{Command: "pause", Match: "Spotify"},
		{Command: "print", Match: "Bohemian Rhapsody"},
	}
	if diff := cmp.Diff(want, d.requests); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
	for i, ok := range d.deadlines {
		if !ok {
			t.Errorf("request %d dispatched without a deadline", i)
		}
	}
}

func TestShell_ExitTerminates(t *testing.T) {
	for _, exit := range []string{"exit", "EXIT", "  Exit  "} {
		t.Run(exit, func(t *testing.T) {
			d := &recordingDispatcher{}
			if _, err := runShell(t, d, exit+"\nplay\n"); err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}
			if len(d.requests) != 0 {
				t.Errorf("lines after exit were dispatched: %v", d.requests)
			}
		})
	}
}

func TestShell_EndOfInput(t *testing.T) {
	d := &recordingDispatcher{}
	if _, err := runShell(t, d, "play"); err != nil {
		t.Fatalf("Run() unexpected error at end of input: %v", err)
	}
	if len(d.requests) != 1 {
		t.Errorf("got %d requests, want 1", len(d.requests))
	}
}

func TestShell_Help(t *testing.T) {
	d := &recordingDispatcher{}
	out, err := runShell(t, d, "help\nexit\n")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "mediactl test\n") {
		t.Errorf("output should start with the banner:\n%s", out)
	}
	if !strings.Contains(out, "Usage: ([command]) ([match])") {
		t.Errorf("help not printed:\n%s", out)
	}
	if strings.Count(out, Prompt) != 2 {
		t.Errorf("expected 2 prompts, got output:\n%s", out)
	}
	if len(d.requests) != 0 {
		t.Errorf("help must not be dispatched: %v", d.requests)
	}
}

func TestShell_Unsupported(t *testing.T) {
	d := &recordingDispatcher{err: fmt.Errorf("wrapped: %w", media.ErrUnsupported)}

	_, err := runShell(t, d, "play\nnext\n")
	if !errors.Is(err, media.ErrUnsupported) {
		t.Fatalf("Run() error = %v, want ErrUnsupported", err)
	}
	if len(d.requests) != 1 {
		t.Errorf("loop continued after unsupported error: %v", d.requests)
	}
}

// emptyProvider reports no sessions
type emptyProvider struct{}

func (emptyProvider) Sessions(ctx context.Context, fn media.SessionFunc) error { return nil }

func TestShell_UnknownCommandContinues(t *testing.T) {
	var out bytes.Buffer
	console := NewScanConsole(strings.NewReader("shuffle\nprint\nexit\n"), &out)
	d := control.NewDispatcher(control.Config{Interactive: true}, emptyProvider{}, console, zerolog.Nop())

	err := New(Config{Version: "test"}, d, zerolog.Nop()).Run(context.Background(), console)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Unknown command: shuffle\nType \"help\" for help\n",
		"No media players found\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if i, j := strings.Index(got, "Unknown command"), strings.Index(got, "No media players"); i > j {
		t.Errorf("commands processed out of order:\n%s", got)
	}
}

func TestEnableUTF8(t *testing.T) {
	err := EnableUTF8()
	if runtime.GOOS == "windows" {
		// Fails when the test binary has no console attached
		if err != nil {
			t.Skipf("EnableUTF8() returned %v (no console attached?)", err)
		}
		return
	}
	if err != nil {
		t.Errorf("EnableUTF8() = %v, want nil", err)
	}
}

func TestNewCRLFWriter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "hello\n", "hello\r\n"},
		{"several lines", "a\nb\n", "a\r\nb\r\n"},
		{"no newline", "partial", "partial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := NewCRLFWriter(&buf).Write([]byte(tt.input))
			if err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if n != len(tt.input) {
				t.Errorf("Write() = %d, want %d", n, len(tt.input))
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsRaw(t *testing.T) {
	if IsRaw(NewScanConsole(strings.NewReader(""), io.Discard)) {
		t.Error("IsRaw(scan console) = true, want false")
	}
}
