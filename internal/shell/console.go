package shell

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Prompt is written before every line read in interactive mode
const Prompt = "mediactl> "

// Console is a line-oriented terminal. Everything written to it appears
// on the user's screen.
type Console interface {
	io.Writer

	// ReadLine prompts for and returns one line of input without its line
	// terminator. It returns io.EOF at end of input.
	ReadLine() (string, error)

	// Close restores the terminal to its original state
	Close() error
}

// NewConsole returns a line-editing console when in is a terminal and a
// plain line scanner otherwise
func NewConsole(in, out *os.File) (Console, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return NewScanConsole(in, out), nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	rw := struct {
		io.Reader
		io.Writer
	}{in, out}

	return &termConsole{
		term:  term.NewTerminal(rw, Prompt),
		fd:    fd,
		state: state,
	}, nil
}

// termConsole edits lines with golang.org/x/term
type termConsole struct {
	term  *term.Terminal
	fd    int
	state *term.State
}

func (c *termConsole) Write(p []byte) (int, error) { return c.term.Write(p) }
func (c *termConsole) ReadLine() (string, error)   { return c.term.ReadLine() }
func (c *termConsole) Close() error                { return term.Restore(c.fd, c.state) }

// IsRaw reports whether c has put the terminal in raw mode. Output that
// bypasses c then needs explicit carriage returns.
func IsRaw(c Console) bool {
	_, ok := c.(*termConsole)
	return ok
}

// crlfWriter expands "\n" to "\r\n"
type crlfWriter struct {
	w io.Writer
}

// NewCRLFWriter wraps w for writing to a terminal in raw mode
func NewCRLFWriter(w io.Writer) io.Writer {
	return &crlfWriter{w: w}
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// scanConsole reads lines from a non-terminal input such as a pipe
type scanConsole struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScanConsole creates a Console reading lines from in
func NewScanConsole(in io.Reader, out io.Writer) Console {
	return &scanConsole{scanner: bufio.NewScanner(in), out: out}
}

func (c *scanConsole) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c *scanConsole) ReadLine() (string, error) {
	if _, err := io.WriteString(c.out, Prompt); err != nil {
		return "", err
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.scanner.Text(), nil
}

func (c *scanConsole) Close() error { return nil }
