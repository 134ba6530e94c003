// Package control dispatches transport commands to media sessions.
package control

import "strings"

// Verb is a command that can be dispatched to media sessions
type Verb int

const (
	VerbPlay Verb = iota + 1
	VerbPause
	VerbPlayPause
	VerbStop
	VerbPrev
	VerbNext
	VerbPrint
)

var verbNames = map[string]Verb{
	"play":      VerbPlay,
	"pause":     VerbPause,
	"playpause": VerbPlayPause,
	"stop":      VerbStop,
	"prev":      VerbPrev,
	"next":      VerbNext,
	"print":     VerbPrint,
}

// ParseVerb looks up a command name. Names are case-insensitive.
func ParseVerb(name string) (Verb, bool) {
	v, ok := verbNames[strings.ToLower(name)]
	return v, ok
}

func (v Verb) String() string {
	for name, verb := range verbNames {
		if verb == v {
			return name
		}
	}
	return "unknown"
}

// Request is one command invocation: a command name and an optional
// match string narrowing the sessions it applies to
type Request struct {
	Command string
	Match   string
}

// ParseRequest splits an input line into command and match at the first
// space. The command is lower-cased; the match keeps its case.
func ParseRequest(line string) Request {
	command, match, _ := strings.Cut(strings.TrimSpace(line), " ")
	return Request{
		Command: strings.ToLower(command),
		Match:   strings.TrimSpace(match),
	}
}

// IsHelp reports whether a command-line token asks for help
func IsHelp(token string) bool {
	lower := strings.ToLower(token)
	return strings.Contains(lower, "help") ||
		strings.Contains(token, "?") ||
		lower == "/h" ||
		lower == "-h"
}
