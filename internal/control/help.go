package control

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// ProgramName is the name the program refers to itself by in help text
const ProgramName = "mediactl"

// WriteInfo writes the program banner
func WriteInfo(w io.Writer, version string) {
	fmt.Fprintf(w, "%s %s\n", ProgramName, version)
	fmt.Fprintln(w, "Control desktop media sessions from the command line")
	fmt.Fprintln(w)
}

// WriteHelp writes usage help. Interactive mode omits the program name and
// lists the shell-only commands.
func WriteHelp(w io.Writer, version string, interactive bool) {
	if interactive {
		fmt.Fprintln(w, "Usage: ([command]) ([match])")
	} else {
		WriteInfo(w, version)
		fmt.Fprintf(w, "Usage: %s [command] ([match])\n", ProgramName)
	}

	commands := [][2]string{
		{"help", "Show this help"},
		{"play", "Play media"},
		{"pause", "Pause media"},
		{"playpause", "Play/Pause media"},
		{"stop", "Stop media"},
		{"prev", "Previous media"},
		{"next", "Next media"},
		{"print", "Print media info"},
	}
	if interactive {
		commands = append(commands, [2]string{"exit", "Exit"})
	} else {
		commands = append(commands, [2]string{"utf8", "Enter interactive mode with UTF-8 encoding"})
	}

	width := 0
	for _, c := range commands {
		width = max(width, runewidth.StringWidth(c[0]))
	}

	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %s - %s\n", runewidth.FillRight(c[0], width), c[1])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Match:")
	fmt.Fprintln(w, "  One of the following:")
	fmt.Fprintln(w, "    Name of the player application")
	fmt.Fprintln(w, "    Title of the media")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "If match is not specified, the command will be executed on all players.")
	if !interactive {
		fmt.Fprintln(w, "If command is not specified, the program will enter interactive mode.")
	}
	fmt.Fprintln(w)
}
