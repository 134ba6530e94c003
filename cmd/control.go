package cmd

import (
	"fmt"

	"github.com/jfmyers9/mediactl/internal/control"
	"github.com/jfmyers9/mediactl/internal/shell"
	"github.com/spf13/cobra"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play [match]",
	Short: "Resume playback",
	Long:  `Resume playback in every matching media session that allows it.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runVerb(control.VerbPlay),
}

// pauseCmd represents the pause command
var pauseCmd = &cobra.Command{
	Use:   "pause [match]",
	Short: "Pause playback",
	Long:  `Pause playback in every matching media session that allows it.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runVerb(control.VerbPause),
}

// playpauseCmd represents the playpause command
var playpauseCmd = &cobra.Command{
	Use:   "playpause [match]",
	Short: "Toggle play/pause",
	Long:  `Toggle between playing and paused in every matching media session. If playing, pauses. If paused, resumes.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runVerb(control.VerbPlayPause),
}

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop [match]",
	Short: "Stop playback",
	Args:  cobra.ArbitraryArgs,
	RunE:  runVerb(control.VerbStop),
}

// prevCmd represents the prev command
var prevCmd = &cobra.Command{
	Use:   "prev [match]",
	Short: "Go to previous track",
	Long:  `Go to the previous track in every matching media session.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runVerb(control.VerbPrev),
}

// nextCmd represents the next command
var nextCmd = &cobra.Command{
	Use:   "next [match]",
	Short: "Skip to next track",
	Long:  `Skip to the next track in every matching media session.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runVerb(control.VerbNext),
}

// printCmd represents the print command
var printCmd = &cobra.Command{
	Use:   "print [match]",
	Short: "Print info about media sessions",
	Long: `Print track metadata, playback state and position for every matching
media session, or all sessions when no match is given.`,
	Args: cobra.ArbitraryArgs,
	RunE: runVerb(control.VerbPrint),
}

// utf8Cmd represents the utf8 command
var utf8Cmd = &cobra.Command{
	Use:   "utf8",
	Short: "Switch the console to UTF-8 and enter interactive mode",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return showHelp(cmd)
		}
		if err := shell.EnableUTF8(); err != nil {
			return fmt.Errorf("failed to switch console to UTF-8: %w", err)
		}
		return runInteractive(cmd)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(playpauseCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(utf8Cmd)
}

// runVerb builds the RunE for a transport subcommand. The command name and
// match together may not exceed two positional arguments. The match is
// passed through as is, even when it looks like a help token.
func runVerb(verb control.Verb) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return showHelp(cmd)
		}

		req := control.Request{Command: verb.String()}
		if len(args) == 1 {
			req.Match = args[0]
		}
		return runCommand(cmd, req)
	}
}
