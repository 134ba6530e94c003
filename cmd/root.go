/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jfmyers9/mediactl/internal/config"
	"github.com/jfmyers9/mediactl/internal/control"
	"github.com/jfmyers9/mediactl/internal/media"
	"github.com/jfmyers9/mediactl/internal/shell"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitUnsupported = 2
)

var (
	configFile    string
	logLevel      string
	logFile       string
	timeout       time.Duration
	providerNames []string
)

// helpShown records that help text was printed; batch help always exits 1
var helpShown bool

// newProvider is replaced in tests
var newProvider = media.NewProvider

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mediactl [command] [match]",
	Short: "Control desktop media sessions",
	Long: `mediactl controls the media sessions of the desktop: play, pause,
stop, skip and print what is playing.

Sessions come from MPRIS players on the D-Bus session bus on Linux and BSD,
Apple Music on macOS, and optionally a Music Player Daemon server.

Without a command, mediactl enters interactive mode.

A match starting with "-" must follow "--", as in: mediactl play -- -live

Exit codes:
  0 - Command performed
  1 - Nothing performed, no matching player, or help shown
  2 - Media controls are not supported on this system`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRoot,
}

// exitError carries a process exit status through cobra
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes the command line and returns the process exit status
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	helpShown = false
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)

	var exitErr *exitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.code
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	case helpShown:
		return exitFailure
	default:
		return exitOK
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ~/.config/mediactl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Deadline for each command (default from config, 5s)")
	rootCmd.PersistentFlags().StringSliceVar(&providerNames, "provider", nil, "Session provider: system, mpris, applescript, mpd (repeatable)")

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		control.WriteHelp(cmd.OutOrStdout(), version, false)
		helpShown = true
	})
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runInteractive(cmd)
	}
	if len(args) > 2 || control.IsHelp(args[0]) {
		return showHelp(cmd)
	}

	if strings.EqualFold(args[0], "utf8") {
		if err := shell.EnableUTF8(); err != nil {
			return fmt.Errorf("failed to switch console to UTF-8: %w", err)
		}
		return runInteractive(cmd)
	}

	req := control.Request{Command: strings.ToLower(args[0])}
	if len(args) > 1 {
		req.Match = args[1]
	}
	return runCommand(cmd, req)
}

func showHelp(cmd *cobra.Command) error {
	control.WriteHelp(cmd.OutOrStdout(), version, false)
	return &exitError{code: exitFailure}
}

// session bundles what a command needs to talk to media sessions
type session struct {
	config   *config.Config
	logger   zerolog.Logger
	provider media.Provider
	close    func()
}

// setup loads configuration, applies flag overrides, and builds the logger
// and session provider. rawTerminal is set while an interactive console
// holds the terminal in raw mode.
func setup(cmd *cobra.Command, rawTerminal bool) (*session, error) {
	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("timeout") {
		if timeout <= 0 {
			return nil, fmt.Errorf("timeout must be positive, got %v", timeout)
		}
		cfg.Timeout = timeout
	}
	if flags.Changed("provider") {
		cfg.Providers = providerNames
	}

	logger, closeLog := setupLogger(cmd.ErrOrStderr(), logFile, cfg.LogLevel, rawTerminal)

	provider, err := newProvider(cfg.Providers, media.Options{
		MPD: media.MPDConfig{
			Network:  cfg.MPD.Network,
			Address:  cfg.MPD.Address,
			Password: cfg.MPD.Password,
		},
		MPRISConcurrency: cfg.MPRIS.Concurrency,
	}, logger)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to create session provider: %w", err)
	}

	logger.Debug().
		Strs("providers", cfg.Providers).
		Dur("timeout", cfg.Timeout).
		Msg("Configuration loaded")

	return &session{config: cfg, logger: logger, provider: provider, close: closeLog}, nil
}

// runCommand dispatches one request in batch mode
func runCommand(cmd *cobra.Command, req control.Request) error {
	s, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), s.config.Timeout)
	defer cancel()

	out := cmd.OutOrStdout()
	d := control.NewDispatcher(control.Config{}, s.provider, out, s.logger)

	res, err := d.Dispatch(ctx, req)
	if err != nil {
		return reportUnsupported(out, err)
	}
	if !res.Success {
		return &exitError{code: exitFailure}
	}
	return nil
}

// runInteractive runs the interactive shell on the command's input and output
func runInteractive(cmd *cobra.Command) (err error) {
	console, err := openConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := console.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to restore terminal: %w", cerr)
		}
	}()

	s, err := setup(cmd, shell.IsRaw(console))
	if err != nil {
		return err
	}
	defer s.close()

	d := control.NewDispatcher(control.Config{Interactive: true}, s.provider, console, s.logger)
	sh := shell.New(shell.Config{Version: version, Timeout: s.config.Timeout}, d, s.logger)

	if err := sh.Run(cmd.Context(), console); err != nil {
		return reportUnsupported(console, err)
	}
	return nil
}

// openConsole uses terminal line editing when both ends are the process's
// real terminal files
func openConsole(in io.Reader, out io.Writer) (shell.Console, error) {
	inFile, inOK := in.(*os.File)
	outFile, outOK := out.(*os.File)
	if inOK && outOK {
		return shell.NewConsole(inFile, outFile)
	}
	return shell.NewScanConsole(in, out), nil
}

// reportUnsupported converts media.ErrUnsupported into its console message
// and exit status; other errors pass through
func reportUnsupported(out io.Writer, err error) error {
	if errors.Is(err, media.ErrUnsupported) {
		fmt.Fprintln(out, "Media controls are not supported on this system.")
		return &exitError{code: exitUnsupported}
	}
	return err
}

// setupLogger creates a logger with the specified configuration. The
// returned func closes the log file, if one was opened.
func setupLogger(stderr io.Writer, logFile, logLevel string, rawTerminal bool) (zerolog.Logger, func()) {
	// Parse log level
	level := zerolog.WarnLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Set up output
	output := stderr
	closeFn := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
		} else {
			output = f
			closeFn = func() { _ = f.Close() }
		}
	}

	// Use pretty console output if logging to a terminal
	if f, ok := output.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		var out io.Writer = f
		if rawTerminal {
			out = shell.NewCRLFWriter(f)
		}
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	// Create logger
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger, closeFn
}
