// Package main provides the CLI entrypoint for typer.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typer/internal/config"
	"github.com/verte-zerg/typer/internal/generator"
	"github.com/verte-zerg/typer/internal/log"
	loglogrus "github.com/verte-zerg/typer/internal/log/logrus"
	"github.com/verte-zerg/typer/internal/model"
	"github.com/verte-zerg/typer/internal/session"
	"github.com/verte-zerg/typer/internal/tui"
	"github.com/verte-zerg/typer/internal/wordlist"
)

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// Version is the application version (set via ldflags).
var Version = "dev"

var (
	practiceWordList string
	practiceSeed     int64

	logFile   string
	logDebug  bool
	logFormat string

	wordlistOut   string
	wordlistForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typer",
		Short:         "Timed terminal typing test",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "word list file (default: built-in words)")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "seed for reproducible text")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file (default: disabled)")
	rootCmd.Flags().BoolVar(&logDebug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&logFormat, "log-format", logFormatText, "log format (text or json)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newWordlistCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)
	applyInt64Config(cmd, "seed", &practiceSeed, fileCfg.Practice.Seed)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyBoolConfig(cmd, "debug", &logDebug, fileCfg.Log.Debug)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)

	cfg := model.Config{
		WordListPath: practiceWordList,
		Seed:         practiceSeed,
		HasSeed:      cmd.Flags().Changed("seed") || fileCfg.Practice.Seed != nil,
	}
	if err := validateLogFormat(logFormat); err != nil {
		return err
	}

	words, err := loadWords(cfg.WordListPath)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("typer needs an interactive terminal")
	}

	logger, closeLog, err := newLogger(logFile, logDebug, logFormat)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()

	gen := generator.New()
	if cfg.HasSeed {
		gen = generator.NewWithSeed(cfg.Seed)
	}
	engine, err := session.New(session.Config{
		Words:  words,
		Source: gen,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	return runProgram(cmd.Context(), tui.NewModel(engine, logger), logger)
}

func runProgram(ctx context.Context, m tea.Model, logger log.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(m, tea.WithAltScreen())

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				logger.Debugf("termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// TUI.
	{
		g.Add(
			func() error {
				if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
					return fmt.Errorf("failed to run TUI: %w", err)
				}
				return nil
			},
			func(_ error) {
				program.Quit()
			},
		)
	}

	return g.Run()
}

func loadWords(path string) ([]string, error) {
	if path == "" {
		words := wordlist.Default()
		if len(words) == 0 {
			return nil, wordlist.ErrEmptyWordList
		}
		return words, nil
	}
	words, err := wordlist.LoadWords(path)
	if err != nil {
		return nil, wordListLoadError(path, err)
	}
	return words, nil
}

func newLogger(path string, debug bool, format string) (log.Logger, func() error, error) {
	noClose := func() error { return nil }
	if path == "" {
		return log.Noop, noClose, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, noClose, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noClose, fmt.Errorf("failed to open log file: %w", err)
	}
	return buildLogger(f, debug, format), f.Close, nil
}

func buildLogger(out io.Writer, debug bool, format string) log.Logger {
	logrusLog := logrus.New()
	logrusLog.Out = out
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	switch format {
	case logFormatJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})
	logger.Debugf("Debug level is enabled")
	return logger
}

func validateLogFormat(format string) error {
	switch format {
	case logFormatText, logFormatJSON:
		return nil
	default:
		return fmt.Errorf("--log-format must be %q or %q", logFormatText, logFormatJSON)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Export the built-in word list for editing",
		Args:  cobra.NoArgs,
		RunE:  runWordlistCmd,
	}
	cmd.Flags().StringVar(&wordlistOut, "out", "", "output path (default: config dir words.txt)")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite existing file")
	return cmd
}

func runWordlistCmd(cmd *cobra.Command, _ []string) error {
	outPath := wordlistOut
	if outPath == "" {
		outPath = config.DefaultWordListPath()
	}
	if !wordlistForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("word list already exists: %s (use --force to overwrite)", outPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat word list: %w", err)
		}
	}
	if err := wordlist.Save(outPath, wordlist.Default()); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\nUse it with: typer --wordlist %s\n", outPath, outPath); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typer configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# wordlist = %q   # Word list file; whitespace separated words
# seed = 1                # Seed for reproducible text

[log]
# file = %q
# debug = false
# format = %q          # text or json
`,
		config.DefaultWordListPath(),
		config.DefaultLogPath(),
		logFormatText,
	)
}

func wordListLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("expected word list at: %s", path),
		"Export the built-in list: typer wordlist",
		"Or run without --wordlist to use the built-in words",
	}
	return fmt.Errorf("failed to load word list: %w\n%s", err, strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
