package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/neptaco/unilog/pkg/debuglog"
	"github.com/neptaco/unilog/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logFollow bool
	logLines  int
	logRaw    bool
	logFormat formatFlags
)

// formatFlags configure how log lines are filtered and shortened
type formatFlags struct {
	fullTrace     bool
	noTrace       bool
	maxLineLength int
	projectPaths  []string
}

func (f *formatFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.fullTrace, "full-trace", false, "Show full stack traces including runtime and Unity internals")
	cmd.Flags().BoolVar(&f.noTrace, "no-trace", false, "Hide all stack traces and call paths")
	cmd.Flags().IntVar(&f.maxLineLength, "max-line-length", logger.DefaultMaxLineLength, "Truncate longer lines (0 = no limit)")
	cmd.Flags().StringSliceVar(&f.projectPaths, "project-paths", []string{"Assets/", "Packages/"},
		"Stack trace paths or Go module prefixes kept when traces are filtered")
}

func (f *formatFlags) formatter(noColor bool) *logger.Formatter {
	return logger.NewFormatter(
		logger.WithNoColor(noColor),
		logger.WithHideStackTrace(!f.fullTrace),
		logger.WithHideAllStackTraces(f.noTrace),
		logger.WithMaxLineLength(f.maxLineLength),
		logger.WithProjectPaths(f.projectPaths),
	)
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Inspect exported debug log files",
}

var logsShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Display a debug log file",
	Long: `Display a debug log file with syntax highlighting. Without an
argument the most recent file in the Logs folder is shown.

Record lines are colorized:
  - Red: Error, Exception and Assert records
  - Yellow: Warning records
  - Green: Log records
  - Gray: Call paths and separators

Examples:
  # Show last 100 lines of the newest file (default)
  unilog logs show --data-dir ./data

  # Show last 500 lines
  unilog logs show -n 500

  # Follow the newest file
  unilog logs show -f

  # Show raw output without colors
  unilog logs show --raw

  # Keep this module's frames in call paths, hide the rest
  unilog logs show --project-paths github.com/acme/rocket/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogsShow,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsShowCmd)

	logsShowCmd.Flags().BoolVarP(&logFollow, "follow", "f", false, "Follow log output in real-time")
	logsShowCmd.Flags().IntVarP(&logLines, "lines", "n", 100, "Number of lines to show")
	logsShowCmd.Flags().BoolVar(&logRaw, "raw", false, "Show raw output without colors or filtering")
	logFormat.register(logsShowCmd)
}

func runLogsShow(cmd *cobra.Command, args []string) error {
	logPath, err := selectLogFile(args)
	if err != nil {
		return err
	}

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logPath)
	}

	logrus.Debugf("Log file path: %s", logPath)

	if logFollow {
		return followLog(cmd.Context(), logPath)
	}

	return showLog(logPath, logLines)
}

// selectLogFile resolves a file argument against the Logs folder, or picks
// the newest file there
func selectLogFile(args []string) (string, error) {
	if len(args) == 1 && filepath.IsAbs(args[0]) {
		return args[0], nil
	}

	dir, err := logsDir()
	if err != nil {
		return "", err
	}

	if len(args) == 1 {
		return filepath.Join(dir, args[0]), nil
	}

	files, err := debuglog.New(dir).Files()
	if err != nil {
		return "", fmt.Errorf("failed to list log files: %w", err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no log files in %s", dir)
	}
	return files[0].Path, nil
}

func newLogFormatter() *logger.Formatter {
	return logFormat.formatter(logRaw || noColor())
}

func printLine(f *logger.Formatter, line string) {
	if logRaw {
		fmt.Println(line)
		return
	}
	if f.ShouldShow(line) {
		fmt.Println(f.FormatLine(line))
	}
}

func followLog(ctx context.Context, logPath string) error {
	fmt.Printf("Following %s (Ctrl+C to stop)\n\n", logPath)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	formatter := newLogFormatter()
	w := &lineWriter{emit: func(line string) { printLine(formatter, line) }}
	err := logger.Follow(ctx, logPath, w, logger.FollowOptions{})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// lineWriter calls emit for every complete line written to it
type lineWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	emit func(line string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		i := bytes.IndexByte(w.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimRight(w.buf.Next(i+1), "\r\n"))
		w.emit(line)
	}
	return len(p), nil
}

func showLog(logPath string, lines int) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	// Read all lines into a buffer
	var allLines []string
	scanner := bufio.NewScanner(file)

	// Increase buffer size for long lines
	const maxCapacity = 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	for scanner.Scan() {
		allLines = append(allLines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}

	start := len(allLines) - lines
	if start < 0 {
		start = 0
	}

	formatter := newLogFormatter()
	for i := start; i < len(allLines); i++ {
		printLine(formatter, allLines[i])
	}

	return nil
}
