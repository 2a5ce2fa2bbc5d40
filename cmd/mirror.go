package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/neptaco/unilog/pkg/debuglog"
	"github.com/neptaco/unilog/pkg/logger"
	"github.com/neptaco/unilog/pkg/ui"
	"github.com/neptaco/unilog/pkg/unity"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	mirrorSource    string
	mirrorFromStart bool
	mirrorQuiet     bool
	mirrorFormat    formatFlags
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Mirror a Unity log into the debug log files",
	Long: `Follow the Unity Editor log, a player log or any log file and write
every message it contains into the debug log as a record.

Messages are grouped with the stack trace lines that follow them and
classified as Log, Warning, Error or Exception.

Examples:
  # Mirror the Editor log
  unilog mirror --data-dir ./data

  # Mirror a player build's log, including what is already there
  unilog mirror --source player --company Acme --product Rocket --from-start

  # Mirror any file
  unilog mirror --source ./build/output.log --data-dir ./data`,
	Args: cobra.NoArgs,
	RunE: runMirror,
}

func init() {
	rootCmd.AddCommand(mirrorCmd)

	mirrorCmd.Flags().StringVar(&mirrorSource, "source", "editor", "log to follow: editor, player or a file path")
	mirrorCmd.Flags().BoolVar(&mirrorFromStart, "from-start", false, "mirror the existing content before following")
	mirrorCmd.Flags().BoolVarP(&mirrorQuiet, "quiet", "q", false, "do not echo mirrored messages")
	mirrorFormat.register(mirrorCmd)
}

func sourcePath(source string) (string, error) {
	switch strings.ToLower(source) {
	case "editor":
		return unity.GetEditorLogPath()
	case "player":
		company, product, err := productIdentity()
		if err != nil {
			return "", err
		}
		return unity.GetPlayerLogPath(company, product)
	default:
		return source, nil
	}
}

func runMirror(cmd *cobra.Command, args []string) error {
	path, err := sourcePath(mirrorSource)
	if err != nil {
		return fmt.Errorf("failed to get log path: %w", err)
	}
	logrus.Debugf("Mirroring %s", path)

	l, err := openLogger()
	if err != nil {
		return err
	}
	if !l.IsActive() {
		ui.Warn("Debug logger is inactive, nothing will be written")
	}

	stream := logger.NewStream()
	stream.Subscribe(l.HandleLog)
	if !mirrorQuiet {
		stream.Subscribe(echoHandler(mirrorFormat.formatter(noColor())))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	ui.Info("Following %s (Ctrl+C to stop)", path)
	followErr := logger.Follow(ctx, path, stream, logger.FollowOptions{FromStart: mirrorFromStart})
	if errors.Is(followErr, context.Canceled) {
		followErr = nil
	}

	closeErr := stream.Close()
	printMirrorSummary(stream, l)

	return errors.Join(followErr, closeErr)
}

// echoHandler prints each mirrored event the way `logs show` does
func echoHandler(f *logger.Formatter) debuglog.Handler {
	return func(message, trace string, severity debuglog.Severity) error {
		if f.ShouldShow(message) {
			fmt.Println(f.FormatLine(message))
		}
		for _, line := range strings.Split(strings.TrimRight(trace, "\n"), "\n") {
			if line != "" && f.ShouldShow(line) {
				fmt.Println(f.FormatLine(line))
			}
		}
		return nil
	}
}

func printMirrorSummary(stream *logger.Stream, l *debuglog.Logger) {
	warnings, errs := stream.GetStats()
	fmt.Println()
	ui.Info("Mirrored %d messages", stream.Messages())
	if stream.HasErrors() {
		ui.Error("%d errors, %d warnings", errs, warnings)
	} else if stream.HasWarnings() {
		ui.Warn("%d warnings", warnings)
	}
	if l.IsActive() {
		ui.Muted("Log file: %s", l.FilePath())
	}
}
