package cmd

import (
	"fmt"
	"strings"

	"github.com/neptaco/unilog/pkg/debuglog"
	"github.com/neptaco/unilog/pkg/markup"
	"github.com/neptaco/unilog/pkg/settings"
	"github.com/neptaco/unilog/pkg/ui"
	"github.com/spf13/cobra"
)

var (
	emitSeverity    string
	emitColor       string
	emitBold        bool
	emitAssertFalse bool
	emitJustWarning bool
	emitTag         string
)

var emitCmd = &cobra.Command{
	Use:   "emit <message>",
	Short: "Write a message through the debug logger",
	Long: `Start the debug logger from the settings file and write one message.

The message is also printed: Log messages to stdout, warnings and errors
to stderr.

Examples:
  unilog emit --data-dir ./data "level loaded"
  unilog emit --severity warning --color yellow --bold "low memory"
  unilog emit --assert-false --just-warning "save slot missing"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEmit,
}

func init() {
	rootCmd.AddCommand(emitCmd)

	emitCmd.Flags().StringVarP(&emitSeverity, "severity", "s", "log", "severity: log, warning, error, exception")
	emitCmd.Flags().StringVar(&emitColor, "color", "", "wrap the message in a color tag (name or #rrggbb)")
	emitCmd.Flags().BoolVar(&emitBold, "bold", false, "wrap the message in a bold tag")
	emitCmd.Flags().BoolVar(&emitAssertFalse, "assert-false", false, "log the message as a failed assertion")
	emitCmd.Flags().BoolVar(&emitJustWarning, "just-warning", false, "report the failed assertion as a warning")
	emitCmd.Flags().StringVar(&emitTag, "tag", debuglog.DefaultTag, "tag shown with console messages")
}

// emitRequest is a validated emit invocation
type emitRequest struct {
	severity debuglog.Severity
	message  string
	color    *markup.Color
}

// parseEmitArgs validates every flag before the logger is started, so a bad
// value never opens a new log session
func parseEmitArgs(args []string) (emitRequest, error) {
	req := emitRequest{message: strings.Join(args, " ")}

	severity, err := debuglog.ParseSeverity(emitSeverity)
	if err != nil {
		return req, err
	}
	req.severity = severity

	if emitColor != "" {
		c, err := markup.ParseColor(emitColor)
		if err != nil {
			return req, err
		}
		req.color = &c
	}

	if emitBold {
		req.message = markup.Bold(req.message)
	}
	return req, nil
}

func runEmit(cmd *cobra.Command, args []string) error {
	req, err := parseEmitArgs(args)
	if err != nil {
		return err
	}

	l, err := openLogger(debuglog.WithTag(emitTag))
	if err != nil {
		return err
	}

	if !l.IsActive() {
		ui.Warn("Debug logger is inactive, enable it with: unilog config set %s true", settings.KeyActivateLogger)
		return nil
	}

	if emitAssertFalse {
		err = l.Assert(false, req.message, emitJustWarning)
	} else {
		err = emit(l, req)
	}
	if err != nil {
		return fmt.Errorf("failed to write log record: %w", err)
	}

	ui.Muted("Written to %s", l.FilePath())
	return nil
}

func emit(l *debuglog.Logger, req emitRequest) error {
	if req.color == nil {
		switch req.severity {
		case debuglog.Warning:
			return l.Warning(req.message)
		case debuglog.Error:
			return l.Error(req.message)
		case debuglog.Log:
			return l.Info(req.message)
		}
	} else {
		switch req.severity {
		case debuglog.Warning:
			return l.WarningColored(req.message, *req.color)
		case debuglog.Error:
			return l.ErrorColored(req.message, *req.color)
		case debuglog.Log:
			return l.InfoColored(req.message, *req.color)
		}
	}

	// exceptions and asserts arrive from the host rather than the API
	return l.HandleLog(req.message, "", req.severity)
}
