package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/neptaco/unilog/pkg/debuglog"
	"github.com/neptaco/unilog/pkg/markup"
)

var tagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true)

// ConsoleSink prints messages forwarded by a debuglog.Logger, rendering
// rich-text tags as terminal styles
type ConsoleSink struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	noColor bool
}

// NewConsoleSink writes Log messages to stdout and everything else to stderr.
// Colors are disabled when stdout is not a terminal.
func NewConsoleSink(noColor bool) *ConsoleSink {
	return &ConsoleSink{
		out:     os.Stdout,
		errOut:  os.Stderr,
		noColor: noColor || !isTTY(),
	}
}

// NewWriterSink sends every message to w
func NewWriterSink(w io.Writer, noColor bool) *ConsoleSink {
	return &ConsoleSink{out: w, errOut: w, noColor: noColor}
}

var _ debuglog.Sink = (*ConsoleSink)(nil)

func (c *ConsoleSink) Log(severity debuglog.Severity, tag, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := c.out
	if severity != debuglog.Log {
		w = c.errOut
	}
	fmt.Fprintln(w, c.render(severity, tag, message))
}

func (c *ConsoleSink) render(severity debuglog.Severity, tag, message string) string {
	if c.noColor {
		return fmt.Sprintf("[%s] %s", tag, markup.Strip(message))
	}

	text := markup.ToANSI(message)
	switch severity {
	case debuglog.Warning:
		text = colorPalette.warn.Render(text)
	case debuglog.Error, debuglog.Exception, debuglog.Assert:
		text = colorPalette.err.Render(text)
	}
	return tagStyle.Render("["+tag+"]") + " " + text
}
