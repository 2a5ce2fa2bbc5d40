// Package ui prints styled command output, renders forwarded debug log
// messages and runs spinners for slow file operations.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

type palette struct {
	success lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	info    lipgloss.Style
	muted   lipgloss.Style
}

var colorPalette = palette{
	success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	err:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	info:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

var (
	osStdout io.Writer = os.Stdout
	osStderr io.Writer = os.Stderr
)

var (
	mu      sync.Mutex
	noColor bool
	out     = osStdout
	errOut  = osStderr
	styles  = colorPalette

	// Logger for debug output
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "unilog",
	})

	debugMode = false
)

// SetDebugMode enables or disables debug output
func SetDebugMode(enabled bool) {
	debugMode = enabled
	if enabled {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
}

// SetNoColor renders every message without styles
func SetNoColor(disabled bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		styles = palette{success: plain, err: plain, warn: plain, info: plain, muted: plain}
	} else {
		styles = colorPalette
	}
}

// SetOutput redirects messages; nil keeps the current writer
func SetOutput(stdout, stderr io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if stdout != nil {
		out = stdout
	}
	if stderr != nil {
		errOut = stderr
	}
}

func printStyled(w func() io.Writer, style func(palette) lipgloss.Style, text string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(w(), style(styles).Render(text))
}

func stdout() io.Writer { return out }
func stderr() io.Writer { return errOut }

// Info prints an informational message
func Info(format string, args ...any) {
	printStyled(stdout, func(p palette) lipgloss.Style { return p.info }, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark
func Success(format string, args ...any) {
	printStyled(stdout, func(p palette) lipgloss.Style { return p.success }, "✓ "+fmt.Sprintf(format, args...))
}

// Warn prints a warning message to stderr
func Warn(format string, args ...any) {
	printStyled(stderr, func(p palette) lipgloss.Style { return p.warn }, "⚠ "+fmt.Sprintf(format, args...))
}

// Error prints an error message to stderr
func Error(format string, args ...any) {
	printStyled(stderr, func(p palette) lipgloss.Style { return p.err }, "✗ "+fmt.Sprintf(format, args...))
}

// Muted prints a muted/secondary message
func Muted(format string, args ...any) {
	printStyled(stdout, func(p palette) lipgloss.Style { return p.muted }, fmt.Sprintf(format, args...))
}

// Print prints a plain message without styling
func Print(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, format+"\n", args...)
}

// Debug prints a debug message (only if debug mode is enabled)
func Debug(msg string, keyvals ...any) {
	if debugMode {
		logger.Debug(msg, keyvals...)
	}
}

// spinnerModel is the bubbletea model for spinner
type spinnerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
	done     bool
	err      error
}

type taskDoneMsg struct {
	err error
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
	case taskDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done || m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

// isTTY checks if stdout is a terminal
func isTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func colorDisabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return noColor
}

// WithSpinner runs a task with a spinner and returns the result
func WithSpinner[T any](message string, task func() (T, error)) (T, error) {
	// Skip spinner if not a TTY or styles are off
	if !isTTY() || colorDisabled() {
		return task()
	}

	var result T
	var taskErr error

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := spinnerModel{
		spinner: s,
		message: message,
	}

	p := tea.NewProgram(m)

	// Run task in goroutine
	go func() {
		result, taskErr = task()
		p.Send(taskDoneMsg{err: taskErr})
	}()

	// Run spinner
	if _, err := p.Run(); err != nil {
		return result, err
	}

	return result, taskErr
}

// WithSpinnerNoResult runs a task with a spinner that doesn't return a value
func WithSpinnerNoResult(message string, task func() error) error {
	_, err := WithSpinner(message, func() (struct{}, error) {
		return struct{}{}, task()
	})
	return err
}
