// Package debuglog mirrors application and host log messages into a rotating
// set of text files. A Logger starts inactive; every log call made while it
// is inactive is a no-op.
package debuglog

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/neptaco/unilog/pkg/markup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	// DefaultTag is attached to messages forwarded to the sink
	DefaultTag = "App"
	// DefaultMaxFiles is the file count that triggers a purge on activation
	DefaultMaxFiles = 25
	// LogFolder is the subfolder of the data directory holding log files
	LogFolder = "Logs"
)

// Skip runtime.Callers, callPath, emit and the exported method
const traceSkip = 4

type Logger struct {
	fs       afero.Fs
	dir      string
	tag      string
	sink     Sink
	now      func() time.Time
	maxFiles int

	mu        sync.Mutex
	active    bool
	filePath  string
	fullTrace bool
	keepAll   bool
}

type Option func(*Logger)

// WithSink sets the console sink that receives forwarded messages
func WithSink(sink Sink) Option {
	return func(l *Logger) {
		if sink != nil {
			l.sink = sink
		}
	}
}

// WithFs sets the filesystem used for log files
func WithFs(fs afero.Fs) Option {
	return func(l *Logger) {
		l.fs = fs
	}
}

// WithClock sets the time source used for timestamps and file names
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		l.now = now
	}
}

// WithFullTrace includes the call path in file records
func WithFullTrace(full bool) Option {
	return func(l *Logger) {
		l.fullTrace = full
	}
}

// WithKeepAllFiles selects one timestamped file per activation instead of a
// single reused file
func WithKeepAllFiles(keep bool) Option {
	return func(l *Logger) {
		l.keepAll = keep
	}
}

// WithMaxFiles sets the file count that triggers a purge
func WithMaxFiles(n int) Option {
	return func(l *Logger) {
		if n > 0 {
			l.maxFiles = n
		}
	}
}

// WithTag sets the tag forwarded to the sink
func WithTag(tag string) Option {
	return func(l *Logger) {
		l.tag = tag
	}
}

// New creates an inactive Logger writing into dir
func New(dir string, opts ...Option) *Logger {
	l := &Logger{
		fs:       afero.NewOsFs(),
		dir:      dir,
		tag:      DefaultTag,
		sink:     discardSink{},
		now:      time.Now,
		maxFiles: DefaultMaxFiles,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Dir returns the log directory
func (l *Logger) Dir() string {
	return l.dir
}

// IsActive reports whether log calls are currently recorded
func (l *Logger) IsActive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// FilePath returns the file receiving records, or "" before the first
// activation
func (l *Logger) FilePath() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filePath
}

func (l *Logger) SetFullTrace(full bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fullTrace = full
}

// SetKeepAllFiles takes effect on the next activation
func (l *Logger) SetKeepAllFiles(keep bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keepAll = keep
}

// SetActive switches the logger on or off. Activation prepares a fresh log
// file (see rotation.go). A *PurgeError is returned when some stale files
// could not be deleted; the logger is active in that case. Any other error
// leaves the logger inactive.
func (l *Logger) SetActive(active bool) error {
	if !active {
		l.mu.Lock()
		l.active = false
		l.mu.Unlock()
		logrus.WithField("dir", l.dir).Debug("Debug logger deactivated")
		return nil
	}

	l.mu.Lock()
	path, purgeErr := l.prepareFile()
	if path == "" {
		// a re-activation may already have reset the previous file
		l.active = false
		l.mu.Unlock()
		return purgeErr
	}
	l.filePath = path
	l.active = true
	l.mu.Unlock()

	l.sink.Log(Log, l.tag, fmt.Sprintf("Exporting log file to %s", path))
	logrus.WithField("path", path).Debug("Debug logger activated")

	return purgeErr
}

// Info logs message at Log severity
func (l *Logger) Info(message string) error {
	return l.emit(Log, message)
}

// InfoColored logs message wrapped in a color tag
func (l *Logger) InfoColored(message string, c markup.Color) error {
	return l.emit(Log, markup.Colored(message, c))
}

func (l *Logger) Warning(message string) error {
	return l.emit(Warning, message)
}

func (l *Logger) WarningColored(message string, c markup.Color) error {
	return l.emit(Warning, markup.Colored(message, c))
}

func (l *Logger) Error(message string) error {
	return l.emit(Error, message)
}

func (l *Logger) ErrorColored(message string, c markup.Color) error {
	return l.emit(Error, markup.Colored(message, c))
}

// Assert logs message when condition is false, as a warning if justWarning
// is set and as an error otherwise.
func (l *Logger) Assert(condition bool, message string, justWarning bool) error {
	if condition {
		return nil
	}
	if justWarning {
		return l.emit(Warning, message)
	}
	return l.emit(Error, message)
}

// HandleLog records a message logged by the host. It has the Handler
// signature so it can be registered with a host event source.
func (l *Logger) HandleLog(message, trace string, severity Severity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.active {
		return nil
	}
	if !l.fullTrace {
		trace = ""
	}
	return l.appendLocked(FormatRecord(l.now(), severity, message, trace))
}

func (l *Logger) emit(severity Severity, message string) error {
	l.mu.Lock()
	if !l.active {
		l.mu.Unlock()
		return nil
	}
	var trace string
	if l.fullTrace {
		trace = callPath(traceSkip)
	}
	l.mu.Unlock()

	l.sink.Log(severity, l.tag, message)

	l.mu.Lock()
	defer l.mu.Unlock()

	// the sink may have deactivated the logger
	if !l.active {
		return nil
	}
	return l.appendLocked(FormatRecord(l.now(), severity, message, trace))
}

func (l *Logger) appendLocked(record string) error {
	f, err := l.fs.OpenFile(l.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	if _, err := f.WriteString(record); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write log file: %w", err)
	}

	return f.Close()
}
