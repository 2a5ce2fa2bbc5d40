// Package logger turns raw host log output into log events and formats log
// lines for the terminal.
package logger

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/neptaco/unilog/pkg/debuglog"
)

// Stream is an io.Writer fed with host log output. Each message line, plus
// the stack trace lines that follow it, is delivered to the subscribed
// handlers as one event.
type Stream struct {
	formatter  *Formatter
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	done       chan struct{}

	mutex    sync.Mutex
	handlers []debuglog.Handler
	pending  *event
	warnings int
	errors   int
	messages int
	errs     []error
}

type event struct {
	message  string
	trace    strings.Builder
	severity debuglog.Severity
}

type StreamOption func(*Stream)

func WithStreamFormatter(f *Formatter) StreamOption {
	return func(s *Stream) {
		s.formatter = f
	}
}

// NewStream starts a Stream. Close must be called to flush the last event.
func NewStream(opts ...StreamOption) *Stream {
	s := &Stream{
		formatter: NewFormatter(),
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.pipeReader, s.pipeWriter = io.Pipe()

	go s.processLogs()

	return s
}

// Subscribe registers h for every event parsed after this call
func (s *Stream) Subscribe(h debuglog.Handler) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.handlers = append(s.handlers, h)
}

func (s *Stream) Write(p []byte) (n int, err error) {
	return s.pipeWriter.Write(p)
}

func (s *Stream) processLogs() {
	defer close(s.done)

	scanner := bufio.NewScanner(s.pipeReader)
	// Increase buffer for long lines
	const maxCapacity = 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	for scanner.Scan() {
		s.processLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		s.mutex.Lock()
		s.errs = append(s.errs, err)
		s.mutex.Unlock()
		// unblock writers
		_ = s.pipeReader.CloseWithError(err)
	}
}

func (s *Stream) processLine(line string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		s.flushLocked()
		return
	}

	level := s.formatter.ClassifyLine(line)
	if level == LogLevelStackTrace && s.pending != nil {
		s.pending.trace.WriteString(line)
		s.pending.trace.WriteByte('\n')
		return
	}

	s.flushLocked()
	s.pending = &event{
		message:  line,
		severity: s.severityOf(line, level),
	}

	switch s.pending.severity {
	case debuglog.Warning:
		s.warnings++
	case debuglog.Error, debuglog.Exception, debuglog.Assert:
		s.errors++
	}
}

func (s *Stream) severityOf(line string, level LogLevel) debuglog.Severity {
	switch level {
	case LogLevelError:
		if s.formatter.IsException(line) {
			return debuglog.Exception
		}
		return debuglog.Error
	case LogLevelWarning:
		return debuglog.Warning
	default:
		return debuglog.Log
	}
}

func (s *Stream) flushLocked() {
	if s.pending == nil {
		return
	}
	ev := s.pending
	s.pending = nil
	s.messages++

	for _, h := range s.handlers {
		if err := h(ev.message, ev.trace.String(), ev.severity); err != nil {
			s.errs = append(s.errs, err)
		}
	}
}

func (s *Stream) HasWarnings() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.warnings > 0
}

func (s *Stream) HasErrors() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.errors > 0
}

// GetStats returns the number of warning and error events seen so far
func (s *Stream) GetStats() (warnings, errors int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.warnings, s.errors
}

// Messages returns the number of events delivered
func (s *Stream) Messages() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.messages
}

// Close waits for buffered output to be parsed, delivers the last event and
// returns the errors reported by handlers.
func (s *Stream) Close() error {
	_ = s.pipeWriter.Close()
	<-s.done

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.flushLocked()

	return errors.Join(s.errs...)
}
