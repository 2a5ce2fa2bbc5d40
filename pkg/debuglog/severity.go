package debuglog

import (
	"fmt"
	"strings"
)

// Severity is the category of a log message. Values follow the host
// engine's log types.
type Severity int

const (
	Error Severity = iota
	Assert
	Warning
	Log
	Exception
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "Error"
	case Assert:
		return "Assert"
	case Warning:
		return "Warning"
	case Log:
		return "Log"
	case Exception:
		return "Exception"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ParseSeverity converts a name such as "warning" or "error" to a Severity
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return Error, nil
	case "assert":
		return Assert, nil
	case "warning", "warn":
		return Warning, nil
	case "log", "info":
		return Log, nil
	case "exception":
		return Exception, nil
	default:
		return Log, fmt.Errorf("unknown severity: %s", s)
	}
}

// Sink receives messages forwarded to the host console
type Sink interface {
	Log(severity Severity, tag, message string)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(severity Severity, tag, message string)

func (f SinkFunc) Log(severity Severity, tag, message string) {
	f(severity, tag, message)
}

// Handler is the callback the host invokes for every message it logs
type Handler func(message, trace string, severity Severity) error

type discardSink struct{}

func (discardSink) Log(Severity, string, string) {}
