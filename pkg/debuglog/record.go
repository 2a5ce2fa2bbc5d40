package debuglog

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

const (
	traceStartSeparator = "\n-----------------CODE PATH:\n"
	endRecordSeparator  = "-----------------END LOG MESSAGE!\n\n\n"

	timestampLayout = "15:04:05.000"
	maxTraceFrames  = 32
)

// FormatRecord builds one file record. An empty trace leaves the code path
// section empty.
func FormatRecord(at time.Time, severity Severity, message, trace string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "### %s. LOG TYPE: %s\n", at.Format(timestampLayout), severity)
	b.WriteString(message)
	b.WriteString("\n")
	b.WriteString(traceStartSeparator)
	if trace != "" {
		b.WriteString(trace)
		if !strings.HasSuffix(trace, "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString(endRecordSeparator)

	return b.String()
}

// callPath formats the goroutine's call stack above skip frames, one
// "function (at file:line)" entry per line.
func callPath(skip int) string {
	pcs := make([]uintptr, maxTraceFrames)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&b, "%s (at %s:%d)\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return b.String()
}
