package logger

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/neptaco/unilog/pkg/markup"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorYellow = "\033[33m"
	ColorGreen  = "\033[32m"
	ColorGray   = "\033[90m"
	ColorBold   = "\033[1m"
)

// LogLevel represents the type of log line
type LogLevel int

const (
	LogLevelNormal LogLevel = iota
	LogLevelInfo
	LogLevelWarning
	LogLevelError
	LogLevelStackTrace
	LogLevelNoise
)

// Default max line length before truncation
const DefaultMaxLineLength = 500

// Formatter classifies and colors lines of host logs and of debug log files
type Formatter struct {
	noColor            bool
	hideStackTrace     bool     // Hide non-project stack traces
	hideAllStackTraces bool     // Hide all stack traces completely
	maxLineLength      int      // Max line length before truncation (0 = no limit)
	projectPaths       []string // Paths to keep in stack traces (e.g., "Assets/")
}

// FormatterOption configures a Formatter
type FormatterOption func(*Formatter)

// WithNoColor disables color output
func WithNoColor(noColor bool) FormatterOption {
	return func(f *Formatter) {
		f.noColor = noColor
	}
}

// WithHideStackTrace hides non-project stack trace lines
func WithHideStackTrace(hide bool) FormatterOption {
	return func(f *Formatter) {
		f.hideStackTrace = hide
	}
}

// WithHideAllStackTraces hides all stack traces completely
func WithHideAllStackTraces(hide bool) FormatterOption {
	return func(f *Formatter) {
		f.hideAllStackTraces = hide
	}
}

// WithMaxLineLength sets the maximum line length before truncation
func WithMaxLineLength(length int) FormatterOption {
	return func(f *Formatter) {
		f.maxLineLength = length
	}
}

// WithProjectPaths sets paths to keep in stack traces
func WithProjectPaths(paths []string) FormatterOption {
	return func(f *Formatter) {
		f.projectPaths = paths
	}
}

func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		projectPaths:  []string{"Assets/", "Packages/"},
		maxLineLength: DefaultMaxLineLength,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Startup and housekeeping output of the host
var noisePatterns = []string{
	"Mono path[",
	"Loading GUID",
	"Refreshing native plugins",
	"Preloading",
	"GI:",
	"Initialize engine version",
	"Compiling shader",
	"Shader warmup",
	"UnloadTime:",
	"DisplayProgressbar:",
	"Registering precompiled user dll",
	"Native extension for",
	"- Completed reload",
	"- Starting playmode",
	"Reloading assemblies for play mode",
	"Begin MonoManager ReloadAssembly",
	"Initializing Unity.PackageManager",
	"[Package Manager]",
	"[Licensing::",
	"Domain Reload Profiling:",
	"Total time for reloading assemblies",
	"Launched and calculation",
}

var errorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\berror\b`),
	regexp.MustCompile(`(?i)exception\b`),
	regexp.MustCompile(`(?i)\bfailed\b`),
	regexp.MustCompile(`(?i)^error CS\d+`),
	regexp.MustCompile(`(?i)^Assets/.*\.cs\(\d+,\d+\):\s*error`),
}

// exceptionPattern matches the first line of an uncaught exception
var exceptionPattern = regexp.MustCompile(`^[\w.]*Exception:`)

var warningPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwarning\b`),
	regexp.MustCompile(`(?i)^warning CS\d+`),
	regexp.MustCompile(`(?i)^Assets/.*\.cs\(\d+,\d+\):\s*warning`),
}

// Stack trace patterns (applied after TrimSpace)
var stackTracePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^at\s+`),                            // "at UnityEngine.Debug.Log..."
	regexp.MustCompile(`^\(Filename:`),                      // "(Filename: Assets/..."
	regexp.MustCompile(`^UnityEngine\.\w+.*:`),              // "UnityEngine.Debug:Log..."
	regexp.MustCompile(`^UnityEditor\.\w+.*:`),              // "UnityEditor.Menu:..."
	regexp.MustCompile(`^System\.\w+`),                      // "System.Threading.ExecutionContext:..."
	regexp.MustCompile(`^Mono\.\w+`),                        // "Mono.Security..."
	regexp.MustCompile(`^Microsoft\.\w+`),                   // "Microsoft.CSharp..."
	regexp.MustCompile(`^\w+\.\w+[^:]*:[^(]+\(.*\)$`),       // "MyClass.Method:Call (args)" - no (at ...)
	regexp.MustCompile(`^\w+\.\w+[^:]*:[^(]+\(.*\)\s*\(at`), // "MyClass.Method:Call<T> (args) (at Assets/..."
	regexp.MustCompile(`^\w+\.\w+/<>.*:.*\(.*\)`),           // "Class/<>c__DisplayClass:Method ()" - lambda
	regexp.MustCompile(`^[\w./*()-]+ \(at .+:\d+\)$`),       // "pkg.(*T).Method (at /src/file.go:12)" - Go call path
	regexp.MustCompile(`^in\s+<`),                           // "in <filename unknown>"
	regexp.MustCompile(`^\[0x[0-9a-f]+\]`),                  // "[0x00000] in ..."
	regexp.MustCompile(`^Rethrow as \w+:`),                  // "Rethrow as TargetInvocationException:"
}

// Debug log file structure
var (
	recordHeaderPattern = regexp.MustCompile(`^### \d{2}:\d{2}:\d{2}\.\d{3}\. LOG TYPE: (\w+)$`)
	recordSeparators    = []string{
		"-----------------CODE PATH:",
		"-----------------END LOG MESSAGE!",
	}
)

// ClassifyLine determines the log level of a line
func (f *Formatter) ClassifyLine(line string) LogLevel {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return LogLevelNormal
	}

	if level, ok := classifyRecordLine(trimmed); ok {
		return level
	}

	// Noise first so [Licensing::] etc. stay gray even if they contain "error"
	for _, noise := range noisePatterns {
		if strings.Contains(trimmed, noise) {
			return LogLevelNoise
		}
	}

	for _, pattern := range stackTracePatterns {
		if pattern.MatchString(trimmed) {
			return LogLevelStackTrace
		}
	}

	// Size reports list source files such as ".../StoreCreationException.cs"
	if isFileListing(trimmed) {
		return LogLevelNormal
	}

	for _, pattern := range errorPatterns {
		if pattern.MatchString(trimmed) {
			return LogLevelError
		}
	}

	for _, pattern := range warningPatterns {
		if pattern.MatchString(trimmed) {
			return LogLevelWarning
		}
	}

	return LogLevelNormal
}

// IsException reports whether line starts an uncaught exception report
func (f *Formatter) IsException(line string) bool {
	return exceptionPattern.MatchString(strings.TrimSpace(line))
}

func classifyRecordLine(trimmed string) (LogLevel, bool) {
	for _, sep := range recordSeparators {
		if trimmed == sep {
			return LogLevelNoise, true
		}
	}

	m := recordHeaderPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return LogLevelNormal, false
	}

	switch m[1] {
	case "Error", "Exception", "Assert":
		return LogLevelError, true
	case "Warning":
		return LogLevelWarning, true
	default:
		return LogLevelInfo, true
	}
}

var fileListingPattern = regexp.MustCompile(`\d+(\.\d+)?\s*kb\s+\d+(\.\d+)?%\s+\S+\.\w+$`)

func isFileListing(trimmed string) bool {
	return fileListingPattern.MatchString(trimmed)
}

// Non-project stack trace prefixes (always filter out)
var nonProjectPrefixes = []string{
	"System.",
	"UnityEngine.",
	"UnityEditor.",
	"Mono.",
	"Microsoft.",
	"Cysharp.",
	"runtime.",
	"testing.",
}

// Non-project paths in stack traces (filter out)
var nonProjectPaths = []string{
	"Library/PackageCache/",
	"./Library/PackageCache/",
}

// IsProjectStackTrace checks if a stack trace line is from the project
func (f *Formatter) IsProjectStackTrace(line string) bool {
	trimmed := strings.TrimSpace(line)

	for _, prefix := range nonProjectPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return false
		}
	}

	for _, path := range nonProjectPaths {
		if strings.Contains(line, path) {
			return false
		}
	}

	// (Filename: ...) lines are checked by the same path rule
	for _, path := range f.projectPaths {
		if strings.Contains(line, path) {
			return true
		}
	}

	return false
}

// render converts rich-text tags, or strips them when color is off. Lines
// whose visible text exceeds maxLineLength are cut on a rune boundary and
// lose their inline styles.
func (f *Formatter) render(line string) string {
	plain := markup.Strip(line)
	if f.maxLineLength > 0 && utf8.RuneCountInString(plain) > f.maxLineLength {
		return truncateRunes(plain, f.maxLineLength) + "..."
	}
	if f.noColor {
		return plain
	}
	return markup.ToANSI(line)
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// FormatLine colors a line by level and renders rich-text tags. With color
// disabled the tags are stripped instead.
func (f *Formatter) FormatLine(line string) string {
	level := f.ClassifyLine(line)

	if level == LogLevelStackTrace {
		if f.hideStackTrace && !f.IsProjectStackTrace(line) {
			return ""
		}
	}

	line = f.render(line)
	if f.noColor {
		return line
	}

	switch level {
	case LogLevelError:
		return fmt.Sprintf("%s%s%s%s", ColorBold, ColorRed, line, ColorReset)
	case LogLevelWarning:
		return fmt.Sprintf("%s%s%s", ColorYellow, line, ColorReset)
	case LogLevelInfo:
		return fmt.Sprintf("%s%s%s", ColorGreen, line, ColorReset)
	case LogLevelStackTrace, LogLevelNoise:
		return fmt.Sprintf("%s%s%s", ColorGray, line, ColorReset)
	default:
		return line
	}
}

// ShouldShow returns whether the line should be displayed
func (f *Formatter) ShouldShow(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}

	level := f.ClassifyLine(line)
	if level == LogLevelStackTrace {
		if f.hideAllStackTraces {
			return false
		}
		if f.hideStackTrace {
			return f.IsProjectStackTrace(line)
		}
	}
	return true
}
