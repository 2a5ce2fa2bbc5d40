// Package settings reads and writes the flat key=value file that controls the
// debug logger. Unknown lines are kept as they are when the file is rewritten.
package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"
)

const (
	// FileName is the settings file name inside the data directory
	FileName = "LogConfig.txt"

	separator = "="
)

// Store is a boolean key/value store backed by a plain text file.
type Store struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewStore creates a Store for the file at path. The file is not touched
// until the first read or write.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the settings file path
func (s *Store) Path() string {
	return s.path
}

// ReadBool returns the value stored for key. A missing file, missing key or
// empty value persists def and returns it; a value that is not a boolean
// literal returns def and leaves the line alone.
func (s *Store) ReadBool(key string, def bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.acquire(); err != nil {
		return def, err
	}
	defer s.release()

	lines, err := s.readLines()
	if err != nil {
		return def, err
	}

	if value, ok := lookup(lines, key); ok && value != "" {
		parsed, ok := parseBool(value)
		if !ok {
			logrus.WithFields(logrus.Fields{
				"key":   key,
				"value": value,
			}).Debug("Malformed setting, using default")
			return def, nil
		}
		return parsed, nil
	}

	if err := s.writeLines(upsert(lines, key, strconv.FormatBool(def))); err != nil {
		return def, err
	}

	logrus.WithFields(logrus.Fields{
		"key":     key,
		"default": def,
		"path":    s.path,
	}).Debug("Persisted default setting")
	return def, nil
}

// WriteBool sets key to value, replacing the first matching line or appending
// a new one. The whole file is rewritten atomically.
func (s *Store) WriteBool(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	lines, err := s.readLines()
	if err != nil {
		return err
	}

	return s.writeLines(upsert(lines, key, strconv.FormatBool(value)))
}

// Lines returns the raw lines of the settings file. A missing file yields no
// lines.
func (s *Store) Lines() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLines()
}

func (s *Store) acquire() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock settings file: %w", err)
	}
	return nil
}

func (s *Store) release() {
	if err := s.lock.Unlock(); err != nil {
		logrus.WithError(err).Warn("Failed to unlock settings file")
	}
}

func (s *Store) readLines() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// writeLines replaces the file with lines using a temp file and rename
func (s *Store) writeLines(lines []string) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save settings file: %w", err)
	}

	return nil
}

// splitLine returns the trimmed key and value of a line that holds exactly
// one separator.
func splitLine(line string) (string, string, bool) {
	parts := strings.Split(line, separator)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

func lookup(lines []string, key string) (string, bool) {
	for _, line := range lines {
		if k, v, ok := splitLine(line); ok && k == key {
			return v, true
		}
	}
	return "", false
}

func upsert(lines []string, key, value string) []string {
	entry := key + separator + value

	result := make([]string, len(lines), len(lines)+1)
	copy(result, lines)

	for i, line := range result {
		if k, _, ok := splitLine(line); ok && k == key {
			result[i] = entry
			return result
		}
	}

	return append(result, entry)
}

// parseBool accepts "true" and "false" in any letter case
func parseBool(value string) (bool, bool) {
	switch {
	case strings.EqualFold(value, "true"):
		return true, true
	case strings.EqualFold(value, "false"):
		return false, true
	default:
		return false, false
	}
}
