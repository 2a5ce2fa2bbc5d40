package debuglog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const (
	// SingleFileName is the reused file name when all files are not kept
	SingleFileName = "DebugLogExport.txt"

	multiFilePrefix = "DebugLogExport_"
	fileExt         = ".txt"
	fileTimeLayout  = "2006-01-02_15-04-05.000"
	purgeWorkers    = 4
)

// DeleteFailure records a file that could not be removed during a purge
type DeleteFailure struct {
	Path string
	Err  error
}

// PurgeError lists every file a purge failed to delete
type PurgeError struct {
	Failures []DeleteFailure
}

func (e *PurgeError) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("failed to delete %s: %v", e.Failures[0].Path, e.Failures[0].Err)
	}
	return fmt.Sprintf("failed to delete %d log files", len(e.Failures))
}

// Unwrap exposes the individual deletion errors
func (e *PurgeError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// FileInfo describes a log file in the log directory
type FileInfo struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// FileName returns the log file name used for an activation at t
func FileName(keepAll bool, t time.Time) string {
	if !keepAll {
		return SingleFileName
	}
	return multiFilePrefix + t.Format(fileTimeLayout) + fileExt
}

// prepareFile runs the activation steps: ensure the directory, purge it when
// the cap is reached, then start an empty target file. The returned path is
// empty when activation must not proceed.
func (l *Logger) prepareFile() (string, error) {
	existed, err := afero.DirExists(l.fs, l.dir)
	if err != nil {
		return "", fmt.Errorf("failed to check log directory: %w", err)
	}

	if !existed {
		if err := l.fs.MkdirAll(l.dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	var purgeErr error
	if existed {
		count, err := l.countLogFiles()
		if err != nil {
			return "", err
		}
		if count >= l.maxFiles {
			logrus.WithFields(logrus.Fields{
				"dir":   l.dir,
				"count": count,
				"max":   l.maxFiles,
			}).Debug("Log file cap reached, purging")
			_, purgeErr = l.purge()
		}
	}

	path := filepath.Join(l.dir, FileName(l.keepAll, l.now()))

	if err := l.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", errors.Join(fmt.Errorf("failed to reset log file: %w", err), purgeErr)
	}

	f, err := l.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", errors.Join(fmt.Errorf("failed to create log file: %w", err), purgeErr)
	}
	if err := f.Close(); err != nil {
		return "", errors.Join(fmt.Errorf("failed to create log file: %w", err), purgeErr)
	}

	return path, purgeErr
}

// Purge deletes every file in the log directory regardless of the cap and
// returns how many were removed. The current file, if any, is recreated
// empty on the next write.
func (l *Logger) Purge() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	exists, err := afero.DirExists(l.fs, l.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to check log directory: %w", err)
	}
	if !exists {
		return 0, nil
	}
	return l.purge()
}

// purge deletes all regular files in the directory and waits for every
// deletion to finish. Failures are collected rather than stopping the purge.
func (l *Logger) purge() (int, error) {
	entries, err := afero.ReadDir(l.fs, l.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	var (
		mu       sync.Mutex
		removed  int
		failures []DeleteFailure
	)

	g := new(errgroup.Group)
	g.SetLimit(purgeWorkers)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(l.dir, entry.Name())
		g.Go(func() error {
			err := l.fs.Remove(path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, DeleteFailure{Path: path, Err: err})
			} else {
				removed++
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) == 0 {
		return removed, nil
	}

	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Path < failures[j].Path
	})
	for _, f := range failures {
		logrus.WithError(f.Err).WithField("path", f.Path).Warn("Failed to delete log file")
	}

	return removed, &PurgeError{Failures: failures}
}

func (l *Logger) countLogFiles() (int, error) {
	entries, err := afero.ReadDir(l.fs, l.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), fileExt) {
			count++
		}
	}
	return count, nil
}

// Files lists the log files in the directory, newest first
func (l *Logger) Files() ([]FileInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := afero.ReadDir(l.fs, l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read log directory: %w", err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), fileExt) {
			continue
		}
		files = append(files, FileInfo{
			Name:    entry.Name(),
			Path:    filepath.Join(l.dir, entry.Name()),
			Size:    entry.Size(),
			ModTime: entry.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Name > files[j].Name
	})

	return files, nil
}
