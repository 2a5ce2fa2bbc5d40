package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is how often Follow re-checks the file when no
// filesystem event arrives
const DefaultPollInterval = 500 * time.Millisecond

// FollowOptions configures Follow
type FollowOptions struct {
	// FromStart copies the existing content before following
	FromStart bool
	// PollInterval is the fallback check interval (default: DefaultPollInterval)
	PollInterval time.Duration
}

// Follow copies data appended to path into w until ctx is done, like
// `tail -F`. A file that is truncated or recreated is read again from the
// beginning. The file does not need to exist when Follow starts.
func Follow(ctx context.Context, path string, w io.Writer, opts FollowOptions) error {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so recreated files are noticed
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	var offset int64
	if !opts.FromStart {
		if info, err := os.Stat(path); err == nil {
			offset = info.Size()
		}
	}

	if offset, err = copyFrom(path, offset, w); err != nil {
		return err
	}

	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				logrus.WithField("path", path).Debug("Followed file was recreated")
				offset = 0
			}
			if offset, err = copyFrom(path, offset, w); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher error: %w", err)
		case <-ticker.C:
			if offset, err = copyFrom(path, offset, w); err != nil {
				return err
			}
		}
	}
}

// copyFrom writes the content of path past offset to w and returns the new
// offset. A missing file yields offset 0.
func copyFrom(path string, offset int64, w io.Writer) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return offset, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return offset, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() < offset {
		// truncated
		offset = 0
	}
	if info.Size() == offset {
		return offset, nil
	}

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return offset, fmt.Errorf("failed to seek %s: %w", path, err)
	}

	n, err := io.Copy(w, f)
	offset += n
	if err != nil {
		return offset, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return offset, nil
}
