package debuglog

import (
	"fmt"
	"path/filepath"

	"github.com/neptaco/unilog/pkg/settings"
	"github.com/sirupsen/logrus"
)

// Bootstrap loads the settings file in dataDir, builds a Logger on the
// dataDir/Logs folder and applies the initial active state. Options passed
// here override the values read from the settings file.
//
// When activation fails the logger is still returned alongside the error. It
// is active if the error is a *PurgeError and inactive otherwise.
func Bootstrap(dataDir string, opts ...Option) (*Logger, error) {
	store := settings.NewStore(filepath.Join(dataDir, settings.FileName))

	cfg, err := store.LoadLoggerSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load logger settings: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"fullTrace":    cfg.FullTrace,
		"keepAllFiles": cfg.KeepAllFiles,
		"active":       cfg.Active,
	}).Debug("Loaded logger settings")

	all := append([]Option{
		WithFullTrace(cfg.FullTrace),
		WithKeepAllFiles(cfg.KeepAllFiles),
	}, opts...)

	l := New(filepath.Join(dataDir, LogFolder), all...)
	if err := l.SetActive(cfg.Active); err != nil {
		return l, err
	}

	return l, nil
}
