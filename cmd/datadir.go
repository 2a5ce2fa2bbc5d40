package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/neptaco/unilog/pkg/debuglog"
	"github.com/neptaco/unilog/pkg/settings"
	"github.com/neptaco/unilog/pkg/ui"
	"github.com/neptaco/unilog/pkg/unity"
	"github.com/spf13/viper"
)

// resolveDataDir returns --data-dir, or the persistent data path derived
// from --company and --product or from the settings of --project
func resolveDataDir() (string, error) {
	if dir := viper.GetString("data-dir"); dir != "" {
		return dir, nil
	}

	company, product, err := productIdentity()
	if err != nil {
		return "", err
	}

	dir, err := unity.PersistentDataPath(company, product)
	if err != nil {
		return "", fmt.Errorf("failed to resolve persistent data path: %w", err)
	}
	ui.Debug("Resolved data directory", "path", dir)
	return dir, nil
}

// productIdentity returns the company and product names from the flags,
// falling back to the project settings
func productIdentity() (string, string, error) {
	company, product := viper.GetString("company"), viper.GetString("product")
	if company != "" && product != "" {
		return company, product, nil
	}

	if path := viper.GetString("project"); path != "" {
		p, err := unity.LoadProject(path)
		if err != nil {
			return "", "", err
		}
		return p.CompanyName, p.ProductName, nil
	}

	return "", "", fmt.Errorf("set --data-dir, --project, or both --company and --product")
}

func openStore() (*settings.Store, error) {
	dir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}
	return settings.NewStore(filepath.Join(dir, settings.FileName)), nil
}

// openLogger bootstraps the debug logger from the settings file. A failed
// purge is reported but does not stop the command.
func openLogger(opts ...debuglog.Option) (*debuglog.Logger, error) {
	dir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}

	opts = append([]debuglog.Option{
		debuglog.WithSink(ui.NewConsoleSink(noColor())),
		debuglog.WithMaxFiles(viper.GetInt("max-files")),
	}, opts...)

	l, err := debuglog.Bootstrap(dir, opts...)
	if err != nil {
		var purgeErr *debuglog.PurgeError
		if l != nil && errors.As(err, &purgeErr) {
			reportPurgeError(purgeErr)
			return l, nil
		}
		return nil, fmt.Errorf("failed to start debug logger: %w", err)
	}
	return l, nil
}

// logsDir returns the folder holding exported log files
func logsDir() (string, error) {
	dir, err := resolveDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, debuglog.LogFolder), nil
}

func reportPurgeError(err *debuglog.PurgeError) {
	ui.Warn("Could not delete %d old log file(s)", len(err.Failures))
	for _, f := range err.Failures {
		ui.Muted("  %s: %v", f.Path, f.Err)
	}
}
