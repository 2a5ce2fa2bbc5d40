package settings

// Keys understood by the debug logger
const (
	KeyFullTrace      = "IsFullUnityLogs"
	KeyKeepAllFiles   = "ToKeepAllLogFiles"
	KeyActivateLogger = "ActivateLogger"
)

// Keys lists the logger keys in the order they are first persisted
var Keys = []string{KeyFullTrace, KeyKeepAllFiles, KeyActivateLogger}

// LoggerSettings holds the values copied out of the store at startup
type LoggerSettings struct {
	FullTrace    bool // include the call path in file records
	KeepAllFiles bool // one timestamped file per activation
	Active       bool // initial logger state
}

// DefaultLoggerSettings returns the values used when a key is absent
func DefaultLoggerSettings() LoggerSettings {
	return LoggerSettings{
		FullTrace:    true,
		KeepAllFiles: true,
		Active:       true,
	}
}

// Get returns the value held for key, false for unknown keys
func (c LoggerSettings) Get(key string) bool {
	switch key {
	case KeyFullTrace:
		return c.FullTrace
	case KeyKeepAllFiles:
		return c.KeepAllFiles
	case KeyActivateLogger:
		return c.Active
	default:
		return false
	}
}

// LoadLoggerSettings reads every logger key, persisting defaults for the
// ones that are missing.
func (s *Store) LoadLoggerSettings() (LoggerSettings, error) {
	cfg := DefaultLoggerSettings()

	var err error
	if cfg.FullTrace, err = s.ReadBool(KeyFullTrace, cfg.FullTrace); err != nil {
		return cfg, err
	}
	if cfg.KeepAllFiles, err = s.ReadBool(KeyKeepAllFiles, cfg.KeepAllFiles); err != nil {
		return cfg, err
	}
	if cfg.Active, err = s.ReadBool(KeyActivateLogger, cfg.Active); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// IsKnownKey reports whether key is one of the logger keys
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
