// Package unity resolves the host's per-user file locations.
package unity

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/neptaco/unilog/pkg/platform"
)

const (
	editorLogName = "Editor.log"
	playerLogName = "Player.log"
)

// env abstracts the lookups needed to build paths so they can be faked
type env struct {
	platform string
	home     string
	getenv   func(string) string
}

func currentEnv() (env, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return env{}, fmt.Errorf("failed to get home directory: %w", err)
	}
	return env{
		platform: platform.GetCurrentPlatform(),
		home:     home,
		getenv:   os.Getenv,
	}, nil
}

// configHome is the unity3d folder under the XDG config directory
func (e env) configHome() string {
	if xdg := e.getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "unity3d")
	}
	return filepath.Join(e.home, ".config", "unity3d")
}

func (e env) localLow() string {
	return filepath.Join(e.home, "AppData", "LocalLow")
}

func (e env) pick(paths map[string]string) (string, error) {
	p := platform.PathFor(e.platform, paths)
	if p == "" {
		return "", fmt.Errorf("unsupported OS: %s", e.platform)
	}
	return p, nil
}

func (e env) persistentDataPath(company, product string) (string, error) {
	return e.pick(map[string]string{
		"macos":   filepath.Join(e.home, "Library", "Application Support", company, product),
		"windows": filepath.Join(e.localLow(), company, product),
		"linux":   filepath.Join(e.configHome(), company, product),
	})
}

func (e env) editorLogPath() (string, error) {
	if e.platform == "windows" {
		localAppData := e.getenv("LOCALAPPDATA")
		if localAppData == "" {
			return "", fmt.Errorf("LOCALAPPDATA environment variable not set")
		}
		return filepath.Join(localAppData, "Unity", "Editor", editorLogName), nil
	}
	return e.pick(map[string]string{
		"macos": filepath.Join(e.home, "Library", "Logs", "Unity", editorLogName),
		"linux": filepath.Join(e.configHome(), editorLogName),
	})
}

func (e env) playerLogPath(company, product string) (string, error) {
	return e.pick(map[string]string{
		"macos":   filepath.Join(e.home, "Library", "Logs", company, product, playerLogName),
		"windows": filepath.Join(e.localLow(), company, product, playerLogName),
		"linux":   filepath.Join(e.configHome(), company, product, playerLogName),
	})
}

// PersistentDataPath returns the per-user writable data directory of a
// product, the folder holding the settings file and the Logs folder
func PersistentDataPath(company, product string) (string, error) {
	if company == "" || product == "" {
		return "", fmt.Errorf("company and product names are required")
	}
	e, err := currentEnv()
	if err != nil {
		return "", err
	}
	return e.persistentDataPath(company, product)
}

// GetEditorLogPath returns the platform-specific path to Unity Editor log
func GetEditorLogPath() (string, error) {
	e, err := currentEnv()
	if err != nil {
		return "", err
	}
	return e.editorLogPath()
}

// GetPlayerLogPath returns the path of the log written by a built player
func GetPlayerLogPath(company, product string) (string, error) {
	if company == "" || product == "" {
		return "", fmt.Errorf("company and product names are required")
	}
	e, err := currentEnv()
	if err != nil {
		return "", err
	}
	return e.playerLogPath(company, product)
}
