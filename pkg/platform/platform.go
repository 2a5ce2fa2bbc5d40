// Package platform maps the running OS onto the platform names used for
// host file locations.
package platform

import (
	"runtime"
)

func GetCurrentPlatform() string {
	switch runtime.GOOS {
	case "darwin":
		return "macos"
	case "windows":
		return "windows"
	case "linux":
		return "linux"
	default:
		return runtime.GOOS
	}
}

// PathFor picks the entry for platform, falling back to the "default" entry
func PathFor(platform string, paths map[string]string) string {
	if path, ok := paths[platform]; ok {
		return path
	}

	if defaultPath, ok := paths["default"]; ok {
		return defaultPath
	}

	return ""
}
