package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath is the directory holding .env and the conversation database.
// It is read before .env is loaded, so it only looks at the process environment.
func GetRuntimePath() string {
	return ResolveRuntimePath(os.Getenv("RELAY_RUNTIME_PATH"))
}

// ResolveRuntimePath anchors relative paths at the user's home directory.
func ResolveRuntimePath(path string) string {
	if path == "" {
		path = ".slackrelay"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
