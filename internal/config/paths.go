package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExecutableDir returns the directory of the running binary, falling back to
// the working directory.
func ExecutableDir() string {
	if exe, err := os.Executable(); err == nil && exe != "" {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	return workingDir()
}

func workingDir() string {
	if wd, err := os.Getwd(); err == nil && wd != "" {
		return wd
	}
	return "."
}

// RuntimeBaseDir is where relative runtime paths are anchored. `go run`
// builds into a temp dir, so development uses the working directory.
func (c *AppConfig) RuntimeBaseDir() string {
	if c.IsDev() {
		return workingDir()
	}
	return ExecutableDir()
}

// ResolveRuntimePath resolves raw (or fallback when raw is empty) against base.
func ResolveRuntimePath(base, raw, fallback string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = strings.TrimSpace(fallback)
	}
	if target == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(base, target)
}
