// Package file provides the platform dependent filesystem primitives used by sandboxes.
package file

import (
	"os"
	"time"
)

// Touch sets both the access and modification times of path to now.
func Touch(path string) error {
	return SetTimes(path, time.Now())
}

// IsDir returns true if path exists and is a directory, following symlinks.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
