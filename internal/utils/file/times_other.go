//go:build !unix

package file

import (
	"os"
	"time"
)

// SetTimes sets the access and modification times of path to t.
func SetTimes(path string, t time.Time) error {
	return os.Chtimes(path, t, t)
}
