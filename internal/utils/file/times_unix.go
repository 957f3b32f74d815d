//go:build unix

package file

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// SetTimes sets the access and modification times of path to t with nanosecond
// resolution, following symlinks.
func SetTimes(path string, t time.Time) error {
	ts := unix.NsecToTimespec(t.UnixNano())
	if err := unix.UtimesNano(path, []unix.Timespec{ts, ts}); err != nil {
		return &os.PathError{Op: "utimes", Path: path, Err: err}
	}
	return nil
}
