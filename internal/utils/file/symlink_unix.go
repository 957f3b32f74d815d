//go:build !windows

package file

import "os"

// Symlink creates newname as a symbolic link to oldname. Unix has a single
// symlink kind so the target kind is not inspected.
func Symlink(oldname, newname string) error {
	return os.Symlink(oldname, newname)
}
