package file

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// Allows creating links without elevation when developer mode is enabled.
const symbolicLinkFlagAllowUnprivilegedCreate = 0x2

// Symlink creates newname as a symbolic link to oldname. Windows distinguishes file
// and directory links, the kind is selected from the target's current kind (a missing
// target gets a file link).
func Symlink(oldname, newname string) error {
	link, err := windows.UTF16PtrFromString(newname)
	if err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}
	target, err := windows.UTF16PtrFromString(oldname)
	if err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}

	var flags uint32
	if IsDir(oldname) {
		flags |= windows.SYMBOLIC_LINK_FLAG_DIRECTORY
	}

	err = windows.CreateSymbolicLink(link, target, flags|symbolicLinkFlagAllowUnprivilegedCreate)
	if errors.Is(err, windows.ERROR_INVALID_PARAMETER) {
		// Older Windows builds reject the unprivileged flag.
		err = windows.CreateSymbolicLink(link, target, flags)
	}
	if err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}
	return nil
}
