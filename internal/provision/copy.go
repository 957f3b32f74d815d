package provision

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/slok/tmpfs/internal/conventions"
	"github.com/slok/tmpfs/pkg/tmpfs/asset"
)

// CopyTree copies the src entries into the dst directory and returns the number of
// entries created.
//
// Each entry lands on its base name under the destination of its parent. Directories
// must not exist, files are overwritten. It stops on the first error and leaves the
// already copied entries in place.
func CopyTree(src asset.Dir, dst string) (int, error) {
	entries, err := src.Entries()
	if err != nil {
		return 0, err
	}

	copied := 0
	for _, e := range entries {
		target := filepath.Join(dst, entryName(e))

		switch e := e.(type) {
		case asset.DirEntry:
			if err := os.Mkdir(target, conventions.DirPerm); err != nil {
				return copied, err
			}
			copied++

			n, err := CopyTree(e, target)
			copied += n
			if err != nil {
				return copied, err
			}
		case asset.FileEntry:
			data, err := e.Contents()
			if err != nil {
				return copied, err
			}
			if err := os.WriteFile(target, data, conventions.FilePerm); err != nil {
				return copied, err
			}
			copied++
		default:
			panic(fmt.Sprintf("tmpfs: asset entry %q has unsupported type %T", e.Path(), e))
		}
	}

	return copied, nil
}

func entryName(e asset.Entry) string {
	name := filepath.Base(e.Path())
	if name == "." || name == ".." || name == string(filepath.Separator) {
		panic(fmt.Sprintf("tmpfs: asset entry %q has no name", e.Path()))
	}
	if !utf8.ValidString(name) {
		panic(fmt.Sprintf("tmpfs: asset entry %q name is not valid UTF-8", e.Path()))
	}

	return name
}
