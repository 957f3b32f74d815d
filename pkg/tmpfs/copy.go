package tmpfs

import (
	"fmt"

	"github.com/slok/tmpfs/internal/provision"
	"github.com/slok/tmpfs/pkg/tmpfs/asset"
)

// CopyAssets copies the tree into the sandbox root.
//
// Every entry is copied using only its base name under the destination of its
// parent, so two entries with the same name at the same level end up on the same
// target and the last one wins. Directories must not exist on the sandbox, files
// are overwritten. The copy stops on the first error without undoing the entries
// already copied.
//
// It panics if the tree has entries that are neither asset.DirEntry nor
// asset.FileEntry, or names that are not valid UTF-8.
func (f *FS) CopyAssets(tree asset.Dir) error {
	f.logger.Debugf("Copying assets into sandbox...")

	n, err := provision.CopyTree(tree, f.root)
	if err != nil {
		return fmt.Errorf("could not copy assets: %w", err)
	}

	f.logger.Debugf("Copied %d asset entries into sandbox", n)
	return nil
}
