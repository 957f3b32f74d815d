// Package asset provides the read-only trees used to seed tmpfs sandboxes.
//
// A tree is any [Dir]. Its entries are either a [DirEntry] (a nested [Dir]) or a
// [FileEntry] with byte contents. Trees can come from any [fs.FS], including the
// ones generated with go:embed:
//
//	//go:embed testdata/project
//	var projectFS embed.FS
//
//	tree := asset.FromFS(projectFS, "testdata/project")
//
// Or from a YAML manifest, see [LoadYAML].
package asset

import (
	"fmt"
	"io/fs"
	"path"
)

// Entry is a node of an asset tree. Only the final element of its path is used when
// the tree is copied.
type Entry interface {
	Path() string
}

// Dir lists the immediate entries of a tree node.
type Dir interface {
	Entries() ([]Entry, error)
}

// DirEntry is a directory entry of a tree.
type DirEntry interface {
	Entry
	Dir
}

// FileEntry is a file entry of a tree.
type FileEntry interface {
	Entry
	Contents() ([]byte, error)
}

// FromFS returns the tree rooted at root inside fsys. Use "." for the whole filesystem.
func FromFS(fsys fs.FS, root string) DirEntry {
	if root == "" {
		root = "."
	}
	return fsDir{fsys: fsys, path: root}
}

type fsDir struct {
	fsys fs.FS
	path string
}

func (d fsDir) Path() string { return d.path }

func (d fsDir) Entries() ([]Entry, error) {
	dirEntries, err := fs.ReadDir(d.fsys, d.path)
	if err != nil {
		return nil, fmt.Errorf("could not read asset dir %q: %w", d.path, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		p := path.Join(d.path, de.Name())
		if de.IsDir() {
			entries = append(entries, fsDir{fsys: d.fsys, path: p})
			continue
		}
		entries = append(entries, fsFile{fsys: d.fsys, path: p})
	}

	return entries, nil
}

type fsFile struct {
	fsys fs.FS
	path string
}

func (f fsFile) Path() string { return f.path }

func (f fsFile) Contents() ([]byte, error) {
	data, err := fs.ReadFile(f.fsys, f.path)
	if err != nil {
		return nil, fmt.Errorf("could not read asset file %q: %w", f.path, err)
	}
	return data, nil
}
