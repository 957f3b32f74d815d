package tmpfs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/slok/tmpfs/internal/conventions"
	"github.com/slok/tmpfs/internal/model"
	"github.com/slok/tmpfs/internal/utils/file"
)

// Qualify returns the absolute path of rel inside the sandbox. It doesn't check
// that the path exists.
func (f *FS) Qualify(rel string) string {
	return filepath.Join(f.root, rel)
}

// QualifyInRoot is like Qualify but resolves ".." segments and existing symlinks
// scoped to the sandbox root, so the result never points outside of it.
func (f *FS) QualifyInRoot(rel string) (string, error) {
	if err := validPath(rel); err != nil {
		return "", err
	}

	p, err := securejoin.SecureJoin(f.root, rel)
	if err != nil {
		return "", fmt.Errorf("could not resolve %q in sandbox: %w", rel, err)
	}
	return p, nil
}

// WriteFile writes content to rel creating the missing parent directories, an
// existing file is truncated. Returns the absolute path of the written file.
func (f *FS) WriteFile(rel, content string) (string, error) {
	p, err := f.path(rel)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(p), conventions.DirPerm); err != nil {
		return "", fmt.Errorf("could not create %q parent dirs: %w", rel, err)
	}

	if err := os.WriteFile(p, []byte(content), conventions.FilePerm); err != nil {
		return "", fmt.Errorf("could not write %q: %w", rel, err)
	}

	return p, nil
}

// ReadFile returns the contents of rel.
func (f *FS) ReadFile(rel string) ([]byte, error) {
	p, err := f.path(rel)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", rel, err)
	}
	return data, nil
}

// Rename moves a file or directory inside the sandbox.
func (f *FS) Rename(from, to string) error {
	pFrom, err := f.path(from)
	if err != nil {
		return err
	}
	pTo, err := f.path(to)
	if err != nil {
		return err
	}

	if err := os.Rename(pFrom, pTo); err != nil {
		return fmt.Errorf("could not rename %q to %q: %w", from, to, err)
	}
	return nil
}

// RemoveFile removes a single file (or symlink). Directories are rejected.
func (f *FS) RemoveFile(rel string) error {
	p, err := f.path(rel)
	if err != nil {
		return err
	}

	info, err := os.Lstat(p)
	if err != nil {
		return fmt.Errorf("could not remove %q: %w", rel, err)
	}
	if info.IsDir() {
		return fmt.Errorf("could not remove %q, is a directory: %w", rel, model.ErrNotValid)
	}

	if err := os.Remove(p); err != nil {
		return fmt.Errorf("could not remove %q: %w", rel, err)
	}
	return nil
}

// RemoveDirAll removes the rel directory and everything under it. Unlike os.RemoveAll
// a missing directory is an error.
func (f *FS) RemoveDirAll(rel string) error {
	p, err := f.path(rel)
	if err != nil {
		return err
	}

	info, err := os.Lstat(p)
	if err != nil {
		return fmt.Errorf("could not remove %q: %w", rel, err)
	}
	if !info.IsDir() && info.Mode()&fs.ModeSymlink == 0 {
		return fmt.Errorf("could not remove %q, not a directory: %w", rel, model.ErrNotValid)
	}

	if err := os.RemoveAll(p); err != nil {
		return fmt.Errorf("could not remove %q: %w", rel, err)
	}
	return nil
}

// CreateDirAll creates the rel directory and its missing parents.
func (f *FS) CreateDirAll(rel string) error {
	p, err := f.path(rel)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p, conventions.DirPerm); err != nil {
		return fmt.Errorf("could not create dir %q: %w", rel, err)
	}
	return nil
}

// SetModificationTime sets the access and modification times of path to now. Relative
// paths are resolved in the sandbox, absolute paths are used as they are.
func (f *FS) SetModificationTime(path string) error {
	p := path
	if !filepath.IsAbs(path) {
		var err error
		p, err = f.path(path)
		if err != nil {
			return err
		}
	}

	if err := file.Touch(p); err != nil {
		return fmt.Errorf("could not set %q modification time: %w", path, err)
	}
	return nil
}

// CreateSymbolicLink creates a symlink at to pointing to from. Both are resolved in
// the sandbox, so the link target is absolute.
func (f *FS) CreateSymbolicLink(from, to string) error {
	pFrom, err := f.path(from)
	if err != nil {
		return err
	}
	pTo, err := f.path(to)
	if err != nil {
		return err
	}

	if err := file.Symlink(pFrom, pTo); err != nil {
		return fmt.Errorf("could not link %q to %q: %w", to, from, err)
	}
	return nil
}

// ReplaceInFile replaces the first count non-overlapping occurrences of pattern with
// replacement in the rel file. A count of 0 leaves the file unchanged.
func (f *FS) ReplaceInFile(rel, pattern, replacement string, count int) error {
	if count < 0 {
		return fmt.Errorf("replace count must be 0 or greater, got %d: %w", count, model.ErrNotValid)
	}

	p, err := f.path(rel)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", rel, err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%q content is not valid UTF-8: %w", rel, model.ErrNotValid)
	}

	content := strings.Replace(string(data), pattern, replacement, count)
	if err := os.WriteFile(p, []byte(content), conventions.FilePerm); err != nil {
		return fmt.Errorf("could not write %q: %w", rel, err)
	}
	return nil
}

func (f *FS) path(rel string) (string, error) {
	if err := validPath(rel); err != nil {
		return "", err
	}
	return f.Qualify(rel), nil
}

func validPath(rel string) error {
	if !utf8.ValidString(rel) {
		return fmt.Errorf("path %q is not valid UTF-8: %w", rel, model.ErrNotValid)
	}
	return nil
}
