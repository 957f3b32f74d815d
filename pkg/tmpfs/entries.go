package tmpfs

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// EntriesRaw returns every entry under the sandbox root (root included) in lexical
// walk order. The paths are returned as the OS reports them, without any encoding
// check. Entries that can't be read are skipped.
func (f *FS) EntriesRaw() []string {
	var entries []string
	_ = filepath.WalkDir(f.root, func(p string, _ fs.DirEntry, err error) error {
		if err != nil {
			f.logger.Debugf("Skipping %q entry: %s", p, err)
			return nil
		}
		entries = append(entries, p)
		return nil
	})

	return entries
}

// Entries is like EntriesRaw for sandboxes that only have UTF-8 names. It panics if
// an entry path is not valid UTF-8.
func (f *FS) Entries() []string {
	entries := f.EntriesRaw()
	for _, e := range entries {
		if !utf8.ValidString(e) {
			panic(fmt.Sprintf("tmpfs: sandbox entry %q is not valid UTF-8", e))
		}
	}

	return entries
}

// PrintEntries prints Entries one per line.
func (f *FS) PrintEntries() {
	for _, e := range f.Entries() {
		fmt.Fprintln(f.stdout, e)
	}
}

// PrintEntriesRaw prints EntriesRaw one per line, invalid UTF-8 is replaced
// with U+FFFD.
func (f *FS) PrintEntriesRaw() {
	for _, e := range f.EntriesRaw() {
		fmt.Fprintln(f.stdout, strings.ToValidUTF8(e, "\uFFFD"))
	}
}
