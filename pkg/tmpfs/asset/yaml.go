package asset

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/slok/tmpfs/internal/model"
)

// LoadYAML loads a tree from a YAML manifest file. Mapping values that are scalars
// are files with the scalar as content, nested mappings are directories:
//
//	config:
//	  app.yaml: |
//	    port: 8080
//	  empty.txt: ""
//	README.md: hello
//
// Entries keep the manifest order. An empty manifest is an empty tree.
func LoadYAML(fsys fs.FS, manifest string) (DirEntry, error) {
	data, err := fs.ReadFile(fsys, manifest)
	if err != nil {
		return nil, fmt.Errorf("reading asset manifest: %w", err)
	}

	tree, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("asset manifest %q: %w", manifest, err)
	}

	return tree, nil
}

// ParseYAML is like LoadYAML but takes the manifest contents.
func ParseYAML(data []byte) (DirEntry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return memDir{path: "."}, nil
		}
		root = doc.Content[0]
	}

	switch {
	case root.Kind == 0, isNull(root):
		return memDir{path: "."}, nil
	case root.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("manifest root must be a mapping (line %d): %w", root.Line, model.ErrNotValid)
	}

	tree, err := newMemDir(".", root)
	if err != nil {
		return nil, err
	}

	return tree, nil
}

func newMemDir(dirPath string, n *yaml.Node) (memDir, error) {
	dir := memDir{path: dirPath}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}

		if key.Kind != yaml.ScalarNode {
			return memDir{}, fmt.Errorf("entry name must be a scalar (line %d): %w", key.Line, model.ErrNotValid)
		}
		name := key.Value
		if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
			return memDir{}, fmt.Errorf("invalid entry name %q (line %d): %w", name, key.Line, model.ErrNotValid)
		}
		p := path.Join(dirPath, name)

		switch value.Kind {
		case yaml.ScalarNode:
			content := value.Value
			if isNull(value) {
				content = ""
			}
			dir.entries = append(dir.entries, memFile{path: p, data: []byte(content)})
		case yaml.MappingNode:
			sub, err := newMemDir(p, value)
			if err != nil {
				return memDir{}, err
			}
			dir.entries = append(dir.entries, sub)
		default:
			return memDir{}, fmt.Errorf("entry %q must be a scalar or a mapping (line %d): %w", p, value.Line, model.ErrNotValid)
		}
	}

	return dir, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

type memDir struct {
	path    string
	entries []Entry
}

func (d memDir) Path() string { return d.path }

func (d memDir) Entries() ([]Entry, error) { return d.entries, nil }

type memFile struct {
	path string
	data []byte
}

func (f memFile) Path() string { return f.path }

func (f memFile) Contents() ([]byte, error) { return f.data, nil }
