package tmpfs

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/tmpfs/internal/conventions"
	"github.com/slok/tmpfs/internal/log"
	"github.com/slok/tmpfs/internal/model"
	"github.com/slok/tmpfs/internal/utils/env"
)

// PersistEnvVar is the environment variable that, when present, keeps the sandbox
// directories after teardown.
const PersistEnvVar = conventions.PersistEnvVar

var (
	// ErrFixture is returned when the sandbox root could not be created.
	ErrFixture = model.ErrFixture
	// ErrNotValid is returned when an argument is not valid (e.g non UTF-8 paths).
	ErrNotValid = model.ErrNotValid
)

// Config configures a sandbox.
//
// All fields are optional, an empty Config{} creates the sandbox under the
// system temporary directory.
type Config struct {
	// BaseDir is the directory where the sandbox root is created.
	// Default: os.TempDir().
	BaseDir string

	// Prefix is the sandbox root directory name prefix.
	// Default: "tmpfs".
	Prefix string

	// PersistEnvVar is the environment variable checked at creation to keep the
	// sandbox after teardown.
	// Default: TEST_PERSIST_FILES.
	PersistEnvVar string

	// Stdout is where the print helpers write.
	// Default: os.Stdout.
	Stdout io.Writer

	// Logger receives the sandbox lifecycle logs.
	// Default: noop (silent). See the log package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.BaseDir == "" {
		c.BaseDir = os.TempDir()
	}

	baseDir, err := filepath.Abs(c.BaseDir)
	if err != nil {
		return fmt.Errorf("could not get absolute base dir: %w", err)
	}
	c.BaseDir = baseDir

	if c.Prefix == "" {
		c.Prefix = conventions.DefaultPrefix
	}
	if strings.ContainsAny(c.Prefix, `/\`) {
		return fmt.Errorf("prefix %q can't contain path separators: %w", c.Prefix, model.ErrNotValid)
	}

	if c.PersistEnvVar == "" {
		c.PersistEnvVar = PersistEnvVar
	}

	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// FS is a sandbox rooted at a temporary directory.
//
// An FS is not safe for concurrent use.
type FS struct {
	root    string
	persist bool
	closed  bool
	stdout  io.Writer
	logger  log.Logger
}

// New creates a new sandbox root directory.
//
// The caller must call [FS.Close] when done to release the directory. Typically used
// with defer:
//
//	fs, err := tmpfs.New(tmpfs.Config{})
//	if err != nil {
//	    return err
//	}
//	defer fs.Close()
func New(cfg Config) (*FS, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	root := filepath.Join(cfg.BaseDir, cfg.Prefix+"-"+id)
	if err := os.Mkdir(root, conventions.RootPerm); err != nil {
		return nil, fmt.Errorf("could not create sandbox root: %w: %w", model.ErrFixture, err)
	}

	persist := env.IsSet(cfg.PersistEnvVar)
	logger := cfg.Logger.WithValues(log.Kv{
		"root":    root,
		"persist": persist,
	})
	logger.Debugf("Sandbox created")

	return &FS{
		root:    root,
		persist: persist,
		stdout:  cfg.Stdout,
		logger:  logger,
	}, nil
}

// NewT creates a new sandbox released when the test and its subtests complete.
// The test fails immediately if the sandbox can't be created.
func NewT(t testing.TB, cfg Config) *FS {
	t.Helper()

	fs, err := New(cfg)
	if err != nil {
		t.Fatalf("could not create sandbox: %s", err)
	}

	t.Cleanup(func() {
		if err := fs.Close(); err != nil {
			t.Errorf("could not release sandbox: %s", err)
		}
	})

	return fs
}

// With runs fn with a new sandbox and releases it when fn returns or panics.
func With(cfg Config, fn func(fs *FS) error) (err error) {
	fs, err := New(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := fs.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(fs)
}

// Root returns the absolute path of the sandbox root.
func (f *FS) Root() string {
	return f.root
}

// Persisted returns true when the sandbox will be kept after teardown.
func (f *FS) Persisted() bool {
	return f.persist
}

// Close releases the sandbox removing the root directory and all its contents,
// unless the sandbox is persisted. Calling Close more than once is a no-op.
func (f *FS) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if f.persist {
		f.logger.Infof("Sandbox persisted at %q", f.root)
		return nil
	}

	if err := os.RemoveAll(f.root); err != nil {
		return fmt.Errorf("could not remove sandbox root: %w", err)
	}
	f.logger.Debugf("Sandbox removed")

	return nil
}
