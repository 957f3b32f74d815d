package tmpfs_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tmpfs/pkg/log"
	"github.com/slok/tmpfs/pkg/tmpfs"
)

// Never set, so sandboxes are released regardless of the developer environment.
const unsetPersistEnvVar = "TMPFS_TEST_NEVER_SET_PERSIST"

func newTestFS(t *testing.T) *tmpfs.FS {
	t.Helper()
	return tmpfs.NewT(t, tmpfs.Config{
		BaseDir:       t.TempDir(),
		PersistEnvVar: unsetPersistEnvVar,
	})
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		cfg       func(t *testing.T) tmpfs.Config
		expPrefix string
		expErr    error
	}{
		"An empty config should create the sandbox under the system temp dir.": {
			cfg: func(t *testing.T) tmpfs.Config {
				return tmpfs.Config{PersistEnvVar: unsetPersistEnvVar}
			},
			expPrefix: "tmpfs-",
		},

		"A custom prefix should be used on the sandbox root name.": {
			cfg: func(t *testing.T) tmpfs.Config {
				return tmpfs.Config{BaseDir: t.TempDir(), Prefix: "myapp", PersistEnvVar: unsetPersistEnvVar}
			},
			expPrefix: "myapp-",
		},

		"A prefix with path separators should fail.": {
			cfg: func(t *testing.T) tmpfs.Config {
				return tmpfs.Config{BaseDir: t.TempDir(), Prefix: "a/b"}
			},
			expErr: tmpfs.ErrNotValid,
		},

		"A missing base dir should fail with a fixture error.": {
			cfg: func(t *testing.T) tmpfs.Config {
				return tmpfs.Config{BaseDir: filepath.Join(t.TempDir(), "missing")}
			},
			expErr: tmpfs.ErrFixture,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			fs, err := tmpfs.New(test.cfg(t))

			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
				assert.Nil(fs)
				return
			}
			require.NoError(err)
			defer fs.Close()

			assert.DirExists(fs.Root())
			assert.True(filepath.IsAbs(fs.Root()))
			assert.Regexp(`^`+test.expPrefix+`[0-9A-Z]{26}$`, filepath.Base(fs.Root()))
			assert.False(fs.Persisted())
		})
	}
}

func TestNewUniqueRoots(t *testing.T) {
	assert := assert.New(t)

	base := t.TempDir()
	roots := map[string]bool{}
	for i := 0; i < 20; i++ {
		fs := tmpfs.NewT(t, tmpfs.Config{BaseDir: base, PersistEnvVar: unsetPersistEnvVar})
		roots[fs.Root()] = true
	}

	assert.Len(roots, 20)
}

func TestClose(t *testing.T) {
	tests := map[string]struct {
		persistEnv  string
		setEnv      bool
		expPersist  bool
		expRootGone bool
	}{
		"Without the persist toggle the sandbox should be removed.": {
			persistEnv:  "TMPFS_TEST_PERSIST_UNSET",
			expRootGone: true,
		},

		"With the persist toggle the sandbox should be kept.": {
			persistEnv: "TMPFS_TEST_PERSIST_SET",
			setEnv:     true,
			expPersist: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			if test.setEnv {
				// Presence is enough, the value is ignored.
				t.Setenv(test.persistEnv, "")
			}

			fs, err := tmpfs.New(tmpfs.Config{BaseDir: t.TempDir(), PersistEnvVar: test.persistEnv})
			require.NoError(err)
			_, err = fs.WriteFile("a/b.txt", "b")
			require.NoError(err)

			assert.Equal(test.expPersist, fs.Persisted())
			require.NoError(fs.Close())
			require.NoError(fs.Close())

			if test.expRootGone {
				assert.NoDirExists(fs.Root())
			} else {
				assert.FileExists(fs.Qualify("a/b.txt"))
			}
		})
	}
}

func TestPersistToggleIsReadOnCreation(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	const envVar = "TMPFS_TEST_PERSIST_LATE"
	fs, err := tmpfs.New(tmpfs.Config{BaseDir: t.TempDir(), PersistEnvVar: envVar})
	require.NoError(err)

	t.Setenv(envVar, "1")
	require.NoError(fs.Close())

	assert.False(fs.Persisted())
	assert.NoDirExists(fs.Root())
}

func TestDefaultPersistEnvVar(t *testing.T) {
	assert := assert.New(t)

	t.Setenv(tmpfs.PersistEnvVar, "1")
	fs := tmpfs.NewT(t, tmpfs.Config{BaseDir: t.TempDir()})

	assert.True(fs.Persisted())
}

func TestNewT(t *testing.T) {
	var root string
	t.Run("sandbox owner", func(t *testing.T) {
		fs := newTestFS(t)
		root = fs.Root()
		_, err := fs.WriteFile("x/y/z.txt", "z")
		require.NoError(t, err)
		assert.DirExists(t, root)
	})

	assert.NotEmpty(t, root)
	assert.NoDirExists(t, root)
}

func TestWith(t *testing.T) {
	tests := map[string]struct {
		fn       func(fs *tmpfs.FS) error
		expErr   bool
		expPanic bool
	}{
		"A successful scope should release the sandbox.": {
			fn: func(fs *tmpfs.FS) error {
				_, err := fs.WriteFile("a.txt", "a")
				return err
			},
		},

		"A failing scope should return the error and release the sandbox.": {
			fn: func(fs *tmpfs.FS) error {
				return errors.New("something")
			},
			expErr: true,
		},

		"A panicking scope should release the sandbox.": {
			fn: func(fs *tmpfs.FS) error {
				panic("something")
			},
			expPanic: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			var root string
			run := func() error {
				return tmpfs.With(tmpfs.Config{BaseDir: t.TempDir(), PersistEnvVar: unsetPersistEnvVar}, func(fs *tmpfs.FS) error {
					root = fs.Root()
					return test.fn(fs)
				})
			}

			if test.expPanic {
				assert.Panics(func() { _ = run() })
			} else if err := run(); test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}

			assert.NotEmpty(root)
			assert.NoDirExists(root)
		})
	}
}

func TestLogger(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	l := logrus.New()
	l.Out = &buf
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.JSONFormatter{})

	fs, err := tmpfs.New(tmpfs.Config{
		BaseDir:       t.TempDir(),
		PersistEnvVar: unsetPersistEnvVar,
		Logger:        log.NewLogrus(logrus.NewEntry(l)),
	})
	require.NoError(err)
	require.NoError(fs.Close())

	out := buf.String()
	assert.Contains(out, `"msg":"Sandbox created"`)
	assert.Contains(out, `"msg":"Sandbox removed"`)
	assert.Contains(out, `"persist":false`)
	assert.Contains(out, filepath.Base(fs.Root()))
}
