// Package tmpfs provides disposable filesystem sandboxes for tests.
//
// A sandbox is a uniquely named directory under the system temporary directory,
// released (removed with all its contents) when its owner is done with it:
//
//	func TestSomething(t *testing.T) {
//	    fs := tmpfs.NewT(t, tmpfs.Config{})
//
//	    fs.WriteFile("config/app.yaml", "port: 8080")
//	    fs.CreateSymbolicLink("config", "current")
//	    ...
//	}
//
// Outside of a test use [New] and [FS.Close], or the [With] scope helper.
//
// # Persisting sandboxes
//
// When the TEST_PERSIST_FILES environment variable is present (any value) at
// creation time, the sandbox is not removed on teardown so its contents can be
// inspected after the test. Persisted sandbox names carry a ULID so they sort
// by creation time.
//
// # Seeding from assets
//
// [FS.CopyAssets] copies an [asset.Dir] tree into the sandbox root. Trees can be
// built from any fs.FS (go:embed included) or from a YAML manifest, see the
// asset package.
//
// # Paths
//
// All paths are relative to the sandbox root and must be valid UTF-8. Relative paths
// are joined to the root as given, so ".." segments can escape it; use
// [FS.QualifyInRoot] when the path is not trusted.
package tmpfs
