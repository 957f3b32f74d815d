package conventions

const (
	// PersistEnvVar is the environment variable that keeps sandboxes after teardown.
	PersistEnvVar = "TEST_PERSIST_FILES"
	// DefaultPrefix is the default sandbox root directory name prefix.
	DefaultPrefix = "tmpfs"

	// RootPerm is the permission of the sandbox root, only the owner can access it.
	RootPerm = 0o700
	// DirPerm is the permission of the directories created inside a sandbox.
	DirPerm = 0o755
	// FilePerm is the permission of the files written inside a sandbox.
	FilePerm = 0o644
)
