package ports

// ArtifactFS defines the filesystem operations used to manage cached artifacts.
//
//go:generate mockgen -source=artifact_fs.go -destination=mocks/mock_artifact_fs.go -package=mocks
type ArtifactFS interface {
	// RemoveAll removes path and everything below it. A missing path is not an error.
	RemoveAll(path string) error

	// CopyDir copies src into dst, following symlinks so dst holds real files.
	CopyDir(src, dst string) error

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool

	// WriteFile writes data to path, creating parent directories.
	WriteFile(path string, data []byte) error

	// Lock acquires an exclusive lock file. The returned function releases it.
	Lock(path string) (func() error, error)

	// ReadDir returns the names of the entries in dir. A missing dir yields none.
	ReadDir(dir string) ([]string, error)
}
