package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactFS = (*ArtifactFS)(nil)

// ArtifactFS implements ports.ArtifactFS on the local file system.
type ArtifactFS struct{}

// NewArtifactFS creates a new ArtifactFS.
func NewArtifactFS() *ArtifactFS {
	return &ArtifactFS{}
}

// RemoveAll removes path and everything below it. A missing path is not an error.
func (a *ArtifactFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// IsDir reports whether path exists and is a directory.
func (a *ArtifactFS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// WriteFile writes data to path, creating parent directories.
func (a *ArtifactFS) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return err
	}
	return os.WriteFile(path, data, domain.FilePerm)
}

// ReadDir returns the sorted entry names of dir. A missing dir yields none.
func (a *ArtifactFS) ReadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// Lock creates path exclusively and writes the current pid into it.
// It fails with ErrArtifactLocked if the lock is already held.
func (a *ArtifactFS) Lock(path string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create lock directory"), "lock", path)
	}

	//nolint:gosec // lock path is derived from the artifact path
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, domain.PrivateFilePerm)
	if err != nil {
		if errors.Is(err, iofs.ErrExist) {
			return nil, zerr.With(domain.ErrArtifactLocked, "lock", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to create lock file"), "lock", path)
	}
	_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, zerr.With(zerr.Wrap(err, "failed to create lock file"), "lock", path)
	}

	return func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return err
		}
		return nil
	}, nil
}

// CopyDir copies the contents of src into dst. Symlinks are followed so that
// dst only holds regular files and directories.
func (a *ArtifactFS) CopyDir(src, dst string) error {
	resolved, err := filepath.EvalSymlinks(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve source"), "src", src)
	}
	return copyTree(resolved, dst, []string{resolved})
}

// copyTree copies src into dst. ancestors holds the resolved paths of the
// directories being copied, so symlink cycles are skipped instead of followed.
func copyTree(src, dst string, ancestors []string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source"), "src", src)
	}
	if err := os.MkdirAll(dst, info.Mode().Perm()|0o700); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "dst", dst)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read directory"), "src", src)
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		resolved, err := filepath.EvalSymlinks(from)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve symlink"), "path", from)
		}
		target, err := os.Stat(resolved)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stat source"), "path", from)
		}

		if target.IsDir() {
			if slices.Contains(ancestors, resolved) {
				continue
			}
			if err := copyTree(resolved, to, append(slices.Clone(ancestors), resolved)); err != nil {
				return err
			}
			continue
		}

		if err := copyFile(resolved, to, target.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src) //nolint:gosec // source is inside the engine output
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open file"), "path", src)
	}
	defer in.Close() //nolint:errcheck // read-only

	//nolint:gosec // destination is inside the artifact directory
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm|0o600)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create file"), "path", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dst)
	}
	return out.Close()
}
