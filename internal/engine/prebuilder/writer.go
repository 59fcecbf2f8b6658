package prebuilder

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"

	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Writer materializes composites into the cache and removes stale artifacts.
type Writer struct {
	fs     ports.ArtifactFS
	engine ports.BuildEngine
}

// NewWriter creates a new Writer.
func NewWriter(fs ports.ArtifactFS, engine ports.BuildEngine) *Writer {
	return &Writer{fs: fs, engine: engine}
}

// Invalidate removes the artifact at path. A missing artifact is not an error.
func (w *Writer) Invalidate(path string) error {
	if err := w.fs.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidationFailed.Error()), "path", path)
	}
	return nil
}

// Write runs the engine on the request and copies its result into dest.
// dest must already be invalidated. A failed copy removes whatever part of
// dest was written, so a lookup never finds a half-populated artifact.
func (w *Writer) Write(ctx context.Context, req domain.BuildRequest, dest string) error {
	result, err := w.engine.Build(ctx, req)
	if err != nil {
		return zerr.Wrap(err, domain.ErrEngineFailed.Error())
	}
	defer result.Release() //nolint:errcheck // scratch space is best effort

	if err := w.fs.CopyDir(result.Dir, dest); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error()), "path", dest)
		return errors.Join(err, w.Invalidate(dest))
	}
	return nil
}

// WriteMetadata stores the metadata record for target next to the artifact.
func (w *Writer) WriteMetadata(dest string, target domain.Target) error {
	data, err := json.MarshalIndent(domain.NewMetadata(target), "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error())
	}
	path := domain.MetadataPath(dest)
	if err := w.fs.WriteFile(path, append(data, '\n')); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error()), "path", path)
	}
	return nil
}

// Clear removes every cache root unconditionally. Roots that do not exist are
// skipped. All roots are attempted and the failures are joined.
func (w *Writer) Clear(roots []string) error {
	var errs []error
	for _, root := range roots {
		if err := w.Invalidate(root); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ArtifactFilter selects cache entries by target key and unit version. Nil
// Keys matches any derived target key and nil Versions matches any version.
type ArtifactFilter struct {
	Keys     []string
	Versions []string
}

func (f ArtifactFilter) matches(name string) bool {
	key, version, ok := domain.ParseArtifactName(name)
	if !ok {
		return false
	}
	if f.Keys == nil {
		if !domain.IsTargetKey(key) {
			return false
		}
	} else if !slices.Contains(f.Keys, key) {
		return false
	}
	return f.Versions == nil || slices.Contains(f.Versions, version)
}

// ClearMatching removes the artifacts below root selected by filter. Lock
// files and entries that are not artifacts are left alone, and root itself is
// never removed.
func (w *Writer) ClearMatching(root string, filter ArtifactFilter) error {
	names, err := w.fs.ReadDir(root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidationFailed.Error()), "path", root)
	}

	var errs []error
	for _, name := range names {
		if !filter.matches(name) {
			continue
		}
		if err := w.Invalidate(filepath.Join(root, name)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
