package fs

import (
	"context"
	"os"

	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputGroupProvider = (*DirProvider)(nil)

// DirProvider serves output groups straight from a unit's source directories.
type DirProvider struct{}

// NewDirProvider creates a new DirProvider.
func NewDirProvider() *DirProvider {
	return &DirProvider{}
}

// TreeFor returns the directory backing group. A declared group whose
// directory does not exist produces nothing.
func (p *DirProvider) TreeFor(ctx context.Context, unit *domain.Unit, group string) (domain.Tree, error) {
	if err := ctx.Err(); err != nil {
		return domain.EmptyTree, err
	}

	dir, ok := unit.GroupDir(group)
	if !ok {
		err := zerr.With(domain.ErrGroupNotDeclared, "unit", unit.Name)
		return domain.EmptyTree, zerr.With(err, "group", group)
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.EmptyTree, nil
		}
		err = zerr.With(zerr.Wrap(err, domain.ErrGroupProductionFailed.Error()), "unit", unit.Name)
		return domain.EmptyTree, zerr.With(err, "group", group)
	}
	if !info.IsDir() {
		err := zerr.With(zerr.New("group source is not a directory"), "path", dir)
		return domain.EmptyTree, zerr.With(zerr.Wrap(err, domain.ErrGroupProductionFailed.Error()), "group", group)
	}

	return domain.Tree{Group: group, Dir: dir}, nil
}
