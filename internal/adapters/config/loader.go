// Package config provides the configuration loader for prebuild.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Mode represents how the configuration was discovered.
type Mode string

const (
	// ModeWorkspace indicates that a workfile was found.
	ModeWorkspace Mode = "workspace"
	// ModeStandalone indicates that only a single unit file was found.
	ModeStandalone Mode = "standalone"
)

var validUnitNameRegex = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

// Load discovers the configuration from cwd and returns the workspace registry.
func (l *Loader) Load(cwd string) (*domain.Workspace, error) {
	if abs, err := filepath.Abs(cwd); err == nil {
		cwd = abs
	}

	configPath, mode, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeStandalone:
		return l.loadStandalone(configPath)
	case ModeWorkspace:
		return l.loadWorkfile(configPath)
	default:
		return nil, zerr.With(domain.ErrConfigNotFound, "mode", mode)
	}
}

func (l *Loader) findConfiguration(cwd string) (string, Mode, error) {
	currentDir := cwd
	var standaloneCandidate string

	for {
		workfilePath := filepath.Join(currentDir, domain.WorkFileName)
		if _, err := os.Stat(workfilePath); err == nil {
			return workfilePath, ModeWorkspace, nil
		}

		if standaloneCandidate == "" {
			unitPath := filepath.Join(currentDir, domain.UnitFileName)
			if _, err := os.Stat(unitPath); err == nil {
				standaloneCandidate = unitPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	if standaloneCandidate != "" {
		return standaloneCandidate, ModeStandalone, nil
	}

	return "", "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) loadStandalone(configPath string) (*domain.Workspace, error) {
	unitDir := filepath.Dir(configPath)
	ws := domain.NewWorkspace(unitDir, settingsFrom(&Workfile{}, unitDir))

	unit, err := l.loadUnit(unitDir, ".")
	if err != nil {
		return nil, err
	}
	if err := ws.AddUnit(unit); err != nil {
		return nil, err
	}
	return ws, nil
}

func (l *Loader) loadWorkfile(configPath string) (*domain.Workspace, error) {
	var workfile Workfile
	if err := readAndUnmarshalYAML(configPath, &workfile); err != nil {
		return nil, zerr.With(err, "file", configPath)
	}

	root := resolveRoot(configPath, workfile.Root)
	ws := domain.NewWorkspace(root, settingsFrom(&workfile, root))

	if err := l.addUnits(ws, root, workfile.Units); err != nil {
		return nil, err
	}

	appPaths, err := resolveDirs(root, workfile.Apps)
	if err != nil {
		return nil, err
	}
	for _, appPath := range appPaths {
		if err := l.addSubApp(ws, appPath); err != nil {
			return nil, err
		}
	}

	return ws, nil
}

// addSubApp registers a sub-application and the units its own workfile lists.
func (l *Loader) addSubApp(ws *domain.Workspace, appPath string) error {
	name := filepath.Base(appPath)
	if pkg, err := readManifest(appPath); err == nil && pkg.Name != "" {
		name = pkg.Name
	}
	ws.AddSubApp(domain.ProjectRef{Name: name, Root: appPath})

	appWorkfile := filepath.Join(appPath, domain.WorkFileName)
	if _, err := os.Stat(appWorkfile); err != nil {
		return nil
	}

	var workfile Workfile
	if err := readAndUnmarshalYAML(appWorkfile, &workfile); err != nil {
		return zerr.With(err, "file", appWorkfile)
	}
	return l.addUnits(ws, resolveRoot(appWorkfile, workfile.Root), workfile.Units)
}

func (l *Loader) addUnits(ws *domain.Workspace, root string, patterns []string) error {
	unitPaths, err := resolveDirs(root, patterns)
	if err != nil {
		return err
	}

	for _, unitPath := range unitPaths {
		relPath, _ := filepath.Rel(ws.Root(), unitPath)

		unit, err := l.loadUnit(unitPath, relPath)
		if err != nil {
			return err
		}
		if unit == nil {
			continue
		}
		if err := ws.AddUnit(unit); err != nil {
			return err
		}
	}
	return nil
}

// loadUnit reads a unit directory. It returns nil when the directory holds
// neither a unit file nor a package manifest.
func (l *Loader) loadUnit(unitPath, relPath string) (*domain.Unit, error) {
	var unitfile Unitfile

	unitfilePath := filepath.Join(unitPath, domain.UnitFileName)
	_, statErr := os.Stat(unitfilePath)
	hasUnitfile := statErr == nil
	if hasUnitfile {
		if err := readAndUnmarshalYAML(unitfilePath, &unitfile); err != nil {
			return nil, zerr.With(err, "directory", relPath)
		}
	}

	pkg, pkgErr := readManifest(unitPath)
	if pkgErr != nil && !errors.Is(pkgErr, fs.ErrNotExist) {
		return nil, zerr.With(pkgErr, "directory", relPath)
	}
	if !hasUnitfile && pkgErr != nil {
		l.Logger.Warn(fmt.Sprintf("%s missing in unit %s, skipping", domain.UnitFileName, relPath))
		return nil, nil
	}
	if pkgErr == nil {
		if unitfile.Name == "" {
			unitfile.Name = pkg.Name
		}
		if unitfile.Version == "" {
			unitfile.Version = pkg.Version
		}
	}

	if err := validateUnitName(unitfile.Name, relPath); err != nil {
		return nil, err
	}

	realPath, err := filepath.EvalSymlinks(unitPath)
	if err != nil {
		realPath = unitPath
	}

	return &domain.Unit{
		Name:           unitfile.Name,
		Version:        unitfile.Version,
		Root:           realPath,
		Groups:         unitfile.Groups,
		PrebuildGroups: unitfile.Prebuild,
		ExcludedGroups: unitfile.Exclude,
		Hooks:          unitfile.Hooks,
		Developing:     unitfile.Developing,
	}, nil
}

func validateUnitName(name, relPath string) error {
	if name == "" {
		return zerr.With(domain.ErrMissingUnitName, "directory", relPath)
	}
	if !validUnitNameRegex.MatchString(name) {
		err := zerr.With(domain.ErrInvalidUnitName, "unit", name)
		return zerr.With(err, "directory", relPath)
	}
	return nil
}

func settingsFrom(workfile *Workfile, root string) domain.Settings {
	targets := workfile.Targets
	if targets == "" {
		targets = domain.DefaultTargetsDir()
	}
	if !filepath.IsAbs(targets) {
		targets = filepath.Join(root, targets)
	}

	cachePath := workfile.CachePath
	if cachePath != "" && !filepath.IsAbs(cachePath) {
		cachePath = filepath.Join(root, cachePath)
	}

	return domain.Settings{
		TargetsDir:     targets,
		CachePath:      cachePath,
		DefaultTargets: workfile.DefaultTargets,
		Blacklist:      workfile.Blacklist,
		Policy:         domain.NewGroupPolicy(workfile.DefaultGroups, workfile.AlwaysExcluded),
		Engine: domain.EngineConfig{
			Command:     workfile.Engine.Command,
			Environment: workfile.Engine.Environment,
		},
	}
}

// resolveDirs expands glob patterns relative to root into a sorted, de-duplicated list of directories.
func resolveDirs(root string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, zerr.Wrap(err, "glob pattern failed: "+pattern)
		}
		for _, match := range matches {
			info, statErr := os.Stat(match)
			if statErr != nil || !info.IsDir() {
				continue
			}
			seen[match] = struct{}{}
		}
	}

	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	slices.Sort(dirs)
	return dirs, nil
}

func readManifest(dir string) (*packageManifest, error) {
	path := filepath.Join(dir, domain.PackageFileName)
	// #nosec G304 -- path is built from a discovered unit directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var pkg packageManifest
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", path)
	}
	return &pkg, nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
