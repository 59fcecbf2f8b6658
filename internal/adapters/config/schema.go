package config

// Workfile represents the structure of the prebuild.work.yaml configuration file.
type Workfile struct {
	Version        string    `yaml:"version"`
	Root           string    `yaml:"root"`
	Units          []string  `yaml:"units"`
	Apps           []string  `yaml:"apps"`
	Blacklist      []string  `yaml:"blacklist"`
	DefaultGroups  []string  `yaml:"defaultGroups"`
	AlwaysExcluded []string  `yaml:"alwaysExcluded"`
	Targets        string    `yaml:"targets"`
	CachePath      string    `yaml:"cachePath"`
	DefaultTargets []string  `yaml:"defaultTargets"`
	Engine         EngineDTO `yaml:"engine"`
}

// EngineDTO configures the external build command.
type EngineDTO struct {
	Command     []string          `yaml:"command"`
	Environment map[string]string `yaml:"environment"`
}

// Unitfile represents the structure of the prebuild.yaml configuration file.
type Unitfile struct {
	Name       string            `yaml:"name"`
	Version    string            `yaml:"version"`
	Groups     map[string]string `yaml:"groups"`
	Prebuild   []string          `yaml:"prebuild"`
	Exclude    []string          `yaml:"exclude"`
	Hooks      []string          `yaml:"hooks"`
	Developing bool              `yaml:"developing"`
}

// packageManifest holds the package.json fields used as fallbacks.
type packageManifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
