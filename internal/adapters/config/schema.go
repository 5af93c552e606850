package config

// Keelfile represents the structure of the keel.yaml configuration file.
type Keelfile struct {
	Version  string                `yaml:"version"`
	Settings SettingsDTO           `yaml:"settings"`
	Build    BuildDTO              `yaml:"build"`
	Problems ProblemsDTO           `yaml:"problems"`
	Projects map[string]ProjectDTO `yaml:"projects"`
}

// SettingsDTO declares the settings scope: the scripts evaluated first in
// every pass plus their declared inputs.
type SettingsDTO struct {
	Scripts []string `yaml:"scripts"`
	Inputs  []string `yaml:"inputs"`
	Env     []string `yaml:"env"`
}

// BuildDTO declares build-scoped model requests.
type BuildDTO struct {
	Models []string `yaml:"models"`
}

// ProblemsDTO declares the problem policy.
type ProblemsDTO struct {
	// FailOn is the severity at or above which the cache entry is
	// discarded. Defaults to "error".
	FailOn string `yaml:"failOn"`
}

// ProjectDTO represents a project unit definition, keyed by its path.
type ProjectDTO struct {
	Scripts []string `yaml:"scripts"`
	Inputs  []string `yaml:"inputs"`
	Env     []string `yaml:"env"`
	Models  []string `yaml:"models"`
}
