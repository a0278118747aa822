package config

// File represents the structure of a pipeline YAML document.
type File struct {
	Version  string  `yaml:"version"`
	Name     string  `yaml:"name"`
	CacheDir string  `yaml:"cache_dir"`
	Step     StepDTO `yaml:"step"`
}

// StepDTO represents a step definition in the configuration.
type StepDTO struct {
	Name  string    `yaml:"name"`
	Cmd   []string  `yaml:"cmd"`
	Steps []StepDTO `yaml:"steps"`
}
