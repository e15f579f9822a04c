package config

// Cartonfile represents the structure of the carton.yaml configuration file.
type Cartonfile struct {
	Version         string     `yaml:"version"`
	Classpath       []string   `yaml:"classpath"`
	Filter          *FilterDTO `yaml:"filter"`
	TolerateMissing *bool      `yaml:"tolerateMissing"`
	Output          string     `yaml:"output"`
}

// FilterDTO represents the closure filter in the configuration.
type FilterDTO struct {
	Mode     string   `yaml:"mode"`
	Prefixes []string `yaml:"prefixes"`
}
