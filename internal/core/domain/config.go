package domain

// Config is the resolved carton configuration.
type Config struct {
	// Root is the directory relative paths were resolved against.
	Root string

	// Classpath lists directories and container archives searched for units, in order.
	Classpath []string

	// Filter bounds the closure.
	Filter NameFilter

	// TolerateMissing drops unlocatable or unparseable units instead of failing.
	TolerateMissing bool

	// Output is the default archive path written by pack.
	Output string

	// StateFile is where pack records are persisted.
	StateFile string
}

// DefaultConfig returns the configuration used when no carton.yaml is found.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:            root,
		Filter:          DefaultFilter(),
		TolerateMissing: true,
	}
}
