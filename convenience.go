package config

import "fmt"

// Load builds a Config from the single file resolved by FindConfigFile.
// This is the one-call path for applications that follow the conventional
// layout; anything layered goes through NewBuilder.
func Load() (*Config, error) {
	path, err := FindConfigFile()
	if err != nil {
		return nil, err
	}
	return NewBuilder().AddRequiredFile(path).Build()
}

// LoadFrom builds a Config from a specific file path without discovery
// fallbacks. The file is required.
func LoadFrom(path string) (*Config, error) {
	return NewBuilder().AddRequiredFile(path).Build()
}

// MustLoad is like Load but panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("config load failed: %v", err))
	}
	return cfg
}
