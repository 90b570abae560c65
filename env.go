package config

import "os"

// Environment provides read access to environment variables during
// interpolation. Injecting it keeps the process environment out of tests;
// production code uses OSEnv.
type Environment interface {
	// Lookup returns the value of the named variable and whether it is
	// defined. A defined-but-empty variable returns ("", true).
	Lookup(name string) (string, bool)
}

// OSEnv reads from the current process environment.
type OSEnv struct{}

func (OSEnv) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapEnv is a fixed in-memory environment, primarily for tests.
type MapEnv map[string]string

func (m MapEnv) Lookup(name string) (string, bool) {
	value, ok := m[name]
	return value, ok
}
