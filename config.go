package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Config holds the finalized merged value tree. It is immutable after Build
// and safe for concurrent reads without locking; no method mutates it.
type Config struct {
	tree map[string]any
}

// Section is implemented by typed configuration sections. ConfigKey returns
// the dotted table key identifying the section's subtree in the merged tree,
// e.g. "database" or "server.tls". It must be usable on the zero value.
type Section interface {
	ConfigKey() string
}

// Validatable lets a section type supply custom validation on top of (or
// instead of) `validate` struct tags.
type Validatable interface {
	Validate() error
}

// Defaulter lets a section type populate non-zero defaults. GetOrDefault
// invokes it on the zero value before returning.
type Defaulter interface {
	ApplyDefaults()
}

// Table returns a deep copy of the merged tree. Mutating the copy does not
// affect the Config.
func (c *Config) Table() map[string]any {
	return deepCopyTable(c.tree)
}

// Value retrieves the raw value at a dot-separated path. The second return
// reports whether the path exists.
func (c *Config) Value(path string) (any, bool) {
	return navigateToPath(c.tree, path)
}

// Has reports whether a dot-separated path exists in the merged tree.
func (c *Config) Has(path string) bool {
	_, ok := navigateToPath(c.tree, path)
	return ok
}

// sectionTable looks up the section subtree for key and reports whether it
// exists and is a table.
func (c *Config) sectionTable(key string) (map[string]any, bool) {
	raw, ok := navigateToPath(c.tree, key)
	if !ok {
		return nil, false
	}
	table, ok := raw.(map[string]any)
	return table, ok
}

// Get retrieves and decodes the section bound to T. An absent key, a
// non-table subtree, or a subtree that fails to decode all yield (zero,
// false): the lenient accessors treat malformed configuration as "not
// configured". Callers that must distinguish failure use GetValidated.
func Get[T Section](c *Config) (T, bool) {
	var target T

	table, ok := c.sectionTable(target.ConfigKey())
	if !ok {
		return target, false
	}

	if err := decodeSection(table, &target); err != nil {
		var zero T
		return zero, false
	}
	return target, true
}

// GetOrDefault is like Get but returns T's default value when the section is
// absent or undecodable: the zero value, refined by ApplyDefaults when T
// implements Defaulter.
func GetOrDefault[T Section](c *Config) T {
	if section, ok := Get[T](c); ok {
		return section
	}

	var target T
	if d, ok := any(&target).(Defaulter); ok {
		d.ApplyDefaults()
	}
	return target
}

// MustGet is like Get but panics when the section is absent or undecodable.
// Unsafe for paths that must not crash; intended for mandatory startup
// configuration.
func MustGet[T Section](c *Config) T {
	section, ok := Get[T](c)
	if !ok {
		var zero T
		panic(fmt.Sprintf("failed to load configuration for key %q", zero.ConfigKey()))
	}
	return section
}

// GetValidated retrieves, decodes, and validates the section bound to T.
// Unlike Get, every failure mode is distinguishable: a missing key wraps
// ErrKeyNotFound, a decode failure (including a key bound to a non-table
// value) wraps ErrDeserialize, and a rejected value wraps ErrValidation.
// Validation runs `validate` struct tags first, then Validate() when T
// implements Validatable.
func GetValidated[T Section](c *Config) (T, error) {
	var target T
	key := target.ConfigKey()

	raw, found := navigateToPath(c.tree, key)
	if !found {
		return target, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}

	table, ok := raw.(map[string]any)
	if !ok {
		return target, fmt.Errorf("%w: section %q is not a table (got %T)", ErrDeserialize, key, raw)
	}

	if err := decodeSection(table, &target); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: section %q: %w", ErrDeserialize, key, err)
	}

	if err := validateSection(target); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: section %q: %w", ErrValidation, key, err)
	}

	return target, nil
}

// sectionValidator is shared across calls; validator.New caches struct
// metadata internally.
var sectionValidator = sync.OnceValue(func() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
})

func validateSection(section any) error {
	value := reflect.ValueOf(section)
	for value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() == reflect.Struct {
		if err := sectionValidator().Struct(section); err != nil {
			return err
		}
	}

	if v, ok := section.(Validatable); ok {
		return v.Validate()
	}
	return nil
}
