package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Builder accumulates an ordered list of configuration sources and produces
// an immutable Config. Sources are loaded strictly in registration order and
// folded through the deep merge, so the last source to define a leaf wins.
type Builder struct {
	origins []origin
	env     Environment
	logger  zerolog.Logger
}

// NewBuilder creates a builder with the process environment and no logging.
func NewBuilder() *Builder {
	return &Builder{
		env:    OSEnv{},
		logger: zerolog.Nop(),
	}
}

// AddFile registers an optional configuration file. A missing file
// contributes nothing to the merge; a file that exists but fails to parse or
// interpolate still fails Build.
func (b *Builder) AddFile(path string) *Builder {
	b.origins = append(b.origins, origin{kind: originFile, path: path})
	return b
}

// AddRequiredFile registers a configuration file that must exist and load
// cleanly; any failure is fatal to Build.
func (b *Builder) AddRequiredFile(path string) *Builder {
	b.origins = append(b.origins, origin{kind: originFile, path: path, required: true})
	return b
}

// AddTOML registers an inline TOML source. Parse or interpolation failure is
// fatal to Build.
func (b *Builder) AddTOML(content string) *Builder {
	b.origins = append(b.origins, origin{kind: originInline, content: content, format: "toml"})
	return b
}

// AddDotenv loads a .env file from the working directory into the process
// environment, making its entries visible to interpolation. A missing file
// is ignored, matching dotenv convention.
func (b *Builder) AddDotenv() *Builder {
	if err := godotenv.Load(); err != nil {
		b.logger.Debug().Err(err).Msg("no .env file loaded")
	}
	return b
}

// AddDotenvFile loads the named .env file into the process environment.
func (b *Builder) AddDotenvFile(path string) *Builder {
	if err := godotenv.Load(path); err != nil {
		b.logger.Debug().Err(err).Str("path", path).Msg("dotenv file not loaded")
	}
	return b
}

// WithEnvironment replaces the environment used for interpolation. Tests
// inject a MapEnv here instead of mutating process state.
func (b *Builder) WithEnvironment(env Environment) *Builder {
	if env != nil {
		b.env = env
	}
	return b
}

// WithLogger enables build-time diagnostics on the given logger.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// Build loads each registered source in order, interpolates it, and folds
// the results through the deep merge starting from an empty table. The first
// fatal error aborts the build; no partial Config is returned. Zero loaded
// sources is not an error and yields a Config wrapping an empty table.
func (b *Builder) Build() (*Config, error) {
	merged := make(map[string]any)

	for _, o := range b.origins {
		tree, loaded, err := loadOrigin(o, b.env)
		if err != nil {
			b.logger.Error().Err(err).Str("source", o.name()).Msg("failed to load configuration source")
			return nil, err
		}
		if !loaded {
			b.logger.Warn().Str("source", o.name()).Msg("optional configuration file not found")
			continue
		}

		merged = mergeTables(merged, tree)
	}

	return &Config{tree: merged}, nil
}

// MustBuild is like Build but panics on error. Intended for startup paths
// where configuration failure should abort the process.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}
