// Package config assembles application configuration from layered text
// sources: a base file plus optional overrides (environment-specific files,
// secrets files, inline strings) merged in registration order.
//
// Features:
//   - TOML, JSON, and YAML sources with format auto-detection
//   - Environment variable interpolation inside string values:
//     ${NAME} and ${NAME:default}, single pass, never re-scanned
//   - file:<path> leaves replaced by the referenced file's contents
//   - Deterministic deep merge: tables combine key-by-key, any other value
//     is replaced wholesale by the later source
//   - Optional vs required files: a missing optional file contributes
//     nothing; a missing required file fails the build
//   - Typed section extraction via the Section interface, with lenient
//     (Get, GetOrDefault), fatal (MustGet), and validated (GetValidated)
//     flavors
//
// Quick Start:
//
//	type DatabaseConfig struct {
//	    URL      string `toml:"url"`
//	    PoolSize int    `toml:"pool_size"`
//	}
//
//	func (DatabaseConfig) ConfigKey() string { return "database" }
//
//	cfg, err := config.NewBuilder().
//	    AddRequiredFile("config/config.toml").
//	    AddFile("config/config.local.toml").
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	db := config.MustGet[DatabaseConfig](cfg)
//
// Merge Precedence:
// Sources are loaded strictly in the order they were added; the last source
// to define a leaf wins. Nested tables merge, everything else (including
// arrays) replaces.
//
// Thread Safety:
// A Config is immutable once built and safe for concurrent reads from any
// number of goroutines. There is no reload or watch mechanism; build a new
// Config to pick up changes.
package config
