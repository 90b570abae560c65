package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// originKind discriminates the two source shapes a Builder accepts.
type originKind uint8

const (
	originFile originKind = iota
	originInline
)

// origin describes one registered configuration source. It is consumed
// exactly once during Build and carries no state beyond construction.
type origin struct {
	kind     originKind
	path     string
	required bool
	content  string
	format   string
}

// name identifies the origin in diagnostics.
func (o origin) name() string {
	if o.kind == originInline {
		return "inline " + o.format
	}
	return o.path
}

// loadOrigin turns an origin into an interpolated value tree. The boolean
// reports whether the origin contributed a tree: an optional file that does
// not exist yields (nil, false, nil). Every other failure is fatal —
// "optional" waives existence, not validity.
func loadOrigin(o origin, env Environment) (map[string]any, bool, error) {
	var data []byte
	format := o.format

	switch o.kind {
	case originInline:
		data = []byte(o.content)

	case originFile:
		fileData, err := os.ReadFile(o.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				if o.required {
					return nil, false, &SourceError{Source: o.path, Err: ErrSourceNotFound}
				}
				return nil, false, nil
			}
			return nil, false, &SourceError{Source: o.path, Err: fmt.Errorf("failed to read: %w", err)}
		}
		data = fileData

		if format == "" || format == "auto" {
			format = detectFileFormat(o.path)
			if format == "" {
				format = detectFormatFromContent(data)
			}
		}
	}

	tree, err := parseSource(data, format, o.name())
	if err != nil {
		return nil, false, err
	}

	interpolated, err := interpolateTable(tree, "", env)
	if err != nil {
		return nil, false, &SourceError{Source: o.name(), Err: err}
	}

	return interpolated, true, nil
}

// parseSource parses raw source text in the given format into a value tree.
func parseSource(data []byte, format, name string) (map[string]any, error) {
	tree := make(map[string]any)

	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, &ParseError{Source: name, Err: err}
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&tree); err != nil {
			return nil, &ParseError{Source: name, Err: err}
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, &ParseError{Source: name, Err: err}
		}
	default:
		return nil, &ParseError{Source: name, Err: fmt.Errorf("unable to determine configuration format")}
	}

	return tree, nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try TOML before YAML: YAML accepts almost any plain text
	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}
