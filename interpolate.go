package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// filePrefix marks a string leaf whose value should be replaced by the
// contents of the referenced file.
const filePrefix = "file:"

// interpolateTable rewrites every string leaf of a table: environment
// variable tokens are resolved against env, and leaves carrying the file:
// prefix are replaced by the referenced file's contents. The input tree is
// not modified; a new tree is returned.
func interpolateTable(table map[string]any, prefix string, env Environment) (map[string]any, error) {
	out := make(map[string]any, len(table))
	for key, value := range table {
		interpolated, err := interpolateValue(value, joinPath(prefix, key), env)
		if err != nil {
			return nil, err
		}
		out[key] = interpolated
	}
	return out, nil
}

func interpolateValue(value any, path string, env Environment) (any, error) {
	switch v := value.(type) {
	case string:
		return interpolateLeaf(v, path, env)
	case map[string]any:
		return interpolateTable(v, path, env)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			interpolated, err := interpolateValue(elem, fmt.Sprintf("%s[%d]", path, i), env)
			if err != nil {
				return nil, err
			}
			out[i] = interpolated
		}
		return out, nil
	default:
		// Numbers and booleans pass through unchanged.
		return v, nil
	}
}

// interpolateLeaf resolves one string leaf. Leaves matching the file:
// inclusion pattern have the path portion interpolated first, then the file
// contents substituted verbatim. All other leaves get a single token scan.
func interpolateLeaf(raw, path string, env Environment) (string, error) {
	if rest, ok := strings.CutPrefix(raw, filePrefix); ok && rest != "" {
		filePath, err := interpolateString(rest, path, env)
		if err != nil {
			return "", err
		}
		return includeFile(filePath, path)
	}
	return interpolateString(raw, path, env)
}

// interpolateString performs a single left-to-right scan over s, replacing
// every ${NAME} or ${NAME:default} token. Resolved text is inserted verbatim
// and never re-scanned, so values cannot inject further tokens.
func interpolateString(s, path string, env Environment) (string, error) {
	if !strings.Contains(s, "${") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '$' || i+1 >= len(s) || s[i+1] != '{' {
			b.WriteByte(s[i])
			i++
			continue
		}

		end := strings.IndexByte(s[i+2:], '}')
		if end < 0 {
			return "", &ParseError{
				Source: path,
				Err:    fmt.Errorf("unterminated interpolation token %q", s[i:]),
			}
		}

		token := s[i+2 : i+2+end]
		name, def, hasDefault := strings.Cut(token, ":")
		if !isValidEnvName(name) {
			return "", &ParseError{
				Source: path,
				Err:    fmt.Errorf("malformed interpolation token %q: invalid variable name", s[i:i+2+end+1]),
			}
		}

		switch value, defined := env.Lookup(name); {
		case defined:
			b.WriteString(value)
		case hasDefault:
			b.WriteString(def)
		default:
			return "", &InterpolationError{Name: name, Path: path}
		}

		i += 2 + end + 1
	}

	return b.String(), nil
}

// includeFile reads the file referenced by a file: leaf. A missing or
// unreadable file is fatal regardless of the enclosing source's optional
// flag.
func includeFile(filePath, leafPath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &SourceError{
				Source: filePath,
				Err:    fmt.Errorf("%w: included from %s", ErrSourceNotFound, leafPath),
			}
		}
		return "", &SourceError{
			Source: filePath,
			Err:    fmt.Errorf("reading file included from %s: %w", leafPath, err),
		}
	}
	return string(data), nil
}

// isValidEnvName reports whether s is a valid environment variable
// identifier: [A-Za-z_][A-Za-z0-9_]*.
func isValidEnvName(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if r == '_' || isLetter {
			continue
		}
		if isDigit && i > 0 {
			continue
		}
		return false
	}
	return true
}
