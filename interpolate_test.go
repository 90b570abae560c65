package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInterpolateString tests token resolution in a single string
func TestInterpolateString(t *testing.T) {
	env := MapEnv{
		"HOST":         "db.local",
		"DATABASE_URL": "postgres://h",
		"EMPTY":        "",
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"DefinedVar", "${HOST}", "db.local"},
		{"DefinedVarIgnoresDefault", "${HOST:0.0.0.0}", "db.local"},
		{"UndefinedVarUsesDefault", "${MISSING:0.0.0.0}", "0.0.0.0"},
		{"EmptyDefault", "${MISSING:}", ""},
		{"DefinedEmptyVar", "${EMPTY:fallback}", ""},
		{"MixedLiteralAndToken", "${DATABASE_URL}/my_database", "postgres://h/my_database"},
		{"MultipleTokens", "${HOST}:${MISSING:5432}", "db.local:5432"},
		{"NoTokens", "plain text", "plain text"},
		{"BareDollarIsLiteral", "cost: $HOST", "cost: $HOST"},
		{"DollarWithoutBrace", "a$b", "a$b"},
		{"DefaultWithSpecialChars", "${MISSING:a b/c=d}", "a b/c=d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := interpolateString(tt.input, "leaf", env)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	t.Run("UndefinedVarNoDefault", func(t *testing.T) {
		_, err := interpolateString("${PORT}", "server.port", env)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInterpolation)

		var ierr *InterpolationError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, "PORT", ierr.Name)
		assert.Equal(t, "server.port", ierr.Path)
	})

	t.Run("UnterminatedToken", func(t *testing.T) {
		_, err := interpolateString("prefix ${HOST", "leaf", env)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := interpolateString("${}", "leaf", env)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("EmptyNameWithDefault", func(t *testing.T) {
		_, err := interpolateString("${:default}", "leaf", env)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("InvalidName", func(t *testing.T) {
		_, err := interpolateString("${9HOST}", "leaf", env)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("NoRescanOfResolvedText", func(t *testing.T) {
		injecting := MapEnv{"OUTER": "${INNER}", "INNER": "should not appear"}
		result, err := interpolateString("${OUTER}", "leaf", injecting)
		require.NoError(t, err)
		assert.Equal(t, "${INNER}", result)
	})
}

// TestInterpolateTable tests recursion through tables and arrays
func TestInterpolateTable(t *testing.T) {
	env := MapEnv{"HOST": "example.com"}

	t.Run("StructureAndOrderPreserved", func(t *testing.T) {
		tree := map[string]any{
			"server": map[string]any{
				"host":    "${HOST}",
				"port":    int64(8080),
				"enabled": true,
				"ratio":   1.5,
			},
			"hosts": []any{"${HOST}", "static", int64(3)},
		}

		result, err := interpolateTable(tree, "", env)
		require.NoError(t, err)

		assert.Equal(t, map[string]any{
			"server": map[string]any{
				"host":    "example.com",
				"port":    int64(8080),
				"enabled": true,
				"ratio":   1.5,
			},
			"hosts": []any{"example.com", "static", int64(3)},
		}, result)
	})

	t.Run("InputTreeUntouched", func(t *testing.T) {
		tree := map[string]any{"server": map[string]any{"host": "${HOST}"}}

		_, err := interpolateTable(tree, "", env)
		require.NoError(t, err)

		assert.Equal(t, map[string]any{"server": map[string]any{"host": "${HOST}"}}, tree)
	})

	t.Run("ErrorCarriesLeafPath", func(t *testing.T) {
		tree := map[string]any{
			"database": map[string]any{"url": "${UNSET_DB_URL}"},
		}

		_, err := interpolateTable(tree, "", env)
		require.Error(t, err)

		var ierr *InterpolationError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, "UNSET_DB_URL", ierr.Name)
		assert.Equal(t, "database.url", ierr.Path)
	})

	t.Run("ErrorInsideArray", func(t *testing.T) {
		tree := map[string]any{"hosts": []any{"ok", "${UNSET_HOST}"}}

		_, err := interpolateTable(tree, "", env)
		require.Error(t, err)

		var ierr *InterpolationError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, "hosts[1]", ierr.Path)
	})
}

// TestFileInclusion tests file: leaf substitution
func TestFileInclusion(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("LeafReplacedByContents", func(t *testing.T) {
		secretFile := filepath.Join(tmpDir, "secret.txt")
		require.NoError(t, os.WriteFile(secretFile, []byte("s3cr3t"), 0600))

		tree := map[string]any{"password": "file:" + secretFile}

		result, err := interpolateTable(tree, "", MapEnv{})
		require.NoError(t, err)
		assert.Equal(t, "s3cr3t", result["password"])
	})

	t.Run("PathPortionInterpolated", func(t *testing.T) {
		keyFile := filepath.Join(tmpDir, "key.pem")
		require.NoError(t, os.WriteFile(keyFile, []byte("key-data"), 0600))

		tree := map[string]any{"key": "file:${SECRET_DIR}/key.pem"}

		result, err := interpolateTable(tree, "", MapEnv{"SECRET_DIR": tmpDir})
		require.NoError(t, err)
		assert.Equal(t, "key-data", result["key"])
	})

	t.Run("ContentsNotRescanned", func(t *testing.T) {
		trapFile := filepath.Join(tmpDir, "trap.txt")
		require.NoError(t, os.WriteFile(trapFile, []byte("${NOT_A_VAR}"), 0600))

		tree := map[string]any{"value": "file:" + trapFile}

		result, err := interpolateTable(tree, "", MapEnv{})
		require.NoError(t, err)
		assert.Equal(t, "${NOT_A_VAR}", result["value"])
	})

	t.Run("MissingFileIsFatal", func(t *testing.T) {
		tree := map[string]any{"password": "file:" + filepath.Join(tmpDir, "absent.txt")}

		_, err := interpolateTable(tree, "", MapEnv{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSourceNotFound)
	})

	t.Run("ResolvedFilePathNotIncluded", func(t *testing.T) {
		// A token that resolves to a file: value must stay literal text.
		tree := map[string]any{"value": "${SNEAKY}"}

		result, err := interpolateTable(tree, "", MapEnv{"SNEAKY": "file:/etc/passwd"})
		require.NoError(t, err)
		assert.Equal(t, "file:/etc/passwd", result["value"])
	})
}
