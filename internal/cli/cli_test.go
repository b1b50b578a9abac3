package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/cssom/internal/cli"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	exit := func(code int) {
		t.Fatalf("unexpected exit(%d): %s", code, out.String())
	}
	err := cli.Run(context.Background(), exit, &out, args...)
	return out.String(), err
}

func TestMatch(t *testing.T) {
	tests := []struct {
		syntax string
		value  string
		want   string
	}{
		{"<length> | auto", "10px", "true\n"},
		{"<length> | auto", "auto", "true\n"},
		{"<length>", "red", "false\n"},
		{"<length>", "var(--x)", "pending\n"},
		{"<length>+", "1px 2px", "true\n"},
		{"*", "anything at all", "true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.syntax+" "+tt.value, func(t *testing.T) {
			out, err := run(t, "match", "--syntax", tt.syntax, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestMatchErrors(t *testing.T) {
	_, err := run(t, "match", "--syntax", "<nope>", "1px")
	require.Error(t, err)

	_, err = run(t, "match", "--syntax", "<length>", "calc(1px")
	require.Error(t, err)
}

func TestAttrType(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"attr(data-x)", "String indeterminate=false\n"},
		{"attr(data-x type(<length>), 0px)", "Numeric indeterminate=false\n"},
		{"attr(data-x <length>, auto)", "Unknown indeterminate=true\n"},
		{"attr(data-x type(<color>))", "Color indeterminate=false\n"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			out, err := run(t, "attr-type", tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	_, err := run(t, "attr-type", "10px")
	require.Error(t, err)
}

const stylesheet = `@property --gap {
  syntax: '<length>';
  inherits: false;
  initial-value: 0px;
}
:root {
  --gap: red;
  --brand: blue;
}
`

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "styles.css")
	require.NoError(t, os.WriteFile(path, []byte(stylesheet), 0o644))

	t.Run("text", func(t *testing.T) {
		out, err := run(t, "check", path)
		require.ErrorIs(t, err, cli.ErrCheckFailed)
		assert.Contains(t, out, path+":7:10: error:")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "check", "--format", "json", path)
		require.ErrorIs(t, err, cli.ErrCheckFailed)

		var reports []struct {
			File        string `json:"file"`
			Diagnostics []struct {
				Message string `json:"message"`
			} `json:"diagnostics"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &reports))
		require.Len(t, reports, 1)
		assert.Equal(t, path, reports[0].File)
		require.Len(t, reports[0].Diagnostics, 1)
		assert.Contains(t, reports[0].Diagnostics[0].Message, "--gap")
	})
}

func TestCheckWithRegistry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "props.yaml"), []byte(`properties:
  - name: --brand
    syntax: "<color>"
    inherits: true
    initial-value: black
`), 0o644))
	path := filepath.Join(dir, "ok.css")
	require.NoError(t, os.WriteFile(path, []byte(":root { --brand: rebeccapurple; }"), 0o644))

	out, err := run(t, "check", "--root", dir, "--registry", "*.yaml", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	bad := filepath.Join(dir, "bad.css")
	require.NoError(t, os.WriteFile(bad, []byte(":root { --brand: 10px; }"), 0o644))
	out, err = run(t, "check", "--root", dir, "--registry", "*.yaml", bad)
	require.ErrorIs(t, err, cli.ErrCheckFailed)
	assert.Contains(t, out, "--brand")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cssom ")

	out, err = run(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
}

func TestLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "debug", "match", "--syntax", "<number>", "1")
	require.NoError(t, err)
}
