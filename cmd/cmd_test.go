package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bvisness/flowcanvas/app/script"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.toml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.json")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

const demoScript = `{
  "steps": [
    {"op": "create", "kind": "GmailTrigger", "id": "A", "x": 0, "y": 0},
    {"op": "create", "kind": "Filter", "id": "B", "x": 300, "y": 0},
    {"op": "connect", "from": "A", "to": "B"},
    {"op": "expect", "expr": "len(edges) == 1"}
  ]
}`

func TestRun_WritesSnapshot(t *testing.T) {
	path := writeScript(t, demoScript)
	svgPath := filepath.Join(t.TempDir(), "out.svg")

	out, err := execute(t, "run", path, "--output", svgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+path+": 2 nodes, 1 edges")
	assert.Contains(t, out, "A.output[0] -> B")
	assert.Contains(t, out, "wrote "+svgPath)

	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))
	assert.Contains(t, string(data), `class="edge"`)
}

func TestRun_FailingExpectation(t *testing.T) {
	path := writeScript(t, `{"steps": [
		{"op": "create", "kind": "Filter", "id": "f"},
		{"op": "expect", "expr": "len(nodes) == 2"}
	]}`)

	out, err := execute(t, "run", path, "--output=", "--quiet")
	assert.ErrorIs(t, err, script.ErrExpectationFailed)
	assert.Contains(t, out, "✗ "+path+": 1 nodes, 0 edges")

	_, err = execute(t, "run", filepath.Join(t.TempDir(), "missing.json"), "--output=")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCatalog(t *testing.T) {
	out, err := execute(t, "catalog", "agent")
	require.NoError(t, err)
	assert.Contains(t, out, "AIAgent")
	assert.Contains(t, out, "CustomerSupportAgent")
	assert.Contains(t, out, "in, 1 out, 3 sub")
	assert.NotContains(t, out, "GmailTrigger")

	out, err = execute(t, "catalog", "zzzzzz")
	require.NoError(t, err)
	assert.Contains(t, out, "no node types match")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowcanvas.toml")

	_, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = execute(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)

	out, err := execute(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[canvas]")
	assert.Contains(t, out, "pan_key = \"ctrl\"")
}
