package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	croissant "github.com/reoring/croissant"
	"github.com/reoring/croissant/source"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = run(context.Background(), args, &out, &errb)
	return code, out.String(), errb.String()
}

func writeCSV(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "iris.csv")
	require.NoError(t, os.WriteFile(p, []byte("sepal_length,species\n5.1,setosa\n"), 0o644))
	return p
}

func generateArgs(csv, out string, extra ...string) []string {
	args := []string{"generate", csv, "iris", "Iris flowers", "https://spdx.org/licenses/CC-BY-4.0.html", "Jane Doe", "https://example.org/iris", "--output", out}
	return append(args, extra...)
}

func TestGenerateThenValidate(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "meta.json")

	code, stdout, stderr := runCLI(t, generateArgs(writeCSV(t, dir), out)...)
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "Generated "+out+"\n", stdout)
	require.FileExists(t, out)

	code, stdout, stderr = runCLI(t, "validate", out)
	require.Equal(t, exitOK, code, stderr)
	assert.Empty(t, stderr)
	assert.Equal(t, "OK: Required field validation passed\nOK: deep validation OK: iris\n", stdout)
}

func TestGenerate_FlagsBeforePositionals(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "meta.json")
	args := []string{"generate", "--digest", "md5", "--version", "2.0.0", "--output", out,
		writeCSV(t, dir), "iris", "Iris", "https://l", "Jane", "https://u"}

	code, _, stderr := runCLI(t, args...)
	require.Equal(t, exitOK, code, stderr)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"md5"`)
	assert.Contains(t, string(b), `"version": "2.0.0"`)
}

func TestGenerate_Attributes(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "meta.json")
	attrs := filepath.Join(dir, "attrs.yaml")
	require.NoError(t, os.WriteFile(attrs, []byte("version: 3.1.0\ncite_as: Fisher 1936\n"), 0o644))

	code, _, stderr := runCLI(t, generateArgs(writeCSV(t, dir), out, "--attrs", attrs)...)
	require.Equal(t, exitOK, code, stderr)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"version": "3.1.0"`)
	assert.Contains(t, string(b), `"citeAs": "Fisher 1936"`)
}

func TestGenerate_Failures(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "meta.json")

	code, _, stderr := runCLI(t, generateArgs(filepath.Join(dir, "missing.csv"), out)...)
	assert.Equal(t, exitFail, code)
	assert.Contains(t, stderr, "CSV not found")
	assert.NoFileExists(t, out)

	code, _, _ = runCLI(t, "generate", "only.csv", "name")
	assert.Equal(t, exitUsage, code)

	code, _, stderr = runCLI(t, generateArgs(writeCSV(t, dir), out, "--digest", "crc32")...)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "unsupported digest")
}

func TestValidate_Diagnostics(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"name": "x"}`), 0o644))

	code, stdout, stderr := runCLI(t, "validate", bad)
	assert.Equal(t, exitFail, code)
	assert.Empty(t, stdout)
	assert.True(t, strings.HasPrefix(stderr, "ERROR: Missing required fields: @context, @type, conformsTo"), stderr)

	missing := filepath.Join(dir, "absent.json")
	code, _, stderr = runCLI(t, "validate", missing)
	assert.Equal(t, exitFail, code)
	assert.Equal(t, "ERROR: File not found: "+missing+"\n", stderr)

	code, _, _ = runCLI(t, "validate")
	assert.Equal(t, exitUsage, code)
}

func TestValidate_NoDeep(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "meta.json")
	code, _, stderr := runCLI(t, generateArgs(writeCSV(t, dir), out)...)
	require.Equal(t, exitOK, code, stderr)

	code, stdout, _ := runCLI(t, "validate", out, "--no-deep")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "OK: Required field validation passed\n")
	assert.Contains(t, stdout, "skipped schema validation")

	t.Setenv("CROISSANT_DEEP_VALIDATION", "false")
	code, stdout, _ = runCLI(t, "validate", out)
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "CROISSANT_DEEP_VALIDATION")
}

func TestConfig_Invalid(t *testing.T) {
	t.Setenv("CROISSANT_MAX_DEPTH", "deep")
	code, _, stderr := runCLI(t, "schema")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "CROISSANT_MAX_DEPTH")
}

func TestSchemaCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "schema")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, `"$schema": "https://json-schema.org/draft/2020-12/schema"`)
	assert.Contains(t, stdout, `"datePublished"`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "object", decoded["type"])
	props, ok := decoded["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "recordSet")
}

func TestConfig_DefaultDriverIsGoJSON(t *testing.T) {
	t.Setenv("CROISSANT_JSON_DRIVER", "")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, source.GoJSON, cfg.JSONDriver)

	code, _, _ := runCLI(t, "schema")
	require.Equal(t, exitOK, code)
	assert.Equal(t, source.GoJSON, croissant.JSONDriverName())
}

func TestUnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "frobnicate")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Usage:")
}
