package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NikitaCOEUR/scriptrun/internal/completion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlyCompose(id string) bool {
	return id == "docker-compose"
}

func TestValidate_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "scripts"), 0755))
	configPath := filepath.Join(tmpDir, DefaultConfigName)
	writeFile(t, configPath, `{
  "scriptDirs": ["scripts"],
  "completion": {
    "compose": {"$$docker-compose": {"file": "docker-compose.yml"}}
  }
}`)

	result, err := Validate(configPath, onlyCompose)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Len(t, result.Errors, 0)
}

func TestValidate_FileNotFound(t *testing.T) {
	_, err := Validate("/nonexistent/path/.scriptrun.json", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestValidate_InvalidSyntax(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), DefaultConfigName)
	writeFile(t, configPath, `{"scriptDirs": ["a"`)

	result, err := Validate(configPath, nil)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "syntax", result.Errors[0].Field)
}

func TestValidate_SchemaErrorsStopEarly(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), DefaultConfigName)
	writeFile(t, configPath, `{"scriptDirs": [1], "completion": {"x": {"$$nope": {}}}}`)

	result, err := Validate(configPath, onlyCompose)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	for _, verr := range result.Errors {
		assert.NotContains(t, verr.Message, "Unknown completion plugin")
	}
}

func TestValidate_MissingScriptDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, DefaultConfigName)
	writeFile(t, configPath, `{"scriptDirs": ["missing"]}`)

	result, err := Validate(configPath, nil)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "scriptDirs/0", result.Errors[0].Field)
	assert.Contains(t, result.Errors[0].Message, "not accessible")
}

func TestCheck(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "file.txt"), "x")
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "scripts"), 0755))

	tree, err := completion.DecodeJSON([]byte(`{
  "deploy": {
    "web": {"$$docker-compose": {}, "extra": {}},
    "db": {"$$unknown": {}}
  },
  "build": {}
}`))
	require.NoError(t, err)

	cfg := &Config{
		ScriptDirs: []string{"scripts", "file.txt"},
		Dir:        tmpDir,
		Completion: tree,
	}

	errs := Check(cfg, onlyCompose)
	assert.Equal(t, []ValidationError{
		{Field: "scriptDirs/1", Message: "Not a directory: " + filepath.Join(tmpDir, "file.txt")},
		{Field: "completion/deploy/web", Message: "Keys ignored next to plugin 'docker-compose': extra"},
		{Field: "completion/deploy/db", Message: "Unknown completion plugin 'unknown'"},
	}, errs)
}

func TestCheck_NilCheckerAcceptsEveryPlugin(t *testing.T) {
	tree, err := completion.DecodeJSON([]byte(`{"x": {"$$anything": {}}}`))
	require.NoError(t, err)

	errs := Check(&Config{Completion: tree}, nil)
	assert.Empty(t, errs)
}

func TestCheck_NilTree(t *testing.T) {
	assert.Empty(t, Check(&Config{}, onlyCompose))
}

func TestCheck_Patterns(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tools", "a", "bin"), 0755))

	cfg := &Config{
		ScriptDirs: []string{"tools/*/bin", "missing/*", "bad[pattern"},
		Dir:        root,
	}

	assert.Equal(t, []ValidationError{
		{Field: "scriptDirs/1", Message: "No directory matches: missing/*"},
		{Field: "scriptDirs/2", Message: "Invalid directory pattern: bad[pattern"},
	}, Check(cfg, onlyCompose))
}
