package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaobogaga/minic/compiler"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, compiler.DefaultMaxDepth, cfg.Parser.MaxDepth)
	assert.True(t, cfg.Semantic.CheckExpressionStatements)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "minic.toml", `
[parser]
max_depth = 64

[semantic]
check_expression_statements = false

[log]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Parser.MaxDepth)
	assert.False(t, cfg.Semantic.CheckExpressionStatements)
	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)
}

func TestLoad_YAML(t *testing.T) {
	for _, name := range []string{"minic.yaml", "minic.YML"} {
		path := writeFile(t, name, "parser:\n  max_depth: 32\nlog:\n  level: warn\n")
		cfg, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, 32, cfg.Parser.MaxDepth)
		assert.True(t, cfg.Semantic.CheckExpressionStatements, "missing keys keep defaults")
		assert.Equal(t, "warn", cfg.Log.Level)
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")

	_, err = Load(writeFile(t, "bad.toml", "[parser\nmax_depth = 1"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "parser: [1, 2"))
	assert.Error(t, err)
}

func TestLoadFromString(t *testing.T) {
	testData := []struct {
		content   string
		format    Format
		expectErr bool
	}{
		{content: "", format: FormatTOML},
		{content: "", format: FormatYAML},
		{content: "[parser]\nmax_depth = 10", format: FormatAuto},
		{content: "[parser]\nmax_depth = -1", format: FormatTOML, expectErr: true},
		{content: "[parser]\ndepth = 10", format: FormatTOML, expectErr: true},
		{content: "[log]\nlevel = \"loud\"", format: FormatTOML, expectErr: true},
		{content: "semantic:\n  check_expression_statements: false", format: FormatYAML},
		{content: "semantic:\n  check_expressions: false", format: FormatYAML, expectErr: true},
		{content: "parser:\n  max_depth: -3", format: FormatYAML, expectErr: true},
	}
	for _, data := range testData {
		cfg, err := LoadFromString(data.content, data.format)
		if data.expectErr {
			assert.Error(t, err, data.content)
			continue
		}
		require.NoError(t, err, data.content)
		assert.NotNil(t, cfg)
	}
}

func TestCompilerOptions(t *testing.T) {
	logger := log.New(os.Stderr)
	cfg := Default()
	opts := cfg.CompilerOptions(logger)
	assert.Equal(t, compiler.DefaultMaxDepth, opts.MaxDepth)
	assert.False(t, opts.SkipExprStmts)
	assert.Same(t, logger, opts.Logger)

	cfg.Semantic.CheckExpressionStatements = false
	cfg.Parser.MaxDepth = 0
	opts = cfg.CompilerOptions(nil)
	assert.True(t, opts.SkipExprStmts)
	assert.Equal(t, 0, opts.MaxDepth)

	_, err := compiler.Compile("int main() { y = 1; return 0; }", opts)
	assert.NoError(t, err)
}
