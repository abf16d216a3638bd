package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaobogaga/minic/compiler"
)

func writeSource(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.mc", "int main() { return 0; }")
	bad := writeSource(t, dir, "bad.mc", "int main() {\n  return y;\n}")

	out, _, err := run(t, "check", good)
	require.NoError(t, err)
	assert.Equal(t, good+": ok\n", out)

	out, _, err = run(t, "check", good, bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errCheckFailed))
	assert.Contains(t, err.Error(), "1 of 2 files")
	assert.Contains(t, out, good+": ok\n")
	assert.Contains(t, out, bad+": semantic error at line 2: undefined variable: y\n")

	out, _, err = run(t, "check", filepath.Join(dir, "missing.mc"))
	require.Error(t, err)
	assert.Contains(t, out, "missing.mc")

	_, _, err = run(t, "check")
	assert.Error(t, err)
}

func TestCheck_Config(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "expr.mc", "int main() { y = 1; return 0; }")
	cfg := writeSource(t, dir, "minic.yaml", "semantic:\n  check_expression_statements: false\n")

	_, _, err := run(t, "check", src)
	assert.Error(t, err)
	out, _, err := run(t, "--config", cfg, "check", src)
	require.NoError(t, err)
	assert.Equal(t, src+": ok\n", out)

	badCfg := writeSource(t, dir, "bad.toml", "[log]\nlevel = \"loud\"\n")
	_, _, err = run(t, "--config", badCfg, "check", src)
	assert.Error(t, err)
}

func TestCheck_Verbose(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "a.mc", "int a;")
	_, errOut, err := run(t, "-v", "check", src)
	require.NoError(t, err)
	assert.Contains(t, errOut, "compiler: start parser")
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "a.mc", "int a; a = 1 + 2;")

	out, _, err := run(t, "parse", src)
	require.NoError(t, err)
	var nodes []compiler.DumpNode
	require.NoError(t, json.Unmarshal([]byte(out), &nodes))
	require.Len(t, nodes, 2)
	assert.Equal(t, "VarDecl", nodes[0].Kind)
	assert.Equal(t, "ExprStmt", nodes[1].Kind)

	out, _, err = run(t, "parse", "--format", "yaml", src)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "- kind: VarDecl\n"))

	_, _, err = run(t, "parse", "--format", "xml", src)
	assert.Error(t, err)

	bad := writeSource(t, dir, "bad.mc", "5 = 10;")
	_, _, err = run(t, "parse", bad)
	assert.True(t, errors.Is(err, compiler.ErrSyntax))
}

func TestTokens(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "a.mc", "int a;\nreturn a;")
	out, _, err := run(t, "tokens", src)
	require.NoError(t, err)
	assert.Equal(t, "1\tint\tint\n1\tIDENT\ta\n1\t;\t;\n2\treturn\treturn\n2\tIDENT\ta\n2\t;\t;\n2\tEOF\t\n", out)
}

func TestSamples(t *testing.T) {
	out, _, err := run(t, "samples")
	require.NoError(t, err)
	for _, s := range samples {
		assert.Contains(t, out, s.title)
	}
	assert.Equal(t, 8, strings.Count(out, "Lexer: PASSED"))
	assert.Equal(t, 7, strings.Count(out, "Parser: PASSED"))
	assert.Equal(t, 2, strings.Count(out, "Semantic: PASSED"))
	assert.Equal(t, 6, strings.Count(out, "ERROR: "))
	assert.Contains(t, out, "ERROR: syntax error near = at line 3: invalid assignment target")
	assert.Contains(t, out, "2 of 8 samples passed")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "minic v"+Version)
}
