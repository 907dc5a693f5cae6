package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"op-overloading/internal/diagnostic"
)

const vecSource = `"use operator overloading"
export const sum = (a, b) => a + b;
`

// setup resets global flags, writes an empty options file and returns a
// command wired to in-memory streams.
func setup(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	logger = zap.NewNop()

	dir := t.TempDir()
	configPath = filepath.Join(dir, "opts.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("equality: off\n"), 0o644))

	outDir, toStdout, jobs = "", false, 2
	equality, namespace, debug = "", "", false
	sourcePath, watchOut = "", ""

	t.Cleanup(func() { configPath = "" })

	cmd := &cobra.Command{}
	out := new(bytes.Buffer)
	cmd.SetOut(out)

	return cmd, out
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return root
}

func TestTransformCmd_Out(t *testing.T) {
	cmd, _ := setup(t)

	src := writeTree(t, map[string]string{
		"vec.js":              vecSource,
		"lib/plain.js":        "export const x = 1 + 2;\n",
		"node_modules/dep.js": vecSource,
		".cache/ignored.js":   vecSource,
	})
	dist := t.TempDir()
	outDir = dist

	require.NoError(t, runTransform(cmd, []string{src}))

	code, err := os.ReadFile(filepath.Join(dist, "vec.js"))
	require.NoError(t, err)
	assert.Contains(t, string(code), `Symbol.for("+")`)
	assert.NotContains(t, string(code), "use operator overloading")
	assert.True(t, strings.HasSuffix(string(code), "//# sourceMappingURL=vec.js.map\n"))

	_, err = os.Stat(filepath.Join(dist, "vec.js.map"))
	require.NoError(t, err)

	plain, err := os.ReadFile(filepath.Join(dist, "lib", "plain.js"))
	require.NoError(t, err)
	assert.Equal(t, "export const x = 1 + 2;\n", string(plain))

	_, err = os.Stat(filepath.Join(dist, "node_modules"))
	assert.True(t, os.IsNotExist(err))
}

func TestTransformCmd_Stdout(t *testing.T) {
	cmd, out := setup(t)

	src := writeTree(t, map[string]string{"vec.js": vecSource})
	toStdout = true

	require.NoError(t, runTransform(cmd, []string{filepath.Join(src, "vec.js")}))

	assert.Contains(t, out.String(), "const __lhs = a;")
	assert.Contains(t, out.String(), "//# sourceMappingURL=data:application/json")
}

func TestTransformCmd_Glob(t *testing.T) {
	cmd, out := setup(t)

	src := writeTree(t, map[string]string{
		"a/one.ts": "'use operator overloading'\nconst v: number = x * 2;\n",
		"a/two.js": "const y = x * 2;\n",
	})
	toStdout = true

	require.NoError(t, runTransform(cmd, []string{filepath.Join(src, "a", "*.ts")}))
	assert.Contains(t, out.String(), `Symbol.for("*")`)
}

func TestTransformCmd_NamespaceFlag(t *testing.T) {
	cmd, out := setup(t)
	cmd.Flags().StringVar(&namespace, "namespace", "", "")
	require.NoError(t, cmd.Flags().Set("namespace", "vec"))

	src := writeTree(t, map[string]string{"vec.js": vecSource})
	toStdout = true

	require.NoError(t, runTransform(cmd, []string{filepath.Join(src, "vec.js")}))
	assert.Contains(t, out.String(), `Symbol.for("vec/+")`)
}

func TestTransformCmd_RequiresOneDestination(t *testing.T) {
	cmd, _ := setup(t)

	require.Error(t, runTransform(cmd, []string{"x.js"}))

	outDir, toStdout = t.TempDir(), true
	require.Error(t, runTransform(cmd, []string{"x.js"}))
}

func TestTransformCmd_BadConfig(t *testing.T) {
	cmd, _ := setup(t)
	require.NoError(t, os.WriteFile(configPath, []byte("equality: sometimes\n"), 0o644))

	toStdout = true
	err := runTransform(cmd, []string{"x.js"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid options")
}

func TestCheckCmd(t *testing.T) {
	cmd, out := setup(t)

	src := writeTree(t, map[string]string{
		"vec.js":   vecSource,
		"plain.js": "const x = 1;\n",
	})

	require.NoError(t, runCheck(cmd, []string{src}))

	report := out.String()
	assert.Contains(t, report, "1 rewritten")
	assert.Contains(t, report, "no directive")
	assert.Contains(t, report, "1 of 2 file(s) opt in")
}

func TestCheckCmd_SyntaxError(t *testing.T) {
	cmd, out := setup(t)

	src := writeTree(t, map[string]string{"bad.js": "'use operator overloading';\nconst = ;\n"})

	require.Error(t, runCheck(cmd, []string{src}))
	assert.Contains(t, out.String(), "syntax error")
}

func TestFilterDiagnosticsCmd(t *testing.T) {
	cmd, out := setup(t)

	src := writeTree(t, map[string]string{"vec.ts": vecSource})
	sourcePath = filepath.Join(src, "vec.ts")

	in := `[{"code":2365,"message":"Operator '+' cannot be applied"},{"code":2304,"message":"Cannot find name 'z'"}]`
	cmd.SetIn(strings.NewReader(in))

	require.NoError(t, runFilterDiagnostics(cmd, nil))

	var got []diagnostic.TypeScriptDiagnostic
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 2304, got[0].Code)
}

func TestFilterDiagnosticsCmd_BadInput(t *testing.T) {
	cmd, _ := setup(t)

	src := writeTree(t, map[string]string{"vec.ts": vecSource})
	sourcePath = filepath.Join(src, "vec.ts")
	cmd.SetIn(strings.NewReader("{not json"))

	require.Error(t, runFilterDiagnostics(cmd, nil))
}

func TestExpandPaths(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js":              "",
		"sub/b.ts":          "",
		"node_modules/c.js": "",
	})

	files, err := expandPaths([]string{root, filepath.Join(root, "a.js")})
	require.NoError(t, err)

	rels := make([]string, 0, len(files))
	for _, f := range files {
		rels = append(rels, filepath.ToSlash(f.Rel))
	}

	assert.ElementsMatch(t, []string{"a.js", "sub/b.ts"}, rels)

	_, err = expandPaths([]string{filepath.Join(root, "missing.js")})
	require.Error(t, err)
}

func TestTransformCmd_DestinationCollision(t *testing.T) {
	cmd, _ := setup(t)

	root := writeTree(t, map[string]string{
		"a/util.js": vecSource,
		"b/util.js": vecSource,
	})
	dist := t.TempDir()
	outDir = dist

	err := runTransform(cmd, []string{filepath.Join(root, "a", "util.js"), filepath.Join(root, "b", "util.js")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would both be written to util.js")

	entries, err := os.ReadDir(dist)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTransformCmd_Example(t *testing.T) {
	cmd, out := setup(t)

	example := filepath.Join("..", "..", "examples", "vector")
	configPath = filepath.Join(example, ".op-overloading.yaml")
	toStdout = true

	require.NoError(t, runTransform(cmd, []string{filepath.Join(example, "vec.js")}))

	got := out.String()
	assert.Contains(t, got, `const __sym = Symbol.for("==");`)
	assert.Contains(t, got, `const __sym = Symbol.for("minus");`)
	assert.Contains(t, got, "this.x === o.x")
	assert.NotContains(t, got, `"use operator overloading"`)
}
