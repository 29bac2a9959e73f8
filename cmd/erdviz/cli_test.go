package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "datamodel": {
    "models": [
      {"name": "User", "fields": [
        {"name": "id", "kind": "scalar", "type": "Int", "isRequired": true, "isId": true}
      ]}
    ]
  }
}`

func TestFormatsCommand(t *testing.T) {
	require := require.New(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"formats"})
	require.NoError(rootCmd.ExecuteContext(context.Background()))
	for _, name := range []string{"dot", "go", "graphql", "mermaid"} {
		require.Contains(out.String(), name+"\n")
	}
}

func TestGenerateCommand(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	require.NoError(os.WriteFile(schemaPath, []byte(testSchema), 0o644))
	outDir := filepath.Join(dir, "erd")

	rootCmd.SetArgs([]string{
		"generate",
		"--schema", schemaPath,
		"--start", "User",
		"--out", outDir,
		"--format", "mermaid",
	})
	require.NoError(rootCmd.ExecuteContext(context.Background()))

	buf, err := os.ReadFile(filepath.Join(outDir, "user.mmd"))
	require.NoError(err)
	require.Contains(string(buf), "erDiagram")
}

func TestGenerateCommandUnknownStart(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	require.NoError(os.WriteFile(schemaPath, []byte(testSchema), 0o644))

	rootCmd.SetArgs([]string{
		"generate",
		"--schema", schemaPath,
		"--start", "Ghost",
		"--out", filepath.Join(dir, "erd"),
	})
	require.Error(rootCmd.ExecuteContext(context.Background()))
}
