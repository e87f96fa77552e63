package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testDocument = `{
  "title": "Studio",
  "sections": [
    {
      "name": "Stills",
      "description": "Harbor photography",
      "items": [
        {"type": "image", "title": "Harbor", "src": "img/harbor.jpg", "tags": ["sea", "boats"]},
        {"type": "image", "title": "Lighthouse", "src": "img/lighthouse.jpg", "tags": ["sea"]}
      ]
    },
    {
      "name": "Talks",
      "items": [
        {"type": "youtube", "title": "Keynote", "src": "https://youtu.be/dQw4w9WgXcQ", "note": "Conference opener", "tags": []}
      ]
    }
  ]
}`

// setupTestEnv points the commands at a temp config and data file and
// resets all flag variables afterwards.
func setupTestEnv(t *testing.T) (dir, data string) {
	t.Helper()

	dir = t.TempDir()
	data = filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(data, []byte(testDocument), 0644))

	t.Cleanup(resetFlags)
	return dir, data
}

func resetFlags() {
	dataPath, configPath, logFile = "", "", ""
	verbose = false
	findList, findJSON, findOpen = false, false, false
	renderQuery, renderCompact, renderOutput = "", false, ""
	importOutput, importForce = "", false
	checkJSON, checkConcurrency = false, 0
	serveAddr, serveLogJSON = "", false
	rootCmd.SetArgs(nil)
}

// execute runs folio with args against the temp environment in dir.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.toml")}, args...))

	err := rootCmd.Execute()
	return buf.String(), err
}
