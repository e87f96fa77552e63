package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkDocument = `{
  "sections": [
    {
      "name": "Stills",
      "items": [
        {"type": "image", "title": "Present", "src": "img/present.jpg", "tags": []},
        {"type": "image", "title": "Missing", "src": "img/missing.jpg", "tags": []},
        {"type": "youtube", "title": "Broken", "src": "https://example.com/not-youtube", "tags": []},
        {"type": "link", "title": "Skipped", "src": "https://example.com", "tags": []}
      ]
    }
  ]
}`

func TestCheckCmd_LocalDocument(t *testing.T) {
	dir, _ := setupTestEnv(t)
	data := filepath.Join(dir, "check.json")
	require.NoError(t, os.WriteFile(data, []byte(checkDocument), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "present.jpg"), []byte("jpg"), 0644))

	out, err := execute(t, dir, "--data", data, "check")

	require.ErrorIs(t, err, errUnhealthy)
	assert.Contains(t, out, "[dead] Stills / Missing - File not found")
	assert.Contains(t, out, "[invalid] Stills / Broken")
	assert.NotContains(t, out, "Present -")
	assert.NotContains(t, out, "Skipped")
	assert.Contains(t, out, "3 checked: 1 ok, 1 dead, 0 unreachable, 1 invalid")
}

func TestCheckCmd_RemoteDocumentJSON(t *testing.T) {
	dir, _ := setupTestEnv(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gallery/data.json":
			fmt.Fprint(w, `{"sections":[{"name":"Stills","items":[{"type":"image","title":"Harbor","src":"img/harbor.jpg","tags":[]}]}]}`)
		case "/gallery/img/harbor.jpg":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	out, err := execute(t, dir, "--data", ts.URL+"/gallery/data.json", "check", "--json")
	require.NoError(t, err)

	var results []checkResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Harbor", results[0].Title)
	assert.Equal(t, "ok", results[0].Status)
	assert.Equal(t, http.StatusOK, results[0].StatusCode)
}

func TestCheckCmd_EmptyDocument(t *testing.T) {
	dir, _ := setupTestEnv(t)
	data := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(data, []byte(`{"sections":[]}`), 0644))

	out, err := execute(t, dir, "--data", data, "check")

	require.NoError(t, err)
	assert.Contains(t, out, "No sources to check.")
}
