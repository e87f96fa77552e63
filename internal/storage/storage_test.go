package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/folio/internal/logger"
	"github.com/nikbrunner/folio/internal/model"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

const sampleJSON = `{
  "title": "Portfolio",
  "sections": [
    {"name": "Logos", "items": [{"type": "image", "title": "Cat", "src": "cat.png", "tags": ["pet"]}]}
  ]
}`

const sampleYAML = `title: Portfolio
sections:
  - name: Logos
    items:
      - type: image
        title: Cat
        src: cat.png
        tags: [pet]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NilError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileSource_LoadJSON(t *testing.T) {
	path := writeFile(t, "data.json", sampleJSON)

	doc, err := NewFileSource(path).Load(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, doc.Title, "Portfolio")
	assert.Equal(t, doc.Sections[0].Items[0].Title, "Cat")
}

func TestFileSource_LoadYAML(t *testing.T) {
	path := writeFile(t, "data.yaml", sampleYAML)

	doc, err := NewFileSource(path).Load(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, doc.Title, "Portfolio")
	assert.DeepEqual(t, doc.Sections[0].Items[0].Tags, []string{"pet"})
}

func TestFileSource_Missing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Load(context.Background())
	assert.Assert(t, errors.Is(err, os.ErrNotExist))
}

func TestDecode_NilSlicesFilled(t *testing.T) {
	doc, err := Decode([]byte("title: only\nsections:\n  - name: A\n"), FormatYAML)
	assert.NilError(t, err)
	assert.Assert(t, doc.Sections[0].Items != nil)

	doc, err = Decode([]byte("title: only\n"), FormatYAML)
	assert.NilError(t, err)
	assert.Assert(t, doc.Sections != nil)
}

func TestDecode_LenientListsInBothFormats(t *testing.T) {
	jsonDoc, err := Decode([]byte(`{"sections":[{"name":"A","items":[{"type":"image","title":"Cat","tags":"oops"}]}]}`), FormatJSON)
	assert.NilError(t, err)
	yamlDoc, err := Decode([]byte("sections:\n  - name: A\n    items:\n      - type: image\n        title: Cat\n        tags: oops\n"), FormatYAML)
	assert.NilError(t, err)

	assert.Equal(t, jsonDoc.ItemCount(), 1)
	assert.Equal(t, yamlDoc.ItemCount(), 1)
	assert.DeepEqual(t, yamlDoc, jsonDoc)

	doc, err := Decode([]byte("title: Map\nsections:\n  name: A\n"), FormatYAML)
	assert.NilError(t, err)
	assert.Equal(t, doc.Title, "Map")
	assert.Equal(t, len(doc.Sections), 0)
}

func TestHTTPSource_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Check(t, is.Equal(r.Header.Get("Cache-Control"), "no-store"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	doc, err := NewHTTPSource(srv.URL+"/data.json", nil).Load(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, doc.Title, "Portfolio")
}

func TestHTTPSource_YAMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(sampleYAML))
	}))
	defer srv.Close()

	doc, err := NewHTTPSource(srv.URL+"/data", nil).Load(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, doc.Sections[0].Name, "Logos")
}

func TestHTTPSource_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL+"/data.json", nil).Load(context.Background())
	assert.Assert(t, errors.Is(err, ErrBadStatus))
}

func TestOpen(t *testing.T) {
	_, isHTTP := Open("https://example.com/data.json", nil).(*HTTPSource)
	assert.Assert(t, isHTTP)

	_, isHTTP = Open("HTTP://example.com/data.json", nil).(*HTTPSource)
	assert.Assert(t, isHTTP)

	fs, isFile := Open("./data.json", nil).(*FileSource)
	assert.Assert(t, isFile)
	assert.Equal(t, fs.Path(), "./data.json")
}

func TestLoadOrEmpty_Fallback(t *testing.T) {
	tests := []struct {
		name string
		src  Source
	}{
		{"missing file", NewFileSource(filepath.Join(t.TempDir(), "missing.json"))},
		{"malformed json", NewFileSource(writeFile(t, "bad.json", `{"sections": [`))},
		{"wrong field type", NewFileSource(writeFile(t, "typed.json", `{"sections": [{"name": 3}]}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := LoadOrEmpty(context.Background(), tt.src, "Work", logger.Nop())
			assert.Equal(t, doc.Title, "Work")
			assert.Check(t, is.Len(doc.Sections, 0))
		})
	}
}

func TestLoadOrEmpty_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL + "/data.json"
	srv.Close()

	doc := LoadOrEmpty(context.Background(), NewHTTPSource(url, nil), "Work", logger.Nop())
	assert.Check(t, is.Len(doc.Sections, 0))
}

func TestSave_RoundTrip(t *testing.T) {
	doc := &model.Document{
		Title: "Saved",
		Sections: []model.Section{
			{Name: "A", Items: []model.Item{{Type: "youtube", Title: "Talk", Src: "https://youtu.be/x", Tags: []string{}}}},
		},
	}

	for _, name := range []string{"out/data.json", "out/data.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			assert.NilError(t, Save(path, doc))

			loaded, err := NewFileSource(path).Load(context.Background())
			assert.NilError(t, err)
			assert.Equal(t, loaded.Title, "Saved")
			assert.Equal(t, loaded.Sections[0].Items[0].Src, "https://youtu.be/x")
		})
	}
}

func TestWatch_NotifiesOnWrite(t *testing.T) {
	path := writeFile(t, "data.json", sampleJSON)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	err := Watch(ctx, path, logger.Nop(), func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	assert.NilError(t, err)

	assert.NilError(t, os.WriteFile(path, []byte(`{"sections": []}`), 0644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected change notification")
	}
}
