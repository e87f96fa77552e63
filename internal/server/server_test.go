package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nikbrunner/folio/internal/storage"
)

const testData = `{
  "title": "Portfolio",
  "sections": [
    {"name": "Animals", "items": [
      {"type": "image", "title": "Cat", "src": "cat.jpg", "tags": ["pet"]},
      {"type": "video", "title": "Fox", "src": "fox.mp4"}
    ]},
    {"name": "Talks", "items": [
      {"type": "youtube", "title": "Keynote", "src": "https://youtu.be/abc123"}
    ]}
  ]
}`

func writeData(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestServer(t *testing.T, content string, log *zap.Logger) *Server {
	t.Helper()
	s := New(Options{
		Source:      storage.NewFileSource(writeData(t, content)),
		Title:       "Work",
		Suggestions: 3,
		Logger:      log,
	})
	s.Reload(context.Background())
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	assert.Equal(t, "Portfolio", doc.Find("title").Text())
	assert.Equal(t, "3 items loaded.", doc.Find("#status").Text())
	assert.Equal(t, 2, doc.Find(".section").Length())
	assert.Equal(t, 3, doc.Find(".card").Length())
	assert.Equal(t, 1, doc.Find("form.search").Length())
}

func TestIndex_Query(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec := get(t, s, "/?q=PET&view=compact")
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	assert.Equal(t, "1 result for “PET”.", doc.Find("#status").Text())
	assert.Equal(t, 1, doc.Find(".card").Length())
	assert.True(t, doc.Find("body").HasClass("compact"))

	value, _ := doc.Find("#search").Attr("value")
	assert.Equal(t, "PET", value)
}

func TestIndex_EmptyOnBadData(t *testing.T) {
	s := newTestServer(t, `{"sections": 3`, nil)

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "No sections/items found. Edit data.json to add work.", doc.Find("#status").Text())
	assert.Equal(t, "Work", doc.Find("h1").Text())
}

func TestData(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec := get(t, s, "/data.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Title    string `json:"title"`
		Sections []struct {
			Name string `json:"name"`
		} `json:"sections"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Portfolio", body.Title)
	assert.Len(t, body.Sections, 2)
}

func TestData_BeforeLoad(t *testing.T) {
	s := New(Options{})

	rec := get(t, s, "/data.json")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestView(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec := get(t, s, "/api/view?q=talks")
	require.Equal(t, http.StatusOK, rec.Code)

	var vm viewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&vm))

	assert.Equal(t, "results", vm.Status)
	assert.Equal(t, "1 result for “talks”.", vm.StatusMessage)
	require.Len(t, vm.Sections, 1)
	assert.Equal(t, "1 item", vm.Sections[0].CountLabel)

	card := vm.Sections[0].Cards[0]
	assert.Equal(t, "YouTube", card.Badge)
	assert.Equal(t, "still", card.Thumbnail.Kind)
	assert.Equal(t, "https://i.ytimg.com/vi/abc123/hqdefault.jpg", card.Thumbnail.Src)
	assert.True(t, card.Thumbnail.Play)
	assert.Equal(t, []string{}, card.Tags)
}

func TestView_NoResults(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec := get(t, s, "/api/view?q=keynte")
	require.Equal(t, http.StatusOK, rec.Code)

	var vm viewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&vm))

	assert.Equal(t, "no_results", vm.Status)
	assert.Empty(t, vm.Sections)
	assert.Equal(t, []string{"Keynote"}, vm.Suggestions)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testData, nil)

	rec := get(t, s, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["loaded"])
	assert.EqualValues(t, 3, body["items"])
}

func TestReloadSwapsDocument(t *testing.T) {
	path := writeData(t, testData)
	s := New(Options{Source: storage.NewFileSource(path)})
	s.Reload(context.Background())

	before := s.Document()
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"New","sections":[]}`), 0644))
	s.Reload(context.Background())

	assert.Equal(t, "Portfolio", before.Title, "old snapshot stays intact")
	assert.Equal(t, "New", s.Document().Title)
}

func TestReloadKeepsLastGoodDocument(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	path := writeData(t, testData)
	s := New(Options{Source: storage.NewFileSource(path), Logger: zap.New(core)})
	require.NoError(t, s.Reload(context.Background()))
	require.Equal(t, 3, s.Document().ItemCount())

	// a half-written save
	require.NoError(t, os.WriteFile(path, []byte(`{"sections": [`), 0644))
	assert.Error(t, s.Reload(context.Background()))

	assert.Equal(t, "Portfolio", s.Document().Title)
	assert.Equal(t, 3, s.Document().ItemCount())
	assert.Equal(t, 1, logs.FilterMessage("reload failed, keeping last good document").Len())
}

func TestFirstLoadFallsBackToEmpty(t *testing.T) {
	s := New(Options{Source: storage.NewFileSource(filepath.Join(t.TempDir(), "missing.json")), Title: "Work"})

	require.NoError(t, s.Reload(context.Background()))
	require.NotNil(t, s.Document())
	assert.Equal(t, "Work", s.Document().Title)
	assert.Empty(t, s.Document().Sections)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := newTestServer(t, testData, zap.New(core))

	get(t, s, "/healthz")

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "/healthz", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, testData, nil)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/nope").Code)
}
