package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/folio/internal/model"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrBadStatus         = errors.New("unexpected response status")
)

// maxDocumentSize bounds how much of a remote document is read.
const maxDocumentSize = 16 << 20

// Source loads the gallery document.
type Source interface {
	Load(ctx context.Context) (*model.Document, error)
	String() string
}

// Format identifies a document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks the encoding from a file extension.
// Unknown extensions are treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses data as a document in the given format.
func Decode(data []byte, format Format) (*model.Document, error) {
	var doc model.Document

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, ErrUnsupportedFormat
	}

	// Ensure slices are not nil
	if doc.Sections == nil {
		doc.Sections = []model.Section{}
	}
	for i := range doc.Sections {
		if doc.Sections[i].Items == nil {
			doc.Sections[i].Items = []model.Item{}
		}
	}

	return &doc, nil
}

// FileSource reads the document from a local file.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the document file path.
func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) String() string {
	return s.path
}

// Load reads and decodes the document file.
func (s *FileSource) Load(_ context.Context) (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return Decode(data, FormatForPath(s.path))
}

// HTTPSource fetches the document over HTTP, bypassing caches.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTPSource. A nil client gets a 10 second timeout.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSource{url: url, client: client}
}

func (s *HTTPSource) String() string {
	return s.url
}

// Load fetches and decodes the document.
func (s *HTTPSource) Load(ctx context.Context) (*model.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: %w: %d", s.url, ErrBadStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.url, err)
	}

	format := FormatForPath(req.URL.Path)
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "yaml") {
		format = FormatYAML
	}
	return Decode(data, format)
}

// Open picks a Source for location: http(s) URLs are fetched, anything else is a file.
func Open(location string, client *http.Client) Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPSource(location, client)
	}
	return NewFileSource(location)
}

// LoadOrEmpty loads the document from src. Any failure is logged and replaced
// by an empty document titled title, so callers always get something to render.
func LoadOrEmpty(ctx context.Context, src Source, title string, log *zap.Logger) *model.Document {
	doc, err := src.Load(ctx)
	if err != nil {
		log.Warn("document unavailable, showing empty gallery",
			zap.String("source", src.String()),
			zap.Error(err),
		)
		return model.NewDocument(title)
	}

	log.Debug("document loaded",
		zap.String("source", src.String()),
		zap.Int("sections", len(doc.Sections)),
		zap.Int("items", doc.ItemCount()),
	)
	return doc
}

// Save writes the document as indented JSON (or YAML for .yaml/.yml paths).
// Creates the directory if it doesn't exist.
func Save(path string, doc *model.Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	switch FormatForPath(path) {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
		data = buf.Bytes()
	default:
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
