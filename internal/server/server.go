// Package server serves the gallery over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nikbrunner/folio/internal/exporter"
	"github.com/nikbrunner/folio/internal/gallery"
	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/storage"
)

// compactView is the value of the view query parameter for the compact layout.
const compactView = "compact"

// Options configure a Server.
type Options struct {
	Addr      string
	Source    storage.Source
	WatchPath string // local data file to watch for changes; empty disables

	Title         string
	Suggestions   int
	MarkdownNotes bool

	Logger *zap.Logger
}

// Server renders the current document for every request. The document is
// swapped atomically on reload, so a request always sees one snapshot.
type Server struct {
	opts   Options
	log    *zap.Logger
	doc    atomic.Pointer[model.Document]
	router chi.Router
}

// New constructs a Server with its middleware stack and routes.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{opts: opts, log: log}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/", s.handleIndex)
	r.Get("/data.json", s.handleData)
	r.Get("/api/view", s.handleView)
	r.Get("/healthz", s.handleHealth)

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Document returns the current document, or nil before the first load.
func (s *Server) Document() *model.Document {
	return s.doc.Load()
}

// Reload loads the source again and swaps the document in. The first load
// falls back to an empty document; later failures keep the last good one.
func (s *Server) Reload(ctx context.Context) error {
	if s.opts.Source == nil {
		s.doc.CompareAndSwap(nil, model.NewDocument(s.opts.Title))
		return nil
	}

	var doc *model.Document
	if s.doc.Load() == nil {
		doc = storage.LoadOrEmpty(ctx, s.opts.Source, s.opts.Title, s.log)
	} else {
		var err error
		doc, err = s.opts.Source.Load(ctx)
		if err != nil {
			s.log.Warn("reload failed, keeping last good document",
				zap.String("source", s.opts.Source.String()),
				zap.Error(err),
			)
			return err
		}
	}

	s.doc.Store(doc)
	s.log.Info("document loaded",
		zap.String("source", s.opts.Source.String()),
		zap.Int("sections", len(doc.Sections)),
		zap.Int("items", doc.ItemCount()),
	)
	return nil
}

// Run loads the document, watches it for changes and serves until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	_ = s.Reload(ctx)

	if s.opts.WatchPath != "" {
		err := storage.Watch(ctx, s.opts.WatchPath, s.log, func() {
			_ = s.Reload(ctx)
		})
		if err != nil {
			s.log.Warn("watch disabled", zap.String("path", s.opts.WatchPath), zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.opts.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// project computes the view for the request's query parameters.
func (s *Server) project(r *http.Request) gallery.ViewModel {
	q := r.URL.Query()
	return gallery.Project(gallery.AppState{
		Document: s.doc.Load(),
		Query:    q.Get("q"),
		Compact:  q.Get("view") == compactView,
	}, gallery.Options{
		DefaultTitle: s.opts.Title,
		Suggestions:  s.opts.Suggestions,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := exporter.ExportHTML(s.project(r), exporter.Options{
		MarkdownNotes: s.opts.MarkdownNotes,
		BasePath:      "/",
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(page))
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	doc := s.doc.Load()
	if doc == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "loading"})
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newViewResponse(s.project(r)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok", "loaded": false}
	if doc := s.doc.Load(); doc != nil {
		resp["loaded"] = true
		resp["items"] = doc.ItemCount()
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
