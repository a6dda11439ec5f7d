package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/benjaminschreck/go-docxgen/pkg/docxgen"
	"github.com/benjaminschreck/go-docxgen/pkg/docxgen/markup"
)

// contentTypeDocx is the media type of a rendered package
const contentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// server exposes the render pipeline over HTTP
type server struct {
	router   chi.Router
	engine   *docxgen.Engine
	log      zerolog.Logger
	maxBytes int64
}

func newServer(engine *docxgen.Engine, log zerolog.Logger, maxBytes int64) *server {
	s := &server{engine: engine, log: log, maxBytes: maxBytes}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))

	r.Get("/health", s.handleHealth)
	r.Post("/render", s.handleRender)

	s.router = r
	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleRender converts the request body and answers with the DOCX package.
// The format query parameter selects the input format, title sets the document title.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	src, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.maxBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = markup.FormatMarkdown
	}
	tree, err := markup.Convert(format, src)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	engine := s.engine
	if title := r.URL.Query().Get("title"); title != "" {
		config := engine.Config()
		config.Title = title
		if engine, err = docxgen.NewWithConfig(config, docxgen.WithLogger(s.log)); err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	var buf bytes.Buffer
	if err := engine.RenderTo(r.Context(), tree, &buf); err != nil {
		s.log.Warn().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("render failed")
		jsonError(w, err.Error(), renderStatus(err))
		return
	}

	w.Header().Set("Content-Type", contentTypeDocx)
	w.Header().Set("Content-Disposition", `attachment; filename="document.docx"`)
	w.Write(buf.Bytes())
}

// renderStatus maps a render failure to an HTTP status
func renderStatus(err error) int {
	switch docxgen.KindOf(err) {
	case docxgen.UnsupportedElementKind, docxgen.InvalidStructure, docxgen.SerializationError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Str("request_id", middleware.GetReqID(r.Context())).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
