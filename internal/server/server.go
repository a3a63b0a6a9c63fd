// Package server exposes the treemap pipeline over HTTP.
//
// Routes:
//
//	GET /healthz                       build info
//	GET /trees                         names of the loaded trees
//	GET /trees/{name}/layout           layout document (JSON)
//	GET /trees/{name}/rectangles       RECTANGLE lines (text)
//	GET /trees/{name}/{format}         rendered svg or png
//	GET /metrics                       Prometheus metrics
//
// Layout and render endpoints accept the query parameters width, height,
// color_by, scale, legend and min_label_side.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/treemap/pkg/buildinfo"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/io"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// RequestIDHeader carries the request ID in requests and responses.
const RequestIDHeader = "X-Request-ID"

// Server serves the trees of one collection. The collection is only read;
// every request lays out its own copy of a tree.
type Server struct {
	Trees    io.Collection
	Runner   *pipeline.Runner
	Defaults pipeline.Options
	Logger   *log.Logger

	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/trees", s.listTrees)
	r.Route("/trees/{name}", func(r chi.Router) {
		r.Get("/layout", s.layout)
		r.Get("/rectangles", s.rectangles)
		r.Get("/{format:svg|png}", s.render)
	})
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) listTrees(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"trees": s.Trees.Names()})
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	res, ok := s.execute(w, r, pipeline.FormatJSON)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(res.Artifacts[pipeline.FormatJSON])
}

func (s *Server) rectangles(w http.ResponseWriter, r *http.Request) {
	res, ok := s.execute(w, r, pipeline.FormatText)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(res.Artifacts[pipeline.FormatText])
}

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	res, ok := s.execute(w, r, format)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(res.Artifacts[format])
}

// execute runs the pipeline for the tree named in the route and writes an
// error response on failure.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, format string) (*pipeline.Result, bool) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidateTreeName(name); err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	t, err := s.Trees.Get(name)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	opts.Formats = []string{format}

	res, err := s.Runner.Execute(r.Context(), name, t, opts)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return res, true
}

// options overlays the query parameters on the server defaults.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.Defaults
	opts.Formats = nil
	q := r.URL.Query()

	floats := []struct {
		param string
		dst   *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"scale", &opts.Scale},
		{"min_label_side", &opts.MinLabelSide},
	}
	for _, f := range floats {
		v := q.Get(f.param)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s: not a number: %q", f.param, v)
		}
		*f.dst = n
	}
	if v := q.Get("color_by"); v != "" {
		opts.ColorBy = v
	}
	if v := q.Get("legend"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "legend: not a boolean: %q", v)
		}
		opts.Legend = b
	}
	return opts, nil
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeValidation, errors.ErrCodeMalformedTree, errors.ErrCodeDegenerateInput:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger().Error("request failed", "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{
		Code:      code,
		Message:   msg,
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requestID propagates or assigns the request ID.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// instrument reports every request to the HTTP hooks and the debug log. The
// route is the matched pattern, so tree names do not explode label
// cardinality.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.HTTP().OnRequest(r.Context(), r.Method, route, status, d)
		s.logger().Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", d,
			"request_id", w.Header().Get(RequestIDHeader))
	})
}

func (s *Server) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}
