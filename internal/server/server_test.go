package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/io"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/pipeline"
	"github.com/matzehuels/treemap/pkg/tree"
)

func newTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	p, err := observability.NewPrometheus(reg)
	if err != nil {
		t.Fatal(err)
	}
	observability.Install(p)
	t.Cleanup(observability.Reset)

	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})
	return &Server{
		Trees: io.Collection{
			"birds": tree.New("Aves").
				AddChild(tree.New("Passeriformes").
					AddChild(tree.NewLeaf("song sparrow", 21)).
					AddChild(tree.NewLeaf("junco", 17))).
				AddChild(tree.NewLeaf("mallard", 11)),
			"empty": tree.New("nothing").AddChild(tree.NewLeaf("zero", 0)),
		},
		Runner:   pipeline.NewRunner(nil, nil, logger),
		Logger:   logger,
		Gatherer: reg,
	}, reg
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	w := get(t, s.Handler(), "/healthz")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestListTrees(t *testing.T) {
	s, _ := newTestServer(t)
	w := get(t, s.Handler(), "/trees")

	var body struct{ Trees []string }
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Trees) != 2 || body.Trees[0] != "birds" || body.Trees[1] != "empty" {
		t.Errorf("trees = %v", body.Trees)
	}
}

func TestEndpoints(t *testing.T) {
	tests := []struct {
		target      string
		contentType string
		contains    string
	}{
		{"/trees/birds/layout", "application/json", `"rectangles"`},
		{"/trees/birds/rectangles", "text/plain; charset=utf-8", "RECTANGLE "},
		{"/trees/birds/svg?legend=true", "image/svg+xml", "<svg"},
		{"/trees/birds/png?scale=100", "image/png", "PNG"},
		{"/trees/birds/layout?width=6&height=4&color_by=leaf", "application/json", `"color_by": "leaf"`},
	}

	s, _ := newTestServer(t)
	h := s.Handler()
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := get(t, h, tt.target)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body)
			}
			if ct := w.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !strings.Contains(w.Body.String(), tt.contains) {
				t.Errorf("body lacks %q", tt.contains)
			}
		})
	}
}

func TestRectanglesDoNotMutateCollection(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	first := get(t, h, "/trees/birds/rectangles").Body.String()
	second := get(t, h, "/trees/birds/rectangles").Body.String()

	if first != second {
		t.Errorf("responses differ:\n%s\n%s", first, second)
	}
	if root := s.Trees["birds"]; root.HasValue || root.Path != nil {
		t.Error("shared tree was mutated")
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		target string
		status int
		code   errors.Code
	}{
		{"/trees/fish/layout", http.StatusNotFound, errors.ErrCodeNotFound},
		{"/trees/empty/layout", http.StatusUnprocessableEntity, errors.ErrCodeDegenerateInput},
		{"/trees/birds/layout?width=abc", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/trees/birds/layout?width=-1", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/trees/birds/layout?color_by=rainbow", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/trees/birds/svg?legend=maybe", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/trees/birds/png?scale=1e9", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/trees/birds/png?scale=1e5", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/trees/birds/png?scale=NaN", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/trees/birds/png?width=100&scale=200", http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}

	s, _ := newTestServer(t)
	h := s.Handler()
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := get(t, h, tt.target)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body)
			}
			var body errorBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.code {
				t.Errorf("code = %s, want %s", body.Code, tt.code)
			}
			if body.RequestID == "" {
				t.Error("request_id missing")
			}
		})
	}
}

func TestUnknownFormatIsNotRouted(t *testing.T) {
	s, _ := newTestServer(t)
	if w := get(t, s.Handler(), "/trees/birds/gif"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeMalformedTree, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeValidation, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeInvalidFormat, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{http.ErrHandlerTimeout, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	w := get(t, h, "/healthz")
	if id := w.Header().Get(RequestIDHeader); len(id) != 36 {
		t.Errorf("generated id = %q", id)
	}

	const id = "5f0c6d2e-8a59-4f4c-9d3b-2f7d0b1c9a11"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("id = %q, want %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("invalid request id was echoed")
	}
}

func TestMetrics(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	get(t, h, "/trees/birds/svg")
	get(t, h, "/trees/fish/svg")

	w := get(t, h, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`treemap_http_requests_total{method="GET",route="/trees/{name}/{format:svg|png}",status="200"} 1`,
		`treemap_http_requests_total{method="GET",route="/trees/{name}/{format:svg|png}",status="404"} 1`,
		`treemap_layouts_total{outcome="ok"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics lack %s", want)
		}
	}
}
