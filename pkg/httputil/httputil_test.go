package httputil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/canvasbench/pkg/errors"
	"github.com/matzehuels/canvasbench/pkg/observability"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   errors.Code
	}{
		{"bad input", errors.New(errors.ErrCodeInvalidInput, "count must be positive"), 400, errors.ErrCodeInvalidInput},
		{"unknown backend", errors.New(errors.ErrCodeInvalidBackend, "no such backend"), 400, errors.ErrCodeInvalidBackend},
		{"not found", errors.New(errors.ErrCodeNotFound, "run not found"), 404, errors.ErrCodeNotFound},
		{"unsupported", errors.New(errors.ErrCodeUnsupported, "too many items"), 422, errors.ErrCodeUnsupported},
		{"plain", context.DeadlineExceeded, 500, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var body ErrorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.code || body.Error == "" {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"n": 3})
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := rec.Body.String(); got != "{\"n\":3}\n" {
		t.Errorf("body = %q", got)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"svg": "image/svg+xml",
		"png": "image/png",
		"pdf": "application/pdf",
		"bin": "application/octet-stream",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/render?count=250&zoom=1.5&random=on&backends=svg,,pdf&kind=text", nil)
	q := NewQuery(r)

	if got := q.Int("count", 1000); got != 250 {
		t.Errorf("Int = %d", got)
	}
	if got := q.Float("zoom", 1); got != 1.5 {
		t.Errorf("Float = %v", got)
	}
	if !q.Bool("random", false) {
		t.Error("Bool(on) should be true")
	}
	if got := q.List("backends"); len(got) != 2 || got[0] != "svg" || got[1] != "pdf" {
		t.Errorf("List = %v", got)
	}
	if got := q.String("kind", "rect"); got != "text" {
		t.Errorf("String = %q", got)
	}
	if got := q.Int("frames", 60); got != 60 {
		t.Errorf("missing Int = %d, want default", got)
	}
	if err := q.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestQueryKeepsFirstError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?count=many&zoom=big", nil)
	q := NewQuery(r)

	if got := q.Int("count", 7); got != 7 {
		t.Errorf("bad Int should return default, got %d", got)
	}
	_ = q.Float("zoom", 1)
	err := q.Err()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("Err() = %v", err)
	}
	if msg := errors.UserMessage(err); msg != `invalid count "many"` {
		t.Errorf("message = %q", msg)
	}
}

type recordingHTTPHooks struct {
	mu       sync.Mutex
	requests []string
	statuses []int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, method+" "+path)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestObserve(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	h := Observe(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/", "/missing"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if len(hooks.requests) != 2 || hooks.requests[1] != "GET /missing" {
		t.Errorf("requests = %v", hooks.requests)
	}
	if len(hooks.statuses) != 2 || hooks.statuses[0] != 200 || hooks.statuses[1] != 404 {
		t.Errorf("statuses = %v", hooks.statuses)
	}
}
