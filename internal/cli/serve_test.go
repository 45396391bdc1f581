package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dirgraph/pkg/cache"
	"github.com/matzehuels/dirgraph/pkg/errors"
	"github.com/matzehuels/dirgraph/pkg/pipeline"
)

func testServer(t *testing.T, fake *fakeRenderer) *server {
	t.Helper()
	defaults := newGraphFlags().opts
	defaults.BasePath = testBase(t)
	if err := defaults.SetDefaults(); err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(logger)
	runner.Renderer = fake
	return &server{runner: runner, logger: logger, defaults: defaults}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServeHealthAndVersion(t *testing.T) {
	h := testServer(t, &fakeRenderer{}).routes()

	rec := get(t, h, "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("/healthz = %d %q, want 200 ok", rec.Code, rec.Body.String())
	}

	rec = get(t, h, "/version")
	if rec.Code != http.StatusOK {
		t.Fatalf("/version status = %d", rec.Code)
	}
	var info map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("/version body is not JSON: %v", err)
	}
	if _, ok := info["version"]; !ok {
		t.Errorf("/version body = %s, missing version", rec.Body.String())
	}
}

func TestServeGraph(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantType    string
		wantBody    string
		wantDOTPart string
	}{
		{"svg", "/graph/R.svg", http.StatusOK, "image/svg+xml", "<svg/>", "rankdir=TB"},
		{"png", "/graph/R.png", http.StatusOK, "image/png", "\x89PNG", ""},
		{"no extension", "/graph/R", http.StatusOK, "image/svg+xml", "<svg/>", ""},
		{"orientation", "/graph/R.svg?orientation=lr", http.StatusOK, "image/svg+xml", "<svg/>", "rankdir=LR"},
		{"data", "/graph/R.svg?data=true", http.StatusOK, "image/svg+xml", "<svg/>", "1 File"},
		{"ranksep", "/graph/R.svg?ranksep=1.5", http.StatusOK, "image/svg+xml", "<svg/>", "ranksep=1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRenderer{}
			rec := get(t, testServer(t, fake).routes(), tt.target)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantType)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
			if tt.wantDOTPart != "" && !strings.Contains(string(fake.dot), tt.wantDOTPart) {
				t.Errorf("DOT missing %q:\n%s", tt.wantDOTPart, fake.dot)
			}
		})
	}
}

func TestServeGraphDottedDirectory(t *testing.T) {
	fake := &fakeRenderer{}
	srv := testServer(t, fake)
	if err := os.Mkdir(filepath.Join(srv.defaults.BasePath, "my.project"), 0o755); err != nil {
		t.Fatal(err)
	}
	h := srv.routes()

	for _, target := range []string{"/graph/my.project", "/graph/my.project.svg"} {
		rec := get(t, h, target)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d; body %s", target, rec.Code, rec.Body.String())
		}
		if got := rec.Header().Get("Content-Type"); got != "image/svg+xml" {
			t.Errorf("%s Content-Type = %q", target, got)
		}
		if !strings.Contains(string(fake.dot), "my.project") {
			t.Errorf("%s DOT does not name my.project:\n%s", target, fake.dot)
		}
	}
}

func TestSplitGraphName(t *testing.T) {
	tests := []struct {
		name, wantDir, wantFormat string
	}{
		{"R.svg", "R", "svg"},
		{"R.PNG", "R", "png"},
		{"R.json", "R", "json"},
		{"R", "R", ""},
		{"my.project", "my.project", ""},
		{"my.project.png", "my.project", "png"},
	}
	for _, tt := range tests {
		dir, format := splitGraphName(tt.name)
		if dir != tt.wantDir || format != tt.wantFormat {
			t.Errorf("splitGraphName(%q) = %q, %q; want %q, %q", tt.name, dir, format, tt.wantDir, tt.wantFormat)
		}
	}
}

func TestServeGraphJSON(t *testing.T) {
	fake := &fakeRenderer{}
	rec := get(t, testServer(t, fake).routes(), "/graph/R.json?files=true&hidden=true")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	var g struct {
		Nodes []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"nodes"`
		Edges []any `json:"edges"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &g); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}

	// R, R/S, R/.git and the file groups of R, R/S and R/.git.
	if len(g.Nodes) != 6 {
		t.Errorf("nodes = %d, want 6: %+v", len(g.Nodes), g.Nodes)
	}
	if len(g.Edges) != 5 {
		t.Errorf("edges = %d, want 5", len(g.Edges))
	}
	if fake.dot != nil {
		t.Error("JSON export should not render")
	}
}

func TestServeGraphErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		renderErr  error
		wantStatus int
		wantCode   errors.Code
	}{
		{"missing directory", "/graph/nope.svg", nil, http.StatusNotFound, errors.ErrCodeInvalidDirectory},
		{"bad orientation", "/graph/R.svg?orientation=XY", nil, http.StatusBadRequest, errors.ErrCodeInvalidOrientation},
		{"unknown extension is part of the name", "/graph/R.gif", nil, http.StatusNotFound, errors.ErrCodeInvalidDirectory},
		{"bad depth", "/graph/R.svg?depth=two", nil, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"depth below unlimited", "/graph/R.svg?depth=-5", nil, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad bool", "/graph/R.svg?data=maybe", nil, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad ranksep", "/graph/R.svg?ranksep=wide", nil, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"render failure", "/graph/R.svg", errors.New(errors.ErrCodeRender, "boom"), http.StatusInternalServerError, errors.ErrCodeRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, testServer(t, &fakeRenderer{err: tt.renderErr}).routes(), tt.target)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not JSON: %v (%s)", err, rec.Body.String())
			}
			if body.Code != string(tt.wantCode) {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if body.Message == "" {
				t.Error("message is empty")
			}
		})
	}
}

func TestServeCache(t *testing.T) {
	fake := &fakeRenderer{}
	srv := testServer(t, fake)
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv.runner.Cache = store
	srv.runner.CacheTTL = time.Hour
	h := srv.routes()

	if rec := get(t, h, "/graph/R.svg"); rec.Header().Get("X-Cache") != "" {
		t.Errorf("first request X-Cache = %q, want empty", rec.Header().Get("X-Cache"))
	}
	fake.dot = nil
	rec := get(t, h, "/graph/R.svg")
	if rec.Header().Get("X-Cache") != "HIT" {
		t.Errorf("second request X-Cache = %q, want HIT", rec.Header().Get("X-Cache"))
	}
	if rec.Body.String() != "<svg/>" {
		t.Errorf("cached body = %q", rec.Body.String())
	}
	if fake.dot != nil {
		t.Error("cached request should not reach the renderer")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidDirectory, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeInvalidFormat, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodePermissionDenied, "x"), http.StatusInternalServerError},
		{errors.New(errors.ErrCodeRender, "x"), http.StatusInternalServerError},
		{io.EOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
