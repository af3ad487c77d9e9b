package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fluvia/pkg/cache"
	"github.com/matzehuels/fluvia/pkg/errors"
	"github.com/matzehuels/fluvia/pkg/observability"
	"github.com/matzehuels/fluvia/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := pipeline.NewRunner(fc, cache.NewScopedKeyer(nil, "api:"), logger)
	srv := httptest.NewServer(New(runner, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthAndVersion(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/version"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		})
	}
}

func TestDefaults(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/defaults")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got pipeline.Options
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, pipeline.DefaultSeed, got.Seed)
	assert.Equal(t, pipeline.DefaultWidth, got.Width)
}

func TestGenerate(t *testing.T) {
	srv := newTestServer(t)
	body := `{"seed": 7, "width": 32, "height": 32, "samples": 2}`

	resp := post(t, srv.URL+"/v1/generate", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc pipeline.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.False(t, doc.CacheHit)
	assert.NotEmpty(t, doc.RunID)
	assert.Equal(t, uint64(7), doc.Options.Seed)
	assert.Equal(t, 32, doc.Terrain.Width)
	assert.Len(t, doc.Terrain.Elevation, 32*32)

	res, err := doc.Terrain.Result()
	require.NoError(t, err)
	assert.Equal(t, 32, res.Elevation.Width())

	again := post(t, srv.URL+"/v1/generate", body)
	require.Equal(t, http.StatusOK, again.StatusCode)
	var cached pipeline.Document
	require.NoError(t, json.NewDecoder(again.Body).Decode(&cached))
	assert.True(t, cached.CacheHit)
	assert.Equal(t, doc.Terrain, cached.Terrain)

	fresh := post(t, srv.URL+"/v1/generate", `{"seed": 7, "width": 32, "height": 32, "refresh": true}`)
	var refreshed pipeline.Document
	require.NoError(t, json.NewDecoder(fresh.Body).Decode(&refreshed))
	assert.False(t, refreshed.CacheHit)
}

func TestGenerateRejects(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"malformed", `{"seed":`, errors.ErrCodeInvalidInput},
		{"unknown field", `{"colour": "blue"}`, errors.ErrCodeInvalidInput},
		{"negative width", `{"width": -4}`, errors.ErrCodeInvalidInput},
		{"sea level", `{"width": 16, "height": 16, "sea_level": 2}`, errors.ErrCodeInvalidOptions},
		{"too large", `{"width": 1024, "height": 1024}`, errors.ErrCodeInvalidOptions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/generate", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var got errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.code, got.Code)
			assert.NotEmpty(t, got.Error)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/generate")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidOptions, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeDimensionMismatch, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvariant, "x"), http.StatusInternalServerError},
		{context.Canceled, http.StatusServiceUnavailable},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusOf(tt.err), tt.err.Error())
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

func TestRequestHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	post(t, srv.URL+"/v1/generate", `{"width": 0, "height": -1}`)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	assert.Equal(t, []string{"GET /healthz", "POST /v1/generate"}, hooks.requests)
	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, hooks.statuses)
}

func TestServeShutsDown(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, log.New(io.Discard)), log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, "127.0.0.1:0") }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
