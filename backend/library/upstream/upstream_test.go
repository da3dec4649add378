package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSendsPayloadAndReturnsRawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/things", r.URL.Path)
		assert.Equal(t, ContentTypeJSON, r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"x"}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"b": 2, "a": 1}`))
	}))
	defer server.Close()

	client := NewClient("test", server.URL+"/", time.Second)
	raw, err := client.JSON(context.Background(), Request{Operation: "create", Method: http.MethodPost, Path: "/api/things"}, map[string]string{"name": "x"})
	require.NoError(t, err)
	// Field order and spacing are preserved: the body is never re-encoded.
	assert.Equal(t, `{"b": 2, "a": 1}`, string(raw))
}

func TestDoReturnsErrorForNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model 9 unknown", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient("ccapp", server.URL, time.Second)
	_, err := client.Do(context.Background(), Request{Operation: "get_model", Method: http.MethodGet, Path: "/api/models/9"})
	require.Error(t, err)

	var upstreamErr *Error
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusUnprocessableEntity, upstreamErr.StatusCode)
	assert.Equal(t, "model 9 unknown", upstreamErr.Body)
	assert.Contains(t, err.Error(), "ccapp get_model returned status 422")
}

func TestDoReportsTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient("simulator", url, time.Second)
	_, err := client.Do(context.Background(), Request{Operation: "simulate", Method: http.MethodPost, Path: "/api/simulate"})
	require.Error(t, err)

	var upstreamErr *Error
	require.True(t, errors.As(err, &upstreamErr))
	assert.Zero(t, upstreamErr.StatusCode)
	assert.Contains(t, err.Error(), "simulator simulate failed")
}

func TestDoHonoursPerRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient("simulator", server.URL, time.Minute)
	start := time.Now()
	_, err := client.Do(context.Background(), Request{Operation: "slow", Method: http.MethodGet, Path: "/", Timeout: 50 * time.Millisecond})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestJSONRejectsNonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer server.Close()

	client := NewClient("ccapp", server.URL, time.Second)
	_, err := client.JSON(context.Background(), Request{Operation: "get_model", Method: http.MethodGet, Path: "/"}, nil)
	assert.ErrorContains(t, err, "not valid JSON")
}

func TestPing(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()
	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer unhealthy.Close()
	hanging := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer hanging.Close()

	ctx := context.Background()
	assert.True(t, NewClient("a", healthy.URL, 0).Ping(ctx, time.Second))
	assert.False(t, NewClient("b", unhealthy.URL, 0).Ping(ctx, time.Second))
	assert.False(t, NewClient("c", hanging.URL, 0).Ping(ctx, 50*time.Millisecond))
	assert.False(t, NewClient("d", "http://127.0.0.1:1", 0).Ping(ctx, time.Second))
}

func TestErrorBodyIsCutOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", maxErrorBody-1) + "é" + strings.Repeat("b", 10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client := NewClient("ccapp", server.URL, time.Second)
	_, err := client.Do(context.Background(), Request{Operation: "validate_sbml", Method: http.MethodPost, Path: "/"})

	var upstreamErr *Error
	require.True(t, errors.As(err, &upstreamErr))
	assert.True(t, utf8.ValidString(upstreamErr.Body))
	assert.Equal(t, strings.Repeat("a", maxErrorBody-1), upstreamErr.Body)
}

func TestTruncateBody(t *testing.T) {
	assert.Equal(t, []byte("short"), truncateBody([]byte("short"), 10))
	assert.Equal(t, []byte("ab"), truncateBody([]byte("abé"), 3))
	assert.Equal(t, []byte("abé"), truncateBody([]byte("abéc"), 4))
}
