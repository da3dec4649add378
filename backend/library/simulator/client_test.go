package simulator

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, body []byte)) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		handler(w, r, body)
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

func TestRunSimulationPayload(t *testing.T) {
	client := newEngine(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/simulate", r.URL.Path)

		var payload map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.JSONEq(t, `{"sbml":"<sbml/>"}`, string(payload["model"]))
		assert.JSONEq(t, `250`, string(payload["steps"]))
		assert.JSONEq(t, `{"method":"java-advanced"}`, string(payload["config"]))

		_, _ = w.Write([]byte(`{"time":[0,1],"GeneA":[0,0.5]}`))
	})

	results, err := client.RunSimulation(context.Background(), json.RawMessage(`{"sbml":"<sbml/>"}`), 250, map[string]any{"method": "java-advanced"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"time":[0,1],"GeneA":[0,0.5]}`, string(results))
}

func TestRunSimulationNilConfigSendsEmptyObject(t *testing.T) {
	client := newEngine(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		var payload map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.JSONEq(t, `{}`, string(payload["config"]))
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.RunSimulation(context.Background(), json.RawMessage(`"<sbml/>"`), DefaultSteps, nil)
	require.NoError(t, err)
}

func TestRunStochasticPayload(t *testing.T) {
	client := newEngine(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		assert.Equal(t, "/api/simulate/stochastic", r.URL.Path)
		assert.JSONEq(t, `{"model":{"m":1},"runs":10,"steps":100,"method":"stochastic"}`, string(body))
		_, _ = w.Write([]byte(`{"runs":[]}`))
	})

	_, err := client.RunStochastic(context.Background(), json.RawMessage(`{"m":1}`), DefaultRuns, DefaultSteps)
	require.NoError(t, err)
}

func TestSimulationLifecycleEndpoints(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	client := newEngine(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.Path)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	ctx := context.Background()

	_, err := client.Status(ctx, "sim-1")
	require.NoError(t, err)
	_, err = client.Results(ctx, "sim-1")
	require.NoError(t, err)
	_, err = client.Cancel(ctx, "sim-1")
	require.NoError(t, err)
	_, err = client.Methods(ctx)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"GET /api/simulations/sim-1",
		"GET /api/simulations/sim-1/results",
		"POST /api/simulations/sim-1/cancel",
		"GET /api/methods",
	}, seen)
}

func TestEngineFailureIsReturned(t *testing.T) {
	client := newEngine(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		http.Error(w, "solver diverged", http.StatusInternalServerError)
	})

	_, err := client.RunSimulation(context.Background(), json.RawMessage(`{}`), 10, nil)
	assert.ErrorContains(t, err, "solver diverged")
}

func TestCheckHealth(t *testing.T) {
	client := newEngine(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		w.WriteHeader(http.StatusOK)
	})
	assert.True(t, client.CheckHealth(context.Background(), time.Second))
	assert.False(t, NewClient("http://127.0.0.1:1").CheckHealth(context.Background(), time.Second))
}

func TestBaseURLTrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "http://sim:8081", NewClient("http://sim:8081/").BaseURL())
}
