// Package simulator talks to the simulation engine. Runs are synchronous from
// the gateway's point of view; the long timeouts cover engine compute time.
package simulator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"sbml-builder/backend/library/upstream"
)

const (
	ServiceName = "simulator"

	DefaultTimeout    = 10 * time.Second
	SimulateTimeout   = 60 * time.Second
	StochasticTimeout = 120 * time.Second

	DefaultSteps  = 100
	DefaultRuns   = 10
	DefaultMethod = "java-advanced"
)

type Client struct {
	http *upstream.Client
}

func NewClient(baseURL string) *Client {
	return &Client{http: upstream.NewClient(ServiceName, baseURL, DefaultTimeout)}
}

func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

type simulateRequest struct {
	Model  json.RawMessage `json:"model"`
	Steps  int             `json:"steps"`
	Config map[string]any  `json:"config"`
}

type stochasticRequest struct {
	Model  json.RawMessage `json:"model"`
	Runs   int             `json:"runs"`
	Steps  int             `json:"steps"`
	Method string          `json:"method"`
}

// RunSimulation runs a deterministic simulation of document and blocks until
// the engine answers or SimulateTimeout elapses.
func (c *Client) RunSimulation(ctx context.Context, document json.RawMessage, steps int, config map[string]any) (json.RawMessage, error) {
	if config == nil {
		config = map[string]any{}
	}
	return c.http.JSON(ctx, upstream.Request{
		Operation: "simulate",
		Method:    http.MethodPost,
		Path:      "/api/simulate",
		Timeout:   SimulateTimeout,
	}, simulateRequest{Model: document, Steps: steps, Config: config})
}

// RunStochastic runs several stochastic realisations of document.
func (c *Client) RunStochastic(ctx context.Context, document json.RawMessage, runs, steps int) (json.RawMessage, error) {
	return c.http.JSON(ctx, upstream.Request{
		Operation: "simulate_stochastic",
		Method:    http.MethodPost,
		Path:      "/api/simulate/stochastic",
		Timeout:   StochasticTimeout,
	}, stochasticRequest{Model: document, Runs: runs, Steps: steps, Method: "stochastic"})
}

func (c *Client) Status(ctx context.Context, simulationID string) (json.RawMessage, error) {
	return c.http.JSON(ctx, upstream.Request{
		Operation: "simulation_status",
		Method:    http.MethodGet,
		Path:      "/api/simulations/" + url.PathEscape(simulationID),
	}, nil)
}

func (c *Client) Results(ctx context.Context, simulationID string) (json.RawMessage, error) {
	return c.http.JSON(ctx, upstream.Request{
		Operation: "simulation_results",
		Method:    http.MethodGet,
		Path:      "/api/simulations/" + url.PathEscape(simulationID) + "/results",
	}, nil)
}

func (c *Client) Cancel(ctx context.Context, simulationID string) (json.RawMessage, error) {
	return c.http.JSON(ctx, upstream.Request{
		Operation: "cancel_simulation",
		Method:    http.MethodPost,
		Path:      "/api/simulations/" + url.PathEscape(simulationID) + "/cancel",
	}, nil)
}

// Methods lists the simulation methods the engine supports.
func (c *Client) Methods(ctx context.Context) (json.RawMessage, error) {
	return c.http.JSON(ctx, upstream.Request{
		Operation: "list_methods",
		Method:    http.MethodGet,
		Path:      "/api/methods",
	}, nil)
}

func (c *Client) CheckHealth(ctx context.Context, timeout time.Duration) bool {
	return c.http.Ping(ctx, timeout)
}
