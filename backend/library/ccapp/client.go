// Package ccapp talks to the model-construction engine, which owns SBML
// document construction, mutation and validation.
package ccapp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sbml-builder/backend/library/upstream"
)

const (
	ServiceName    = "ccapp"
	DefaultTimeout = 10 * time.Second

	DefaultComponentType   = "species"
	DefaultInteractionType = "activation"
)

type Client struct {
	http *upstream.Client
}

func NewClient(baseURL string) *Client {
	return &Client{http: upstream.NewClient(ServiceName, baseURL, DefaultTimeout)}
}

// BaseURL is the engine root this client targets.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

type createModelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type componentRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type interactionRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// CreateModel asks the engine to materialize a new model document.
func (c *Client) CreateModel(ctx context.Context, name, description string) (json.RawMessage, error) {
	return c.http.JSON(ctx, upstream.Request{
		Operation: "create_model",
		Method:    http.MethodPost,
		Path:      "/api/models",
	}, createModelRequest{Name: name, Description: description})
}

func (c *Client) GetModel(ctx context.Context, modelID int64) (json.RawMessage, error) {
	return c.http.JSON(ctx, upstream.Request{
		Operation: "get_model",
		Method:    http.MethodGet,
		Path:      fmt.Sprintf("/api/models/%d", modelID),
	}, nil)
}

// AddComponent appends a component and returns the complete updated document.
func (c *Client) AddComponent(ctx context.Context, modelID int64, name, componentType string) (json.RawMessage, error) {
	if componentType == "" {
		componentType = DefaultComponentType
	}
	return c.http.JSON(ctx, upstream.Request{
		Operation: "add_component",
		Method:    http.MethodPost,
		Path:      fmt.Sprintf("/api/models/%d/components", modelID),
	}, componentRequest{Name: name, Type: componentType})
}

// AddInteraction links two existing components and returns the complete
// updated document.
func (c *Client) AddInteraction(ctx context.Context, modelID int64, source, target, interactionType string) (json.RawMessage, error) {
	if interactionType == "" {
		interactionType = DefaultInteractionType
	}
	return c.http.JSON(ctx, upstream.Request{
		Operation: "add_interaction",
		Method:    http.MethodPost,
		Path:      fmt.Sprintf("/api/models/%d/interactions", modelID),
	}, interactionRequest{Source: source, Target: target, Type: interactionType})
}

// ExportSBML returns the engine's serialized SBML text.
func (c *Client) ExportSBML(ctx context.Context, modelID int64) (string, error) {
	data, err := c.http.Do(ctx, upstream.Request{
		Operation: "export_sbml",
		Method:    http.MethodGet,
		Path:      fmt.Sprintf("/api/models/%d/export/sbml", modelID),
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ValidateSBML submits raw SBML XML and returns the engine's validation report.
func (c *Client) ValidateSBML(ctx context.Context, content []byte) (json.RawMessage, error) {
	return c.http.JSON(ctx, upstream.Request{
		Operation:   "validate_sbml",
		Method:      http.MethodPost,
		Path:        "/api/sbml/validate",
		Body:        content,
		ContentType: upstream.ContentTypeXML,
	}, nil)
}

// CheckHealth never fails; an unreachable engine is reported as false.
func (c *Client) CheckHealth(ctx context.Context, timeout time.Duration) bool {
	return c.http.Ping(ctx, timeout)
}
