package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"

	"github.com/agentmesh/agent-endpoint/pkg/domain/interfaces"
	"github.com/agentmesh/agent-endpoint/pkg/domain/types"
	"github.com/agentmesh/agent-endpoint/pkg/utils/safe"
)

// client implements interfaces.FactClient against the platform backend
// API. No retries: the caller surfaces failures to its own caller
// in-band.
type client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the backend client.
type Option func(*client)

// WithHTTPClient replaces the HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// New creates a fact storage client for the backend at baseURL.
func New(baseURL string, opts ...Option) (interfaces.FactClient, error) {
	if baseURL == "" {
		return nil, goerr.New("backend URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, goerr.Wrap(err, "invalid backend URL", goerr.V("url", baseURL))
	}

	c := &client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type setFactRequest struct {
	AgentID types.AgentID `json:"agentId"`
	Key     string        `json:"key"`
	Value   any           `json:"value"`
}

func (c *client) SetFact(ctx context.Context, agentID types.AgentID, key string, value any) error {
	body, err := json.Marshal(setFactRequest{
		AgentID: agentID,
		Key:     key,
		Value:   value,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to marshal fact", goerr.V("key", key))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/longterm/set", bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to build set request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to call backend", goerr.V("key", key))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return goerr.New("backend returned error status",
			goerr.V("status", resp.StatusCode),
			goerr.V("key", key),
		)
	}
	return nil
}

func (c *client) GetFact(ctx context.Context, agentID types.AgentID, key string) (any, error) {
	reqURL := c.baseURL + "/api/longterm/get/" + url.PathEscape(agentID.String()) + "/" + url.PathEscape(key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build get request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call backend", goerr.V("key", key))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.New("backend returned error status",
			goerr.V("status", resp.StatusCode),
			goerr.V("key", key),
		)
	}

	var body struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, goerr.Wrap(err, "failed to decode backend response", goerr.V("key", key))
	}
	return body.Value, nil
}
