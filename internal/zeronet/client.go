package zeronet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"envlogs/internal/model"
)

// searchLimit caps how many environments one region returns for a lookup.
const searchLimit = 5

const (
	environmentsPath = "/provisioning/environments/"
	deploymentsPath  = "/deployments"

	// envIDHeader scopes deployment and log requests to one environment.
	envIDHeader = "zn-env-id"
)

// Client talks to one regional partner API.
type Client interface {
	// SearchEnvironments returns environments whose name matches the given
	// value, annotated with this client's region.
	SearchEnvironments(ctx context.Context, name string) ([]model.Environment, error)

	// ListDeployments returns the deployments of one environment. A nil
	// slice means the API answered without the deployments field at all;
	// an empty non-nil slice means the field was present and empty.
	ListDeployments(ctx context.Context, envID string) ([]model.Deployment, error)

	// FetchLogs returns the raw log entries of one deployment.
	FetchLogs(ctx context.Context, envID, deploymentID string) ([]json.RawMessage, error)
}

// httpClient is the HTTP implementation of Client. It is safe for concurrent
// use; the underlying transport is instrumented with otelhttp.
type httpClient struct {
	region  string
	baseURL string
	apiKey  string
	hc      *http.Client
}

// NewHTTPClient creates a Client for one region. The API key is sent verbatim
// in the Authorization header, as the partner API expects.
func NewHTTPClient(region, baseURL, apiKey string, timeout time.Duration) Client {
	return &httpClient{
		region:  region,
		baseURL: baseURL,
		apiKey:  apiKey,
		hc: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
	}
}

// searchFilter mirrors the provisioning API's _filters query parameter.
type searchFilter struct {
	ID            string   `json:"id"`
	IncludeValues []string `json:"includeValues"`
	ExcludeValues []string `json:"excludeValues"`
}

func (c *httpClient) SearchEnvironments(ctx context.Context, name string) ([]model.Environment, error) {
	filters, err := json.Marshal([]searchFilter{{
		ID:            "name",
		IncludeValues: []string{name},
		ExcludeValues: []string{},
	}})
	if err != nil {
		return nil, fmt.Errorf("marshal filters: %w", err)
	}

	q := url.Values{}
	q.Set("_filters", string(filters))
	q.Set("_limit", fmt.Sprintf("%d", searchLimit))

	var out struct {
		Items []model.Environment `json:"items"`
	}
	if err := c.get(ctx, environmentsPath, q, "", &out); err != nil {
		return nil, err
	}

	envs := out.Items
	for i := range envs {
		envs[i].Region = c.region
	}
	return envs, nil
}

func (c *httpClient) ListDeployments(ctx context.Context, envID string) ([]model.Deployment, error) {
	// The pointer keeps a missing field apart from a present-but-empty
	// array: callers render different fallbacks for the two.
	var out struct {
		Deployments *[]model.Deployment `json:"detailedDeploymentsFormatted"`
	}
	if err := c.get(ctx, deploymentsPath, nil, envID, &out); err != nil {
		return nil, err
	}
	if out.Deployments == nil {
		return nil, nil
	}
	return *out.Deployments, nil
}

func (c *httpClient) FetchLogs(ctx context.Context, envID, deploymentID string) ([]json.RawMessage, error) {
	var out struct {
		Items []json.RawMessage `json:"items"`
	}
	path := fmt.Sprintf("%s/%s/logs", deploymentsPath, deploymentID)
	if err := c.get(ctx, path, nil, envID, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// get performs a GET against the regional API and decodes the JSON body.
// A non-2xx status is an error; the body is drained but not exposed.
func (c *httpClient) get(ctx context.Context, path string, query url.Values, envID string, out any) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("content-type", "application/json")
	if envID != "" {
		req.Header.Set(envIDHeader, envID)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", fullURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("call %s: unexpected status %d", fullURL, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", fullURL, err)
	}
	return nil
}
