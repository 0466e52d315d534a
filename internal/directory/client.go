// Package directory implements the HTTP client for the Token Directory
// Service, the external authority of record for token lifecycle state.
//
// The client performs no retries: retry policy belongs to callers, who
// must revalidate a transition's legality against current state before
// resubmitting.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/token"
)

// Endpoint paths. Each transition action posts to its own endpoint.
const (
	pathList   = "/token/list/"
	pathDetail = "/token/detail/"
)

var transitionPaths = map[token.Action]string{
	token.ActionActivate:   "/token/activate/",
	token.ActionSuspend:    "/token/suspend/",
	token.ActionResume:     "/token/resume/",
	token.ActionDeactivate: "/token/deactivate/",
}

// Client talks to one Token Directory Service instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the directory at baseURL.
func NewClient(baseURL string) *Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = DefaultTimeout
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// WithHTTPClient returns a copy of the client using the given HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	return &Client{baseURL: c.baseURL, httpClient: httpClient}
}

// WithTimeout returns a copy of the client whose calls are bounded by d
// instead of DefaultTimeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = d
	return &Client{baseURL: c.baseURL, httpClient: httpClient}
}

// ListTokens fetches raw token payloads matching the filter. The payloads
// are schema-ambiguous; callers normalize before use.
func (c *Client) ListTokens(ctx context.Context, filter FilterCriteria) ([]map[string]any, error) {
	body, err := c.post(ctx, "list", pathList, filter)
	if err != nil {
		return nil, err
	}

	// Bare array first, then the two wrapped shapes.
	var tokens []map[string]any
	if err := json.Unmarshal(body, &tokens); err == nil {
		return tokens, nil
	}
	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &token.ExternalCommunicationError{
			Op:  "list",
			Err: fmt.Errorf("unrecognized list response shape: %w", err),
		}
	}
	if env.Tokens != nil {
		return env.Tokens, nil
	}
	return env.Results, nil
}

// GetTokenDetail fetches the raw payload for one token by internal id.
func (c *Client) GetTokenDetail(ctx context.Context, internalID string) (map[string]any, error) {
	body, err := c.post(ctx, "detail", pathDetail, detailRequest{TokenID: internalID})
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &token.ExternalCommunicationError{
			Op:  "detail",
			Err: fmt.Errorf("decoding detail response: %w", err),
		}
	}
	if len(raw) == 0 {
		return nil, &token.NotFoundError{InternalID: internalID}
	}
	return raw, nil
}

// RequestTransition submits a lifecycle action to its endpoint. A returned
// error never implies the directory did not act; only a refetch can settle
// the token's state.
func (c *Client) RequestTransition(ctx context.Context, action token.Action, call TransitionCall) (*TransitionResult, error) {
	path, ok := transitionPaths[action]
	if !ok {
		return nil, fmt.Errorf("no endpoint for action %q", action)
	}
	body, err := c.post(ctx, string(action), path, call)
	if err != nil {
		return nil, err
	}
	var result TransitionResult
	if len(body) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, &token.ExternalCommunicationError{
				Op:  string(action),
				Err: fmt.Errorf("decoding transition response: %w", err),
			}
		}
	}
	return &result, nil
}

// post performs one JSON POST and returns the response body. All transport
// and non-2xx failures come back as *token.ExternalCommunicationError with
// the original cause attached.
func (c *Client) post(ctx context.Context, op, path string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &token.ExternalCommunicationError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	const maxResponseSize = 10 * 1024 * 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &token.ExternalCommunicationError{Op: op, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &token.ExternalCommunicationError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(body))),
		}
	}
	return body, nil
}
