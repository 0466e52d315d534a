package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/directory"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/lifecycle"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/token"
	"github.com/Brahim-semlali/life-cycle-token-sub000/pkg/logging"
)

type stubDirectory struct {
	tokens map[string]map[string]any
	fail   bool
}

func (d *stubDirectory) ListTokens(_ context.Context, _ directory.FilterCriteria) ([]map[string]any, error) {
	if d.fail {
		return nil, &token.ExternalCommunicationError{Op: "list", Err: errors.New("unreachable")}
	}
	out := make([]map[string]any, 0, len(d.tokens))
	for _, raw := range d.tokens {
		out = append(out, raw)
	}
	return out, nil
}

func (d *stubDirectory) GetTokenDetail(_ context.Context, id string) (map[string]any, error) {
	if d.fail {
		return nil, &token.ExternalCommunicationError{Op: "detail", Err: errors.New("unreachable")}
	}
	raw, ok := d.tokens[id]
	if !ok {
		return nil, &token.NotFoundError{InternalID: id}
	}
	return raw, nil
}

func (d *stubDirectory) RequestTransition(_ context.Context, action token.Action, call directory.TransitionCall) (*directory.TransitionResult, error) {
	for id, raw := range d.tokens {
		if raw["tokenReferenceID"] == call.TokenReferenceID {
			d.tokens[id]["token_status"] = string(action.Target())
		}
	}
	return &directory.TransitionResult{Status: "ok"}, nil
}

func newTestServer(dir *stubDirectory) *Server {
	m := lifecycle.New(dir,
		lifecycle.WithLogger(logging.Discard()),
		lifecycle.WithOperatorID("ops.test"),
	)
	return New(m, logging.Discard())
}

func seedToken(id, status string) map[string]any {
	return map[string]any{
		"id":               id,
		"tokenReferenceID": "REF-" + id,
		"tokenRequestorID": "REQ-" + id,
		"token_value":      "476173XXXX" + id,
		"token_status":     status,
		"tsp":              "MDES",
	}
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestGetToken(t *testing.T) {
	s := newTestServer(&stubDirectory{tokens: map[string]map[string]any{"1": seedToken("1", "ACTIVE")}})

	w := doRequest(t, s, http.MethodGet, "/api/tokens/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "ACTIVE", got["token_status"])
	assert.Equal(t, "ACTIVE", got["tokenStatus"], "both naming conventions present")
	assert.Equal(t, "Active", got["status_display"])
}

func TestGetTokenNotFound(t *testing.T) {
	s := newTestServer(&stubDirectory{tokens: map[string]map[string]any{}})

	w := doRequest(t, s, http.MethodGet, "/api/tokens/404", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "not_found", got["kind"])
}

func TestListTokens(t *testing.T) {
	s := newTestServer(&stubDirectory{tokens: map[string]map[string]any{
		"1": seedToken("1", "ACTIVE"),
		"2": seedToken("2", "SUSPENDED"),
	}})

	w := doRequest(t, s, http.MethodGet, "/api/tokens", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Count  int              `json:"count"`
		Tokens []map[string]any `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Count)
}

func TestTransition(t *testing.T) {
	s := newTestServer(&stubDirectory{tokens: map[string]map[string]any{"1": seedToken("1", "ACTIVE")}})

	w := doRequest(t, s, http.MethodPost, "/api/tokens/1/transition",
		`{"action":"suspend","reason":"Card lost"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "SUSPENDED", got["token_status"])
}

func TestTransitionIllegal(t *testing.T) {
	s := newTestServer(&stubDirectory{tokens: map[string]map[string]any{"1": seedToken("1", "INACTIVE")}})

	w := doRequest(t, s, http.MethodPost, "/api/tokens/1/transition",
		`{"action":"suspend","reason":"Card lost"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "invalid_transition", got["kind"])
}

func TestTransitionBadReason(t *testing.T) {
	s := newTestServer(&stubDirectory{tokens: map[string]map[string]any{"1": seedToken("1", "ACTIVE")}})

	w := doRequest(t, s, http.MethodPost, "/api/tokens/1/transition",
		`{"action":"suspend","reason":"Because"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTransitionUnknownActionRejectedByBinding(t *testing.T) {
	s := newTestServer(&stubDirectory{tokens: map[string]map[string]any{"1": seedToken("1", "ACTIVE")}})

	w := doRequest(t, s, http.MethodPost, "/api/tokens/1/transition",
		`{"action":"vaporize","reason":"Other"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDirectoryOutageMapsToBadGateway(t *testing.T) {
	s := newTestServer(&stubDirectory{fail: true})

	w := doRequest(t, s, http.MethodGet, "/api/tokens", "")
	require.Equal(t, http.StatusBadGateway, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "external_communication", got["kind"])
}

func TestActionsEndpoint(t *testing.T) {
	s := newTestServer(&stubDirectory{tokens: map[string]map[string]any{"1": seedToken("1", "SUSPENDED")}})

	// Prime the cache; actions are computed from the cached record.
	require.Equal(t, http.StatusOK, doRequest(t, s, http.MethodGet, "/api/tokens/1", "").Code)

	w := doRequest(t, s, http.MethodGet, "/api/tokens/1/actions", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Actions []struct {
			Action  string   `json:"action"`
			Target  string   `json:"target"`
			Reasons []string `json:"reasons"`
		} `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Actions, 2)
	assert.Equal(t, "resume", got.Actions[0].Action)
	assert.Equal(t, "ACTIVE", got.Actions[0].Target)
	assert.Contains(t, got.Actions[0].Reasons, "Card found")
}

func TestPendingLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(&stubDirectory{tokens: map[string]map[string]any{"1": seedToken("1", "ACTIVE")}})

	w := doRequest(t, s, http.MethodGet, "/api/tokens/1/pending", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, s, http.MethodDelete, "/api/tokens/1/pending", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportCSV(t *testing.T) {
	s := newTestServer(&stubDirectory{tokens: map[string]map[string]any{"1": seedToken("1", "ACTIVE")}})

	w := doRequest(t, s, http.MethodGet, "/api/tokens/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "tokens-export-")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,token_value,token_status"))
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&stubDirectory{})
	w := doRequest(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
