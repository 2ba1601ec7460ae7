package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joblens/joblens/internal/dispatch"
)

func newTestServer() *httptest.Server {
	d := dispatch.NewDispatcher()
	d.Register(dispatch.Registration{
		Name:        "search-jobs",
		Description: "Search job listings.",
		Schema: dispatch.Schema{Fields: []dispatch.Field{
			{Name: "query", Kind: dispatch.KindString, Required: true},
		}},
		Handler: func(_ context.Context, p map[string]any) string {
			return "# Job Search: " + p["query"].(string)
		},
	})
	return httptest.NewServer(New(d).Handler())
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestToolCall_OK(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, body := postJSON(t, ts.URL+"/v1/tools/search-jobs", `{"query":"ml engineer"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "# Job Search: ml engineer", body["content"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestToolCall_ValidationErrorIs400(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, body := postJSON(t, ts.URL+"/v1/tools/search-jobs", `{}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid parameters", body["error"])
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "required", fields["query"])
}

func TestToolCall_UnknownToolIs404(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, body := postJSON(t, ts.URL+"/v1/tools/nope", `{}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["error"], "unknown tool")
}

func TestToolCall_MalformedJSONIs400(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, body := postJSON(t, ts.URL+"/v1/tools/search-jobs", `{"query":`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid JSON body", body["error"])
}

func TestListTools(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/tools")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Tools []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Tools, 1)
	assert.Equal(t, "search-jobs", body.Tools[0].Name)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestID_CallerSuppliedHonored(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-Id"))
}
