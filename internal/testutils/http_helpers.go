package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/scry-browser/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateTestServer creates a httptest server with the given handler.
// The server is closed automatically when the test ends.
func CreateTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// CleanupResponseBody registers a cleanup function to close the response body.
func CleanupResponseBody(t *testing.T, resp *http.Response) {
	t.Helper()
	if resp != nil && resp.Body != nil {
		t.Cleanup(func() {
			if err := resp.Body.Close(); err != nil {
				t.Logf("Warning: failed to close response body: %v", err)
			}
		})
	}
}

// AssertErrorResponse checks that resp carries the expected status and a
// JSON error whose message contains expectedErrorMsgPart and which has a
// trace ID.
func AssertErrorResponse(
	t *testing.T,
	resp *http.Response,
	expectedStatus int,
	expectedErrorMsgPart string,
) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode,
		"Expected status code %d but got %d", expectedStatus, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	var errResp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp),
		"Failed to unmarshal error response: %s", string(body))

	assert.Contains(t, errResp.Error, expectedErrorMsgPart,
		"Error message should contain '%s' but got '%s'", expectedErrorMsgPart, errResp.Error)
	assert.NotEmpty(t, errResp.TraceID, "Error response should carry a trace ID")
}

// AssertJSONResponse checks the status code and decodes the JSON body into v.
func AssertJSONResponse(t *testing.T, resp *http.Response, expectedStatus int, v interface{}) {
	t.Helper()

	require.Equal(t, expectedStatus, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v), "Failed to decode JSON response")
}

// Post sends an empty POST request and registers cleanup of the body.
func Post(t *testing.T, server *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Post(server.URL+path, "application/json", nil)
	require.NoError(t, err)
	CleanupResponseBody(t, resp)
	return resp
}

// Get sends a GET request and registers cleanup of the body.
func Get(t *testing.T, server *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	CleanupResponseBody(t, resp)
	return resp
}
