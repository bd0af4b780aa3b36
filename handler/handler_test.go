package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func echoRequest(t *testing.T, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()

	handler := NewEchoHandler(EchoHandlerParams{Log: zap.NewNop()})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	res := w.Result()
	t.Cleanup(func() { res.Body.Close() })

	var doc map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&doc))

	return res, doc
}

func TestEchoHandler_GET(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/foo?x=1", nil)
	req.Header.Set("Accept", "text/plain")

	res, doc := echoRequest(t, req)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

	assert.Equal(t, "GET", doc["method"])
	assert.Equal(t, "/foo", doc["path"])
	assert.Equal(t, []any{[]any{"x", "1"}}, doc["query_params"])
	assert.Contains(t, doc["headers"], map[string]any{"name": "Accept", "value": "text/plain"})

	body, ok := doc["body"].(map[string]any)
	require.True(t, ok)
	assert.Nil(t, body["text"])
	assert.Nil(t, body["base64"])
	assert.Equal(t, float64(0), body["length"])
	assert.Nil(t, doc["json"])
}

func TestEchoHandler_PostJSON(t *testing.T) {
	payload := `{"x": 1}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	res, doc := echoRequest(t, req)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, map[string]any{"x": float64(1)}, doc["json"])

	body, ok := doc["body"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, payload, body["text"])
	assert.Equal(t, float64(len(payload)), body["length"])
}

func TestEchoHandler_InvalidBodyNeverFails(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/anything", strings.NewReader("not-json"))

	res, doc := echoRequest(t, req)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Nil(t, doc["json"])

	body, ok := doc["body"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "not-json", body["text"])
}

func TestEchoHandler_AnyMethod(t *testing.T) {
	methods := []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	}

	for _, method := range methods {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/", nil)

			res, doc := echoRequest(t, req)

			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.Equal(t, method, doc["method"])
		})
	}
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	HealthHandler(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	assert.Equal(t, `{"status":"ok"}`, w.Body.String())
}
