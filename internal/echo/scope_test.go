package echo

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeScope_KeepsScalars(t *testing.T) {
	scope := normalizeScope(map[string]any{
		"str":   "value",
		"int":   42,
		"int64": int64(7),
		"float": 1.5,
		"bool":  true,
		"nil":   nil,
	})

	assert.Equal(t, map[string]any{
		"str":   "value",
		"int":   42,
		"int64": int64(7),
		"float": 1.5,
		"bool":  true,
		"nil":   nil,
	}, scope)
}

func TestNormalizeScope_KeepsScalarSequences(t *testing.T) {
	scope := normalizeScope(map[string]any{
		"strings": []string{"a", "b"},
		"mixed":   []any{"a", 1, true, nil},
	})

	assert.Equal(t, []any{"a", "b"}, scope["strings"])
	assert.Equal(t, []any{"a", 1, true, nil}, scope["mixed"])
}

func TestNormalizeScope_DropsComplexValues(t *testing.T) {
	scope := normalizeScope(map[string]any{
		"kept":     "ok",
		"callable": func() {},
		"nested":   map[string]any{"a": 1},
		"struct":   struct{ A int }{A: 1},
		"objects":  []any{map[string]any{"a": 1}},
	})

	assert.Equal(t, map[string]any{"kept": "ok"}, scope)
}

func TestSnapshotScope(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/foo?x=1", nil)

	scope := snapshotScope(req)

	assert.Equal(t, "HTTP/1.1", scope["protocol"])
	assert.Equal(t, 1, scope["proto_major"])
	assert.Equal(t, 1, scope["proto_minor"])
	assert.Equal(t, "example.com", scope["host"])
	assert.Equal(t, "/foo?x=1", scope["request_uri"])
	assert.NotContains(t, scope, "tls_version")
}

func TestSnapshotScope_TLS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	req.TLS = &tls.ConnectionState{
		Version:            tls.VersionTLS13,
		CipherSuite:        tls.TLS_AES_128_GCM_SHA256,
		ServerName:         "example.com",
		NegotiatedProtocol: "h2",
	}

	scope := snapshotScope(req)

	assert.Equal(t, "TLS 1.3", scope["tls_version"])
	assert.Equal(t, "TLS_AES_128_GCM_SHA256", scope["tls_cipher_suite"])
	assert.Equal(t, "example.com", scope["tls_server_name"])
	assert.Equal(t, "h2", scope["tls_negotiated_protocol"])
}
