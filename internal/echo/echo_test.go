package echo

import (
	"context"
	"encoding/base64"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func describe(t *testing.T, r *http.Request, body []byte) *Request {
	t.Helper()

	doc, err := Describe(r, body)
	require.NoError(t, err)
	require.NotNil(t, doc)

	return doc
}

func TestDescribe_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/foo?x=1", nil)
	req.Header.Set("Accept", "text/plain")

	doc := describe(t, req, nil)

	assert.Equal(t, "GET", doc.Method)
	assert.Equal(t, "1.1", doc.HTTPVersion)
	assert.Equal(t, "http", doc.Scheme)
	assert.Equal(t, "http://example.com/foo?x=1", doc.URL)
	assert.Equal(t, "http://example.com/", doc.BaseURL)
	assert.Equal(t, "/foo", doc.Path)
	assert.Empty(t, doc.PathParams)
	assert.Equal(t, "x=1", doc.QueryString)
	assert.Equal(t, []QueryParam{{"x", "1"}}, doc.QueryParams)
	assert.Contains(t, doc.Headers, Header{Name: "Accept", Value: "text/plain"})

	assert.Nil(t, doc.Body.Text)
	assert.Nil(t, doc.Body.Base64)
	assert.Zero(t, doc.Body.Length)
	assert.Nil(t, doc.JSON)
}

func TestDescribe_HostHeaderFirst(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/plain")

	doc := describe(t, req, nil)

	require.NotEmpty(t, doc.Headers)
	assert.Equal(t, Header{Name: "Host", Value: "example.com"}, doc.Headers[0])
}

func TestDescribe_UTF8BodyWithoutCharset(t *testing.T) {
	body := []byte("grüße, 世界")
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(body)))

	doc := describe(t, req, body)

	require.NotNil(t, doc.Body.Text)
	assert.Equal(t, "grüße, 世界", *doc.Body.Text)
	assert.Equal(t, len(body), doc.Body.Length)
}

func TestDescribe_JSONBody(t *testing.T) {
	body := []byte(`{"x": 1}`)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")

	doc := describe(t, req, body)

	assert.Equal(t, map[string]any{"x": float64(1)}, doc.JSON)
	require.NotNil(t, doc.Body.Text)
	assert.Equal(t, `{"x": 1}`, *doc.Body.Text)
	assert.Equal(t, len(body), doc.Body.Length)
}

func TestDescribe_JSONBodyWithoutJSONContentType(t *testing.T) {
	// the parse is attempted regardless of the declared content type
	body := []byte(`{"a":1}`)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "text/plain")

	doc := describe(t, req, body)

	assert.Equal(t, map[string]any{"a": float64(1)}, doc.JSON)
}

func TestDescribe_InvalidJSONBody(t *testing.T) {
	body := []byte("not-json")
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(body)))

	doc := describe(t, req, body)

	assert.Nil(t, doc.JSON)
	require.NotNil(t, doc.Body.Text)
	assert.Equal(t, "not-json", *doc.Body.Text)
}

func TestDescribe_Base64RoundTrip(t *testing.T) {
	body := []byte{0x00, 0xff, 0xfe, 0x41, 0x80}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(body)))

	doc := describe(t, req, body)

	require.NotNil(t, doc.Body.Base64)

	decoded, err := base64.StdEncoding.DecodeString(*doc.Body.Base64)
	require.NoError(t, err)
	assert.Equal(t, body, decoded)

	// non-UTF-8 bytes degrade to substituted text, never an error
	require.NotNil(t, doc.Body.Text)
	assert.Contains(t, *doc.Body.Text, "�")
}

func TestDescribe_DuplicateHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Add("X-Tag", "a")
	req.Header.Add("X-Tag", "b")

	doc := describe(t, req, nil)

	var values []string
	for _, h := range doc.Headers {
		if h.Name == "X-Tag" {
			values = append(values, h.Value)
		}
	}

	assert.Equal(t, []string{"a", "b"}, values)
}

func TestDescribe_DuplicateQueryParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?k=1&k=2", nil)

	doc := describe(t, req, nil)

	assert.Equal(t, "k=1&k=2", doc.QueryString)
	assert.Equal(t, []QueryParam{{"k", "1"}, {"k", "2"}}, doc.QueryParams)
}

func TestDescribe_Cookies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "session=abc; theme=dark; session=shadowed")

	doc := describe(t, req, nil)

	assert.Equal(t, map[string]string{
		"session": "abc",
		"theme":   "dark",
	}, doc.Cookies)
}

func TestDescribe_ClientAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:49152"

	doc := describe(t, req, nil)

	require.NotNil(t, doc.Client.Host)
	require.NotNil(t, doc.Client.Port)
	assert.Equal(t, "203.0.113.7", *doc.Client.Host)
	assert.Equal(t, 49152, *doc.Client.Port)
}

func TestDescribe_MissingConnectionInfo(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ""

	doc := describe(t, req, nil)

	assert.Nil(t, doc.Client.Host)
	assert.Nil(t, doc.Client.Port)
	assert.Nil(t, doc.Server.Host)
	assert.Nil(t, doc.Server.Port)
}

func TestDescribe_ServerAddrFromContext(t *testing.T) {
	addr := &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 8080}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), http.LocalAddrContextKey, net.Addr(addr)))

	doc := describe(t, req, nil)

	require.NotNil(t, doc.Server.Host)
	require.NotNil(t, doc.Server.Port)
	assert.Equal(t, "127.0.0.1", *doc.Server.Host)
	assert.Equal(t, 8080, *doc.Server.Port)
}

func TestDescribe_Idempotent(t *testing.T) {
	newRequest := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/echo?a=1", strings.NewReader("hello"))
		req.Header.Set("X-Tag", "a")
		return req
	}

	first := describe(t, newRequest(), []byte("hello"))
	second := describe(t, newRequest(), []byte("hello"))

	assert.Equal(t, first, second)
}
