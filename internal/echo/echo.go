// Package echo turns an incoming http.Request into a serialisable
// description of everything the transport layer observed about it.
package echo

import (
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Header is a single header entry. Headers are represented as a list
// to keep duplicate header names.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// QueryParam is a single query parameter, marshalled as a
// two-element ["key", "value"] array.
type QueryParam [2]string

// Addr is one endpoint of the underlying connection. Host and port
// are independently null when the transport does not expose them.
type Addr struct {
	Host *string `json:"host"`
	Port *int    `json:"port"`
}

// Body describes the raw request body. Text and Base64 are null for
// an empty body.
type Body struct {
	Text   *string `json:"text"`
	Base64 *string `json:"base64"`
	Length int     `json:"length"`
}

// Request is the echo document returned to the caller.
type Request struct {
	Method      string            `json:"method"`
	HTTPVersion string            `json:"http_version"`
	Scheme      string            `json:"scheme"`
	URL         string            `json:"url"`
	BaseURL     string            `json:"base_url"`
	Path        string            `json:"path"`
	PathParams  map[string]string `json:"path_params"`
	QueryString string            `json:"query_string"`
	QueryParams []QueryParam      `json:"query_params"`
	Headers     []Header          `json:"headers"`
	Cookies     map[string]string `json:"cookies"`
	Client      Addr              `json:"client"`
	Server      Addr              `json:"server"`
	Body        Body              `json:"body"`
	JSON        any               `json:"json"`
	Scope       map[string]any    `json:"scope"`
}

// Describe builds the echo document for a single request. The body is
// passed in separately, as the handler owns draining the stream.
//
// Describe never fails the echo itself: every sub-extraction degrades
// to a null field on its own. The returned error is non-nil only when
// the best-effort JSON parse failed for a reason other than malformed
// JSON; the document is fully populated either way.
func Describe(r *http.Request, body []byte) (*Request, error) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	doc := &Request{
		Method:      r.Method,
		HTTPVersion: strings.TrimPrefix(r.Proto, "HTTP/"),
		Scheme:      scheme,
		URL:         requestURL(r, scheme),
		BaseURL:     scheme + "://" + r.Host + "/",
		Path:        r.URL.Path,
		PathParams:  map[string]string{},
		QueryString: r.URL.RawQuery,
		QueryParams: queryParams(r.URL.RawQuery),
		Headers:     headerEntries(r),
		Cookies:     cookieMap(r),
		Client:      parseAddr(r.RemoteAddr),
		Server:      serverAddr(r),
		Body:        describeBody(body, r.Header.Get("Content-Type")),
		Scope:       snapshotScope(r),
	}

	payload, err := parseJSON(body)
	doc.JSON = payload

	return doc, err
}

func requestURL(r *http.Request, scheme string) string {
	uri := r.RequestURI
	if uri == "" {
		uri = r.URL.RequestURI()
	}
	return scheme + "://" + r.Host + uri
}

// headerEntries lists every header exactly as received. net/http
// collapses receipt order across distinct names into a map, so names
// are emitted in sorted order; duplicate values of one name keep
// their receipt order. The Host header is promoted to r.Host by the
// transport and is restored as the first entry.
func headerEntries(r *http.Request) []Header {
	entries := make([]Header, 0, len(r.Header)+1)

	if r.Host != "" {
		entries = append(entries, Header{Name: "Host", Value: r.Host})
	}

	names := make([]string, 0, len(r.Header))
	for name := range r.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, value := range r.Header[name] {
			entries = append(entries, Header{Name: name, Value: value})
		}
	}

	return entries
}

// cookieMap flattens cookies into a name to value mapping. On
// duplicate names the first occurrence wins.
func cookieMap(r *http.Request) map[string]string {
	cookies := make(map[string]string)
	for _, c := range r.Cookies() {
		if _, ok := cookies[c.Name]; !ok {
			cookies[c.Name] = c.Value
		}
	}
	return cookies
}

func parseAddr(addr string) Addr {
	var out Addr

	if addr == "" {
		return out
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		// unix socket peers and test harnesses hand over bare addresses
		out.Host = &addr
		return out
	}

	out.Host = &host
	if port, err := strconv.Atoi(portStr); err == nil {
		out.Port = &port
	}

	return out
}

func serverAddr(r *http.Request) Addr {
	if addr, ok := r.Context().Value(http.LocalAddrContextKey).(net.Addr); ok {
		return parseAddr(addr.String())
	}
	return Addr{}
}
