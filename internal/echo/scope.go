package echo

import (
	"crypto/tls"
	"net/http"
	"reflect"
)

// snapshotScope collects the transport-level metadata the request
// carries beyond headers and body. Headers, the body stream and the
// URL are deliberately not repeated here; they are surfaced elsewhere
// in the echo document.
func snapshotScope(r *http.Request) map[string]any {
	scope := map[string]any{
		"protocol":          r.Proto,
		"proto_major":       r.ProtoMajor,
		"proto_minor":       r.ProtoMinor,
		"content_length":    r.ContentLength,
		"transfer_encoding": r.TransferEncoding,
		"host":              r.Host,
		"remote_addr":       r.RemoteAddr,
		"request_uri":       r.RequestURI,
		"close":             r.Close,
	}

	if r.TLS != nil {
		scope["tls_version"] = tls.VersionName(r.TLS.Version)
		scope["tls_cipher_suite"] = tls.CipherSuiteName(r.TLS.CipherSuite)
		scope["tls_server_name"] = r.TLS.ServerName
		scope["tls_negotiated_protocol"] = r.TLS.NegotiatedProtocol
	}

	return normalizeScope(scope)
}

// normalizeScope keeps only entries whose value is a primitive scalar
// or a homogeneous sequence of scalars. Anything else would leak
// internal references or fail to serialise.
func normalizeScope(scope map[string]any) map[string]any {
	serialisable := make(map[string]any, len(scope))

	for key, value := range scope {
		if value == nil || isScalar(value) {
			serialisable[key] = value
			continue
		}

		if items, ok := scalarSlice(value); ok {
			serialisable[key] = items
		}
	}

	return serialisable
}

func isScalar(value any) bool {
	switch reflect.ValueOf(value).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func scalarSlice(value any) ([]any, bool) {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, false
	}

	items := make([]any, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := v.Index(i).Interface()
		if item != nil && !isScalar(item) {
			return nil, false
		}
		items = append(items, item)
	}

	return items, true
}
