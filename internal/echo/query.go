package echo

import (
	"net/url"
	"strings"
)

// queryParams splits the raw query into ordered key/value pairs.
// Unlike url.Values, duplicate keys and their relative order are
// preserved. Percent-decoding is best-effort: a token that fails to
// decode is kept verbatim rather than dropped.
func queryParams(rawQuery string) []QueryParam {
	params := make([]QueryParam, 0)

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		params = append(params, QueryParam{unescape(key), unescape(value)})
	}

	return params
}

func unescape(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}
	return s
}
