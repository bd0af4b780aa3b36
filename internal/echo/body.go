package echo

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

func describeBody(raw []byte, contentType string) Body {
	body := Body{Length: len(raw)}

	if len(raw) == 0 {
		return body
	}

	text := decodeText(raw, contentType)
	body.Text = &text

	b64 := base64.StdEncoding.EncodeToString(raw)
	body.Base64 = &b64

	return body
}

// decodeText decodes the body using the charset named in the
// Content-Type header. An absent or unknown charset, or a failing
// decoder, falls back to UTF-8 with U+FFFD substitution. It never
// fails.
func decodeText(raw []byte, contentType string) string {
	if enc := lookupCharset(contentType); enc != nil {
		if text, err := enc.NewDecoder().Bytes(raw); err == nil {
			return string(text)
		}
	}
	return strings.ToValidUTF8(string(raw), "�")
}

func lookupCharset(contentType string) encoding.Encoding {
	if contentType == "" {
		return nil
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil
	}

	label, ok := params["charset"]
	if !ok {
		return nil
	}

	if enc, name := charset.Lookup(label); name != "utf-8" {
		// utf-8 takes the substituting fallback path instead, as the
		// looked-up decoder passes invalid byte sequences through.
		return enc
	}

	return nil
}

// parseJSON attempts to parse the body as JSON, regardless of the
// declared content type. Malformed JSON yields a nil payload and nil
// error; any other error is returned so the caller can surface it.
func parseJSON(raw []byte) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var payload any
	err := json.Unmarshal(raw, &payload)
	if err == nil {
		return payload, nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return nil, nil
	}

	return nil, err
}
