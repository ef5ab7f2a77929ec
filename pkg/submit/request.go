package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formsend/pkg/form"
)

// Method is the HTTP verb of a submission.
type Method string

const (
	MethodGet  Method = http.MethodGet
	MethodPost Method = http.MethodPost
)

// Encoding selects how a POST payload is serialised.
type Encoding string

const (
	EncodingJSON       Encoding = "json"
	EncodingMultipart  Encoding = "multipart"
	EncodingURLEncoded Encoding = "url-encoded"
	EncodingNone       Encoding = "none"
)

const (
	contentTypeJSON = "application/json; charset=UTF-8"
	contentTypeForm = "application/x-www-form-urlencoded; charset=UTF-8"
)

// Payload is the request body. Implementations: JSONPayload, FormPayload,
// MultipartPayload and RawPayload.
type Payload interface {
	encoding() Encoding
}

// JSONPayload is marshalled with encoding/json.
type JSONPayload struct {
	Value any
}

// FormPayload is sent url-encoded on POST and merged into the query string on
// GET.
type FormPayload struct {
	Values url.Values
}

// MultipartPayload is sent as multipart/form-data.
type MultipartPayload struct {
	Values url.Values
	Files  map[string][]form.File
}

// RawPayload is sent as-is.
type RawPayload struct {
	Body []byte
}

func (JSONPayload) encoding() Encoding      { return EncodingJSON }
func (FormPayload) encoding() Encoding      { return EncodingURLEncoded }
func (MultipartPayload) encoding() Encoding { return EncodingMultipart }
func (RawPayload) encoding() Encoding       { return EncodingNone }

// RequestSpec describes the network call of a submission.
//
// For GET requests Encoding, ContentType and the body are never applied; a
// FormPayload is appended to the query string instead. Malformed options do
// not fail: an empty Method means GET, an unknown Encoding means none, and a
// Payload whose kind does not match Encoding is serialised by its own kind.
type RequestSpec struct {
	URL         string
	Method      Method
	Encoding    Encoding
	Payload     Payload
	ContentType string
	Header      http.Header
}

func (s RequestSpec) method() string {
	m := strings.ToUpper(strings.TrimSpace(string(s.Method)))
	if m == "" {
		return http.MethodGet
	}
	return m
}

// NewRequest builds the outgoing HTTP request for spec.
func NewRequest(ctx context.Context, spec RequestSpec) (*http.Request, error) {
	method := spec.method()
	target, err := url.Parse(strings.TrimSpace(spec.URL))
	if err != nil {
		return nil, fmt.Errorf("submit: parse url: %w", err)
	}

	if method == http.MethodGet {
		if p, ok := payloadValue(spec.Payload).(FormPayload); ok && len(p.Values) > 0 {
			q := target.Query()
			for key, values := range p.Values {
				for _, v := range values {
					q.Add(key, v)
				}
			}
			target.RawQuery = q.Encode()
		}
		req, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("submit: build request: %w", err)
		}
		copyHeader(req.Header, spec.Header)
		req.Header.Del("Content-Type")
		return req, nil
	}

	body, contentType, err := encodeBody(spec)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("submit: build request: %w", err)
	}
	copyHeader(req.Header, spec.Header)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// encodeBody serialises the payload by its own kind; Encoding only documents
// what the caller expects.
func encodeBody(spec RequestSpec) ([]byte, string, error) {
	switch p := payloadValue(spec.Payload).(type) {
	case JSONPayload:
		raw, err := json.Marshal(p.Value)
		if err != nil {
			return nil, "", fmt.Errorf("submit: encode json payload: %w", err)
		}
		return raw, overrideContentType(spec.ContentType, contentTypeJSON), nil
	case FormPayload:
		return []byte(p.Values.Encode()), overrideContentType(spec.ContentType, contentTypeForm), nil
	case MultipartPayload:
		// The boundary is generated here, so a caller supplied content type
		// is never applied.
		return encodeMultipart(p)
	case RawPayload:
		return p.Body, strings.TrimSpace(spec.ContentType), nil
	default:
		return nil, strings.TrimSpace(spec.ContentType), nil
	}
}

func payloadValue(p Payload) Payload {
	switch v := p.(type) {
	case *JSONPayload:
		if v != nil {
			return *v
		}
	case *FormPayload:
		if v != nil {
			return *v
		}
	case *MultipartPayload:
		if v != nil {
			return *v
		}
	case *RawPayload:
		if v != nil {
			return *v
		}
	default:
		return p
	}
	return nil
}

func overrideContentType(custom, fallback string) string {
	if trimmed := strings.TrimSpace(custom); trimmed != "" {
		return trimmed
	}
	return fallback
}

func encodeMultipart(p MultipartPayload) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, key := range sortedKeys(p.Values) {
		for _, v := range p.Values[key] {
			if err := w.WriteField(key, v); err != nil {
				return nil, "", fmt.Errorf("submit: write field %q: %w", key, err)
			}
		}
	}

	for _, key := range sortedKeys(p.Files) {
		for _, f := range p.Files[key] {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(key), escapeQuotes(f.Name)))
			ct := f.ContentType
			if ct == "" {
				ct = "application/octet-stream"
			}
			h.Set("Content-Type", ct)
			part, err := w.CreatePart(h)
			if err != nil {
				return nil, "", fmt.Errorf("submit: create file part %q: %w", key, err)
			}
			if _, err := part.Write(f.Data); err != nil {
				return nil, "", fmt.Errorf("submit: write file part %q: %w", key, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("submit: close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func copyHeader(dst, src http.Header) {
	for key, values := range src {
		for _, v := range values {
			dst.Add(key, v)
		}
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
