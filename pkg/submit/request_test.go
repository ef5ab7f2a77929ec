package submit_test

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsend/pkg/form"
	"github.com/goliatone/go-formsend/pkg/submit"
)

func TestNewRequestEncodings(t *testing.T) {
	cases := []struct {
		name       string
		spec       submit.RequestSpec
		wantMethod string
		wantType   string
		wantBody   string
	}{
		{
			name:       "json default content type",
			spec:       submit.RequestSpec{URL: "http://example.test/api", Method: "post", Payload: submit.JSONPayload{Value: map[string]any{"a": 1}}},
			wantMethod: http.MethodPost,
			wantType:   "application/json; charset=UTF-8",
			wantBody:   `{"a":1}`,
		},
		{
			name:       "json custom content type",
			spec:       submit.RequestSpec{URL: "http://example.test/api", Method: submit.MethodPost, ContentType: "application/vnd.demo+json", Payload: &submit.JSONPayload{Value: []int{1}}},
			wantMethod: http.MethodPost,
			wantType:   "application/vnd.demo+json",
			wantBody:   `[1]`,
		},
		{
			name:       "url encoded",
			spec:       submit.RequestSpec{URL: "http://example.test/api", Method: submit.MethodPost, Encoding: submit.EncodingURLEncoded, Payload: submit.FormPayload{Values: url.Values{"gender": {"male"}, "input_string": {"a&b"}}}},
			wantMethod: http.MethodPost,
			wantType:   "application/x-www-form-urlencoded; charset=UTF-8",
			wantBody:   "gender=male&input_string=a%26b",
		},
		{
			name:       "raw",
			spec:       submit.RequestSpec{URL: "http://example.test/api", Method: submit.MethodPost, ContentType: "text/plain", Payload: submit.RawPayload{Body: []byte("hi")}},
			wantMethod: http.MethodPost,
			wantType:   "text/plain",
			wantBody:   "hi",
		},
		{
			name:       "empty method means get",
			spec:       submit.RequestSpec{URL: "http://example.test/api", ContentType: "application/json", Payload: submit.JSONPayload{Value: 1}},
			wantMethod: http.MethodGet,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := submit.NewRequest(context.Background(), tc.spec)
			if err != nil {
				t.Fatalf("NewRequest: %v", err)
			}
			if req.Method != tc.wantMethod {
				t.Fatalf("method = %s, want %s", req.Method, tc.wantMethod)
			}
			if got := req.Header.Get("Content-Type"); got != tc.wantType {
				t.Fatalf("content type = %q, want %q", got, tc.wantType)
			}
			var body string
			if req.Body != nil {
				raw, _ := io.ReadAll(req.Body)
				body = string(raw)
			}
			if body != tc.wantBody {
				t.Fatalf("body = %q, want %q", body, tc.wantBody)
			}
		})
	}
}

func TestNewRequestMultipart(t *testing.T) {
	doc := form.NewDocument(
		form.Element{ID: "input_string", Name: "input_string", Type: "text", Value: form.Text("hello")},
		form.Element{ID: "input_file", Name: "input_file", Type: "file"},
	)
	doc.Attach("#input_file", form.File{Name: "notes.txt", ContentType: "text/plain", Data: []byte("abc")})

	req, err := submit.NewRequest(context.Background(), submit.RequestSpec{
		URL:         "http://example.test/api/demo/form",
		Method:      submit.MethodPost,
		Encoding:    submit.EncodingMultipart,
		ContentType: "application/json",
		Payload:     submit.MultipartFromDocument(doc),
	})
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("expected multipart content type, got %q (%v)", req.Header.Get("Content-Type"), err)
	}

	reader := multipart.NewReader(req.Body, params["boundary"])
	parsed, err := reader.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	if diff := cmp.Diff(map[string][]string{"input_string": {"hello"}}, parsed.Value); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	files := parsed.File["input_file"]
	if len(files) != 1 || files[0].Filename != "notes.txt" || files[0].Size != 3 {
		t.Fatalf("unexpected file parts %+v", files)
	}
}

func TestJSONFromValues(t *testing.T) {
	got := submit.JSONFromValues(map[string][]string{
		"input_string": {"hello", "ignored"},
		"input_number": {" 12 "},
		"blank":        {""},
		"other":        {"x1"},
		"empty":        nil,
	}, "input_number", "blank", "other")

	want := map[string]any{"input_string": "hello", "input_number": int64(12), "other": "x1"}
	if diff := cmp.Diff(want, got.Value); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryURL(t *testing.T) {
	got, err := submit.QueryURL("http://example.test/api/demo/query?x=1", map[string][]string{"text": {"a b"}, "number": {"3"}})
	if err != nil {
		t.Fatalf("QueryURL: %v", err)
	}
	if !strings.HasSuffix(got, "?number=3&text=a+b&x=1") {
		t.Fatalf("unexpected url %q", got)
	}
}
