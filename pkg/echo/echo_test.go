package echo_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/url"
	"strings"
	"testing"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsend/pkg/config"
	"github.com/goliatone/go-formsend/pkg/echo"
)

func newServer(t *testing.T, mutate func(*config.ServerConfig)) *server.Hertz {
	t.Helper()
	cfg := config.Default().Server
	cfg.RateLimit.RPS = 0
	if mutate != nil {
		mutate(&cfg)
	}
	h := server.New()
	echo.RegisterRoutes(h, cfg, echo.NewMetrics())
	return h
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return out
}

func TestHealthRoute(t *testing.T) {
	h := newServer(t, nil)
	w := ut.PerformRequest(h.Engine, "GET", "/health", nil)
	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode())
	}
	if status := decode[echo.HealthStatus](t, resp.Body()); status.Status != "healthy" {
		t.Fatalf("unexpected health %+v", status)
	}
}

func TestPostJSON(t *testing.T) {
	h := newServer(t, nil)
	body := `{"input_string":"hello","input_number":7,"gender":"male"}`
	w := ut.PerformRequest(h.Engine, "POST", "/api/demo/json",
		&ut.Body{Body: strings.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json; charset=UTF-8"})

	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode(), resp.Body())
	}
	want := echo.EchoResponse{
		Method: echo.MethodJSON,
		Data:   echo.DemoRequest{InputString: "hello", InputNumber: 7, Gender: "male"},
	}
	if diff := cmp.Diff(want, decode[echo.EchoResponse](t, resp.Body())); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestPostJSONRejectsInvalidNumber(t *testing.T) {
	h := newServer(t, nil)
	body := `{"input_string":"hello","input_number":"many"}`
	w := ut.PerformRequest(h.Engine, "POST", "/api/demo/json",
		&ut.Body{Body: strings.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"})

	resp := w.Result()
	if resp.StatusCode() != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode())
	}
	got := decode[echo.ErrorResponse](t, resp.Body())
	if got.Code != 400 || got.Message == "" {
		t.Fatalf("unexpected error body %+v", got)
	}
}

func TestPostForm(t *testing.T) {
	h := newServer(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("input_string", "hello")
	_ = mw.WriteField("input_number", "3")
	_ = mw.WriteField("gender", "female")
	part, err := mw.CreateFormFile("input_file", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write([]byte("12345"))
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	w := ut.PerformRequest(h.Engine, "POST", "/api/demo/form",
		&ut.Body{Body: bytes.NewReader(buf.Bytes()), Len: buf.Len()},
		ut.Header{Key: "Content-Type", Value: mw.FormDataContentType()})

	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode(), resp.Body())
	}
	got := decode[echo.FormEchoResponse](t, resp.Body())
	name, size := "notes.txt", int64(5)
	want := echo.FormEchoResponse{
		Method:     echo.MethodFormData,
		Data:       echo.DemoRequest{InputString: "hello", InputNumber: 3, Gender: "female"},
		FileName:   &name,
		FileLength: &size,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestPostFormWithoutFile(t *testing.T) {
	h := newServer(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("input_string", "hello")
	_ = mw.Close()

	w := ut.PerformRequest(h.Engine, "POST", "/api/demo/form",
		&ut.Body{Body: bytes.NewReader(buf.Bytes()), Len: buf.Len()},
		ut.Header{Key: "Content-Type", Value: mw.FormDataContentType()})

	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode(), resp.Body())
	}
	raw := decode[map[string]any](t, resp.Body())
	if raw["FileName"] != nil || raw["FileLength"] != nil {
		t.Fatalf("expected null file fields, got %v", raw)
	}
	if _, ok := raw["FileName"]; !ok {
		t.Fatalf("expected FileName key to be present")
	}
}

func TestPostSimple(t *testing.T) {
	h := newServer(t, nil)
	body := url.Values{"input_string": {"a b"}, "input_number": {"11"}, "gender": {"male"}}.Encode()
	w := ut.PerformRequest(h.Engine, "POST", "/api/demo/simple",
		&ut.Body{Body: strings.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/x-www-form-urlencoded; charset=UTF-8"})

	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode(), resp.Body())
	}
	want := echo.EchoResponse{
		Method: echo.MethodURLEncoded,
		Data:   echo.DemoRequest{InputString: "a b", InputNumber: 11, Gender: "male"},
	}
	if diff := cmp.Diff(want, decode[echo.EchoResponse](t, resp.Body())); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestGetQuery(t *testing.T) {
	h := newServer(t, nil)
	w := ut.PerformRequest(h.Engine, "GET", "/api/demo/query?input_number=42&input_string=hi%20there", nil)

	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode(), resp.Body())
	}
	want := echo.QueryEchoResponse{Method: echo.MethodQuery, NumberValue: 42, TextValue: "hi there"}
	if diff := cmp.Diff(want, decode[echo.QueryEchoResponse](t, resp.Body())); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestGetQueryRejectsInvalidNumber(t *testing.T) {
	h := newServer(t, nil)
	w := ut.PerformRequest(h.Engine, "GET", "/api/demo/query?input_number=abc&input_string=x", nil)
	if code := w.Result().StatusCode(); code != 400 {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestBodyLimit(t *testing.T) {
	h := newServer(t, func(cfg *config.ServerConfig) { cfg.MaxBodySize = 8 })
	body := `{"input_string":"far too long"}`
	w := ut.PerformRequest(h.Engine, "POST", "/api/demo/json",
		&ut.Body{Body: strings.NewReader(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"})

	resp := w.Result()
	if resp.StatusCode() != 413 {
		t.Fatalf("expected 413, got %d", resp.StatusCode())
	}
	if got := decode[echo.ErrorResponse](t, resp.Body()); got.Code != 413 {
		t.Fatalf("unexpected error body %+v", got)
	}
}

func TestRateLimit(t *testing.T) {
	h := newServer(t, func(cfg *config.ServerConfig) {
		cfg.RateLimit = config.RateLimitConfig{RPS: 0.001, Burst: 1}
	})
	if code := ut.PerformRequest(h.Engine, "GET", "/health", nil).Result().StatusCode(); code != 200 {
		t.Fatalf("first request: expected 200, got %d", code)
	}
	if code := ut.PerformRequest(h.Engine, "GET", "/health", nil).Result().StatusCode(); code != 429 {
		t.Fatalf("second request: expected 429, got %d", code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newServer(t, func(cfg *config.ServerConfig) {
		cfg.CORS.AllowOrigins = []string{"http://app.test"}
	})
	w := ut.PerformRequest(h.Engine, "OPTIONS", "/api/demo/json", nil,
		ut.Header{Key: "Origin", Value: "http://app.test"},
		ut.Header{Key: "Access-Control-Request-Method", Value: "POST"})

	resp := w.Result()
	if got := string(resp.Header.Peek("Access-Control-Allow-Origin")); got != "http://app.test" {
		t.Fatalf("expected allowed origin header, got %q (status %d)", got, resp.StatusCode())
	}
}

func TestMetricsCountEchoes(t *testing.T) {
	h := newServer(t, nil)
	ut.PerformRequest(h.Engine, "GET", "/api/demo/query?input_number=1&input_string=x", nil)
	ut.PerformRequest(h.Engine, "GET", "/api/demo/query?input_number=2&input_string=y", nil)

	resp := ut.PerformRequest(h.Engine, "GET", "/metrics", nil).Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode())
	}
	if !strings.Contains(string(resp.Body()), `formsend_echo_requests_total{method="GET-QueryString"} 2`) {
		t.Fatalf("expected echo counter in metrics output:\n%s", resp.Body())
	}
}

func TestOpenAPIDocument(t *testing.T) {
	doc, err := echo.Document(context.Background())
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	var got []string
	for _, r := range echo.Routes(doc) {
		got = append(got, r.Method+" "+r.Path)
	}
	want := []string{
		"POST /api/demo/form",
		"POST /api/demo/json",
		"GET /api/demo/query",
		"POST /api/demo/simple",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("routes mismatch (-want +got):\n%s", diff)
	}
	if !echo.AllowsMethod(doc, "get", "/api/demo/query") || echo.AllowsMethod(doc, "POST", "/api/demo/query") {
		t.Fatalf("unexpected method lookup result")
	}

	h := newServer(t, nil)
	resp := ut.PerformRequest(h.Engine, "GET", "/api/demo/openapi.json", nil).Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode())
	}
	if served := decode[map[string]any](t, resp.Body()); served["openapi"] != "3.0.3" {
		t.Fatalf("unexpected document version %v", served["openapi"])
	}
}
