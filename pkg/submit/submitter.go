package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"github.com/goliatone/go-formsend/pkg/form"
	"github.com/goliatone/go-formsend/pkg/notify"
	"github.com/goliatone/go-formsend/pkg/validation"
)

// Submitter gates requests behind field validation and reports progress
// through a notifier. One Submitter serves one document (page).
type Submitter struct {
	doc        validation.Locator
	httpClient *http.Client
	notifier   notify.Notifier
	header     http.Header
	maxBody    int64
}

// New constructs a Submitter reading field state from doc. Defaults: an HTTP
// client with DefaultTimeout and the Discard notifier.
func New(doc validation.Locator, options ...Option) *Submitter {
	s := &Submitter{
		doc:        doc,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		notifier:   notify.Discard,
		header: http.Header{
			"Accept":           {"application/json, text/javascript, */*; q=0.01"},
			"X-Requested-With": {"XMLHttpRequest"},
		},
		maxBody: DefaultMaxResponseBytes,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Submit validates rules against the document and, when they all pass,
// sends spec in the background.
//
// On validation failure a single aggregated notification is shown and the
// attempt ends Aborted: trigger is left untouched, nothing is sent and cb is
// not called. Otherwise trigger is disabled, a non-dismissible sending
// notification is shown and the request runs on its own goroutine. When it
// completes trigger is re-enabled exactly once, a success or failure
// notification replaces the sending one, and cb (when non-nil) receives the
// result.
//
// rules accepts anything validation.Normalize understands; other values count
// as no rules. Cancelling ctx does not abort an in-flight request.
func (s *Submitter) Submit(ctx context.Context, trigger form.Trigger, spec RequestSpec, rules any, cb Callback) *Attempt {
	attempt := newAttempt()
	attempt.transition(StateValidating)

	if errs := validation.Validate(s.doc, rules); len(errs) > 0 {
		s.notify(ctx, notify.Validation(errs))
		attempt.abort(errs)
		return attempt
	}

	if trigger != nil {
		trigger.SetDisabled(true)
	}
	s.notify(ctx, notify.Sending())
	attempt.transition(StateSending)

	reqCtx := context.WithoutCancel(ctx)
	go func() {
		defer attempt.finish()

		result := func() Result {
			defer release(trigger)
			return s.send(reqCtx, spec)
		}()

		if result.OK() {
			resp, _ := result.Response()
			s.notify(reqCtx, notify.Success(resp))
		} else {
			s.notify(reqCtx, notify.Failure(result.Message()))
		}
		attempt.resolve(result)
		if cb != nil {
			cb(result)
		}
	}()

	return attempt
}

// Send performs the request without validation or notifications and returns
// its result synchronously.
func (s *Submitter) Send(ctx context.Context, spec RequestSpec) Result {
	return s.send(ctx, spec)
}

func release(trigger form.Trigger) {
	if trigger != nil {
		trigger.SetDisabled(false)
	}
}

func (s *Submitter) notify(ctx context.Context, n notify.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		hlog.CtxDebugf(ctx, "formsend: notify %q failed: %v", n.Title, err)
	}
}

func (s *Submitter) send(ctx context.Context, spec RequestSpec) Result {
	if len(s.header) > 0 {
		merged := s.header.Clone()
		for key, values := range spec.Header {
			merged[key] = append([]string(nil), values...)
		}
		spec.Header = merged
	}

	req, err := NewRequest(ctx, spec)
	if err != nil {
		hlog.CtxWarnf(ctx, "formsend: build %s %s: %v", spec.method(), spec.URL, err)
		return Failed(&TransportError{Cause: err})
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		hlog.CtxWarnf(ctx, "formsend: %s %s: %v", req.Method, req.URL.Redacted(), err)
		return Failed(&TransportError{Cause: err})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody+1))
	if err == nil && int64(len(raw)) > s.maxBody {
		err = fmt.Errorf("submit: response exceeds %d bytes", s.maxBody)
	}
	if err != nil {
		hlog.CtxWarnf(ctx, "formsend: read response of %s %s: %v", req.Method, req.URL.Redacted(), err)
		return Failed(&TransportError{
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
			Message:    unreadMessage(resp),
			Cause:      err,
		})
	}
	body := decodeBody(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text := statusText(resp)
		terr := &TransportError{
			Message:    ResolveMessage(body, text),
			Status:     resp.StatusCode,
			StatusText: text,
			Body:       body,
		}
		hlog.CtxInfof(ctx, "formsend: %s %s answered %d: %s", req.Method, req.URL.Redacted(), resp.StatusCode, terr.Message)
		return Failed(terr)
	}

	return Succeeded(body)
}

// ResolveMessage picks the failure message: a non-empty string "message"
// field of a JSON object body, then statusText, then UnknownErrorMessage.
func ResolveMessage(body any, statusText string) string {
	if obj, ok := body.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return firstNonEmpty(statusText, UnknownErrorMessage)
}

// unreadMessage is the failure message when the body could not be read. A 2xx
// status text such as "OK" never serves as an error message.
func unreadMessage(resp *http.Response) string {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return UnknownErrorMessage
	}
	return firstNonEmpty(statusText(resp), UnknownErrorMessage)
}

// statusText returns the reason phrase sent by the server, falling back to
// the canonical text for the code.
func statusText(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func decodeBody(raw []byte) any {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
		return decoded
	}
	return trimmed
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// IsTransportError reports whether err is a *TransportError.
func IsTransportError(err error) bool {
	var terr *TransportError
	return errors.As(err, &terr)
}
