package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Level classifies a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a user-facing message. HTML holds a sanitised body that may
// contain <br> and <pre>. A notification that is not Dismissible must stay on
// screen until replaced (no outside click, no escape key).
type Notification struct {
	Level       Level
	Title       string
	HTML        string
	Width       int
	Loading     bool
	Dismissible bool
}

// Notifier displays notifications. Each call replaces whatever the previous
// call showed.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification) error

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(context.Context, Notification) error { return nil })

// Validation aggregates validation errors into one notification, one error per
// line.
func Validation(errs []string) Notification {
	return Notification{
		Level:       LevelError,
		Title:       "Validation Error",
		HTML:        render("validation", map[string]any{"errors": errs}),
		Width:       600,
		Dismissible: true,
	}
}

// Sending is shown while a request is in flight.
func Sending() Notification {
	return Notification{
		Level:   LevelInfo,
		Title:   "Sending data...",
		Width:   500,
		Loading: true,
	}
}

// Success reports a completed request together with the pretty-printed
// response payload.
func Success(response any) Notification {
	return Notification{
		Level:       LevelSuccess,
		Title:       "Success",
		HTML:        render("success", map[string]any{"response": PrettyJSON(response)}),
		Width:       600,
		Dismissible: true,
	}
}

// Failure reports a failed request.
func Failure(message string) Notification {
	return Notification{
		Level:       LevelError,
		Title:       "Error",
		HTML:        render("failure", map[string]any{"message": message}),
		Width:       600,
		Dismissible: true,
	}
}

// PrettyJSON renders v as JSON indented with two spaces. Values that cannot be
// encoded fall back to their fmt representation.
func PrettyJSON(v any) string {
	if raw, ok := v.(json.RawMessage); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			v = decoded
		}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimRight(buf.String(), "\n")
}
