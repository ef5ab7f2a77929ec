package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Theme prefixes terminal output per level.
type Theme struct {
	InfoPrefix    string
	SuccessPrefix string
	ErrorPrefix   string
}

// DefaultTheme is used when Terminal.Theme is empty.
var DefaultTheme = Theme{
	InfoPrefix:    "[..]",
	SuccessPrefix: "[ok]",
	ErrorPrefix:   "[!!]",
}

// Terminal writes notifications as plain text.
type Terminal struct {
	Out   io.Writer
	Theme Theme

	mu sync.Mutex
}

// NewTerminal returns a terminal notifier writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{Out: out, Theme: DefaultTheme}
}

// Notify implements Notifier.
func (t *Terminal) Notify(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t == nil || t.Out == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	b.WriteString(t.prefix(n.Level))
	b.WriteString(" ")
	b.WriteString(n.Title)
	if n.Loading {
		b.WriteString(" (please wait)")
	}
	b.WriteString("\n")
	if body := PlainText(n.HTML); body != "" {
		for _, line := range strings.Split(body, "\n") {
			b.WriteString("    ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	_, err := fmt.Fprint(t.Out, b.String())
	return err
}

func (t *Terminal) prefix(level Level) string {
	theme := t.Theme
	if theme == (Theme{}) {
		theme = DefaultTheme
	}
	switch level {
	case LevelSuccess:
		return theme.SuccessPrefix
	case LevelError:
		return theme.ErrorPrefix
	default:
		return theme.InfoPrefix
	}
}
