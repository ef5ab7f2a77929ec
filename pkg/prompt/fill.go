package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-formsend/pkg/demo"
	"github.com/goliatone/go-formsend/pkg/form"
)

// noGender is offered so the user can leave the radio group unselected.
const noGender = "(none)"

// Option configures a Filler.
type Option func(*Filler)

// WithReadFile replaces os.ReadFile when attaching files.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(f *Filler) {
		if fn != nil {
			f.readFile = fn
		}
	}
}

// Filler asks for the demo page fields and writes the answers into a
// form.Document. Blank answers are kept blank so validation can report them.
type Filler struct {
	driver   Driver
	readFile func(string) ([]byte, error)
}

// NewFiller builds a Filler on top of driver.
func NewFiller(driver Driver, options ...Option) *Filler {
	f := &Filler{driver: driver, readFile: os.ReadFile}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// ChooseMode asks which submit button to press.
func (f *Filler) ChooseMode(ctx context.Context) (demo.Mode, error) {
	modes := demo.Modes()
	options := make([]string, len(modes))
	for i, m := range modes {
		options[i] = m.Describe()
	}
	idx, err := f.driver.Select(ctx, SelectConfig{Message: "Send as", Options: options})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(modes) {
		return "", fmt.Errorf("prompt: invalid selection %d", idx)
	}
	return modes[idx], nil
}

// Fill prompts for every field the mode sends. The file field is only asked
// for multipart submissions.
func (f *Filler) Fill(ctx context.Context, doc *form.Document, mode demo.Mode) error {
	text, err := f.driver.Input(ctx, InputConfig{
		Message: demo.LabelText,
		Default: current(doc, demo.SelectorText),
	})
	if err != nil {
		return err
	}
	doc.Set(demo.SelectorText, text)

	number, err := f.driver.Input(ctx, InputConfig{
		Message:   demo.LabelNumber,
		Default:   current(doc, demo.SelectorNumber),
		Help:      "Whole number; leave blank to see the validation message",
		Validator: blankOrDigits,
	})
	if err != nil {
		return err
	}
	doc.Set(demo.SelectorNumber, strings.TrimSpace(number))

	if mode == demo.ModeQuery {
		return nil
	}

	options := append(append([]string(nil), demo.Genders...), noGender)
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      demo.LabelGender,
		Options:      options,
		DefaultIndex: len(options) - 1,
	})
	if err != nil {
		return err
	}
	if idx >= 0 && idx < len(demo.Genders) {
		doc.Check("gender", demo.Genders[idx])
	} else {
		doc.Check("gender", "")
	}

	if mode != demo.ModeForm {
		return nil
	}

	path, err := f.driver.Input(ctx, InputConfig{
		Message: demo.LabelFile,
		Help:    "Path of the file to upload; leave blank for none",
	})
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		doc.Attach(demo.SelectorFile)
		return nil
	}
	file, err := f.loadFile(path)
	if err != nil {
		return err
	}
	doc.Attach(demo.SelectorFile, file)
	return nil
}

func (f *Filler) loadFile(path string) (form.File, error) {
	data, err := f.readFile(path)
	if err != nil {
		return form.File{}, fmt.Errorf("prompt: read %s: %w", path, err)
	}
	return form.NewFile(path, data), nil
}

func current(doc *form.Document, selector string) string {
	if v := doc.Find(selector).Val(); v != nil {
		return *v
	}
	return ""
}

var errNotNumber = errors.New("enter a whole number")

func blankOrDigits(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for i, r := range s {
		if r == '-' && i == 0 && len(s) > 1 {
			continue
		}
		if r < '0' || r > '9' {
			return errNotNumber
		}
	}
	return nil
}
