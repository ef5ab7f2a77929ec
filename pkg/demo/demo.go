// Package demo describes the demo page: its fields, the four submit buttons
// and the validation rules each button applies before talking to the echo
// endpoints.
package demo

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formsend/pkg/form"
	"github.com/goliatone/go-formsend/pkg/submit"
	"github.com/goliatone/go-formsend/pkg/validation"
)

// Field selectors of the demo page.
const (
	SelectorText   = "#input_string"
	SelectorNumber = "#input_number"
	SelectorGender = "input[name='gender']"
	SelectorFile   = "#input_file"
)

// Field labels shown in validation messages.
const (
	LabelText   = "Input Text"
	LabelNumber = "Input Number"
	LabelGender = "Gender"
	LabelFile   = "File Upload"
)

// Genders lists the radio values of the gender group.
var Genders = []string{"male", "female"}

// Mode is one submit button of the page.
type Mode string

const (
	ModeJSON   Mode = "json"
	ModeForm   Mode = "form"
	ModeSimple Mode = "simple"
	ModeQuery  Mode = "query"
)

// Modes returns every button in page order.
func Modes() []Mode {
	return []Mode{ModeJSON, ModeForm, ModeSimple, ModeQuery}
}

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("demo: unknown mode %q", s)
}

// Describe returns the button caption.
func (m Mode) Describe() string {
	switch m {
	case ModeJSON:
		return "Send JSON"
	case ModeForm:
		return "Send FormData (with file)"
	case ModeSimple:
		return "Send x-www-form-urlencoded"
	case ModeQuery:
		return "Send QueryString (GET)"
	default:
		return string(m)
	}
}

// NewDocument builds the page's field state with every field blank and no
// gender selected.
func NewDocument() *form.Document {
	doc := form.NewDocument(
		form.Element{ID: "input_string", Name: "input_string", Type: "text", Value: form.Text("")},
		form.Element{ID: "input_number", Name: "input_number", Type: "number", Value: form.Text("")},
	)
	for _, g := range Genders {
		doc.Add(form.Element{ID: "gender_" + g, Name: "gender", Type: "radio", Value: form.Text(g)})
	}
	doc.Add(form.Element{ID: "input_file", Name: "input_file", Type: "file"})
	return doc
}

// Rules returns the checks a button runs before sending.
func (m Mode) Rules() []validation.Rule {
	text := validation.Required{Selector: SelectorText, Label: LabelText}
	number := validation.Required{Selector: SelectorNumber, Label: LabelNumber}
	gender := validation.Radio{Selector: SelectorGender, Label: LabelGender}

	switch m {
	case ModeJSON, ModeSimple:
		return []validation.Rule{text, number, gender}
	case ModeForm:
		return []validation.Rule{text, number, gender, validation.File{Selector: SelectorFile, Label: LabelFile}}
	case ModeQuery:
		return []validation.Rule{number, text}
	default:
		return nil
	}
}

// Request builds the request a button sends for the current field state.
func (m Mode) Request(baseURL string, doc *form.Document) (submit.RequestSpec, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")

	switch m {
	case ModeJSON:
		return submit.RequestSpec{
			URL:      base + "/api/demo/json",
			Method:   submit.MethodPost,
			Encoding: submit.EncodingJSON,
			Payload:  submit.JSONFromValues(doc.Values(), "input_number"),
		}, nil
	case ModeForm:
		return submit.RequestSpec{
			URL:      base + "/api/demo/form",
			Method:   submit.MethodPost,
			Encoding: submit.EncodingMultipart,
			Payload:  submit.MultipartFromDocument(doc),
		}, nil
	case ModeSimple:
		return submit.RequestSpec{
			URL:      base + "/api/demo/simple",
			Method:   submit.MethodPost,
			Encoding: submit.EncodingURLEncoded,
			Payload:  submit.FormFromDocument(doc),
		}, nil
	case ModeQuery:
		values := doc.Values()
		target, err := submit.QueryURL(base+"/api/demo/query", map[string][]string{
			"input_number": firstOf(values["input_number"]),
			"input_string": firstOf(values["input_string"]),
		})
		if err != nil {
			return submit.RequestSpec{}, fmt.Errorf("demo: build query url: %w", err)
		}
		return submit.RequestSpec{URL: target, Method: submit.MethodGet}, nil
	default:
		return submit.RequestSpec{}, fmt.Errorf("demo: unknown mode %q", string(m))
	}
}

func firstOf(values []string) []string {
	if len(values) == 0 {
		return []string{""}
	}
	return values[:1]
}

// LoadRules parses a YAML mapping of mode name to rule list. Unknown mode
// names are rejected.
func LoadRules(data []byte) (map[Mode][]validation.Rule, error) {
	sets, err := validation.LoadYAMLSets(data)
	if err != nil {
		return nil, err
	}
	out := make(map[Mode][]validation.Rule, len(sets))
	for name, rules := range sets {
		mode, err := ParseMode(name)
		if err != nil {
			return nil, err
		}
		out[mode] = rules
	}
	return out, nil
}
