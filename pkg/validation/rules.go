package validation

import (
	"strings"

	"github.com/goliatone/go-formsend/pkg/form"
)

// Kind names a rule variant as it appears in declarative rule lists.
type Kind string

const (
	KindRequired Kind = "required"
	KindFile     Kind = "file"
	KindRadio    Kind = "radio"
	KindCustom   Kind = "custom"
)

// CheckFunc inspects a located field and returns a non-empty message when the
// field is invalid.
type CheckFunc func(form.Selection) string

// Rule is one validation check against a field or field group. The set of
// implementations is closed: Required, File, Radio, Custom and Unknown.
type Rule interface {
	Kind() Kind
	Target() string
	DisplayLabel() string
	isRule()
}

// Required fails when the located field's trimmed value is empty or undefined.
type Required struct {
	Selector string
	Label    string
}

// File fails when the located file input holds no attachments.
type File struct {
	Selector string
	Label    string
}

// Radio fails when no input sharing the located field's name is checked.
type Radio struct {
	Selector string
	Label    string
}

// Custom runs Check against the located field. The returned message is used
// verbatim. A Custom without Check never fails.
type Custom struct {
	Selector string
	Label    string
	Check    CheckFunc
}

// Unknown carries a kind this package does not recognise. It never fails.
type Unknown struct {
	Selector string
	Label    string
	Name     string
}

func (Required) Kind() Kind { return KindRequired }
func (File) Kind() Kind     { return KindFile }
func (Radio) Kind() Kind    { return KindRadio }
func (Custom) Kind() Kind   { return KindCustom }
func (u Unknown) Kind() Kind {
	return Kind(u.Name)
}

func (r Required) Target() string { return r.Selector }
func (r File) Target() string     { return r.Selector }
func (r Radio) Target() string    { return r.Selector }
func (r Custom) Target() string   { return r.Selector }
func (r Unknown) Target() string  { return r.Selector }

func (r Required) DisplayLabel() string { return labelOr(r.Label, r.Selector) }
func (r File) DisplayLabel() string     { return labelOr(r.Label, r.Selector) }
func (r Radio) DisplayLabel() string    { return labelOr(r.Label, r.Selector) }
func (r Custom) DisplayLabel() string   { return labelOr(r.Label, r.Selector) }
func (r Unknown) DisplayLabel() string  { return labelOr(r.Label, r.Selector) }

func (Required) isRule() {}
func (File) isRule()     {}
func (Radio) isRule()    {}
func (Custom) isRule()   {}
func (Unknown) isRule()  {}

func labelOr(label, selector string) string {
	if strings.TrimSpace(label) != "" {
		return label
	}
	return selector
}
