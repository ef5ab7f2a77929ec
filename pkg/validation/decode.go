package validation

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formsend/pkg/form"
)

// Spec is the declarative shape of a rule as found in YAML or JSON rule files.
// Check names a function registered with RegisterCheck and only matters for
// custom rules.
type Spec struct {
	Selector string `json:"selector" yaml:"selector"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Check    string `json:"check,omitempty" yaml:"check,omitempty"`
}

// Rule converts the spec into its typed variant. An empty type means
// required; unrecognised types become Unknown.
func (s Spec) Rule() Rule {
	selector := strings.TrimSpace(s.Selector)
	switch Kind(strings.ToLower(strings.TrimSpace(s.Type))) {
	case "", KindRequired:
		return Required{Selector: selector, Label: s.Label}
	case KindFile:
		return File{Selector: selector, Label: s.Label}
	case KindRadio:
		return Radio{Selector: selector, Label: s.Label}
	case KindCustom:
		check, _ := LookupCheck(s.Check)
		return Custom{Selector: selector, Label: s.Label, Check: check}
	default:
		return Unknown{Selector: selector, Label: s.Label, Name: s.Type}
	}
}

// Decode reads a loosely typed rule list (for example the result of decoding
// YAML or JSON into `any`). It never fails: non-sequences decode to nil and
// entries that are not maps are skipped.
func Decode(raw any) []Rule {
	return Normalize(raw)
}

// LoadYAML parses a YAML rule list. Only syntax errors are reported; a
// document that is not a sequence yields no rules.
func LoadYAML(data []byte) ([]Rule, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("validation: parse rules: %w", err)
	}
	return Decode(raw), nil
}

// LoadYAMLSets parses a YAML mapping of named rule lists, for example one
// list per submission button. Values that are not sequences yield empty sets.
func LoadYAMLSets(data []byte) (map[string][]Rule, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("validation: parse rule sets: %w", err)
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return map[string][]Rule{}, nil
	}
	out := make(map[string][]Rule, len(doc))
	for name, value := range doc {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		out[key] = Decode(value)
	}
	return out, nil
}

func ruleFromMap(m map[string]any) (Rule, bool) {
	if m == nil {
		return nil, false
	}
	spec := Spec{
		Selector: stringField(m, "selector"),
		Type:     stringField(m, "type"),
		Label:    stringField(m, "label"),
		Check:    stringField(m, "check"),
	}
	rule := spec.Rule()

	// Maps built in Go may carry the check function itself.
	if custom, ok := rule.(Custom); ok {
		switch fn := m["custom"].(type) {
		case CheckFunc:
			custom.Check = fn
		case func(form.Selection) string:
			custom.Check = fn
		}
		rule = custom
	}
	return rule, true
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
