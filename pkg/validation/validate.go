package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formsend/pkg/form"
)

// Locator resolves selectors against the current field state. *form.Document
// satisfies it.
type Locator interface {
	Find(selector string) form.Selection
	CheckedValue(name string) (string, bool)
}

// EmptyMessage is reported by Required and File rules.
func EmptyMessage(label string) string {
	return fmt.Sprintf("«%s» must not be empty", label)
}

// UnselectedMessage is reported by Radio rules.
func UnselectedMessage(label string) string {
	return fmt.Sprintf("«%s» must be selected", label)
}

// Validate evaluates rules in order against doc and returns every error
// message produced, in rule order, without deduplication. rules may be any
// value; anything Normalize cannot read as a rule sequence counts as no rules.
func Validate(doc Locator, rules any) []string {
	var errs []string
	for _, rule := range Normalize(rules) {
		if msg := Evaluate(doc, rule); msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs
}

// Evaluate runs a single rule and returns its error message, or "" when the
// rule is satisfied.
func Evaluate(doc Locator, rule Rule) string {
	if rule == nil {
		return ""
	}
	var sel form.Selection
	if doc != nil {
		sel = doc.Find(rule.Target())
	}

	switch r := rule.(type) {
	case Required:
		if v := sel.Val(); v == nil || strings.TrimSpace(*v) == "" {
			return EmptyMessage(r.DisplayLabel())
		}
	case File:
		if len(sel.Files()) == 0 {
			return EmptyMessage(r.DisplayLabel())
		}
	case Radio:
		if !radioChecked(doc, sel) {
			return UnselectedMessage(r.DisplayLabel())
		}
	case Custom:
		if r.Check != nil {
			return r.Check(sel)
		}
	}
	return ""
}

func radioChecked(doc Locator, sel form.Selection) bool {
	if doc == nil {
		return false
	}
	value, ok := doc.CheckedValue(sel.Attr("name"))
	return ok && value != ""
}

// Normalize turns loosely typed rule input into a rule list. It accepts
// []Rule, []Spec, []any (holding Rule values, Specs or declarative maps) and
// []map[string]any. Any other value, including a lone Rule, yields nil.
// Entries that cannot be read as rules are skipped.
func Normalize(rules any) []Rule {
	switch v := rules.(type) {
	case []Rule:
		out := make([]Rule, 0, len(v))
		for _, r := range v {
			if r != nil {
				out = append(out, r)
			}
		}
		return out
	case []any:
		out := make([]Rule, 0, len(v))
		for _, item := range v {
			if r, ok := ruleFrom(item); ok {
				out = append(out, r)
			}
		}
		return out
	case []Spec:
		out := make([]Rule, 0, len(v))
		for _, item := range v {
			out = append(out, item.Rule())
		}
		return out
	case []map[string]any:
		out := make([]Rule, 0, len(v))
		for _, item := range v {
			if r, ok := ruleFromMap(item); ok {
				out = append(out, r)
			}
		}
		return out
	default:
		return nil
	}
}

func ruleFrom(item any) (Rule, bool) {
	switch v := item.(type) {
	case Rule:
		return v, true
	case map[string]any:
		return ruleFromMap(v)
	case Spec:
		return v.Rule(), true
	default:
		return nil, false
	}
}
