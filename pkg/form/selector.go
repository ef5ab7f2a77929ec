package form

import "strings"

type selector struct {
	id          string
	name        string
	checkedOnly bool
}

var tagNames = map[string]struct{}{
	"":         {},
	"input":    {},
	"select":   {},
	"textarea": {},
}

// parseSelector understands `#id`, `[tag][name='x']`, an optional `:checked`
// suffix on the attribute form, and bare names.
func parseSelector(raw string) (selector, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return selector{}, false
	}

	if strings.HasPrefix(s, "#") {
		id := strings.TrimPrefix(s, "#")
		if id == "" || strings.ContainsAny(id, " []:'\"") {
			return selector{}, false
		}
		return selector{id: id}, true
	}

	open := strings.Index(s, "[")
	if open < 0 {
		if strings.ContainsAny(s, " #:'\"]") {
			return selector{}, false
		}
		return selector{name: s}, true
	}

	if _, ok := tagNames[strings.ToLower(s[:open])]; !ok {
		return selector{}, false
	}
	closing := strings.Index(s, "]")
	if closing < open {
		return selector{}, false
	}

	attr := s[open+1 : closing]
	key, value, ok := strings.Cut(attr, "=")
	if !ok || strings.TrimSpace(key) != "name" {
		return selector{}, false
	}
	value = strings.Trim(strings.TrimSpace(value), `'"`)
	if value == "" {
		return selector{}, false
	}

	sel := selector{name: value}
	switch rest := s[closing+1:]; rest {
	case "":
	case ":checked":
		sel.checkedOnly = true
	default:
		return selector{}, false
	}
	return sel, true
}

func (s selector) matches(el Element) bool {
	if s.id != "" {
		return el.ID == s.id
	}
	if el.Name != s.name {
		return false
	}
	if s.checkedOnly {
		return el.Checked
	}
	return true
}

// ValidSelector reports whether raw uses a selector form Find understands.
func ValidSelector(raw string) bool {
	_, ok := parseSelector(raw)
	return ok
}
