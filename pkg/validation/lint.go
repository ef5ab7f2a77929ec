package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formsend/pkg/form"
)

// Issue is a problem found in a rule list. Validate still runs such rules;
// an issue only means the rule can never do what its author intended.
type Issue struct {
	Index   int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("rule %d: %s", i.Index, i.Message)
}

// Lint reports rules that always pass or always fail regardless of field
// state: empty or unsupported selectors, unknown types, and custom rules
// without a check.
func Lint(rules []Rule) []Issue {
	var issues []Issue
	for i, rule := range rules {
		if rule == nil {
			issues = append(issues, Issue{Index: i, Message: "rule is nil"})
			continue
		}
		target := strings.TrimSpace(rule.Target())
		switch {
		case target == "":
			issues = append(issues, Issue{Index: i, Message: "selector is empty"})
		case !form.ValidSelector(target):
			issues = append(issues, Issue{Index: i, Message: fmt.Sprintf("selector %q is not supported and matches nothing", target)})
		}

		switch r := rule.(type) {
		case Unknown:
			issues = append(issues, Issue{Index: i, Message: fmt.Sprintf("unknown rule type %q is ignored", r.Name)})
		case Custom:
			if r.Check == nil {
				issues = append(issues, Issue{Index: i, Message: "custom rule has no registered check"})
			}
		}
	}
	return issues
}
