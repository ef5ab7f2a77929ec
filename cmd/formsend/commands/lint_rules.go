package commands

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formsend/pkg/demo"
	"github.com/goliatone/go-formsend/pkg/validation"
)

type violation struct {
	file     string
	location string
	message  string
}

func lintRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint-rules <file>...",
		Short: "Report rules that can never behave as intended",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var violations []violation
			for _, path := range args {
				linted, err := lintRulesFile(path)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				violations = append(violations, linted...)
			}
			if len(violations) == 0 {
				return nil
			}

			sort.Slice(violations, func(i, j int) bool {
				if violations[i].file == violations[j].file {
					return violations[i].location < violations[j].location
				}
				return violations[i].file < violations[j].file
			})
			for _, v := range violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s -> %s\n", v.file, v.location, v.message)
			}
			return errors.New("rule files contain problems")
		},
	}
}

func lintRulesFile(path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	sets, err := demo.LoadRules(raw)
	if err != nil {
		return nil, err
	}

	var result []violation
	for mode, rules := range sets {
		for _, issue := range validation.Lint(rules) {
			result = append(result, violation{
				file:     path,
				location: fmt.Sprintf("%s[%d]", mode, issue.Index),
				message:  issue.Message,
			})
		}
	}
	return result, nil
}
