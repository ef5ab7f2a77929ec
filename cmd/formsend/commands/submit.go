package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formsend/pkg/demo"
	"github.com/goliatone/go-formsend/pkg/form"
	"github.com/goliatone/go-formsend/pkg/notify"
	"github.com/goliatone/go-formsend/pkg/prompt"
	"github.com/goliatone/go-formsend/pkg/submit"
	"github.com/goliatone/go-formsend/pkg/validation"
)

var errValidation = errors.New("submission stopped by validation")

type submitFlags struct {
	mode      string
	baseURL   string
	rulesFile string
	noPrompt  bool
	text      string
	number    string
	gender    string
	file      string
}

func submitCmd() *cobra.Command {
	var flags submitFlags
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Fill the demo form and send it to the echo endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runSubmit(ctx, cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.mode, "mode", "", "json, form, simple or query (asked when empty)")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "echo server base URL (overrides client.base_url)")
	cmd.Flags().StringVar(&flags.rulesFile, "rules", "", "YAML file mapping mode names to rule lists")
	cmd.Flags().BoolVar(&flags.noPrompt, "no-prompt", false, "take field values from flags instead of asking")
	cmd.Flags().StringVar(&flags.text, "text", "", "input_string value (with --no-prompt)")
	cmd.Flags().StringVar(&flags.number, "number", "", "input_number value (with --no-prompt)")
	cmd.Flags().StringVar(&flags.gender, "gender", "", "gender value (with --no-prompt)")
	cmd.Flags().StringVar(&flags.file, "file", "", "file to upload in form mode (with --no-prompt)")
	return cmd
}

func runSubmit(ctx context.Context, cmd *cobra.Command, flags submitFlags) error {
	out := cmd.OutOrStdout()
	filler := prompt.NewFiller(prompt.NewSurveyDriver(out))

	mode, err := resolveMode(ctx, filler, flags)
	if err != nil {
		return err
	}

	doc := demo.NewDocument()
	if flags.noPrompt {
		if err := fillFromFlags(doc, mode, flags); err != nil {
			return err
		}
	} else if err := filler.Fill(ctx, doc, mode); err != nil {
		return err
	}

	rules, err := rulesFor(mode, flags.rulesFile)
	if err != nil {
		return err
	}

	baseURL := cfg.Client.BaseURL
	if flags.baseURL != "" {
		baseURL = flags.baseURL
	}
	spec, err := mode.Request(baseURL, doc)
	if err != nil {
		return err
	}

	submitter := submit.New(doc,
		submit.WithNotifier(notify.NewTerminal(out)),
		submit.WithTimeout(cfg.Client.Timeout),
	)
	attempt := submitter.Submit(ctx, &form.Button{Label: mode.Describe()}, spec, rules, nil)

	result, err := attempt.Wait(ctx)
	switch {
	case errors.Is(err, submit.ErrAborted):
		return errValidation
	case err != nil:
		return err
	case !result.OK():
		return fmt.Errorf("request failed: %s", result.Message())
	}
	return nil
}

func resolveMode(ctx context.Context, filler *prompt.Filler, flags submitFlags) (demo.Mode, error) {
	if strings.TrimSpace(flags.mode) != "" {
		return demo.ParseMode(flags.mode)
	}
	if flags.noPrompt {
		return "", errors.New("--mode is required with --no-prompt")
	}
	return filler.ChooseMode(ctx)
}

func fillFromFlags(doc *form.Document, mode demo.Mode, flags submitFlags) error {
	doc.Set(demo.SelectorText, flags.text)
	doc.Set(demo.SelectorNumber, strings.TrimSpace(flags.number))
	if flags.gender != "" && !doc.Check("gender", flags.gender) {
		return fmt.Errorf("unknown gender %q (want one of %s)", flags.gender, strings.Join(demo.Genders, ", "))
	}
	if mode == demo.ModeForm && flags.file != "" {
		data, err := os.ReadFile(flags.file)
		if err != nil {
			return fmt.Errorf("read %s: %w", flags.file, err)
		}
		doc.Attach(demo.SelectorFile, form.NewFile(flags.file, data))
	}
	return nil
}

func rulesFor(mode demo.Mode, path string) ([]validation.Rule, error) {
	if path == "" {
		return mode.Rules(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	sets, err := demo.LoadRules(raw)
	if err != nil {
		return nil, err
	}
	if rules, ok := sets[mode]; ok {
		return rules, nil
	}
	return mode.Rules(), nil
}
