package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-questionnaire/pkg/formvalues"
	"github.com/goliatone/go-questionnaire/pkg/messages"
	"github.com/goliatone/go-questionnaire/pkg/question"
)

type validateOptions struct {
	model    string
	answers  string
	sanitize bool
	rules    []string
}

type validateOutput struct {
	Valid      bool                                  `json:"valid"`
	Results    []*question.QuestionValidationResult `json:"results"`
	Messages   map[string][]string                   `json:"messages,omitempty"`
	FormValues map[string]string                     `json:"formValues"`
}

func newValidateCommand(flags *globalFlags) *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Apply answers to a model and print the validation report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, flags, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "question model (.json, .yaml)")
	cmd.Flags().StringVarP(&opts.answers, "answers", "a", "", "answers document keyed by question id")
	cmd.Flags().BoolVar(&opts.sanitize, "sanitize", false, "strip markup from form values")
	cmd.Flags().StringSliceVar(&opts.rules, "rule", nil, "only evaluate these rule kinds")
	return cmd
}

func runValidate(cmd *cobra.Command, flags *globalFlags, opts *validateOptions) error {
	logger, err := flags.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	form, err := loadForm(opts.model, logger)
	if err != nil {
		return err
	}
	if opts.answers != "" {
		responses, err := loadResponses(opts.answers)
		if err != nil {
			return err
		}
		if err := form.Apply(responses); err != nil {
			return err
		}
	}

	var validateOpts []question.ValidateOption
	if len(opts.rules) > 0 {
		kinds := make([]question.RuleKind, 0, len(opts.rules))
		for _, rule := range opts.rules {
			kinds = append(kinds, question.RuleKind(rule))
		}
		validateOpts = append(validateOpts, question.OnlyRules(kinds...))
	}
	report := form.Validate(validateOpts...)

	formatter := messages.New()
	out := validateOutput{
		Valid:      report.IsValid(),
		Results:    report.Results,
		FormValues: form.FormValues(),
	}
	for _, result := range report.Invalid() {
		lines, err := formatter.Result(result)
		if err != nil {
			return err
		}
		if out.Messages == nil {
			out.Messages = make(map[string][]string)
		}
		out.Messages[result.QuestionID] = lines
	}
	if opts.sanitize {
		out.FormValues = formvalues.Sanitize(out.FormValues)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	if !out.Valid {
		return ErrInvalidAnswers
	}
	return nil
}
