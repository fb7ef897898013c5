package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-questionnaire/pkg/formvalues"
	"github.com/goliatone/go-questionnaire/pkg/prompt"
)

type promptOptions struct {
	model       string
	answers     string
	maxAttempts int
}

func newPromptCommand(flags *globalFlags) *cobra.Command {
	opts := &promptOptions{}
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Ask the questions of a model interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrompt(cmd, flags, opts, prompt.NewSurveyDriver(cmd.OutOrStdout()))
		},
	}
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "question model (.json, .yaml)")
	cmd.Flags().StringVarP(&opts.answers, "answers", "a", "", "answers used as defaults")
	cmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", 3, "attempts per question before giving up")
	return cmd
}

func runPrompt(cmd *cobra.Command, flags *globalFlags, opts *promptOptions, driver prompt.Driver) error {
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

	runner := prompt.NewRunner(
		prompt.WithDriver(driver),
		prompt.WithMaxAttempts(opts.maxAttempts),
		prompt.WithLogger(logger),
	)
	if err := runner.Run(cmd.Context(), form.Questions()...); err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(formvalues.Sanitize(form.FormValues()))
}
