package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	questionnaire "github.com/goliatone/go-questionnaire"
)

func newTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the question types a model may use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, kind := range questionnaire.NewRegistry().Types() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), kind); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
