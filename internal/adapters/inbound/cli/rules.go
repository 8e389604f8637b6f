package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/stacklint/stacklint/internal/application"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List registered lint rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(application.DefaultRegistry().Descriptors())
		},
	}
}
