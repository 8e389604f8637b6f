package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stacklint/stacklint/internal/adapters/outbound/conditions"
	"github.com/stacklint/stacklint/internal/adapters/outbound/config"
	"github.com/stacklint/stacklint/internal/adapters/outbound/gitinfo"
	"github.com/stacklint/stacklint/internal/adapters/outbound/parser"
	"github.com/stacklint/stacklint/internal/adapters/outbound/tui"
	"github.com/stacklint/stacklint/internal/application"
)

func newLintCmd() *cobra.Command {
	var (
		format  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "lint <template>",
		Short: "Check a template against provider resource limits",
		Long:  "Run all registered limit rules against a CloudFormation template (YAML or JSON). Exits non-zero when any violation is found.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if verbose {
				dev, err := zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("creating logger: %w", err)
				}
				defer func() { _ = dev.Sync() }()
				logger = dev
			}

			svc := application.NewLintService(
				parser.New(),
				conditions.New(),
				application.DefaultRegistry(),
				config.New(),
				gitinfo.New(),
				logger,
			)

			result, err := svc.Lint(args[0])
			if err != nil {
				return fmt.Errorf("lint failed: %w", err)
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			case "pretty":
				fmt.Fprintln(cmd.OutOrStdout(), tui.RenderResult(result))
			default:
				return fmt.Errorf("unknown format %q (want pretty or json)", format)
			}

			if result.Status == application.StatusFail {
				return fmt.Errorf("%d violation(s) found", len(result.Violations))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty or json")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	return cmd
}
