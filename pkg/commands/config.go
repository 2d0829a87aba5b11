package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thought/pkg/commands/options"
	"tableflip.dev/thought/pkg/printers"
	"tableflip.dev/thought/pkg/store"
)

func addConfig(topLevel *cobra.Command) {
	oo := &options.OutputOptions{Output: printers.FormatYAML}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration",
		Example: `
thought config
THOUGHT_TIMEZONE=America/Chicago thought config -o json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			format := oo.Format()
			if format == printers.FormatText {
				format = printers.FormatYAML
			}
			return printers.Structured(cmd.OutOrStdout(), format, cfg)
		},
	}

	cmd.Flags().StringVarP(&oo.Output, "output", "o", printers.FormatYAML, "Output format. One of 'yaml' or 'json'.")

	topLevel.AddCommand(cmd)
}
