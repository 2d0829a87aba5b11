package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thought/pkg/tui/reader"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui [day]",
		Short: "open the text-based reader",
		Example: `
thought ui
thought ui 120
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: dayCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := linkArg(args)
			if err != nil {
				return err
			}
			s, err := loadSession(cmd, true)
			if err != nil {
				return err
			}
			defer s.Close()
			return reader.Run(cmd.Context(), s.Options, link)
		},
	}

	topLevel.AddCommand(cmd)
}
