package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thought/pkg/commands/options"
	"tableflip.dev/thought/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "show [day]",
		Short: "print a thought",
		Long: `Print today's thought, or the one for a day number or calendar date.

A day that is not in the catalog falls back to today's thought.`,
		Example: `
thought show
thought show 42
thought show --date 2024-12-25 -o json
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: dayCompletions,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return oo.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := linkArg(args)
			if err != nil {
				return err
			}
			s, err := loadSession(cmd, false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			sh := show.Show{
				Options: s.Options,
				Link:    link,
				Date:    do.Date,
				Output:  oo.Format(),
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(sh.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddDateArg(cmd, do)

	topLevel.AddCommand(cmd)
}
