package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thought/pkg/commands/options"
	"tableflip.dev/thought/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	calendar := false

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "index"},
		Short:   "list the available days",
		Example: `
thought list
thought list --calendar
thought list -o yaml
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return oo.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			l := list.List{
				Options:  s.Options,
				Out:      cmd.OutOrStdout(),
				Output:   oo.Format(),
				Calendar: calendar,
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&calendar, "calendar", false, "Print this year's calendar, highlighting days with their own thought.")

	topLevel.AddCommand(cmd)
}
