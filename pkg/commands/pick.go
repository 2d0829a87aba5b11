package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thought/pkg/runner/pick"
)

func addPick(topLevel *cobra.Command) {
	size := 10

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "choose a day from a searchable list and print it",
		Example: `
thought pick
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()
			p := pick.Pick{
				Options: s.Options,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
				Size:    size,
			}
			return p.Do(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&size, "size", size, "Number of days shown at once.")

	topLevel.AddCommand(cmd)
}
