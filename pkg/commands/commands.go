package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/thought/pkg/commands/options"
	"tableflip.dev/thought/pkg/runner/show"
	"tableflip.dev/thought/pkg/tui/reader"
)

func New() *cobra.Command {
	global := &options.GlobalOptions{}

	cmd := &cobra.Command{
		Use:   "thought [day]",
		Short: base.Wrap80("A thought for the day on the command line."),
		Long: base.Wrap80("Shows the daily devotional thought chosen for today's date. " +
			"The day of the year is mapped onto the available days, wrapping around " +
			"when the year is longer than the content. On a terminal the interactive " +
			"reader opens; otherwise the thought is printed."),
		Example: `
thought
thought 42
thought show --date 2024-12-25
thought list --calendar
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: dayCompletions,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := linkArg(args)
			if err != nil {
				return err
			}
			if interactive() {
				s, err := loadSession(cmd, true)
				if err != nil {
					return err
				}
				defer s.Close()
				return reader.Run(cmd.Context(), s.Options, link)
			}

			s, err := loadSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()
			sh := show.Show{
				Options: s.Options,
				Link:    link,
				Out:     cmd.OutOrStdout(),
			}
			return sh.Do(cmd.Context())
		},
	}

	options.AddGlobalArgs(cmd, global)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addShow(topLevel)
	addList(topLevel)
	addPick(topLevel)
	addMCP(topLevel)
	addConfig(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// interactive reports whether both ends of the process are a terminal.
func interactive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
