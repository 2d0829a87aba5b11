package commands

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/thought/pkg/catalog"
	"tableflip.dev/thought/pkg/logging"
	"tableflip.dev/thought/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(thought completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(thought completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(cmd.OutOrStdout())
		},
	}

	topLevel.AddCommand(cmd)
}

// dayCompletions offers the catalog's day numbers.
func dayCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := store.LoadConfig(cmd.Flags())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	src, err := store.Open(cfg.Source, cfg.Timeout)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cat, err := catalog.Load(context.Background(), src, logging.Discard())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return matchDays(cat, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func matchDays(cat *catalog.Catalog, prefix string) []string {
	var days []string
	for _, r := range cat.Records() {
		d := strconv.Itoa(r.Day)
		if strings.HasPrefix(d, prefix) {
			days = append(days, d+"\t"+r.Title)
		}
	}
	return days
}
