package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thought/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch a read-only MCP server on stdin/stdout that exposes today's thought,
any day by number, and the catalog of available days.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol; logs go to stderr.
			s, err := loadSession(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()
			return mcp.Run(cmd.Context(), s.Options, version)
		},
	}

	topLevel.AddCommand(cmd)
}
