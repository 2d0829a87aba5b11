package options

import (
	"github.com/spf13/cobra"
)

// DateOptions
type DateOptions struct {
	Date string
}

func AddDateArg(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVarP(&o.Date, "date", "d", "",
		"Show the thought for a calendar date (YYYY-MM-DD) instead of today.")
}
