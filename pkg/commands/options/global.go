package options

import (
	"github.com/spf13/cobra"
)

// GlobalOptions are the persistent flags shared by every command. They are
// read back through store.LoadConfig, which layers them over the config file
// and THOUGHT_* environment variables.
type GlobalOptions struct {
	Config   string
	Source   string
	Timezone string
	Timeout  string
	LogLevel string
}

func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().StringVar(&o.Config, "config", "",
		"Config file (default is ./.thought.yaml or $THOUGHT_CONFIG_PATH/.thought.yaml).")
	cmd.PersistentFlags().StringVar(&o.Source, "source", "",
		"Content directory or http(s) base URL holding index.json.")
	cmd.PersistentFlags().StringVar(&o.Timezone, "timezone", "",
		"IANA timezone that decides which calendar day it is (default UTC).")
	cmd.PersistentFlags().StringVar(&o.Timeout, "timeout", "",
		"Timeout for remote reads, e.g. 30s or 1m30s.")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Log level: debug, info, warn or error.")
}
