package options

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/thought/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	Output string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().StringVarP(&po.Output, "output", "o", printers.FormatText,
		"Output format. One of 'text', 'json' or 'yaml'.")
}

// Format returns the normalized output format.
func (o *OutputOptions) Format() string {
	f := strings.ToLower(strings.TrimSpace(o.Output))
	if f == "" {
		return printers.FormatText
	}
	return f
}

// Validate rejects unknown formats before any work is done.
func (o *OutputOptions) Validate() error {
	switch o.Format() {
	case printers.FormatText, printers.FormatJSON, printers.FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown output %q, expected text, json or yaml", o.Output)
}

// HandleError prints err in the structured format, if one was requested, and
// swallows it. Text output returns err unchanged.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil || o.Format() == printers.FormatText {
		return err
	}
	out := map[string]string{
		"error": err.Error(),
	}
	if perr := printers.Structured(color.Output, o.Format(), out); perr != nil {
		return perr
	}
	return nil
}
