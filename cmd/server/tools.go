package main

import (
	"fmt"
	"strings"

	"paytm-mcp/internal/tools"

	"github.com/spf13/cobra"
)

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools the server advertises",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, d := range tools.Definitions() {
				fmt.Fprintf(out, "%s\n  %s\n", d.Name, d.Description)
				for _, p := range d.Params {
					fmt.Fprintf(out, "    %-22s %-8s %s\n", p.Name, p.Type, paramNote(p))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func paramNote(p tools.Param) string {
	var notes []string
	if p.Required {
		notes = append(notes, "required")
	}
	if p.Default != nil {
		notes = append(notes, fmt.Sprintf("default %v", p.Default))
	}
	if len(notes) == 0 {
		return p.Description
	}
	return fmt.Sprintf("%s (%s)", p.Description, strings.Join(notes, ", "))
}
