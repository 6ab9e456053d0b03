package audit

import (
	"github.com/spf13/cobra"
)

// Cmd is the audit command group
var Cmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the billing audit log",
}

func init() {
	Cmd.AddCommand(recentCmd)
	Cmd.AddCommand(statsCmd)
}
