package plan

import (
	"github.com/spf13/cobra"
)

// Cmd is the plan command group
var Cmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage the plan catalog",
	Long:  `Create plans, list the catalog and move users between plans.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(assignCmd)
	Cmd.AddCommand(changeCmd)
}
