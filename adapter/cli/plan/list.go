package plan

import (
	"fmt"
	"strings"

	"github.com/revenia/revenia/adapter/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List active plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.PlanRepository == nil {
			fmt.Println("Plan management requires an initialized store.")
			return nil
		}

		plans, err := app.PlanRepository.ListActive(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list plans: %w", err)
		}
		if len(plans) == 0 {
			fmt.Println("No active plans.")
			return nil
		}

		for _, p := range plans {
			fmt.Printf("%s  %s  %s", p.PlanID, p.Name, p.Price)
			if len(p.MappedRoles) > 0 {
				fmt.Printf("  [%s]", strings.Join(p.MappedRoles, ", "))
			}
			fmt.Println()
		}
		return nil
	},
}
