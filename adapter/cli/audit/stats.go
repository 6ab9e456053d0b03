package audit

import (
	"fmt"
	"sort"

	"github.com/revenia/revenia/adapter/cli"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-event-type counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AuditService == nil {
			fmt.Println("The audit log requires an initialized store.")
			return nil
		}

		counts, err := app.AuditService.Metrics(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load audit stats: %w", err)
		}
		if len(counts) == 0 {
			fmt.Println("No audit events recorded.")
			return nil
		}

		types := make([]string, 0, len(counts))
		for eventType := range counts {
			types = append(types, eventType)
		}
		sort.Strings(types)
		for _, eventType := range types {
			fmt.Printf("%-40s  %d\n", eventType, counts[eventType])
		}
		return nil
	},
}
