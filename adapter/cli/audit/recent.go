package audit

import (
	"fmt"
	"time"

	"github.com/revenia/revenia/adapter/cli"
	auditDomain "github.com/revenia/revenia/internal/audit/domain"
	"github.com/spf13/cobra"
)

var (
	recentType  string
	recentLimit int
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recent audit events",
	Long: `List the most recent billing audit events, newest first.

Examples:
  revenia audit recent
  revenia audit recent --type billing.invoice.status_changed --limit 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AuditService == nil {
			fmt.Println("The audit log requires an initialized store.")
			return nil
		}

		var records []*auditDomain.Record
		var err error
		if recentType != "" {
			records, err = app.AuditService.EventsByType(cmd.Context(), recentType, recentLimit)
		} else {
			records, err = app.AuditService.RecentEvents(cmd.Context(), recentLimit)
		}
		if err != nil {
			return fmt.Errorf("failed to list audit events: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No audit events recorded.")
			return nil
		}

		for _, record := range records {
			fmt.Printf("%s  %-40s  %s\n",
				record.OccurredAt.Format(time.RFC3339),
				record.EventType,
				record.AggregateID)
		}
		return nil
	},
}

func init() {
	recentCmd.Flags().StringVarP(&recentType, "type", "t", "", "filter by event type")
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 50, "maximum events to show")
}
