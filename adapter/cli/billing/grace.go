package billing

import (
	"fmt"
	"time"

	"github.com/revenia/revenia/adapter/cli"
	"github.com/spf13/cobra"
)

var graceUntil string

var graceCmd = &cobra.Command{
	Use:   "grace [subscription-id]",
	Short: "Grant a grace period",
	Long: `Set a grace deadline on a subscription and move it into the grace
period.

Examples:
  revenia billing grace 6f1c... --until 2026-02-14`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Engine == nil {
			fmt.Println("Billing requires an initialized store.")
			return nil
		}

		until, err := time.Parse("2006-01-02", graceUntil)
		if err != nil {
			return fmt.Errorf("invalid grace deadline %q: %w", graceUntil, err)
		}

		subscription, err := app.Engine.GrantGracePeriod(cmd.Context(), args[0], until)
		if err != nil {
			return fmt.Errorf("failed to grant grace period: %w", err)
		}

		fmt.Printf("Subscription %s is now %s\n", subscription.SubscriptionID, subscription.Status)
		fmt.Printf("  Grace until: %s\n", until.Format("2006-01-02"))
		return nil
	},
}

func init() {
	graceCmd.Flags().StringVar(&graceUntil, "until", "", "grace deadline (YYYY-MM-DD)")
	_ = graceCmd.MarkFlagRequired("until")
}
