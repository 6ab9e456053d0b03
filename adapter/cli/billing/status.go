package billing

import (
	"fmt"

	"github.com/revenia/revenia/adapter/cli"
	"github.com/spf13/cobra"
)

var statusUser string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a user's subscription",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Subscriptions == nil {
			fmt.Println("Billing requires an initialized store.")
			return nil
		}

		userID := statusUser
		if userID == "" {
			userID = app.CurrentUserID
		}
		if userID == "" {
			return fmt.Errorf("user id required (use --user or REVENIA_USER_ID)")
		}

		subscription, err := app.Subscriptions.FindByUser(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("failed to load subscription: %w", err)
		}
		if subscription == nil {
			fmt.Printf("No subscription for user %s\n", userID)
			return nil
		}

		fmt.Printf("Subscription: %s\n", subscription.SubscriptionID)
		fmt.Printf("  Plan: %s\n", subscription.PlanID)
		fmt.Printf("  Status: %s\n", subscription.Status)
		fmt.Printf("  Cycle: %s to %s\n",
			subscription.CurrentCycleStart.Format("2006-01-02"),
			subscription.CurrentCycleEnd.Format("2006-01-02"))
		if subscription.GracePeriodEnd != nil {
			fmt.Printf("  Grace until: %s\n", subscription.GracePeriodEnd.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusUser, "user", "u", "", "user id (defaults to configured user)")
}
